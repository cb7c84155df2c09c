package attribute

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/gatgui/pyexpr/internal/helpers"
)

// ErrUnsupported is returned for values with no literal rendering.
var ErrUnsupported = errors.New("unsupported attribute type")

// Settings are the per-call inputs of a serialization pass.
type Settings struct {
	// Units is the current display unit set used for unit-valued attributes.
	Units DisplayUnits

	// Verbose enables warnings for attributes that cannot be rendered.
	Verbose bool
}

// Serializer renders dynamic attributes as `name = <literal>` binding lines.
type Serializer struct {
	logHandler slog.Handler
	logger     *slog.Logger
}

// NewSerializer creates a Serializer configured by opts.
func NewSerializer(opts ...FunctionalOption) (*Serializer, error) {
	s := &Serializer{}
	s.applyDefaults()

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("error applying serializer option: %w", err)
		}
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid serializer configuration: %w", err)
	}

	s.logHandler, s.logger = helpers.ResolveLogger(s.logHandler, s.logger, "attribute", "Serializer")
	return s, nil
}

func (s *Serializer) String() string {
	return "attribute.Serializer"
}

// Bindings returns one binding line per dynamic attribute, in the order of
// attrs. Attributes that cannot be rendered are skipped without affecting
// the others.
func (s *Serializer) Bindings(attrs []Attribute, cfg Settings) []string {
	logger := s.logger.WithGroup("Bindings")
	lines := make([]string, 0, len(attrs))

	for _, a := range Dynamic(attrs) {
		lit, err := s.attributeLiteral(a, cfg.Units)
		if err != nil {
			if cfg.Verbose {
				logger.Warn("skipping attribute", "attribute", a.Name, "error", err)
			} else {
				logger.Debug("skipping attribute", "attribute", a.Name, "error", err)
			}
			continue
		}
		lines = append(lines, a.Name+" = "+lit)
	}
	return lines
}

// Serialize joins Bindings into the textual preamble, one line each.
func (s *Serializer) Serialize(attrs []Attribute, cfg Settings) string {
	var sb strings.Builder
	for _, line := range s.Bindings(attrs, cfg) {
		sb.WriteString(line)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Symbols returns the enum field names referenced by the bindings of attrs,
// sorted and without duplicates. Interpreters that resolve names at compile
// time predeclare them.
func (s *Serializer) Symbols(attrs []Attribute) []string {
	var out []string
	add := func(v Value) {
		if e, ok := v.(Enum); ok {
			if name, ok := e.FieldName(); ok {
				out = append(out, name)
			}
		}
	}
	for _, a := range Dynamic(attrs) {
		if a.Array {
			for _, el := range a.Elements {
				add(el)
			}
			continue
		}
		add(a.Value)
	}
	slices.Sort(out)
	return slices.Compact(out)
}

func (s *Serializer) attributeLiteral(a Attribute, units DisplayUnits) (string, error) {
	if !a.Array {
		return Literal(a.Value, units)
	}

	parts := make([]string, len(a.Elements))
	for i, el := range a.Elements {
		lit, err := Literal(el, units)
		if err != nil {
			return "", fmt.Errorf("element %d: %w", i, err)
		}
		parts[i] = lit
	}
	return "[" + strings.Join(parts, ", ") + "]", nil
}

// Literal renders a single value.
func Literal(v Value, units DisplayUnits) (string, error) {
	switch v := v.(type) {
	case Bool:
		if v {
			return "True", nil
		}
		return "False", nil
	case Char:
		return strconv.FormatInt(int64(v), 10), nil
	case Byte:
		return strconv.FormatUint(uint64(v), 10), nil
	case Short:
		return strconv.FormatInt(int64(v), 10), nil
	case Int:
		return strconv.FormatInt(int64(v), 10), nil
	case Short2:
		return tuple(v[:], formatInt16), nil
	case Short3:
		return tuple(v[:], formatInt16), nil
	case Int2:
		return tuple(v[:], formatInt32), nil
	case Int3:
		return tuple(v[:], formatInt32), nil
	case Float:
		return FormatFloat(float64(v), 32), nil
	case Float2:
		return tuple(v[:], formatFloat32), nil
	case Float3:
		return tuple(v[:], formatFloat32), nil
	case Double:
		return FormatFloat(float64(v), 64), nil
	case Double2:
		return tuple(v[:], formatFloat64), nil
	case Double3:
		return tuple(v[:], formatFloat64), nil
	case Double4:
		return tuple(v[:], formatFloat64), nil
	case Angle:
		return FormatFloat(AngleIn(float64(v), units.Angle), 64), nil
	case Distance:
		return FormatFloat(DistanceIn(float64(v), units.Distance), 64), nil
	case Time:
		return FormatFloat(TimeIn(float64(v), units.Time), 64), nil
	case Enum:
		name, ok := v.FieldName()
		if !ok {
			return "", fmt.Errorf("%w: enum index %d has no field usable as a name", ErrUnsupported, v.Index)
		}
		return name, nil
	case Matrix:
		rows := make([]string, 4)
		for i := range v {
			rows[i] = tuple(v[i][:], formatFloat64)
		}
		return "(" + strings.Join(rows, ", ") + ")", nil
	case String:
		// No escaping: an embedded quote breaks the binding.
		return "'" + string(v) + "'", nil
	case StringArray:
		return list(v, func(s string) string { return "'" + s + "'" }), nil
	case DoubleArray:
		return list(v, formatFloat64), nil
	case IntArray:
		return list(v, formatInt32), nil
	case PointArray:
		return list(v, func(p [3]float64) string { return tuple(p[:], formatFloat64) }), nil
	case VectorArray:
		return list(v, func(p [3]float64) string { return tuple(p[:], formatFloat64) }), nil
	case Message:
		if len(v.Sources) != 1 {
			return "''", nil
		}
		src := v.Sources[0]
		if src.Hierarchical() {
			return "'" + src.Path + "'", nil
		}
		return "'" + src.Name + "'", nil
	case Unsupported:
		return "", fmt.Errorf("%w: %s", ErrUnsupported, v.TypeName)
	case nil:
		return "", fmt.Errorf("%w: no value", ErrUnsupported)
	default:
		return "", fmt.Errorf("%w: %T", ErrUnsupported, v)
	}
}

// FormatFloat renders f as a float literal that round-trips at the given
// bit size. The result always reads back as a float, never an int.
func FormatFloat(f float64, bitSize int) string {
	switch {
	case math.IsNaN(f):
		return "float('nan')"
	case math.IsInf(f, 1):
		return "float('inf')"
	case math.IsInf(f, -1):
		return "-float('inf')"
	}

	var s string
	if abs := math.Abs(f); abs == 0 || (abs >= 1e-4 && abs < 1e16) {
		s = strconv.FormatFloat(f, 'f', -1, bitSize)
	} else {
		s = strconv.FormatFloat(f, 'g', -1, bitSize)
	}
	if !strings.ContainsAny(s, ".e") {
		s += ".0"
	}
	return s
}

func formatInt16(v int16) string     { return strconv.FormatInt(int64(v), 10) }
func formatInt32(v int32) string     { return strconv.FormatInt(int64(v), 10) }
func formatFloat32(v float32) string { return FormatFloat(float64(v), 32) }
func formatFloat64(v float64) string { return FormatFloat(v, 64) }

func tuple[T any](vals []T, format func(T) string) string {
	return "(" + join(vals, format) + ")"
}

func list[T any](vals []T, format func(T) string) string {
	return "[" + join(vals, format) + "]"
}

func join[T any](vals []T, format func(T) string) string {
	parts := make([]string, len(vals))
	for i, v := range vals {
		parts[i] = format(v)
	}
	return strings.Join(parts, ", ")
}
