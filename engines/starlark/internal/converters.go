package internal

import (
	"fmt"

	"github.com/gatgui/pyexpr/platform/script"
	"github.com/gatgui/pyexpr/platform/types"
	starlarkLib "go.starlark.net/starlark"
)

// ToValue converts a Starlark result to the requested output type.
// None converts to the zero value of every type.
func ToValue(v starlarkLib.Value, t types.OutputType) (types.Value, error) {
	out := types.Zero(t)
	if v == nil || v == starlarkLib.None {
		return out, nil
	}

	var err error
	switch t {
	case types.Int:
		out.Int, err = toInt(v)
	case types.Double:
		out.Double, err = toDouble(v)
	case types.String:
		out.String = toString(v)
	case types.IntArray:
		out.Ints, err = toSlice(v, toInt)
	case types.DoubleArray:
		out.Doubles, err = toSlice(v, toDouble)
	case types.StringArray:
		out.Strings, err = toSlice(v, func(el starlarkLib.Value) (string, error) {
			return toString(el), nil
		})
	default:
		return out, fmt.Errorf("%w: unsupported output type %s", script.ErrTypeMismatch, t)
	}
	if err != nil {
		return types.Zero(t), err
	}
	return out, nil
}

func toInt(v starlarkLib.Value) (int, error) {
	switch x := v.(type) {
	case starlarkLib.Int:
		i, ok := x.Int64()
		if !ok {
			return 0, mismatch("int too large to convert: %s", x)
		}
		return int(i), nil
	case starlarkLib.Bool:
		if x {
			return 1, nil
		}
		return 0, nil
	}
	return 0, mismatch("expected int, got %s", v.Type())
}

func toDouble(v starlarkLib.Value) (float64, error) {
	switch x := v.(type) {
	case starlarkLib.Float:
		return float64(x), nil
	case starlarkLib.Int:
		return float64(x.Float()), nil
	case starlarkLib.Bool:
		if x {
			return 1, nil
		}
		return 0, nil
	}
	return 0, mismatch("expected float, got %s", v.Type())
}

// toString returns strings raw and everything else as str() would.
func toString(v starlarkLib.Value) string {
	if s, ok := starlarkLib.AsString(v); ok {
		return s
	}
	return v.String()
}

func toSlice[T any](v starlarkLib.Value, convert func(starlarkLib.Value) (T, error)) ([]T, error) {
	iterable, ok := v.(starlarkLib.Iterable)
	if !ok {
		return nil, mismatch("expected a sequence, got %s", v.Type())
	}

	var out []T
	if seq, ok := v.(starlarkLib.Sequence); ok {
		out = make([]T, 0, seq.Len())
	} else {
		out = []T{}
	}

	iter := iterable.Iterate()
	defer iter.Done()

	var el starlarkLib.Value
	for i := 0; iter.Next(&el); i++ {
		converted, err := convert(el)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		out = append(out, converted)
	}
	return out, nil
}

func mismatch(format string, args ...any) error {
	return fmt.Errorf("%w: "+format, append([]any{script.ErrTypeMismatch}, args...)...)
}
