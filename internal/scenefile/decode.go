package scenefile

import (
	"fmt"
	"slices"

	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// decodeAttribute builds the attribute described by a. Unit-valued types
// are read in internal units: radians, centimetres and seconds.
func decodeAttribute(a *Attribute) (attribute.Attribute, error) {
	kind, ok := attribute.ParseKind(a.Type)
	if !ok {
		return attribute.Attribute{}, fmt.Errorf("%w: %q", ErrUnknownType, a.Type)
	}

	v, diags := a.Value.Value(nil)
	if diags.HasErrors() {
		return attribute.Attribute{}, diags
	}

	if kind == attribute.KindMessage {
		if a.Array {
			return attribute.Attribute{}, fmt.Errorf("message attributes cannot be arrays")
		}
		return attribute.NewDynamic(a.Name, attribute.Message{}), nil
	}
	if len(a.Connect) > 0 {
		return attribute.Attribute{}, fmt.Errorf("%w: connect requires type message", ErrInvalidScene)
	}

	if !a.Array {
		value, err := decodeValue(kind, v, a.Fields)
		if err != nil {
			return attribute.Attribute{}, err
		}
		return attribute.NewDynamic(a.Name, value), nil
	}

	if v.IsNull() {
		return attribute.NewDynamicArray(a.Name), nil
	}
	if !v.CanIterateElements() {
		return attribute.Attribute{}, fmt.Errorf("array value must be a list, got %s", v.Type().FriendlyName())
	}

	var elements []attribute.Value
	for it := v.ElementIterator(); it.Next(); {
		_, elem := it.Element()
		value, err := decodeValue(kind, elem, a.Fields)
		if err != nil {
			return attribute.Attribute{}, fmt.Errorf("element %d: %w", len(elements), err)
		}
		elements = append(elements, value)
	}
	return attribute.NewDynamicArray(a.Name, elements...), nil
}

// decodeValue converts v to the variant of kind. A null value gives the
// zero value of the kind.
func decodeValue(kind attribute.Kind, v cty.Value, fields []string) (attribute.Value, error) {
	switch kind {
	case attribute.KindBool:
		b, err := to[bool](v, cty.Bool)
		return attribute.Bool(b), err
	case attribute.KindChar:
		n, err := to[int8](v, cty.Number)
		return attribute.Char(n), err
	case attribute.KindByte:
		n, err := to[uint8](v, cty.Number)
		return attribute.Byte(n), err
	case attribute.KindShort:
		n, err := to[int16](v, cty.Number)
		return attribute.Short(n), err
	case attribute.KindInt:
		n, err := to[int32](v, cty.Number)
		return attribute.Int(n), err
	case attribute.KindShort2:
		t, err := fixed[int16](v, 2)
		return attribute.Short2(t), err
	case attribute.KindShort3:
		t, err := fixed[int16](v, 3)
		return attribute.Short3(t), err
	case attribute.KindInt2:
		t, err := fixed[int32](v, 2)
		return attribute.Int2(t), err
	case attribute.KindInt3:
		t, err := fixed[int32](v, 3)
		return attribute.Int3(t), err
	case attribute.KindFloat:
		f, err := to[float32](v, cty.Number)
		return attribute.Float(f), err
	case attribute.KindFloat2:
		t, err := fixed[float32](v, 2)
		return attribute.Float2(t), err
	case attribute.KindFloat3:
		t, err := fixed[float32](v, 3)
		return attribute.Float3(t), err
	case attribute.KindDouble:
		f, err := to[float64](v, cty.Number)
		return attribute.Double(f), err
	case attribute.KindDouble2:
		t, err := fixed[float64](v, 2)
		return attribute.Double2(t), err
	case attribute.KindDouble3:
		t, err := fixed[float64](v, 3)
		return attribute.Double3(t), err
	case attribute.KindDouble4:
		t, err := fixed[float64](v, 4)
		return attribute.Double4(t), err
	case attribute.KindAngle:
		f, err := to[float64](v, cty.Number)
		return attribute.Angle(f), err
	case attribute.KindDistance:
		f, err := to[float64](v, cty.Number)
		return attribute.Distance(f), err
	case attribute.KindTime:
		f, err := to[float64](v, cty.Number)
		return attribute.Time(f), err
	case attribute.KindEnum:
		return decodeEnum(v, fields)
	case attribute.KindMatrix:
		return decodeMatrix(v)
	case attribute.KindString:
		s, err := to[string](v, cty.String)
		return attribute.String(s), err
	case attribute.KindStringArray:
		s, err := to[[]string](v, cty.List(cty.String))
		return attribute.StringArray(s), err
	case attribute.KindDoubleArray:
		f, err := to[[]float64](v, cty.List(cty.Number))
		return attribute.DoubleArray(f), err
	case attribute.KindIntArray:
		n, err := to[[]int32](v, cty.List(cty.Number))
		return attribute.IntArray(n), err
	case attribute.KindPointArray:
		p, err := triples(v)
		return attribute.PointArray(p), err
	case attribute.KindVectorArray:
		p, err := triples(v)
		return attribute.VectorArray(p), err
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownType, kind)
}

// to converts v to ty and decodes it into a T.
func to[T any](v cty.Value, ty cty.Type) (T, error) {
	var out T
	if v.IsNull() {
		return out, nil
	}
	cv, err := convert.Convert(v, ty)
	if err != nil {
		return out, err
	}
	if err := gocty.FromCtyValue(cv, &out); err != nil {
		return out, err
	}
	return out, nil
}

// fixed decodes a list of exactly n numbers. The result always has n
// elements so it can be converted to an array.
func fixed[T int16 | int32 | float32 | float64](v cty.Value, n int) ([]T, error) {
	if v.IsNull() {
		return make([]T, n), nil
	}
	vals, err := to[[]T](v, cty.List(cty.Number))
	if err != nil {
		return make([]T, n), err
	}
	if len(vals) != n {
		return make([]T, n), fmt.Errorf("want %d components, got %d", n, len(vals))
	}
	return vals, nil
}

func triples(v cty.Value) ([][3]float64, error) {
	rows, err := to[[][]float64](v, cty.List(cty.List(cty.Number)))
	if err != nil {
		return nil, err
	}
	out := make([][3]float64, len(rows))
	for i, row := range rows {
		if len(row) != 3 {
			return nil, fmt.Errorf("element %d: want 3 components, got %d", i, len(row))
		}
		out[i] = [3]float64(row)
	}
	return out, nil
}

func decodeMatrix(v cty.Value) (attribute.Value, error) {
	if v.IsNull() {
		return attribute.Identity(), nil
	}
	rows, err := to[[][]float64](v, cty.List(cty.List(cty.Number)))
	if err != nil {
		return nil, err
	}
	if len(rows) != 4 {
		return nil, fmt.Errorf("matrix wants 4 rows, got %d", len(rows))
	}
	var m attribute.Matrix
	for i, row := range rows {
		if len(row) != 4 {
			return nil, fmt.Errorf("matrix row %d wants 4 columns, got %d", i, len(row))
		}
		m[i] = [4]float64(row)
	}
	return m, nil
}

// decodeEnum accepts either the field index or the field name. Field
// indices follow the order of fields.
func decodeEnum(v cty.Value, fields []string) (attribute.Value, error) {
	e := attribute.Enum{Fields: make(map[int16]string, len(fields))}
	for i, name := range fields {
		e.Fields[int16(i)] = name
	}

	switch {
	case v.IsNull():
	case v.Type() == cty.String:
		i := slices.Index(fields, v.AsString())
		if i < 0 {
			return nil, fmt.Errorf("enum has no field %q", v.AsString())
		}
		e.Index = int16(i)
	default:
		i, err := to[int16](v, cty.Number)
		if err != nil {
			return nil, err
		}
		e.Index = i
	}
	return e, nil
}
