package types

import (
	"fmt"
	"slices"
)

// Value is the cached result of one evaluation. Only the field matching
// Type is meaningful.
type Value struct {
	Type    OutputType
	Int     int
	Ints    []int
	Double  float64
	Doubles []float64
	String  string
	Strings []string
}

// Zero returns the zero value for t: 0 for numbers, an empty sequence for
// arrays and an empty string for strings.
func Zero(t OutputType) Value {
	v := Value{Type: t}
	switch t {
	case IntArray:
		v.Ints = []int{}
	case DoubleArray:
		v.Doubles = []float64{}
	case StringArray:
		v.Strings = []string{}
	}
	return v
}

// Len returns the number of elements of an array value, 0 for scalars.
func (v Value) Len() int {
	switch v.Type {
	case IntArray:
		return len(v.Ints)
	case DoubleArray:
		return len(v.Doubles)
	case StringArray:
		return len(v.Strings)
	}
	return 0
}

// Clone returns a copy that shares no slices with v.
func (v Value) Clone() Value {
	out := v
	out.Ints = slices.Clone(v.Ints)
	out.Doubles = slices.Clone(v.Doubles)
	out.Strings = slices.Clone(v.Strings)
	return out
}

// Interface returns the Go value for the active type.
func (v Value) Interface() any {
	switch v.Type {
	case Int:
		return v.Int
	case IntArray:
		return v.Ints
	case Double:
		return v.Double
	case DoubleArray:
		return v.Doubles
	case StringArray:
		return v.Strings
	default:
		return v.String
	}
}

func (v Value) Inspect() string {
	return fmt.Sprintf("%s(%v)", v.Type, v.Interface())
}
