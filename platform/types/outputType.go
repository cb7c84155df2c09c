package types

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownOutputType is returned when parsing an unrecognized output type name.
var ErrUnknownOutputType = errors.New("unknown output type")

// OutputType selects both the return type of an expression and the output
// plug considered live. The numeric values match the host enum fields.
type OutputType int8

const (
	Int OutputType = iota
	IntArray
	Double
	DoubleArray
	String
	StringArray
)

// All lists every output type in enum order.
var All = []OutputType{Int, IntArray, Double, DoubleArray, String, StringArray}

func (t OutputType) String() string {
	switch t {
	case Int:
		return "int"
	case IntArray:
		return "int[]"
	case Double:
		return "double"
	case DoubleArray:
		return "double[]"
	case String:
		return "string"
	case StringArray:
		return "string[]"
	default:
		return fmt.Sprintf("OutputType(%d)", int8(t))
	}
}

// Valid reports whether t is one of the six declared output types.
func (t OutputType) Valid() bool {
	return t >= Int && t <= StringArray
}

// IsArray reports whether t produces a sequence.
func (t OutputType) IsArray() bool {
	return t == IntArray || t == DoubleArray || t == StringArray
}

// ParseOutputType accepts the host field names ("int", "int[]", ...) and
// the plural aliases "ints", "doubles" and "strings".
func ParseOutputType(name string) (OutputType, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "int":
		return Int, nil
	case "int[]", "ints":
		return IntArray, nil
	case "double":
		return Double, nil
	case "double[]", "doubles":
		return DoubleArray, nil
	case "string":
		return String, nil
	case "string[]", "strings":
		return StringArray, nil
	}
	return String, fmt.Errorf("%w: %q", ErrUnknownOutputType, name)
}
