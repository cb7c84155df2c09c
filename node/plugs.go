package node

import (
	"fmt"

	"github.com/gatgui/pyexpr/platform/types"
)

// Output identifies an output attribute of the node.
type Output int

const (
	OutInt Output = iota
	OutInts
	OutDouble
	OutDoubles
	OutString
	OutStrings
	Succeeded
	ErrorString
)

// Outputs lists every output in schema order.
var Outputs = []Output{OutInt, OutInts, OutDouble, OutDoubles, OutString, OutStrings, Succeeded, ErrorString}

var outputNames = map[Output]string{
	OutInt:      "outInt",
	OutInts:     "outInts",
	OutDouble:   "outDouble",
	OutDoubles:  "outDoubles",
	OutString:   "outString",
	OutStrings:  "outStrings",
	Succeeded:   "succeeded",
	ErrorString: "errorString",
}

func (o Output) String() string {
	if name, ok := outputNames[o]; ok {
		return name
	}
	return fmt.Sprintf("Output(%d)", int(o))
}

// ParseOutput maps an output attribute name to its Output.
func ParseOutput(name string) (Output, error) {
	for o, n := range outputNames {
		if n == name {
			return o, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownPlug, name)
}

// Type returns the value type carried by a typed output. Status outputs
// report false.
func (o Output) Type() (types.OutputType, bool) {
	switch o {
	case OutInt:
		return types.Int, true
	case OutInts:
		return types.IntArray, true
	case OutDouble:
		return types.Double, true
	case OutDoubles:
		return types.DoubleArray, true
	case OutString:
		return types.String, true
	case OutStrings:
		return types.StringArray, true
	}
	return 0, false
}

// OutputFor returns the output that carries values of type t. Unknown
// types fall back to OutString.
func OutputFor(t types.OutputType) Output {
	switch t {
	case types.Int:
		return OutInt
	case types.IntArray:
		return OutInts
	case types.Double:
		return OutDouble
	case types.DoubleArray:
		return OutDoubles
	case types.StringArray:
		return OutStrings
	}
	return OutString
}

// Input identifies a static input attribute of the node.
type Input int

const (
	Expression Input = iota
	OutputTypeInput
	Verbose
	EvalOnTimeChanged
)

var inputNames = map[Input]string{
	Expression:        "expression",
	OutputTypeInput:   "outputType",
	Verbose:           "verbose",
	EvalOnTimeChanged: "evalOnTimeChanged",
}

func (in Input) String() string {
	if name, ok := inputNames[in]; ok {
		return name
	}
	return fmt.Sprintf("Input(%d)", int(in))
}

// ParseInput maps a static input attribute name to its Input.
func ParseInput(name string) (Input, bool) {
	for in, n := range inputNames {
		if n == name {
			return in, true
		}
	}
	return 0, false
}

// Affects returns the outputs a change of in makes stale. Expression and
// output type affect every output; verbose and evalOnTimeChanged affect
// none.
func Affects(in Input) []Output {
	switch in {
	case Expression, OutputTypeInput:
		out := make([]Output, len(Outputs))
		copy(out, Outputs)
		return out
	}
	return nil
}

// Plug is an output attribute or one element of an array output.
type Plug struct {
	Output  Output
	Index   int
	Element bool
}

// ElementPlug returns the plug for element i of array output o.
func ElementPlug(o Output, i int) Plug {
	return Plug{Output: o, Index: i, Element: true}
}

func (p Plug) String() string {
	if p.Element {
		return fmt.Sprintf("%s[%d]", p.Output, p.Index)
	}
	return p.Output.String()
}

// AffectedOutputs returns the plugs invalidated by a dynamic attribute
// change: the live output for active, each existing element of it when it
// is an array, then the status outputs.
func AffectedOutputs(active types.OutputType, elements []int) []Plug {
	live := OutputFor(active)
	plugs := make([]Plug, 0, len(elements)+3)
	plugs = append(plugs, Plug{Output: live})
	if active.IsArray() {
		for _, i := range elements {
			plugs = append(plugs, ElementPlug(live, i))
		}
	}
	return append(plugs, Plug{Output: Succeeded}, Plug{Output: ErrorString})
}
