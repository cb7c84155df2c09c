package scenefile

import (
	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/gatgui/pyexpr/platform/types"
	"github.com/hashicorp/hcl/v2"
)

// File is a decoded scene file.
type File struct {
	Units   *Units    `hcl:"units,block"`
	Objects []*Object `hcl:"object,block"`
	Nodes   []*Node   `hcl:"pyexpr,block"`

	path  string
	units attribute.DisplayUnits
}

// Units selects the display units of the scene.
type Units struct {
	Angle    string `hcl:"angle,optional"`
	Distance string `hcl:"distance,optional"`
	Time     string `hcl:"time,optional"`
}

// Object is a plain object that message attributes can connect to.
type Object struct {
	Name         string `hcl:"name,label"`
	Parent       string `hcl:"parent,optional"`
	Hierarchical bool   `hcl:"dag,optional"`
}

// Node is an expression node with its dynamic attributes.
type Node struct {
	Name              string       `hcl:"name,label"`
	Expression        *string      `hcl:"expression,optional"`
	ExpressionFile    *string      `hcl:"expression_file,optional"`
	OutputType        string       `hcl:"output_type,optional"`
	Verbose           bool         `hcl:"verbose,optional"`
	EvalOnTimeChanged bool         `hcl:"eval_on_time_changed,optional"`
	Attributes        []*Attribute `hcl:"attribute,block"`

	expression string
	outputType types.OutputType
}

// Attribute declares a dynamic attribute. Value is decoded according to
// Type once the whole file is parsed.
type Attribute struct {
	Name    string         `hcl:"name,label"`
	Type    string         `hcl:"type"`
	Array   bool           `hcl:"array,optional"`
	Value   hcl.Expression `hcl:"value,optional"`
	Fields  []string       `hcl:"fields,optional"`
	Connect []string       `hcl:"connect,optional"`

	decoded attribute.Attribute
}

// Path returns the file the scene was loaded from.
func (f *File) Path() string { return f.path }

// DisplayUnits returns the units declared by the file, or the defaults.
func (f *File) DisplayUnits() attribute.DisplayUnits { return f.units }

// ResolvedExpression returns the expression of the node, loaded from its
// expression file when one is given.
func (n *Node) ResolvedExpression() string { return n.expression }

// ResolvedOutputType returns the parsed output type, string by default.
func (n *Node) ResolvedOutputType() types.OutputType { return n.outputType }

// Decoded returns the attribute built from the declaration.
func (a *Attribute) Decoded() attribute.Attribute { return a.decoded }
