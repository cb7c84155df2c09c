package scene

import (
	"slices"

	"github.com/gatgui/pyexpr/node"
	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/gatgui/pyexpr/platform/types"
)

// exprNode is the host side of one expression node: its dynamic attributes,
// message connections and output storage.
type exprNode struct {
	scene *Scene
	node  *node.Node

	attrs []attribute.Attribute
	// connections lists the source names of each message attribute.
	connections map[string][]string
	outputs     *storage
}

func newExprNode(s *Scene) *exprNode {
	return &exprNode{
		scene:       s,
		connections: make(map[string][]string),
		outputs:     newStorage(),
	}
}

// clone copies attributes and connections. Output storage starts empty.
func (e *exprNode) clone() *exprNode {
	dup := newExprNode(e.scene)
	dup.attrs = make([]attribute.Attribute, len(e.attrs))
	for i, a := range e.attrs {
		a.Elements = slices.Clone(a.Elements)
		dup.attrs[i] = a
	}
	for name, sources := range e.connections {
		dup.connections[name] = slices.Clone(sources)
	}
	return dup
}

// Attributes returns the static inputs followed by the dynamic attributes
// in creation order. Message values reflect the current connections.
func (e *exprNode) Attributes() []attribute.Attribute {
	n := e.node
	attrs := make([]attribute.Attribute, 0, len(e.attrs)+4)
	attrs = append(attrs,
		attribute.NewStatic(node.Expression.String(), attribute.String(n.Expression())),
		attribute.NewStatic(node.OutputTypeInput.String(), outputTypeEnum(n.OutputType())),
		attribute.NewStatic(node.Verbose.String(), attribute.Bool(n.Verbose())),
		attribute.NewStatic(node.EvalOnTimeChanged.String(), attribute.Bool(n.EvalOnTimeChanged())),
	)

	for _, a := range e.attrs {
		if _, ok := a.Value.(attribute.Message); ok {
			a.Value = e.message(a.Name)
		}
		attrs = append(attrs, a)
	}
	return attrs
}

func outputTypeEnum(t types.OutputType) attribute.Enum {
	fields := make(map[int16]string, len(types.All))
	for _, ot := range types.All {
		fields[int16(ot)] = ot.String()
	}
	return attribute.Enum{Index: int16(t), Fields: fields}
}

func (e *exprNode) message(name string) attribute.Message {
	var msg attribute.Message
	for _, src := range e.connections[name] {
		if s, ok := e.scene.source(src); ok {
			msg.Sources = append(msg.Sources, s)
		}
	}
	return msg
}

// ElementIndices returns the indices of the built elements of o.
func (e *exprNode) ElementIndices(o node.Output) []int {
	return e.outputs.elementIndices(o)
}

// MarkDirty flags plugs for recomputation.
func (e *exprNode) MarkDirty(plugs []node.Plug) {
	e.outputs.markDirty(plugs)
}

// DisplayUnits returns the units of the scene.
func (e *exprNode) DisplayUnits() attribute.DisplayUnits {
	return e.scene.units
}

func (e *exprNode) attr(name string) (int, bool) {
	i := slices.IndexFunc(e.attrs, func(a attribute.Attribute) bool { return a.Name == name })
	return i, i >= 0
}

// changed notifies the node that a changed and marks the stale plugs.
func (e *exprNode) changed(a attribute.Attribute) {
	e.MarkDirty(e.node.SetDependentsDirty(a))
}

// markInputDirty invalidates the plugs a static input affects.
func (e *exprNode) markInputDirty(in node.Input) {
	var plugs []node.Plug
	for _, o := range e.node.Affects(in) {
		plugs = append(plugs, node.Plug{Output: o})
		for _, i := range e.outputs.elementIndices(o) {
			plugs = append(plugs, node.ElementPlug(o, i))
		}
	}
	e.MarkDirty(plugs)
}

func (e *exprNode) disconnectSource(source string) {
	for name, sources := range e.connections {
		kept := slices.DeleteFunc(slices.Clone(sources), func(s string) bool { return s == source })
		if len(kept) == len(sources) {
			continue
		}
		e.connections[name] = kept
		if i, ok := e.attr(name); ok {
			e.changed(e.attrs[i])
		}
	}
}

func (e *exprNode) renameSource(oldName, newName string) {
	for name, sources := range e.connections {
		i := slices.Index(sources, oldName)
		if i < 0 {
			continue
		}
		sources[i] = newName
		if j, ok := e.attr(name); ok {
			e.changed(e.attrs[j])
		}
	}
}

var (
	_ node.Host          = (*exprNode)(nil)
	_ node.UnitsProvider = (*exprNode)(nil)
)
