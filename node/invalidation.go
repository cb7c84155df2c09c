package node

import (
	"github.com/gatgui/pyexpr/platform/attribute"
)

// SetDependentsDirty handles a change of attr. A dynamic attribute marks
// the node Dirty and returns the plugs the host must invalidate. The
// expression and outputType inputs only mark the node Dirty: their
// dependents are static and known to the host through Affects. Any other
// attribute is ignored.
func (n *Node) SetDependentsDirty(attr attribute.Attribute) []Plug {
	if attr.Dynamic {
		n.needsEval = true
		plugs := n.affectedPlugs()
		n.logger.WithGroup("SetDependentsDirty").Debug("dynamic attribute changed",
			"attribute", attr.Name, "plugs", len(plugs))
		return plugs
	}

	if in, ok := ParseInput(attr.Name); ok && len(Affects(in)) > 0 {
		n.needsEval = true
	}
	return nil
}

// Affects returns the outputs a change of in makes stale.
func (n *Node) Affects(in Input) []Output {
	return Affects(in)
}

// affectedPlugs returns AffectedOutputs for the live output type with the
// element plugs currently present on the host.
func (n *Node) affectedPlugs() []Plug {
	var elements []int
	if n.outputType.IsArray() {
		elements = n.host.ElementIndices(OutputFor(n.outputType))
	}
	return AffectedOutputs(n.outputType, elements)
}
