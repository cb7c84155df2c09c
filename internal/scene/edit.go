package scene

import (
	"fmt"
	"slices"

	"github.com/gatgui/pyexpr/node"
	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/gatgui/pyexpr/platform/types"
)

// AddAttribute adds a dynamic attribute to the expression node called name.
// The attribute name must not clash with a static input or another
// dynamic attribute.
func (s *Scene) AddAttribute(name string, attr attribute.Attribute) error {
	e, err := s.expr(name)
	if err != nil {
		return err
	}
	if attr.Name == "" {
		return fmt.Errorf("attribute name cannot be empty")
	}
	if _, static := node.ParseInput(attr.Name); static {
		return fmt.Errorf("%w: %s", ErrReservedName, attr.Name)
	}
	if _, err := node.ParseOutput(attr.Name); err == nil {
		return fmt.Errorf("%w: %s", ErrReservedName, attr.Name)
	}
	if _, ok := e.attr(attr.Name); ok {
		return fmt.Errorf("%w: %s.%s", ErrExists, name, attr.Name)
	}

	attr.Dynamic = true
	attr.Elements = slices.Clone(attr.Elements)
	if msg, ok := attr.Value.(attribute.Message); ok {
		// sources are tracked as connections
		for _, src := range msg.Sources {
			e.connections[attr.Name] = append(e.connections[attr.Name], src.Name)
		}
		attr.Value = attribute.Message{}
	}
	e.attrs = append(e.attrs, attr)
	s.logger.Debug("attribute added", "node", name, "attribute", attr.Name, "kind", attr.Kind())

	e.changed(attr)
	return nil
}

// SetAttribute changes the value of a scalar dynamic attribute.
func (s *Scene) SetAttribute(name, attrName string, v attribute.Value) error {
	e, i, err := s.dynamic(name, attrName)
	if err != nil {
		return err
	}
	if e.attrs[i].Array {
		return fmt.Errorf("%w: %s.%s", ErrIsArray, name, attrName)
	}
	if _, ok := v.(attribute.Message); ok {
		return fmt.Errorf("use Connect to change message attribute %s.%s", name, attrName)
	}

	e.attrs[i].Value = v
	e.changed(e.attrs[i])
	return nil
}

// SetElements replaces the elements of an array dynamic attribute.
func (s *Scene) SetElements(name, attrName string, elements ...attribute.Value) error {
	e, i, err := s.dynamic(name, attrName)
	if err != nil {
		return err
	}
	if !e.attrs[i].Array {
		return fmt.Errorf("%w: %s.%s", ErrNotArray, name, attrName)
	}

	e.attrs[i].Elements = slices.Clone(elements)
	e.changed(e.attrs[i])
	return nil
}

// RemoveAttribute deletes a dynamic attribute.
func (s *Scene) RemoveAttribute(name, attrName string) error {
	e, i, err := s.dynamic(name, attrName)
	if err != nil {
		return err
	}

	removed := e.attrs[i]
	e.attrs = slices.Delete(e.attrs, i, i+1)
	delete(e.connections, attrName)
	e.changed(removed)
	return nil
}

// Connect connects source, a plain object or an expression node, to the
// message attribute attrName.
func (s *Scene) Connect(source, name, attrName string) error {
	e, i, err := s.dynamic(name, attrName)
	if err != nil {
		return err
	}
	if _, ok := e.attrs[i].Value.(attribute.Message); !ok {
		return fmt.Errorf("%w: %s.%s", ErrNotMessage, name, attrName)
	}
	if _, ok := s.source(source); !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, source)
	}
	if slices.Contains(e.connections[attrName], source) {
		return nil
	}

	e.connections[attrName] = append(e.connections[attrName], source)
	e.changed(e.attrs[i])
	return nil
}

// Disconnect removes the connection from source to the message attribute
// attrName.
func (s *Scene) Disconnect(source, name, attrName string) error {
	e, i, err := s.dynamic(name, attrName)
	if err != nil {
		return err
	}
	j := slices.Index(e.connections[attrName], source)
	if j < 0 {
		return fmt.Errorf("%w: connection %s -> %s.%s", ErrNotFound, source, name, attrName)
	}

	e.connections[attrName] = slices.Delete(e.connections[attrName], j, j+1)
	e.changed(e.attrs[i])
	return nil
}

func (s *Scene) dynamic(name, attrName string) (*exprNode, int, error) {
	e, err := s.expr(name)
	if err != nil {
		return nil, 0, err
	}
	i, ok := e.attr(attrName)
	if !ok {
		return nil, 0, fmt.Errorf("%w: attribute %s.%s", ErrNotFound, name, attrName)
	}
	return e, i, nil
}

// SetExpression changes the expression of a node.
func (s *Scene) SetExpression(name, expression string) error {
	e, err := s.expr(name)
	if err != nil {
		return err
	}
	e.node.SetExpression(expression)
	e.markInputDirty(node.Expression)
	return nil
}

// SetOutputType changes the output type of a node.
func (s *Scene) SetOutputType(name string, t types.OutputType) error {
	e, err := s.expr(name)
	if err != nil {
		return err
	}
	if err := e.node.SetOutputType(t); err != nil {
		return err
	}
	e.markInputDirty(node.OutputTypeInput)
	return nil
}

// SetVerbose changes the verbose flag of a node.
func (s *Scene) SetVerbose(name string, verbose bool) error {
	e, err := s.expr(name)
	if err != nil {
		return err
	}
	e.node.SetVerbose(verbose)
	e.markInputDirty(node.Verbose)
	return nil
}

// SetEvalOnTimeChanged subscribes a node to time changes or unsubscribes it.
func (s *Scene) SetEvalOnTimeChanged(name string, enabled bool) error {
	e, err := s.expr(name)
	if err != nil {
		return err
	}
	if err := e.node.SetEvalOnTimeChanged(enabled); err != nil {
		return err
	}
	e.markInputDirty(node.EvalOnTimeChanged)
	return nil
}
