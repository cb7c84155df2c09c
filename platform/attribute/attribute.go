package attribute

// Attribute describes one attribute of a node as seen by the serializer.
type Attribute struct {
	Name string

	// Dynamic is true for attributes added at runtime, outside the static schema.
	Dynamic bool

	// Array attributes carry Elements in physical-index order; Value is unused.
	Array    bool
	Value    Value
	Elements []Value
}

// NewDynamic creates a scalar dynamic attribute.
func NewDynamic(name string, v Value) Attribute {
	return Attribute{Name: name, Dynamic: true, Value: v}
}

// NewDynamicArray creates an array dynamic attribute.
func NewDynamicArray(name string, elements ...Value) Attribute {
	return Attribute{Name: name, Dynamic: true, Array: true, Elements: elements}
}

// NewStatic creates a schema attribute. Static attributes are never serialized.
func NewStatic(name string, v Value) Attribute {
	return Attribute{Name: name, Value: v}
}

// Kind reports the category of the attribute. Arrays report the kind of
// their first element, empty arrays report KindUnsupported.
func (a Attribute) Kind() Kind {
	if !a.Array {
		if a.Value == nil {
			return KindUnsupported
		}
		return a.Value.Kind()
	}
	if len(a.Elements) == 0 || a.Elements[0] == nil {
		return KindUnsupported
	}
	return a.Elements[0].Kind()
}

// Dynamic filters attrs down to the dynamic ones, keeping order.
func Dynamic(attrs []Attribute) []Attribute {
	out := make([]Attribute, 0, len(attrs))
	for _, a := range attrs {
		if a.Dynamic {
			out = append(out, a)
		}
	}
	return out
}
