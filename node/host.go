package node

import (
	"github.com/gatgui/pyexpr/platform/attribute"
)

// Host is the dependency graph a node lives in.
type Host interface {
	// Attributes returns every attribute of the node, dynamic ones flagged,
	// in declaration order.
	Attributes() []attribute.Attribute

	// ElementIndices returns the physical indices of the existing element
	// plugs of array output o.
	ElementIndices(o Output) []int

	// MarkDirty flags plugs as needing recomputation.
	MarkDirty(plugs []Plug)
}

// UnitsProvider is implemented by hosts whose display units can change at
// runtime. Nodes on other hosts use the units given at construction.
type UnitsProvider interface {
	DisplayUnits() attribute.DisplayUnits
}

// CallbackID identifies a time-change subscription.
type CallbackID uint64

// TimeSource delivers global time-change events.
type TimeSource interface {
	Subscribe(fn func(seconds float64)) (CallbackID, error)
	Unsubscribe(id CallbackID) error
}

// DataBlock is the output storage written by Compute.
type DataBlock interface {
	SetInt(o Output, v int)
	SetDouble(o Output, v float64)
	SetString(o Output, v string)
	SetBool(o Output, v bool)

	// ArrayBuilder starts a replacement of array output o with size elements.
	ArrayBuilder(o Output, size int) ArrayBuilder

	SetClean(p Plug)
}

// ArrayBuilder fills an array output by index before committing it.
type ArrayBuilder interface {
	AddInt(i, v int)
	AddDouble(i int, v float64)
	AddString(i int, v string)

	// Commit replaces the array and cleans it and all of its elements.
	Commit()
}
