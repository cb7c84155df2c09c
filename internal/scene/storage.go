package scene

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/gatgui/pyexpr/node"
)

// storage holds the computed outputs of one expression node. A plug is
// dirty until a compute marks it clean.
type storage struct {
	values   map[node.Output]any
	elements map[node.Output]map[int]any
	clean    map[node.Plug]bool
	success  map[node.Output]bool
}

func newStorage() *storage {
	return &storage{
		values:   make(map[node.Output]any),
		elements: make(map[node.Output]map[int]any),
		clean:    make(map[node.Plug]bool),
		success:  make(map[node.Output]bool),
	}
}

func (s *storage) SetInt(o node.Output, v int)        { s.values[o] = v }
func (s *storage) SetDouble(o node.Output, v float64) { s.values[o] = v }
func (s *storage) SetString(o node.Output, v string)  { s.values[o] = v }
func (s *storage) SetBool(o node.Output, v bool)      { s.values[o] = v }

func (s *storage) SetClean(p node.Plug) { s.clean[p] = true }

func (s *storage) ArrayBuilder(o node.Output, size int) node.ArrayBuilder {
	b := &arrayBuilder{storage: s, output: o}
	switch o {
	case node.OutInts:
		b.ints = make([]int, size)
	case node.OutDoubles:
		b.doubles = make([]float64, size)
	default:
		b.strings = make([]string, size)
	}
	return b
}

func (s *storage) markDirty(plugs []node.Plug) {
	for _, p := range plugs {
		delete(s.clean, p)
	}
}

func (s *storage) isClean(p node.Plug) bool {
	return s.clean[p]
}

func (s *storage) elementIndices(o node.Output) []int {
	return slices.Sorted(maps.Keys(s.elements[o]))
}

// value returns a copy of the stored value of p.
func (s *storage) value(p node.Plug) (any, bool) {
	if p.Element {
		v, ok := s.elements[p.Output][p.Index]
		return v, ok
	}
	v, ok := s.values[p.Output]
	if !ok {
		return nil, false
	}
	switch v := v.(type) {
	case []int:
		return slices.Clone(v), true
	case []float64:
		return slices.Clone(v), true
	case []string:
		return slices.Clone(v), true
	}
	return v, true
}

// commit replaces array o by values. Elements beyond the new length are
// removed.
func commit[T any](s *storage, o node.Output, values []T) {
	s.values[o] = values

	for i := range s.elements[o] {
		if i >= len(values) {
			delete(s.clean, node.ElementPlug(o, i))
		}
	}
	elements := make(map[int]any, len(values))
	for i, v := range values {
		elements[i] = v
		s.clean[node.ElementPlug(o, i)] = true
	}
	s.elements[o] = elements
	s.clean[node.Plug{Output: o}] = true
}

type arrayBuilder struct {
	storage *storage
	output  node.Output
	ints    []int
	doubles []float64
	strings []string
}

func (b *arrayBuilder) AddInt(i, v int)            { b.ints[i] = v }
func (b *arrayBuilder) AddDouble(i int, v float64) { b.doubles[i] = v }
func (b *arrayBuilder) AddString(i int, v string)  { b.strings[i] = v }

func (b *arrayBuilder) Commit() {
	switch b.output {
	case node.OutInts:
		commit(b.storage, b.output, b.ints)
	case node.OutDoubles:
		commit(b.storage, b.output, b.doubles)
	default:
		commit(b.storage, b.output, b.strings)
	}
}

// Get returns the value of plug on the expression node called name,
// computing it when it is dirty. The flag is the success of the read that
// produced the value. A verbose evaluation failure is returned along with
// the stored value.
func (s *Scene) Get(ctx context.Context, name string, plug node.Plug) (any, bool, error) {
	e, err := s.expr(name)
	if err != nil {
		return nil, false, err
	}

	var evalErr error
	if !e.outputs.isClean(plug) {
		ok, err := e.node.Compute(ctx, plug, e.outputs)
		if err != nil && !errors.Is(err, node.ErrEvaluationFailed) {
			return nil, false, err
		}
		evalErr = err
		e.outputs.success[plug.Output] = ok
	}

	v, ok := e.outputs.value(plug)
	if !ok {
		return nil, false, errors.Join(evalErr, fmt.Errorf("%w: %s.%s", ErrNoSuchElement, name, plug))
	}
	return v, e.outputs.success[plug.Output], evalErr
}

// IsClean reports whether plug of the expression node called name holds an
// up to date value.
func (s *Scene) IsClean(name string, plug node.Plug) bool {
	e, ok := s.exprs[name]
	return ok && e.outputs.isClean(plug)
}

var _ node.DataBlock = (*storage)(nil)
