package node

import (
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/gatgui/pyexpr/engines/mocks"
	"github.com/gatgui/pyexpr/engines/starlark"
	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// testHost is an in-memory Host recording invalidations.
type testHost struct {
	attrs    []attribute.Attribute
	elements map[Output][]int
	dirty    [][]Plug
}

func newTestHost(attrs ...attribute.Attribute) *testHost {
	return &testHost{attrs: attrs, elements: make(map[Output][]int)}
}

func (h *testHost) Attributes() []attribute.Attribute { return h.attrs }

func (h *testHost) ElementIndices(o Output) []int { return h.elements[o] }

func (h *testHost) MarkDirty(plugs []Plug) { h.dirty = append(h.dirty, plugs) }

// unitsHost reports display units that can change after node creation.
type unitsHost struct {
	*testHost
	units attribute.DisplayUnits
}

func (h *unitsHost) DisplayUnits() attribute.DisplayUnits { return h.units }

// testTimeSource keeps subscribed callbacks until they are removed and
// counts the calls made to it.
type testTimeSource struct {
	next         CallbackID
	callbacks    map[CallbackID]func(float64)
	subscribes   int
	unsubscribes int
}

func newTestTimeSource() *testTimeSource {
	return &testTimeSource{callbacks: make(map[CallbackID]func(float64))}
}

func (ts *testTimeSource) Subscribe(fn func(float64)) (CallbackID, error) {
	ts.subscribes++
	ts.next++
	ts.callbacks[ts.next] = fn
	return ts.next, nil
}

func (ts *testTimeSource) Unsubscribe(id CallbackID) error {
	ts.unsubscribes++
	if _, ok := ts.callbacks[id]; !ok {
		return fmt.Errorf("unknown callback %d", id)
	}
	delete(ts.callbacks, id)
	return nil
}

func (ts *testTimeSource) set(seconds float64) {
	for _, fn := range ts.callbacks {
		fn(seconds)
	}
}

// testBlock stores whatever Compute writes.
type testBlock struct {
	ints    map[Output]int
	doubles map[Output]float64
	strings map[Output]string
	bools   map[Output]bool
	arrays  map[Output][]any
	clean   []Plug
}

func newTestBlock() *testBlock {
	return &testBlock{
		ints:    make(map[Output]int),
		doubles: make(map[Output]float64),
		strings: make(map[Output]string),
		bools:   make(map[Output]bool),
		arrays:  make(map[Output][]any),
	}
}

func (b *testBlock) SetInt(o Output, v int)        { b.ints[o] = v }
func (b *testBlock) SetDouble(o Output, v float64) { b.doubles[o] = v }
func (b *testBlock) SetString(o Output, v string)  { b.strings[o] = v }
func (b *testBlock) SetBool(o Output, v bool)      { b.bools[o] = v }
func (b *testBlock) SetClean(p Plug)               { b.clean = append(b.clean, p) }

func (b *testBlock) ArrayBuilder(o Output, size int) ArrayBuilder {
	return &testBuilder{block: b, output: o, values: make([]any, size)}
}

type testBuilder struct {
	block  *testBlock
	output Output
	values []any
}

func (b *testBuilder) AddInt(i, v int)            { b.values[i] = v }
func (b *testBuilder) AddDouble(i int, v float64) { b.values[i] = v }
func (b *testBuilder) AddString(i int, v string)  { b.values[i] = v }

func (b *testBuilder) Commit() {
	b.block.arrays[b.output] = b.values
	b.block.clean = append(b.block.clean, Plug{Output: b.output})
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

// newStarlarkNode creates a node evaluated by a real Starlark engine.
func newStarlarkNode(t *testing.T, host Host, opts ...FunctionalOption) *Node {
	t.Helper()
	engine, err := starlark.New(starlark.WithLogger(testLogger()))
	require.NoError(t, err)

	opts = append([]FunctionalOption{WithEngine(engine), WithLogger(testLogger())}, opts...)
	n, err := New("expr1", host, opts...)
	require.NoError(t, err)
	return n
}

// newMockNode creates a node on a mocked engine and returns its environment.
func newMockNode(t *testing.T, host Host, opts ...FunctionalOption) (*Node, *mocks.Environment) {
	t.Helper()
	env := new(mocks.Environment)
	engine := new(mocks.Engine)
	engine.On("NewEnvironment", mock.Anything).Return(env, nil)

	opts = append([]FunctionalOption{WithEngine(engine), WithLogger(testLogger())}, opts...)
	n, err := New("expr1", host, opts...)
	require.NoError(t, err)
	return n, env
}
