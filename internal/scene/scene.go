package scene

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"strings"

	"github.com/gatgui/pyexpr/internal/helpers"
	"github.com/gatgui/pyexpr/node"
	"github.com/gatgui/pyexpr/platform"
	"github.com/gatgui/pyexpr/platform/attribute"
)

// Scene is an in-memory dependency graph hosting expression nodes. Plain
// objects exist only to be referenced through message attributes.
//
// A Scene is not safe for concurrent use.
type Scene struct {
	engine platform.Engine
	units  attribute.DisplayUnits
	time   float64

	objects map[string]*object
	exprs   map[string]*exprNode
	order   []string

	callbacks  map[node.CallbackID]func(float64)
	nextID     node.CallbackID
	logHandler slog.Handler
	logger     *slog.Logger
}

type object struct {
	name string
	// path is set for hierarchical objects only.
	path string
}

// New creates an empty scene whose expression nodes evaluate with engine.
func New(engine platform.Engine, opts ...FunctionalOption) (*Scene, error) {
	s := &Scene{
		engine:    engine,
		objects:   make(map[string]*object),
		exprs:     make(map[string]*exprNode),
		callbacks: make(map[node.CallbackID]func(float64)),
	}
	s.applyDefaults()

	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, fmt.Errorf("error applying scene option: %w", err)
		}
	}

	if err := s.validate(); err != nil {
		return nil, fmt.Errorf("invalid scene configuration: %w", err)
	}

	s.logHandler, s.logger = helpers.ResolveLogger(s.logHandler, s.logger, "scene", "Scene")
	return s, nil
}

func (s *Scene) String() string {
	return fmt.Sprintf("scene.Scene{Nodes: %d, Objects: %d}", len(s.exprs), len(s.objects))
}

// Units returns the current display units.
func (s *Scene) Units() attribute.DisplayUnits { return s.units }

// SetUnits changes the display units. Cached results are kept until an
// input of their node changes.
func (s *Scene) SetUnits(units attribute.DisplayUnits) { s.units = units }

func (s *Scene) inUse(name string) bool {
	_, isObject := s.objects[name]
	_, isExpr := s.exprs[name]
	return isObject || isExpr
}

// AddObject adds a plain object. An object with a parent, or created with
// hierarchical set, lives in the scene hierarchy and is referenced by its
// full path.
func (s *Scene) AddObject(name, parent string, hierarchical bool) error {
	if name == "" {
		return fmt.Errorf("object name cannot be empty")
	}
	if s.inUse(name) {
		return fmt.Errorf("%w: %s", ErrExists, name)
	}

	obj := &object{name: name}
	switch {
	case parent != "":
		p, ok := s.objects[parent]
		if !ok {
			return fmt.Errorf("%w: parent %s", ErrNotFound, parent)
		}
		if p.path == "" {
			return fmt.Errorf("parent %s is not hierarchical", parent)
		}
		obj.path = p.path + "|" + name
	case hierarchical:
		obj.path = "|" + name
	}

	s.objects[name] = obj
	s.logger.Debug("object added", "name", name, "path", obj.path)
	return nil
}

// AddExprNode creates an expression node. The scene provides the engine,
// logger, display units and time source; opts are applied after them.
func (s *Scene) AddExprNode(name string, opts ...node.FunctionalOption) (*node.Node, error) {
	if s.inUse(name) {
		return nil, fmt.Errorf("%w: %s", ErrExists, name)
	}

	e := newExprNode(s)
	allOpts := append([]node.FunctionalOption{
		node.WithEngine(s.engine),
		node.WithLogger(s.logger),
		node.WithUnits(s.units),
		node.WithTimeSource(s),
	}, opts...)

	n, err := node.New(name, e, allOpts...)
	if err != nil {
		return nil, err
	}
	e.node = n
	s.exprs[name] = e
	s.order = append(s.order, name)
	s.logger.Debug("expression node added", "name", name, "id", n.ID())
	return n, nil
}

// Node returns the expression node called name.
func (s *Scene) Node(name string) (*node.Node, bool) {
	e, ok := s.exprs[name]
	if !ok {
		return nil, false
	}
	return e.node, true
}

// Nodes returns the expression node names in creation order.
func (s *Scene) Nodes() []string {
	return slices.Clone(s.order)
}

// Objects returns the plain object names, sorted.
func (s *Scene) Objects() []string {
	return slices.Sorted(maps.Keys(s.objects))
}

func (s *Scene) expr(name string) (*exprNode, error) {
	e, ok := s.exprs[name]
	if !ok {
		return nil, fmt.Errorf("%w: expression node %s", ErrNotFound, name)
	}
	return e, nil
}

// source resolves a connection source to its node name and full path.
func (s *Scene) source(name string) (attribute.Source, bool) {
	if obj, ok := s.objects[name]; ok {
		return attribute.Source{Name: obj.name, Path: obj.path}, true
	}
	if _, ok := s.exprs[name]; ok {
		return attribute.Source{Name: name}, true
	}
	return attribute.Source{}, false
}

// Rename renames an expression node or a plain object. Connections follow
// the rename.
func (s *Scene) Rename(oldName, newName string) error {
	if newName == "" {
		return fmt.Errorf("name cannot be empty")
	}
	if s.inUse(newName) {
		return fmt.Errorf("%w: %s", ErrExists, newName)
	}

	switch {
	case s.exprs[oldName] != nil:
		e := s.exprs[oldName]
		if err := e.node.Rename(newName); err != nil {
			return err
		}
		delete(s.exprs, oldName)
		s.exprs[newName] = e
		s.order[slices.Index(s.order, oldName)] = newName
	case s.objects[oldName] != nil:
		obj := s.objects[oldName]
		if obj.path != "" {
			return fmt.Errorf("renaming hierarchical object %s is not supported", oldName)
		}
		delete(s.objects, oldName)
		obj.name = newName
		s.objects[newName] = obj
	default:
		return fmt.Errorf("%w: %s", ErrNotFound, oldName)
	}

	s.renameSource(oldName, newName)
	return nil
}

// Delete removes an expression node or a plain object. Message attributes
// connected to it are disconnected.
func (s *Scene) Delete(name string) error {
	if e, ok := s.exprs[name]; ok {
		delete(s.exprs, name)
		s.order = slices.DeleteFunc(s.order, func(n string) bool { return n == name })
		s.disconnectAll(name)
		s.logger.Debug("expression node deleted", "name", name)
		return e.node.Destroy()
	}
	if target, ok := s.objects[name]; ok {
		if target.path != "" {
			for _, obj := range s.objects {
				if strings.HasPrefix(obj.path, target.path+"|") {
					return fmt.Errorf("object %s has children", name)
				}
			}
		}
		delete(s.objects, name)
		s.disconnectAll(name)
		s.logger.Debug("object deleted", "name", name)
		return nil
	}
	return fmt.Errorf("%w: %s", ErrNotFound, name)
}

// Duplicate copies the expression node src, with its dynamic attributes
// and connections, into a new node called dst.
func (s *Scene) Duplicate(src, dst string) (*node.Node, error) {
	e, err := s.expr(src)
	if err != nil {
		return nil, err
	}
	if s.inUse(dst) {
		return nil, fmt.Errorf("%w: %s", ErrExists, dst)
	}

	dup := e.clone()
	n, err := e.node.Duplicate(dst, dup)
	if err != nil {
		return nil, err
	}
	dup.node = n
	s.exprs[dst] = dup
	s.order = append(s.order, dst)
	s.logger.Debug("expression node duplicated", "source", src, "name", dst)
	return n, nil
}

func (s *Scene) disconnectAll(source string) {
	for _, e := range s.exprs {
		e.disconnectSource(source)
	}
}

func (s *Scene) renameSource(oldName, newName string) {
	for _, e := range s.exprs {
		e.renameSource(oldName, newName)
	}
}

// Time returns the current scene time in seconds.
func (s *Scene) Time() float64 { return s.time }

// SetTime changes the scene time and notifies time-change subscribers in
// subscription order.
func (s *Scene) SetTime(seconds float64) {
	s.time = seconds
	for _, id := range slices.Sorted(maps.Keys(s.callbacks)) {
		if fn, ok := s.callbacks[id]; ok {
			fn(seconds)
		}
	}
}

// Subscribe registers fn for time-change events.
func (s *Scene) Subscribe(fn func(seconds float64)) (node.CallbackID, error) {
	if fn == nil {
		return 0, fmt.Errorf("callback cannot be nil")
	}
	s.nextID++
	s.callbacks[s.nextID] = fn
	return s.nextID, nil
}

// Unsubscribe removes a time-change subscription.
func (s *Scene) Unsubscribe(id node.CallbackID) error {
	if _, ok := s.callbacks[id]; !ok {
		return fmt.Errorf("%w: %d", ErrUnknownCallback, id)
	}
	delete(s.callbacks, id)
	return nil
}

var _ node.TimeSource = (*Scene)(nil)
