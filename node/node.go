package node

import (
	"fmt"
	"log/slog"

	"github.com/gatgui/pyexpr/internal/helpers"
	"github.com/gatgui/pyexpr/platform"
	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/gatgui/pyexpr/platform/types"
	"github.com/google/uuid"
)

// Node evaluates an expression against its dynamic attributes and caches
// the typed result until an input changes.
//
// A Node is driven by a single-threaded host and is not safe for
// concurrent use.
type Node struct {
	id   string
	name string
	host Host

	expression string
	outputType types.OutputType
	verbose    bool

	// needsEval is true while the cached result is stale.
	needsEval    bool
	result       types.Value
	succeeded    bool
	errorMessage string

	engine     platform.Engine
	env        platform.Environment
	serializer *attribute.Serializer
	units      attribute.DisplayUnits

	timeSource   TimeSource
	subscription CallbackID
	subscribed   bool
	destroyed    bool

	logHandler slog.Handler
	baseLogger *slog.Logger
	logger     *slog.Logger
}

// New creates a node called name living in host. The node starts Dirty
// with an empty expression and the string output type.
func New(name string, host Host, opts ...FunctionalOption) (*Node, error) {
	n := &Node{
		id:   uuid.NewString(),
		name: name,
		host: host,
	}
	n.applyDefaults()

	for _, opt := range opts {
		if err := opt(n); err != nil {
			return nil, fmt.Errorf("error applying node option: %w", err)
		}
	}

	if err := n.validate(); err != nil {
		return nil, fmt.Errorf("invalid node configuration: %w", err)
	}

	n.logHandler, n.baseLogger = helpers.ResolveLogger(n.logHandler, n.logger, "node", "Node")
	if err := n.setupLogging(); err != nil {
		return nil, err
	}
	n.result = types.Zero(n.outputType)

	env, err := n.engine.NewEnvironment(n.id)
	if err != nil {
		return nil, fmt.Errorf("failed to create interpreter environment: %w", err)
	}
	n.env = env

	return n, nil
}

func (n *Node) String() string {
	return fmt.Sprintf("node.Node{Name: %s, ID: %s}", n.name, n.id)
}

// ID returns the unique identity of the node.
func (n *Node) ID() string { return n.id }

// Name returns the node name.
func (n *Node) Name() string { return n.name }

// Rename changes the node name. The evaluated unit is renamed with it.
func (n *Node) Rename(name string) error {
	if name == "" {
		return fmt.Errorf("node name cannot be empty")
	}
	n.name = name
	return n.setupLogging()
}

// setupLogging derives the node logger and the serializer from the base
// logger. It runs again whenever the name changes.
func (n *Node) setupLogging() error {
	n.logger = n.baseLogger.With("node", n.name, "id", n.id)

	serializer, err := attribute.NewSerializer(attribute.WithLogger(n.logger))
	if err != nil {
		return fmt.Errorf("failed to create serializer: %w", err)
	}
	n.serializer = serializer
	return nil
}

func (n *Node) Expression() string { return n.expression }

func (n *Node) OutputType() types.OutputType { return n.outputType }

func (n *Node) Verbose() bool { return n.verbose }

// EvalOnTimeChanged reports whether the time-change subscription is live.
func (n *Node) EvalOnTimeChanged() bool { return n.subscribed }

// NeedsEval reports whether the cached result is stale.
func (n *Node) NeedsEval() bool { return n.needsEval }

// Result returns a copy of the cached result.
func (n *Node) Result() types.Value { return n.result.Clone() }

// Succeeded reports whether the last evaluation succeeded.
func (n *Node) Succeeded() bool { return n.succeeded }

// ErrorMessage returns the diagnostic of the last failed evaluation.
func (n *Node) ErrorMessage() string { return n.errorMessage }

// SetExpression replaces the expression and marks the node Dirty.
func (n *Node) SetExpression(expression string) {
	n.expression = expression
	n.needsEval = true
}

// SetOutputType changes the live output and marks the node Dirty.
func (n *Node) SetOutputType(t types.OutputType) error {
	if !t.Valid() {
		return fmt.Errorf("%w: %s", ErrInvalidOutputType, t)
	}
	n.outputType = t
	n.needsEval = true
	return nil
}

// SetVerbose toggles diagnostics and re-raising of runtime failures. It
// does not invalidate the cached result.
func (n *Node) SetVerbose(verbose bool) {
	n.verbose = verbose
}

func (n *Node) displayUnits() attribute.DisplayUnits {
	if p, ok := n.host.(UnitsProvider); ok {
		return p.DisplayUnits()
	}
	return n.units
}
