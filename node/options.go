package node

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/gatgui/pyexpr/platform"
	"github.com/gatgui/pyexpr/platform/attribute"
	"github.com/gatgui/pyexpr/platform/types"
)

// FunctionalOption is a function that configures a Node instance
type FunctionalOption func(*Node) error

// WithEngine sets the interpreter engine the node evaluates with.
func WithEngine(engine platform.Engine) FunctionalOption {
	return func(n *Node) error {
		if engine == nil {
			return fmt.Errorf("%w: engine cannot be nil", ErrNoEngine)
		}
		n.engine = engine
		return nil
	}
}

// WithLogHandler creates an option to set the log handler for the node.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(n *Node) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		n.logHandler = handler
		n.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the node.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(n *Node) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		n.logger = logger
		n.logHandler = nil
		return nil
	}
}

// WithTimeSource sets the source of time-change events.
func WithTimeSource(ts TimeSource) FunctionalOption {
	return func(n *Node) error {
		if ts == nil {
			return fmt.Errorf("%w: time source cannot be nil", ErrNoTimeSource)
		}
		n.timeSource = ts
		return nil
	}
}

// WithUnits sets the display units used when the host does not provide
// its own.
func WithUnits(units attribute.DisplayUnits) FunctionalOption {
	return func(n *Node) error {
		n.units = units
		return nil
	}
}

// WithExpression sets the initial expression.
func WithExpression(expression string) FunctionalOption {
	return func(n *Node) error {
		n.expression = expression
		return nil
	}
}

// WithOutputType sets the initial output type.
func WithOutputType(t types.OutputType) FunctionalOption {
	return func(n *Node) error {
		if !t.Valid() {
			return fmt.Errorf("%w: %s", ErrInvalidOutputType, t)
		}
		n.outputType = t
		return nil
	}
}

// WithVerbose sets the initial verbose flag.
func WithVerbose(verbose bool) FunctionalOption {
	return func(n *Node) error {
		n.verbose = verbose
		return nil
	}
}

// applyDefaults sets the default values for a node
func (n *Node) applyDefaults() {
	if n.logHandler == nil && n.logger == nil {
		n.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
	n.outputType = types.String
	n.units = attribute.DefaultUnits()
	n.needsEval = true
}

// validate checks if the node configuration is valid
func (n *Node) validate() error {
	if n.name == "" {
		return fmt.Errorf("node name cannot be empty")
	}
	if n.host == nil {
		return ErrNoHost
	}
	if n.engine == nil {
		return ErrNoEngine
	}
	if n.logHandler == nil && n.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	return nil
}
