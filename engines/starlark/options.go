package starlark

import (
	"fmt"
	"log/slog"
	"os"

	starlarkLib "go.starlark.net/starlark"
)

// FunctionalOption is a function that configures an Engine instance
type FunctionalOption func(*Engine) error

// WithLogHandler creates an option to set the log handler for the engine.
// This is the preferred option for logging configuration as it provides
// more flexibility through the slog.Handler interface.
func WithLogHandler(handler slog.Handler) FunctionalOption {
	return func(e *Engine) error {
		if handler == nil {
			return fmt.Errorf("log handler cannot be nil")
		}
		e.logHandler = handler
		// Clear logger if handler is explicitly set
		e.logger = nil
		return nil
	}
}

// WithLogger creates an option to set a specific logger for the engine.
func WithLogger(logger *slog.Logger) FunctionalOption {
	return func(e *Engine) error {
		if logger == nil {
			return fmt.Errorf("logger cannot be nil")
		}
		e.logger = logger
		// Clear handler if logger is explicitly set
		e.logHandler = nil
		return nil
	}
}

// WithMaxSteps limits the number of interpreter steps of every declaration
// and invocation. Zero means unlimited.
func WithMaxSteps(steps uint64) FunctionalOption {
	return func(e *Engine) error {
		e.maxSteps = steps
		return nil
	}
}

// WithPredeclared adds global values visible to every expression. They
// override the standard modules of the same name.
func WithPredeclared(globals starlarkLib.StringDict) FunctionalOption {
	return func(e *Engine) error {
		for name, v := range globals {
			if v == nil {
				return fmt.Errorf("predeclared value %q cannot be nil", name)
			}
			e.predeclared[name] = v
		}
		return nil
	}
}

// applyDefaults sets the default values for an engine
func (e *Engine) applyDefaults() {
	if e.logHandler == nil && e.logger == nil {
		e.logHandler = slog.NewTextHandler(os.Stderr, nil)
	}
}

// validate checks if the engine configuration is valid
func (e *Engine) validate() error {
	if e.logHandler == nil && e.logger == nil {
		return fmt.Errorf("either log handler or logger must be specified")
	}
	return nil
}
