package platform

import (
	"context"

	"github.com/gatgui/pyexpr/platform/script"
	"github.com/gatgui/pyexpr/platform/types"
)

// Engine creates interpreter environments.
type Engine interface {
	// NewEnvironment returns an isolated namespace identified by id.
	NewEnvironment(id string) (Environment, error)
}

// Environment is the private interpreter namespace of one node. Units
// declared in one environment are never visible from another.
type Environment interface {
	// Declare compiles the unit and binds it by name in the namespace,
	// replacing any previous definition. Compilation failures wrap
	// script.ErrCompileFailed.
	Declare(ctx context.Context, unit *script.Unit) error

	// Invoke calls a declared unit and converts its return value to t.
	// A runtime failure or an impossible conversion is returned as a
	// *script.EvalError and recorded as the environment error message.
	// A None result converts to the zero value of t.
	Invoke(ctx context.Context, unit *script.Unit, t types.OutputType) (types.Value, error)

	// ErrorMessage is the failure recorded by the most recent Invoke, or
	// an empty string when it succeeded.
	ErrorMessage() string

	// Close releases the namespace.
	Close() error
}
