package starlark

import (
	"context"
	"fmt"
	"log/slog"
	"maps"

	"github.com/gatgui/pyexpr/engines/starlark/internal"
	"github.com/gatgui/pyexpr/engines/starlark/internal/compile"
	"github.com/gatgui/pyexpr/internal/helpers"
	"github.com/gatgui/pyexpr/platform"
	"github.com/gatgui/pyexpr/platform/script"
	starlarkLib "go.starlark.net/starlark"
)

// Engine evaluates expression units with the Starlark interpreter.
type Engine struct {
	maxSteps    uint64
	predeclared starlarkLib.StringDict

	logHandler slog.Handler
	logger     *slog.Logger
}

// New creates a Starlark engine configured by opts.
func New(opts ...FunctionalOption) (*Engine, error) {
	e := &Engine{
		predeclared: internal.StarlarkModules(),
	}
	e.applyDefaults()

	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, fmt.Errorf("error applying engine option: %w", err)
		}
	}

	if err := e.validate(); err != nil {
		return nil, fmt.Errorf("invalid engine configuration: %w", err)
	}

	e.logHandler, e.logger = helpers.ResolveLogger(e.logHandler, e.logger, "starlark", "Engine")
	return e, nil
}

func (e *Engine) String() string {
	return "starlark.Engine"
}

// NewEnvironment creates an empty namespace for one node.
func (e *Engine) NewEnvironment(id string) (platform.Environment, error) {
	if id == "" {
		return nil, fmt.Errorf("environment id cannot be empty")
	}
	return newEnvironment(e, id), nil
}

// compile compiles the source of unit. Names unknown to the engine are
// resolved when the unit is called.
func (e *Engine) compile(unit *script.Unit) (*starlarkLib.Program, error) {
	return compile.Compile(unit.Name(), unit.Source(), compile.LateBound(e.predeclared))
}

// globals returns the predeclared values for unit: the engine globals plus
// the unit symbols bound to their own names.
func (e *Engine) globals(unit *script.Unit) starlarkLib.StringDict {
	out := make(starlarkLib.StringDict, len(e.predeclared)+len(unit.Symbols()))
	for _, sym := range unit.Symbols() {
		if starlarkLib.Universe.Has(sym) {
			continue
		}
		out[sym] = starlarkLib.String(sym)
	}
	// engine globals win over symbols
	maps.Copy(out, e.predeclared)
	return out
}

// newThread creates an interpreter thread bound to ctx. The returned stop
// function must be called once the thread is done.
func (e *Engine) newThread(
	ctx context.Context,
	name string,
	logger *slog.Logger,
) (*starlarkLib.Thread, func() bool) {
	thread := &starlarkLib.Thread{
		Name: name,
		Print: func(thread *starlarkLib.Thread, msg string) {
			logger.InfoContext(ctx, msg, "starlark-thread", thread.Name)
		},
	}
	if e.maxSteps > 0 {
		thread.SetMaxExecutionSteps(e.maxSteps)
	}

	stop := context.AfterFunc(ctx, func() {
		thread.Cancel(context.Cause(ctx).Error())
	})
	return thread, stop
}
