package starlark

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/gatgui/pyexpr/engines/starlark/internal"
	"github.com/gatgui/pyexpr/platform/script"
	"github.com/gatgui/pyexpr/platform/types"
	starlarkLib "go.starlark.net/starlark"
)

// ErrEnvironmentClosed is returned by calls on a closed environment.
var ErrEnvironmentClosed = errors.New("environment is closed")

// Environment is the namespace of one node. It holds the unit declared
// last: declaring a unit under another name, as after a rename, drops the
// previous one. Close drops everything.
type Environment struct {
	id     string
	engine *Engine

	mu           sync.Mutex
	namespace    starlarkLib.StringDict
	checksums    map[string]string
	errorMessage string
	closed       bool

	logger *slog.Logger
}

func newEnvironment(engine *Engine, id string) *Environment {
	return &Environment{
		id:        id,
		engine:    engine,
		namespace: make(starlarkLib.StringDict),
		checksums: make(map[string]string),
		logger:    engine.logger.With("environment", id),
	}
}

func (env *Environment) String() string {
	return fmt.Sprintf("starlark.Environment{ID: %s}", env.id)
}

// Declare compiles unit and binds its function in the namespace. Declaring
// a unit identical to the bound one is a no-op.
func (env *Environment) Declare(ctx context.Context, unit *script.Unit) error {
	logger := env.logger.WithGroup("Declare")

	env.mu.Lock()
	defer env.mu.Unlock()

	if env.closed {
		return ErrEnvironmentClosed
	}
	if err := ctx.Err(); err != nil {
		return fmt.Errorf("declare %s: %w", unit.Name(), err)
	}
	if env.checksums[unit.Name()] == unit.Checksum() {
		logger.DebugContext(ctx, "unit unchanged", "unit", unit.Name())
		return nil
	}

	prog, err := env.engine.compile(unit)
	if err != nil {
		logger.DebugContext(ctx, "compile failed", "unit", unit.Name(), "error", err)
		return err
	}
	logger.DebugContext(ctx, "unit compiled", "unit", unit.Name())

	thread, stop := env.engine.newThread(ctx, "declare:"+unit.Name(), env.logger)
	defer stop()

	globals, err := prog.Init(thread, env.engine.globals(unit))
	if err != nil {
		return fmt.Errorf("%w: %w", script.ErrCompileFailed, err)
	}

	fn, ok := globals[unit.Name()]
	if !ok {
		return fmt.Errorf("%w: %s not defined by its source", script.ErrNotDeclared, unit.Name())
	}
	clear(env.namespace)
	clear(env.checksums)
	env.namespace[unit.Name()] = fn
	env.checksums[unit.Name()] = unit.Checksum()
	return nil
}

// Invoke calls a declared unit and converts the result to t.
func (env *Environment) Invoke(
	ctx context.Context,
	unit *script.Unit,
	t types.OutputType,
) (types.Value, error) {
	logger := env.logger.WithGroup("Invoke")

	env.mu.Lock()
	defer env.mu.Unlock()

	env.errorMessage = ""
	if env.closed {
		return types.Zero(t), ErrEnvironmentClosed
	}

	fn, ok := env.namespace[unit.Name()]
	if !ok {
		err := fmt.Errorf("%w: %s", script.ErrNotDeclared, unit.Name())
		env.errorMessage = err.Error()
		return types.Zero(t), err
	}

	if err := ctx.Err(); err != nil {
		return types.Zero(t), env.fail(script.NewEvalError(internal.ClassTimeout, err.Error(), err))
	}

	thread, stop := env.engine.newThread(ctx, unit.Name(), env.logger)
	defer stop()

	result, err := starlarkLib.Call(thread, fn, nil, nil)
	if err != nil {
		logger.DebugContext(ctx, "call failed", "unit", unit.Name(), "error", err)
		return types.Zero(t), env.fail(internal.Classify(err))
	}

	value, err := internal.ToValue(result, t)
	if err != nil {
		return types.Zero(t), env.fail(script.NewEvalError(internal.ClassType, err.Error(), err))
	}

	logger.DebugContext(ctx, "unit evaluated", "unit", unit.Name(), "steps", thread.Steps)
	return value, nil
}

func (env *Environment) fail(err *script.EvalError) error {
	env.errorMessage = err.Error()
	return err
}

// ErrorMessage returns the failure of the most recent Invoke.
func (env *Environment) ErrorMessage() string {
	env.mu.Lock()
	defer env.mu.Unlock()
	return env.errorMessage
}

// Close drops every declared unit. Closing twice is a no-op.
func (env *Environment) Close() error {
	env.mu.Lock()
	defer env.mu.Unlock()

	env.closed = true
	clear(env.namespace)
	clear(env.checksums)
	return nil
}
