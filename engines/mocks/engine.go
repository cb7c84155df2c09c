package mocks

import (
	"context"

	"github.com/gatgui/pyexpr/platform"
	"github.com/gatgui/pyexpr/platform/script"
	"github.com/gatgui/pyexpr/platform/types"
	"github.com/stretchr/testify/mock"
)

// Engine is a mock implementation of platform.Engine for testing purposes.
type Engine struct {
	mock.Mock
}

// NewEnvironment is a mock implementation of the NewEnvironment method.
func (m *Engine) NewEnvironment(id string) (platform.Environment, error) {
	args := m.Called(id)
	env, _ := args.Get(0).(platform.Environment)
	return env, args.Error(1)
}

// Environment is a mock implementation of platform.Environment.
type Environment struct {
	mock.Mock
}

// Declare is a mock implementation of the Declare method.
func (m *Environment) Declare(ctx context.Context, unit *script.Unit) error {
	args := m.Called(ctx, unit)
	return args.Error(0)
}

// Invoke is a mock implementation of the Invoke method.
func (m *Environment) Invoke(
	ctx context.Context,
	unit *script.Unit,
	t types.OutputType,
) (types.Value, error) {
	args := m.Called(ctx, unit, t)
	return args.Get(0).(types.Value), args.Error(1)
}

// ErrorMessage is a mock implementation of the ErrorMessage method.
func (m *Environment) ErrorMessage() string {
	args := m.Called()
	return args.String(0)
}

// Close is a mock implementation of the Close method.
func (m *Environment) Close() error {
	args := m.Called()
	return args.Error(0)
}

var (
	_ platform.Engine      = (*Engine)(nil)
	_ platform.Environment = (*Environment)(nil)
)
