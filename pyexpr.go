package pyexpr

import (
	"fmt"
	"log/slog"

	"github.com/gatgui/pyexpr/engines/starlark"
	"github.com/gatgui/pyexpr/node"
	"github.com/gatgui/pyexpr/platform/script/loader"
	"github.com/spf13/afero"
)

// NewStarlarkEngine creates the default interpreter engine. A nil handler
// falls back to a text handler on stderr.
func NewStarlarkEngine(handler slog.Handler, opts ...starlark.FunctionalOption) (*starlark.Engine, error) {
	if handler != nil {
		opts = append([]starlark.FunctionalOption{starlark.WithLogHandler(handler)}, opts...)
	}
	return starlark.New(opts...)
}

// NewNode creates an expression node in host evaluated by a new Starlark
// engine. An engine passed through node.WithEngine replaces the default one.
func NewNode(name string, host node.Host, opts ...node.FunctionalOption) (*node.Node, error) {
	engine, err := starlark.New(starlark.WithLogHandler(slog.Default().Handler()))
	if err != nil {
		return nil, err
	}

	allOpts := append([]node.FunctionalOption{node.WithEngine(engine)}, opts...)
	return node.New(name, host, allOpts...)
}

// FromExpressionString creates a node evaluating content.
func FromExpressionString(
	name string,
	host node.Host,
	content string,
	opts ...node.FunctionalOption,
) (*node.Node, error) {
	l, err := loader.NewFromString(content)
	if err != nil {
		return nil, err
	}
	return fromLoader(name, host, l, opts...)
}

// FromExpressionFile creates a node evaluating the content of path on fs.
func FromExpressionFile(
	name string,
	host node.Host,
	fs afero.Fs,
	path string,
	opts ...node.FunctionalOption,
) (*node.Node, error) {
	l, err := loader.NewFromFile(fs, path)
	if err != nil {
		return nil, err
	}
	return fromLoader(name, host, l, opts...)
}

func fromLoader(
	name string,
	host node.Host,
	l loader.Loader,
	opts ...node.FunctionalOption,
) (*node.Node, error) {
	expression, err := loader.ReadAll(l)
	if err != nil {
		return nil, fmt.Errorf("failed to load expression: %w", err)
	}

	allOpts := append([]node.FunctionalOption{node.WithExpression(expression)}, opts...)
	return NewNode(name, host, allOpts...)
}
