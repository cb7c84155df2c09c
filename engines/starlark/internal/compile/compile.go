package compile

import (
	"errors"
	"fmt"

	"github.com/gatgui/pyexpr/platform/script"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

var ErrContentEmpty = errors.New("starlark content is empty")

// FileOptions returns the dialect used for expression units: while loops,
// sets and top-level control flow are allowed, recursion is not.
func FileOptions() *syntax.FileOptions {
	return &syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}
}

// LateBound reports every name that is neither a builtin nor in known as
// predeclared, so unknown names fail when evaluated instead of when
// compiled.
func LateBound(known starlarkLib.StringDict) func(string) bool {
	return func(name string) bool {
		return known.Has(name) || !starlarkLib.Universe.Has(name)
	}
}

// Compile parses and compiles source into a Starlark program.
func Compile(
	filename string,
	source string,
	isPredeclared func(string) bool,
) (*starlarkLib.Program, error) {
	if source == "" {
		return nil, ErrContentEmpty
	}

	f, err := FileOptions().Parse(filename, source, 0)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", script.ErrCompileFailed, err)
	}

	prog, err := starlarkLib.FileProgram(f, isPredeclared)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", script.ErrCompileFailed, err)
	}

	return prog, nil
}
