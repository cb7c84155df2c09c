package internal

import (
	starlarkJSON "go.starlark.net/lib/json"
	starlarkMath "go.starlark.net/lib/math"
	starlarkTime "go.starlark.net/lib/time"
	starlarkLib "go.starlark.net/starlark"
	"go.starlark.net/starlarkstruct"
)

// StarlarkModules returns a fresh dictionary of the standard modules
// available to every expression.
func StarlarkModules() starlarkLib.StringDict {
	return starlarkLib.StringDict{
		"json":   starlarkJSON.Module,
		"math":   starlarkMath.Module,
		"time":   starlarkTime.Module,
		"struct": starlarkLib.NewBuiltin("struct", starlarkstruct.Make),
	}
}
