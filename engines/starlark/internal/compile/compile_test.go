package compile

import (
	"testing"

	"github.com/gatgui/pyexpr/platform/script"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	starlarkLib "go.starlark.net/starlark"
)

func TestCompile(t *testing.T) {
	t.Parallel()

	known := starlarkLib.StringDict{"math": starlarkLib.None}

	tests := []struct {
		name    string
		source  string
		wantErr error
	}{
		{name: "function", source: "def f():\n    return 1\n"},
		{name: "unknown names are late bound", source: "def f():\n    return nothing + 1\n"},
		{name: "while loop", source: "def f():\n    while False:\n        pass\n"},
		{name: "set builtin", source: "def f():\n    return set([1])\n"},
		{name: "syntax error", source: "def f(:\n", wantErr: script.ErrCompileFailed},
		{name: "empty", source: "", wantErr: ErrContentEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			prog, err := Compile("f", tt.source, LateBound(known))
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, prog)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, prog)
		})
	}
}

func TestLateBound(t *testing.T) {
	t.Parallel()

	isPredeclared := LateBound(starlarkLib.StringDict{"math": starlarkLib.None, "len": starlarkLib.None})
	assert.True(t, isPredeclared("math"))
	assert.True(t, isPredeclared("anything"))
	assert.True(t, isPredeclared("len"), "explicit globals win over builtins")
	assert.False(t, isPredeclared("str"))
}

func TestFileOptions(t *testing.T) {
	t.Parallel()

	opts := FileOptions()
	assert.True(t, opts.While)
	assert.True(t, opts.Set)
	assert.True(t, opts.TopLevelControl)
	assert.True(t, opts.GlobalReassign)
	assert.False(t, opts.Recursion)
}
