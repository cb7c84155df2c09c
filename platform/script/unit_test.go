package script

import (
	"errors"
	"testing"

	"github.com/gatgui/pyexpr/internal/helpers"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFunctionName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{name: "plain", input: "sum1", expected: "_pyexpr_eval_sum1"},
		{name: "underscores kept", input: "my_node", expected: "_pyexpr_eval_my_node"},
		{name: "punctuation replaced", input: "my-node|x", expected: "_pyexpr_eval_my_node_x"},
		{name: "namespace separator", input: "ns:expr", expected: "_pyexpr_eval_ns_expr"},
		{name: "non ascii", input: "é1", expected: "_pyexpr_eval__1"},
		{name: "empty", input: "", expected: "_pyexpr_eval_"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.expected, FunctionName(tt.input))
		})
	}
}

func TestNewUnit(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		bindings   []string
		expression string
		expected   string
	}{
		{
			name:       "single expression is returned",
			bindings:   []string{"a = 1", "b = 2"},
			expression: "a + b",
			expected:   "def f():\n    a = 1\n    b = 2\n    return a + b\n",
		},
		{
			name:       "surrounding whitespace trimmed",
			expression: "  1 + 1 \n",
			expected:   "def f():\n    return 1 + 1\n",
		},
		{
			name:       "tuple expression",
			expression: "1, 2",
			expected:   "def f():\n    return 1, 2\n",
		},
		{
			name:       "single statement kept",
			expression: "x = 1",
			expected:   "def f():\n    x = 1\n",
		},
		{
			name:       "explicit return kept",
			expression: "return 5",
			expected:   "def f():\n    return 5\n",
		},
		{
			name:       "multi line body",
			bindings:   []string{"a = 2"},
			expression: "x = a * 2\nreturn x",
			expected:   "def f():\n    a = 2\n    x = a * 2\n    return x\n",
		},
		{
			name:       "nested block indentation preserved",
			expression: "if True:\n    return 1\nreturn 0",
			expected:   "def f():\n    if True:\n        return 1\n    return 0\n",
		},
		{
			name:       "crlf line endings",
			expression: "x = 1\r\nreturn x",
			expected:   "def f():\n    x = 1\n    return x\n",
		},
		{
			name:     "empty body",
			expected: "def f():\n    pass\n",
		},
		{
			name:       "whitespace only body",
			expression: " \n\t",
			expected:   "def f():\n    pass\n",
		},
		{
			name:     "bindings without expression",
			bindings: []string{"a = 1"},
			expected: "def f():\n    a = 1\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			u := NewUnit("f", tt.bindings, tt.expression)
			assert.Equal(t, tt.expected, u.Source())
			assert.Equal(t, "f", u.Name())
			assert.Equal(t, helpers.Checksum(tt.expected), u.Checksum())
		})
	}
}

func TestUnitSymbolsAndString(t *testing.T) {
	t.Parallel()

	u := NewUnit("_pyexpr_eval_n", []string{"mode = smooth"}, "mode", "smooth")
	assert.Equal(t, []string{"smooth"}, u.Symbols())
	assert.Contains(t, u.String(), "_pyexpr_eval_n")
	assert.Contains(t, u.String(), u.Checksum()[:8])

	same := NewUnit("_pyexpr_eval_n", []string{"mode = smooth"}, "mode", "smooth")
	assert.Equal(t, u.Checksum(), same.Checksum())

	other := NewUnit("_pyexpr_eval_n", []string{"mode = linear"}, "mode", "linear")
	assert.NotEqual(t, u.Checksum(), other.Checksum())
}

func TestEvalError(t *testing.T) {
	t.Parallel()

	cause := errors.New("integer division by zero")
	err := NewEvalError("ZeroDivisionError", "integer division by zero", cause)
	assert.Equal(t, "ZeroDivisionError: integer division by zero", err.Error())
	require.ErrorIs(t, err, cause)

	var target *EvalError
	wrapped := errors.Join(errors.New("compute failed"), err)
	require.ErrorAs(t, wrapped, &target)
	assert.Equal(t, "ZeroDivisionError", target.Class)
}
