package internal

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gatgui/pyexpr/platform/script"
	starlarkLib "go.starlark.net/starlark"
)

// Exception class names reported for interpreter failures.
const (
	ClassZeroDivision = "ZeroDivisionError"
	ClassName         = "NameError"
	ClassIndex        = "IndexError"
	ClassKey          = "KeyError"
	ClassAttribute    = "AttributeError"
	ClassType         = "TypeError"
	ClassValue        = "ValueError"
	ClassRecursion    = "RecursionError"
	ClassTimeout      = "TimeoutError"
	ClassException    = "Exception"
	ClassFallback     = "EvalError"
)

var (
	uninitializedRe = regexp.MustCompile(`predeclared variable (\S+) is uninitialized`)
	keyRe           = regexp.MustCompile(`^key .+ not in `)
)

type rule struct {
	class    string
	contains []string
}

// rules are checked in order; the first match wins.
var rules = []rule{
	{ClassTimeout, []string{"Starlark computation cancelled"}},
	{ClassRecursion, []string{"called recursively"}},
	{ClassZeroDivision, []string{"by zero"}},
	{ClassAttribute, []string{"field or method"}},
	{ClassIndex, []string{"index"}},
	{ClassValue, []string{"invalid literal", "invalid syntax", "empty sequence", "out of range", "not in list"}},
	{ClassType, []string{
		"unknown binary op", "unknown unary op", "unsupported", "not iterable",
		"not callable", "invalid call", "not hashable", "unhashable",
		"missing argument", "unexpected keyword", "does not accept",
		"got ", "want ",
	}},
}

// Classify maps an interpreter error to an exception class and message.
func Classify(err error) *script.EvalError {
	msg := err.Error()
	var evalErr *starlarkLib.EvalError
	if errors.As(err, &evalErr) {
		msg = evalErr.Msg
	}

	if m := uninitializedRe.FindStringSubmatch(msg); m != nil {
		return script.NewEvalError(ClassName, fmt.Sprintf("name '%s' is not defined", m[1]), err)
	}
	if rest, ok := strings.CutPrefix(msg, "fail: "); ok {
		return script.NewEvalError(ClassException, rest, err)
	}
	if keyRe.MatchString(msg) {
		return script.NewEvalError(ClassKey, msg, err)
	}
	if errors.Is(err, script.ErrTypeMismatch) {
		return script.NewEvalError(ClassType, msg, err)
	}

	for _, r := range rules {
		for _, needle := range r.contains {
			if strings.Contains(msg, needle) {
				return script.NewEvalError(r.class, msg, err)
			}
		}
	}
	return script.NewEvalError(ClassFallback, msg, err)
}
