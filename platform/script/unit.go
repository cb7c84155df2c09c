package script

import (
	"fmt"
	"strings"

	"github.com/gatgui/pyexpr/internal/helpers"
	"go.starlark.net/syntax"
)

// FunctionPrefix starts the name of every synthesized unit.
const FunctionPrefix = "_pyexpr_eval_"

const indent = "    "

// FunctionName returns the unit name for a node. Characters that are not
// valid in an identifier are replaced by underscores.
func FunctionName(nodeName string) string {
	var sb strings.Builder
	sb.Grow(len(FunctionPrefix) + len(nodeName))
	sb.WriteString(FunctionPrefix)
	for _, r := range nodeName {
		if r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			sb.WriteRune(r)
			continue
		}
		sb.WriteByte('_')
	}
	return sb.String()
}

// Unit is a named, zero-argument callable synthesized from the bindings of
// a node and its expression body.
type Unit struct {
	name     string
	source   string
	checksum string
	symbols  []string
}

// NewUnit synthesizes the definition of a function called name whose body is
// the bindings followed by the expression. A single-line expression is
// returned; longer bodies must return explicitly. Symbols lists bare names
// the bindings refer to, such as enum fields.
func NewUnit(name string, bindings []string, expression string, symbols ...string) *Unit {
	var sb strings.Builder
	fmt.Fprintf(&sb, "def %s():\n", name)

	body := bodyLines(expression)
	if len(bindings) == 0 && len(body) == 0 {
		sb.WriteString(indent + "pass\n")
	}
	for _, line := range bindings {
		sb.WriteString(indent + line + "\n")
	}
	for _, line := range body {
		sb.WriteString(indent + line + "\n")
	}

	source := sb.String()
	return &Unit{
		name:     name,
		source:   source,
		checksum: helpers.Checksum(source),
		symbols:  symbols,
	}
}

// bodyLines splits the expression into lines, promoting a lone expression
// to a return statement.
func bodyLines(expression string) []string {
	expression = strings.ReplaceAll(expression, "\r\n", "\n")
	expression = strings.TrimRight(expression, " \t\n")
	if strings.TrimSpace(expression) == "" {
		return nil
	}

	lines := strings.Split(expression, "\n")
	if len(lines) == 1 {
		line := strings.TrimSpace(lines[0])
		if isExpression(line) {
			return []string{"return " + line}
		}
		return []string{line}
	}
	return lines
}

func isExpression(line string) bool {
	opts := syntax.FileOptions{Set: true}
	_, err := opts.ParseExpr("", line, 0)
	return err == nil
}

func (u *Unit) String() string {
	return fmt.Sprintf("script.Unit{Name: %s, SHA256: %s}", u.name, u.checksum[:8])
}

// Name returns the function name.
func (u *Unit) Name() string { return u.name }

// Source returns the complete function definition.
func (u *Unit) Source() string { return u.source }

// Checksum returns the SHA-256 of Source.
func (u *Unit) Checksum() string { return u.checksum }

// Symbols returns the bare names referenced by the bindings.
func (u *Unit) Symbols() []string { return u.symbols }
