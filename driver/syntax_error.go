package driver

import (
	"fmt"
	"strings"

	"github.com/amiralimaroufi/cppiler/token"
)

type SyntaxErrorKind string

const (
	// SyntaxErrorUnexpectedToken means the stack top was a terminal other than the input.
	SyntaxErrorUnexpectedToken = SyntaxErrorKind("unexpected token")

	// SyntaxErrorNoProduction means the table has no production for the stack top and the input.
	SyntaxErrorNoProduction = SyntaxErrorKind("no production")
)

// SyntaxError aborts a parse. Position counts terminals from 0; the appended EOF sits at
// len(tokens), where Token is nil.
type SyntaxError struct {
	Kind SyntaxErrorKind

	// Terminal is the terminal the input offered. It is empty for a token the grammar
	// does not know.
	Terminal string

	Position int
	Token    *token.Token

	// NonTerminal is the stack top of a no-production error.
	NonTerminal string

	// ExpectedTerminals lists what the stack top would have accepted.
	ExpectedTerminals []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	if e.Token != nil {
		fmt.Fprintf(&b, "%v: ", e.Token.Line)
	}
	fmt.Fprintf(&b, "syntax error: %v", e.Kind)
	switch {
	case e.Token == nil:
		fmt.Fprintf(&b, ": unexpected end of input")
	case e.Terminal == "":
		fmt.Fprintf(&b, ": unknown token %q", e.Token.Lexeme)
	default:
		fmt.Fprintf(&b, ": %q", e.Token.Lexeme)
	}
	if e.NonTerminal != "" {
		fmt.Fprintf(&b, " while expanding %v", e.NonTerminal)
	}
	fmt.Fprintf(&b, " at position %v", e.Position)
	if len(e.ExpectedTerminals) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.ExpectedTerminals, ", "))
	}
	return b.String()
}

// DesyncError means a trace and a token stream do not describe the same derivation. A
// trace returned by Parser together with the tokens it parsed never causes one.
type DesyncError struct {
	Step    int
	Message string
}

func (e *DesyncError) Error() string {
	return fmt.Sprintf("tree builder is out of step with the trace at step %v: %v", e.Step, e.Message)
}
