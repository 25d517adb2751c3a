package driver

import (
	"github.com/amiralimaroufi/cppiler/token"
)

// Names of the generic terminals that stand for lexical classes.
const (
	TerminalIdentifier = "identifier"
	TerminalNumber     = "number"
	TerminalString     = "string"
)

// terminalNil is the terminal of a token the grammar does not know. No table cell has it
// as a column, so it always ends the parse with a syntax error.
const terminalNil = 0

// TerminalName returns the name of the terminal tok maps to. It is empty when the
// lexeme of a reserved word or symbol collides with a generic terminal name.
func TerminalName(tok *token.Token) string {
	switch tok.Kind {
	case token.KindIdentifier:
		return TerminalIdentifier
	case token.KindNumber:
		return TerminalNumber
	case token.KindString:
		return TerminalString
	}
	if isGenericTerminalName(tok.Lexeme) {
		return ""
	}
	return tok.Lexeme
}

func isGenericTerminalName(name string) bool {
	switch name {
	case TerminalIdentifier, TerminalNumber, TerminalString:
		return true
	}
	return false
}

// terminalStream maps tokens to terminal numbers and appends EOF.
type terminalStream struct {
	terms []int
	toks  []*token.Token
}

func newTerminalStream(gram Grammar, toks []*token.Token) *terminalStream {
	terms := make([]int, 0, len(toks)+1)
	for _, tok := range toks {
		num, ok := gram.ToTerminal(TerminalName(tok))
		if !ok || num == gram.EOF() || num == gram.Epsilon() {
			num = terminalNil
		}
		terms = append(terms, num)
	}
	terms = append(terms, gram.EOF())
	return &terminalStream{
		terms: terms,
		toks:  toks,
	}
}

func (s *terminalStream) terminal(pos int) int {
	return s.terms[pos]
}

// token returns the token at pos, or nil at the end of input.
func (s *terminalStream) token(pos int) *token.Token {
	if pos >= len(s.toks) {
		return nil
	}
	return s.toks[pos]
}
