// Package token defines the lexical tokens exchanged between the scanners and the parser.
package token

import "fmt"

type Kind string

const (
	KindNumber       = Kind("number")
	KindIdentifier   = Kind("identifier")
	KindString       = Kind("string")
	KindReservedWord = Kind("reserved_word")
	KindSymbol       = Kind("symbol")
)

func (k Kind) String() string {
	return string(k)
}

// IsLexicalClass reports whether tokens of kind k stand for a generic terminal and carry
// their lexeme into the tree.
func (k Kind) IsLexicalClass() bool {
	switch k {
	case KindNumber, KindIdentifier, KindString:
		return true
	}
	return false
}

// Token is one lexeme with its 1-based source line. String lexemes do not include the
// surrounding quotes.
type Token struct {
	Kind   Kind
	Lexeme string
	Line   int
}

func New(kind Kind, lexeme string, line int) *Token {
	return &Token{
		Kind:   kind,
		Lexeme: lexeme,
		Line:   line,
	}
}

func (t *Token) String() string {
	return fmt.Sprintf("%v %q (line %v)", t.Kind, t.Lexeme, t.Line)
}

// Reserved words recognised by the scanners. Only some of them are grammar terminals.
var ReservedWords = []string{
	"int", "float", "void", "return", "while", "cin", "cout", "continue", "break", "main",
	"using", "namespace", "std", "#include",
}

// Symbols recognised by the scanners, longest first within each family.
var Symbols = []string{
	"==", "!=", ">=", "<=", "<<", ">>",
	"{", "}", "(", ")", ",", ";", "+", "-", "*", "/", ">", "<", "=",
}
