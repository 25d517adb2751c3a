// Package lexmach is a mini C++ scanner built on lexmachine. It produces the same
// tokens as the default scanner of package scanner.
package lexmach

import (
	"fmt"
	"io"
	"strings"
	"sync"

	verr "github.com/amiralimaroufi/cppiler/error"
	"github.com/amiralimaroufi/cppiler/scanner"
	"github.com/amiralimaroufi/cppiler/token"
	"github.com/npillmayer/schuko/tracing"
	"github.com/timtadh/lexmachine"
	"github.com/timtadh/lexmachine/machines"
)

// tracer traces with key 'cppiler.scanner'.
func tracer() tracing.Trace {
	return tracing.Select("cppiler.scanner")
}

// Token types handed to lexmachine. They index kinds.
const (
	typeReservedWord = iota
	typeSymbol
	typeNumber
	typeIdentifier
	typeString
)

var kinds = []token.Kind{
	token.KindReservedWord,
	token.KindSymbol,
	token.KindNumber,
	token.KindIdentifier,
	token.KindString,
}

// Skip ignores the scanned match.
func Skip(*lexmachine.Scanner, *machines.Match) (interface{}, error) {
	return nil, nil
}

// MakeToken wraps a match into a token of the given type.
func MakeToken(typ int) lexmachine.Action {
	return func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typ, string(m.Bytes), m), nil
	}
}

func literal(lit string) []byte {
	return []byte("\\" + strings.Join(strings.Split(lit, ""), "\\"))
}

func initLexer(lexer *lexmachine.Lexer) {
	lexer.Add([]byte(`( |\t|\n|\r)+`), Skip)
	lexer.Add([]byte(`//[^\n]*`), Skip)
	lexer.Add([]byte(`#include(( |\t)*<[^>\n]*>)?`), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typeReservedWord, "#include", m), nil
	})
	for _, w := range token.ReservedWords {
		if strings.HasPrefix(w, "#") {
			continue
		}
		lexer.Add([]byte(w), MakeToken(typeReservedWord))
	}
	for _, sym := range token.Symbols {
		lexer.Add(literal(sym), MakeToken(typeSymbol))
	}
	lexer.Add([]byte(`[0-9]+`), MakeToken(typeNumber))
	lexer.Add([]byte(`([a-z]|[A-Z]|_)([a-z]|[A-Z]|[0-9]|_)*`), MakeToken(typeIdentifier))
	lexer.Add([]byte(`\"[^"\n]*\"`), func(s *lexmachine.Scanner, m *machines.Match) (interface{}, error) {
		return s.Token(typeString, string(m.Bytes[1:len(m.Bytes)-1]), m), nil
	})
}

var (
	lexerOnce sync.Once
	lexer     *lexmachine.Lexer
	lexerErr  error
)

func compiledLexer() (*lexmachine.Lexer, error) {
	lexerOnce.Do(func() {
		l := lexmachine.NewLexer()
		initLexer(l)
		if err := l.Compile(); err != nil {
			tracer().Errorf("error compiling DFA: %v", err)
			lexerErr = err
			return
		}
		lexer = l
	})
	return lexer, lexerErr
}

type Scanner struct {
	scanner  *lexmachine.Scanner
	filePath string
}

// NewScanner reads src to the end and prepares to scan it. filePath may be empty; when
// set, errors quote the offending line.
func NewScanner(src io.Reader, filePath string) (*Scanner, error) {
	l, err := compiledLexer()
	if err != nil {
		return nil, err
	}
	text, err := io.ReadAll(src)
	if err != nil {
		return nil, err
	}
	s, err := l.Scanner(text)
	if err != nil {
		return nil, err
	}
	return &Scanner{
		scanner:  s,
		filePath: filePath,
	}, nil
}

// Next returns the next token, or nil at the end of the input.
func (lms *Scanner) Next() (*token.Token, error) {
	tok, err, eof := lms.scanner.Next()
	if err != nil {
		if ui, ok := err.(*machines.UnconsumedInput); ok {
			return nil, &verr.SpecError{
				Cause:    scanner.ErrInvalidCharacter,
				Detail:   fmt.Sprintf("%q", failedText(ui)),
				FilePath: lms.filePath,
				Row:      ui.FailLine,
				Col:      ui.FailColumn,
			}
		}
		return nil, err
	}
	if eof {
		return nil, nil
	}
	lt := tok.(*lexmachine.Token)
	return token.New(kinds[lt.Type], lt.Value.(string), lt.StartLine), nil
}

func failedText(ui *machines.UnconsumedInput) string {
	if ui.FailTC < len(ui.Text) {
		return string(ui.Text[ui.FailTC : ui.FailTC+1])
	}
	return string(ui.Text[ui.StartTC:])
}

func (lms *Scanner) Tokens() ([]*token.Token, error) {
	var toks []*token.Token
	for {
		tok, err := lms.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}
		toks = append(toks, tok)
	}
	tracer().Debugf("lexmachine scanned %v tokens", len(toks))
	return toks, nil
}

func Scan(src io.Reader) ([]*token.Token, error) {
	s, err := NewScanner(src, "")
	if err != nil {
		return nil, err
	}
	return s.Tokens()
}
