/*
Package scanner turns mini C++ source text into tokens.

The default scanner is built on a maleeni lexical specification compiled on first
use. Sub-package lexmach provides an equivalent scanner built on lexmachine.

Both scanners report 1-based lines, strip the quotes of string literals and
collapse an include line such as `#include <iostream>` into a single reserved word
`#include`. Line comments and white space are skipped.
*/
package scanner

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	verr "github.com/amiralimaroufi/cppiler/error"
	"github.com/amiralimaroufi/cppiler/token"
	mlcompiler "github.com/nihei9/maleeni/compiler"
	mldriver "github.com/nihei9/maleeni/driver"
	mlspec "github.com/nihei9/maleeni/spec"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("cppiler.scanner")
}

// ErrInvalidCharacter is the cause of a SpecError reported for input no token matches.
var ErrInvalidCharacter = errors.New("invalid character")

const (
	kindWhiteSpace   = "white_space"
	kindLineComment  = "line_comment"
	kindInclude      = "include"
	kindReservedWord = "reserved_word"
	kindSymbol       = "symbol"
	kindNumber       = "number"
	kindIdentifier   = "identifier"
	kindString       = "string"
)

func alternation(words []string) string {
	var b strings.Builder
	for i, w := range words {
		if i > 0 {
			b.WriteString("|")
		}
		b.WriteString(mlspec.EscapePattern(w))
	}
	return b.String()
}

// LexSpec returns the lexical specification. Entries sharing a match length are
// resolved in favour of the earlier one, so reserved words precede identifiers.
func LexSpec() *mlspec.LexSpec {
	var words []string
	for _, w := range token.ReservedWords {
		if !strings.HasPrefix(w, "#") {
			words = append(words, w)
		}
	}
	entries := []struct {
		kind    string
		pattern string
	}{
		{kindWhiteSpace, `[\u{0009}\u{000A}\u{000D}\u{0020}]+`},
		{kindLineComment, `//[^\u{000A}]*`},
		{kindInclude, `#include|#include[\u{0009}\u{0020}]*<[^>\u{000A}]*>`},
		{kindReservedWord, alternation(words)},
		{kindSymbol, alternation(token.Symbols)},
		{kindNumber, `[0-9]+`},
		{kindIdentifier, `[A-Za-z_][0-9A-Za-z_]*`},
		{kindString, `"[^"\u{000A}]*"`},
	}
	spec := &mlspec.LexSpec{
		Name: "minicpp",
	}
	for _, e := range entries {
		spec.Entries = append(spec.Entries, &mlspec.LexEntry{
			Kind:    mlspec.LexKindName(e.kind),
			Pattern: mlspec.LexPattern(e.pattern),
		})
	}
	return spec
}

var (
	compileOnce sync.Once
	compiled    *mlspec.CompiledLexSpec
	compileErr  error
)

func compiledLexSpec() (*mlspec.CompiledLexSpec, error) {
	compileOnce.Do(func() {
		clspec, err, cErrs := mlcompiler.Compile(LexSpec(), mlcompiler.CompressionLevel(mlcompiler.CompressionLevelMax))
		if err != nil {
			if len(cErrs) > 0 {
				var b strings.Builder
				writeCompileError(&b, cErrs[0])
				for _, cerr := range cErrs[1:] {
					fmt.Fprintf(&b, "\n")
					writeCompileError(&b, cerr)
				}
				compileErr = errors.New(b.String())
				return
			}
			compileErr = err
			return
		}
		compiled = clspec
	})
	return compiled, compileErr
}

func writeCompileError(w io.Writer, cErr *mlcompiler.CompileError) {
	if cErr.Fragment {
		fmt.Fprintf(w, "fragment ")
	}
	fmt.Fprintf(w, "%v: %v", cErr.Kind, cErr.Cause)
	if cErr.Detail != "" {
		fmt.Fprintf(w, ": %v", cErr.Detail)
	}
}

type Option func(s *Scanner)

// FilePath makes errors quote the offending line of the file.
func FilePath(path string) Option {
	return func(s *Scanner) {
		s.filePath = path
	}
}

func SourceName(name string) Option {
	return func(s *Scanner) {
		s.sourceName = name
	}
}

type Scanner struct {
	lex        *mldriver.Lexer
	kindNames  []mlspec.LexKindName
	filePath   string
	sourceName string
}

func NewScanner(src io.Reader, opts ...Option) (*Scanner, error) {
	clspec, err := compiledLexSpec()
	if err != nil {
		return nil, err
	}
	lex, err := mldriver.NewLexer(mldriver.NewLexSpec(clspec), src)
	if err != nil {
		return nil, err
	}
	s := &Scanner{
		lex:       lex,
		kindNames: clspec.KindNames,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Next returns the next token, or nil at the end of the input.
func (s *Scanner) Next() (*token.Token, error) {
	for {
		tok, err := s.lex.Next()
		if err != nil {
			return nil, err
		}
		if tok.EOF {
			return nil, nil
		}
		line := tok.Row + 1
		if tok.Invalid {
			return nil, &verr.SpecError{
				Cause:      ErrInvalidCharacter,
				Detail:     fmt.Sprintf("%q", string(tok.Lexeme)),
				FilePath:   s.filePath,
				SourceName: s.sourceName,
				Row:        line,
				Col:        tok.Col + 1,
			}
		}

		lexeme := string(tok.Lexeme)
		switch s.kindNames[tok.KindID].String() {
		case kindWhiteSpace, kindLineComment:
			continue
		case kindInclude:
			return token.New(token.KindReservedWord, "#include", line), nil
		case kindReservedWord:
			return token.New(token.KindReservedWord, lexeme, line), nil
		case kindSymbol:
			return token.New(token.KindSymbol, lexeme, line), nil
		case kindNumber:
			return token.New(token.KindNumber, lexeme, line), nil
		case kindIdentifier:
			return token.New(token.KindIdentifier, lexeme, line), nil
		case kindString:
			return token.New(token.KindString, lexeme[1:len(lexeme)-1], line), nil
		default:
			return nil, fmt.Errorf("unknown lexical kind: %v", s.kindNames[tok.KindID])
		}
	}
}

// Tokens scans the remaining input.
func (s *Scanner) Tokens() ([]*token.Token, error) {
	var toks []*token.Token
	for {
		tok, err := s.Next()
		if err != nil {
			return nil, err
		}
		if tok == nil {
			break
		}
		toks = append(toks, tok)
	}
	tracer().Debugf("scanned %v tokens", len(toks))
	return toks, nil
}

// Scan tokenizes src with the default scanner.
func Scan(src io.Reader, opts ...Option) ([]*token.Token, error) {
	s, err := NewScanner(src, opts...)
	if err != nil {
		return nil, err
	}
	return s.Tokens()
}
