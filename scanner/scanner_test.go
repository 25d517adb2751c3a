package scanner

import (
	"errors"
	"strings"
	"testing"

	verr "github.com/amiralimaroufi/cppiler/error"
	"github.com/amiralimaroufi/cppiler/token"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func tok(kind token.Kind, lexeme string, line int) *token.Token {
	return token.New(kind, lexeme, line)
}

func TestScanner(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "cppiler.scanner")
	defer teardown()

	tests := []struct {
		caption string
		src     string
		tokens  []*token.Token
	}{
		{
			caption: "a declaration with two initialised variables",
			src:     `int s = 0 , t = 10 ;`,
			tokens: []*token.Token{
				tok(token.KindReservedWord, "int", 1),
				tok(token.KindIdentifier, "s", 1),
				tok(token.KindSymbol, "=", 1),
				tok(token.KindNumber, "0", 1),
				tok(token.KindSymbol, ",", 1),
				tok(token.KindIdentifier, "t", 1),
				tok(token.KindSymbol, "=", 1),
				tok(token.KindNumber, "10", 1),
				tok(token.KindSymbol, ";", 1),
			},
		},
		{
			caption: "an include line collapses into one reserved word",
			src: `#include <iostream>
using namespace std;`,
			tokens: []*token.Token{
				tok(token.KindReservedWord, "#include", 1),
				tok(token.KindReservedWord, "using", 2),
				tok(token.KindReservedWord, "namespace", 2),
				tok(token.KindReservedWord, "std", 2),
				tok(token.KindSymbol, ";", 2),
			},
		},
		{
			caption: "two-character symbols win over their prefixes",
			src:     `cin >> a >> b; x <= y == z != w >= v << u < t > s`,
			tokens: []*token.Token{
				tok(token.KindReservedWord, "cin", 1),
				tok(token.KindSymbol, ">>", 1),
				tok(token.KindIdentifier, "a", 1),
				tok(token.KindSymbol, ">>", 1),
				tok(token.KindIdentifier, "b", 1),
				tok(token.KindSymbol, ";", 1),
				tok(token.KindIdentifier, "x", 1),
				tok(token.KindSymbol, "<=", 1),
				tok(token.KindIdentifier, "y", 1),
				tok(token.KindSymbol, "==", 1),
				tok(token.KindIdentifier, "z", 1),
				tok(token.KindSymbol, "!=", 1),
				tok(token.KindIdentifier, "w", 1),
				tok(token.KindSymbol, ">=", 1),
				tok(token.KindIdentifier, "v", 1),
				tok(token.KindSymbol, "<<", 1),
				tok(token.KindIdentifier, "u", 1),
				tok(token.KindSymbol, "<", 1),
				tok(token.KindIdentifier, "t", 1),
				tok(token.KindSymbol, ">", 1),
				tok(token.KindIdentifier, "s", 1),
			},
		},
		{
			caption: "strings lose their quotes and comments are skipped",
			src: `cout << "hello world" ; // greet
  return 0;`,
			tokens: []*token.Token{
				tok(token.KindReservedWord, "cout", 1),
				tok(token.KindSymbol, "<<", 1),
				tok(token.KindString, "hello world", 1),
				tok(token.KindSymbol, ";", 1),
				tok(token.KindReservedWord, "return", 2),
				tok(token.KindNumber, "0", 2),
				tok(token.KindSymbol, ";", 2),
			},
		},
		{
			caption: "identifiers that start with a reserved word stay identifiers",
			src:     `integer mainly while_ _x1`,
			tokens: []*token.Token{
				tok(token.KindIdentifier, "integer", 1),
				tok(token.KindIdentifier, "mainly", 1),
				tok(token.KindIdentifier, "while_", 1),
				tok(token.KindIdentifier, "_x1", 1),
			},
		},
		{
			caption: "empty input",
			src:     "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			toks, err := Scan(strings.NewReader(tt.src))
			if err != nil {
				t.Fatal(err)
			}
			testTokens(t, tt.tokens, toks)
		})
	}
}

func TestScanner_InvalidCharacter(t *testing.T) {
	_, err := Scan(strings.NewReader("int a;\nint b = 1 @ 2;"), SourceName("test.cpp"))
	if err == nil {
		t.Fatal("expected error didn't occur")
	}
	var specErr *verr.SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("unexpected error type: %T", err)
	}
	if !errors.Is(err, ErrInvalidCharacter) {
		t.Fatalf("unexpected cause: %v", specErr.Cause)
	}
	if specErr.Row != 2 {
		t.Fatalf("unexpected row; want: 2, got: %v", specErr.Row)
	}
	if !strings.HasPrefix(specErr.Error(), "test.cpp: 2:") {
		t.Fatalf("unexpected message: %v", specErr.Error())
	}
}

func testTokens(t *testing.T, expected, actual []*token.Token) {
	t.Helper()

	if len(actual) != len(expected) {
		t.Fatalf("unexpected token count; want: %v, got: %v (%v)", len(expected), len(actual), actual)
	}
	for i, e := range expected {
		a := actual[i]
		if a.Kind != e.Kind || a.Lexeme != e.Lexeme || a.Line != e.Line {
			t.Fatalf("unexpected token #%v; want: %v, got: %v", i, e, a)
		}
	}
}
