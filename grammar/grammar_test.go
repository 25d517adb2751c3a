package grammar

import (
	"errors"
	"testing"
)

func TestGrammarBuilder_Build(t *testing.T) {
	g := buildTestGrammar(t, exprGrammar())

	if g.Name() != "expr" {
		t.Fatalf("unexpected name; want: expr, got: %v", g.Name())
	}
	if text := g.ToText(g.StartSymbol()); text != "E" {
		t.Fatalf("the first declared non-terminal must be the start symbol; got: %v", text)
	}
	prods := g.AllProductions()
	if len(prods) != 8 {
		t.Fatalf("unexpected production count; want: 8, got: %v", len(prods))
	}
	for i, prod := range prods {
		if prod.Num() != i+1 {
			t.Fatalf("productions must be numbered in declaration order; index: %v, num: %v", i, prod.Num())
		}
	}
	if s := g.FormatProduction(prods[2]); s != "E' → ε" {
		t.Fatalf("unexpected format; want: %v, got: %v", "E' → ε", s)
	}
	if !prods[2].IsEmpty() || prods[1].IsEmpty() {
		t.Fatalf("unexpected IsEmpty result")
	}

	genSym := newTestSymbolGenerator(t, g)
	alts := g.Productions(genSym("F"))
	if len(alts) != 2 || g.FormatProduction(alts[0]) != "F → ( E )" || g.FormatProduction(alts[1]) != "F → id" {
		t.Fatalf("alternatives must keep their declaration order")
	}
}

func TestGrammarBuilder_Start(t *testing.T) {
	g := buildTestGrammar(t, exprGrammar().Start("T"))
	if text := g.ToText(g.StartSymbol()); text != "T" {
		t.Fatalf("unexpected start symbol; want: T, got: %v", text)
	}
}

func TestGrammarBuilder_Build_Error(t *testing.T) {
	tests := []struct {
		caption string
		gram    func() *GrammarBuilder
		err     *SemanticError
	}{
		{
			caption: "a grammar without productions",
			gram: func() *GrammarBuilder {
				return NewGrammarBuilder("empty").Terminals("a").NonTerminals("S")
			},
			err: semErrNoProduction,
		},
		{
			caption: "an alternative refers to an undeclared symbol",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("undefined")
				b.Terminals("a")
				b.NonTerminals("S")
				b.Production("S", "a", "b")
				return b
			},
			err: semErrUndefinedSym,
		},
		{
			caption: "an undeclared LHS",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("undefined-lhs")
				b.Terminals("a")
				b.NonTerminals("S")
				b.Production("S", "a")
				b.Production("X", "a")
				return b
			},
			err: semErrUndefinedSym,
		},
		{
			caption: "the same alternative is declared twice",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("duplicate")
				b.Terminals("a")
				b.NonTerminals("S")
				b.Production("S", "a")
				b.Production("S", "a")
				return b
			},
			err: semErrDuplicateProduction,
		},
		{
			caption: "a terminal is declared twice",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("duplicate-terminal")
				b.Terminals("a", "a")
				b.NonTerminals("S")
				b.Production("S", "a")
				return b
			},
			err: semErrDuplicateTerminal,
		},
		{
			caption: "a name is both a terminal and a non-terminal",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("duplicate-name")
				b.Terminals("a")
				b.NonTerminals("S", "a")
				b.Production("S", "a")
				return b
			},
			err: semErrDuplicateName,
		},
		{
			caption: "epsilon is mixed with other symbols",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("mixed")
				b.Terminals("a")
				b.NonTerminals("S")
				b.Production("S", "a", Epsilon)
				return b
			},
			err: semErrEpsilonMixed,
		},
		{
			caption: "a declared non-terminal has no alternative",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("no-alternative")
				b.Terminals("a")
				b.NonTerminals("S", "A")
				b.Production("S", "a")
				return b
			},
			err: semErrNoAlternative,
		},
		{
			caption: "the start symbol is not a non-terminal",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("bad-start")
				b.Terminals("a")
				b.NonTerminals("S")
				b.Production("S", "a")
				b.Start("a")
				return b
			},
			err: semErrStartNotDefined,
		},
		{
			caption: "a terminal uses the end-of-input name",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("reserved")
				b.Terminals(EOF)
				b.NonTerminals("S")
				b.Production("S", EOF)
				return b
			},
			err: semErrReservedName,
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			_, err := tt.gram().Build()
			if err == nil {
				t.Fatal("expected error didn't occur")
			}
			if !errors.Is(err, tt.err) {
				t.Fatalf("unexpected error; want: %v, got: %v", tt.err, err)
			}
		})
	}
}
