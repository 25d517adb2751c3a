package grammar

import (
	"testing"

	"github.com/amiralimaroufi/cppiler/grammar/symbol"
)

type cell struct {
	nonTerminal string
	terminal    string
	production  int
}

func TestAnalyze(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()

	tests := []struct {
		caption    string
		gram       func() *GrammarBuilder
		cells      []cell
		overwrites []*TableOverwrite
	}{
		{
			caption: "an LL(1) expression grammar fills each cell once",
			gram:    exprGrammar,
			cells: []cell{
				{"E", "(", 1},
				{"E", "id", 1},
				{"E'", "+", 2},
				{"E'", ")", 3},
				{"E'", EOF, 3},
				{"T", "(", 4},
				{"T", "id", 4},
				{"T'", "*", 5},
				{"T'", "+", 6},
				{"T'", ")", 6},
				{"T'", EOF, 6},
				{"F", "(", 7},
				{"F", "id", 8},
			},
		},
		{
			caption: "alternatives sharing a FIRST terminal leave the later one in the cell",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("common-prefix")
				b.Terminals("a", "b")
				b.NonTerminals("S")
				b.Production("S", "a")
				b.Production("S", "a", "b")
				return b
			},
			cells: []cell{
				{"S", "a", 2},
			},
			overwrites: []*TableOverwrite{
				{Previous: 1, Adopted: 2, ResolvedBy: ResolvedByProdOrder},
			},
		},
		{
			caption: "an epsilon alternative written through FOLLOW overwrites a FIRST entry",
			gram: func() *GrammarBuilder {
				b := NewGrammarBuilder("dangling")
				b.Terminals("if", "else", "x")
				b.NonTerminals("S", "E")
				b.Production("S", "if", "S", "E")
				b.Production("S", "x")
				b.Production("E", "else", "S")
				b.Production("E", Epsilon)
				return b
			},
			cells: []cell{
				{"S", "if", 1},
				{"S", "x", 2},
				{"E", "else", 4},
				{"E", EOF, 4},
			},
			overwrites: []*TableOverwrite{
				{Previous: 3, Adopted: 4, ResolvedBy: ResolvedByProdOrder},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			g := buildTestGrammar(t, tt.gram())
			a, err := Analyze(g)
			if err != nil {
				t.Fatal(err)
			}
			genSym := newTestSymbolGenerator(t, g)

			filled := 0
			for _, e := range a.Table.Entries() {
				if e != 0 {
					filled++
				}
			}
			if filled != len(tt.cells) {
				t.Fatalf("unexpected number of filled cells; want: %v, got: %v", len(tt.cells), filled)
			}
			for _, c := range tt.cells {
				prod, ok := a.Table.Lookup(genSym(c.nonTerminal), genSym(c.terminal))
				if !ok {
					t.Fatalf("cell [%v, %v] is empty", c.nonTerminal, c.terminal)
				}
				if prod != c.production {
					t.Fatalf("cell [%v, %v]: want: %v, got: %v", c.nonTerminal, c.terminal, c.production, prod)
				}
			}

			ows := a.Table.Overwrites()
			if len(ows) != len(tt.overwrites) {
				t.Fatalf("unexpected overwrites; want: %v, got: %v", len(tt.overwrites), len(ows))
			}
			for i, ow := range tt.overwrites {
				if ows[i].Previous != ow.Previous || ows[i].Adopted != ow.Adopted || ows[i].ResolvedBy != ow.ResolvedBy {
					t.Fatalf("unexpected overwrite #%v; want: %+v, got: %+v", i, ow, ows[i])
				}
			}
		})
	}
}

// Every filled cell must name an alternative of its row whose FIRST contains the column,
// or a nullable alternative whose LHS is followed by the column.
func TestAnalyze_CellValidity(t *testing.T) {
	g := buildTestGrammar(t, exprGrammar())
	a, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	terms := append(g.Terminals(), symbol.SymbolEOF)
	for _, nt := range g.NonTerminals() {
		for _, term := range terms {
			num, ok := a.Table.Lookup(nt, term)
			if !ok {
				continue
			}
			prod, ok := g.Production(num)
			if !ok {
				t.Fatalf("cell [%v, %v] refers to an unknown production %v", g.ToText(nt), g.ToText(term), num)
			}
			if prod.LHS() != nt {
				t.Fatalf("cell [%v, %v] refers to a production of another non-terminal", g.ToText(nt), g.ToText(term))
			}
			fst, empty, err := a.First.Sequence(prod.RHS())
			if err != nil {
				t.Fatal(err)
			}
			if containsSymbol(fst, term) {
				continue
			}
			if empty && containsSymbol(a.Follow.Of(nt), term) {
				continue
			}
			t.Fatalf("cell [%v, %v] holds %v, which cannot start with the column", g.ToText(nt), g.ToText(term), g.FormatProduction(prod))
		}
	}
}

func TestAnalyze_Deterministic(t *testing.T) {
	a1, err := Analyze(buildTestGrammar(t, exprGrammar()))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 5; i++ {
		a2, err := Analyze(buildTestGrammar(t, exprGrammar()))
		if err != nil {
			t.Fatal(err)
		}
		e1 := a1.Table.Entries()
		e2 := a2.Table.Entries()
		if len(e1) != len(e2) {
			t.Fatalf("table sizes differ; %v vs %v", len(e1), len(e2))
		}
		for j := range e1 {
			if e1[j] != e2[j] {
				t.Fatalf("tables differ at %v; %v vs %v", j, e1[j], e2[j])
			}
		}
	}
}

func TestParsingTable_LookupRejectsNonTableSymbols(t *testing.T) {
	g := buildTestGrammar(t, exprGrammar())
	a, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	genSym := newTestSymbolGenerator(t, g)
	if _, ok := a.Table.Lookup(genSym("E"), symbol.SymbolEpsilon); ok {
		t.Fatal("epsilon must never be a table column")
	}
	if _, ok := a.Table.Lookup(genSym("id"), genSym("id")); ok {
		t.Fatal("a terminal must never be a table row")
	}
}

func containsSymbol(syms []symbol.Symbol, sym symbol.Symbol) bool {
	for _, s := range syms {
		if s == sym {
			return true
		}
	}
	return false
}
