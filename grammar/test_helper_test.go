package grammar

import (
	"sort"
	"testing"

	"github.com/amiralimaroufi/cppiler/grammar/symbol"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func setupTracing(t *testing.T) func() {
	return gotestingadapter.QuickConfig(t, "cppiler.grammar")
}

func buildTestGrammar(t *testing.T, b *GrammarBuilder) *Grammar {
	t.Helper()

	g, err := b.Build()
	if err != nil {
		t.Fatalf("failed to build a grammar: %v", err)
	}
	return g
}

// exprGrammar is the textbook LL(1) expression grammar.
func exprGrammar() *GrammarBuilder {
	b := NewGrammarBuilder("expr")
	b.Terminals("+", "*", "(", ")", "id")
	b.NonTerminals("E", "E'", "T", "T'", "F")
	b.Production("E", "T", "E'")
	b.Production("E'", "+", "T", "E'")
	b.Production("E'", Epsilon)
	b.Production("T", "F", "T'")
	b.Production("T'", "*", "F", "T'")
	b.Production("T'", Epsilon)
	b.Production("F", "(", "E", ")")
	b.Production("F", "id")
	return b
}

type testSymbolGenerator func(text string) symbol.Symbol

func newTestSymbolGenerator(t *testing.T, g *Grammar) testSymbolGenerator {
	return func(text string) symbol.Symbol {
		t.Helper()

		sym, ok := g.ToSymbol(text)
		if !ok {
			t.Fatalf("symbol was not found: %v", text)
		}
		return sym
	}
}

func symbolTexts(g *Grammar, syms []symbol.Symbol) []string {
	texts := make([]string, 0, len(syms))
	for _, sym := range syms {
		texts = append(texts, g.ToText(sym))
	}
	sort.Strings(texts)
	return texts
}

func sortedCopy(texts []string) []string {
	s := append([]string{}, texts...)
	sort.Strings(s)
	return s
}

func testSymbolSet(t *testing.T, name string, expected []string, actual []string) {
	t.Helper()

	expected = sortedCopy(expected)
	if len(actual) != len(expected) {
		t.Fatalf("%v: unexpected symbols; want: %v, got: %v", name, expected, actual)
	}
	for i := range expected {
		if actual[i] != expected[i] {
			t.Fatalf("%v: unexpected symbols; want: %v, got: %v", name, expected, actual)
		}
	}
}
