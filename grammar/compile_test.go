package grammar

import (
	"testing"

	spec "github.com/amiralimaroufi/cppiler/spec/grammar"
)

func lookupCompiled(t *testing.T, syn *spec.SyntacticSpec, nonTerm, term int) int {
	t.Helper()

	switch syn.CompressionLevel {
	case spec.CompressionLevelNone:
		return syn.Table[nonTerm*syn.TerminalCount+term]
	case spec.CompressionLevelUniqueRows:
		ct := syn.CompressedTable
		return ct.UncompressedUniqueEntries[ct.RowNums[nonTerm]*ct.OriginalColCount+term]
	case spec.CompressionLevelRowDisplaced:
		ct := syn.CompressedTable
		rd := ct.UniqueEntries
		row := ct.RowNums[nonTerm]
		d := rd.RowDisplacement[row]
		if rd.Bounds[d+term] != row {
			return rd.EmptyValue
		}
		return rd.Entries[d+term]
	}
	t.Fatalf("unknown compression level: %v", syn.CompressionLevel)
	return 0
}

func TestCompile(t *testing.T) {
	teardown := setupTracing(t)
	defer teardown()

	g := buildTestGrammar(t, exprGrammar())
	a, err := Analyze(g)
	if err != nil {
		t.Fatal(err)
	}
	plain := a.Table.Entries()

	for _, lv := range []int{spec.CompressionLevelNone, spec.CompressionLevelUniqueRows, spec.CompressionLevelRowDisplaced} {
		cg, _, err := Compile(g, Compression(lv))
		if err != nil {
			t.Fatal(err)
		}
		syn := cg.Syntactic
		if syn.CompressionLevel != lv {
			t.Fatalf("unexpected compression level; want: %v, got: %v", lv, syn.CompressionLevel)
		}
		for nt := 0; nt < syn.NonTerminalCount; nt++ {
			for term := 0; term < syn.TerminalCount; term++ {
				want := plain[nt*syn.TerminalCount+term]
				got := lookupCompiled(t, syn, nt, term)
				if got != want {
					t.Fatalf("level %v: cell [%v, %v]; want: %v, got: %v", lv, nt, term, want, got)
				}
			}
		}
	}
}

func TestCompile_Symbols(t *testing.T) {
	g := buildTestGrammar(t, exprGrammar())
	cg, report, err := Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	if report != nil {
		t.Fatal("a report must not be generated unless requested")
	}
	syn := cg.Syntactic
	if syn.Terminals[syn.EOFSymbol] != EOF || syn.Terminals[syn.EpsilonSymbol] != Epsilon {
		t.Fatalf("unexpected reserved terminals: %v", syn.Terminals)
	}
	if syn.NonTerminals[syn.StartSymbol] != "E" {
		t.Fatalf("unexpected start symbol: %v", syn.NonTerminals[syn.StartSymbol])
	}

	// F → ( E )
	rhs := syn.RHSSymbols[7]
	if len(rhs) != 3 {
		t.Fatalf("unexpected RHS length: %v", len(rhs))
	}
	expected := []struct {
		name     string
		terminal bool
	}{
		{"(", true},
		{"E", false},
		{")", true},
	}
	for i, e := range expected {
		num, terminal := spec.DecodeSymbol(rhs[i])
		if terminal != e.terminal {
			t.Fatalf("RHS[%v]: unexpected kind", i)
		}
		names := syn.NonTerminals
		if terminal {
			names = syn.Terminals
		}
		if num <= 0 || num >= len(names) {
			t.Fatalf("RHS[%v]: symbol number %v is out of range", i, num)
		}
		name := names[num]
		if name != e.name {
			t.Fatalf("RHS[%v]: want: %v, got: %v", i, e.name, name)
		}
	}
	if syn.NonTerminals[syn.LHSSymbols[7]] != "F" {
		t.Fatalf("unexpected LHS of production 7: %v", syn.NonTerminals[syn.LHSSymbols[7]])
	}
}

func TestCompile_Report(t *testing.T) {
	b := NewGrammarBuilder("common-prefix")
	b.Terminals("a", "b")
	b.NonTerminals("S")
	b.Production("S", "a")
	b.Production("S", "a", "b")
	g := buildTestGrammar(t, b)

	_, report, err := Compile(g, EnableReporting())
	if err != nil {
		t.Fatal(err)
	}
	if report == nil {
		t.Fatal("a report was not generated")
	}
	if len(report.Productions) != 2 || len(report.Cells) != 1 {
		t.Fatalf("unexpected report size; productions: %v, cells: %v", len(report.Productions), len(report.Cells))
	}
	if len(report.Overwrites) != 1 {
		t.Fatalf("unexpected overwrite count: %v", len(report.Overwrites))
	}
	ow := report.Overwrites[0]
	if ow.Previous != 1 || ow.Adopted != 2 {
		t.Fatalf("unexpected overwrite: %+v", ow)
	}
	if len(report.Terminals) != 4 || report.Terminals[0].Name != EOF || report.Terminals[1].Name != Epsilon {
		t.Fatalf("unexpected terminals: %v", len(report.Terminals))
	}
	nt := report.NonTerminals[0]
	if len(nt.Follow) != 1 || nt.Follow[0] != 1 {
		t.Fatalf("FOLLOW(S) must be the end-of-input marker only; got: %v", nt.Follow)
	}
}

func TestCompile_InvalidCompressionLevel(t *testing.T) {
	g := buildTestGrammar(t, exprGrammar())
	if _, _, err := Compile(g, Compression(spec.CompressionLevelMax+1)); err == nil {
		t.Fatal("expected error didn't occur")
	}
}
