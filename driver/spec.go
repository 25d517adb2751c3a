package driver

import (
	spec "github.com/amiralimaroufi/cppiler/spec/grammar"
)

// Grammar is the read-only view of a compiled grammar used by Parser and BuildTree.
// Terminals and non-terminals are numbered as in the compiled grammar; production 0 and
// symbol 0 mean none.
type Grammar interface {
	Name() string
	StartSymbol() int
	EOF() int
	Epsilon() int
	TerminalCount() int
	NonTerminalCount() int
	Terminal(num int) string
	NonTerminal(num int) string
	ToTerminal(name string) (int, bool)
	ToNonTerminal(name string) (int, bool)
	ProductionCount() int
	LHS(prod int) int

	// RHS returns the right-hand side of prod encoded as in spec.SyntacticSpec.RHSSymbols.
	RHS(prod int) []int

	// Lookup returns the production chosen for (nonTerminal, terminal), or 0.
	Lookup(nonTerminal int, terminal int) int
}

type grammarImpl struct {
	g            *spec.CompiledGrammar
	terminals    map[string]int
	nonTerminals map[string]int
}

func NewGrammar(g *spec.CompiledGrammar) *grammarImpl {
	terms := map[string]int{}
	for num, name := range g.Syntactic.Terminals {
		if name == "" {
			continue
		}
		terms[name] = num
	}
	nonTerms := map[string]int{}
	for num, name := range g.Syntactic.NonTerminals {
		if name == "" {
			continue
		}
		nonTerms[name] = num
	}
	return &grammarImpl{
		g:            g,
		terminals:    terms,
		nonTerminals: nonTerms,
	}
}

func (g *grammarImpl) Name() string {
	return g.g.Name
}

func (g *grammarImpl) StartSymbol() int {
	return g.g.Syntactic.StartSymbol
}

func (g *grammarImpl) EOF() int {
	return g.g.Syntactic.EOFSymbol
}

func (g *grammarImpl) Epsilon() int {
	return g.g.Syntactic.EpsilonSymbol
}

func (g *grammarImpl) TerminalCount() int {
	return g.g.Syntactic.TerminalCount
}

func (g *grammarImpl) NonTerminalCount() int {
	return g.g.Syntactic.NonTerminalCount
}

func (g *grammarImpl) Terminal(num int) string {
	return g.g.Syntactic.Terminals[num]
}

func (g *grammarImpl) NonTerminal(num int) string {
	return g.g.Syntactic.NonTerminals[num]
}

func (g *grammarImpl) ToTerminal(name string) (int, bool) {
	num, ok := g.terminals[name]
	return num, ok
}

func (g *grammarImpl) ToNonTerminal(name string) (int, bool) {
	num, ok := g.nonTerminals[name]
	return num, ok
}

func (g *grammarImpl) ProductionCount() int {
	return len(g.g.Syntactic.LHSSymbols) - 1
}

func (g *grammarImpl) LHS(prod int) int {
	return g.g.Syntactic.LHSSymbols[prod]
}

func (g *grammarImpl) RHS(prod int) []int {
	return g.g.Syntactic.RHSSymbols[prod]
}

func (g *grammarImpl) Lookup(nonTerminal int, terminal int) int {
	syn := g.g.Syntactic
	if nonTerminal <= 0 || nonTerminal >= syn.NonTerminalCount || terminal <= 0 || terminal >= syn.TerminalCount {
		return spec.ProductionNil
	}

	switch syn.CompressionLevel {
	case spec.CompressionLevelRowDisplaced:
		tab := syn.CompressedTable
		rowNum := tab.RowNums[nonTerminal]
		d := tab.UniqueEntries.RowDisplacement[rowNum]
		if tab.UniqueEntries.Bounds[d+terminal] != rowNum {
			return tab.UniqueEntries.EmptyValue
		}
		return tab.UniqueEntries.Entries[d+terminal]
	case spec.CompressionLevelUniqueRows:
		tab := syn.CompressedTable
		return tab.UncompressedUniqueEntries[tab.RowNums[nonTerminal]*tab.OriginalColCount+terminal]
	}

	return syn.Table[nonTerminal*syn.TerminalCount+terminal]
}

func decodeSymbol(v int) (int, bool) {
	return spec.DecodeSymbol(v)
}

func symbolName(gram Grammar, v int) string {
	num, terminal := decodeSymbol(v)
	if terminal {
		return gram.Terminal(num)
	}
	return gram.NonTerminal(num)
}

func isEpsilon(gram Grammar, rhs []int) bool {
	if len(rhs) != 1 {
		return false
	}
	num, terminal := decodeSymbol(rhs[0])
	return terminal && num == gram.Epsilon()
}
