package grammar

import (
	"fmt"

	"github.com/amiralimaroufi/cppiler/compressor"
	"github.com/amiralimaroufi/cppiler/grammar/symbol"
	spec "github.com/amiralimaroufi/cppiler/spec/grammar"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
)

type compileConfig struct {
	reporting        bool
	compressionLevel int
}

type CompileOption func(config *compileConfig)

// EnableReporting makes Compile return a report describing the symbols, the FIRST and
// FOLLOW sets, the table cells and any overwritten cells.
func EnableReporting() CompileOption {
	return func(config *compileConfig) {
		config.reporting = true
	}
}

func Compression(lv int) CompileOption {
	return func(config *compileConfig) {
		config.compressionLevel = lv
	}
}

// Compile analyses g and emits its compiled form. The report is nil unless
// EnableReporting is passed.
func Compile(g *Grammar, opts ...CompileOption) (*spec.CompiledGrammar, *spec.Report, error) {
	config := &compileConfig{
		compressionLevel: spec.CompressionLevelMax,
	}
	for _, opt := range opts {
		opt(config)
	}
	if config.compressionLevel < spec.CompressionLevelMin || config.compressionLevel > spec.CompressionLevelMax {
		return nil, nil, fmt.Errorf("compression level must be %v to %v", spec.CompressionLevelMin, spec.CompressionLevelMax)
	}

	a, err := Analyze(g)
	if err != nil {
		return nil, nil, err
	}

	termTexts, err := g.symbolTable.TerminalTexts()
	if err != nil {
		return nil, nil, err
	}
	nonTermTexts, err := g.symbolTable.NonTerminalTexts()
	if err != nil {
		return nil, nil, err
	}

	prods := g.AllProductions()
	lhsSyms := make([]int, len(prods)+productionNumMin.Int())
	rhsSyms := make([][]int, len(prods)+productionNumMin.Int())
	for _, prod := range prods {
		lhsSyms[prod.num] = prod.lhs.Num().Int()
		rhs := make([]int, 0, len(prod.rhs))
		for _, sym := range prod.rhs {
			rhs = append(rhs, encodeSymbol(sym))
		}
		rhsSyms[prod.num] = rhs
	}

	syn := &spec.SyntacticSpec{
		Terminals:        termTexts,
		TerminalCount:    len(termTexts),
		NonTerminals:     nonTermTexts,
		NonTerminalCount: len(nonTermTexts),
		StartSymbol:      g.startSymbol.Num().Int(),
		EOFSymbol:        symbol.SymbolEOF.Num().Int(),
		EpsilonSymbol:    symbol.SymbolEpsilon.Num().Int(),
		LHSSymbols:       lhsSyms,
		RHSSymbols:       rhsSyms,
	}
	if err := compressTable(syn, a.Table, config.compressionLevel); err != nil {
		return nil, nil, err
	}

	var report *spec.Report
	if config.reporting {
		report, err = genReport(a)
		if err != nil {
			return nil, nil, err
		}
	}

	return &spec.CompiledGrammar{
		Name:      g.name,
		Syntactic: syn,
	}, report, nil
}

func encodeSymbol(sym symbol.Symbol) int {
	if sym.IsTerminal() {
		return spec.EncodeTerminal(sym.Num().Int())
	}
	return spec.EncodeNonTerminal(sym.Num().Int())
}

func compressTable(syn *spec.SyntacticSpec, tab *ParsingTable, lv int) error {
	syn.CompressionLevel = lv
	entries := tab.Entries()
	if lv == spec.CompressionLevelNone {
		syn.Table = entries
		return nil
	}

	orig, err := compressor.NewOriginalTable(entries, tab.TerminalCount())
	if err != nil {
		return err
	}
	ueTab := compressor.NewUniqueEntriesTable()
	if err := ueTab.Compress(orig); err != nil {
		return err
	}
	ct := &spec.UniqueEntriesTable{
		RowNums:          ueTab.RowNums,
		OriginalRowCount: ueTab.OriginalRowCount,
		OriginalColCount: ueTab.OriginalColCount,
		EmptyValue:       spec.ProductionNil,
	}
	if lv == spec.CompressionLevelUniqueRows {
		ct.UncompressedUniqueEntries = ueTab.UniqueEntries
		syn.CompressedTable = ct
		return nil
	}

	uniq, err := compressor.NewOriginalTable(ueTab.UniqueEntries, ueTab.OriginalColCount)
	if err != nil {
		return err
	}
	rdTab := compressor.NewRowDisplacementTable(spec.ProductionNil)
	if err := rdTab.Compress(uniq); err != nil {
		return err
	}
	ct.UniqueEntries = &spec.RowDisplacementTable{
		OriginalRowCount: rdTab.OriginalRowCount,
		OriginalColCount: rdTab.OriginalColCount,
		EmptyValue:       rdTab.EmptyValue,
		Entries:          rdTab.Entries,
		Bounds:           rdTab.Bounds,
		RowDisplacement:  rdTab.RowDisplacement,
	}
	syn.CompressedTable = ct
	tracer().Debugf("table compressed: %v cells, %v unique rows, %v slots after displacement",
		len(entries), ueTab.UniqueRowCount(), len(rdTab.Entries))
	return nil
}

func symbolNums(syms []symbol.Symbol) []int {
	set := treeset.NewWith(utils.IntComparator)
	for _, sym := range syms {
		set.Add(sym.Num().Int())
	}
	nums := make([]int, 0, set.Size())
	for _, v := range set.Values() {
		nums = append(nums, v.(int))
	}
	return nums
}

func genReport(a *Analysis) (*spec.Report, error) {
	g := a.Grammar
	r := &spec.Report{
		Terminals: []*spec.Terminal{
			{Number: symbol.SymbolEOF.Num().Int(), Name: EOF},
			{Number: symbol.SymbolEpsilon.Num().Int(), Name: Epsilon},
		},
	}

	for _, sym := range g.symbolTable.TerminalSymbols() {
		r.Terminals = append(r.Terminals, &spec.Terminal{
			Number: sym.Num().Int(),
			Name:   g.ToText(sym),
		})
	}

	for _, sym := range g.symbolTable.NonTerminalSymbols() {
		fst, empty := a.First.Of(sym)
		r.NonTerminals = append(r.NonTerminals, &spec.NonTerminal{
			Number:     sym.Num().Int(),
			Name:       g.ToText(sym),
			First:      symbolNums(fst),
			FirstEmpty: empty,
			Follow:     symbolNums(a.Follow.Of(sym)),
		})
	}

	for _, prod := range g.AllProductions() {
		rhs := make([]int, 0, len(prod.rhs))
		for _, sym := range prod.rhs {
			rhs = append(rhs, encodeSymbol(sym))
		}
		r.Productions = append(r.Productions, &spec.Production{
			Number: prod.num.Int(),
			LHS:    prod.lhs.Num().Int(),
			RHS:    rhs,
		})
	}

	termCount := a.Table.TerminalCount()
	for i, e := range a.Table.Entries() {
		if e == spec.ProductionNil {
			continue
		}
		r.Cells = append(r.Cells, &spec.Cell{
			NonTerminal: i / termCount,
			Terminal:    i % termCount,
			Production:  e,
		})
	}

	for _, ow := range a.Table.Overwrites() {
		r.Overwrites = append(r.Overwrites, &spec.Overwrite{
			NonTerminal: ow.NonTerminal.Num().Int(),
			Terminal:    ow.Terminal.Num().Int(),
			Previous:    ow.Previous,
			Adopted:     ow.Adopted,
			ResolvedBy:  ow.ResolvedBy.Int(),
		})
	}

	return r, nil
}
