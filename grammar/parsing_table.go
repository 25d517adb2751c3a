package grammar

import (
	"fmt"

	"github.com/amiralimaroufi/cppiler/grammar/symbol"
)

type tableEntry productionNum

const tableEntryEmpty = tableEntry(productionNumNil)

func (e tableEntry) isEmpty() bool {
	return e == tableEntryEmpty
}

type conflictResolutionMethod int

func (m conflictResolutionMethod) Int() int {
	return int(m)
}

// ResolvedByProdOrder means the production declared later took the cell.
const ResolvedByProdOrder conflictResolutionMethod = 1

// TableOverwrite records a cell that was assigned more than once while filling the table.
// An LL(1) grammar never produces one.
type TableOverwrite struct {
	NonTerminal symbol.Symbol
	Terminal    symbol.Symbol
	Previous    int
	Adopted     int
	ResolvedBy  conflictResolutionMethod
}

// ParsingTable maps (non-terminal, terminal-or-EOF) to a production number. It is never
// modified after the builder returns it.
type ParsingTable struct {
	entries          []tableEntry
	terminalCount    int
	nonTerminalCount int
	overwrites       []*TableOverwrite
}

func (t *ParsingTable) pos(nonTerm symbol.Symbol, term symbol.Symbol) (int, bool) {
	if !nonTerm.IsNonTerminal() || !term.IsTerminal() || term.IsEpsilon() {
		return 0, false
	}
	row := nonTerm.Num().Int()
	col := term.Num().Int()
	if row >= t.nonTerminalCount || col >= t.terminalCount {
		return 0, false
	}
	return row*t.terminalCount + col, true
}

// Lookup returns the number of the production chosen for (nonTerm, term).
func (t *ParsingTable) Lookup(nonTerm symbol.Symbol, term symbol.Symbol) (int, bool) {
	p, ok := t.pos(nonTerm, term)
	if !ok {
		return 0, false
	}
	e := t.entries[p]
	if e.isEmpty() {
		return 0, false
	}
	return int(e), true
}

func (t *ParsingTable) Overwrites() []*TableOverwrite {
	return t.overwrites
}

func (t *ParsingTable) TerminalCount() int {
	return t.terminalCount
}

func (t *ParsingTable) NonTerminalCount() int {
	return t.nonTerminalCount
}

// Entries returns a copy of the row-major table. Row and column indexes are symbol numbers;
// zero means no production.
func (t *ParsingTable) Entries() []int {
	es := make([]int, len(t.entries))
	for i, e := range t.entries {
		es[i] = int(e)
	}
	return es
}

func (t *ParsingTable) write(nonTerm symbol.Symbol, term symbol.Symbol, prod productionNum) (*TableOverwrite, error) {
	p, ok := t.pos(nonTerm, term)
	if !ok {
		return nil, fmt.Errorf("a table cell is out of range; non-terminal: %v, terminal: %v", nonTerm, term)
	}
	var ow *TableOverwrite
	if prev := t.entries[p]; !prev.isEmpty() {
		ow = &TableOverwrite{
			NonTerminal: nonTerm,
			Terminal:    term,
			Previous:    int(prev),
			Adopted:     prod.Int(),
			ResolvedBy:  ResolvedByProdOrder,
		}
		t.overwrites = append(t.overwrites, ow)
	}
	t.entries[p] = tableEntry(prod)
	return ow, nil
}

type llTableBuilder struct {
	gram   *Grammar
	first  *FirstSet
	follow *FollowSet
}

func (b *llTableBuilder) build() (*ParsingTable, error) {
	termTexts, err := b.gram.symbolTable.TerminalTexts()
	if err != nil {
		return nil, err
	}
	nonTermTexts, err := b.gram.symbolTable.NonTerminalTexts()
	if err != nil {
		return nil, err
	}
	tab := &ParsingTable{
		entries:          make([]tableEntry, len(termTexts)*len(nonTermTexts)),
		terminalCount:    len(termTexts),
		nonTerminalCount: len(nonTermTexts),
	}

	for _, nt := range b.gram.nonTerminals {
		for _, prod := range b.gram.Productions(nt) {
			fst, err := b.first.find(prod.rhs)
			if err != nil {
				return nil, err
			}
			for _, term := range fst.sorted() {
				if err := b.writeEntry(tab, nt, term, prod); err != nil {
					return nil, err
				}
			}
			if !fst.empty {
				continue
			}
			flw, err := b.follow.find(nt)
			if err != nil {
				return nil, err
			}
			if flw.eof {
				if err := b.writeEntry(tab, nt, symbol.SymbolEOF, prod); err != nil {
					return nil, err
				}
			}
			for _, term := range (&firstEntry{symbols: flw.symbols}).sorted() {
				if err := b.writeEntry(tab, nt, term, prod); err != nil {
					return nil, err
				}
			}
		}
	}

	return tab, nil
}

func (b *llTableBuilder) writeEntry(tab *ParsingTable, nt symbol.Symbol, term symbol.Symbol, prod *Production) error {
	ow, err := tab.write(nt, term, prod.num)
	if err != nil {
		return err
	}
	if ow != nil {
		tracer().Infof("table cell [%v, %v] rewritten: production %v replaced by %v",
			b.gram.ToText(nt), b.gram.ToText(term), ow.Previous, ow.Adopted)
	}
	return nil
}

// Analysis bundles the FIRST/FOLLOW sets and the LL(1) table of one grammar.
type Analysis struct {
	Grammar *Grammar
	First   *FirstSet
	Follow  *FollowSet
	Table   *ParsingTable
}

// Analyze computes FIRST, FOLLOW and the LL(1) table for g.
func Analyze(g *Grammar) (*Analysis, error) {
	first, err := genFirstSet(g)
	if err != nil {
		return nil, err
	}
	follow, err := genFollowSet(g, first)
	if err != nil {
		return nil, err
	}
	b := &llTableBuilder{
		gram:   g,
		first:  first,
		follow: follow,
	}
	tab, err := b.build()
	if err != nil {
		return nil, err
	}
	return &Analysis{
		Grammar: g,
		First:   first,
		Follow:  follow,
		Table:   tab,
	}, nil
}
