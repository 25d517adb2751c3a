package grammar

import (
	"fmt"
	"sort"

	"github.com/amiralimaroufi/cppiler/grammar/symbol"
)

type firstEntry struct {
	symbols map[symbol.Symbol]struct{}
	empty   bool
}

func newFirstEntry() *firstEntry {
	return &firstEntry{
		symbols: map[symbol.Symbol]struct{}{},
		empty:   false,
	}
}

func (e *firstEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *firstEntry) addEmpty() bool {
	if !e.empty {
		e.empty = true
		return true
	}
	return false
}

func (e *firstEntry) mergeExceptEmpty(target *firstEntry) bool {
	if target == nil {
		return false
	}
	changed := false
	for sym := range target.symbols {
		added := e.add(sym)
		if added {
			changed = true
		}
	}
	return changed
}

func (e *firstEntry) merge(target *firstEntry) bool {
	changed := e.mergeExceptEmpty(target)
	if target != nil && target.empty {
		if e.addEmpty() {
			changed = true
		}
	}
	return changed
}

func (e *firstEntry) sorted() []symbol.Symbol {
	syms := make([]symbol.Symbol, 0, len(e.symbols))
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

// FirstSet holds FIRST(X) for every terminal and non-terminal of a grammar.
type FirstSet struct {
	set map[symbol.Symbol]*firstEntry
}

func newFirstSet(g *Grammar) *FirstSet {
	fst := &FirstSet{
		set: map[symbol.Symbol]*firstEntry{},
	}
	for _, sym := range g.terminals {
		e := newFirstEntry()
		e.add(sym)
		fst.set[sym] = e
	}
	for _, sym := range g.nonTerminals {
		fst.set[sym] = newFirstEntry()
	}
	return fst
}

// find computes FIRST of a symbol sequence. An empty sequence, or one whose symbols
// are all nullable, yields epsilon.
func (fst *FirstSet) find(seq []symbol.Symbol) (*firstEntry, error) {
	entry := newFirstEntry()
	for _, sym := range seq {
		if sym.IsEpsilon() {
			entry.addEmpty()
			return entry, nil
		}
		if sym.IsTerminal() {
			entry.add(sym)
			return entry, nil
		}

		e := fst.findBySymbol(sym)
		if e == nil {
			return nil, fmt.Errorf("an entry of FIRST was not found; symbol: %s", sym)
		}
		entry.mergeExceptEmpty(e)
		if !e.empty {
			return entry, nil
		}
	}
	entry.addEmpty()
	return entry, nil
}

func (fst *FirstSet) findBySymbol(sym symbol.Symbol) *firstEntry {
	return fst.set[sym]
}

// Of returns FIRST(sym) as terminals ordered by symbol number, and whether it contains epsilon.
func (fst *FirstSet) Of(sym symbol.Symbol) ([]symbol.Symbol, bool) {
	e := fst.findBySymbol(sym)
	if e == nil {
		return nil, false
	}
	return e.sorted(), e.empty
}

// Sequence returns FIRST of a symbol sequence.
func (fst *FirstSet) Sequence(seq []symbol.Symbol) ([]symbol.Symbol, bool, error) {
	e, err := fst.find(seq)
	if err != nil {
		return nil, false, err
	}
	return e.sorted(), e.empty, nil
}

type firstComContext struct {
	gram  *Grammar
	first *FirstSet
}

func newFirstComContext(g *Grammar) *firstComContext {
	return &firstComContext{
		gram:  g,
		first: newFirstSet(g),
	}
}

// pass runs one full sweep over all productions and reports whether any FIRST set grew.
func (cc *firstComContext) pass() (bool, error) {
	more := false
	for _, nt := range cc.gram.nonTerminals {
		acc := cc.first.findBySymbol(nt)
		for _, prod := range cc.gram.Productions(nt) {
			e, err := cc.first.find(prod.rhs)
			if err != nil {
				return false, err
			}
			if acc.merge(e) {
				more = true
			}
		}
	}
	return more, nil
}

func genFirstSet(g *Grammar) (*FirstSet, error) {
	cc := newFirstComContext(g)
	passes := 0
	for {
		passes++
		more, err := cc.pass()
		if err != nil {
			return nil, err
		}
		if !more {
			break
		}
	}
	tracer().Debugf("FIRST reached a fixed point after %v passes", passes)
	return cc.first, nil
}
