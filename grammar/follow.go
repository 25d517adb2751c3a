package grammar

import (
	"fmt"
	"sort"

	"github.com/amiralimaroufi/cppiler/grammar/symbol"
)

type followEntry struct {
	symbols map[symbol.Symbol]struct{}
	eof     bool
}

func newFollowEntry() *followEntry {
	return &followEntry{
		symbols: map[symbol.Symbol]struct{}{},
		eof:     false,
	}
}

func (e *followEntry) add(sym symbol.Symbol) bool {
	if _, ok := e.symbols[sym]; ok {
		return false
	}
	e.symbols[sym] = struct{}{}
	return true
}

func (e *followEntry) addEOF() bool {
	if !e.eof {
		e.eof = true
		return true
	}
	return false
}

// merge adds FIRST symbols (never epsilon) and a whole FOLLOW entry. Either may be nil.
func (e *followEntry) merge(fst *firstEntry, flw *followEntry) bool {
	changed := false

	if fst != nil {
		for sym := range fst.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
	}

	if flw != nil {
		for sym := range flw.symbols {
			added := e.add(sym)
			if added {
				changed = true
			}
		}
		if flw.eof {
			added := e.addEOF()
			if added {
				changed = true
			}
		}
	}

	return changed
}

// FollowSet holds FOLLOW(A) for every non-terminal of a grammar.
type FollowSet struct {
	set map[symbol.Symbol]*followEntry
}

func newFollow(g *Grammar) *FollowSet {
	flw := &FollowSet{
		set: map[symbol.Symbol]*followEntry{},
	}
	for _, sym := range g.nonTerminals {
		flw.set[sym] = newFollowEntry()
	}
	return flw
}

func (flw *FollowSet) find(sym symbol.Symbol) (*followEntry, error) {
	e, ok := flw.set[sym]
	if !ok {
		return nil, fmt.Errorf("an entry of FOLLOW was not found; symbol: %s", sym)
	}
	return e, nil
}

// Of returns FOLLOW(sym) ordered by symbol number. EOF is included as symbol.SymbolEOF.
func (flw *FollowSet) Of(sym symbol.Symbol) []symbol.Symbol {
	e, ok := flw.set[sym]
	if !ok {
		return nil
	}
	syms := make([]symbol.Symbol, 0, len(e.symbols)+1)
	if e.eof {
		syms = append(syms, symbol.SymbolEOF)
	}
	for sym := range e.symbols {
		syms = append(syms, sym)
	}
	sort.Slice(syms, func(i, j int) bool {
		return syms[i] < syms[j]
	})
	return syms
}

type followComContext struct {
	gram   *Grammar
	first  *FirstSet
	follow *FollowSet
}

func newFollowComContext(g *Grammar, first *FirstSet) *followComContext {
	return &followComContext{
		gram:   g,
		first:  first,
		follow: newFollow(g),
	}
}

func (cc *followComContext) pass() (bool, error) {
	more := false
	for _, prod := range cc.gram.AllProductions() {
		for i, sym := range prod.rhs {
			if !sym.IsNonTerminal() {
				continue
			}
			e, err := cc.follow.find(sym)
			if err != nil {
				return false, err
			}
			fst, err := cc.first.find(prod.rhs[i+1:])
			if err != nil {
				return false, err
			}
			if e.merge(fst, nil) {
				more = true
			}
			// An empty suffix yields epsilon as well, so a trailing non-terminal always
			// inherits FOLLOW of the LHS.
			if fst.empty {
				flw, err := cc.follow.find(prod.lhs)
				if err != nil {
					return false, err
				}
				if e.merge(nil, flw) {
					more = true
				}
			}
		}
	}
	return more, nil
}

func genFollowSet(g *Grammar, first *FirstSet) (*FollowSet, error) {
	cc := newFollowComContext(g, first)
	start, err := cc.follow.find(g.startSymbol)
	if err != nil {
		return nil, err
	}
	start.addEOF()

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
	tracer().Debugf("FOLLOW reached a fixed point after %v passes", passes)
	return cc.follow, nil
}
