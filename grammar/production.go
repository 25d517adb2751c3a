package grammar

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/amiralimaroufi/cppiler/grammar/symbol"
)

type productionID [32]byte

func (id productionID) String() string {
	return hex.EncodeToString(id[:])
}

func genProductionID(lhs symbol.Symbol, rhs []symbol.Symbol) productionID {
	seq := lhs.Byte()
	for _, sym := range rhs {
		seq = append(seq, sym.Byte()...)
	}
	return productionID(sha256.Sum256(seq))
}

type productionNum uint16

const (
	productionNumNil = productionNum(0)
	productionNumMin = productionNum(1)
)

func (n productionNum) Int() int {
	return int(n)
}

// Production is one rewrite rule. Its number reflects the declaration order across the
// whole grammar, which is what the table builder relies on when two productions claim
// the same cell.
type Production struct {
	id  productionID
	num productionNum
	lhs symbol.Symbol
	rhs []symbol.Symbol
}

func newProduction(lhs symbol.Symbol, rhs []symbol.Symbol) (*Production, error) {
	if !lhs.IsNonTerminal() {
		return nil, fmt.Errorf("LHS must be a non-terminal symbol; LHS: %v, RHS: %v", lhs, rhs)
	}
	if len(rhs) == 0 {
		return nil, fmt.Errorf("RHS must contain at least one symbol; use epsilon for an empty alternative; LHS: %v", lhs)
	}
	for _, sym := range rhs {
		if sym.IsNil() {
			return nil, fmt.Errorf("a symbol of RHS must be a non-nil symbol; LHS: %v, RHS: %v", lhs, rhs)
		}
		if sym.IsEOF() {
			return nil, fmt.Errorf("the end-of-input marker cannot appear in RHS; LHS: %v, RHS: %v", lhs, rhs)
		}
		if sym.IsEpsilon() && len(rhs) > 1 {
			return nil, semErrEpsilonMixed
		}
	}

	return &Production{
		id:  genProductionID(lhs, rhs),
		lhs: lhs,
		rhs: rhs,
	}, nil
}

func (p *Production) Num() int {
	return p.num.Int()
}

func (p *Production) LHS() symbol.Symbol {
	return p.lhs
}

// RHS returns a copy of the right-hand side.
func (p *Production) RHS() []symbol.Symbol {
	return append([]symbol.Symbol{}, p.rhs...)
}

func (p *Production) equals(q *Production) bool {
	return q.id == p.id
}

// IsEmpty reports whether p is the epsilon production `A → ε`.
func (p *Production) IsEmpty() bool {
	return len(p.rhs) == 1 && p.rhs[0].IsEpsilon()
}

func (p *Production) format(symTab *symbol.SymbolTableReader) string {
	var b strings.Builder
	lhs, _ := symTab.ToText(p.lhs)
	fmt.Fprintf(&b, "%v →", lhs)
	for _, sym := range p.rhs {
		text, _ := symTab.ToText(sym)
		fmt.Fprintf(&b, " %v", text)
	}
	return b.String()
}

type productionSet struct {
	lhs2Prods map[symbol.Symbol][]*Production
	id2Prod   map[productionID]*Production
	prods     []*Production
	num       productionNum
}

func newProductionSet() *productionSet {
	return &productionSet{
		lhs2Prods: map[symbol.Symbol][]*Production{},
		id2Prod:   map[productionID]*Production{},
		num:       productionNumMin,
	}
}

func (ps *productionSet) append(prod *Production) bool {
	if _, ok := ps.id2Prod[prod.id]; ok {
		return false
	}

	prod.num = ps.num
	ps.num++

	ps.lhs2Prods[prod.lhs] = append(ps.lhs2Prods[prod.lhs], prod)
	ps.id2Prod[prod.id] = prod
	ps.prods = append(ps.prods, prod)

	return true
}

func (ps *productionSet) findByID(id productionID) (*Production, bool) {
	prod, ok := ps.id2Prod[id]
	return prod, ok
}

func (ps *productionSet) findByNum(num productionNum) (*Production, bool) {
	if num < productionNumMin || num.Int() > len(ps.prods) {
		return nil, false
	}
	return ps.prods[num.Int()-1], true
}

// findByLHS returns the alternatives of lhs in declaration order.
func (ps *productionSet) findByLHS(lhs symbol.Symbol) ([]*Production, bool) {
	if lhs.IsNil() {
		return nil, false
	}

	prods, ok := ps.lhs2Prods[lhs]
	return prods, ok
}

// getAllProductions returns every production in declaration order.
func (ps *productionSet) getAllProductions() []*Production {
	return ps.prods
}
