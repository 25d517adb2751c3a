package grammar

import (
	"fmt"

	"github.com/amiralimaroufi/cppiler/grammar/symbol"
)

// Epsilon is the name used in RHS declarations for the empty alternative.
const Epsilon = symbol.SymbolNameEpsilon

// EOF is the name of the end-of-input terminal.
const EOF = symbol.SymbolNameEOF

type Grammar struct {
	name          string
	symbolTable   *symbol.SymbolTableReader
	startSymbol   symbol.Symbol
	productionSet *productionSet
	nonTerminals  []symbol.Symbol
	terminals     []symbol.Symbol
}

func (g *Grammar) Name() string {
	return g.name
}

func (g *Grammar) StartSymbol() symbol.Symbol {
	return g.startSymbol
}

func (g *Grammar) SymbolTable() *symbol.SymbolTableReader {
	return g.symbolTable
}

// NonTerminals returns the non-terminals in declaration order.
func (g *Grammar) NonTerminals() []symbol.Symbol {
	return append([]symbol.Symbol{}, g.nonTerminals...)
}

// Terminals returns the declared terminals in declaration order. EOF and epsilon are not included.
func (g *Grammar) Terminals() []symbol.Symbol {
	return append([]symbol.Symbol{}, g.terminals...)
}

// Productions returns the alternatives of lhs in declaration order.
func (g *Grammar) Productions(lhs symbol.Symbol) []*Production {
	prods, _ := g.productionSet.findByLHS(lhs)
	return prods
}

// AllProductions returns every production ordered by production number.
func (g *Grammar) AllProductions() []*Production {
	return g.productionSet.getAllProductions()
}

func (g *Grammar) Production(num int) (*Production, bool) {
	return g.productionSet.findByNum(productionNum(num))
}

func (g *Grammar) ToSymbol(text string) (symbol.Symbol, bool) {
	return g.symbolTable.ToSymbol(text)
}

func (g *Grammar) ToText(sym symbol.Symbol) string {
	text, ok := g.symbolTable.ToText(sym)
	if !ok {
		return sym.String()
	}
	return text
}

// FormatProduction renders a production as `LHS → X Y Z`.
func (g *Grammar) FormatProduction(prod *Production) string {
	return prod.format(g.symbolTable)
}

type alternative struct {
	lhs string
	rhs []string
}

// GrammarBuilder collects declarations and validates them in Build. Declarations are
// kept in the order they are made; that order decides production numbers.
type GrammarBuilder struct {
	name         string
	start        string
	terminals    []string
	nonTerminals []string
	alternatives []*alternative
}

func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name: name,
	}
}

func (b *GrammarBuilder) Terminals(names ...string) *GrammarBuilder {
	b.terminals = append(b.terminals, names...)
	return b
}

// NonTerminals declares non-terminals. The first one declared becomes the start symbol
// unless Start is called.
func (b *GrammarBuilder) NonTerminals(names ...string) *GrammarBuilder {
	b.nonTerminals = append(b.nonTerminals, names...)
	return b
}

func (b *GrammarBuilder) Start(name string) *GrammarBuilder {
	b.start = name
	return b
}

// Production appends one alternative for lhs. Pass Epsilon alone for the empty alternative.
func (b *GrammarBuilder) Production(lhs string, rhs ...string) *GrammarBuilder {
	b.alternatives = append(b.alternatives, &alternative{
		lhs: lhs,
		rhs: rhs,
	})
	return b
}

func (b *GrammarBuilder) Build() (*Grammar, error) {
	if len(b.alternatives) == 0 {
		return nil, semErrNoProduction
	}

	symTab := symbol.NewSymbolTable()
	w := symTab.Writer()

	var terms []symbol.Symbol
	{
		seen := map[string]struct{}{}
		for _, name := range b.terminals {
			if name == Epsilon || name == EOF {
				return nil, fmt.Errorf("%w: %v", semErrReservedName, name)
			}
			if _, ok := seen[name]; ok {
				return nil, fmt.Errorf("%w: %v", semErrDuplicateTerminal, name)
			}
			seen[name] = struct{}{}
			sym, err := w.RegisterTerminalSymbol(name)
			if err != nil {
				return nil, err
			}
			terms = append(terms, sym)
		}
	}

	var nonTerms []symbol.Symbol
	declared := map[string]struct{}{}
	for _, name := range b.nonTerminals {
		if name == Epsilon || name == EOF {
			return nil, fmt.Errorf("%w: %v", semErrReservedName, name)
		}
		if _, ok := declared[name]; ok {
			return nil, fmt.Errorf("%w: %v", semErrDuplicateName, name)
		}
		declared[name] = struct{}{}
		sym, err := w.RegisterNonTerminalSymbol(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", semErrDuplicateName, name)
		}
		nonTerms = append(nonTerms, sym)
	}

	r := symTab.Reader()
	prods := newProductionSet()
	for _, alt := range b.alternatives {
		lhs, ok := r.ToSymbol(alt.lhs)
		if !ok || !lhs.IsNonTerminal() {
			return nil, fmt.Errorf("%w: %v", semErrUndefinedSym, alt.lhs)
		}
		rhs := make([]symbol.Symbol, 0, len(alt.rhs))
		for _, name := range alt.rhs {
			sym, ok := r.ToSymbol(name)
			if !ok {
				return nil, fmt.Errorf("%w: %v (in an alternative of %v)", semErrUndefinedSym, name, alt.lhs)
			}
			rhs = append(rhs, sym)
		}
		prod, err := newProduction(lhs, rhs)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", alt.lhs, err)
		}
		if !prods.append(prod) {
			return nil, fmt.Errorf("%w: %v", semErrDuplicateProduction, prod.format(r))
		}
	}

	for _, sym := range nonTerms {
		if _, ok := prods.findByLHS(sym); !ok {
			text, _ := r.ToText(sym)
			return nil, fmt.Errorf("%w: %v", semErrNoAlternative, text)
		}
	}

	start := b.start
	if start == "" {
		if len(b.nonTerminals) == 0 {
			return nil, semErrStartNotDefined
		}
		start = b.nonTerminals[0]
	}
	startSym, ok := r.ToSymbol(start)
	if !ok || !startSym.IsNonTerminal() {
		return nil, fmt.Errorf("%w: %v", semErrStartNotDefined, start)
	}

	tracer().Debugf("grammar %v: %v terminals, %v non-terminals, %v productions",
		b.name, len(terms), len(nonTerms), len(prods.getAllProductions()))

	return &Grammar{
		name:          b.name,
		symbolTable:   r,
		startSymbol:   startSym,
		productionSet: prods,
		nonTerminals:  nonTerms,
		terminals:     terms,
	}, nil
}
