package driver

import (
	"fmt"
	"strings"

	"github.com/amiralimaroufi/cppiler/token"
	"github.com/emirpasic/gods/stacks/arraystack"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cppiler.driver'.
func tracer() tracing.Trace {
	return tracing.Select("cppiler.driver")
}

type ParserOption func(p *Parser) error

// StartSymbol makes the parser derive from the named non-terminal instead of the start
// symbol of the grammar. The same table serves every start symbol.
func StartSymbol(name string) ParserOption {
	return func(p *Parser) error {
		num, ok := p.gram.ToNonTerminal(name)
		if !ok {
			return fmt.Errorf("unknown non-terminal: %v", name)
		}
		p.start = num
		return nil
	}
}

// Step is one expansion of a leftmost derivation.
type Step struct {
	NonTerminal int
	Production  int
}

// Trace is the leftmost derivation found by a parse. Epsilon expansions are recorded.
type Trace struct {
	gram  Grammar
	Start int
	Steps []*Step
}

// StartName returns the name of the non-terminal the derivation starts from.
func (t *Trace) StartName() string {
	return t.gram.NonTerminal(t.Start)
}

// Format renders a step as `LHS → X Y Z`.
func (t *Trace) Format(step *Step) string {
	return FormatProduction(t.gram, step.Production)
}

// Lines renders every step in order.
func (t *Trace) Lines() []string {
	lines := make([]string, 0, len(t.Steps))
	for _, step := range t.Steps {
		lines = append(lines, t.Format(step))
	}
	return lines
}

// FormatProduction renders production prod of gram as `LHS → X Y Z`.
func FormatProduction(gram Grammar, prod int) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%v →", gram.NonTerminal(gram.LHS(prod)))
	for _, v := range gram.RHS(prod) {
		fmt.Fprintf(&b, " %v", symbolName(gram, v))
	}
	return b.String()
}

// Parser holds only immutable configuration. Concurrent calls to Parse are safe.
type Parser struct {
	gram  Grammar
	start int
}

func NewParser(gram Grammar, opts ...ParserOption) (*Parser, error) {
	p := &Parser{
		gram:  gram,
		start: gram.StartSymbol(),
	}
	for _, opt := range opts {
		err := opt(p)
		if err != nil {
			return nil, err
		}
	}
	return p, nil
}

type stackEntry struct {
	num      int
	terminal bool
}

// Parse derives toks from the start symbol. It returns the trace on success and a
// *SyntaxError otherwise; no partial trace is returned.
func (p *Parser) Parse(toks []*token.Token) (*Trace, error) {
	in := newTerminalStream(p.gram, toks)
	trace := &Trace{
		gram:  p.gram,
		Start: p.start,
	}

	stack := arraystack.New()
	stack.Push(stackEntry{num: p.gram.EOF(), terminal: true})
	stack.Push(stackEntry{num: p.start})
	pos := 0
	for !stack.Empty() {
		v, _ := stack.Pop()
		top := v.(stackEntry)
		a := in.terminal(pos)

		if top.terminal {
			if top.num != a {
				return nil, p.syntaxError(SyntaxErrorUnexpectedToken, in, pos, 0, []int{top.num})
			}
			pos++
			continue
		}

		prod := p.gram.Lookup(top.num, a)
		if prod == 0 {
			return nil, p.syntaxError(SyntaxErrorNoProduction, in, pos, top.num, p.expectedTerminals(top.num))
		}
		trace.Steps = append(trace.Steps, &Step{
			NonTerminal: top.num,
			Production:  prod,
		})
		tracer().Debugf("%v", FormatProduction(p.gram, prod))

		rhs := p.gram.RHS(prod)
		if isEpsilon(p.gram, rhs) {
			continue
		}
		for i := len(rhs) - 1; i >= 0; i-- {
			num, terminal := decodeSymbol(rhs[i])
			stack.Push(stackEntry{num: num, terminal: terminal})
		}
	}

	// The stack empties only after EOF is matched, and EOF is the last input terminal.
	if pos != len(in.terms) {
		return nil, fmt.Errorf("the parse stopped at position %v before the end of input", pos)
	}

	return trace, nil
}

func (p *Parser) syntaxError(kind SyntaxErrorKind, in *terminalStream, pos int, nonTerm int, expected []int) *SyntaxError {
	e := &SyntaxError{
		Kind:     kind,
		Position: pos,
		Token:    in.token(pos),
	}
	if a := in.terminal(pos); a != terminalNil {
		e.Terminal = p.gram.Terminal(a)
	}
	if nonTerm != 0 {
		e.NonTerminal = p.gram.NonTerminal(nonTerm)
	}
	for _, t := range expected {
		e.ExpectedTerminals = append(e.ExpectedTerminals, p.gram.Terminal(t))
	}
	tracer().Infof("%v", e)
	return e
}

func (p *Parser) expectedTerminals(nonTerm int) []int {
	var terms []int
	for t := 1; t < p.gram.TerminalCount(); t++ {
		if p.gram.Lookup(nonTerm, t) != 0 {
			terms = append(terms, t)
		}
	}
	return terms
}
