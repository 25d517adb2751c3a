/*
Package minicpp declares the grammar of a small C++ subset: include lines, an
optional `using namespace std;`, and an `int main() { ... return n; }` body made of
declarations, assignments, while loops, cin and cout statements.

The grammar is LL(1); compiling it never overwrites a table cell.
*/
package minicpp

import (
	"sync"

	"github.com/amiralimaroufi/cppiler/grammar"
	spec "github.com/amiralimaroufi/cppiler/spec/grammar"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("cppiler.minicpp")
}

// Name is the grammar name stored in the compiled grammar.
const Name = "minicpp"

// Generic terminals standing for lexical classes. Every other terminal is matched by
// its lexeme.
const (
	TerminalIdentifier = "identifier"
	TerminalNumber     = "number"
	TerminalString     = "string"
)

var terminals = []string{
	"#include", "using", "namespace", "std", ";", "int", "float", "main",
	"(", ")", "{", "}", "return", "while", "cin", "cout", ">>", "<<",
	TerminalString, TerminalNumber, TerminalIdentifier, "==", ">=", "<=", "!=", "+", "-", "*",
	",", `"`, "=",
}

var nonTerminals = []string{
	"Start", "S", "N", "M", "T", "V", "Id", "L", "Z", "Operation", "P", "O", "W",
	"Assign", "Expression", "K", "Loop", "Input", "F", "Output", "H", "C",
}

var productions = []struct {
	lhs  string
	alts [][]string
}{
	{"Start", [][]string{{"S", "N", "M"}}},
	{"S", [][]string{{"#include", "S"}, {grammar.Epsilon}}},
	{"N", [][]string{{"using", "namespace", "std", ";"}, {grammar.Epsilon}}},
	{"M", [][]string{{"int", "main", "(", ")", "{", "T", "V", "}"}}},
	{"T", [][]string{{"Id", "T"}, {"L", "T"}, {"Loop", "T"}, {"Input", "T"}, {"Output", "T"}, {grammar.Epsilon}}},
	{"V", [][]string{{"return", TerminalNumber, ";"}}},
	{"Id", [][]string{{"int", "L"}, {"float", "L"}}},
	{"L", [][]string{{TerminalIdentifier, "Assign", "Z"}}},
	{"Z", [][]string{{",", TerminalIdentifier, "Assign", "Z"}, {";"}}},
	{"Operation", [][]string{{TerminalNumber, "P"}, {TerminalIdentifier, "P"}}},
	{"P", [][]string{{"O", "W", "P"}, {grammar.Epsilon}}},
	{"O", [][]string{{"+"}, {"-"}, {"*"}}},
	{"W", [][]string{{TerminalNumber}, {TerminalIdentifier}}},
	{"Assign", [][]string{{"=", "Operation"}, {grammar.Epsilon}}},
	{"Expression", [][]string{{"Operation", "K", "Operation"}}},
	{"K", [][]string{{"=="}, {">="}, {"<="}, {"!="}}},
	{"Loop", [][]string{{"while", "(", "Expression", ")", "{", "T", "}"}}},
	{"Input", [][]string{{"cin", ">>", TerminalIdentifier, "F", ";"}}},
	{"F", [][]string{{">>", TerminalIdentifier, "F"}, {grammar.Epsilon}}},
	{"Output", [][]string{{"cout", "<<", "C", "H", ";"}}},
	{"H", [][]string{{"<<", "C", "H"}, {grammar.Epsilon}}},
	{"C", [][]string{{TerminalNumber}, {TerminalString}, {TerminalIdentifier}}},
}

// Grammar builds a fresh grammar. Callers that only parse should use Compile.
func Grammar() (*grammar.Grammar, error) {
	b := grammar.NewGrammarBuilder(Name)
	b.Terminals(terminals...)
	b.NonTerminals(nonTerminals...)
	for _, p := range productions {
		for _, alt := range p.alts {
			b.Production(p.lhs, alt...)
		}
	}
	return b.Build()
}

var (
	compileOnce sync.Once
	compiled    *spec.CompiledGrammar
	compileErr  error
)

// Compile returns the compiled grammar, building it on the first call. The result is
// shared and must not be modified.
func Compile() (*spec.CompiledGrammar, error) {
	compileOnce.Do(func() {
		g, err := Grammar()
		if err != nil {
			compileErr = err
			return
		}
		compiled, _, compileErr = grammar.Compile(g)
		if compileErr == nil {
			tracer().Debugf("%v compiled: %v productions", Name, len(compiled.Syntactic.LHSSymbols)-1)
		}
	})
	return compiled, compileErr
}
