/*
Package grammar analyses a context-free grammar for predictive parsing.

A grammar is declared with a GrammarBuilder. Alternatives are numbered in the
order they are declared; the empty alternative is written with Epsilon.

	b := grammar.NewGrammarBuilder("decl")
	b.Terminals("int", "identifier", ";")
	b.NonTerminals("Id", "L")
	b.Production("Id", "int", "L")
	b.Production("L", "identifier", ";")
	b.Production("L", grammar.Epsilon)
	g, err := b.Build()

Compile computes FIRST and FOLLOW sets by fixed-point iteration, fills the LL(1)
table and emits a portable compiled grammar for package driver. When two
alternatives claim the same table cell, the later one wins and the overwrite is
recorded in the report.
*/
package grammar

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'cppiler.grammar'.
func tracer() tracing.Trace {
	return tracing.Select("cppiler.grammar")
}
