// Package diag provides the token table and the assignment check reported alongside a parse.
package diag

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'cppiler.diag'.
func tracer() tracing.Trace {
	return tracing.Select("cppiler.diag")
}
