package diag

import (
	"fmt"

	"github.com/amiralimaroufi/cppiler/token"
)

type AssignmentWarning struct {
	Line int
}

func (w *AssignmentWarning) String() string {
	return fmt.Sprintf("line %v: invalid assignment", w.Line)
}

// CheckAssignments flags every `=` symbol whose line carries no number or identifier
// token. It looks at lines only and knows nothing about the grammar.
func CheckAssignments(toks []*token.Token) []*AssignmentWarning {
	operands := map[int]bool{}
	for _, tok := range toks {
		if tok.Kind == token.KindNumber || tok.Kind == token.KindIdentifier {
			operands[tok.Line] = true
		}
	}

	var ws []*AssignmentWarning
	for _, tok := range toks {
		if tok.Kind != token.KindSymbol || tok.Lexeme != "=" {
			continue
		}
		if operands[tok.Line] {
			continue
		}
		w := &AssignmentWarning{
			Line: tok.Line,
		}
		tracer().Infof("%v", w)
		ws = append(ws, w)
	}
	return ws
}
