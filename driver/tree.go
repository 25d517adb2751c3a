package driver

import (
	"fmt"
	"io"

	"github.com/amiralimaroufi/cppiler/token"
	"github.com/emirpasic/gods/stacks/arraystack"
)

// Node is a node of a derivation tree. Text and Line are set only on identifier,
// number and string leaves. An epsilon expansion has a single child named ε.
type Node struct {
	KindName string
	Text     string
	Line     int
	Children []*Node
}

func PrintTree(w io.Writer, node *Node) {
	printTree(w, node, "", "")
}

func printTree(w io.Writer, node *Node, ruledLine string, childRuledLinePrefix string) {
	if node == nil {
		return
	}

	if node.isLexicalLeaf() {
		fmt.Fprintf(w, "%v%v %#v\n", ruledLine, node.KindName, node.Text)
	} else {
		fmt.Fprintf(w, "%v%v\n", ruledLine, node.KindName)
	}

	num := len(node.Children)
	for i, child := range node.Children {
		var line string
		if num > 1 && i < num-1 {
			line = "├─ "
		} else {
			line = "└─ "
		}

		var prefix string
		if i >= num-1 {
			prefix = "   "
		} else {
			prefix = "│  "
		}

		printTree(w, child, childRuledLinePrefix+line, childRuledLinePrefix+prefix)
	}
}

// Leaves returns the terminal leaves of the tree from left to right, ε leaves excluded.
func (n *Node) Leaves() []*Node {
	var leaves []*Node
	walk(n, func(node *Node) bool {
		if len(node.Children) == 0 && !node.isEpsilon() {
			leaves = append(leaves, node)
		}
		return false
	})
	return leaves
}

// isLexicalLeaf reports whether n is an identifier, number or string leaf. Its Text may
// be empty, as for the literal "".
func (n *Node) isLexicalLeaf() bool {
	return len(n.Children) == 0 && isGenericTerminalName(n.KindName)
}

func (n *Node) isEpsilon() bool {
	return n.KindName == epsilonNodeName
}

const epsilonNodeName = "ε"

type expansion struct {
	node     *Node
	num      int
	terminal bool
}

// BuildTree replays trace against toks. Its expansion stack mirrors the parser's: every
// RHS symbol is pushed right to left, a popped non-terminal takes the next step and a
// popped terminal takes the next token.
func BuildTree(gram Grammar, trace *Trace, toks []*token.Token) (*Node, error) {
	root := &Node{
		KindName: gram.NonTerminal(trace.Start),
	}

	stack := arraystack.New()
	stack.Push(&expansion{node: root, num: trace.Start})
	stepPos := 0
	tokPos := 0
	for !stack.Empty() {
		v, _ := stack.Pop()
		e := v.(*expansion)

		if e.terminal {
			if tokPos >= len(toks) {
				return nil, &DesyncError{
					Step:    stepPos,
					Message: fmt.Sprintf("the tokens ran out before terminal %v", e.node.KindName),
				}
			}
			tok := toks[tokPos]
			if name := TerminalName(tok); name != e.node.KindName {
				return nil, &DesyncError{
					Step:    stepPos,
					Message: fmt.Sprintf("terminal %v meets token %v", e.node.KindName, tok),
				}
			}
			if tok.Kind.IsLexicalClass() {
				e.node.Text = tok.Lexeme
				e.node.Line = tok.Line
			}
			tokPos++
			continue
		}

		if stepPos >= len(trace.Steps) {
			return nil, &DesyncError{
				Step:    stepPos,
				Message: fmt.Sprintf("the trace ran out while %v is pending", e.node.KindName),
			}
		}
		step := trace.Steps[stepPos]
		if step.NonTerminal != e.num || gram.LHS(step.Production) != e.num {
			return nil, &DesyncError{
				Step: stepPos,
				Message: fmt.Sprintf("the step expands %v but %v is pending",
					gram.NonTerminal(gram.LHS(step.Production)), e.node.KindName),
			}
		}
		stepPos++

		rhs := gram.RHS(step.Production)
		if isEpsilon(gram, rhs) {
			e.node.Children = []*Node{{KindName: epsilonNodeName}}
			continue
		}
		children := make([]*expansion, 0, len(rhs))
		for _, v := range rhs {
			num, terminal := decodeSymbol(v)
			child := &Node{
				KindName: symbolName(gram, v),
			}
			e.node.Children = append(e.node.Children, child)
			children = append(children, &expansion{
				node:     child,
				num:      num,
				terminal: terminal,
			})
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack.Push(children[i])
		}
	}

	if stepPos < len(trace.Steps) {
		return nil, &DesyncError{
			Step:    stepPos,
			Message: fmt.Sprintf("%v steps are left over", len(trace.Steps)-stepPos),
		}
	}
	if tokPos < len(toks) {
		return nil, &DesyncError{
			Step:    stepPos,
			Message: fmt.Sprintf("%v tokens are left over", len(toks)-tokPos),
		}
	}

	return root, nil
}
