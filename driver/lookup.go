package driver

import (
	"github.com/emirpasic/gods/stacks/arraystack"
)

// walk visits the tree in pre-order with an explicit stack. It stops as soon as visit
// returns true.
func walk(root *Node, visit func(node *Node) bool) {
	if root == nil {
		return
	}
	stack := arraystack.New()
	stack.Push(root)
	for !stack.Empty() {
		v, _ := stack.Pop()
		node := v.(*Node)
		if visit(node) {
			return
		}
		for i := len(node.Children) - 1; i >= 0; i-- {
			stack.Push(node.Children[i])
		}
	}
}

// DefinitionNodeName is the non-terminal whose first child is the identifier being defined.
const DefinitionNodeName = "L"

// FindFirstDefinition returns the line of the first definition of name, that is the
// leftmost L node whose identifier carries name.
func FindFirstDefinition(root *Node, name string) (int, bool) {
	line := 0
	found := false
	walk(root, func(node *Node) bool {
		if node.KindName != DefinitionNodeName || len(node.Children) == 0 {
			return false
		}
		id := node.Children[0]
		if id.KindName != TerminalIdentifier || id.Text != name {
			return false
		}
		line = id.Line
		found = true
		return true
	})
	return line, found
}
