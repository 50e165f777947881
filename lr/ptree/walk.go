package ptree

// Direction lets clients decide wether children nodes should be traversed left-to-right
// (default) or right-to-left.
type Direction int

// Children nodes may be traversed left-to-right (default) or right-to-left.
const (
	LtoR Direction = 1
	RtoL Direction = -1
)

// Breakmode is a client hint wether to stop traversing on break-signals or not.
type Breakmode int

// Setting Continue will always traverse a complete (sub-)tree. Break will skip
// traversing sub-tree as soon as an Enter-function signals a break.
const (
	Continue Breakmode = iota
	Break
)

// Listener is a type for walking a parse tree.
//
// EnterRule returns a boolean value indicating if the traversal should continue to
// the children of this node. ExitRule and Terminal may return user-defined values
// to be propagated upwards of the tree. ExitRule receives the values of the
// children, in the order of the children of the node, regardless of the
// direction of traversal. Children skipped by a break have a nil value.
type Listener interface {
	EnterRule(*Node, RuleCtxt) bool
	ExitRule(*Node, []interface{}, RuleCtxt) interface{}
	Terminal(*Node, RuleCtxt) interface{}
}

// RuleCtxt is a context structure for Listeners.
type RuleCtxt struct {
	Level     int // nesting level
	RuleIndex int // -1 for leaves
}

// Walk traverses a tree top-down, applying Listener-methods for all nodes
// encountered. It returns a user-defined value, calculated by the listener.
func Walk(root *Node, listener Listener, dir Direction, breakmode Breakmode) interface{} {
	if root == nil {
		return nil
	}
	return walk(root, listener, dir, breakmode, 0)
}

func walk(n *Node, listener Listener, dir Direction, breakmode Breakmode, level int) interface{} {
	ctxt := RuleCtxt{Level: level, RuleIndex: n.Rule}
	if n.IsLeaf() {
		return listener.Terminal(n, ctxt)
	}
	values := make([]interface{}, len(n.Children))
	doContinue := listener.EnterRule(n, ctxt)
	if doContinue || breakmode == Continue {
		i, end := 0, len(n.Children)
		if dir == RtoL {
			i, end = len(n.Children)-1, -1
		}
		for ; i != end; i += int(dir) {
			values[i] = walk(n.Children[i], listener, dir, breakmode, level+1)
		}
	}
	return listener.ExitRule(n, values, ctxt)
}

// Leaves returns the leaves of a tree, left to right.
func Leaves(root *Node) []*Node {
	var leaves []*Node
	var collect func(*Node)
	collect = func(n *Node) {
		if n.IsLeaf() {
			leaves = append(leaves, n)
			return
		}
		for _, ch := range n.Children {
			collect(ch)
		}
	}
	if root != nil {
		collect(root)
	}
	return leaves
}
