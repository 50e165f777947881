/*
Package ptree implements parse trees built by a shift-reduce parser.

Leaves are created for shifted terminals and for ε, interior nodes whenever a
production is reduced. Node IDs are handed out by a Builder, which is owned by a
single parser run. Children, once attached to a node, are never re-parented.

While a parse is in progress, the forest is the list of subtree roots which
have not yet been consumed by a reduction, i.e. the nodes on the parse stack.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package ptree

import (
	"strings"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/slrsim"
)

// tracer traces with key 'slrsim.slr'.
func tracer() tracing.Trace {
	return tracing.Select("slrsim.slr")
}

// Node is a node of a parse tree.
type Node struct {
	ID       int     // unique within a parser run
	Label    string  // grammar symbol
	Children []*Node // ordered, owned by this node
	Value    *string // literal text, for leaf terminals only
	Rule     int     // production ID for interior nodes, -1 for leaves
	Span     slrsim.Span
}

// IsLeaf is true for nodes without children.
func (n *Node) IsLeaf() bool {
	return len(n.Children) == 0
}

// String returns a node in s-expression form, e.g. (E (T (F id))).
func (n *Node) String() string {
	var b strings.Builder
	n.format(&b)
	return b.String()
}

func (n *Node) format(b *strings.Builder) {
	if n.IsLeaf() {
		if n.Value != nil && *n.Value != n.Label {
			b.WriteString(n.Label)
			b.WriteString(":")
			b.WriteString(*n.Value)
			return
		}
		b.WriteString(n.Label)
		return
	}
	b.WriteString("(")
	b.WriteString(n.Label)
	for _, ch := range n.Children {
		b.WriteString(" ")
		ch.format(b)
	}
	b.WriteString(")")
}

// Size returns the number of nodes in the tree rooted at n.
func (n *Node) Size() int {
	size := 1
	for _, ch := range n.Children {
		size += ch.Size()
	}
	return size
}

// --- Builder ---------------------------------------------------------------

// Builder creates tree nodes. It owns the node ID counter of a single parser
// run; it is not safe for concurrent use.
type Builder struct {
	nextID  int
	epsilon string
}

// NewBuilder creates a node builder. epsilon is the label for ε-leaves.
func NewBuilder(epsilon string) *Builder {
	return &Builder{epsilon: epsilon}
}

func (b *Builder) id() int {
	id := b.nextID
	b.nextID++
	return id
}

// Leaf creates a leaf for a terminal. If value is empty, the leaf carries no
// literal text (used for the end marker and placeholders).
func (b *Builder) Leaf(label string, value string, span slrsim.Span) *Node {
	n := &Node{ID: b.id(), Label: label, Rule: -1, Span: span}
	if value != "" {
		v := value
		n.Value = &v
	}
	return n
}

// EpsilonLeaf creates a leaf representing the empty string at position pos.
func (b *Builder) EpsilonLeaf(pos uint64) *Node {
	return &Node{ID: b.id(), Label: b.epsilon, Rule: -1, Span: slrsim.Span{pos, pos}}
}

// Interior creates a node for a reduction of production rule to label. The
// span of the node covers the spans of all its children.
func (b *Builder) Interior(label string, rule int, children []*Node) *Node {
	n := &Node{ID: b.id(), Label: label, Rule: rule}
	n.Children = append([]*Node(nil), children...)
	for k, ch := range n.Children {
		if k == 0 {
			n.Span = ch.Span
		} else {
			n.Span = n.Span.Extend(ch.Span)
		}
	}
	tracer().Debugf("tree node %d = %s", n.ID, n)
	return n
}

// Count returns the number of nodes created so far.
func (b *Builder) Count() int {
	return b.nextID
}

// --- Forest ----------------------------------------------------------------

// Forest is a snapshot of the subtree roots of an in-progress parse, from
// bottom to top of the parse stack.
type Forest []*Node

// Snapshot copies a list of roots. Nodes are shared, as they are never
// modified after creation.
func Snapshot(roots []*Node) Forest {
	return append(Forest(nil), roots...)
}

// Labels returns the labels of the roots of a forest.
func (f Forest) Labels() []string {
	labels := make([]string, len(f))
	for k, n := range f {
		labels[k] = n.Label
	}
	return labels
}

func (f Forest) String() string {
	parts := make([]string, len(f))
	for k, n := range f {
		parts[k] = n.String()
	}
	return "[" + strings.Join(parts, " ") + "]"
}
