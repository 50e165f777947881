package lr

import (
	"fmt"
	"io"
	"strings"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/sets/treeset"
	"github.com/emirpasic/gods/utils"
	"github.com/npillmayer/slrsim/lr/iteratable"
)

// === CFSM Construction =====================================================

// CFSMState is a state within the CFSM for a grammar.
type CFSMState struct {
	ID          int             // serial ID of this state
	items       *iteratable.Set // configuration items within this state
	transitions *linkedhashmap.Map
	Accept      bool // is this an accepting state?
}

// Transition is a labeled edge of the CFSM.
type Transition struct {
	Symbol string
	Target int
}

// CFSM edge between 2 states, directed and labeled with a grammar symbol
type cfsmEdge struct {
	from  *CFSMState
	to    *CFSMState
	label string
}

// Create a state from an item set
func state(id int, iset *iteratable.Set) *CFSMState {
	s := &CFSMState{ID: id, transitions: linkedhashmap.New()}
	if iset == nil {
		s.items = newItemSet()
	} else {
		s.items = iset
	}
	return s
}

// Items returns the items of a state, sorted.
func (s *CFSMState) Items() []Item {
	return SortedItems(s.items)
}

// ItemSet returns a copy of the item set of a state.
func (s *CFSMState) ItemSet() *iteratable.Set {
	return s.items.Copy()
}

// Transitions returns the outgoing edges of s, in order of discovery.
func (s *CFSMState) Transitions() []Transition {
	T := make([]Transition, 0, s.transitions.Size())
	it := s.transitions.Iterator()
	for it.Next() {
		T = append(T, Transition{Symbol: it.Key().(string), Target: it.Value().(int)})
	}
	return T
}

// Goto returns the target state ID for a transition on sym.
func (s *CFSMState) Goto(sym string) (int, bool) {
	if t, ok := s.transitions.Get(sym); ok {
		return t.(int), true
	}
	return -1, false
}

func (s *CFSMState) String() string {
	return fmt.Sprintf("(state %d | [%d])", s.ID, s.items.Size())
}

// Dump is a debugging helper
func (s *CFSMState) Dump(g *Grammar) {
	tracer().Debugf("--- state %03d -----------", s.ID)
	for _, i := range s.Items() {
		tracer().Debugf("    %s", i.Format(g))
	}
	tracer().Debugf("-------------------------")
}

func (s *CFSMState) containsCompletedStartRule() bool {
	for _, x := range s.items.Values() {
		if i := asItem(x); i.Prod == 0 && i.Dot == 1 {
			return true
		}
	}
	return false
}

// We need this for the set of states. It sorts states by serial ID.
func stateComparator(s1, s2 interface{}) int {
	c1 := s1.(*CFSMState)
	c2 := s2.(*CFSMState)
	return utils.IntComparator(c1.ID, c2.ID)
}

// CFSM is the characteristic finite state machine for a LR grammar, i.e. the
// LR(0) state diagram, or canonical collection of LR(0) item sets.
// Will be constructed by BuildCFSM or a TableGenerator.
type CFSM struct {
	g       *Grammar        // this CFSM is for Grammar g
	states  *treeset.Set    // all the states
	edges   *arraylist.List // all the edges between states
	S0      *CFSMState      // start state
	cfsmIds int             // serial IDs for CFSM states
}

// create an empty (initial) CFSM automata.
func emptyCFSM(g *Grammar) *CFSM {
	c := &CFSM{g: g}
	c.states = treeset.NewWith(stateComparator)
	c.edges = arraylist.New()
	return c
}

// Add a state to the CFSM, given a new item set.
func (c *CFSM) addState(iset *iteratable.Set) *CFSMState {
	s := state(c.cfsmIds, iset)
	c.cfsmIds++
	s.Accept = s.containsCompletedStartRule()
	c.states.Add(s)
	return s
}

// Find a CFSM state by the contained item set.
func (c *CFSM) findStateByItems(iset *iteratable.Set) *CFSMState {
	it := c.states.Iterator()
	for it.Next() {
		s := it.Value().(*CFSMState)
		if s.items.Equals(iset) {
			return s
		}
	}
	return nil
}

func (c *CFSM) addEdge(s0, s1 *CFSMState, sym string) {
	c.edges.Add(&cfsmEdge{from: s0, to: s1, label: sym})
	s0.transitions.Put(sym, s1.ID)
}

// Grammar returns the (augmented) grammar of the automaton.
func (c *CFSM) Grammar() *Grammar {
	return c.g
}

// States returns all states, ordered by ID.
func (c *CFSM) States() []*CFSMState {
	S := make([]*CFSMState, 0, c.states.Size())
	it := c.states.Iterator()
	for it.Next() {
		S = append(S, it.Value().(*CFSMState))
	}
	return S
}

// State returns the state with ID id, or nil.
func (c *CFSM) State(id int) *CFSMState {
	if id < 0 || id >= c.cfsmIds {
		return nil
	}
	return c.states.Values()[id].(*CFSMState)
}

// Size returns the number of states.
func (c *CFSM) Size() int {
	return c.states.Size()
}

// BuildCFSM constructs the characteristic finite state machine for an
// analysed grammar.
//
// States are discovered breadth first: the worklist is ordered by state ID and
// the lowest ID is processed next. Transitions of a state are computed for every
// grammar symbol in order of first appearance within the grammar, so the
// numbering of states is deterministic.
func BuildCFSM(ga *LRAnalysis) *CFSM {
	tracer().Debugf("=== build CFSM ==================================================")
	G := ga.Grammar()
	cfsm := emptyCFSM(G)
	S := newItemSet()
	S.Add(StartItem())
	cfsm.S0 = cfsm.addState(ga.Closure(S))
	cfsm.S0.Dump(G)
	symbols := G.Symbols()
	worklist := treeset.NewWith(stateComparator)
	worklist.Add(cfsm.S0)
	for !worklist.Empty() {
		s := worklist.Values()[0].(*CFSMState)
		worklist.Remove(s)
		for _, A := range symbols {
			gotoset := ga.Goto(s.items, A)
			if gotoset.Empty() {
				continue
			}
			snew := cfsm.findStateByItems(gotoset)
			if snew == nil {
				snew = cfsm.addState(gotoset)
				worklist.Add(snew)
				snew.Dump(G)
			}
			cfsm.addEdge(s, snew, A)
		}
	}
	tracer().Debugf("CFSM for %s has %d states", G.Name, cfsm.Size())
	return cfsm
}

// ToGraphViz exports a CFSM to the Graphviz Dot format.
func (c *CFSM) ToGraphViz(w io.Writer) error {
	var b strings.Builder
	b.WriteString(`digraph {
graph [splines=true, fontname=Helvetica, fontsize=10];
node [shape=Mrecord, style=filled, fontname=Helvetica, fontsize=10];
edge [fontname=Helvetica, fontsize=10];

`)
	for _, s := range c.States() {
		b.WriteString(fmt.Sprintf("s%03d [fillcolor=%s label=\"{%03d | %s}\"]\n",
			s.ID, nodecolor(s), s.ID, forGraphviz(c.g, s)))
	}
	it := c.edges.Iterator()
	for it.Next() {
		edge := it.Value().(*cfsmEdge)
		b.WriteString(fmt.Sprintf("s%03d -> s%03d [label=\"%s\"]\n",
			edge.from.ID, edge.to.ID, escapeDot(edge.label)))
	}
	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodecolor(state *CFSMState) string {
	if state.Accept {
		return "lightgray"
	}
	return "white"
}

func forGraphviz(g *Grammar, s *CFSMState) string {
	items := s.Items()
	lines := make([]string, len(items))
	for k, i := range items {
		lines[k] = escapeDot(i.Format(g))
	}
	return strings.Join(lines, "\\l") + "\\l"
}

var dotEscaper = strings.NewReplacer(`"`, `\"`, `{`, `\{`, `}`, `\}`,
	`|`, `\|`, `<`, `\<`, `>`, `\>`)

func escapeDot(s string) string {
	return dotEscaper.Replace(s)
}
