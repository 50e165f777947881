package lr

import (
	"fmt"
	"io"

	"github.com/npillmayer/slrsim/lr/sparse"
)

// === Actions ===============================================================

// ActionKind is the kind of an entry of the ACTION table.
type ActionKind int8

// Kinds of parser actions. There is no error action: a missing table entry
// denotes an error.
const (
	ShiftAction ActionKind = iota
	ReduceAction
	AcceptAction
)

func (k ActionKind) String() string {
	switch k {
	case ShiftAction:
		return "shift"
	case ReduceAction:
		return "reduce"
	case AcceptAction:
		return "accept"
	}
	return "<unknown action>"
}

// Action is an entry of the ACTION table. For shift actions Target is the
// state to push, for reduce actions it is the production ID.
type Action struct {
	Kind   ActionKind
	Target int
}

// Shift creates a shift action to state s.
func Shift(s int) Action { return Action{Kind: ShiftAction, Target: s} }

// Reduce creates a reduce action for production p.
func Reduce(p int) Action { return Action{Kind: ReduceAction, Target: p} }

// Accept creates an accept action.
func Accept() Action { return Action{Kind: AcceptAction} }

func (a Action) String() string {
	switch a.Kind {
	case ShiftAction:
		return fmt.Sprintf("s%d", a.Target)
	case ReduceAction:
		return fmt.Sprintf("r%d", a.Target)
	case AcceptAction:
		return "acc"
	}
	return "?"
}

// Actions are stored as int32 in a sparse matrix:
//
//     shift s    →  s  (≥ 0)
//     accept     → -1
//     reduce p   → -(p+2)
//
const encodedAccept = -1

func encodeAction(a Action) int32 {
	switch a.Kind {
	case ShiftAction:
		return int32(a.Target)
	case AcceptAction:
		return encodedAccept
	}
	return int32(-(a.Target + 2))
}

func decodeAction(v int32) Action {
	switch {
	case v >= 0:
		return Shift(int(v))
	case v == encodedAccept:
		return Accept()
	}
	return Reduce(int(-v) - 2)
}

// === Conflicts =============================================================

// ConflictKind classifies table conflicts.
type ConflictKind int8

// Shift/reduce conflicts have a shift action as the existing occupant of a
// table cell, all other conflicts are reduce/reduce conflicts.
const (
	ShiftReduce ConflictKind = iota
	ReduceReduce
)

func (k ConflictKind) String() string {
	if k == ShiftReduce {
		return "shift/reduce"
	}
	return "reduce/reduce"
}

// Conflict records two applicable actions for a cell of the ACTION table.
// Existing is the action which remained in the table.
type Conflict struct {
	State     int
	Symbol    string
	Kind      ConflictKind
	Existing  Action
	Candidate Action
}

func (c Conflict) String() string {
	return fmt.Sprintf("%s conflict in state %d on %q: %s vs %s",
		c.Kind, c.State, c.Symbol, c.Existing, c.Candidate)
}

type conflictKey struct {
	state  int
	symbol string
	kind   ConflictKind
	prod   int
}

// === Tables ================================================================

// Table holds the ACTION and GOTO tables of an SLR(1) parser. Tables are
// read-only once created.
type Table struct {
	actions      *sparse.IntMatrix
	gotos        *sparse.IntMatrix
	terminals    []string
	termcol      map[string]int
	nonterminals []string
	ntcol        map[string]int
	conflicts    []Conflict
	states       int
}

func newTable(g *Grammar, states int) *Table {
	t := &Table{
		terminals: append(g.Terminals(), EOF),
		termcol:   make(map[string]int),
		ntcol:     make(map[string]int),
		states:    states,
	}
	for j, a := range t.terminals {
		t.termcol[a] = j
	}
	for _, N := range g.NonTerminals() {
		if N == g.Start() {
			continue
		}
		t.ntcol[N] = len(t.nonterminals)
		t.nonterminals = append(t.nonterminals, N)
	}
	t.actions = sparse.NewIntMatrix(states, len(t.terminals), sparse.DefaultNullValue)
	t.gotos = sparse.NewIntMatrix(states, len(t.nonterminals), sparse.DefaultNullValue)
	return t
}

// Action returns the action for a state and a terminal. If there is none,
// the second return value is false. Unknown terminals never have an action.
func (t *Table) Action(state int, terminal string) (Action, bool) {
	j, ok := t.termcol[terminal]
	if !ok || state < 0 || state >= t.states {
		return Action{}, false
	}
	v := t.actions.Value(state, j)
	if v == t.actions.NullValue() {
		return Action{}, false
	}
	return decodeAction(v), true
}

// Goto returns the target state for a state and a non-terminal.
func (t *Table) Goto(state int, nonterminal string) (int, bool) {
	j, ok := t.ntcol[nonterminal]
	if !ok || state < 0 || state >= t.states {
		return -1, false
	}
	v := t.gotos.Value(state, j)
	if v == t.gotos.NullValue() {
		return -1, false
	}
	return int(v), true
}

func (t *Table) setAction(state int, terminal string, a Action) {
	t.actions.Set(state, t.termcol[terminal], encodeAction(a))
}

// Terminals returns the column headers of the ACTION table: the terminals
// of the grammar, followed by $.
func (t *Table) Terminals() []string {
	return append([]string(nil), t.terminals...)
}

// NonTerminals returns the column headers of the GOTO table. The augmented
// start symbol is not included.
func (t *Table) NonTerminals() []string {
	return append([]string(nil), t.nonterminals...)
}

// StateCount returns the number of rows.
func (t *Table) StateCount() int {
	return t.states
}

// Conflicts returns all conflicts found during construction, in the order
// they have been detected.
func (t *Table) Conflicts() []Conflict {
	return append([]Conflict(nil), t.conflicts...)
}

// HasConflicts is true if the grammar is not SLR(1).
func (t *Table) HasConflicts() bool {
	return len(t.conflicts) > 0
}

// Rows returns a textual representation of the tables, one row per state.
// The first row holds the column headers: state, terminals, non-terminals.
func (t *Table) Rows() [][]string {
	rows := make([][]string, 0, t.states+1)
	header := []string{"state"}
	header = append(header, t.terminals...)
	header = append(header, t.nonterminals...)
	rows = append(rows, header)
	for s := 0; s < t.states; s++ {
		row := []string{fmt.Sprintf("%d", s)}
		for _, a := range t.terminals {
			cell := ""
			if act, ok := t.Action(s, a); ok {
				cell = act.String()
			}
			row = append(row, cell)
		}
		for _, N := range t.nonterminals {
			cell := ""
			if target, ok := t.Goto(s, N); ok {
				cell = fmt.Sprintf("%d", target)
			}
			row = append(row, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

// === Table Generator =======================================================

// TableGenerator is a generator object to construct LR parser tables.
// Clients usually create a Grammar G, then a LRAnalysis-object for G,
// and then a table generator. TableGenerator.CreateTables() constructs
// the CFSM and parser tables for an SLR(1) parser recognizing grammar G.
type TableGenerator struct {
	g            *Grammar
	ga           *LRAnalysis
	dfa          *CFSM
	table        *Table
	HasConflicts bool
}

// NewTableGenerator creates a new TableGenerator for a (previously analysed) grammar.
func NewTableGenerator(ga *LRAnalysis) *TableGenerator {
	lrgen := &TableGenerator{}
	lrgen.g = ga.Grammar()
	lrgen.ga = ga
	return lrgen
}

// CFSM returns the characteristic finite state machine (CFSM) for a grammar.
// The CFSM will be created, if it has not been constructed previously.
func (lrgen *TableGenerator) CFSM() *CFSM {
	if lrgen.dfa == nil {
		lrgen.dfa = BuildCFSM(lrgen.ga)
	}
	return lrgen.dfa
}

// Table returns the parser tables. The tables have to be built by calling
// CreateTables() previously.
func (lrgen *TableGenerator) Table() *Table {
	if lrgen.table == nil {
		tracer().Errorf("tables not yet initialized")
	}
	return lrgen.table
}

// CreateTables creates the necessary data structures for an SLR parser.
// Conflicts do not stop table construction.
func (lrgen *TableGenerator) CreateTables() *Table {
	lrgen.table = BuildTable(lrgen.ga, lrgen.CFSM())
	lrgen.HasConflicts = lrgen.table.HasConflicts()
	return lrgen.table
}

// BuildTable constructs the SLR(1) ACTION and GOTO tables from a CFSM.
//
// For every state, transitions on terminals produce shift entries and
// transitions on non-terminals produce goto entries. Then, for every reduction
// item A ➞ α •, a reduce entry is produced for each terminal in FOLLOW(A).
// The item S' ➞ S • produces an accept entry for $ instead.
//
// An accept entry replaces any action previously written for $. For every
// other cell the first action written stays in place; later candidates are
// recorded as conflicts only.
func BuildTable(ga *LRAnalysis, dfa *CFSM) *Table {
	g := ga.Grammar()
	t := newTable(g, dfa.Size())
	tracer().Infof("ACTION table of size %d x %d", t.states, len(t.terminals))
	seen := make(map[conflictKey]bool)
	report := func(state int, sym string, existing, candidate Action) {
		kind := ReduceReduce
		if existing.Kind == ShiftAction {
			kind = ShiftReduce
		}
		prod := candidate.Target
		if candidate.Kind == AcceptAction {
			prod = 0
		}
		key := conflictKey{state: state, symbol: sym, kind: kind, prod: prod}
		if seen[key] {
			return
		}
		seen[key] = true
		c := Conflict{State: state, Symbol: sym, Kind: kind, Existing: existing, Candidate: candidate}
		tracer().Infof("%s", c)
		t.conflicts = append(t.conflicts, c)
	}
	for _, state := range dfa.States() {
		tracer().Debugf("--- state %d --------------------------------", state.ID)
		for _, edge := range state.Transitions() {
			if g.IsTerminal(edge.Symbol) {
				t.setAction(state.ID, edge.Symbol, Shift(edge.Target))
			} else {
				t.gotos.Set(state.ID, t.ntcol[edge.Symbol], int32(edge.Target))
			}
		}
		for _, item := range state.Items() {
			if !item.IsReduction(g) {
				continue
			}
			rule := item.Rule(g)
			if rule.LHS == g.Start() {
				if existing, ok := t.Action(state.ID, EOF); ok && existing != Accept() {
					report(state.ID, EOF, existing, Accept())
				}
				t.setAction(state.ID, EOF, Accept())
				continue
			}
			for _, la := range ga.Follow(rule.LHS) {
				if _, ok := t.termcol[la]; !ok {
					continue
				}
				candidate := Reduce(rule.ID)
				if existing, ok := t.Action(state.ID, la); ok {
					if existing != candidate {
						report(state.ID, la, existing, candidate)
					}
					continue
				}
				t.setAction(state.ID, la, candidate)
				tracer().Debugf("    reduce_%d @ %s for %v", rule.ID, la, rule)
			}
		}
	}
	return t
}

// --- HTML export -----------------------------------------------------------

// GotoTableAsHTML exports a GOTO-table in HTML-format.
func GotoTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.table == nil {
		tracer().Errorf("GOTO table not yet created, cannot export to HTML")
		return
	}
	t := lrgen.table
	parserTableAsHTML("GOTO", t.nonterminals, t.gotos.ValueCount(), t.states, w,
		func(s int, N string) string {
			if target, ok := t.Goto(s, N); ok {
				return fmt.Sprintf("%d", target)
			}
			return ""
		})
}

// ActionTableAsHTML exports the SLR(1) ACTION-table in HTML-format.
func ActionTableAsHTML(lrgen *TableGenerator, w io.Writer) {
	if lrgen.table == nil {
		tracer().Errorf("ACTION table not yet created, cannot export to HTML")
		return
	}
	t := lrgen.table
	parserTableAsHTML("ACTION", t.terminals, t.actions.ValueCount(), t.states, w,
		func(s int, a string) string {
			if act, ok := t.Action(s, a); ok {
				return act.String()
			}
			return ""
		})
}

func parserTableAsHTML(tname string, columns []string, size int, states int, w io.Writer,
	cell func(int, string) string) {
	//
	io.WriteString(w, "<html><body>\n")
	io.WriteString(w, fmt.Sprintf("%s table of size = %d<p>", tname, size))
	io.WriteString(w, "<table border=1 cellspacing=0 cellpadding=5>\n")
	io.WriteString(w, "<tr bgcolor=#cccccc><td></td>\n")
	for _, A := range columns {
		io.WriteString(w, fmt.Sprintf("<td>%s</td>", A))
	}
	io.WriteString(w, "</tr>\n")
	for s := 0; s < states; s++ {
		io.WriteString(w, fmt.Sprintf("<tr><td>state %d</td>\n", s))
		for _, A := range columns {
			td := cell(s, A)
			if td == "" {
				td = "&nbsp;"
			}
			io.WriteString(w, "<td>")
			io.WriteString(w, td)
			io.WriteString(w, "</td>\n")
		}
		io.WriteString(w, "</tr>\n")
	}
	io.WriteString(w, "</table></body></html>\n")
}
