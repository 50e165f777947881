package lr

import (
	"bytes"
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
)

func createTables(t *testing.T, g *Grammar) (*TableGenerator, *LRAnalysis) {
	ga, err := Analysis(g)
	if err != nil {
		t.Fatal(err)
	}
	lrgen := NewTableGenerator(ga)
	lrgen.CreateTables()
	return lrgen, ga
}

func TestActionEncoding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.lr")
	defer teardown()
	//
	for _, a := range []Action{Shift(0), Shift(17), Reduce(0), Reduce(5), Accept()} {
		if d := decodeAction(encodeAction(a)); d != a {
			t.Errorf("action %v decoded as %v", a, d)
		}
	}
	assert.Equal(t, "s4", Shift(4).String())
	assert.Equal(t, "r2", Reduce(2).String())
	assert.Equal(t, "acc", Accept().String())
}

func TestTableExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.lr")
	defer teardown()
	//
	lrgen, _ := createTables(t, expressionGrammar(t))
	if lrgen.HasConflicts {
		t.Fatalf("expression grammar should be SLR(1), conflicts: %v", lrgen.Table().Conflicts())
	}
	table := lrgen.Table()
	assert.Equal(t, 12, table.StateCount())
	assert.Equal(t, []string{"+", "*", "(", ")", "id", "$"}, table.Terminals())
	assert.Equal(t, []string{"E", "T", "F"}, table.NonTerminals())
	cells := []struct {
		state  int
		symbol string
		action Action
	}{
		{0, "id", Shift(5)}, {0, "(", Shift(4)}, {1, "+", Shift(6)}, {1, "$", Accept()},
		{2, "+", Reduce(2)}, {2, "*", Shift(7)}, {2, ")", Reduce(2)}, {2, "$", Reduce(2)},
		{5, "*", Reduce(6)}, {9, "*", Shift(7)}, {9, "$", Reduce(1)}, {11, "+", Reduce(5)},
	}
	for _, c := range cells {
		a, ok := table.Action(c.state, c.symbol)
		if !ok || a != c.action {
			t.Errorf("expected ACTION(%d,%s) = %v, got %v", c.state, c.symbol, c.action, a)
		}
	}
	_, ok := table.Action(0, "+")
	assert.False(t, ok, "ACTION(0,+) should be an error entry")
	_, ok = table.Action(0, "unknown")
	assert.False(t, ok)
	gotos := map[string]int{"E": 1, "T": 2, "F": 3}
	for N, target := range gotos {
		s, ok := table.Goto(0, N)
		assert.True(t, ok)
		assert.Equal(t, target, s, "GOTO(0,%s)", N)
	}
	s, _ := table.Goto(4, "E")
	assert.Equal(t, 8, s)
	_, ok = table.Goto(0, "E'")
	assert.False(t, ok, "augmented start symbol has no GOTO column")
	rows := table.Rows()
	assert.Len(t, rows, 13)
	assert.Equal(t, "s5", rows[1][5])
}

func TestTableTotality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.lr")
	defer teardown()
	//
	lrgen, ga := createTables(t, expressionGrammar(t))
	g := ga.Grammar()
	table := lrgen.Table()
	for _, s := range lrgen.CFSM().States() {
		for _, a := range table.Terminals() {
			var expected []Action
			if target, ok := s.Goto(a); ok {
				expected = append(expected, Shift(target))
			}
			for _, i := range s.Items() {
				if !i.IsReduction(g) {
					continue
				}
				if i.Prod == 0 {
					if a == EOF {
						expected = append(expected, Accept())
					}
					continue
				}
				for _, la := range ga.Follow(i.Rule(g).LHS) {
					if la == a {
						expected = append(expected, Reduce(i.Prod))
					}
				}
			}
			act, ok := table.Action(s.ID, a)
			if len(expected) == 0 {
				assert.False(t, ok, "unexpected ACTION(%d,%s) = %v", s.ID, a, act)
			} else if !ok || act != expected[0] {
				t.Errorf("ACTION(%d,%s) = %v, expected %v", s.ID, a, act, expected[0])
			}
		}
		for _, N := range table.NonTerminals() {
			target, hasEdge := s.Goto(N)
			got, ok := table.Goto(s.ID, N)
			assert.Equal(t, hasEdge, ok, "GOTO(%d,%s)", s.ID, N)
			if ok {
				assert.Equal(t, target, got)
			}
		}
	}
}

func TestTableDanglingElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.lr")
	defer teardown()
	//
	lrgen, _ := createTables(t, danglingElseGrammar(t))
	if !lrgen.HasConflicts {
		t.Fatalf("dangling else grammar should have conflicts")
	}
	table := lrgen.Table()
	conflicts := table.Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %v", conflicts)
	}
	c := conflicts[0]
	assert.Equal(t, ShiftReduce, c.Kind)
	assert.Equal(t, "else", c.Symbol)
	assert.Equal(t, ShiftAction, c.Existing.Kind)
	assert.Equal(t, Reduce(1), c.Candidate)
	a, ok := table.Action(c.State, "else")
	assert.True(t, ok)
	assert.Equal(t, c.Existing, a, "first written action has to remain in the table")
	a, _ = table.Action(c.State, "$")
	assert.Equal(t, Reduce(1), a)
}

func TestTableReduceReduce(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.lr")
	defer teardown()
	//
	b := NewGrammarBuilder("RR")
	b.LHS("S").N("A").End()
	b.LHS("S").N("B").End()
	b.LHS("A").T("x").End()
	b.LHS("B").T("x").End()
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	lrgen, _ := createTables(t, g)
	conflicts := lrgen.Table().Conflicts()
	if len(conflicts) != 1 {
		t.Fatalf("expected exactly 1 conflict, got %v", conflicts)
	}
	c := conflicts[0]
	assert.Equal(t, ReduceReduce, c.Kind)
	assert.Equal(t, EOF, c.Symbol)
	assert.Equal(t, Reduce(3), c.Existing)
	assert.Equal(t, Reduce(4), c.Candidate)
	a, _ := lrgen.Table().Action(c.State, EOF)
	assert.Equal(t, Reduce(3), a)
	t.Logf("%v", c)
}

func TestTableHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.lr")
	defer teardown()
	//
	lrgen, _ := createTables(t, expressionGrammar(t))
	var buf bytes.Buffer
	ActionTableAsHTML(lrgen, &buf)
	if !strings.Contains(buf.String(), "<td>acc</td>") {
		t.Errorf("expected accept action in HTML ACTION table")
	}
	buf.Reset()
	GotoTableAsHTML(lrgen, &buf)
	if !strings.Contains(buf.String(), "GOTO table") {
		t.Errorf("expected GOTO table in HTML output")
	}
}
