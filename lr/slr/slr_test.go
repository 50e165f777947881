package slr

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/slrsim/lr"
	"github.com/npillmayer/slrsim/lr/scanner"
	"github.com/stretchr/testify/assert"
)

func compile(t *testing.T, b *lr.GrammarBuilder) *lr.Compilation {
	g, err := b.Grammar()
	if err != nil {
		t.Fatal(err)
	}
	comp, err := lr.Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	return comp
}

func expressions(t *testing.T) *lr.Compilation {
	b := lr.NewGrammarBuilder("Expressions")
	b.LHS("E").N("E").T("+").N("T").End()
	b.LHS("E").N("T").End()
	b.LHS("T").N("T").T("*").N("F").End()
	b.LHS("T").N("F").End()
	b.LHS("F").T("(").N("E").T(")").End()
	b.LHS("F").T("id").End()
	return compile(t, b)
}

func TestParseExpression(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	var observed int
	p := NewParser(comp.Grammar(), comp.Table, WithObserver(func(Step) { observed++ }))
	result := p.Parse("id * ( id + id )")
	if !result.Accepted {
		t.Fatalf("expected input to be accepted, last step = %v", result.Last().Explanation)
	}
	last := result.Last()
	assert.Equal(t, AcceptStep, last.Kind)
	assert.Equal(t, lr.Accept(), last.Action)
	assert.Equal(t, []string{"E"}, last.Forest.Labels())
	assert.Equal(t, []string{lr.EOF, "E"}, last.Symbols)
	assert.Equal(t, []string{lr.EOF}, last.Input)
	assert.Equal(t, len(result.Steps), observed)
	root := result.Root()
	if root == nil || root.Label != "E" {
		t.Fatalf("expected single parse tree root E, have %v", result.Forest)
	}
	assert.Equal(t, "(E (T (T (F id)) * (F ( (E (E (T (F id))) + (T (F id))) ))))", root.String())
	for k, step := range result.Steps {
		assert.Equal(t, k, step.Index)
		assert.Equal(t, len(step.States), len(step.Symbols), "stacks out of sync at step %d", k)
	}
	first := result.Steps[0]
	assert.Equal(t, ShiftStep, first.Kind)
	assert.Equal(t, []int{0, 5}, first.States)
	assert.Equal(t, []string{"*", "(", "id", "+", "id", ")", lr.EOF}, first.Input)
}

func TestParseReduceEmitsGoto(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	result := NewParser(comp.Grammar(), comp.Table).Parse("id")
	kinds := make([]StepKind, len(result.Steps))
	for k, step := range result.Steps {
		kinds[k] = step.Kind
	}
	assert.Equal(t, []StepKind{ShiftStep,
		ReduceStep, GotoStep, ReduceStep, GotoStep, ReduceStep, GotoStep,
		AcceptStep}, kinds)
	assert.Equal(t, "reduce F ➞ id", result.Steps[1].Label)
	assert.Equal(t, []int{0}, result.Steps[1].States)
	assert.Equal(t, []string{"F"}, result.Steps[1].Forest.Labels())
	assert.Equal(t, "goto 3", result.Steps[2].Label)
}

func TestParseEpsilon(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("A")
	b.LHS("A").T("a").N("A").End()
	b.LHS("A").Epsilon()
	comp := compile(t, b)
	assert.False(t, comp.Table.HasConflicts())
	result := NewParser(comp.Grammar(), comp.Table).Parse("a a")
	if !result.Accepted {
		t.Fatalf("expected 'a a' to be accepted")
	}
	epsReductions := 0
	for _, step := range result.Steps {
		if step.Kind == ReduceStep && comp.Grammar().Rule(step.Action.Target).IsEpsilon() {
			epsReductions++
			node := step.Forest[len(step.Forest)-1]
			if len(node.Children) != 1 || node.Children[0].Label != lr.Epsilon {
				t.Errorf("expected ε-reduction to produce node with single ε child, got %v", node)
			}
		}
	}
	assert.Equal(t, 1, epsReductions)
	assert.Equal(t, "(A a (A a (A ε)))", result.Root().String())
}

func TestParseUnknownToken(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	p := NewParser(comp.Grammar(), comp.Table)
	result := p.Parse("x + id")
	assert.False(t, result.Accepted)
	assert.Len(t, result.Steps, 1)
	last := result.Last()
	assert.Equal(t, SyntaxError, last.Kind)
	assert.True(t, last.Kind.IsError())
	assert.Equal(t, scanner.ErrorSymbol, last.Token.Symbol())
	assert.Equal(t, "x", last.Token.Lexeme())
	assert.Equal(t, uint64(0), last.Token.Span().From())
	assert.Contains(t, last.Explanation, "state 0")
	assert.Contains(t, last.Explanation, `"x"`)
	//
	result = p.Parse("id + ? id")
	last = result.Last()
	assert.Equal(t, SyntaxError, last.Kind)
	assert.Equal(t, "?", last.Token.Lexeme())
	assert.Equal(t, uint64(5), last.Token.Span().From())
	assert.Equal(t, []string{"?", "id", lr.EOF}, last.Input)
	assert.Equal(t, lr.ErrorSymbol, scanner.ErrorSymbol)
}

func TestParseDollarInInput(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	p := NewParser(comp.Grammar(), comp.Table)
	for _, input := range []string{"id $ + id", "id $ + id garbage", "$"} {
		result := p.Parse(input)
		assert.False(t, result.Accepted, "input %q must not be accepted", input)
		last := result.Last()
		assert.Equal(t, SyntaxError, last.Kind, "input %q", input)
		assert.Equal(t, scanner.ErrorSymbol, last.Token.Symbol(), "input %q", input)
		assert.Equal(t, "$", last.Token.Lexeme(), "input %q", input)
	}
	result := p.Parse("id $ + id")
	assert.Equal(t, []string{"$", "+", "id", lr.EOF}, result.Last().Input)
	assert.Equal(t, uint64(3), result.Last().Token.Span().From())
}

func TestParseIncomplete(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	result := NewParser(comp.Grammar(), comp.Table).Parse("( id")
	assert.False(t, result.Accepted)
	assert.Equal(t, SyntaxError, result.Last().Kind)
	assert.Equal(t, lr.EOF, result.Last().Token.Symbol())
	assert.Nil(t, result.Root())
}

func TestParseDanglingElse(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	b := lr.NewGrammarBuilder("Dangling Else")
	b.LHS("S").T("if").N("S").End()
	b.LHS("S").T("if").N("S").T("else").N("S").End()
	b.LHS("S").T("a").End()
	comp := compile(t, b)
	if !comp.Table.HasConflicts() {
		t.Fatalf("expected shift/reduce conflict")
	}
	// shift wins, as it is the first action in the table cell: else binds to inner if
	result := NewParser(comp.Grammar(), comp.Table).Parse("if if a else a")
	if !result.Accepted {
		t.Fatalf("expected input to be accepted")
	}
	assert.Equal(t, "(S if (S if (S a) else (S a)))", result.Root().String())
}

func TestIterationCeiling(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	result := NewParser(comp.Grammar(), comp.Table, MaxIterations(3)).Parse("id + id")
	assert.False(t, result.Accepted)
	last := result.Last()
	assert.Equal(t, InternalError, last.Kind)
	assert.Equal(t, "iteration limit", last.Label)
	p := NewParser(comp.Grammar(), comp.Table, MaxIterations(0))
	assert.Equal(t, DefaultMaxIterations, p.maxIter)
}

func TestInternalErrorIsStep(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	// a parser for a grammar which does not fit the table
	b := lr.NewGrammarBuilder("Tiny")
	b.LHS("S").T("id").End()
	g, _ := b.Grammar()
	result := NewParser(g, comp.Table).Parse("id")
	assert.False(t, result.Accepted)
	assert.True(t, result.Last().Kind.IsError(), "expected error step, got %v", result.Last().Kind)
	//
	result = NewParser(nil, nil).Parse("id")
	assert.Equal(t, InternalError, result.Last().Kind)
}

func TestGotoError(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	p := NewParser(comp.Grammar(), comp.Table)
	// state 5 reduces F ➞ id on +, but state 1 has no goto on F
	result := p.ParseFrom("+ id", &Configuration{States: []int{0, 1, 5}, Symbols: []string{lr.EOF, "E", "id"}})
	assert.False(t, result.Accepted)
	last := result.Last()
	assert.Equal(t, GotoError, last.Kind)
	assert.NotEqual(t, SyntaxError, last.Kind)
	assert.True(t, last.Kind.IsError())
	assert.Equal(t, "no goto entry for state 1 and F", last.Explanation)
	assert.Equal(t, ReduceStep, result.Steps[len(result.Steps)-2].Kind)
	assert.Contains(t, last.Forest.Labels(), "F")
}

func TestResume(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	p := NewParser(comp.Grammar(), comp.Table)
	full := p.Parse("id * ( id + id )")
	resumed := 0
	for k, step := range full.Steps {
		if step.Kind != ShiftStep && step.Kind != GotoStep {
			continue
		}
		rest := p.ParseFrom(step.RemainingInput(), step.Configuration())
		expected := full.Steps[k+1:]
		if len(rest.Steps) != len(expected) {
			t.Fatalf("resuming after step %d: expected %d steps, got %d", k, len(expected), len(rest.Steps))
		}
		for j, s := range rest.Steps {
			e := expected[j]
			assert.Equal(t, e.Index, s.Index)
			assert.Equal(t, e.Kind, s.Kind)
			assert.Equal(t, e.Action, s.Action)
			assert.Equal(t, e.States, s.States)
			assert.Equal(t, e.Symbols, s.Symbols)
			assert.Equal(t, e.Input, s.Input)
			assert.Equal(t, e.Label, s.Label)
			assert.Equal(t, e.Explanation, s.Explanation)
			assert.Equal(t, e.Forest.Labels(), s.Forest.Labels())
		}
		assert.Equal(t, full.Accepted, rest.Accepted)
		resumed++
	}
	assert.Greater(t, resumed, 5)
}

func TestResumePadding(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	p := NewParser(comp.Grammar(), comp.Table)
	// state 1 is reached on E from state 0; the symbol stack lacks the bottom marker
	result := p.ParseFrom("+ id", &Configuration{States: []int{0, 1}, Symbols: []string{"E"}})
	if !result.Accepted {
		t.Fatalf("expected resumed parse to be accepted, last step = %v", result.Last().Explanation)
	}
	assert.Equal(t, []string{lr.EOF, "E", "+"}, result.Steps[0].Symbols)
	assert.Equal(t, "(E E + (T (F id)))", result.Root().String())
	// the state stack is shorter: padded with state 0
	result = p.ParseFrom("", &Configuration{States: []int{1}, Symbols: []string{lr.EOF, "E"}})
	assert.True(t, result.Accepted)
	assert.Equal(t, []int{0, 1}, result.Last().States)
}

func TestResumePaddingNoEndMarkerLeaves(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.slr")
	defer teardown()
	//
	comp := expressions(t)
	p := NewParser(comp.Grammar(), comp.Table)
	// symbols are padded with two $
	result := p.ParseFrom("+ id", &Configuration{States: []int{0, 0, 1}, Symbols: []string{"E"}})
	if !result.Accepted {
		t.Fatalf("expected resumed parse to be accepted, last step = %v", result.Last().Explanation)
	}
	assert.Equal(t, []string{lr.EOF, lr.EOF, "E", "+"}, result.Steps[0].Symbols)
	for _, step := range result.Steps {
		assert.NotContains(t, step.Forest.Labels(), lr.EOF, "step %d", step.Index)
	}
	assert.Equal(t, []string{"E", "+"}, result.Steps[0].Forest.Labels())
	assert.Equal(t, "(E E + (T (F id)))", result.Root().String())
}
