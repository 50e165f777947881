package bnf

import (
	"errors"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/slrsim/lr"
	"github.com/stretchr/testify/assert"
)

const expressions = `
# classic expression grammar
E -> E + T | T
T -> T * F
   | F
F -> ( E ) | id
`

func TestParseExpressions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.lr")
	defer teardown()
	//
	g, err := ParseString("Expressions", expressions)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "E", g.Start())
	assert.Equal(t, []string{"E", "T", "F"}, g.NonTerminals())
	assert.Equal(t, []string{"+", "*", "(", ")", "id"}, g.Terminals())
	assert.Equal(t, 6, g.Size())
	assert.Equal(t, "T ➞ F", g.Rule(3).String())
	comp, err := lr.Compile(g)
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, 12, comp.CFSM.Size())
	assert.False(t, comp.Table.HasConflicts())
}

func TestParseEpsilonAlternatives(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.lr")
	defer teardown()
	//
	g, err := ParseString("A", "A → a A | ε\nB ::= b | eps | ''\nC -> c |")
	if err != nil {
		t.Fatal(err)
	}
	for _, id := range []int{1, 3, 4, 6} {
		assert.True(t, g.Rule(id).IsEpsilon(), "rule %d = %v", id, g.Rule(id))
	}
	assert.Equal(t, []string{"a", "b", "c"}, g.Terminals())
}

func TestParseErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.lr")
	defer teardown()
	//
	_, err := ParseString("empty", "# nothing here\n\n")
	assert.True(t, errors.Is(err, lr.ErrEmptyGrammar))
	var synerr *SyntaxError
	_, err = ParseString("nohead", "E -> a\n a b")
	if assert.True(t, errors.As(err, &synerr)) {
		assert.Equal(t, 2, synerr.Line)
	}
	_, err = ParseString("orphan", "| a")
	assert.True(t, errors.As(err, &synerr))
	_, err = ParseString("eof", "S -> a $")
	assert.True(t, errors.As(err, &synerr))
}
