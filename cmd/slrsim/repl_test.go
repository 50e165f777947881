package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/slrsim/lr/slr"
	"github.com/stretchr/testify/assert"
)

const exprGrammar = `# expressions
E -> E + T | T
T -> T * F | F
F -> ( E ) | id
`

func writeGrammar(t *testing.T, text string) string {
	path := filepath.Join(t.TempDir(), "expr.bnf")
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadGrammar(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.cli")
	defer teardown()
	//
	g, err := loadGrammar(writeGrammar(t, exprGrammar))
	if err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, "expr", g.Name)
	assert.Equal(t, 6, g.Size())
	_, err = loadGrammar(filepath.Join(t.TempDir(), "missing.bnf"))
	assert.Error(t, err)
}

func TestREPLStepping(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.cli")
	defer teardown()
	//
	intp := &Intp{}
	_, err := intp.Eval("next")
	assert.Equal(t, errNoGrammar, err)
	_, err = intp.Eval("load " + writeGrammar(t, exprGrammar))
	if err != nil {
		t.Fatal(err)
	}
	_, err = intp.Eval("next")
	assert.Equal(t, errNoParse, err)
	_, err = intp.Eval("parse id + id")
	assert.NoError(t, err)
	assert.True(t, intp.result.Accepted)
	assert.Equal(t, 0, intp.cursor)
	_, err = intp.Eval("next")
	assert.NoError(t, err)
	assert.Equal(t, 1, intp.cursor)
	_, err = intp.Eval("prev")
	assert.NoError(t, err)
	_, err = intp.Eval("prev")
	assert.Error(t, err)
	assert.Equal(t, 0, intp.cursor)
	_, err = intp.Eval("last")
	assert.NoError(t, err)
	assert.Equal(t, slr.AcceptStep, intp.current().Kind)
	_, err = intp.Eval("step 2")
	assert.NoError(t, err)
	assert.Equal(t, 1, intp.cursor)
	_, err = intp.Eval("step x")
	assert.Error(t, err)
	_, err = intp.Eval("frobnicate")
	assert.Error(t, err)
	quit, err := intp.Eval("quit")
	assert.NoError(t, err)
	assert.True(t, quit)
}

func TestREPLResume(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "slrsim.cli")
	defer teardown()
	//
	intp := &Intp{}
	if _, err := intp.Eval("load " + writeGrammar(t, exprGrammar)); err != nil {
		t.Fatal(err)
	}
	if _, err := intp.Eval("parse id + x"); err != nil {
		t.Fatal(err)
	}
	assert.False(t, intp.result.Accepted)
	// step 1 shifts the first id; continue with different input
	_, err := intp.Eval("resume * id")
	assert.NoError(t, err)
	assert.True(t, intp.result.Accepted)
	assert.Equal(t, 1, intp.cursor)
	for k, step := range intp.result.Steps {
		assert.Equal(t, k, step.Index)
	}
	_, err = intp.Eval("last")
	assert.NoError(t, err)
	_, err = intp.Eval("resume id")
	assert.Error(t, err)
}
