package lr

import (
	"fmt"
	"sync"

	"github.com/cnf/structhash"
)

// Compilation bundles everything derived from a grammar: the analysis of the
// augmented grammar, its CFSM and the SLR(1) tables.
type Compilation struct {
	Analysis *LRAnalysis
	CFSM     *CFSM
	Table    *Table
}

// Grammar returns the augmented grammar of a compilation.
func (c *Compilation) Grammar() *Grammar {
	return c.Analysis.Grammar()
}

// Compile analyses a grammar and constructs its CFSM and parse tables.
// Conflicts are not an error; clients have to check Table.HasConflicts.
func Compile(g *Grammar) (*Compilation, error) {
	ga, err := Analysis(g)
	if err != nil {
		return nil, err
	}
	lrgen := NewTableGenerator(ga)
	lrgen.CreateTables()
	return &Compilation{
		Analysis: ga,
		CFSM:     lrgen.CFSM(),
		Table:    lrgen.Table(),
	}, nil
}

// grammarSignature is the hashable view of a grammar. structhash only
// considers exported fields.
type grammarSignature struct {
	Start        string
	Terminals    []string
	NonTerminals []string
	Rules        []ruleSignature
}

type ruleSignature struct {
	LHS string
	RHS []string
}

// Fingerprint computes a hash for a grammar which identifies it by content.
// The name of a grammar is not part of the fingerprint.
func Fingerprint(g *Grammar) (string, error) {
	if g == nil {
		return "", ErrEmptyGrammar
	}
	sig := grammarSignature{
		Start:        g.start,
		Terminals:    g.terminals,
		NonTerminals: g.nonterminals,
		Rules:        make([]ruleSignature, len(g.rules)),
	}
	for k, r := range g.rules {
		sig.Rules[k] = ruleSignature{LHS: r.LHS, RHS: r.rhs}
	}
	h, err := structhash.Hash(sig, 1)
	if err != nil {
		return "", fmt.Errorf("cannot fingerprint grammar %s: %w", g.Name, err)
	}
	return h, nil
}

// Cache memoizes compilations of grammars, keyed by their fingerprint.
// It is safe for concurrent use.
type Cache struct {
	mx           sync.Mutex
	compilations map[string]*Compilation
}

// NewCache creates an empty compilation cache.
func NewCache() *Cache {
	return &Cache{compilations: make(map[string]*Compilation)}
}

// Compile returns the compilation for g, compiling it only if no grammar
// with the same fingerprint has been compiled before.
func (c *Cache) Compile(g *Grammar) (*Compilation, error) {
	fp, err := Fingerprint(g)
	if err != nil {
		return nil, err
	}
	c.mx.Lock()
	defer c.mx.Unlock()
	if comp, ok := c.compilations[fp]; ok {
		tracer().Debugf("compilation cache hit for %s", g.Name)
		return comp, nil
	}
	comp, err := Compile(g)
	if err != nil {
		return nil, err
	}
	c.compilations[fp] = comp
	return comp, nil
}

// Get returns a cached compilation by fingerprint.
func (c *Cache) Get(fingerprint string) (*Compilation, bool) {
	c.mx.Lock()
	defer c.mx.Unlock()
	comp, ok := c.compilations[fingerprint]
	return comp, ok
}

// Size returns the number of cached compilations.
func (c *Cache) Size() int {
	c.mx.Lock()
	defer c.mx.Unlock()
	return len(c.compilations)
}
