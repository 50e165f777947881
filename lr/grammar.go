package lr

import (
	"errors"
	"fmt"
	"strings"
)

// Reserved symbols. They are never part of a grammar's terminal or
// non-terminal alphabet.
const (
	Epsilon     = "ε"      // the empty string
	EOF         = "$"      // end of input
	ErrorSymbol = "#error" // input not matching any terminal
)

// IsReserved is true for the symbols ε, $ and #error.
func IsReserved(sym string) bool {
	return sym == Epsilon || sym == EOF || sym == ErrorSymbol
}

// Errors returned for grammars which cannot be used for parser construction.
var (
	ErrEmptyGrammar     = errors.New("empty grammar")
	ErrMalformedGrammar = errors.New("malformed grammar")
)

// --- Productions -----------------------------------------------------------

// Production is a grammar rule LHS ➞ RHS. An empty RHS is represented as
// a single ε symbol, never as a zero-length slice.
type Production struct {
	ID  int    // serial number, contiguous from 0 within a grammar
	LHS string // non-terminal
	rhs []string
}

// NewProduction creates a rule. An empty rhs is normalized to [ε].
func NewProduction(id int, lhs string, rhs ...string) *Production {
	r := &Production{ID: id, LHS: lhs}
	if len(rhs) == 0 {
		r.rhs = []string{Epsilon}
	} else {
		r.rhs = append([]string(nil), rhs...)
	}
	return r
}

// RHS returns a copy of the right hand side symbols of a rule.
func (r *Production) RHS() []string {
	return append([]string(nil), r.rhs...)
}

// IsEpsilon is true for a rule A ➞ ε.
func (r *Production) IsEpsilon() bool {
	return len(r.rhs) == 1 && r.rhs[0] == Epsilon
}

// Len returns the number of symbols a reduction by this rule consumes from
// the parse stack, i.e. 0 for ε-rules.
func (r *Production) Len() int {
	if r.IsEpsilon() {
		return 0
	}
	return len(r.rhs)
}

func (r *Production) String() string {
	return fmt.Sprintf("%s ➞ %s", r.LHS, strings.Join(r.rhs, " "))
}

// --- Grammar ---------------------------------------------------------------

// Grammar is a context free grammar. Grammars are not changed after
// construction; augmentation creates a new grammar.
type Grammar struct {
	Name         string
	rules        []*Production
	terminals    []string
	nonterminals []string
	symbols      []string // order of first appearance
	termset      map[string]bool
	ntset        map[string]bool
	start        string
	origStart    string // start symbol before augmentation, if augmented
}

// NewGrammar creates a grammar from parts provided by an external grammar
// reader. Rule IDs have to be contiguous from 0, rules are sorted by ID.
// NewGrammar does not check terminals and non-terminals for disjointness.
func NewGrammar(name, start string, terminals, nonterminals []string,
	rules []*Production) (*Grammar, error) {
	//
	if len(rules) == 0 {
		return nil, ErrEmptyGrammar
	}
	g := &Grammar{
		Name:         name,
		start:        start,
		terminals:    append([]string(nil), terminals...),
		nonterminals: append([]string(nil), nonterminals...),
		rules:        make([]*Production, len(rules)),
	}
	for _, r := range rules {
		if r == nil || r.ID < 0 || r.ID >= len(rules) || g.rules[r.ID] != nil {
			return nil, fmt.Errorf("%w: rule IDs must be unique and contiguous from 0", ErrMalformedGrammar)
		}
		g.rules[r.ID] = NewProduction(r.ID, r.LHS, r.rhs...)
	}
	for _, sym := range append(append([]string(nil), terminals...), nonterminals...) {
		if IsReserved(sym) || sym == "" {
			return nil, fmt.Errorf("%w: %q is not a valid grammar symbol", ErrMalformedGrammar, sym)
		}
	}
	g.init()
	if !g.ntset[start] {
		return nil, fmt.Errorf("%w: start symbol %q is not a non-terminal", ErrMalformedGrammar, start)
	}
	for _, r := range g.rules {
		if !g.ntset[r.LHS] {
			return nil, fmt.Errorf("%w: LHS of rule %d (%s) is not a non-terminal",
				ErrMalformedGrammar, r.ID, r.LHS)
		}
		for _, sym := range r.rhs {
			if sym != Epsilon && !g.ntset[sym] && !g.termset[sym] {
				return nil, fmt.Errorf("%w: symbol %q in rule %d is undeclared",
					ErrMalformedGrammar, sym, r.ID)
			}
		}
		if !r.IsEpsilon() && containsSymbol(r.rhs, Epsilon) {
			return nil, fmt.Errorf("%w: ε may only appear as the sole symbol of a rule (rule %d)",
				ErrMalformedGrammar, r.ID)
		}
	}
	return g, nil
}

func (g *Grammar) init() {
	g.termset = make(map[string]bool, len(g.terminals))
	for _, t := range g.terminals {
		g.termset[t] = true
	}
	g.ntset = make(map[string]bool, len(g.nonterminals))
	for _, n := range g.nonterminals {
		g.ntset[n] = true
	}
	seen := make(map[string]bool)
	g.symbols = g.symbols[:0]
	add := func(sym string) {
		if sym != Epsilon && sym != EOF && !seen[sym] {
			seen[sym] = true
			g.symbols = append(g.symbols, sym)
		}
	}
	for _, r := range g.rules {
		add(r.LHS)
		for _, sym := range r.rhs {
			add(sym)
		}
	}
	for _, n := range g.nonterminals {
		add(n)
	}
	for _, t := range g.terminals {
		add(t)
	}
}

// Start returns the start symbol. For augmented grammars this is the
// synthetic start symbol S'.
func (g *Grammar) Start() string {
	return g.start
}

// IsAugmented is true for grammars created by Augment.
func (g *Grammar) IsAugmented() bool {
	return g.origStart != ""
}

// OriginalStart returns the start symbol before augmentation. For grammars
// which are not augmented it is the start symbol.
func (g *Grammar) OriginalStart() string {
	if g.origStart == "" {
		return g.start
	}
	return g.origStart
}

// Size returns the number of rules.
func (g *Grammar) Size() int {
	return len(g.rules)
}

// Rule returns the rule with serial number id, or nil.
func (g *Grammar) Rule(id int) *Production {
	if id < 0 || id >= len(g.rules) {
		return nil
	}
	return g.rules[id]
}

// Rules returns all rules, ordered by ID.
func (g *Grammar) Rules() []*Production {
	return append([]*Production(nil), g.rules...)
}

// Terminals returns the terminal alphabet in declaration order.
func (g *Grammar) Terminals() []string {
	return append([]string(nil), g.terminals...)
}

// NonTerminals returns the non-terminals in declaration order.
func (g *Grammar) NonTerminals() []string {
	return append([]string(nil), g.nonterminals...)
}

// Symbols returns terminals and non-terminals in order of their first
// appearance within the rules. Neither ε nor $ are part of it.
func (g *Grammar) Symbols() []string {
	return append([]string(nil), g.symbols...)
}

// IsTerminal is true for symbols of the terminal alphabet.
func (g *Grammar) IsTerminal(sym string) bool {
	return g.termset[sym]
}

// IsNonTerminal is true for non-terminal symbols.
func (g *Grammar) IsNonTerminal(sym string) bool {
	return g.ntset[sym]
}

// FindNonTermRules returns all rules with LHS N, ordered by ID.
func (g *Grammar) FindNonTermRules(N string) []*Production {
	var R []*Production
	for _, r := range g.rules {
		if r.LHS == N {
			R = append(R, r)
		}
	}
	return R
}

func (g *Grammar) hasSymbol(sym string) bool {
	return g.termset[sym] || g.ntset[sym] || sym == Epsilon || sym == EOF
}

// Dump is a debugging helper, tracing all rules of a grammar.
func (g *Grammar) Dump() {
	tracer().Debugf("--- %s --------------------------------------------", g.Name)
	for _, r := range g.rules {
		tracer().Debugf("%3d: %s", r.ID, r)
	}
	tracer().Debugf("-------------------------------------------------")
}

// --- Augmentation ----------------------------------------------------------

// Augment creates a new grammar with an additional rule 0: S' ➞ S, where S
// is the start symbol of g and S' is a fresh symbol. All other rules keep
// their order, with IDs shifted by one. g is left untouched.
func Augment(g *Grammar) (*Grammar, error) {
	if g == nil || len(g.rules) == 0 {
		return nil, ErrEmptyGrammar
	}
	start := g.start + "'"
	for g.hasSymbol(start) {
		start += "'"
	}
	ag := &Grammar{
		Name:         g.Name,
		start:        start,
		origStart:    g.start,
		terminals:    append([]string(nil), g.terminals...),
		nonterminals: append([]string{start}, g.nonterminals...),
		rules:        make([]*Production, 0, len(g.rules)+1),
	}
	ag.rules = append(ag.rules, NewProduction(0, start, g.start))
	for _, r := range g.rules {
		ag.rules = append(ag.rules, NewProduction(r.ID+1, r.LHS, r.rhs...))
	}
	ag.init()
	return ag, nil
}

// --- Grammar Builder -------------------------------------------------------

// GrammarBuilder is a builder type for grammars. The LHS of the first rule
// added becomes the start symbol.
type GrammarBuilder struct {
	name    string
	rules   []*Production
	terms   []string
	nterms  []string
	symkind map[string]rune // 'T' or 'N'
	err     error
}

// NewGrammarBuilder gets a new grammar builder, given the name of the grammar.
func NewGrammarBuilder(name string) *GrammarBuilder {
	return &GrammarBuilder{
		name:    name,
		symkind: make(map[string]rune),
	}
}

// RuleBuilder is a builder type for a single rule.
type RuleBuilder struct {
	gb  *GrammarBuilder
	lhs string
	rhs []string
}

// LHS starts a rule given the left hand side symbol (non-terminal).
func (gb *GrammarBuilder) LHS(s string) *RuleBuilder {
	gb.declare(s, 'N')
	return &RuleBuilder{gb: gb, lhs: s}
}

// N appends a non-terminal to the builder.
func (rb *RuleBuilder) N(s string) *RuleBuilder {
	rb.gb.declare(s, 'N')
	rb.rhs = append(rb.rhs, s)
	return rb
}

// T appends a terminal to the builder.
func (rb *RuleBuilder) T(s string) *RuleBuilder {
	rb.gb.declare(s, 'T')
	rb.rhs = append(rb.rhs, s)
	return rb
}

// End a grammar rule.
func (rb *RuleBuilder) End() *Production {
	r := NewProduction(len(rb.gb.rules), rb.lhs, rb.rhs...)
	rb.gb.rules = append(rb.gb.rules, r)
	return r
}

// Epsilon sets ε as the RHS of a rule.
func (rb *RuleBuilder) Epsilon() *Production {
	if len(rb.rhs) > 0 && rb.gb.err == nil {
		rb.gb.err = fmt.Errorf("%w: rule for %s mixes ε with other symbols", ErrMalformedGrammar, rb.lhs)
	}
	rb.rhs = nil
	return rb.End()
}

func (gb *GrammarBuilder) declare(s string, kind rune) {
	if gb.err != nil {
		return
	}
	if IsReserved(s) || s == "" {
		gb.err = fmt.Errorf("%w: %q is not a valid grammar symbol", ErrMalformedGrammar, s)
		return
	}
	if k, ok := gb.symkind[s]; ok {
		if k != kind {
			gb.err = fmt.Errorf("%w: symbol %q used as terminal and as non-terminal", ErrMalformedGrammar, s)
		}
		return
	}
	gb.symkind[s] = kind
	if kind == 'T' {
		gb.terms = append(gb.terms, s)
	} else {
		gb.nterms = append(gb.nterms, s)
	}
}

// Grammar returns the grammar built so far.
func (gb *GrammarBuilder) Grammar() (*Grammar, error) {
	if gb.err != nil {
		return nil, gb.err
	}
	if len(gb.rules) == 0 {
		return nil, ErrEmptyGrammar
	}
	return NewGrammar(gb.name, gb.rules[0].LHS, gb.terms, gb.nterms, gb.rules)
}

func containsSymbol(syms []string, sym string) bool {
	for _, s := range syms {
		if s == sym {
			return true
		}
	}
	return false
}
