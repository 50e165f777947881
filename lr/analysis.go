package lr

import (
	"github.com/emirpasic/gods/sets/treeset"
)

// === Grammar Analysis ======================================================

// FirstFollow holds the FIRST and FOLLOW sets of all symbols of a grammar.
// It is computed once and never changed afterwards.
type FirstFollow struct {
	g      *Grammar
	first  map[string]*treeset.Set
	follow map[string]*treeset.Set
}

// ComputeFirstFollow computes FIRST and FOLLOW sets for an (augmented) grammar
// by fixed-point iteration.
//
// FIRST sets of terminals (and of the reserved symbols ε and $) contain the
// symbol itself. FOLLOW of the start symbol contains $. If g is augmented, the
// original start symbol is seeded with $ as well.
func ComputeFirstFollow(g *Grammar) *FirstFollow {
	ff := &FirstFollow{
		g:      g,
		first:  make(map[string]*treeset.Set),
		follow: make(map[string]*treeset.Set),
	}
	ff.computeFirst()
	ff.computeFollow()
	return ff
}

func newSymbolSet() *treeset.Set {
	return treeset.NewWithStringComparator()
}

func (ff *FirstFollow) computeFirst() {
	for _, t := range ff.g.terminals {
		ff.first[t] = newSymbolSet()
		ff.first[t].Add(t)
	}
	for _, sym := range []string{Epsilon, EOF} {
		ff.first[sym] = newSymbolSet()
		ff.first[sym].Add(sym)
	}
	for _, n := range ff.g.nonterminals {
		ff.first[n] = newSymbolSet()
	}
	changed := true
	for changed {
		changed = false
		for _, r := range ff.g.rules {
			F := ff.first[r.LHS]
			size := F.Size()
			if r.IsEpsilon() {
				F.Add(Epsilon)
			} else {
				for _, x := range ff.firstOfSequence(r.rhs).Values() {
					F.Add(x)
				}
			}
			if F.Size() != size {
				changed = true
			}
		}
	}
	tracer().Debugf("FIRST sets of %s computed", ff.g.Name)
}

// firstSet returns FIRST(sym). Symbols unknown to the grammar are treated
// like terminals.
func (ff *FirstFollow) firstSet(sym string) *treeset.Set {
	if F, ok := ff.first[sym]; ok {
		return F
	}
	F := newSymbolSet()
	F.Add(sym)
	return F
}

// firstOfSequence computes FIRST(X1 … Xn). The empty sequence derives ε.
func (ff *FirstFollow) firstOfSequence(beta []string) *treeset.Set {
	result := newSymbolSet()
	for _, X := range beta {
		if X == Epsilon {
			continue
		}
		FX := ff.firstSet(X)
		for _, x := range FX.Values() {
			if x.(string) != Epsilon {
				result.Add(x)
			}
		}
		if !FX.Contains(Epsilon) {
			return result
		}
	}
	result.Add(Epsilon)
	return result
}

func (ff *FirstFollow) computeFollow() {
	for _, n := range ff.g.nonterminals {
		ff.follow[n] = newSymbolSet()
	}
	ff.followSet(ff.g.Start()).Add(EOF)
	if ff.g.IsAugmented() {
		ff.followSet(ff.g.OriginalStart()).Add(EOF)
	}
	changed := true
	for changed {
		changed = false
		for _, r := range ff.g.rules {
			if r.IsEpsilon() {
				continue
			}
			for i, B := range r.rhs {
				if !ff.g.IsNonTerminal(B) {
					continue
				}
				FB := ff.followSet(B)
				size := FB.Size()
				beta := ff.firstOfSequence(r.rhs[i+1:])
				for _, x := range beta.Values() {
					if x.(string) != Epsilon {
						FB.Add(x)
					}
				}
				if beta.Contains(Epsilon) {
					for _, x := range ff.followSet(r.LHS).Values() {
						FB.Add(x)
					}
				}
				if FB.Size() != size {
					changed = true
				}
			}
		}
	}
	tracer().Debugf("FOLLOW sets of %s computed", ff.g.Name)
}

func (ff *FirstFollow) followSet(N string) *treeset.Set {
	F, ok := ff.follow[N]
	if !ok {
		F = newSymbolSet()
		ff.follow[N] = F
	}
	return F
}

// First returns FIRST(sym), sorted.
func (ff *FirstFollow) First(sym string) []string {
	return symbolSlice(ff.firstSet(sym))
}

// Follow returns FOLLOW(N), sorted. For terminals the result is empty.
func (ff *FirstFollow) Follow(N string) []string {
	if F, ok := ff.follow[N]; ok {
		return symbolSlice(F)
	}
	return []string{}
}

// FirstOfSequence returns FIRST(β) for a sequence of symbols, sorted.
func (ff *FirstFollow) FirstOfSequence(beta []string) []string {
	return symbolSlice(ff.firstOfSequence(beta))
}

// Nullable is true if sym derives ε.
func (ff *FirstFollow) Nullable(sym string) bool {
	return ff.firstSet(sym).Contains(Epsilon)
}

// Equals is true if two analyses carry identical FIRST and FOLLOW sets.
func (ff *FirstFollow) Equals(other *FirstFollow) bool {
	return equalSetMaps(ff.first, other.first) && equalSetMaps(ff.follow, other.follow)
}

func equalSetMaps(m1, m2 map[string]*treeset.Set) bool {
	if len(m1) != len(m2) {
		return false
	}
	for k, s1 := range m1 {
		s2, ok := m2[k]
		if !ok || s1.Size() != s2.Size() || !s2.Contains(s1.Values()...) {
			return false
		}
	}
	return true
}

func symbolSlice(S *treeset.Set) []string {
	syms := make([]string, 0, S.Size())
	it := S.Iterator()
	for it.Next() {
		syms = append(syms, it.Value().(string))
	}
	return syms
}

// --- LR Analysis -----------------------------------------------------------

// LRAnalysis is an object for grammar analysis (computing FIRST- and
// FOLLOW-sets) of an augmented grammar. It is the input for LR table
// generation.
type LRAnalysis struct {
	g    *Grammar
	sets *FirstFollow
}

// Analysis creates an analyser for a grammar. If g is not yet augmented, it
// will be augmented first; g itself is not modified.
func Analysis(g *Grammar) (*LRAnalysis, error) {
	if g == nil || len(g.rules) == 0 {
		return nil, ErrEmptyGrammar
	}
	ag := g
	if !g.IsAugmented() {
		var err error
		if ag, err = Augment(g); err != nil {
			return nil, err
		}
	}
	ga := &LRAnalysis{
		g:    ag,
		sets: ComputeFirstFollow(ag),
	}
	return ga, nil
}

// Grammar returns the augmented grammar the analysis is based on.
func (ga *LRAnalysis) Grammar() *Grammar {
	return ga.g
}

// Sets returns the FIRST and FOLLOW sets of the augmented grammar.
func (ga *LRAnalysis) Sets() *FirstFollow {
	return ga.sets
}

// First returns the FIRST set of a symbol.
func (ga *LRAnalysis) First(sym string) []string {
	return ga.sets.First(sym)
}

// Follow returns the FOLLOW set of a non-terminal.
func (ga *LRAnalysis) Follow(N string) []string {
	return ga.sets.Follow(N)
}
