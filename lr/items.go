package lr

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/npillmayer/slrsim/lr/iteratable"
)

// === Items =================================================================

// Item is an LR(0) item, i.e. a production together with a dot position
// within its body. Items are small values and compare by value.
//
//     A ➞ α • β    is   Item{Prod: id(A ➞ αβ), Dot: len(α)}
//
// For ε-productions the only meaningful dot position is 0, which is already
// a reduction item.
type Item struct {
	Prod int // production ID
	Dot  int // position of the dot, 0…len(RHS)
}

// StartItem returns the item S' ➞ • S for an augmented grammar.
func StartItem() Item {
	return Item{Prod: 0, Dot: 0}
}

// Rule returns the production of an item.
func (i Item) Rule(g *Grammar) *Production {
	return g.Rule(i.Prod)
}

// PeekSymbol returns the symbol after the dot, or "" for reduction items.
func (i Item) PeekSymbol(g *Grammar) string {
	r := g.Rule(i.Prod)
	if r == nil || r.IsEpsilon() || i.Dot >= len(r.rhs) {
		return ""
	}
	return r.rhs[i.Dot]
}

// Advance returns a new item with the dot moved one position to the right.
func (i Item) Advance() Item {
	return Item{Prod: i.Prod, Dot: i.Dot + 1}
}

// IsReduction is true if the dot is at the end of the production's body.
// Items of ε-productions are always reduction items.
func (i Item) IsReduction(g *Grammar) bool {
	return i.PeekSymbol(g) == ""
}

// Prefix returns the symbols before the dot.
func (i Item) Prefix(g *Grammar) []string {
	r := g.Rule(i.Prod)
	if r == nil || r.IsEpsilon() {
		return nil
	}
	return append([]string(nil), r.rhs[:i.Dot]...)
}

// Format returns an item in the form A ➞ α • β.
func (i Item) Format(g *Grammar) string {
	r := g.Rule(i.Prod)
	if r == nil {
		return fmt.Sprintf("[%d•%d]", i.Prod, i.Dot)
	}
	var body []string
	if !r.IsEpsilon() {
		body = r.rhs
	}
	var b strings.Builder
	b.WriteString(r.LHS)
	b.WriteString(" ➞")
	for k, sym := range body {
		if k == i.Dot {
			b.WriteString(" •")
		}
		b.WriteString(" ")
		b.WriteString(sym)
	}
	if i.Dot >= len(body) {
		b.WriteString(" •")
	}
	return b.String()
}

func (i Item) String() string {
	return fmt.Sprintf("[%d•%d]", i.Prod, i.Dot)
}

func asItem(x interface{}) Item {
	return x.(Item)
}

// itemLess orders items by production, then by dot position.
func itemLess(a, b interface{}) bool {
	i1, i2 := asItem(a), asItem(b)
	if i1.Prod != i2.Prod {
		return i1.Prod < i2.Prod
	}
	return i1.Dot < i2.Dot
}

func newItemSet() *iteratable.Set {
	return iteratable.NewSet(8)
}

// SortedItems returns the items of S sorted by production and dot.
func SortedItems(S *iteratable.Set) []Item {
	vals := S.Sorted(itemLess)
	items := make([]Item, len(vals))
	for k, x := range vals {
		items[k] = asItem(x)
	}
	return items
}

// === Closure and Goto-Set Operations =======================================

// Refer to "Crafting A Compiler" by Charles N. Fisher & Richard J. LeBlanc, Jr.
// Section 6.2.1 LR(0) Parsing

// startItems returns the items N ➞ • α for all rules of N.
func (ga *LRAnalysis) startItems(N string) *iteratable.Set {
	S := newItemSet()
	for _, r := range ga.g.FindNonTermRules(N) {
		S.Add(Item{Prod: r.ID, Dot: 0})
	}
	return S
}

// Closure computes the LR(0) closure of an item set. S is not modified.
func (ga *LRAnalysis) Closure(S *iteratable.Set) *iteratable.Set {
	C := S.Copy()
	C.IterateOnce()
	for C.Next() {
		A := asItem(C.Item()).PeekSymbol(ga.g)
		if A != "" && ga.g.IsNonTerminal(A) {
			R := ga.startItems(A)
			if New := R.Difference(C); !New.Empty() {
				C.Union(New)
			}
		}
	}
	return C
}

// Goto computes closure({ A ➞ α X • β | A ➞ α • X β ∈ S }). If no item of S
// expects X, the result is empty.
func (ga *LRAnalysis) Goto(S *iteratable.Set, X string) *iteratable.Set {
	gotoset := newItemSet()
	for _, x := range S.Values() {
		i := asItem(x)
		if i.PeekSymbol(ga.g) == X {
			gotoset.Add(i.Advance())
		}
	}
	if gotoset.Empty() {
		return gotoset
	}
	C := ga.Closure(gotoset)
	tracer().Debugf("goto(%s) --%s--> %s", ItemSetString(ga.g, S), X, ItemSetString(ga.g, C))
	return C
}

// ItemSetString formats an item set, items sorted.
func ItemSetString(g *Grammar, S *iteratable.Set) string {
	var b bytes.Buffer
	b.WriteString("{")
	for k, item := range SortedItems(S) {
		if k == 0 {
			b.WriteString(" ")
		} else {
			b.WriteString(", ")
		}
		b.WriteString(item.Format(g))
	}
	b.WriteString(" }")
	return b.String()
}
