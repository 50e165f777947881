package iteratable

import "sort"

// Set is a set of comparable values. Elements are kept in insertion order,
// and an iteration started with IterateOnce will visit elements which are
// added while iterating. This makes it possible to write closure-style
// algorithms as a single loop:
//
//     S.IterateOnce()
//     for S.Next() {
//         x := S.Item()
//         S.Add(somethingDerivedFrom(x))   // will be visited by this loop, too
//     }
//
// Elements are compared by value (==), so they must be valid map keys.
type Set struct {
	items  []interface{}
	index  map[interface{}]int
	cursor int
}

// NewSet creates an empty set. capacity is a hint for the expected number of elements.
func NewSet(capacity int) *Set {
	if capacity < 0 {
		capacity = 0
	}
	return &Set{
		items:  make([]interface{}, 0, capacity),
		index:  make(map[interface{}]int, capacity),
		cursor: -1,
	}
}

// Add inserts values which are not already contained in S. It returns S.
func (S *Set) Add(values ...interface{}) *Set {
	for _, x := range values {
		if _, ok := S.index[x]; ok {
			continue
		}
		S.index[x] = len(S.items)
		S.items = append(S.items, x)
	}
	return S
}

// Contains is true if x is an element of S.
func (S *Set) Contains(x interface{}) bool {
	_, ok := S.index[x]
	return ok
}

// Remove deletes x from S, if present. It is legal to remove elements during
// an iteration.
func (S *Set) Remove(x interface{}) *Set {
	at, ok := S.index[x]
	if !ok {
		return S
	}
	delete(S.index, x)
	S.items = append(S.items[:at], S.items[at+1:]...)
	for i := at; i < len(S.items); i++ {
		S.index[S.items[i]] = i
	}
	if at <= S.cursor {
		S.cursor--
	}
	return S
}

// Size returns the number of elements in S.
func (S *Set) Size() int {
	return len(S.items)
}

// Empty is true for a set without elements.
func (S *Set) Empty() bool {
	return len(S.items) == 0
}

// Values returns the elements of S in insertion order. The slice is a copy.
func (S *Set) Values() []interface{} {
	v := make([]interface{}, len(S.items))
	copy(v, S.items)
	return v
}

// Sorted returns the elements of S ordered by less. The slice is a copy.
func (S *Set) Sorted(less func(a, b interface{}) bool) []interface{} {
	v := S.Values()
	sort.SliceStable(v, func(i, j int) bool { return less(v[i], v[j]) })
	return v
}

// First returns the element inserted first, or nil for an empty set.
func (S *Set) First() interface{} {
	if len(S.items) == 0 {
		return nil
	}
	return S.items[0]
}

// Copy creates a shallow copy of S. The copy is not iterating.
func (S *Set) Copy() *Set {
	C := NewSet(len(S.items))
	C.Add(S.items...)
	return C
}

// Union adds all elements of other to S (destructive). It returns S.
func (S *Set) Union(other *Set) *Set {
	if other == nil {
		return S
	}
	return S.Add(other.items...)
}

// Difference removes all elements of other from S (destructive). It returns S.
func (S *Set) Difference(other *Set) *Set {
	if other == nil {
		return S
	}
	for _, x := range other.items {
		S.Remove(x)
	}
	return S
}

// Subset removes all elements from S which do not satisfy predicate
// (destructive). It returns S.
func (S *Set) Subset(predicate func(interface{}) bool) *Set {
	for _, x := range S.Values() {
		if !predicate(x) {
			S.Remove(x)
		}
	}
	return S
}

// Equals is true if S and other contain the same elements, regardless of order.
func (S *Set) Equals(other *Set) bool {
	if S == nil || other == nil {
		return S == other
	}
	if len(S.items) != len(other.items) {
		return false
	}
	for _, x := range other.items {
		if _, ok := S.index[x]; !ok {
			return false
		}
	}
	return true
}

// Each calls f for every element of S, in insertion order.
func (S *Set) Each(f func(interface{})) {
	for _, x := range S.Values() {
		f(x)
	}
}

// --- Iteration -------------------------------------------------------------

// IterateOnce starts a new iteration over S.
func (S *Set) IterateOnce() {
	S.cursor = -1
}

// Next moves the iteration cursor forward. It returns false if there are no
// more elements to visit.
func (S *Set) Next() bool {
	if S.cursor >= len(S.items) {
		return false
	}
	S.cursor++
	return S.cursor < len(S.items)
}

// Item returns the element under the iteration cursor.
func (S *Set) Item() interface{} {
	if S.cursor < 0 || S.cursor >= len(S.items) {
		return nil
	}
	return S.items[S.cursor]
}
