package iteratable

import (
	"testing"
)

type pair struct {
	a, b int
}

func TestSetAddIsValueKeyed(t *testing.T) {
	S := NewSet(0)
	S.Add(pair{1, 0}, pair{1, 0}, pair{2, 3})
	if S.Size() != 2 {
		t.Errorf("expected 2 elements, have %d", S.Size())
	}
	if !S.Contains(pair{2, 3}) {
		t.Errorf("expected set to contain (2,3)")
	}
}

func TestSetIterateWhileGrowing(t *testing.T) {
	S := NewSet(0)
	S.Add(1)
	S.IterateOnce()
	visited := 0
	for S.Next() {
		visited++
		if n := S.Item().(int); n < 5 {
			S.Add(n + 1)
		}
	}
	if visited != 5 || S.Size() != 5 {
		t.Errorf("expected 5 visits over 5 elements, have %d/%d", visited, S.Size())
	}
}

func TestSetRemoveDuringIteration(t *testing.T) {
	S := NewSet(0).Add(1, 2, 3, 4)
	S.IterateOnce()
	var seen []int
	for S.Next() {
		n := S.Item().(int)
		seen = append(seen, n)
		if n%2 == 0 {
			S.Remove(n)
		}
	}
	if len(seen) != 4 {
		t.Errorf("expected to visit 4 elements, visited %v", seen)
	}
	if S.Size() != 2 || S.Contains(2) || S.Contains(4) {
		t.Errorf("expected {1,3}, have %v", S.Values())
	}
}

func TestSetEqualsIgnoresOrder(t *testing.T) {
	S := NewSet(0).Add(pair{1, 1}, pair{2, 2})
	T := NewSet(0).Add(pair{2, 2}, pair{1, 1})
	if !S.Equals(T) {
		t.Errorf("sets with equal elements in different order should be equal")
	}
	T.Add(pair{3, 3})
	if S.Equals(T) {
		t.Errorf("sets of different size should not be equal")
	}
}

func TestSetDifferenceAndUnion(t *testing.T) {
	S := NewSet(0).Add(1, 2, 3)
	T := NewSet(0).Add(2, 3, 4)
	D := S.Copy().Difference(T)
	if D.Size() != 1 || !D.Contains(1) {
		t.Errorf("expected difference {1}, have %v", D.Values())
	}
	S.Union(T)
	if S.Size() != 4 {
		t.Errorf("expected union of size 4, have %v", S.Values())
	}
}

func TestSetSorted(t *testing.T) {
	S := NewSet(0).Add(3, 1, 2)
	v := S.Sorted(func(a, b interface{}) bool { return a.(int) < b.(int) })
	if v[0] != 1 || v[1] != 2 || v[2] != 3 {
		t.Errorf("expected sorted values [1 2 3], have %v", v)
	}
	if S.First() != 3 {
		t.Errorf("sorting must not change insertion order of the set")
	}
}
