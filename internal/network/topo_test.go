package network

import (
	"errors"
	"testing"
)

func TestTopoOrder_PredecessorsFirst(t *testing.T) {
	n := New()
	a := mustCreate(t, n, "A", 1)
	b := mustCreate(t, n, "B", 1, a)
	c := mustCreate(t, n, "C", 1, a)
	d := mustCreate(t, n, "D", 1, b, c)
	e := mustCreate(t, n, "E", 1)
	mustCreate(t, n, "F", 1, d, e)

	order, err := n.TopoOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(order) != n.Len() {
		t.Fatalf("expected %d ids in order, got %v", n.Len(), order)
	}

	pos := make(map[int]int)
	for i, id := range order {
		pos[id] = i
	}
	for _, act := range n.Activities() {
		for _, s := range act.Successors {
			if pos[act.ID] >= pos[s] {
				t.Errorf("%d must precede %d in %v", act.ID, s, order)
			}
		}
	}
}

func TestTopoOrder_Deterministic(t *testing.T) {
	n := New()
	a := mustCreate(t, n, "A", 1)
	mustCreate(t, n, "B", 1, a)
	mustCreate(t, n, "C", 1, a)
	mustCreate(t, n, "D", 1, a)

	first, err := n.TopoOrder()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []int{0, 1, 2, 3}
	for i := range want {
		if first[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, first)
		}
	}
	for i := 0; i < 5; i++ {
		again, _ := n.TopoOrder()
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: order changed from %v to %v", i, first, again)
			}
		}
	}
}

func TestTopoOrder_Cycle(t *testing.T) {
	// A -> B -> C -> A
	n := New()
	a := mustCreate(t, n, "A", 1)
	b := mustCreate(t, n, "B", 1, a)
	c := mustCreate(t, n, "C", 1, b)
	mustCreate(t, n, "D", 1)
	if err := n.Link(c, a); err != nil {
		t.Fatalf("link: %v", err)
	}

	_, err := n.TopoOrder()
	if !errors.Is(err, ErrCyclicDependency) {
		t.Fatalf("expected ErrCyclicDependency, got %v", err)
	}
	t.Logf("cycle error (expected): %v", err)
}

func TestLink_SelfLoop(t *testing.T) {
	n := New()
	a := mustCreate(t, n, "A", 1)
	if err := n.Link(a, a); !errors.Is(err, ErrCyclicDependency) {
		t.Errorf("expected ErrCyclicDependency, got %v", err)
	}
	if err := n.Link(a, 9); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDetectCycle_NoCycle(t *testing.T) {
	n := New()
	a := mustCreate(t, n, "A", 1)
	mustCreate(t, n, "B", 1, a)

	if cycle := n.DetectCycle(); cycle != nil {
		t.Errorf("expected no cycle, got %v", cycle)
	}
}

func TestDetectCycle_WithCycle(t *testing.T) {
	n := New()
	a := mustCreate(t, n, "A", 1)
	b := mustCreate(t, n, "B", 1, a)
	c := mustCreate(t, n, "C", 1, b)
	if err := n.Link(c, b); err != nil {
		t.Fatalf("link: %v", err)
	}

	cycle := n.DetectCycle()
	if cycle == nil {
		t.Fatal("expected cycle, got nil")
	}
	if len(cycle) != 3 || cycle[0] != cycle[len(cycle)-1] {
		t.Errorf("expected closed walk of length 3, got %v", cycle)
	}
	if cycle[0] != b || cycle[1] != c {
		t.Errorf("expected cycle through B and C, got %v", n.Names(cycle))
	}
}
