package network

import (
	"errors"
	"testing"
)

func mustCreate(t *testing.T, n *Network, name string, duration int, preds ...int) int {
	t.Helper()
	id, err := n.CreateActivity(name, duration, preds)
	if err != nil {
		t.Fatalf("create %s: %v", name, err)
	}
	return id
}

func TestCreateActivity_AssignsSequentialIDs(t *testing.T) {
	n := New()
	a := mustCreate(t, n, "A", 3)
	b := mustCreate(t, n, "B", 2, a)
	c := mustCreate(t, n, "C", 4, b)

	if a != 0 || b != 1 || c != 2 {
		t.Errorf("expected ids 0,1,2, got %d,%d,%d", a, b, c)
	}
	if n.Len() != 3 {
		t.Errorf("expected 3 activities, got %d", n.Len())
	}
}

func TestCreateActivity_LinksBothDirections(t *testing.T) {
	// A -> B -> D
	// A -> C -> D
	n := New()
	a := mustCreate(t, n, "A", 0)
	b := mustCreate(t, n, "B", 2, a)
	c := mustCreate(t, n, "C", 5, a)
	d := mustCreate(t, n, "D", 1, b, c)

	actA, _ := n.Get(a)
	if len(actA.Successors) != 2 || actA.Successors[0] != b || actA.Successors[1] != c {
		t.Errorf("expected A successors [%d %d], got %v", b, c, actA.Successors)
	}

	actD, _ := n.Get(d)
	if len(actD.Predecessors) != 2 || actD.Predecessors[0] != b || actD.Predecessors[1] != c {
		t.Errorf("expected D predecessors [%d %d], got %v", b, c, actD.Predecessors)
	}

	// Every successor edge has its mirror.
	for _, act := range n.Activities() {
		for _, s := range act.Successors {
			succ, _ := n.Get(s)
			found := false
			for _, p := range succ.Predecessors {
				if p == act.ID {
					found = true
				}
			}
			if !found {
				t.Errorf("edge %s -> %s has no reverse entry", act.Name, succ.Name)
			}
		}
	}
}

func TestCreateActivity_TimesStartUnset(t *testing.T) {
	n := New()
	id := mustCreate(t, n, "A", 3)
	a, _ := n.Get(id)
	if a.ES != Unset || a.EF != Unset || a.LS != Unset || a.LF != Unset {
		t.Errorf("expected unset times, got ES=%d EF=%d LS=%d LF=%d", a.ES, a.EF, a.LS, a.LF)
	}
	if a.Scheduled() {
		t.Error("fresh activity should not report as scheduled")
	}
}

func TestCreateActivity_UnknownPredecessor(t *testing.T) {
	n := New()
	mustCreate(t, n, "A", 1)

	_, err := n.CreateActivity("B", 1, []int{0, 7})
	if !errors.Is(err, ErrUnknownPredecessor) {
		t.Fatalf("expected ErrUnknownPredecessor, got %v", err)
	}

	// The failed activity must not be half-registered.
	if n.Len() != 1 {
		t.Errorf("expected 1 activity after failed create, got %d", n.Len())
	}
	a, _ := n.Get(0)
	if len(a.Successors) != 0 {
		t.Errorf("expected A to have no successors, got %v", a.Successors)
	}
	if _, err := n.CreateActivity("B", 1, []int{0}); err != nil {
		t.Errorf("retry with valid predecessors failed: %v", err)
	}
}

func TestCreateActivity_Validation(t *testing.T) {
	n := New()
	mustCreate(t, n, "A", 1)

	if _, err := n.CreateActivity("A", 2, nil); !errors.Is(err, ErrDuplicateName) {
		t.Errorf("expected ErrDuplicateName, got %v", err)
	}
	if _, err := n.CreateActivity("  ", 2, nil); !errors.Is(err, ErrEmptyName) {
		t.Errorf("expected ErrEmptyName, got %v", err)
	}
	if _, err := n.CreateActivity("X", -1, nil); !errors.Is(err, ErrNegativeDuration) {
		t.Errorf("expected ErrNegativeDuration, got %v", err)
	}
}

func TestCreateActivity_DuplicatePredecessorLinkedOnce(t *testing.T) {
	n := New()
	a := mustCreate(t, n, "A", 1)
	b := mustCreate(t, n, "B", 1, a, a)

	actB, _ := n.Get(b)
	if len(actB.Predecessors) != 1 {
		t.Errorf("expected a single predecessor, got %v", actB.Predecessors)
	}
}

func TestGet_NotFound(t *testing.T) {
	n := New()
	if _, err := n.Get(0); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := n.Lookup("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound from Lookup, got %v", err)
	}
}

func TestSourcesAndSinks(t *testing.T) {
	n := New()
	a := mustCreate(t, n, "A", 1)
	b := mustCreate(t, n, "B", 1)
	c := mustCreate(t, n, "C", 1, a, b)
	d := mustCreate(t, n, "D", 1, c)
	e := mustCreate(t, n, "E", 1, c)

	sources := n.Sources()
	if len(sources) != 2 || sources[0] != a || sources[1] != b {
		t.Errorf("expected sources [%d %d], got %v", a, b, sources)
	}
	sinks := n.Sinks()
	if len(sinks) != 2 || sinks[0] != d || sinks[1] != e {
		t.Errorf("expected sinks [%d %d], got %v", d, e, sinks)
	}
}

func TestFromRecords(t *testing.T) {
	records := []Record{
		{Name: "Start", Duration: 0},
		{Name: "A", Duration: 3, Predecessors: []string{"Start"}},
		{Name: "B", Duration: 2, Predecessors: []string{"Start", ""}},
		{Name: "End", Duration: 0, Predecessors: []string{"A", " B "}},
	}

	n, err := FromRecords(records)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if n.Len() != 4 {
		t.Fatalf("expected 4 activities, got %d", n.Len())
	}
	end, err := n.Lookup("End")
	if err != nil {
		t.Fatalf("lookup End: %v", err)
	}
	if got := n.Names(end.Predecessors); len(got) != 2 || got[0] != "A" || got[1] != "B" {
		t.Errorf("expected End predecessors [A B], got %v", got)
	}
}

func TestFromRecords_ForwardReference(t *testing.T) {
	records := []Record{
		{Name: "A", Duration: 1, Predecessors: []string{"B"}},
		{Name: "B", Duration: 1},
	}

	_, err := FromRecords(records)
	if !errors.Is(err, ErrUnknownPredecessor) {
		t.Fatalf("expected ErrUnknownPredecessor, got %v", err)
	}
	t.Logf("forward reference error (expected): %v", err)
}

func TestReset(t *testing.T) {
	n := New()
	id := mustCreate(t, n, "A", 2)
	a, _ := n.Get(id)
	a.ES, a.EF, a.LS, a.LF, a.Slack = 0, 2, 0, 2, 0

	n.Reset()
	if a.ES != Unset || a.LF != Unset {
		t.Errorf("expected times cleared, got ES=%d LF=%d", a.ES, a.LF)
	}
}
