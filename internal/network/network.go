package network

import (
	"fmt"
	"slices"
	"strings"
)

// New returns an empty network.
func New() *Network {
	return &Network{
		activities: make(map[int]*Activity),
		byName:     make(map[string]int),
	}
}

// CreateActivity registers a new activity behind the given predecessors and
// returns its id. Ids are assigned in creation order starting at 0. Nothing is
// registered when validation fails.
func (n *Network) CreateActivity(name string, duration int, predecessors []int) (int, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return 0, ErrEmptyName
	}
	if duration < 0 {
		return 0, fmt.Errorf("%w: %s has duration %d", ErrNegativeDuration, name, duration)
	}
	if _, ok := n.byName[name]; ok {
		return 0, fmt.Errorf("%w: %s", ErrDuplicateName, name)
	}
	for _, pred := range predecessors {
		if _, ok := n.activities[pred]; !ok {
			return 0, fmt.Errorf("%w: id %d for %s", ErrUnknownPredecessor, pred, name)
		}
	}

	a := &Activity{
		ID:       n.nextID,
		Name:     name,
		Duration: duration,
	}
	a.clearTimes()
	n.activities[a.ID] = a
	n.byName[name] = a.ID
	n.nextID++

	for _, pred := range predecessors {
		n.link(n.activities[pred], a)
	}
	return a.ID, nil
}

// Get returns the activity with the given id.
func (n *Network) Get(id int) (*Activity, error) {
	a, ok := n.activities[id]
	if !ok {
		return nil, fmt.Errorf("%w: id %d", ErrNotFound, id)
	}
	return a, nil
}

// Lookup returns the activity with the given name.
func (n *Network) Lookup(name string) (*Activity, error) {
	id, ok := n.byName[strings.TrimSpace(name)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}
	return n.activities[id], nil
}

// Link adds a precedence edge between two existing activities. Unlike
// CreateActivity it can point backwards in creation order, so it is the one
// way a cycle can enter the network; TopoOrder rejects such networks.
func (n *Network) Link(pred, succ int) error {
	from, err := n.Get(pred)
	if err != nil {
		return err
	}
	to, err := n.Get(succ)
	if err != nil {
		return err
	}
	if pred == succ {
		return fmt.Errorf("%w: %s depends on itself", ErrCyclicDependency, from.Name)
	}
	n.link(from, to)
	return nil
}

// link records the edge in both directions, ignoring duplicates.
func (n *Network) link(from, to *Activity) {
	if slices.Contains(from.Successors, to.ID) {
		return
	}
	from.Successors = append(from.Successors, to.ID)
	to.Predecessors = append(to.Predecessors, from.ID)
}

// Len returns the number of activities.
func (n *Network) Len() int {
	return len(n.activities)
}

// Activities returns every activity in id order.
func (n *Network) Activities() []*Activity {
	out := make([]*Activity, 0, len(n.activities))
	for id := 0; id < n.nextID; id++ {
		if a, ok := n.activities[id]; ok {
			out = append(out, a)
		}
	}
	return out
}

// Sources returns the ids of activities without predecessors, in id order.
func (n *Network) Sources() []int {
	var ids []int
	for _, a := range n.Activities() {
		if len(a.Predecessors) == 0 {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Sinks returns the ids of activities without successors, in id order.
func (n *Network) Sinks() []int {
	var ids []int
	for _, a := range n.Activities() {
		if len(a.Successors) == 0 {
			ids = append(ids, a.ID)
		}
	}
	return ids
}

// Names maps ids to activity names, skipping unknown ids.
func (n *Network) Names(ids []int) []string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if a, ok := n.activities[id]; ok {
			names = append(names, a.Name)
		}
	}
	return names
}

// Reset restores every time field to Unset and slack to zero.
func (n *Network) Reset() {
	for _, a := range n.activities {
		a.clearTimes()
	}
}

func (a *Activity) clearTimes() {
	a.ES, a.EF = Unset, Unset
	a.LS, a.LF = Unset, Unset
	a.Slack = 0
}

// FromRecords builds a network from ordered activity records. Predecessor
// names resolve only against records that appear earlier in the slice.
func FromRecords(records []Record) (*Network, error) {
	n := New()
	for i, rec := range records {
		preds := make([]int, 0, len(rec.Predecessors))
		for _, predName := range rec.Predecessors {
			predName = strings.TrimSpace(predName)
			if predName == "" {
				continue
			}
			id, ok := n.byName[predName]
			if !ok {
				return nil, fmt.Errorf("record %d (%s): %w: %q", i+1, rec.Name, ErrUnknownPredecessor, predName)
			}
			preds = append(preds, id)
		}
		if _, err := n.CreateActivity(rec.Name, rec.Duration, preds); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
	}
	return n, nil
}
