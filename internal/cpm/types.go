package cpm

import (
	"fmt"
	"strings"
)

// Result holds the aggregate output of a scheduling run. Per-activity times
// and slack are written onto the network's activities.
type Result struct {
	ProjectDuration int      // anchor time of the backward pass
	Order           []int    // topological order used by both passes
	Roots           []int    // activities the forward pass started from
	Terminals       []int    // activities the backward pass was anchored at
	CriticalPath    Path     // the selected critical path
	CriticalPaths   []Path   // candidate paths the selection chose from
	Waves           []Wave   // activities grouped by earliest start
	Selection       Selection
}

// Path is a chain of activity ids from a root to a sink.
type Path struct {
	IDs      []int `json:"ids"`
	Duration int   `json:"duration"` // sum of activity durations along the path
}

// Len returns the number of activities on the path.
func (p Path) Len() int {
	return len(p.IDs)
}

// Contains reports whether id lies on the path.
func (p Path) Contains(id int) bool {
	for _, x := range p.IDs {
		if x == id {
			return true
		}
	}
	return false
}

// Wave groups activities sharing the same earliest start.
type Wave struct {
	Index       int
	Start       int
	ActivityIDs []int
	IsCritical  bool // true if the wave holds a zero-slack activity
}

// Options tunes a scheduling run.
type Options struct {
	// Roots are the activities the forward pass starts from. Every root must
	// have no predecessors. Empty means the first source in creation order.
	Roots []int
	// Terminals anchor the backward pass. Every terminal must have no
	// successors. Empty means every sink. The anchor time is the largest
	// earliest finish among the terminals.
	Terminals []int
	Selection Selection
}

// Selection decides which critical path is reported when several exist.
type Selection int

const (
	// SelectByDuration chooses among the critical paths, whose durations all
	// equal the project duration: the most activities, then the smallest id
	// sequence.
	SelectByDuration Selection = iota
	// SelectByActivityCount chooses among every zero-slack route, including
	// routes that take a shortcut edge past a longer chain: the most
	// activities, then the greatest total duration, then the smallest id
	// sequence.
	SelectByActivityCount
)

func (s Selection) String() string {
	switch s {
	case SelectByDuration:
		return "duration"
	case SelectByActivityCount:
		return "count"
	default:
		return fmt.Sprintf("selection(%d)", int(s))
	}
}

// ParseSelection maps "duration" or "count" to a Selection.
func ParseSelection(s string) (Selection, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "duration":
		return SelectByDuration, nil
	case "count", "activities":
		return SelectByActivityCount, nil
	default:
		return 0, fmt.Errorf("unknown critical path selection %q (use duration or count)", s)
	}
}
