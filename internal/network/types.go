package network

// Unset marks a time field that no propagation pass has assigned yet.
const Unset = -1

// Activity is a single unit of work in the precedence network.
type Activity struct {
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Duration     int    `json:"duration"` // 0 means milestone
	Predecessors []int  `json:"predecessors"`
	Successors   []int  `json:"successors"`

	ES, EF int `json:"-"` // earliest start/finish
	LS, LF int `json:"-"` // latest start/finish
	Slack  int `json:"-"` // LS - ES, valid after slack computation
}

// IsMilestone reports whether the activity is a zero-width event.
func (a *Activity) IsMilestone() bool {
	return a.Duration == 0
}

// Scheduled reports whether both passes assigned every time field.
func (a *Activity) Scheduled() bool {
	return a.ES != Unset && a.EF != Unset && a.LS != Unset && a.LF != Unset
}

// Record is an activity definition as supplied by an ingestion source.
// Predecessors are referenced by name and must already be defined.
type Record struct {
	Name         string   `json:"name"`
	Duration     int      `json:"duration"`
	Predecessors []string `json:"predecessors,omitempty"`
}

// Network owns every activity of a project. Activities are never removed.
type Network struct {
	activities map[int]*Activity
	byName     map[string]int
	nextID     int
}
