package reporter

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/cpm"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/ui"
)

// Reporter renders a computed schedule.
type Reporter struct {
	Network *network.Network
	Result  *cpm.Result
	// OneBased numbers start times from 1 for activities that consume
	// time, so a 3-unit activity starting the project reads 1..3.
	OneBased bool
}

// New creates a new Reporter.
func New(n *network.Network, result *cpm.Result, oneBased bool) *Reporter {
	return &Reporter{Network: n, Result: result, OneBased: oneBased}
}

// ActivityReport is the per-activity output of a run.
type ActivityReport struct {
	ID             int      `json:"id"`
	Name           string   `json:"name"`
	Duration       int      `json:"duration"`
	Predecessors   []string `json:"predecessors"`
	EarliestStart  int      `json:"earliest_start"`
	EarliestFinish int      `json:"earliest_finish"`
	LatestStart    int      `json:"latest_start"`
	LatestFinish   int      `json:"latest_finish"`
	Slack          int      `json:"slack"`
	Critical       bool     `json:"critical"`
	OnCriticalPath bool     `json:"on_critical_path"`
	Wave           int      `json:"wave"`
}

// Report is the machine-readable form of a run.
type Report struct {
	ProjectDuration int              `json:"project_duration"`
	Selection       string           `json:"selection"`
	CriticalPath    []string         `json:"critical_path"`
	CriticalPaths   [][]string       `json:"critical_paths"`
	Activities      []ActivityReport `json:"activities"`
}

// Activities returns one report per activity in id order.
func (r *Reporter) Activities() []ActivityReport {
	acts := r.Network.Activities()
	out := make([]ActivityReport, 0, len(acts))
	for _, a := range acts {
		out = append(out, ActivityReport{
			ID:             a.ID,
			Name:           a.Name,
			Duration:       a.Duration,
			Predecessors:   r.Network.Names(a.Predecessors),
			EarliestStart:  r.start(a, a.ES),
			EarliestFinish: a.EF,
			LatestStart:    r.start(a, a.LS),
			LatestFinish:   a.LF,
			Slack:          a.Slack,
			Critical:       a.Slack == 0,
			OnCriticalPath: r.Result.IsOnCriticalPath(a.ID),
			Wave:           r.Result.WaveOf(a.ID),
		})
	}
	return out
}

// start applies the display offset to a start time.
func (r *Reporter) start(a *network.Activity, t int) int {
	if r.OneBased && !a.IsMilestone() {
		return t + 1
	}
	return t
}

// Report builds the full machine-readable report.
func (r *Reporter) Report() Report {
	rep := Report{
		ProjectDuration: r.Result.ProjectDuration,
		Selection:       r.Result.Selection.String(),
		CriticalPath:    r.Result.CriticalNames(r.Network),
		Activities:      r.Activities(),
	}
	for _, p := range r.Result.CriticalPaths {
		rep.CriticalPaths = append(rep.CriticalPaths, r.Network.Names(p.IDs))
	}
	return rep
}

// JSON returns the indented report.
func (r *Reporter) JSON() ([]byte, error) {
	return json.MarshalIndent(r.Report(), "", "  ")
}

// PrintSummary writes the textual summary: every activity with its
// predecessors and duration, its times and slack unless it is a milestone,
// then the selected critical path.
func (r *Reporter) PrintSummary(w io.Writer) {
	ui.Header(w, "Project Schedule")
	fmt.Fprintf(w, "Activities:  %s\n", ui.Bold(r.Network.Len()))
	fmt.Fprintf(w, "Duration:    %s\n\n", ui.Bold(r.Result.ProjectDuration))

	for _, ar := range r.Activities() {
		mark := ""
		if ar.OnCriticalPath {
			mark = " " + ui.BoldYellow(ui.CriticalMark)
		}
		fmt.Fprintf(w, "Activity: %s%s\n", ui.BoldMagenta(ar.Name), mark)
		fmt.Fprintf(w, "Predecessors: %s\n", strings.Join(ar.Predecessors, " "))
		fmt.Fprintf(w, "Duration: %d\n", ar.Duration)

		// Milestones carry no times of their own.
		if ar.Duration != 0 {
			fmt.Fprintf(w, "Earliest start: %d\n", ar.EarliestStart)
			fmt.Fprintf(w, "Earliest finish: %d\n", ar.EarliestFinish)
			fmt.Fprintf(w, "Latest start: %d\n", ar.LatestStart)
			fmt.Fprintf(w, "Latest finish: %d\n", ar.LatestFinish)
			fmt.Fprintf(w, "Slack: %s\n", ui.Slack(ar.Slack))
		}
		fmt.Fprintln(w)
	}

	r.printCriticalPath(w)
}

// PrintTable writes a compact one-line-per-activity table.
func (r *Reporter) PrintTable(w io.Writer) {
	ui.Header(w, "Project Schedule")
	fmt.Fprintf(w, "%-16s %5s %5s %5s %5s %5s  %s\n", "ACTIVITY", "DUR", "ES", "EF", "LS", "LF", "SLACK")
	for _, ar := range r.Activities() {
		name := truncate(ar.Name, 16)
		fmt.Fprintf(w, "%-16s %5d %5d %5d %5d %5d  %s\n",
			name, ar.Duration, ar.EarliestStart, ar.EarliestFinish, ar.LatestStart, ar.LatestFinish, ui.Slack(ar.Slack))
	}
	fmt.Fprintln(w)
	r.printCriticalPath(w)
}

// truncate shortens s to at most width runes, marking the cut with "...".
func truncate(s string, width int) string {
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	return string(runes[:width-3]) + "..."
}

func (r *Reporter) printCriticalPath(w io.Writer) {
	fmt.Fprintf(w, "Critical path: %s\n", ui.BoldYellow(ui.Arrow(r.Result.CriticalNames(r.Network))))
	if extra := len(r.Result.CriticalPaths) - 1; extra > 0 {
		kind := "critical path(s)"
		if r.Result.Selection == cpm.SelectByActivityCount {
			kind = "zero-slack route(s)"
		}
		fmt.Fprintf(w, "%s\n", ui.Dim(fmt.Sprintf("(%d other %s, selected by %s)", extra, kind, r.Result.Selection)))
	}
}
