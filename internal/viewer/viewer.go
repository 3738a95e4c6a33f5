package viewer

import (
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/cpm"
	"github.com/pedro-fixingstuff/Grafos-PERT-CPM/internal/network"
)

// --- Graph types ---

type GraphNode struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Duration       int    `json:"duration"`
	ES             int    `json:"es"`
	EF             int    `json:"ef"`
	LS             int    `json:"ls"`
	LF             int    `json:"lf"`
	Slack          int    `json:"slack"`
	Wave           int    `json:"wave"`
	IsCritical     bool   `json:"is_critical"`
	OnCriticalPath bool   `json:"on_critical_path"`
}

type GraphEdge struct {
	From       string `json:"from"`
	To         string `json:"to"`
	IsCritical bool   `json:"is_critical"`
}

type GraphMetadata struct {
	TotalActivities int `json:"total_activities"`
	TotalWaves      int `json:"total_waves"`
	ProjectDuration int `json:"project_duration"`
}

type Graph struct {
	Nodes        []GraphNode   `json:"nodes"`
	Edges        []GraphEdge   `json:"edges"`
	CriticalPath []string      `json:"critical_path"`
	Waves        [][]string    `json:"waves"` // activity names by earliest start, critical first
	Metadata     GraphMetadata `json:"metadata"`
}

// ToGraph converts a scheduled network into the normalised Graph that the
// DOT writer and the HTTP API render. An edge is critical when it joins two
// consecutive activities of the selected critical path.
func ToGraph(n *network.Network, result *cpm.Result) *Graph {
	acts := n.Activities()
	nodes := make([]GraphNode, 0, len(acts))
	var edges []GraphEdge
	for _, a := range acts {
		nodes = append(nodes, GraphNode{
			ID:             a.ID,
			Name:           a.Name,
			Duration:       a.Duration,
			ES:             a.ES,
			EF:             a.EF,
			LS:             a.LS,
			LF:             a.LF,
			Slack:          a.Slack,
			Wave:           result.WaveOf(a.ID),
			IsCritical:     a.Slack == 0,
			OnCriticalPath: result.IsOnCriticalPath(a.ID),
		})
		for _, succ := range a.Successors {
			s, err := n.Get(succ)
			if err != nil {
				continue
			}
			edges = append(edges, GraphEdge{
				From:       a.Name,
				To:         s.Name,
				IsCritical: result.IsCriticalEdge(a.ID, succ),
			})
		}
	}

	waves := make([][]string, 0, len(result.Waves))
	for _, w := range result.Waves {
		waves = append(waves, n.Names(w.ActivityIDs))
	}

	return &Graph{
		Nodes:        nodes,
		Edges:        edges,
		CriticalPath: result.CriticalNames(n),
		Waves:        waves,
		Metadata: GraphMetadata{
			TotalActivities: len(nodes),
			TotalWaves:      len(result.Waves),
			ProjectDuration: result.ProjectDuration,
		},
	}
}

// Node returns the node with the given name.
func (g *Graph) Node(name string) (GraphNode, bool) {
	for _, node := range g.Nodes {
		if node.Name == name {
			return node, true
		}
	}
	return GraphNode{}, false
}
