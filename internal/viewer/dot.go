package viewer

import (
	"fmt"
	"io"
	"strings"
)

// WriteDOT renders g as a Graphviz digraph. Nodes are ranked by wave;
// critical edges are drawn red. Milestones show only their name and
// duration.
func WriteDOT(w io.Writer, g *Graph) error {
	var b strings.Builder
	b.WriteString("digraph cpm {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=box, style=rounded];\n\n")

	for _, node := range g.Nodes {
		attrs := fmt.Sprintf("label=%q", nodeLabel(node))
		if node.OnCriticalPath {
			attrs += `, style="rounded,bold", color=red`
		}
		fmt.Fprintf(&b, "  %q [%s];\n", node.Name, attrs)
	}

	b.WriteString("\n")
	for _, e := range g.Edges {
		style := ""
		if e.IsCritical {
			style = " [color=red, penwidth=2]"
		}
		fmt.Fprintf(&b, "  %q -> %q%s;\n", e.From, e.To, style)
	}

	// Activities of the same wave share a rank.
	if len(g.Waves) > 0 {
		b.WriteString("\n")
	}
	for _, wave := range g.Waves {
		if len(wave) < 2 {
			continue
		}
		quoted := make([]string, len(wave))
		for i, name := range wave {
			quoted[i] = fmt.Sprintf("%q", name)
		}
		fmt.Fprintf(&b, "  { rank=same; %s; }\n", strings.Join(quoted, "; "))
	}

	b.WriteString("}\n")
	_, err := io.WriteString(w, b.String())
	return err
}

func nodeLabel(node GraphNode) string {
	if node.Duration == 0 {
		return fmt.Sprintf("%s  %d", node.Name, node.Duration)
	}
	return fmt.Sprintf("%s  %d\nES: %d  EF: %d\nLS: %d  LF: %d\nF = %d",
		node.Name, node.Duration, node.ES, node.EF, node.LS, node.LF, node.Slack)
}
