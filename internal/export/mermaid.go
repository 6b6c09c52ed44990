package export

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Ekp0/codegraph/internal/graph"
)

// GenerateMermaid produces a Mermaid graph TD diagram of the graph's
// module structure. Each module becomes a subgraph listing the functions
// and classes it contains; Imports and Calls edges become arrows.
func GenerateMermaid(g *graph.Graph) string {
	nodeIDs := make(map[string]string)
	nextID := 0
	getID := func(key string) string {
		if id, ok := nodeIDs[key]; ok {
			return id
		}
		id := fmt.Sprintf("N%d", nextID)
		nextID++
		nodeIDs[key] = id
		return id
	}

	// Group member nodes under their containing module, in insertion order.
	members := make(map[string][]*graph.Node)
	for _, e := range g.Edges() {
		if e.Type != graph.EdgeTypeContains {
			continue
		}
		src := g.Node(e.Source)
		dst := g.Node(e.Target)
		if src == nil || dst == nil || src.Type != graph.NodeTypeModule {
			continue
		}
		if dst.Type == graph.NodeTypeImport || dst.Type == graph.NodeTypeVariable {
			continue
		}
		members[src.ID] = append(members[src.ID], dst)
	}

	var sb strings.Builder
	sb.WriteString("graph TD\n")

	for _, n := range g.Nodes() {
		if n.Type != graph.NodeTypeModule {
			continue
		}
		sb.WriteString(fmt.Sprintf("  subgraph %s[\"%.40s\"]\n", getID(n.ID), shortPath(n.FilePath)))
		for _, m := range members[n.ID] {
			sb.WriteString(fmt.Sprintf("    %s[\"%s\"]\n", getID(m.ID), m.Name))
		}
		sb.WriteString("  end\n")
	}

	for _, e := range g.Edges() {
		switch e.Type {
		case graph.EdgeTypeImports, graph.EdgeTypeCalls:
		default:
			continue
		}
		if _, ok := nodeIDs[e.Source]; !ok {
			continue
		}
		if _, ok := nodeIDs[e.Target]; !ok {
			continue
		}
		sb.WriteString(fmt.Sprintf("  %s --> %s\n", nodeIDs[e.Source], nodeIDs[e.Target]))
	}

	return sb.String()
}

// shortPath returns the last 2 path segments for readability.
func shortPath(path string) string {
	parts := strings.Split(filepath.ToSlash(path), "/")
	if len(parts) <= 2 {
		return path
	}
	return strings.Join(parts[len(parts)-2:], "/")
}
