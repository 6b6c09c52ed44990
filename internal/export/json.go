// Package export renders a code graph as JSON or a Mermaid diagram.
package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Ekp0/codegraph/internal/graph"
)

// Stats summarizes a graph by node category.
type Stats struct {
	NodeCount     int `json:"node_count"`
	EdgeCount     int `json:"edge_count"`
	ModuleCount   int `json:"module_count"`
	FunctionCount int `json:"function_count"`
	ClassCount    int `json:"class_count"`
}

// Payload is the JSON export shape for one graph.
type Payload struct {
	RepoID string        `json:"repo_id"`
	Nodes  []*graph.Node `json:"nodes"`
	Edges  []*graph.Edge `json:"edges"`
	Stats  Stats         `json:"stats"`
}

// BuildPayload assembles the export payload in graph insertion order.
func BuildPayload(g *graph.Graph) *Payload {
	stats := Stats{
		NodeCount: g.NodeCount(),
		EdgeCount: g.EdgeCount(),
	}
	for _, n := range g.Nodes() {
		switch n.Type {
		case graph.NodeTypeModule:
			stats.ModuleCount++
		case graph.NodeTypeFunction, graph.NodeTypeMethod:
			stats.FunctionCount++
		case graph.NodeTypeClass:
			stats.ClassCount++
		}
	}
	return &Payload{
		RepoID: g.RepoID(),
		Nodes:  g.Nodes(),
		Edges:  g.Edges(),
		Stats:  stats,
	}
}

// WriteJSON writes the graph as indented JSON.
func WriteJSON(w io.Writer, g *graph.Graph) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildPayload(g)); err != nil {
		return fmt.Errorf("export json: %w", err)
	}
	return nil
}
