package mcptools

import (
	"github.com/Ekp0/codegraph/internal/agent"
	"github.com/Ekp0/codegraph/internal/export"
	"github.com/Ekp0/codegraph/internal/graph"
	"github.com/Ekp0/codegraph/internal/query"
)

// --- MCP Tool Input Types ---
// These structs define the JSON schema for each MCP tool's input.
// The MCP Go SDK auto-generates JSON schemas from struct tags.

// IndexRepositoryInput is the input for the index_repository MCP tool.
type IndexRepositoryInput struct {
	RepoID   string `json:"repoId" jsonschema:"identifier to store the graph under"`
	RepoPath string `json:"repoPath" jsonschema:"the absolute path to the repository to index"`
}

// IndexRepositoryOutput is the result of the index_repository MCP tool.
type IndexRepositoryOutput struct {
	RepoID string       `json:"repoId"`
	Stats  export.Stats `json:"stats"`
}

// GetGraphInput is the input for the get_graph MCP tool.
type GetGraphInput struct {
	RepoID string `json:"repoId" jsonschema:"identifier of an indexed repository"`
}

// GetGraphOutput is the result of the get_graph MCP tool.
type GetGraphOutput struct {
	Graph *export.Payload `json:"graph"`
}

// SearchNodesInput is the input for the search_nodes MCP tool.
type SearchNodesInput struct {
	RepoID string `json:"repoId" jsonschema:"identifier of an indexed repository"`
	Query  string `json:"query" jsonschema:"substring matched against node names, qualified names, signatures, and docstrings"`
	Type   string `json:"type,omitempty" jsonschema:"filter by node type: module, class, function, method, variable, import"`
	Limit  int    `json:"limit,omitempty" jsonschema:"maximum number of results (default: 20)"`
}

// SearchNodesOutput is the result of the search_nodes MCP tool.
type SearchNodesOutput struct {
	Results []graph.SearchResult `json:"results"`
	Total   int                  `json:"total"`
}

// GetNodeContextInput is the input for the get_node_context MCP tool.
type GetNodeContextInput struct {
	RepoID string `json:"repoId" jsonschema:"identifier of an indexed repository"`
	NodeID string `json:"nodeId" jsonschema:"id of the node to inspect"`
}

// GetNodeContextOutput is the result of the get_node_context MCP tool.
type GetNodeContextOutput struct {
	Context *graph.NodeContext `json:"context"`
}

// TraceExecutionInput is the input for the trace_execution MCP tool.
type TraceExecutionInput struct {
	RepoID   string `json:"repoId" jsonschema:"identifier of an indexed repository"`
	Function string `json:"function" jsonschema:"name or qualified name of the entry function"`
	MaxDepth int    `json:"maxDepth,omitempty" jsonschema:"maximum number of trace steps (default: 20)"`
}

// TraceExecutionOutput is the result of the trace_execution MCP tool.
type TraceExecutionOutput struct {
	Steps []graph.Step `json:"steps"`
}

// QueryCodebaseInput is the input for the query_codebase MCP tool.
type QueryCodebaseInput struct {
	RepoID   string `json:"repoId" jsonschema:"identifier of an indexed repository"`
	Question string `json:"question" jsonschema:"natural-language question about the codebase"`
}

// QueryCodebaseOutput is the result of the query_codebase MCP tool.
type QueryCodebaseOutput struct {
	Answer         string                `json:"answer"`
	Citations      []agent.Citation      `json:"citations"`
	ReasoningSteps []agent.ReasoningStep `json:"reasoning_steps"`
	Confidence     float64               `json:"confidence"`
}

// recordOutput converts a query record into the tool output shape.
func recordOutput(rec *query.Record) QueryCodebaseOutput {
	return QueryCodebaseOutput{
		Answer:         rec.Result.Answer,
		Citations:      rec.Result.Citations,
		ReasoningSteps: rec.Result.ReasoningSteps,
		Confidence:     rec.Result.Confidence,
	}
}
