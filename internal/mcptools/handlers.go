package mcptools

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Ekp0/codegraph/internal/export"
	"github.com/Ekp0/codegraph/internal/graph"
	"github.com/Ekp0/codegraph/internal/index"
	"github.com/Ekp0/codegraph/internal/query"
)

// CodeGraphService holds the indexer and query service used by MCP tool
// handlers.
type CodeGraphService struct {
	indexer *index.Indexer
	queries *query.Service
}

// NewCodeGraphService creates a CodeGraphService.
func NewCodeGraphService(indexer *index.Indexer, queries *query.Service) *CodeGraphService {
	return &CodeGraphService{indexer: indexer, queries: queries}
}

// IndexRepository walks a repository, builds its code graph, and stores it.
func (s *CodeGraphService) IndexRepository(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input IndexRepositoryInput,
) (*mcp.CallToolResult, IndexRepositoryOutput, error) {
	if input.RepoID == "" {
		return nil, IndexRepositoryOutput{}, fmt.Errorf("repoId is required")
	}
	if input.RepoPath == "" {
		return nil, IndexRepositoryOutput{}, fmt.Errorf("repoPath is required")
	}
	info, err := os.Stat(input.RepoPath)
	if err != nil {
		return nil, IndexRepositoryOutput{}, fmt.Errorf("cannot access repoPath: %w", err)
	}
	if !info.IsDir() {
		return nil, IndexRepositoryOutput{}, fmt.Errorf("repoPath is not a directory: %s", input.RepoPath)
	}

	g, err := s.indexer.Index(ctx, input.RepoID, input.RepoPath)
	if err != nil {
		return nil, IndexRepositoryOutput{}, fmt.Errorf("index repository: %w", err)
	}

	return nil, IndexRepositoryOutput{
		RepoID: input.RepoID,
		Stats:  export.BuildPayload(g).Stats,
	}, nil
}

// GetGraph returns the full stored graph for a repository.
func (s *CodeGraphService) GetGraph(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetGraphInput,
) (*mcp.CallToolResult, GetGraphOutput, error) {
	g, err := s.queries.Graph(ctx, input.RepoID)
	if err != nil {
		return nil, GetGraphOutput{}, err
	}
	return nil, GetGraphOutput{Graph: export.BuildPayload(g)}, nil
}

// SearchNodes searches a repository's nodes by substring match.
func (s *CodeGraphService) SearchNodes(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input SearchNodesInput,
) (*mcp.CallToolResult, SearchNodesOutput, error) {
	limit := input.Limit
	if limit <= 0 {
		limit = 20
	}
	var types []graph.NodeType
	if input.Type != "" {
		types = append(types, graph.NodeType(strings.ToLower(input.Type)))
	}

	results, err := s.queries.Search(ctx, input.RepoID, input.Query, types, limit)
	if err != nil {
		return nil, SearchNodesOutput{}, err
	}
	return nil, SearchNodesOutput{Results: results, Total: len(results)}, nil
}

// GetNodeContext returns the one-hop neighborhood of a node.
func (s *CodeGraphService) GetNodeContext(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetNodeContextInput,
) (*mcp.CallToolResult, GetNodeContextOutput, error) {
	if input.NodeID == "" {
		return nil, GetNodeContextOutput{}, fmt.Errorf("nodeId is required")
	}
	nctx, err := s.queries.NodeContext(ctx, input.RepoID, input.NodeID)
	if err != nil {
		return nil, GetNodeContextOutput{}, err
	}
	return nil, GetNodeContextOutput{Context: nctx}, nil
}

// TraceExecution returns the call flow from an entry function.
func (s *CodeGraphService) TraceExecution(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input TraceExecutionInput,
) (*mcp.CallToolResult, TraceExecutionOutput, error) {
	if input.Function == "" {
		return nil, TraceExecutionOutput{}, fmt.Errorf("function is required")
	}
	maxDepth := input.MaxDepth
	if maxDepth <= 0 {
		maxDepth = 20
	}

	steps, err := s.queries.TraceExecution(ctx, input.RepoID, input.Function, maxDepth)
	if err != nil {
		return nil, TraceExecutionOutput{}, err
	}
	return nil, TraceExecutionOutput{Steps: steps}, nil
}

// QueryCodebase answers a natural-language question using the reasoning
// agent.
func (s *CodeGraphService) QueryCodebase(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input QueryCodebaseInput,
) (*mcp.CallToolResult, QueryCodebaseOutput, error) {
	if input.Question == "" {
		return nil, QueryCodebaseOutput{}, fmt.Errorf("question is required")
	}
	rec, err := s.queries.Ask(ctx, input.RepoID, input.Question)
	if err != nil {
		return nil, QueryCodebaseOutput{}, err
	}
	return nil, recordOutput(rec), nil
}
