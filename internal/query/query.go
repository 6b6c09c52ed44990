// Package query is the read-side service over stored code graphs. It gates
// every operation on the repository's index status so reads never observe a
// graph that is being rebuilt.
package query

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/Ekp0/codegraph/internal/agent"
	"github.com/Ekp0/codegraph/internal/graph"
	"github.com/Ekp0/codegraph/internal/index"
)

// ErrIndexing is returned while a rebuild for the repository is in progress.
var ErrIndexing = errors.New("query: repository is being indexed")

// Record is one answered question with its full trace.
type Record struct {
	ID        string        `json:"id"`
	RepoID    string        `json:"repo_id"`
	Question  string        `json:"question"`
	Result    *agent.Result `json:"result"`
	CreatedAt time.Time     `json:"created_at"`
}

// FunctionReport describes one function together with its call
// relationships.
type FunctionReport struct {
	Node    *graph.Node  `json:"node"`
	Callers []graph.Step `json:"callers"`
	Callees []graph.Step `json:"callees"`
}

// Service answers queries against indexed repositories.
type Service struct {
	store   graph.Store
	indexer *index.Indexer
	agent   *agent.Agent
	log     *slog.Logger
}

// New creates a query service.
func New(store graph.Store, indexer *index.Indexer, ag *agent.Agent) *Service {
	return &Service{
		store:   store,
		indexer: indexer,
		agent:   ag,
		log:     slog.Default().With("component", "query"),
	}
}

// Graph returns the stored graph for the repository, or graph.ErrNotFound.
func (s *Service) Graph(ctx context.Context, repoID string) (*graph.Graph, error) {
	if s.indexer.Status(repoID) == index.StatusIndexing {
		return nil, fmt.Errorf("repo %q: %w", repoID, ErrIndexing)
	}
	return s.store.Get(ctx, repoID)
}

// Ask runs the reasoning agent over the repository's graph and returns a
// uuid-stamped record of the exchange.
func (s *Service) Ask(ctx context.Context, repoID, question string) (*Record, error) {
	g, err := s.Graph(ctx, repoID)
	if err != nil {
		return nil, err
	}

	result, err := s.agent.Run(ctx, question, g)
	if err != nil {
		return nil, err
	}

	rec := &Record{
		ID:        uuid.NewString(),
		RepoID:    repoID,
		Question:  question,
		Result:    result,
		CreatedAt: time.Now().UTC(),
	}
	s.log.Info("answered query",
		"id", rec.ID,
		"repo", repoID,
		"confidence", result.Confidence,
		"citations", len(result.Citations),
	)
	return rec, nil
}

// Search runs a substring search over the repository's nodes.
func (s *Service) Search(ctx context.Context, repoID, query string, nodeTypes []graph.NodeType, limit int) ([]graph.SearchResult, error) {
	g, err := s.Graph(ctx, repoID)
	if err != nil {
		return nil, err
	}
	return graph.NewTraversal(g).SearchNodes(query, nodeTypes, limit), nil
}

// NodeContext returns the one-hop neighborhood of a node.
func (s *Service) NodeContext(ctx context.Context, repoID, nodeID string) (*graph.NodeContext, error) {
	g, err := s.Graph(ctx, repoID)
	if err != nil {
		return nil, err
	}
	nctx := graph.NewTraversal(g).NodeContext(nodeID, 1)
	if nctx == nil {
		return nil, fmt.Errorf("node %q: %w", nodeID, graph.ErrNotFound)
	}
	return nctx, nil
}

// ExplainFunction locates a function or method by name and reports its
// direct callers and callees.
func (s *Service) ExplainFunction(ctx context.Context, repoID, name string) (*FunctionReport, error) {
	g, err := s.Graph(ctx, repoID)
	if err != nil {
		return nil, err
	}

	node := findCallable(g, name)
	if node == nil {
		return nil, fmt.Errorf("function %q: %w", name, graph.ErrNotFound)
	}

	t := graph.NewTraversal(g)
	return &FunctionReport{
		Node:    node,
		Callers: t.FindCallers(node.ID, 1),
		Callees: t.FindCallees(node.ID, 1),
	}, nil
}

// TraceExecution resolves a function by name and returns its execution
// flow up to maxDepth steps.
func (s *Service) TraceExecution(ctx context.Context, repoID, name string, maxDepth int) ([]graph.Step, error) {
	g, err := s.Graph(ctx, repoID)
	if err != nil {
		return nil, err
	}

	node := findCallable(g, name)
	if node == nil {
		return nil, fmt.Errorf("function %q: %w", name, graph.ErrNotFound)
	}
	return graph.NewTraversal(g).TraceExecutionFlow(node.ID, maxDepth), nil
}

// List returns the ids of all indexed repositories.
func (s *Service) List(ctx context.Context) ([]string, error) {
	return s.store.List(ctx)
}

// findCallable returns the first function or method node whose name or
// qualified name equals name, in insertion order.
func findCallable(g *graph.Graph, name string) *graph.Node {
	for _, n := range g.Nodes() {
		if n.Type != graph.NodeTypeFunction && n.Type != graph.NodeTypeMethod {
			continue
		}
		if n.Name == name || n.QualifiedName == name {
			return n
		}
	}
	return nil
}
