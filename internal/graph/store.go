package graph

import (
	"context"
	"errors"
	"io"
)

// ErrNotFound is returned by Store.Get and Store.Delete for an unknown
// repository ID, and surfaced by callers as a client-visible not-found
// condition.
var ErrNotFound = errors.New("graph: not found")

// Store holds one graph per repository ID.
// Implementations: MemStore (in-process), KuzuStore (persistent).
//
// Put fully replaces any previous graph for the same repository ID; readers
// never observe a half-built graph because builders construct the graph
// completely before calling Put. There is no finer-grained mutation.
type Store interface {
	io.Closer

	// Get returns the graph for a repository, or ErrNotFound.
	Get(ctx context.Context, repoID string) (*Graph, error)

	// Put stores a graph under its repository ID, replacing any previous one.
	Put(ctx context.Context, repoID string, g *Graph) error

	// Delete removes the graph for a repository. ErrNotFound if absent.
	Delete(ctx context.Context, repoID string) error

	// List returns the repository IDs with a stored graph, sorted.
	List(ctx context.Context) ([]string, error)
}
