package graph

import (
	"context"
	"sort"
	"sync"
)

// Compile-time assertion: *MemStore satisfies Store.
var _ Store = (*MemStore)(nil)

// MemStore implements Store using a Go map. Thread-safe via sync.RWMutex;
// Put swaps the whole graph pointer, so concurrent readers either see the
// old graph or the new one, never a mixture.
type MemStore struct {
	mu     sync.RWMutex
	graphs map[string]*Graph
}

// NewMemStore returns an initialized MemStore ready for use.
func NewMemStore() *MemStore {
	return &MemStore{graphs: make(map[string]*Graph)}
}

// Get returns the graph for the given repository ID, or ErrNotFound.
func (m *MemStore) Get(_ context.Context, repoID string) (*Graph, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	g, ok := m.graphs[repoID]
	if !ok {
		return nil, ErrNotFound
	}
	return g, nil
}

// Put stores a graph, replacing any previous graph for the same repository.
func (m *MemStore) Put(_ context.Context, repoID string, g *Graph) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.graphs[repoID] = g
	return nil
}

// Delete removes a repository's graph.
func (m *MemStore) Delete(_ context.Context, repoID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.graphs[repoID]; !ok {
		return ErrNotFound
	}
	delete(m.graphs, repoID)
	return nil
}

// List returns the stored repository IDs, sorted for determinism.
func (m *MemStore) List(_ context.Context) ([]string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	ids := make([]string, 0, len(m.graphs))
	for id := range m.graphs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// Close is a no-op for the in-memory store.
func (m *MemStore) Close() error {
	return nil
}
