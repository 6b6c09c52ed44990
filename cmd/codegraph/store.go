package main

import (
	"path/filepath"

	"github.com/Ekp0/codegraph/internal/config"
	"github.com/Ekp0/codegraph/internal/graph"
)

// openStore selects the graph store: a file-backed KuzuDB when a store path
// is configured, otherwise in-memory.
func openStore(cfg *config.ProjectConfig) (graph.Store, error) {
	if cfg.StorePath == "" {
		return graph.NewMemStore(), nil
	}
	return graph.NewKuzuFileStore(filepath.Clean(cfg.StorePath))
}
