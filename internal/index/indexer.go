// Package index turns a repository on disk into a stored code graph.
package index

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/Ekp0/codegraph/internal/graph"
)

// Status tracks the lifecycle of one repository's index. Queries are only
// admitted while the status is ready, so a rebuild can never race a reader
// of the same repository.
type Status string

const (
	StatusPending  Status = "pending"
	StatusIndexing Status = "indexing"
	StatusReady    Status = "ready"
	StatusError    Status = "error"
)

// defaultWorkers bounds concurrent file parses.
const defaultWorkers = 8

// skipDirs are directory names excluded from the repository walk.
var skipDirs = map[string]bool{
	".git":         true,
	".hg":          true,
	".venv":        true,
	"venv":         true,
	"node_modules": true,
	"vendor":       true,
	"__pycache__":  true,
	"dist":         true,
	"build":        true,
	"target":       true,
}

// Indexer parses repositories and stores the resulting graphs.
type Indexer struct {
	parser   graph.Parser
	store    graph.Store
	workers  int
	excludes map[string]bool
	log      *slog.Logger

	mu     sync.RWMutex
	status map[string]Status
}

// New creates an indexer. workers <= 0 selects the default parallelism;
// excludes are directory names skipped in addition to the built-in set.
func New(parser graph.Parser, store graph.Store, workers int, excludes []string) *Indexer {
	if workers <= 0 {
		workers = defaultWorkers
	}
	ex := make(map[string]bool, len(excludes))
	for _, d := range excludes {
		ex[d] = true
	}
	return &Indexer{
		parser:   parser,
		store:    store,
		workers:  workers,
		excludes: ex,
		log:      slog.Default().With("component", "index"),
		status:   map[string]Status{},
	}
}

// Status reports the index lifecycle state for a repository.
func (ix *Indexer) Status(repoID string) Status {
	ix.mu.RLock()
	defer ix.mu.RUnlock()
	if s, ok := ix.status[repoID]; ok {
		return s
	}
	return StatusPending
}

func (ix *Indexer) setStatus(repoID string, s Status) {
	ix.mu.Lock()
	ix.status[repoID] = s
	ix.mu.Unlock()
}

// Index builds and stores the graph for the repository rooted at rootPath.
// Individual files that fail to parse are logged and skipped; only walk or
// store failures abort the build.
func (ix *Indexer) Index(ctx context.Context, repoID, rootPath string) (*graph.Graph, error) {
	ix.setStatus(repoID, StatusIndexing)

	g, err := ix.build(ctx, repoID, rootPath)
	if err != nil {
		ix.setStatus(repoID, StatusError)
		return nil, err
	}
	if err := ix.store.Put(ctx, repoID, g); err != nil {
		ix.setStatus(repoID, StatusError)
		return nil, fmt.Errorf("store graph for %s: %w", repoID, err)
	}

	ix.setStatus(repoID, StatusReady)
	ix.log.Info("indexed repository",
		"repo", repoID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
	)
	return g, nil
}

func (ix *Indexer) build(ctx context.Context, repoID, rootPath string) (*graph.Graph, error) {
	files, err := collectFiles(rootPath, ix.excludes)
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", rootPath, err)
	}

	// Parse in parallel but keep per-file results in walk order so the
	// graph built from them is deterministic.
	perFile := make([][]graph.ParsedElement, len(files))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(ix.workers)

	for i, f := range files {
		eg.Go(func() error {
			source, err := os.ReadFile(filepath.Join(rootPath, f.relPath))
			if err != nil {
				ix.log.Warn("skipping unreadable file", "path", f.relPath, "error", err)
				return nil
			}
			elements, err := ix.parser.Parse(egCtx, f.relPath, source, f.lang)
			if err != nil {
				ix.log.Warn("skipping unparsable file", "path", f.relPath, "error", err)
				return nil
			}
			perFile[i] = elements
			return egCtx.Err()
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	var elements []graph.ParsedElement
	for _, els := range perFile {
		elements = append(elements, els...)
	}

	builder := graph.NewBuilder(rootPath)
	return builder.Build(repoID, elements), nil
}

// sourceFile is one parseable file found during the walk.
type sourceFile struct {
	relPath string
	lang    graph.Language
}

// collectFiles walks the repository and returns supported source files in
// lexical walk order with slash-separated relative paths.
func collectFiles(rootPath string, excludes map[string]bool) ([]sourceFile, error) {
	var files []sourceFile
	err := filepath.WalkDir(rootPath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if skipDirs[d.Name()] || excludes[d.Name()] || (path != rootPath && strings.HasPrefix(d.Name(), ".")) {
				return filepath.SkipDir
			}
			return nil
		}
		lang, ok := graph.ExtForLanguage[filepath.Ext(path)]
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(rootPath, path)
		if err != nil {
			return err
		}
		files = append(files, sourceFile{relPath: filepath.ToSlash(rel), lang: lang})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}
