//go:build cgo

package graph

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	kuzu "github.com/kuzudb/go-kuzu"
)

// KuzuStore implements the Store interface using KuzuDB as the graph
// backend. It requires CGO because the go-kuzu driver wraps KuzuDB's C
// library. Graphs are stored whole, keyed by repository id; Get
// reconstructs an in-memory Graph in original insertion order.
type KuzuStore struct {
	db   *kuzu.Database
	conn *kuzu.Connection
}

// Compile-time check that KuzuStore satisfies Store.
var _ Store = (*KuzuStore)(nil)

// NewKuzuStore creates a KuzuStore backed by an in-memory KuzuDB instance.
func NewKuzuStore() (*KuzuStore, error) {
	return openKuzu(":memory:")
}

// NewKuzuFileStore creates a KuzuStore backed by a file-based KuzuDB at the
// given directory path. KuzuDB creates the leaf directory itself, so only
// the parent needs to exist. This gives persistent indexes that survive
// across sessions.
func NewKuzuFileStore(dbPath string) (*KuzuStore, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("kuzu: create parent directory: %w", err)
	}
	return openKuzu(dbPath)
}

func openKuzu(path string) (*KuzuStore, error) {
	cfg := kuzu.DefaultSystemConfig()
	db, err := kuzu.OpenDatabase(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("kuzu: open database: %w", err)
	}
	conn, err := kuzu.OpenConnection(db)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("kuzu: open connection: %w", err)
	}
	s := &KuzuStore{db: db, conn: conn}
	if err := s.initSchema(); err != nil {
		s.Close()
		return nil, err
	}
	return s, nil
}

// Close releases the KuzuDB connection and database.
func (s *KuzuStore) Close() error {
	if s.conn != nil {
		s.conn.Close()
	}
	if s.db != nil {
		s.db.Close()
	}
	return nil
}

// ---------- Schema setup ----------

// ddlStatements defines the Cypher DDL executed on open.
// Order matters: node tables must precede relationship tables.
var ddlStatements = []string{
	`CREATE NODE TABLE IF NOT EXISTS CodeNode(
		key STRING,
		repo_id STRING,
		id STRING,
		type STRING,
		name STRING,
		qualified_name STRING,
		file_path STRING,
		start_line INT64,
		end_line INT64,
		signature STRING,
		docstring STRING,
		source STRING,
		metadata STRING,
		ord INT64,
		PRIMARY KEY(key)
	)`,
	`CREATE REL TABLE IF NOT EXISTS RELATES(
		FROM CodeNode TO CodeNode,
		type STRING,
		weight DOUBLE,
		metadata STRING,
		ord INT64
	)`,
}

func (s *KuzuStore) initSchema() error {
	for _, stmt := range ddlStatements {
		res, err := s.conn.Query(stmt)
		if err != nil {
			return fmt.Errorf("kuzu: init schema: %w", err)
		}
		res.Close()
	}
	return nil
}

// nodeKey namespaces node ids by repository so multiple repos can share
// one database.
func nodeKey(repoID, nodeID string) string {
	return repoID + ":" + nodeID
}

// ---------- Store interface ----------

// Put replaces the stored graph for the repository.
func (s *KuzuStore) Put(ctx context.Context, repoID string, g *Graph) error {
	if err := s.deleteRepo(repoID); err != nil {
		return err
	}
	for i, n := range g.Nodes() {
		meta, err := marshalMeta(n.Metadata)
		if err != nil {
			return err
		}
		err = s.exec(
			`CREATE (n:CodeNode {
				key: $key, repo_id: $repo, id: $id, type: $type,
				name: $name, qualified_name: $qn, file_path: $fp,
				start_line: $sl, end_line: $el,
				signature: $sig, docstring: $doc, source: $src,
				metadata: $meta, ord: $ord
			})`,
			map[string]any{
				"key":  nodeKey(repoID, n.ID),
				"repo": repoID,
				"id":   n.ID,
				"type": string(n.Type),
				"name": n.Name,
				"qn":   n.QualifiedName,
				"fp":   n.FilePath,
				"sl":   int64(n.StartLine),
				"el":   int64(n.EndLine),
				"sig":  n.Signature,
				"doc":  n.Docstring,
				"src":  n.Source,
				"meta": meta,
				"ord":  int64(i),
			},
		)
		if err != nil {
			return err
		}
	}
	for i, e := range g.Edges() {
		meta, err := marshalMeta(e.Metadata)
		if err != nil {
			return err
		}
		err = s.exec(
			`MATCH (a:CodeNode {key: $src}), (b:CodeNode {key: $dst})
			 CREATE (a)-[:RELATES {type: $type, weight: $w, metadata: $meta, ord: $ord}]->(b)`,
			map[string]any{
				"src":  nodeKey(repoID, e.Source),
				"dst":  nodeKey(repoID, e.Target),
				"type": string(e.Type),
				"w":    e.Weight,
				"meta": meta,
				"ord":  int64(i),
			},
		)
		if err != nil {
			return err
		}
	}
	return nil
}

// Get reconstructs the stored graph for the repository. Nodes and edges
// are re-added in their original insertion order so traversal and search
// results match the in-memory graph they were built from.
func (s *KuzuStore) Get(ctx context.Context, repoID string) (*Graph, error) {
	nodeRows, err := s.query(
		`MATCH (n:CodeNode) WHERE n.repo_id = $repo
		 RETURN n.id, n.type, n.name, n.qualified_name, n.file_path,
		        n.start_line, n.end_line, n.signature, n.docstring,
		        n.source, n.metadata
		 ORDER BY n.ord`,
		map[string]any{"repo": repoID},
	)
	if err != nil {
		return nil, err
	}
	if len(nodeRows) == 0 {
		return nil, fmt.Errorf("repo %q: %w", repoID, ErrNotFound)
	}

	g := New(repoID)
	for _, r := range nodeRows {
		meta, err := unmarshalMeta(toString(r[10]))
		if err != nil {
			return nil, err
		}
		g.AddNode(&Node{
			ID:            toString(r[0]),
			Type:          NodeType(toString(r[1])),
			Name:          toString(r[2]),
			QualifiedName: toString(r[3]),
			FilePath:      toString(r[4]),
			StartLine:     toInt(r[5]),
			EndLine:       toInt(r[6]),
			Signature:     toString(r[7]),
			Docstring:     toString(r[8]),
			Source:        toString(r[9]),
			Metadata:      meta,
		})
	}

	edgeRows, err := s.query(
		`MATCH (a:CodeNode)-[r:RELATES]->(b:CodeNode)
		 WHERE a.repo_id = $repo
		 RETURN a.id, b.id, r.type, r.weight, r.metadata
		 ORDER BY r.ord`,
		map[string]any{"repo": repoID},
	)
	if err != nil {
		return nil, err
	}
	for _, r := range edgeRows {
		meta, err := unmarshalMeta(toString(r[4]))
		if err != nil {
			return nil, err
		}
		g.AddEdge(&Edge{
			Source:   toString(r[0]),
			Target:   toString(r[1]),
			Type:     EdgeType(toString(r[2])),
			Weight:   toFloat64(r[3]),
			Metadata: meta,
		})
	}
	return g, nil
}

// Delete removes the stored graph for the repository.
func (s *KuzuStore) Delete(ctx context.Context, repoID string) error {
	rows, err := s.query(
		"MATCH (n:CodeNode) WHERE n.repo_id = $repo RETURN count(n)",
		map[string]any{"repo": repoID},
	)
	if err != nil {
		return err
	}
	if len(rows) == 0 || toInt(rows[0][0]) == 0 {
		return fmt.Errorf("repo %q: %w", repoID, ErrNotFound)
	}
	return s.deleteRepo(repoID)
}

// List returns the ids of all stored repositories.
func (s *KuzuStore) List(ctx context.Context) ([]string, error) {
	rows, err := s.query(
		"MATCH (n:CodeNode) RETURN DISTINCT n.repo_id ORDER BY n.repo_id",
		nil,
	)
	if err != nil {
		return nil, err
	}
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, toString(r[0]))
	}
	return out, nil
}

func (s *KuzuStore) deleteRepo(repoID string) error {
	return s.exec(
		"MATCH (n:CodeNode) WHERE n.repo_id = $repo DETACH DELETE n",
		map[string]any{"repo": repoID},
	)
}

// ---------- Internal helpers ----------

// exec runs a parameterized Cypher statement that produces no result rows.
func (s *KuzuStore) exec(cypher string, params map[string]any) error {
	stmt, err := s.conn.Prepare(cypher)
	if err != nil {
		return fmt.Errorf("kuzu: prepare: %w", err)
	}
	defer stmt.Close()

	res, err := s.conn.Execute(stmt, params)
	if err != nil {
		return fmt.Errorf("kuzu: execute: %w", err)
	}
	res.Close()
	return nil
}

// query runs a parameterized Cypher statement and collects all result rows.
// Each row is a []any slice with values in column order.
func (s *KuzuStore) query(cypher string, params map[string]any) ([][]any, error) {
	var res *kuzu.QueryResult
	var err error

	if len(params) == 0 {
		res, err = s.conn.Query(cypher)
	} else {
		var stmt *kuzu.PreparedStatement
		stmt, err = s.conn.Prepare(cypher)
		if err != nil {
			return nil, fmt.Errorf("kuzu: prepare: %w", err)
		}
		defer stmt.Close()
		res, err = s.conn.Execute(stmt, params)
	}
	if err != nil {
		return nil, fmt.Errorf("kuzu: query: %w", err)
	}
	defer res.Close()

	var rows [][]any
	for res.HasNext() {
		tuple, err := res.Next()
		if err != nil {
			return nil, fmt.Errorf("kuzu: next: %w", err)
		}
		vals, err := tuple.GetAsSlice()
		if err != nil {
			return nil, fmt.Errorf("kuzu: row values: %w", err)
		}
		rows = append(rows, vals)
	}
	return rows, nil
}

func marshalMeta(m map[string]any) (string, error) {
	if len(m) == 0 {
		return "", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return "", fmt.Errorf("kuzu: marshal metadata: %w", err)
	}
	return string(b), nil
}

func unmarshalMeta(s string) (map[string]any, error) {
	if s == "" {
		return nil, nil
	}
	var m map[string]any
	if err := json.Unmarshal([]byte(s), &m); err != nil {
		return nil, fmt.Errorf("kuzu: unmarshal metadata: %w", err)
	}
	return m, nil
}

// ---------- Type coercion helpers ----------
// KuzuDB returns typed Go values (int64, float64, bool, string).
// These helpers safely coerce any -> concrete type.

func toString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

func toInt(v any) int {
	switch n := v.(type) {
	case int64:
		return int(n)
	case int:
		return n
	case int32:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

func toFloat64(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	default:
		return 0
	}
}
