package graph

import (
	"iter"
	"sort"
	"strings"
)

// Step is one visited-node record yielded by a graph walk.
type Step struct {
	NodeID   string   `json:"node_id"`
	Node     *Node    `json:"node"`
	Depth    int      `json:"depth"`
	Path     []string `json:"path"`
	EdgeType EdgeType `json:"edge_type,omitempty"` // edge used to arrive; empty for the start node
}

// Neighbor is a one-hop neighbor of a node together with the connecting
// edge's type.
type Neighbor struct {
	NodeID   string   `json:"node_id"`
	Node     *Node    `json:"node"`
	EdgeType EdgeType `json:"edge_type"`
}

// NodeContext is the one-hop neighborhood of a node.
type NodeContext struct {
	Node         *Node      `json:"node"`
	Predecessors []Neighbor `json:"predecessors"`
	Successors   []Neighbor `json:"successors"`
	InDegree     int        `json:"in_degree"`
	OutDegree    int        `json:"out_degree"`
}

// SearchResult is one scored match from SearchNodes.
type SearchResult struct {
	NodeID string  `json:"node_id"`
	Node   *Node   `json:"node"`
	Score  float64 `json:"score"`
}

// Traversal is a read-only query layer over one graph. It performs no
// locking; the owning service prevents queries during a rebuild of the same
// repository.
type Traversal struct {
	g *Graph
}

// NewTraversal creates a traversal engine over g.
func NewTraversal(g *Graph) *Traversal {
	return &Traversal{g: g}
}

// Graph returns the underlying graph.
func (t *Traversal) Graph() *Graph {
	return t.g
}

type walkItem struct {
	id       string
	depth    int
	path     []string
	edgeType EdgeType
}

// BFS walks breadth-first from start, yielding each node at most once. The
// depth bound is inclusive: nodes reached at exactly maxDepth are yielded
// but never expanded. Edge-type filtering applies when expanding a node's
// outgoing edges. A node failing the node-type filter is neither yielded
// nor expanded even though it counts as visited, so filtered nodes act as
// traversal dead ends. (Whether such nodes should still be expanded is an
// open question; this preserves the reference behavior.)
func (t *Traversal) BFS(start string, maxDepth int, edgeTypes []EdgeType, nodeTypes []NodeType) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		if !t.g.HasNode(start) {
			return
		}
		visited := map[string]bool{start: true}
		queue := []walkItem{{id: start, depth: 0, path: []string{start}}}

		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			node := t.g.Node(cur.id)

			if len(nodeTypes) > 0 && !hasNodeType(nodeTypes, node.Type) {
				continue
			}
			if !yield(Step{NodeID: cur.id, Node: node, Depth: cur.depth, Path: cur.path, EdgeType: cur.edgeType}) {
				return
			}
			if cur.depth >= maxDepth {
				continue
			}
			for _, e := range t.g.OutEdges(cur.id) {
				if visited[e.Target] {
					continue
				}
				if len(edgeTypes) > 0 && !hasEdgeType(edgeTypes, e.Type) {
					continue
				}
				visited[e.Target] = true
				queue = append(queue, walkItem{
					id:       e.Target,
					depth:    cur.depth + 1,
					path:     appendPath(cur.path, e.Target),
					edgeType: e.Type,
				})
			}
		}
	}
}

// DFS walks depth-first from start with an explicit stack. Same visited-set
// dedup and inclusive depth bound as BFS; no node-type filter.
func (t *Traversal) DFS(start string, maxDepth int, edgeTypes []EdgeType) iter.Seq[Step] {
	return func(yield func(Step) bool) {
		if !t.g.HasNode(start) {
			return
		}
		visited := make(map[string]bool)
		stack := []walkItem{{id: start, depth: 0, path: []string{start}}}

		for len(stack) > 0 {
			cur := stack[len(stack)-1]
			stack = stack[:len(stack)-1]

			if visited[cur.id] {
				continue
			}
			visited[cur.id] = true

			if !yield(Step{NodeID: cur.id, Node: t.g.Node(cur.id), Depth: cur.depth, Path: cur.path, EdgeType: cur.edgeType}) {
				return
			}
			if cur.depth >= maxDepth {
				continue
			}
			for _, e := range t.g.OutEdges(cur.id) {
				if visited[e.Target] {
					continue
				}
				if len(edgeTypes) > 0 && !hasEdgeType(edgeTypes, e.Type) {
					continue
				}
				stack = append(stack, walkItem{
					id:       e.Target,
					depth:    cur.depth + 1,
					path:     appendPath(cur.path, e.Target),
					edgeType: e.Type,
				})
			}
		}
	}
}

// FindPaths returns all simple directed paths from source to target with at
// most maxDepth edges. Unknown or unreachable endpoints yield an empty
// result, never an error. A coincident pair yields the trivial single-node
// path.
func (t *Traversal) FindPaths(source, target string, maxDepth int) [][]string {
	if !t.g.HasNode(source) || !t.g.HasNode(target) {
		return nil
	}
	if source == target {
		return [][]string{{source}}
	}

	var paths [][]string
	type frame struct {
		id   string
		path []string
	}
	stack := []frame{{id: source, path: []string{source}}}

	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if len(cur.path)-1 >= maxDepth {
			continue
		}
		for _, succ := range t.g.Successors(cur.id) {
			if onPath(cur.path, succ) {
				continue
			}
			next := appendPath(cur.path, succ)
			if succ == target {
				paths = append(paths, next)
				continue
			}
			stack = append(stack, frame{id: succ, path: next})
		}
	}
	return paths
}

// FindCallers walks the reverse adjacency from nodeID, following only edges
// whose forward-direction type is calls, and returns the callers in
// discovery order with their caller-to-target paths.
func (t *Traversal) FindCallers(nodeID string, maxDepth int) []Step {
	if !t.g.HasNode(nodeID) {
		return nil
	}

	var callers []Step
	visited := map[string]bool{nodeID: true}
	queue := []walkItem{{id: nodeID, depth: 0, path: []string{nodeID}}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if cur.depth >= maxDepth {
			continue
		}
		for _, e := range t.g.InEdges(cur.id) {
			pred := e.Source
			if visited[pred] {
				continue
			}
			if e.Type != EdgeTypeCalls {
				continue
			}
			visited[pred] = true
			newPath := prependPath(pred, cur.path)
			callers = append(callers, Step{
				NodeID:   pred,
				Node:     t.g.Node(pred),
				Depth:    cur.depth + 1,
				Path:     newPath,
				EdgeType: EdgeTypeCalls,
			})
			queue = append(queue, walkItem{id: pred, depth: cur.depth + 1, path: newPath})
		}
	}
	return callers
}

// FindCallees returns the functions reachable from nodeID over calls edges,
// excluding the start node itself.
func (t *Traversal) FindCallees(nodeID string, maxDepth int) []Step {
	var callees []Step
	for step := range t.BFS(nodeID, maxDepth, []EdgeType{EdgeTypeCalls}, nil) {
		if step.NodeID != nodeID {
			callees = append(callees, step)
		}
	}
	return callees
}

// TraceExecutionFlow follows calls edges depth-first from an entry point
// with a single global visited set and a single global step budget shared
// across all branches: once a node has been recorded anywhere in the trace
// it is never revisited via any other path, and the walk stops once
// maxSteps records exist. Diamonds and cycles are pruned into a flattened
// linear record rather than a full call tree. Implemented with an explicit
// work stack so deep call chains cannot exhaust goroutine stack space.
func (t *Traversal) TraceExecutionFlow(entry string, maxSteps int) []Step {
	if !t.g.HasNode(entry) {
		return nil
	}

	var flow []Step
	visited := make(map[string]bool)
	stack := []walkItem{{id: entry, depth: 0, path: []string{entry}}}

	for len(stack) > 0 {
		if len(flow) >= maxSteps {
			break
		}
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if visited[cur.id] {
			continue
		}
		visited[cur.id] = true
		flow = append(flow, Step{NodeID: cur.id, Node: t.g.Node(cur.id), Depth: cur.depth, Path: cur.path})

		// Push calls successors in reverse so the first successor is
		// processed first, matching recursive preorder.
		outs := t.g.OutEdges(cur.id)
		for i := len(outs) - 1; i >= 0; i-- {
			e := outs[i]
			if e.Type != EdgeTypeCalls {
				continue
			}
			stack = append(stack, walkItem{
				id:    e.Target,
				depth: cur.depth + 1,
				path:  appendPath(cur.path, e.Target),
			})
		}
	}
	return flow
}

// NodeContext returns the one-hop neighborhood of a node, or nil for an
// unknown ID. contextDepth is accepted for interface stability but does not
// affect the one-hop behavior; a known inconsistency inherited from the
// reference design.
func (t *Traversal) NodeContext(nodeID string, contextDepth int) *NodeContext {
	_ = contextDepth
	if !t.g.HasNode(nodeID) {
		return nil
	}

	ctx := &NodeContext{
		Node:      t.g.Node(nodeID),
		InDegree:  t.g.InDegree(nodeID),
		OutDegree: t.g.OutDegree(nodeID),
	}
	for _, pred := range t.g.Predecessors(nodeID) {
		ctx.Predecessors = append(ctx.Predecessors, Neighbor{
			NodeID:   pred,
			Node:     t.g.Node(pred),
			EdgeType: firstEdgeType(t.g.OutEdges(pred), nodeID),
		})
	}
	for _, succ := range t.g.Successors(nodeID) {
		ctx.Successors = append(ctx.Successors, Neighbor{
			NodeID:   succ,
			Node:     t.g.Node(succ),
			EdgeType: firstEdgeType(t.g.OutEdges(nodeID), succ),
		})
	}
	return ctx
}

// SearchNodes matches query case-insensitively against the concatenation of
// each node's name, qualified name, signature, and docstring, scanning in
// graph node order. Scanning stops once limit matches are collected; only
// that collected subset is then sorted by score (exact name match 1.0, else
// 0.5), stable on ties. The returned set is therefore the first limit
// matches in structural order, not the globally best-scoring limit matches.
// This collect-then-sort-within-cap behavior is preserved deliberately.
func (t *Traversal) SearchNodes(query string, nodeTypes []NodeType, limit int) []SearchResult {
	q := strings.ToLower(query)
	var results []SearchResult

	for _, n := range t.g.Nodes() {
		if len(results) >= limit {
			break
		}
		if len(nodeTypes) > 0 && !hasNodeType(nodeTypes, n.Type) {
			continue
		}
		searchable := strings.ToLower(n.Name + " " + n.QualifiedName + " " + n.Signature + " " + n.Docstring)
		if !strings.Contains(searchable, q) {
			continue
		}
		score := 0.5
		if q == strings.ToLower(n.Name) {
			score = 1.0
		}
		results = append(results, SearchResult{NodeID: n.ID, Node: n, Score: score})
	}

	sort.SliceStable(results, func(i, j int) bool { return results[i].Score > results[j].Score })
	return results
}

// --- helpers ---

func hasNodeType(types []NodeType, t NodeType) bool {
	for _, nt := range types {
		if nt == t {
			return true
		}
	}
	return false
}

func hasEdgeType(types []EdgeType, t EdgeType) bool {
	for _, et := range types {
		if et == t {
			return true
		}
	}
	return false
}

func firstEdgeType(edges []*Edge, target string) EdgeType {
	for _, e := range edges {
		if e.Target == target {
			return e.Type
		}
	}
	return ""
}

func onPath(path []string, id string) bool {
	for _, p := range path {
		if p == id {
			return true
		}
	}
	return false
}

// appendPath copies before appending so sibling branches never share a
// backing array.
func appendPath(path []string, id string) []string {
	next := make([]string, len(path), len(path)+1)
	copy(next, path)
	return append(next, id)
}

func prependPath(id string, path []string) []string {
	next := make([]string, 0, len(path)+1)
	next = append(next, id)
	return append(next, path...)
}
