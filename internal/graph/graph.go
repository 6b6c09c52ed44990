package graph

// Graph is the directed code graph for one repository. Nodes are kept in
// insertion order, which is the canonical scan order for search and export.
//
// A Graph is built once and then read concurrently; it performs no locking
// of its own. The owning service must gate reads against a concurrent
// rebuild for the same repository.
type Graph struct {
	nodes   map[string]*Node
	order   []string // node IDs in insertion order
	edges   []*Edge
	out     map[string][]*Edge
	in      map[string][]*Edge
	repoID  string
}

// New creates an empty graph for the given repository ID.
func New(repoID string) *Graph {
	return &Graph{
		nodes:  make(map[string]*Node),
		out:    make(map[string][]*Edge),
		in:     make(map[string][]*Edge),
		repoID: repoID,
	}
}

// RepoID returns the repository ID this graph was built for.
func (g *Graph) RepoID() string {
	return g.repoID
}

// AddNode inserts a node. Adding an ID that already exists is a no-op, so
// node IDs are unique by construction.
func (g *Graph) AddNode(n *Node) {
	if _, ok := g.nodes[n.ID]; ok {
		return
	}
	g.nodes[n.ID] = n
	g.order = append(g.order, n.ID)
}

// AddEdge inserts a directed edge. Duplicate edges are allowed; callers that
// need dedup (contains, calls) check HasEdge first.
func (g *Graph) AddEdge(e *Edge) {
	if e.Weight == 0 {
		e.Weight = 1.0
	}
	g.edges = append(g.edges, e)
	g.out[e.Source] = append(g.out[e.Source], e)
	g.in[e.Target] = append(g.in[e.Target], e)
}

// HasEdge reports whether an edge of the given type exists between the
// ordered pair (source, target).
func (g *Graph) HasEdge(source, target string, t EdgeType) bool {
	for _, e := range g.out[source] {
		if e.Target == target && e.Type == t {
			return true
		}
	}
	return false
}

// HasNode reports whether a node with the given ID exists.
func (g *Graph) HasNode(id string) bool {
	_, ok := g.nodes[id]
	return ok
}

// Node returns the node with the given ID, or nil if absent.
func (g *Graph) Node(id string) *Node {
	return g.nodes[id]
}

// Nodes returns all nodes in insertion order.
func (g *Graph) Nodes() []*Node {
	out := make([]*Node, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.nodes[id])
	}
	return out
}

// Edges returns all edges in insertion order.
func (g *Graph) Edges() []*Edge {
	out := make([]*Edge, len(g.edges))
	copy(out, g.edges)
	return out
}

// OutEdges returns the outgoing edges of a node in insertion order.
func (g *Graph) OutEdges(id string) []*Edge {
	return g.out[id]
}

// InEdges returns the incoming edges of a node in insertion order.
func (g *Graph) InEdges(id string) []*Edge {
	return g.in[id]
}

// Successors returns the distinct targets of a node's outgoing edges, in
// first-edge order.
func (g *Graph) Successors(id string) []string {
	return distinctEndpoints(g.out[id], func(e *Edge) string { return e.Target })
}

// Predecessors returns the distinct sources of a node's incoming edges, in
// first-edge order.
func (g *Graph) Predecessors(id string) []string {
	return distinctEndpoints(g.in[id], func(e *Edge) string { return e.Source })
}

// NodeCount returns the number of nodes.
func (g *Graph) NodeCount() int {
	return len(g.nodes)
}

// EdgeCount returns the number of edges.
func (g *Graph) EdgeCount() int {
	return len(g.edges)
}

// InDegree returns the number of incoming edges of a node.
func (g *Graph) InDegree(id string) int {
	return len(g.in[id])
}

// OutDegree returns the number of outgoing edges of a node.
func (g *Graph) OutDegree(id string) int {
	return len(g.out[id])
}

func distinctEndpoints(edges []*Edge, end func(*Edge) string) []string {
	seen := make(map[string]bool, len(edges))
	var out []string
	for _, e := range edges {
		id := end(e)
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
