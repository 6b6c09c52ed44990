package graph

import "testing"

func TestAddNodeFirstWinsAndKeepsOrder(t *testing.T) {
	g := New("repo")
	g.AddNode(&Node{ID: "a", Name: "first"})
	g.AddNode(&Node{ID: "b", Name: "second"})
	g.AddNode(&Node{ID: "a", Name: "duplicate"})

	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2", g.NodeCount())
	}
	nodes := g.Nodes()
	if nodes[0].ID != "a" || nodes[1].ID != "b" {
		t.Fatalf("order = [%s %s], want [a b]", nodes[0].ID, nodes[1].ID)
	}
	if got := g.Node("a").Name; got != "first" {
		t.Fatalf("Node(a).Name = %q, want first", got)
	}
}

func TestHasEdgeMatchesType(t *testing.T) {
	g := New("repo")
	g.AddNode(&Node{ID: "a"})
	g.AddNode(&Node{ID: "b"})
	g.AddEdge(&Edge{Source: "a", Target: "b", Type: EdgeTypeCalls, Weight: 1.0})

	if !g.HasEdge("a", "b", EdgeTypeCalls) {
		t.Fatal("expected calls edge a->b")
	}
	if g.HasEdge("a", "b", EdgeTypeImports) {
		t.Fatal("imports edge should not exist")
	}
	if g.HasEdge("b", "a", EdgeTypeCalls) {
		t.Fatal("edge direction should matter")
	}
}

func TestSuccessorsDistinct(t *testing.T) {
	g := New("repo")
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(&Node{ID: id})
	}
	g.AddEdge(&Edge{Source: "a", Target: "b", Type: EdgeTypeContains, Weight: 1.0})
	g.AddEdge(&Edge{Source: "a", Target: "b", Type: EdgeTypeCalls, Weight: 1.0})
	g.AddEdge(&Edge{Source: "a", Target: "c", Type: EdgeTypeCalls, Weight: 1.0})

	succ := g.Successors("a")
	if len(succ) != 2 {
		t.Fatalf("Successors = %v, want two distinct ids", succ)
	}
	if succ[0] != "b" || succ[1] != "c" {
		t.Fatalf("Successors = %v, want [b c]", succ)
	}

	pred := g.Predecessors("b")
	if len(pred) != 1 || pred[0] != "a" {
		t.Fatalf("Predecessors(b) = %v, want [a]", pred)
	}
}

func TestDegrees(t *testing.T) {
	g := New("repo")
	for _, id := range []string{"a", "b", "c"} {
		g.AddNode(&Node{ID: id})
	}
	g.AddEdge(&Edge{Source: "a", Target: "c", Type: EdgeTypeCalls, Weight: 1.0})
	g.AddEdge(&Edge{Source: "b", Target: "c", Type: EdgeTypeCalls, Weight: 1.0})

	if got := g.InDegree("c"); got != 2 {
		t.Fatalf("InDegree(c) = %d, want 2", got)
	}
	if got := g.OutDegree("a"); got != 1 {
		t.Fatalf("OutDegree(a) = %d, want 1", got)
	}
	if got := g.InDegree("missing"); got != 0 {
		t.Fatalf("InDegree(missing) = %d, want 0", got)
	}
}
