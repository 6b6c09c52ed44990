package graph

import (
	"context"
	"errors"
	"testing"
)

func TestMemStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	g := New("repo-a")
	g.AddNode(&Node{ID: "n1", Type: NodeTypeFunction, Name: "f"})

	if err := s.Put(ctx, "repo-a", g); err != nil {
		t.Fatalf("put: %v", err)
	}
	got, err := s.Get(ctx, "repo-a")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.NodeCount() != 1 || !got.HasNode("n1") {
		t.Errorf("stored graph lost nodes")
	}
}

func TestMemStoreNotFound(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("get missing: err = %v, want ErrNotFound", err)
	}
	if err := s.Delete(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("delete missing: err = %v, want ErrNotFound", err)
	}
}

func TestMemStorePutReplaces(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	g1 := New("repo")
	g1.AddNode(&Node{ID: "old", Type: NodeTypeFunction, Name: "old"})
	g2 := New("repo")
	g2.AddNode(&Node{ID: "new", Type: NodeTypeFunction, Name: "new"})

	s.Put(ctx, "repo", g1)
	s.Put(ctx, "repo", g2)

	got, err := s.Get(ctx, "repo")
	if err != nil {
		t.Fatal(err)
	}
	if got.HasNode("old") || !got.HasNode("new") {
		t.Error("put did not replace previous graph")
	}
}

func TestMemStoreDeleteAndList(t *testing.T) {
	ctx := context.Background()
	s := NewMemStore()
	defer s.Close()

	s.Put(ctx, "b-repo", New("b-repo"))
	s.Put(ctx, "a-repo", New("a-repo"))

	repos, err := s.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(repos) != 2 || repos[0] != "a-repo" || repos[1] != "b-repo" {
		t.Errorf("list = %v, want sorted [a-repo b-repo]", repos)
	}

	if err := s.Delete(ctx, "a-repo"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	repos, _ = s.List(ctx)
	if len(repos) != 1 || repos[0] != "b-repo" {
		t.Errorf("list after delete = %v", repos)
	}
}
