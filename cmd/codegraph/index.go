package main

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
)

func (a *application) runIndex(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: codegraph index <repo-id> <path>")
	}
	repoID, path := args[0], args[1]

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	g, err := a.indexer().Index(ctx, repoID, path)
	if err != nil {
		return fmt.Errorf("index %s: %w", repoID, err)
	}

	fmt.Printf("Indexed %s: %d nodes, %d edges\n", repoID, g.NodeCount(), g.EdgeCount())
	return nil
}

func (a *application) runList() error {
	svc, err := a.queries(false)
	if err != nil {
		return err
	}
	repos, err := svc.List(context.Background())
	if err != nil {
		return err
	}
	if len(repos) == 0 {
		fmt.Println("No repositories indexed.")
		return nil
	}
	for _, r := range repos {
		fmt.Println(r)
	}
	return nil
}
