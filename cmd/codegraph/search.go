package main

import (
	"context"
	"fmt"
	"strings"
)

func (a *application) runSearch(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: codegraph search <repo-id> <query>")
	}
	repoID := args[0]
	queryText := strings.Join(args[1:], " ")

	svc, err := a.queries(false)
	if err != nil {
		return err
	}

	results, err := svc.Search(context.Background(), repoID, queryText, nil, 20)
	if err != nil {
		return fmt.Errorf("search: %w", err)
	}
	if len(results) == 0 {
		fmt.Println("No matches.")
		return nil
	}
	for _, r := range results {
		n := r.Node
		fmt.Printf("%.1f  %-10s %s  (%s:%d-%d)\n", r.Score, n.Type, n.QualifiedName, n.FilePath, n.StartLine, n.EndLine)
	}
	return nil
}
