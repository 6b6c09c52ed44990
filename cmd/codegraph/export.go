package main

import (
	"context"
	"fmt"
	"os"

	"github.com/Ekp0/codegraph/internal/export"
)

func (a *application) runExport(args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: codegraph export <repo-id> [json|mermaid]")
	}
	repoID := args[0]
	format := "json"
	if len(args) > 1 {
		format = args[1]
	}

	svc, err := a.queries(false)
	if err != nil {
		return err
	}
	g, err := svc.Graph(context.Background(), repoID)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	switch format {
	case "json":
		return export.WriteJSON(os.Stdout, g)
	case "mermaid":
		fmt.Print(export.GenerateMermaid(g))
		return nil
	default:
		return fmt.Errorf("unknown export format: %s", format)
	}
}
