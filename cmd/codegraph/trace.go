package main

import (
	"context"
	"fmt"
	"strings"
)

func (a *application) runTrace(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: codegraph trace <repo-id> <function>")
	}
	repoID, function := args[0], args[1]

	svc, err := a.queries(false)
	if err != nil {
		return err
	}

	steps, err := svc.TraceExecution(context.Background(), repoID, function, 20)
	if err != nil {
		return fmt.Errorf("trace: %w", err)
	}
	for _, s := range steps {
		indent := strings.Repeat("  ", s.Depth)
		fmt.Printf("%s%s  (%s:%d)\n", indent, s.Node.QualifiedName, s.Node.FilePath, s.Node.StartLine)
	}
	return nil
}
