package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
)

func (a *application) runAsk(args []string) error {
	if len(args) < 2 {
		return fmt.Errorf("usage: codegraph ask <repo-id> <question>")
	}
	repoID := args[0]
	question := strings.Join(args[1:], " ")

	svc, err := a.queries(true)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rec, err := svc.Ask(ctx, repoID, question)
	if err != nil {
		return fmt.Errorf("ask: %w", err)
	}

	fmt.Println(rec.Result.Answer)
	fmt.Printf("\nConfidence: %.2f\n", rec.Result.Confidence)
	if len(rec.Result.Citations) > 0 {
		fmt.Println("\nCitations:")
		for _, c := range rec.Result.Citations {
			fmt.Printf("  %s:%d-%d", c.FilePath, c.StartLine, c.EndLine)
			if c.NodeName != "" {
				fmt.Printf(" (%s)", c.NodeName)
			}
			fmt.Println()
		}
	}
	return nil
}
