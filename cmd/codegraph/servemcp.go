package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/Ekp0/codegraph/internal/mcptools"
)

const defaultMCPAddr = ":8830"

func (a *application) runServeMCP(args []string) error {
	addr := a.cfg.MCPAddr
	if len(args) > 0 {
		addr = args[0]
	}
	if addr == "" {
		addr = defaultMCPAddr
	}

	svc, err := a.queries(true)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	slog.Info("starting MCP server", "addr", addr)
	tools := mcptools.NewCodeGraphService(a.indexer(), svc)
	if err := mcptools.RunMCPServer(ctx, tools, addr); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
