package mcptools

import (
	"context"
	"net/http"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// version is set by the linker at build time.
var version = "dev"

// NewCodeGraphMCPServer creates an MCP server with all 6 code graph tools
// registered.
func NewCodeGraphMCPServer(svc *CodeGraphService) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "codegraph",
		Version: version,
	}, nil)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "index_repository",
		Description: "Index a repository and build its code graph. Walks the file tree, parses source files using tree-sitter, and stores module, class, function, and import nodes with their relationships.",
	}, svc.IndexRepository)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_graph",
		Description: "Return the full stored code graph for a repository: all nodes, all edges, and summary statistics.",
	}, svc.GetGraph)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "search_nodes",
		Description: "Search a repository's code elements by substring match over names, qualified names, signatures, and docstrings. Optionally filter by node type and limit results.",
	}, svc.SearchNodes)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "get_node_context",
		Description: "Return the one-hop neighborhood of a code element: the node itself, its predecessors, its successors, and its degree counts.",
	}, svc.GetNodeContext)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "trace_execution",
		Description: "Trace the call flow starting from a named function. Follows Calls edges depth-first up to a bounded number of steps.",
	}, svc.TraceExecution)

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_codebase",
		Description: "Answer a natural-language question about a repository. A bounded reasoning agent navigates the code graph and returns an answer with citations and a reasoning trace.",
	}, svc.QueryCodebase)

	return server
}

// RunMCPServer starts an HTTP server exposing the code graph MCP tools.
func RunMCPServer(ctx context.Context, svc *CodeGraphService, addr string) error {
	server := NewCodeGraphMCPServer(svc)

	handler := mcp.NewStreamableHTTPHandler(
		func(_ *http.Request) *mcp.Server { return server },
		nil,
	)

	httpServer := &http.Server{
		Addr:    addr,
		Handler: handler,
	}

	// Shutdown gracefully when context is cancelled.
	go func() {
		<-ctx.Done()
		httpServer.Shutdown(context.Background())
	}()

	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
