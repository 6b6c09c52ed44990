package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/Ekp0/codegraph/internal/agent"
	"github.com/Ekp0/codegraph/internal/config"
	"github.com/Ekp0/codegraph/internal/graph"
	"github.com/Ekp0/codegraph/internal/index"
	"github.com/Ekp0/codegraph/internal/oracle"
	"github.com/Ekp0/codegraph/internal/query"
)

// CLI flags parsed from command line.
type cliFlags struct {
	ProjectRoot string
	Verbose     bool
	Version     bool
}

// version is set by goreleaser at build time.
var version = "dev"

const usage = `usage: codegraph [flags] <command> [args]

commands:
  index <repo-id> <path>        index a repository into the graph store
  ask <repo-id> <question>      answer a question using the reasoning agent
  search <repo-id> <query>      search code elements by substring
  trace <repo-id> <function>    trace execution flow from a function
  export <repo-id> [json|mermaid]  export a stored graph
  list                          list indexed repositories
  serve-mcp [addr]              run the MCP server (default :8830)
`

func main() {
	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	var flags cliFlags

	fs := flag.NewFlagSet("codegraph", flag.ContinueOnError)
	fs.StringVar(&flags.ProjectRoot, "project-root", ".", "directory containing codegraph.yml and the graph store")
	fs.BoolVar(&flags.Verbose, "verbose", false, "enable verbose output")
	fs.BoolVar(&flags.Version, "version", false, "print version and exit")
	fs.Usage = func() {
		fmt.Fprint(os.Stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return err
	}
	if flags.Version {
		fmt.Println(version)
		return nil
	}

	cfg, err := config.Load(flags.ProjectRoot)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	level := slog.LevelInfo
	if flags.Verbose || cfg.Verbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	rest := fs.Args()
	if len(rest) == 0 {
		fs.Usage()
		return fmt.Errorf("no command given")
	}
	cmd, cmdArgs := rest[0], rest[1:]

	store, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	app := &application{cfg: cfg, store: store}

	switch cmd {
	case "index":
		return app.runIndex(cmdArgs)
	case "ask":
		return app.runAsk(cmdArgs)
	case "search":
		return app.runSearch(cmdArgs)
	case "trace":
		return app.runTrace(cmdArgs)
	case "export":
		return app.runExport(cmdArgs)
	case "list":
		return app.runList()
	case "serve-mcp":
		return app.runServeMCP(cmdArgs)
	default:
		fs.Usage()
		return fmt.Errorf("unknown command: %s", cmd)
	}
}

// application bundles the wiring shared by all subcommands.
type application struct {
	cfg   *config.ProjectConfig
	store graph.Store
	ix    *index.Indexer
}

// indexer returns the process-wide indexer; queries and index runs must
// share one so the status gate sees in-progress rebuilds.
func (a *application) indexer() *index.Indexer {
	if a.ix == nil {
		a.ix = index.New(graph.NewTreeSitterParser(), a.store, a.cfg.Workers, a.cfg.ExcludeDirs)
	}
	return a.ix
}

// queries builds the query service. Commands that never reach the agent
// pass withAgent=false and skip the oracle's environment requirements.
func (a *application) queries(withAgent bool) (*query.Service, error) {
	var ag *agent.Agent
	if withAgent {
		o, err := oracle.NewOpenAIOracle()
		if err != nil {
			return nil, err
		}
		ag = agent.New(o, a.cfg.MaxIterations)
	}
	return query.New(a.store, a.indexer(), ag), nil
}
