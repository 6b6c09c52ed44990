package graph

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"regexp"
	"strings"
)

// Lexical patterns for the heuristic inference passes. Purely syntactic:
// no scope resolution, no shadowing or overload handling.
var (
	callPattern   = regexp.MustCompile(`(\w+)\s*\(`)
	importPattern = regexp.MustCompile(`(?:from|import)\s+(\w+)`)
)

// Builder constructs one graph per repository from a stream of parsed
// elements. repoRoot, when set, is used to count lines of each indexed file
// for the synthetic module nodes; an unreadable file yields a zero line
// count and never aborts the build.
type Builder struct {
	repoRoot string
	log      *slog.Logger
}

// NewBuilder creates a Builder. repoRoot may be empty, in which case every
// module node gets a zero line count.
func NewBuilder(repoRoot string) *Builder {
	return &Builder{
		repoRoot: repoRoot,
		log:      slog.Default().With("component", "graph.builder"),
	}
}

// Build constructs the complete code graph for a repository. Elements are
// grouped by file in first-seen order; within a file they are processed in
// stream order. After base construction two heuristic passes add call and
// import edges. The returned graph is fully built; callers store it only
// after Build returns, so a failure mid-build leaves any previous graph
// untouched.
func (b *Builder) Build(repoID string, elements []ParsedElement) *Graph {
	g := New(repoID)

	byFile := make(map[string][]ParsedElement)
	var fileOrder []string
	for _, el := range elements {
		if _, ok := byFile[el.FilePath]; !ok {
			fileOrder = append(fileOrder, el.FilePath)
		}
		byFile[el.FilePath] = append(byFile[el.FilePath], el)
	}

	for _, filePath := range fileOrder {
		moduleID := ModuleID(filePath)
		g.AddNode(&Node{
			ID:            moduleID,
			Type:          NodeTypeModule,
			Name:          fileStem(filePath),
			QualifiedName: filePath,
			FilePath:      filePath,
			StartLine:     1,
			EndLine:       b.countLines(filePath),
		})

		for _, el := range byFile[filePath] {
			nodeID := NodeID(filePath, el.QualifiedName)
			g.AddNode(&Node{
				ID:            nodeID,
				Type:          mapNodeType(el.Kind),
				Name:          el.Name,
				QualifiedName: el.QualifiedName,
				FilePath:      filePath,
				StartLine:     el.StartLine,
				EndLine:       el.EndLine,
				Signature:     el.Signature,
				Docstring:     el.Docstring,
				Source:        el.SourceText,
			})

			if !g.HasEdge(moduleID, nodeID, EdgeTypeContains) {
				g.AddEdge(&Edge{Source: moduleID, Target: nodeID, Type: EdgeTypeContains})
			}

			// Second containment edge from the enclosing scope, but only
			// if that node exists at this point in construction order.
			// Elements arriving before their enclosing scope silently
			// lose this edge; single-pass construction does not backfill.
			if el.EnclosingScope != "" {
				parentID := NodeID(filePath, el.EnclosingScope)
				if g.HasNode(parentID) && !g.HasEdge(parentID, nodeID, EdgeTypeContains) {
					g.AddEdge(&Edge{Source: parentID, Target: nodeID, Type: EdgeTypeContains})
				}
			}
		}
	}

	b.inferCalls(g)
	b.inferImports(g)

	b.log.Info("built graph",
		"repo_id", repoID,
		"nodes", g.NodeCount(),
		"edges", g.EdgeCount(),
	)
	return g
}

// mapNodeType maps a parser-reported kind to a node type. Unrecognized
// kinds default to function; an explicit fallback, not an error.
func mapNodeType(kind ElementKind) NodeType {
	switch kind {
	case ElementKindFunction:
		return NodeTypeFunction
	case ElementKindClass:
		return NodeTypeClass
	case ElementKindMethod:
		return NodeTypeMethod
	case ElementKindImport:
		return NodeTypeImport
	case ElementKindVariable:
		return NodeTypeVariable
	default:
		return NodeTypeFunction
	}
}

// inferCalls scans the source text of every function and method node for
// the lexical pattern "identifier(" and adds a calls edge whenever the
// identifier equals the bare name of some other known function or method.
// Name collisions resolve arbitrarily to whichever node registered the name
// first; false positives and negatives are expected. Inferred edges carry
// metadata["inferred"]=true so consumers can tell they are not ground truth.
func (b *Builder) inferCalls(g *Graph) {
	byName := make(map[string]string)
	for _, n := range g.Nodes() {
		if n.Type == NodeTypeFunction || n.Type == NodeTypeMethod {
			if _, ok := byName[n.Name]; !ok {
				byName[n.Name] = n.ID
			}
		}
	}

	for _, n := range g.Nodes() {
		if n.Source == "" || (n.Type != NodeTypeFunction && n.Type != NodeTypeMethod) {
			continue
		}
		for _, m := range callPattern.FindAllStringSubmatch(n.Source, -1) {
			called := m[1]
			targetID, ok := byName[called]
			if !ok || called == n.Name {
				continue
			}
			if g.HasEdge(n.ID, targetID, EdgeTypeCalls) {
				continue
			}
			g.AddEdge(&Edge{
				Source:   n.ID,
				Target:   targetID,
				Type:     EdgeTypeCalls,
				Metadata: map[string]any{"inferred": true},
			})
		}
	}
}

// inferImports extracts an imported identifier from every import node's
// signature via a keyword-anchored pattern and, when it matches a known
// module's base name, links the importing node's enclosing module to the
// target module. The enclosing module is found by scanning direct contains
// predecessors only: one hop, not recursive.
func (b *Builder) inferImports(g *Graph) {
	moduleByName := make(map[string]string)
	for _, n := range g.Nodes() {
		if n.Type == NodeTypeModule {
			if _, ok := moduleByName[n.Name]; !ok {
				moduleByName[n.Name] = n.ID
			}
		}
	}

	for _, n := range g.Nodes() {
		if n.Type != NodeTypeImport {
			continue
		}
		for _, m := range importPattern.FindAllStringSubmatch(n.Signature, -1) {
			targetID, ok := moduleByName[m[1]]
			if !ok {
				continue
			}
			sourceModule := enclosingModule(g, n.ID)
			if sourceModule == "" {
				continue
			}
			g.AddEdge(&Edge{Source: sourceModule, Target: targetID, Type: EdgeTypeImports})
		}
	}
}

// enclosingModule returns the ID of the module node directly containing the
// given node, or "" if none of its direct predecessors is a module.
func enclosingModule(g *Graph, id string) string {
	for _, pred := range g.Predecessors(id) {
		if n := g.Node(pred); n != nil && n.Type == NodeTypeModule {
			return pred
		}
	}
	return ""
}

// countLines reads the indexed file and counts its lines. Unreadable files
// yield zero; the failure is logged, never fatal.
func (b *Builder) countLines(relPath string) int {
	if b.repoRoot == "" {
		return 0
	}
	data, err := os.ReadFile(filepath.Join(b.repoRoot, relPath))
	if err != nil {
		b.log.Warn("could not count lines", "file", relPath, "error", err)
		return 0
	}
	if len(data) == 0 {
		return 0
	}
	return bytes.Count(data, []byte{'\n'}) + 1
}

// fileStem returns the file name without directory or extension.
func fileStem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
