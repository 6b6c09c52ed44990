package graph

import (
	"context"
	"fmt"
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
	tree_sitter_go "github.com/tree-sitter/tree-sitter-go/bindings/go"
	tree_sitter_python "github.com/tree-sitter/tree-sitter-python/bindings/go"
	tree_sitter_rust "github.com/tree-sitter/tree-sitter-rust/bindings/go"
	tree_sitter_typescript "github.com/tree-sitter/tree-sitter-typescript/bindings/go"
)

// Language identifies a programming language for parsing.
type Language string

const (
	LangGo         Language = "go"
	LangTypeScript Language = "typescript"
	LangPython     Language = "python"
	LangRust       Language = "rust"
)

// SupportedLanguages are the languages with a registered grammar.
var SupportedLanguages = []Language{LangGo, LangTypeScript, LangPython, LangRust}

// ExtForLanguage maps file extensions to languages.
var ExtForLanguage = map[string]Language{
	".go":  LangGo,
	".ts":  LangTypeScript,
	".tsx": LangTypeScript,
	".py":  LangPython,
	".rs":  LangRust,
}

// languageSpec drives the shared extraction walker for one grammar. Kind
// sets name the tree-sitter node kinds that produce elements; nameKinds are
// the child kinds accepted as an element's name when the grammar has no
// "name" field for it.
type languageSpec struct {
	functionKinds map[string]bool
	methodKinds   map[string]bool
	classKinds    map[string]bool
	importKinds   map[string]bool
	variableKinds map[string]bool
	scopeKinds    map[string]bool // containers that name a scope without emitting an element
	rootKinds     map[string]bool // kinds whose direct children count as top level
	nameKinds     map[string]bool

	// docstring extracts a documentation string for a matched node, or ""
	// when the language has no in-body documentation convention.
	docstring func(n *tree_sitter.Node, source []byte) string
}

// Compile-time assertion: *TreeSitterParser satisfies Parser.
var _ Parser = (*TreeSitterParser)(nil)

// TreeSitterParser implements Parser using tree-sitter grammars. A new
// tree-sitter parser is created per Parse call, so the type is safe for
// sequential use but individual Parse calls are not thread-safe on a shared
// instance.
type TreeSitterParser struct {
	languages map[Language]*tree_sitter.Language
	specs     map[Language]*languageSpec
}

// NewTreeSitterParser creates a parser with Go, TypeScript, Python, and
// Rust grammars registered.
func NewTreeSitterParser() *TreeSitterParser {
	return &TreeSitterParser{
		languages: map[Language]*tree_sitter.Language{
			LangGo:         tree_sitter.NewLanguage(tree_sitter_go.Language()),
			LangTypeScript: tree_sitter.NewLanguage(tree_sitter_typescript.LanguageTypescript()),
			LangPython:     tree_sitter.NewLanguage(tree_sitter_python.Language()),
			LangRust:       tree_sitter.NewLanguage(tree_sitter_rust.Language()),
		},
		specs: map[Language]*languageSpec{
			LangGo:         goSpec,
			LangTypeScript: tsSpec,
			LangPython:     pySpec,
			LangRust:       rsSpec,
		},
	}
}

// Parse extracts code elements from a single source file.
func (p *TreeSitterParser) Parse(_ context.Context, path string, source []byte, lang Language) ([]ParsedElement, error) {
	tsLang, ok := p.languages[lang]
	if !ok {
		return nil, fmt.Errorf("unsupported language: %s", lang)
	}
	spec := p.specs[lang]

	parser := tree_sitter.NewParser()
	defer parser.Close()

	if err := parser.SetLanguage(tsLang); err != nil {
		return nil, fmt.Errorf("set language %s: %w", lang, err)
	}

	tree := parser.Parse(source, nil)
	if tree == nil {
		return nil, fmt.Errorf("tree-sitter returned nil tree for %s", path)
	}
	defer tree.Close()

	w := &walker{spec: spec, source: source, path: path}
	w.walk(tree.RootNode(), "")
	return w.elements, nil
}

// SupportedLanguages returns the languages this parser can handle.
func (p *TreeSitterParser) SupportedLanguages() []Language {
	langs := make([]Language, 0, len(p.languages))
	for l := range p.languages {
		langs = append(langs, l)
	}
	return langs
}

// Close is a no-op because parsers are created per Parse call.
func (p *TreeSitterParser) Close() error {
	return nil
}

// walker accumulates elements while descending the syntax tree. scope is
// the dotted qualified name of the nearest enclosing class-like container.
type walker struct {
	spec     *languageSpec
	source   []byte
	path     string
	elements []ParsedElement
}

func (w *walker) walk(node *tree_sitter.Node, scope string) {
	kind := node.Kind()
	childScope := scope

	switch {
	case w.spec.functionKinds[kind]:
		if el, ok := w.element(node, scope, ElementKindFunction); ok {
			if scope != "" {
				el.Kind = ElementKindMethod
			}
			w.elements = append(w.elements, el)
		}

	case w.spec.methodKinds[kind]:
		if el, ok := w.element(node, scope, ElementKindMethod); ok {
			w.elements = append(w.elements, el)
		}

	case w.spec.classKinds[kind]:
		if el, ok := w.element(node, scope, ElementKindClass); ok {
			w.elements = append(w.elements, el)
			childScope = el.QualifiedName
		}

	case w.spec.importKinds[kind]:
		if el, ok := w.element(node, "", ElementKindImport); ok {
			w.elements = append(w.elements, el)
		}

	case w.spec.variableKinds[kind]:
		// Variables are only extracted at the top level to keep local
		// bindings out of the graph.
		if w.topLevel(node) {
			if el, ok := w.element(node, scope, ElementKindVariable); ok {
				w.elements = append(w.elements, el)
			}
		}

	case w.spec.scopeKinds[kind]:
		if name := w.scopeName(node); name != "" {
			childScope = qualify(scope, name)
		}
	}

	for i := uint(0); i < node.ChildCount(); i++ {
		if child := node.Child(i); child != nil {
			w.walk(child, childScope)
		}
	}
}

// element builds a ParsedElement for a matched node. Returns false when no
// name could be extracted.
func (w *walker) element(node *tree_sitter.Node, scope string, kind ElementKind) (ParsedElement, bool) {
	name := w.nodeName(node)
	if name == "" {
		return ParsedElement{}, false
	}

	src := node.Utf8Text(w.source)
	el := ParsedElement{
		Kind:           kind,
		Name:           name,
		QualifiedName:  qualify(scope, name),
		FilePath:       w.path,
		StartLine:      int(node.StartPosition().Row) + 1,
		EndLine:        int(node.EndPosition().Row) + 1,
		Signature:      firstLine(src),
		SourceText:     src,
		EnclosingScope: scope,
	}
	if w.spec.docstring != nil {
		el.Docstring = w.spec.docstring(node, w.source)
	}
	return el, true
}

// nodeName extracts a node's name: the grammar's "name" field when present,
// otherwise the first child whose kind is in the language's name kind set.
func (w *walker) nodeName(node *tree_sitter.Node) string {
	if c := node.ChildByFieldName("name"); c != nil {
		return c.Utf8Text(w.source)
	}
	for i := uint(0); i < node.ChildCount(); i++ {
		c := node.Child(i)
		if c != nil && w.spec.nameKinds[c.Kind()] {
			return strings.Trim(c.Utf8Text(w.source), `"'`)
		}
	}
	return ""
}

// scopeName names a non-emitting scope container (e.g. a Rust impl block's
// target type).
func (w *walker) scopeName(node *tree_sitter.Node) string {
	if c := node.ChildByFieldName("type"); c != nil {
		return c.Utf8Text(w.source)
	}
	return w.nodeName(node)
}

// topLevel reports whether the node's parent chain reaches a root kind
// without passing through any other container.
func (w *walker) topLevel(node *tree_sitter.Node) bool {
	parent := node.Parent()
	for parent != nil {
		k := parent.Kind()
		if w.spec.rootKinds[k] {
			return true
		}
		// statement and declaration wrappers are transparent
		switch k {
		case "expression_statement", "var_declaration", "const_declaration",
			"lexical_declaration", "variable_declaration":
		default:
			return false
		}
		parent = parent.Parent()
	}
	return false
}

func qualify(scope, name string) string {
	if scope == "" {
		return name
	}
	return scope + "." + name
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return strings.TrimSpace(s[:i])
	}
	return strings.TrimSpace(s)
}
