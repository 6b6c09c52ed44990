package graph

import "context"

// ElementKind is the kind reported by a parser for one code element.
// The builder maps kinds to node types and treats anything unrecognized as a
// function, so parsers may report kinds beyond this set without breaking the
// build.
type ElementKind string

const (
	ElementKindFunction ElementKind = "function"
	ElementKindClass    ElementKind = "class"
	ElementKindMethod   ElementKind = "method"
	ElementKindImport   ElementKind = "import"
	ElementKindVariable ElementKind = "variable"
)

// ParsedElement is one code element extracted from a source file. FilePath
// is repo-relative; lines are 1-indexed and inclusive. EnclosingScope names
// the dotted qualified name of the enclosing class, when any.
type ParsedElement struct {
	Kind           ElementKind `json:"kind"`
	Name           string      `json:"name"`
	QualifiedName  string      `json:"qualifiedName"`
	FilePath       string      `json:"filePath"`
	StartLine      int         `json:"startLine"`
	EndLine        int         `json:"endLine"`
	Signature      string      `json:"signature,omitempty"`
	Docstring      string      `json:"docstring,omitempty"`
	SourceText     string      `json:"sourceText,omitempty"`
	EnclosingScope string      `json:"enclosingScope,omitempty"`
}

// Parser extracts code elements from source files.
// Implementations: TreeSitterParser (production), test stubs.
type Parser interface {
	// Parse extracts elements from a single source file. path is the
	// repo-relative path recorded on each element; source is the file
	// content; lang selects the grammar.
	Parse(ctx context.Context, path string, source []byte, lang Language) ([]ParsedElement, error)

	// SupportedLanguages returns the languages this parser can handle.
	SupportedLanguages() []Language

	// Close releases parser resources (tree-sitter C memory).
	Close() error
}
