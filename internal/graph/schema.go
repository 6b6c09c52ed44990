package graph

import (
	"crypto/sha256"
	"encoding/hex"
)

// --- Enums ---

// NodeType classifies entities in the code graph.
type NodeType string

const (
	NodeTypeModule    NodeType = "module"
	NodeTypeClass     NodeType = "class"
	NodeTypeFunction  NodeType = "function"
	NodeTypeMethod    NodeType = "method"
	NodeTypeVariable  NodeType = "variable"
	NodeTypeImport    NodeType = "import"
	NodeTypeParameter NodeType = "parameter"
)

// EdgeType classifies relationships between nodes.
type EdgeType string

const (
	EdgeTypeContains    EdgeType = "contains"     // module/class contains function/class
	EdgeTypeCalls       EdgeType = "calls"        // function calls another function
	EdgeTypeImports     EdgeType = "imports"      // module imports another module
	EdgeTypeInherits    EdgeType = "inherits"     // class inherits from another class
	EdgeTypeReferences  EdgeType = "references"   // code references a variable/function
	EdgeTypeDefines     EdgeType = "defines"      // scope defines a variable
	EdgeTypeReturns     EdgeType = "returns"      // function returns a type
	EdgeTypeParameterOf EdgeType = "parameter_of" // parameter belongs to function
)

// --- Models ---

// Node is one code entity in the graph. Serialized field names match the
// inspection API exactly. Source carries raw text for heuristic inference
// and citations; it is never serialized with the node.
type Node struct {
	ID            string         `json:"id"`
	Type          NodeType       `json:"type"`
	Name          string         `json:"name"`
	QualifiedName string         `json:"qualified_name"`
	FilePath      string         `json:"file_path"`
	StartLine     int            `json:"start_line"`
	EndLine       int            `json:"end_line"`
	Signature     string         `json:"signature,omitempty"`
	Docstring     string         `json:"docstring,omitempty"`
	Source        string         `json:"-"`
	Metadata      map[string]any `json:"metadata,omitempty"`
}

// Edge is one directed relationship between two node IDs.
type Edge struct {
	Source   string         `json:"source"`
	Target   string         `json:"target"`
	Type     EdgeType       `json:"type"`
	Weight   float64        `json:"weight"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

// --- Node ID derivation ---

// idHexLen is the truncated hex length of node IDs: 16 hex chars = 64 bits
// of hash space. Collisions are accepted as statistically negligible.
const idHexLen = 16

// NodeID derives the identifier for a code entity from its file path and
// qualified name. Pure and deterministic: equal inputs always produce equal
// outputs across rebuilds.
func NodeID(filePath, qualifiedName string) string {
	sum := sha256.Sum256([]byte(filePath + "::" + qualifiedName))
	return hex.EncodeToString(sum[:])[:idHexLen]
}

// ModuleID derives the identifier for a file's synthetic module node from
// the file path alone.
func ModuleID(filePath string) string {
	sum := sha256.Sum256([]byte(filePath))
	return hex.EncodeToString(sum[:])[:idHexLen]
}
