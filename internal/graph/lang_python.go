package graph

import (
	"strings"

	tree_sitter "github.com/tree-sitter/go-tree-sitter"
)

// pySpec configures extraction for Python sources.
var pySpec = &languageSpec{
	functionKinds: map[string]bool{"function_definition": true},
	methodKinds:   map[string]bool{},
	classKinds:    map[string]bool{"class_definition": true},
	importKinds: map[string]bool{
		"import_statement":      true,
		"import_from_statement": true,
	},
	variableKinds: map[string]bool{"assignment": true},
	scopeKinds:    map[string]bool{},
	rootKinds:     map[string]bool{"module": true},
	nameKinds: map[string]bool{
		"identifier":  true,
		"dotted_name": true,
	},
	docstring: pyDocstring,
}

// pyDocstring extracts the leading string literal from a function or class
// body, stripped of quote delimiters.
func pyDocstring(n *tree_sitter.Node, source []byte) string {
	body := n.ChildByFieldName("body")
	if body == nil {
		return ""
	}
	first := body.Child(0)
	if first == nil || first.Kind() != "expression_statement" {
		return ""
	}
	str := first.Child(0)
	if str == nil || str.Kind() != "string" {
		return ""
	}
	text := str.Utf8Text(source)
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(text, q) && strings.HasSuffix(text, q) && len(text) >= 2*len(q) {
			return strings.TrimSpace(text[len(q) : len(text)-len(q)])
		}
	}
	return strings.TrimSpace(text)
}
