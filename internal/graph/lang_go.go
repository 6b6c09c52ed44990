package graph

// goSpec configures extraction for Go sources.
var goSpec = &languageSpec{
	functionKinds: map[string]bool{"function_declaration": true},
	methodKinds:   map[string]bool{"method_declaration": true},
	classKinds:    map[string]bool{"type_spec": true},
	importKinds:   map[string]bool{"import_spec": true},
	variableKinds: map[string]bool{"var_spec": true, "const_spec": true},
	scopeKinds:    map[string]bool{},
	rootKinds:     map[string]bool{"source_file": true},
	nameKinds: map[string]bool{
		"identifier":                 true,
		"type_identifier":            true,
		"interpreted_string_literal": true,
	},
}
