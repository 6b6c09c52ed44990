package graph

// tsSpec configures extraction for TypeScript sources.
var tsSpec = &languageSpec{
	functionKinds: map[string]bool{
		"function_declaration":           true,
		"generator_function_declaration": true,
	},
	methodKinds: map[string]bool{"method_definition": true},
	classKinds: map[string]bool{
		"class_declaration":     true,
		"interface_declaration": true,
	},
	importKinds:   map[string]bool{"import_statement": true},
	variableKinds: map[string]bool{"variable_declarator": true},
	scopeKinds:    map[string]bool{},
	rootKinds:     map[string]bool{"program": true},
	nameKinds: map[string]bool{
		"identifier":      true,
		"type_identifier": true,
		"string":          true,
	},
}
