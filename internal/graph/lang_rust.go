package graph

// rsSpec configures extraction for Rust sources. Impl blocks are scope
// containers: functions inside them become methods qualified by the impl
// target type.
var rsSpec = &languageSpec{
	functionKinds: map[string]bool{"function_item": true},
	methodKinds:   map[string]bool{},
	classKinds: map[string]bool{
		"struct_item": true,
		"enum_item":   true,
		"trait_item":  true,
	},
	importKinds: map[string]bool{"use_declaration": true},
	variableKinds: map[string]bool{
		"static_item": true,
		"const_item":  true,
	},
	scopeKinds: map[string]bool{"impl_item": true},
	rootKinds:  map[string]bool{"source_file": true},
	nameKinds: map[string]bool{
		"identifier":        true,
		"type_identifier":   true,
		"scoped_identifier": true,
		"scoped_use_list":   true,
		"use_as_clause":     true,
		"use_wildcard":      true,
	},
}
