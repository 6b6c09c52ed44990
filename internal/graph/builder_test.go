package graph

import (
	"os"
	"path/filepath"
	"testing"
)

// twoFileElements models file A defining foo (whose body calls bar) and
// file B defining bar.
func twoFileElements() []ParsedElement {
	return []ParsedElement{
		{
			Kind:          ElementKindFunction,
			Name:          "foo",
			QualifiedName: "foo",
			FilePath:      "a.py",
			StartLine:     1,
			EndLine:       2,
			Signature:     "def foo():",
			SourceText:    "def foo():\n    return bar()",
		},
		{
			Kind:          ElementKindFunction,
			Name:          "bar",
			QualifiedName: "bar",
			FilePath:      "b.py",
			StartLine:     1,
			EndLine:       2,
			Signature:     "def bar():",
			SourceText:    "def bar():\n    return 42",
		},
	}
}

func TestBuildTwoFileCallScenario(t *testing.T) {
	g := NewBuilder("").Build("repo", twoFileElements())

	var modules, functions int
	for _, n := range g.Nodes() {
		switch n.Type {
		case NodeTypeModule:
			modules++
		case NodeTypeFunction:
			functions++
		}
	}
	if modules != 2 {
		t.Errorf("module nodes = %d, want 2", modules)
	}
	if functions != 2 {
		t.Errorf("function nodes = %d, want 2", functions)
	}

	var contains, calls int
	var callEdge *Edge
	for _, e := range g.Edges() {
		switch e.Type {
		case EdgeTypeContains:
			contains++
		case EdgeTypeCalls:
			calls++
			callEdge = e
		}
	}
	if contains != 2 {
		t.Errorf("contains edges = %d, want 2", contains)
	}
	if calls != 1 {
		t.Fatalf("calls edges = %d, want 1", calls)
	}

	fooID := NodeID("a.py", "foo")
	barID := NodeID("b.py", "bar")
	if callEdge.Source != fooID || callEdge.Target != barID {
		t.Errorf("call edge %s->%s, want %s->%s", callEdge.Source, callEdge.Target, fooID, barID)
	}
	if inferred, _ := callEdge.Metadata["inferred"].(bool); !inferred {
		t.Error("call edge missing inferred metadata")
	}
	if callEdge.Weight != 1.0 {
		t.Errorf("call edge weight = %v, want 1.0", callEdge.Weight)
	}
}

func TestBuildRebuildStability(t *testing.T) {
	b := NewBuilder("")
	g1 := b.Build("repo", twoFileElements())
	g2 := b.Build("repo", twoFileElements())

	n1, n2 := g1.Nodes(), g2.Nodes()
	if len(n1) != len(n2) {
		t.Fatalf("node counts differ: %d vs %d", len(n1), len(n2))
	}
	for i := range n1 {
		if n1[i].ID != n2[i].ID {
			t.Errorf("node order differs at %d: %s vs %s", i, n1[i].ID, n2[i].ID)
		}
	}

	e1, e2 := g1.Edges(), g2.Edges()
	if len(e1) != len(e2) {
		t.Fatalf("edge counts differ: %d vs %d", len(e1), len(e2))
	}
	for i := range e1 {
		if e1[i].Source != e2[i].Source || e1[i].Target != e2[i].Target || e1[i].Type != e2[i].Type {
			t.Errorf("edge order differs at %d", i)
		}
	}
}

func TestBuildNoSelfCallEdge(t *testing.T) {
	elements := []ParsedElement{{
		Kind:          ElementKindFunction,
		Name:          "loop",
		QualifiedName: "loop",
		FilePath:      "a.py",
		SourceText:    "def loop():\n    return loop()",
	}}
	g := NewBuilder("").Build("repo", elements)
	for _, e := range g.Edges() {
		if e.Type == EdgeTypeCalls {
			t.Fatalf("unexpected self-call edge %s->%s", e.Source, e.Target)
		}
	}
}

func TestBuildDuplicateCallsCollapse(t *testing.T) {
	elements := twoFileElements()
	elements[0].SourceText = "def foo():\n    bar()\n    bar()\n    return bar()"
	g := NewBuilder("").Build("repo", elements)

	calls := 0
	for _, e := range g.Edges() {
		if e.Type == EdgeTypeCalls {
			calls++
		}
	}
	if calls != 1 {
		t.Errorf("calls edges = %d, want 1 after dedup", calls)
	}
}

func TestBuildEnclosingScopeEdgeRequiresExistingParent(t *testing.T) {
	// Method arrives before its class: only the module containment edge is
	// added for it. When the class precedes the method, the class edge
	// appears too.
	method := ParsedElement{
		Kind:           ElementKindMethod,
		Name:           "greet",
		QualifiedName:  "Greeter.greet",
		FilePath:       "a.py",
		EnclosingScope: "Greeter",
	}
	class := ParsedElement{
		Kind:          ElementKindClass,
		Name:          "Greeter",
		QualifiedName: "Greeter",
		FilePath:      "a.py",
	}

	before := NewBuilder("").Build("repo", []ParsedElement{method, class})
	after := NewBuilder("").Build("repo", []ParsedElement{class, method})

	classID := NodeID("a.py", "Greeter")
	methodID := NodeID("a.py", "Greeter.greet")

	if before.HasEdge(classID, methodID, EdgeTypeContains) {
		t.Error("scope edge added even though parent did not exist yet")
	}
	if !after.HasEdge(classID, methodID, EdgeTypeContains) {
		t.Error("scope edge missing even though parent existed")
	}
}

func TestBuildImportInference(t *testing.T) {
	elements := []ParsedElement{
		{
			Kind:          ElementKindImport,
			Name:          "util",
			QualifiedName: "util",
			FilePath:      "app.py",
			Signature:     "import util",
		},
		{
			Kind:          ElementKindFunction,
			Name:          "helper",
			QualifiedName: "helper",
			FilePath:      "util.py",
			Signature:     "def helper():",
		},
	}
	g := NewBuilder("").Build("repo", elements)

	appModule := ModuleID("app.py")
	utilModule := ModuleID("util.py")
	if !g.HasEdge(appModule, utilModule, EdgeTypeImports) {
		t.Error("missing inferred imports edge between modules")
	}
}

func TestBuildModuleLineCount(t *testing.T) {
	dir := t.TempDir()
	content := []byte("line one\nline two\nline three\n")
	if err := os.WriteFile(filepath.Join(dir, "a.py"), content, 0o644); err != nil {
		t.Fatal(err)
	}

	elements := []ParsedElement{{
		Kind:          ElementKindFunction,
		Name:          "f",
		QualifiedName: "f",
		FilePath:      "a.py",
	}}
	g := NewBuilder(dir).Build("repo", elements)

	mod := g.Node(ModuleID("a.py"))
	if mod == nil {
		t.Fatal("module node missing")
	}
	if mod.StartLine != 1 {
		t.Errorf("module start line = %d, want 1", mod.StartLine)
	}
	if mod.EndLine != 4 {
		t.Errorf("module end line = %d, want 4", mod.EndLine)
	}
	if mod.Name != "a" {
		t.Errorf("module name = %q, want %q", mod.Name, "a")
	}
}

func TestBuildUnreadableFileZeroLines(t *testing.T) {
	elements := []ParsedElement{{
		Kind:          ElementKindFunction,
		Name:          "f",
		QualifiedName: "f",
		FilePath:      "missing.py",
	}}
	g := NewBuilder(t.TempDir()).Build("repo", elements)

	mod := g.Node(ModuleID("missing.py"))
	if mod == nil {
		t.Fatal("module node missing")
	}
	if mod.EndLine != 0 {
		t.Errorf("module end line = %d, want 0 for unreadable file", mod.EndLine)
	}
}

func TestBuildRedefinedElementSingleContainsEdge(t *testing.T) {
	// The same function redefined in one file: one node, one module
	// containment edge.
	el := ParsedElement{
		Kind:          ElementKindFunction,
		Name:          "f",
		QualifiedName: "f",
		FilePath:      "a.py",
		StartLine:     1,
		EndLine:       2,
	}
	redef := el
	redef.StartLine, redef.EndLine = 4, 5
	g := NewBuilder("").Build("repo", []ParsedElement{el, redef})

	contains := 0
	for _, e := range g.Edges() {
		if e.Type == EdgeTypeContains {
			contains++
		}
	}
	if contains != 1 {
		t.Errorf("contains edges = %d, want 1 after dedup", contains)
	}
}

func TestBuildRedefinedMethodSingleScopeEdge(t *testing.T) {
	cls := ParsedElement{
		Kind: ElementKindClass, Name: "C", QualifiedName: "C", FilePath: "a.py",
	}
	meth := ParsedElement{
		Kind: ElementKindMethod, Name: "m", QualifiedName: "C.m",
		FilePath: "a.py", EnclosingScope: "C",
	}
	g := NewBuilder("").Build("repo", []ParsedElement{cls, meth, meth})

	classID := NodeID("a.py", "C")
	methodID := NodeID("a.py", "C.m")
	scopeEdges := 0
	for _, e := range g.Edges() {
		if e.Type == EdgeTypeContains && e.Source == classID && e.Target == methodID {
			scopeEdges++
		}
	}
	if scopeEdges != 1 {
		t.Errorf("scope contains edges = %d, want 1 after dedup", scopeEdges)
	}
}
