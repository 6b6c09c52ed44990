package graph

import "testing"

func TestNodeIDDeterministic(t *testing.T) {
	a := NodeID("app/main.py", "main")
	b := NodeID("app/main.py", "main")
	if a != b {
		t.Fatalf("NodeID not deterministic: %q vs %q", a, b)
	}
	if len(a) != 16 {
		t.Fatalf("NodeID length = %d, want 16", len(a))
	}
	for _, c := range a {
		if !((c >= '0' && c <= '9') || (c >= 'a' && c <= 'f')) {
			t.Fatalf("NodeID %q contains non-hex character %q", a, c)
		}
	}
}

func TestNodeIDVariesWithInputs(t *testing.T) {
	base := NodeID("app/main.py", "main")
	if NodeID("app/other.py", "main") == base {
		t.Error("NodeID unchanged when file path differs")
	}
	if NodeID("app/main.py", "other") == base {
		t.Error("NodeID unchanged when qualified name differs")
	}
}

func TestModuleID(t *testing.T) {
	a := ModuleID("app/main.py")
	if a != ModuleID("app/main.py") {
		t.Error("ModuleID not deterministic")
	}
	if len(a) != 16 {
		t.Errorf("ModuleID length = %d, want 16", len(a))
	}
	if a == ModuleID("app/other.py") {
		t.Error("ModuleID identical for distinct paths")
	}
}
