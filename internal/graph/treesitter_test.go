package graph

import (
	"context"
	"testing"
)

func findElement(els []ParsedElement, kind ElementKind, qualifiedName string) *ParsedElement {
	for i := range els {
		if els[i].Kind == kind && els[i].QualifiedName == qualifiedName {
			return &els[i]
		}
	}
	return nil
}

func TestParsePython(t *testing.T) {
	source := []byte(`"""Module doc."""
import os


class Greeter:
    """Says hello."""

    def greet(self, name):
        """Greet someone."""
        return "hello " + name


def main():
    g = Greeter()
    return g.greet("world")
`)

	p := NewTreeSitterParser()
	defer p.Close()

	els, err := p.Parse(context.Background(), "app.py", source, LangPython)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	cls := findElement(els, ElementKindClass, "Greeter")
	if cls == nil {
		t.Fatal("class Greeter not extracted")
	}
	if cls.Docstring != "Says hello." {
		t.Errorf("class docstring = %q", cls.Docstring)
	}
	if cls.FilePath != "app.py" {
		t.Errorf("file path = %q", cls.FilePath)
	}

	method := findElement(els, ElementKindMethod, "Greeter.greet")
	if method == nil {
		t.Fatal("method Greeter.greet not extracted")
	}
	if method.Name != "greet" {
		t.Errorf("method name = %q", method.Name)
	}
	if method.EnclosingScope != "Greeter" {
		t.Errorf("method scope = %q", method.EnclosingScope)
	}
	if method.Docstring != "Greet someone." {
		t.Errorf("method docstring = %q", method.Docstring)
	}

	fn := findElement(els, ElementKindFunction, "main")
	if fn == nil {
		t.Fatal("function main not extracted")
	}
	if fn.StartLine <= method.StartLine {
		t.Errorf("main start line %d not after greet %d", fn.StartLine, method.StartLine)
	}
	if fn.Signature != "def main():" {
		t.Errorf("main signature = %q", fn.Signature)
	}

	imp := findElement(els, ElementKindImport, "os")
	if imp == nil {
		t.Fatal("import os not extracted")
	}
	if imp.Signature != "import os" {
		t.Errorf("import signature = %q", imp.Signature)
	}
}

func TestParseGo(t *testing.T) {
	source := []byte(`package demo

import "fmt"

type Greeter struct {
	Name string
}

func (g Greeter) Greet() string {
	return fmt.Sprintf("hi %s", g.Name)
}

func Run() string {
	g := Greeter{Name: "world"}
	return g.Greet()
}

var Version = "1.0"
`)

	p := NewTreeSitterParser()
	defer p.Close()

	els, err := p.Parse(context.Background(), "demo.go", source, LangGo)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if findElement(els, ElementKindClass, "Greeter") == nil {
		t.Error("type Greeter not extracted")
	}
	if findElement(els, ElementKindMethod, "Greet") == nil {
		t.Error("method Greet not extracted")
	}
	if findElement(els, ElementKindFunction, "Run") == nil {
		t.Error("function Run not extracted")
	}
	if imp := findElement(els, ElementKindImport, "fmt"); imp == nil {
		t.Error("import fmt not extracted")
	}
	if v := findElement(els, ElementKindVariable, "Version"); v == nil {
		t.Error("top-level var Version not extracted")
	}
}

func TestParseTypeScript(t *testing.T) {
	source := []byte(`import { readFile } from "fs";

class Loader {
  load(path: string): string {
    return read(path);
  }
}

function read(path: string): string {
  return path;
}
`)

	p := NewTreeSitterParser()
	defer p.Close()

	els, err := p.Parse(context.Background(), "loader.ts", source, LangTypeScript)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if findElement(els, ElementKindClass, "Loader") == nil {
		t.Error("class Loader not extracted")
	}
	if m := findElement(els, ElementKindMethod, "Loader.load"); m == nil {
		t.Error("method Loader.load not extracted")
	}
	if findElement(els, ElementKindFunction, "read") == nil {
		t.Error("function read not extracted")
	}
	if findElement(els, ElementKindImport, "fs") == nil {
		t.Error("import not extracted")
	}
}

func TestParseRust(t *testing.T) {
	source := []byte(`use std::fmt;

pub struct Greeter {
    name: String,
}

impl Greeter {
    pub fn greet(&self) -> String {
        format!("hi {}", self.name)
    }
}

pub fn run() -> String {
    String::new()
}

const LIMIT: usize = 10;
`)

	p := NewTreeSitterParser()
	defer p.Close()

	els, err := p.Parse(context.Background(), "lib.rs", source, LangRust)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	if findElement(els, ElementKindClass, "Greeter") == nil {
		t.Error("struct Greeter not extracted")
	}
	if m := findElement(els, ElementKindMethod, "Greeter.greet"); m == nil {
		t.Error("method Greeter.greet not extracted")
	}
	if findElement(els, ElementKindFunction, "run") == nil {
		t.Error("function run not extracted")
	}
	if findElement(els, ElementKindVariable, "LIMIT") == nil {
		t.Error("const LIMIT not extracted")
	}
}

func TestParseUnsupportedLanguage(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	if _, err := p.Parse(context.Background(), "x.rb", []byte("puts 1"), Language("ruby")); err == nil {
		t.Error("unsupported language did not error")
	}
}

func TestSupportedLanguages(t *testing.T) {
	p := NewTreeSitterParser()
	defer p.Close()

	langs := p.SupportedLanguages()
	if len(langs) != 4 {
		t.Errorf("supported languages = %d, want 4", len(langs))
	}
}
