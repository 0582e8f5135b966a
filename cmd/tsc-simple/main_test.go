package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fictitious/tsc-simple/internal/writecache"
)

func TestWriteOutput_CreatesNestedDirectories(t *testing.T) {
	dir := t.TempDir()
	cache := writecache.New()

	if err := writeOutput(dir, "nested/deep/out.js", "var x = 1;\n", cache); err != nil {
		t.Fatalf("writeOutput: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "nested", "deep", "out.js"))
	if err != nil {
		t.Fatalf("reading output: %v", err)
	}
	if string(data) != "var x = 1;\n" {
		t.Errorf("output = %q, want %q", data, "var x = 1;\n")
	}
}

func TestWriteOutput_SkipsUnchangedRewrite(t *testing.T) {
	dir := t.TempDir()
	cache := writecache.New()

	if err := writeOutput(dir, "out.js", "var x = 1;\n", cache); err != nil {
		t.Fatalf("first write: %v", err)
	}
	path := filepath.Join(dir, "out.js")
	fi1, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}

	if err := writeOutput(dir, "out.js", "var x = 1;\n", cache); err != nil {
		t.Fatalf("second write: %v", err)
	}
	fi2, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if !fi1.ModTime().Equal(fi2.ModTime()) {
		t.Error("unchanged rewrite should not touch the file")
	}
}

func TestWriteOutput_RejectsParentTraversal(t *testing.T) {
	dir := t.TempDir()
	cache := writecache.New()

	err := writeOutput(dir, "../escape.js", "var x = 1;\n", cache)
	if err == nil {
		t.Fatal("expected an error for a name escaping the output directory")
	}
	if !strings.Contains(err.Error(), "refusing to write") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestReadSource_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.ts")
	if err := os.WriteFile(path, []byte("let x = 1\n"), 0644); err != nil {
		t.Fatal(err)
	}

	got, err := readSource(path)
	if err != nil {
		t.Fatalf("readSource: %v", err)
	}
	if got != "let x = 1\n" {
		t.Errorf("readSource = %q, want %q", got, "let x = 1\n")
	}
}
