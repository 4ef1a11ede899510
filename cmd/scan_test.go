package cmd

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abhisek/whence/internal/lang"
	"github.com/abhisek/whence/internal/llm"
	"github.com/abhisek/whence/internal/score"
)

func writeTestFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestFileWeight(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.go")
	writeTestFile(t, path, "package sample\n\nfunc A() {}\n\n\nfunc B() {}\n")

	w, err := fileWeight(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if w != 3 {
		t.Fatalf("weight = %d, want 3 non-blank lines", w)
	}
}

func TestCollectTargets_LineToFunction(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.go"), "package p\nfunc A() {}\n")
	writeTestFile(t, filepath.Join(root, "sub", "b.go"), "package q\nfunc B() {}\n")
	writeTestFile(t, filepath.Join(root, "vendor", "dep.go"), "package v\n")
	writeTestFile(t, filepath.Join(root, "notes.md"), "not source\n")

	targets, err := collectTargets("line-to-function", []string{root}, lang.NewGo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2: %+v", len(targets), targets)
	}
	for _, tgt := range targets {
		if !strings.HasSuffix(tgt.Path, ".go") {
			t.Fatalf("non-source target %q", tgt.Path)
		}
		if strings.Contains(tgt.Path, "vendor") {
			t.Fatalf("vendored file collected: %q", tgt.Path)
		}
		if tgt.Weight != 2 {
			t.Fatalf("target %q weight = %d, want 2", tgt.Path, tgt.Weight)
		}
	}
}

func TestCollectTargets_SingleFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "only.go")
	writeTestFile(t, path, "package p\nfunc A() {}\n")

	targets, err := collectTargets("line-to-function", []string{path}, lang.NewGo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 1 || targets[0].Path != path {
		t.Fatalf("targets = %+v", targets)
	}
}

func TestCollectTargets_NameToFile(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a.go"), "package p\n")
	writeTestFile(t, filepath.Join(root, "pkg", "b.go"), "package q\nfunc B() {}\n")
	writeTestFile(t, filepath.Join(root, "empty", ".keep"), "")

	targets, err := collectTargets("name-to-file", []string{root}, lang.NewGo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// The root and pkg contain source; empty does not.
	if len(targets) != 2 {
		t.Fatalf("got %d targets, want 2: %+v", len(targets), targets)
	}

	for _, tgt := range targets {
		if strings.HasSuffix(tgt.Path, "empty") {
			t.Fatalf("sourceless dir collected: %q", tgt.Path)
		}
	}
}

func TestCollectTargets_NameToFileRejectsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "a.go")
	writeTestFile(t, path, "package p\n")

	if _, err := collectTargets("name-to-file", []string{path}, lang.NewGo()); err == nil {
		t.Fatal("expected an error for a file argument")
	}
}

func TestCollectTargets_FileToFolder(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "a", "one.go"), "package a\nvar X = 1\n")
	writeTestFile(t, filepath.Join(root, "b", "two.go"), "package b\nvar Y = 2\n")

	targets, err := collectTargets("file-to-folder", []string{root}, lang.NewGo())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}
	if targets[0].Weight != 4 {
		t.Fatalf("weight = %d, want 4", targets[0].Weight)
	}
}

func TestLabelDir_ModulePath(t *testing.T) {
	root := t.TempDir()
	writeTestFile(t, filepath.Join(root, "go.mod"), "module example.com/demo\n\ngo 1.24\n")

	label := labelDir(root)
	if !strings.Contains(label, "example.com/demo") {
		t.Fatalf("label = %q, want module path included", label)
	}

	plain := t.TempDir()
	if got := labelDir(plain); got != plain {
		t.Fatalf("label = %q, want %q", got, plain)
	}
}

func TestBuildCheck(t *testing.T) {
	g := lang.NewGo()
	for _, name := range []string{"line-to-function", "name-to-file", "file-to-folder"} {
		chk, err := buildCheck(name, g)
		if err != nil {
			t.Fatalf("buildCheck(%q): %v", name, err)
		}
		if chk.Name() != name {
			t.Fatalf("check name = %q, want %q", chk.Name(), name)
		}
	}
	if _, err := buildCheck("bogus", g); err == nil {
		t.Fatal("expected an error for an unknown check")
	}
}

// TestScanPipeline_LineToFunction drives a collected target through the
// same path runScan takes: collectTargets, buildCheck, then score.Score
// against a canned backend. Line-to-function targets are file paths, and
// the check has to read them itself.
func TestScanPipeline_LineToFunction(t *testing.T) {
	dir := t.TempDir()
	writeTestFile(t, filepath.Join(dir, "greeter.go"), `package sample

func Greet(name string) string {
	msg := "hello, " + name
	return msg
}

func Shout(name string) string {
	upper := strings.ToUpper(name)
	return upper + "!"
}
`)

	g := lang.NewGo()
	targets, err := collectTargets("line-to-function", []string{dir}, g)
	if err != nil {
		t.Fatalf("collectTargets: %v", err)
	}
	if len(targets) != 1 {
		t.Fatalf("got %d targets, want 1", len(targets))
	}

	chk, err := buildCheck("line-to-function", g)
	if err != nil {
		t.Fatalf("buildCheck: %v", err)
	}

	// Four statements; guessing Greet every time is right for two of them.
	backend := llm.NewMockBackend(
		llm.MockCompletion{Text: `{"guess": "Greet", "confidence": 0.9}`},
		llm.MockCompletion{Text: `{"guess": "Greet", "confidence": 0.9}`},
		llm.MockCompletion{Text: `{"guess": "Greet", "confidence": 0.9}`},
		llm.MockCompletion{Text: `{"guess": "Greet", "confidence": 0.9}`},
	)

	res, err := score.Score(context.Background(), chk, backend, targets[0].Path,
		score.Options{Workers: 1, Seed: 7})
	if err != nil {
		t.Fatalf("Score: %v", err)
	}
	if res.Total() != 4 {
		t.Fatalf("total = %d, want 4", res.Total())
	}
	if res.Failed != 0 {
		t.Fatalf("failed = %d, want 0", res.Failed)
	}
	if res.RawScore != 0.5 {
		t.Fatalf("raw score = %v, want 0.5", res.RawScore)
	}
	if res.AdjustedScore != 0 {
		t.Fatalf("adjusted score = %v, want 0", res.AdjustedScore)
	}
}
