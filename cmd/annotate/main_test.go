package main

import (
	"os"
	"path/filepath"
	"testing"
)

// TestRunLatexLikeWritesPlaintext exercises the latex subcommand's RunE body
// directly (runLatexLike), the same way the teacher's own CLI test drives
// the tool end to end, but in-process since this build has no compiled
// binary to shell out to.
func TestRunLatexLikeWritesPlaintext(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.tex")
	if err := os.WriteFile(path, []byte(`Hello \textbf{world}.`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	strictMode = true
	langCode = "en"
	debugMode = false

	if err := runLatexLike(path, "latex"); err != nil {
		t.Fatalf("runLatexLike: %v", err)
	}
}

func TestRunLatexLikeMissingFile(t *testing.T) {
	if err := runLatexLike(filepath.Join(t.TempDir(), "missing.tex"), "latex"); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestNewLatexCmdRequiresExactlyOneArg(t *testing.T) {
	cmd := newLatexCmd()
	if err := cmd.Args(cmd, nil); err == nil {
		t.Error("expected an error when no file argument is given")
	}
	if err := cmd.Args(cmd, []string{"a.tex", "b.tex"}); err == nil {
		t.Error("expected an error when more than one file argument is given")
	}
}
