package main

import (
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, contents string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "program.rpal")
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("unable to write temp source file: %s", err)
	}
	return path
}

func TestHandlerRunsToSuccess(t *testing.T) {
	input := writeTemp(t, "let x = 5 in x + 3")
	status := Handler([]string{input}, map[string]string{})
	if status != 0 {
		t.Fatalf("got exit status %d, want 0", status)
	}
}

func TestHandlerReportsParseError(t *testing.T) {
	input := writeTemp(t, "let let let")
	status := Handler([]string{input}, map[string]string{})
	if status != 1 {
		t.Fatalf("got exit status %d, want 1", status)
	}
}

func TestHandlerReportsMissingFile(t *testing.T) {
	status := Handler([]string{"/no/such/file.rpal"}, map[string]string{})
	if status != 1 {
		t.Fatalf("got exit status %d, want 1", status)
	}
}

func TestHandlerAstFlagShortCircuits(t *testing.T) {
	input := writeTemp(t, "let x = 5 in x")
	status := Handler([]string{input}, map[string]string{"ast": "true"})
	if status != 0 {
		t.Fatalf("got exit status %d, want 0", status)
	}
}

func TestHandlerSastFlagShortCircuits(t *testing.T) {
	input := writeTemp(t, "let x = 5 in x")
	status := Handler([]string{input}, map[string]string{"sast": "true"})
	if status != 0 {
		t.Fatalf("got exit status %d, want 0", status)
	}
}

func TestHandlerRejectsMissingArgs(t *testing.T) {
	status := Handler([]string{}, map[string]string{})
	if status != 1 {
		t.Fatalf("got exit status %d, want 1", status)
	}
}
