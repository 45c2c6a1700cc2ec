package fileutil

import (
	"os"
	"path/filepath"
	"testing"
)

func TestWorkspaceLifecycle(t *testing.T) {
	base := t.TempDir()
	ws, err := NewWorkspace(base, "run-abc")
	if err != nil {
		t.Fatal(err)
	}

	if ws.Root() != filepath.Join(base, "run-abc") {
		t.Fatalf("unexpected root: %q", ws.Root())
	}

	inner := ws.Path("report.txt")
	if err := os.WriteFile(inner, []byte("data"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := ws.Close(); err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(filepath.Join(base, "run-abc")); !os.IsNotExist(err) {
		t.Fatalf("expected workspace removed, stat err=%v", err)
	}
}

func TestWorkspaceCloseIsIdempotent(t *testing.T) {
	ws, err := NewWorkspace(t.TempDir(), "run-x")
	if err != nil {
		t.Fatal(err)
	}
	if err := ws.Close(); err != nil {
		t.Fatal(err)
	}
	if err := ws.Close(); err != nil {
		t.Fatalf("second close should be a no-op, got %v", err)
	}
}

func TestNewWorkspaceRejectsEmptyArgs(t *testing.T) {
	if _, err := NewWorkspace("", "id"); err == nil {
		t.Fatal("expected error for empty base")
	}
	if _, err := NewWorkspace(t.TempDir(), " "); err == nil {
		t.Fatal("expected error for empty id")
	}
}
