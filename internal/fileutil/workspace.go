package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Workspace is a scratch directory scoped to a single pipeline run. Close
// removes the directory and everything beneath it; it is safe to call on
// every exit path.
type Workspace struct {
	root string
}

// NewWorkspace creates base/id and returns the handle to it.
func NewWorkspace(base, id string) (*Workspace, error) {
	base = strings.TrimSpace(base)
	if base == "" {
		return nil, errors.New("workspace base directory required")
	}
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, errors.New("workspace id required")
	}
	root := filepath.Join(base, id)
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace directory path.
func (w *Workspace) Root() string {
	return w.root
}

// Path joins elements onto the workspace root.
func (w *Workspace) Path(elem ...string) string {
	parts := append([]string{w.root}, elem...)
	return filepath.Join(parts...)
}

// Close removes the workspace directory tree.
func (w *Workspace) Close() error {
	if w == nil || w.root == "" {
		return nil
	}
	err := os.RemoveAll(w.root)
	w.root = ""
	return err
}
