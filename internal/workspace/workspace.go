// Package workspace manages the temporary directory owned by a single
// pipeline run. Intermediate artifacts live here and the whole tree is
// removed on every exit path, success or failure.
package workspace

import (
	"os"
	"path/filepath"
)

type Workspace struct {
	root string
}

// New creates a run-scoped temporary directory. The caller must Close it,
// typically via defer, so teardown happens on every exit path.
func New(runID string) (*Workspace, error) {
	root, err := os.MkdirTemp("", "albumarc-"+runID+"-")
	if err != nil {
		return nil, err
	}
	return &Workspace{root: root}, nil
}

// Root returns the workspace directory.
func (w *Workspace) Root() string {
	return w.root
}

// Path returns the location of a named intermediate file.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.root, name)
}

// WriteFile stores an intermediate artifact and returns its path.
func (w *Workspace) WriteFile(name string, data []byte) (string, error) {
	path := w.Path(name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

// Close removes the workspace recursively.
func (w *Workspace) Close() error {
	return os.RemoveAll(w.root)
}
