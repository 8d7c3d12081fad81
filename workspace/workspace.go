// Package workspace creates and guarantees teardown of the per-submission
// artifact directory the Compiler writes into and the Process Supervisor
// runs the child process from.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Workspace is a unique, on-disk directory scoped to one judge() call.
// Grounded on judging-service/sandbox.BaseSandbox.createWorkspace, but
// unlike the original source (fixed CWD names, §9 of the spec), every
// submission gets its own uuid-named directory so concurrent judges
// never collide.
type Workspace struct {
	Dir string
}

// New creates a fresh workspace directory under root.
func New(root string) (*Workspace, error) {
	dir := filepath.Join(root, uuid.New().String())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create workspace directory: %w", err)
	}
	return &Workspace{Dir: dir}, nil
}

// Path joins name onto the workspace directory.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.Dir, name)
}

// Close removes the workspace directory and everything under it.
// Deletion failures are swallowed: the workspace's contract is
// "eventually clean", not "atomically clean" (spec.md §4.6).
func (w *Workspace) Close() {
	_ = os.RemoveAll(w.Dir)
}
