// Package workspace manages the scoped temporary directory one conversion
// owns for its extracted frames and schedule description.
//
// Every workspace gets a unique identifier so concurrent conversions can
// never collide, and Release removes the whole tree without letting a
// cleanup failure override the pipeline's primary outcome.
package workspace

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"gif2webm/internal/logging"
)

// Workspace is a uniquely named temporary directory for one conversion.
type Workspace struct {
	dir    string
	logger *slog.Logger
}

// New creates a workspace under parent (the system temp directory when
// empty).
func New(parent string, logger *slog.Logger) (*Workspace, error) {
	if parent == "" {
		parent = os.TempDir()
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	dir := filepath.Join(parent, "gif2webm-"+uuid.NewString())
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create workspace: %w", err)
	}
	return &Workspace{dir: dir, logger: logger}, nil
}

// Dir returns the workspace root.
func (w *Workspace) Dir() string {
	return w.dir
}

// Path joins name onto the workspace root.
func (w *Workspace) Path(name string) string {
	return filepath.Join(w.dir, name)
}

// Release removes the workspace tree. Failures are logged as diagnostics and
// never propagated; the conversion outcome already in flight wins.
func (w *Workspace) Release() {
	if err := os.RemoveAll(w.dir); err != nil {
		w.logger.Warn("workspace cleanup failed", "dir", w.dir, logging.Error(err))
	}
}
