package workspace

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// MaxWriteBytes is the ceiling for a single file write.
const MaxWriteBytes = 5_000_000

type WriteStatus int

const (
	StatusApplied WriteStatus = iota
	StatusSkipped
)

type WriteResult struct {
	Path   string
	Status WriteStatus
	Bytes  int
}

// ConfirmFunc asks an external collaborator for a yes/no decision before a
// gated write. A false return is a safe decline, not an error.
type ConfirmFunc func(prompt string) bool

type Writer struct {
	sandbox *Sandbox
	confirm ConfirmFunc
	log     *zap.Logger
}

func NewWriter(sandbox *Sandbox, confirm ConfirmFunc, log *zap.Logger) *Writer {
	if log == nil {
		log = zap.NewNop()
	}
	return &Writer{sandbox: sandbox, confirm: confirm, log: log}
}

// Write creates or fully replaces the file at path. With requireConfirmation
// set, the write is gated on the injected confirm callback; a decline (or a
// missing callback) yields StatusSkipped and no mutation. The content lands
// atomically: a temp file in the target directory renamed over the target, so
// readers never observe a partial write.
func (w *Writer) Write(path, content string, requireConfirmation bool) (WriteResult, error) {
	resolved, err := w.sandbox.Resolve(path)
	if err != nil {
		return WriteResult{}, err
	}
	if len(content) > MaxWriteBytes {
		return WriteResult{}, fmt.Errorf("%w: %d bytes (limit %d)", ErrContentTooLarge, len(content), MaxWriteBytes)
	}

	if requireConfirmation {
		if w.confirm == nil || !w.confirm(fmt.Sprintf("Create/overwrite file at '%s'? (y/n)", resolved)) {
			w.log.Info("write skipped", zap.String("path", resolved))
			return WriteResult{Path: resolved, Status: StatusSkipped}, nil
		}
	}

	if err := os.MkdirAll(filepath.Dir(resolved), 0755); err != nil {
		return WriteResult{}, err
	}
	if err := writeAtomic(resolved, []byte(content)); err != nil {
		return WriteResult{}, err
	}
	w.log.Info("file written", zap.String("path", resolved), zap.Int("bytes", len(content)))
	return WriteResult{Path: resolved, Status: StatusApplied, Bytes: len(content)}, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".engineer-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Chmod(tmpName, 0644); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return err
	}
	return nil
}
