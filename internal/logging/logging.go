// Package logging builds the file-backed zap logger shared by the whole
// program. The TUI owns the terminal, so log output goes to a file under the
// config directory instead of stderr.
package logging

import (
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const fileName = "deepseek-engineer.log"

// New builds a logger writing to dir/deepseek-engineer.log. When debug is
// set the level drops to Debug.
func New(dir string, debug bool) (*zap.Logger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}

	config := zap.NewProductionConfig()
	config.OutputPaths = []string{filepath.Join(dir, fileName)}
	config.ErrorOutputPaths = config.OutputPaths
	if debug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return config.Build()
}
