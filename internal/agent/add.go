package agent

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/fitchmultz/deepseek-engineer/internal/workspace"
)

// AddReport summarizes an explicit context addition.
type AddReport struct {
	Added   []string
	Skipped []string
}

// AddPath loads a file, or every eligible file under a directory, into the
// conversation context. Already-present files get their content refreshed.
func (e *Engine) AddPath(path string) (AddReport, error) {
	resolved, err := e.sandbox.Resolve(path)
	if err != nil {
		return AddReport{}, err
	}
	info, err := os.Stat(resolved)
	if err != nil {
		return AddReport{}, err
	}

	if info.IsDir() {
		return e.addDirectory(resolved)
	}

	b, err := os.ReadFile(resolved)
	if err != nil {
		return AddReport{}, err
	}
	e.convo.ReplaceFileContent(resolved, string(b))
	e.log.Info("added file to context", zap.String("path", resolved), zap.Int("bytes", len(b)))
	return AddReport{Added: []string{resolved}}, nil
}

func (e *Engine) addDirectory(dir string) (AddReport, error) {
	result, err := e.ingester.Scan(dir, workspace.DefaultScanLimits())
	if err != nil {
		return AddReport{}, err
	}
	report := AddReport{Skipped: result.Skipped}
	for _, f := range result.Included {
		e.convo.ReplaceFileContent(f.Path, f.Content)
		report.Added = append(report.Added, f.Path)
	}
	if len(report.Added) == 0 {
		return report, fmt.Errorf("no readable text files under %s", dir)
	}
	return report, nil
}
