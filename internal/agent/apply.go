package agent

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/fitchmultz/deepseek-engineer/internal/llm"
	"github.com/fitchmultz/deepseek-engineer/internal/workspace"
)

// Outcome records the result of applying one proposed file operation.
type Outcome struct {
	Path    string
	Applied bool
	Detail  string
	Err     error
}

// ApplyCreates writes each proposed file. A declined confirmation is a skip,
// not an error; other failures are recorded per item and do not stop the
// batch.
func (e *Engine) ApplyCreates(creates []llm.FileToCreate, requireConfirmation bool) []Outcome {
	outcomes := make([]Outcome, 0, len(creates))
	for _, c := range creates {
		res, err := e.writer.Write(c.Path, c.Content, requireConfirmation)
		switch {
		case err != nil:
			e.log.Warn("create failed", zap.String("path", c.Path), zap.Error(err))
			outcomes = append(outcomes, Outcome{Path: c.Path, Err: err})
		case res.Status == workspace.StatusSkipped:
			outcomes = append(outcomes, Outcome{Path: res.Path, Detail: "declined"})
		default:
			e.convo.RecordCreate(res.Path, c.Content)
			outcomes = append(outcomes, Outcome{Path: res.Path, Applied: true, Detail: fmt.Sprintf("%d bytes", res.Bytes)})
		}
	}
	return outcomes
}

// ApplyEdits applies each snippet replacement against the file's current
// on-disk content.
func (e *Engine) ApplyEdits(edits []llm.FileToEdit, requireConfirmation bool) []Outcome {
	outcomes := make([]Outcome, 0, len(edits))
	for _, edit := range edits {
		outcomes = append(outcomes, e.applyEdit(edit, requireConfirmation))
	}
	return outcomes
}

func (e *Engine) applyEdit(edit llm.FileToEdit, requireConfirmation bool) Outcome {
	resolved, err := e.sandbox.Resolve(edit.Path)
	if err != nil {
		return Outcome{Path: edit.Path, Err: err}
	}
	b, err := os.ReadFile(resolved)
	if err != nil {
		return Outcome{Path: resolved, Err: err}
	}

	updated, err := workspace.ApplySnippet(string(b), edit.OriginalSnippet, edit.NewSnippet)
	if err != nil {
		detail := ""
		var ambiguous *workspace.AmbiguousSnippetError
		switch {
		case errors.As(err, &ambiguous):
			detail = fmt.Sprintf("snippet %q matches %d locations", workspace.SnippetExcerpt(edit.OriginalSnippet, 50), ambiguous.Occurrences)
		case errors.Is(err, workspace.ErrSnippetNotFound):
			detail = fmt.Sprintf("snippet %q not found", workspace.SnippetExcerpt(edit.OriginalSnippet, 50))
		}
		e.log.Warn("edit failed", zap.String("path", resolved), zap.Error(err))
		return Outcome{Path: resolved, Detail: detail, Err: err}
	}

	res, err := e.writer.Write(resolved, updated, requireConfirmation)
	if err != nil {
		return Outcome{Path: resolved, Err: err}
	}
	if res.Status == workspace.StatusSkipped {
		return Outcome{Path: res.Path, Detail: "declined"}
	}
	e.convo.RecordEdit(res.Path, updated)
	return Outcome{Path: res.Path, Applied: true}
}
