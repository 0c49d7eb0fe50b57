package workspace

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPath marks a path that escapes the workspace or is malformed.
	ErrInvalidPath = errors.New("invalid path")

	// ErrContentTooLarge marks a write payload above MaxWriteBytes.
	ErrContentTooLarge = errors.New("content exceeds size limit")

	// ErrSnippetNotFound marks an edit whose original snippet does not occur.
	ErrSnippetNotFound = errors.New("original snippet not found")
)

// AmbiguousSnippetError reports an edit whose original snippet occurs more
// than once. The patcher never guesses which occurrence was intended.
type AmbiguousSnippetError struct {
	Occurrences int
}

func (e *AmbiguousSnippetError) Error() string {
	return fmt.Sprintf("ambiguous edit: %d matches", e.Occurrences)
}
