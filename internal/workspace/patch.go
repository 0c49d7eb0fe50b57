package workspace

import "strings"

// ApplySnippet replaces the single occurrence of original in content with
// replacement, preserving all surrounding bytes. It is a pure function; the
// enclosing flow is read file, apply, write file, so a failure here leaves
// the file byte-for-byte unchanged.
func ApplySnippet(content, original, replacement string) (string, error) {
	if original == "" {
		return "", ErrSnippetNotFound
	}
	switch n := strings.Count(content, original); n {
	case 0:
		return "", ErrSnippetNotFound
	case 1:
		return strings.Replace(content, original, replacement, 1), nil
	default:
		return "", &AmbiguousSnippetError{Occurrences: n}
	}
}

// SnippetExcerpt returns up to max bytes of content for failure diagnostics.
func SnippetExcerpt(content string, max int) string {
	if max <= 0 || len(content) <= max {
		return content
	}
	return content[:max] + "…"
}
