// Package diffview computes line diffs between snippet versions and renders
// them for terminal display.
package diffview

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sergi/go-diff/diffmatchpatch"
)

type LineKind int

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

type Line struct {
	Kind LineKind
	Text string
}

// Lines diffs before and after line by line.
func Lines(before, after string) []Line {
	dmp := diffmatchpatch.New()
	beforeChars, afterChars, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffMain(beforeChars, afterChars, false)
	diffs = dmp.DiffCharsToLines(diffs, lineArray)

	var out []Line
	for _, diff := range diffs {
		chunk := strings.Split(diff.Text, "\n")
		if len(chunk) > 0 && chunk[len(chunk)-1] == "" {
			chunk = chunk[:len(chunk)-1]
		}
		for _, text := range chunk {
			switch diff.Type {
			case diffmatchpatch.DiffEqual:
				out = append(out, Line{Kind: LineContext, Text: text})
			case diffmatchpatch.DiffDelete:
				out = append(out, Line{Kind: LineRemoved, Text: text})
			case diffmatchpatch.DiffInsert:
				out = append(out, Line{Kind: LineAdded, Text: text})
			}
		}
	}
	return out
}

var (
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("42"))
	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("203"))
	contextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Render produces a colored unified view of the diff between before and
// after, capped at maxLines diff lines. A trailing marker is added when the
// diff was truncated.
func Render(before, after string, maxLines int) string {
	lines := Lines(before, after)
	truncated := false
	if maxLines > 0 && len(lines) > maxLines {
		lines = lines[:maxLines]
		truncated = true
	}

	var b strings.Builder
	for _, line := range lines {
		switch line.Kind {
		case LineAdded:
			b.WriteString(addedStyle.Render("+ " + line.Text))
		case LineRemoved:
			b.WriteString(removedStyle.Render("- " + line.Text))
		default:
			b.WriteString(contextStyle.Render("  " + line.Text))
		}
		b.WriteString("\n")
	}
	if truncated {
		b.WriteString(contextStyle.Render("  …"))
		b.WriteString("\n")
	}
	return b.String()
}
