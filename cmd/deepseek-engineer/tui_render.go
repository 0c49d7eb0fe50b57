package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/fitchmultz/deepseek-engineer/internal/agent"
	"github.com/fitchmultz/deepseek-engineer/internal/diffview"
)

const previewDiffLines = 40

func renderHistoryLine(h historyEntry, viewportWidth int, actionStyle, secondaryStyle lipgloss.Style, choiceActive bool, choiceIndex int, md *glamour.TermRenderer) string {
	w := viewportWidth
	if w <= 0 {
		w = 80
	}
	contentWidth := previewWidth(w)
	bubbleStyle := lipgloss.NewStyle().Width(contentWidth).Align(lipgloss.Left)
	if h.bold {
		bubbleStyle = bubbleStyle.Bold(true)
	}
	lineStyle := lipgloss.NewStyle().Width(w).Align(lipgloss.Left)

	switch h.kind {
	case "user":
		bubble := bubbleStyle.Render("> " + h.text)
		return lineStyle.Render(secondaryStyle.Render(bubble))
	case "reasoning":
		bubble := bubbleStyle.Render(h.text)
		return lineStyle.Render(secondaryStyle.Render(bubble))
	case "action":
		bubble := bubbleStyle.Render(h.text)
		return lineStyle.Render(actionStyle.Render(bubble))
	case "raw":
		bubble := bubbleStyle.Render(h.text)
		return lineStyle.Render(secondaryStyle.Render(bubble))
	case "preview":
		boxed := bubbleStyle.
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorSecondary)).
			Padding(0, 1).
			Render(h.text)
		return lineStyle.Render(boxed)
	case "choice":
		question := bubbleStyle.Render(h.text)
		buttons := renderChoiceButtons(h.options, contentWidth, choiceActive, choiceIndex)
		return lineStyle.Render(question + "\n" + buttons)
	default:
		bubble := bubbleStyle.Render(renderMarkdown(h.text, md))
		return lineStyle.Render(bubble)
	}
}

// renderChangePreview lists proposed creates and shows a colored diff for
// each proposed edit.
func renderChangePreview(res agent.TurnResult, width int) string {
	header := lipgloss.NewStyle().Bold(true)
	var b strings.Builder

	if len(res.Creates) > 0 {
		b.WriteString(header.Render("Files to create") + "\n")
		for _, c := range res.Creates {
			b.WriteString(fmt.Sprintf("  %s (%d bytes)\n", c.Path, len(c.Content)))
		}
	}
	if len(res.Edits) > 0 {
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(header.Render("Files to edit") + "\n")
		for _, e := range res.Edits {
			b.WriteString("  " + e.Path + "\n")
			b.WriteString(indent(diffview.Render(e.OriginalSnippet, e.NewSnippet, previewDiffLines), "    "))
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func indent(s, prefix string) string {
	lines := strings.Split(strings.TrimRight(s, "\n"), "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n") + "\n"
}

func renderChoiceButtons(options []string, width int, active bool, selected int) string {
	if len(options) == 0 {
		return ""
	}
	border := lipgloss.NewStyle().Border(lipgloss.RoundedBorder())
	var lines []string
	for i, opt := range options {
		style := border.Foreground(lipgloss.Color(colorSecondary)).Padding(0, 1)
		if active && i == selected {
			style = border.Foreground(lipgloss.Color(colorAccent)).Bold(true).Padding(0, 1)
		}
		lines = append(lines, style.Render(opt))
	}
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Left).Render(strings.Join(lines, "\n"))
}

func renderSuggestions(items []commandItem, index int) []string {
	if len(items) == 0 {
		return nil
	}
	index = clamp(index, 0, len(items)-1)
	var out []string
	for i, it := range items {
		line := fmt.Sprintf("%s  %s", it.cmd, it.desc)
		if i == index {
			line = lipgloss.NewStyle().Bold(true).Render(line)
		}
		out = append(out, line)
	}
	return out
}

func renderDivider(width int) string {
	if width <= 0 {
		width = 80
	}
	return strings.Repeat("─", width)
}

func renderMarkdown(text string, r *glamour.TermRenderer) string {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" || r == nil {
		return text
	}
	out, err := r.Render(text)
	if err != nil {
		return text
	}
	return strings.TrimRight(out, "\n")
}

func newMarkdownRenderer(width int) *glamour.TermRenderer {
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath("ascii"),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil
	}
	return r
}

func previewWidth(viewportWidth int) int {
	w := int(float64(viewportWidth) * 0.8)
	if w < 20 {
		w = viewportWidth
	}
	if w <= 0 {
		w = 80
	}
	return w
}
