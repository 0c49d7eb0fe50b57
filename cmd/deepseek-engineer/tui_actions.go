package main

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m *tuiModel) appendAction(text string) {
	m.history = append(m.history, historyEntry{text: text, kind: "action"})
	m.refreshViewport()
}

func (m *tuiModel) appendUser(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	m.history = append(m.history, historyEntry{text: text, kind: "user"})
	m.refreshViewport()
}

func (m *tuiModel) appendAssistant(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	m.history = append(m.history, historyEntry{text: text, kind: "assistant"})
	m.refreshViewport()
}

func (m *tuiModel) appendRaw(text string) {
	if strings.TrimSpace(text) == "" {
		return
	}
	m.history = append(m.history, historyEntry{text: text, kind: "raw"})
	m.refreshViewport()
}

func (m *tuiModel) appendPreview(text string) {
	m.history = append(m.history, historyEntry{text: text, kind: "preview"})
	m.refreshViewport()
}

func (m *tuiModel) appendChoice(question string, options []string) {
	m.choiceActive = true
	m.choiceIndex = 0
	m.history = append(m.history, historyEntry{text: question, kind: "choice", options: options, bold: true})
	m.refreshViewport()
}

// appendReasoning grows the in-flight reasoning entry, creating it on the
// first delta.
func (m *tuiModel) appendReasoning(delta string) {
	if delta == "" {
		return
	}
	if len(m.history) > 0 && m.history[len(m.history)-1].kind == "reasoning" {
		m.history[len(m.history)-1].text += delta
	} else {
		m.history = append(m.history, historyEntry{text: delta, kind: "reasoning"})
	}
	m.refreshViewport()
}

func (m *tuiModel) clearReasoning() {
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].kind == "reasoning" {
			m.history = append(m.history[:i], m.history[i+1:]...)
			break
		}
	}
	m.refreshViewport()
}

func (m *tuiModel) refreshViewport() {
	var b strings.Builder
	actionStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary))
	secondaryStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary))
	first := true
	for _, h := range m.history {
		if !first {
			b.WriteString("\n\n")
		}
		first = false
		b.WriteString(renderHistoryLine(h, m.viewport.Width, actionStyle, secondaryStyle, m.choiceActive, m.choiceIndex, m.mdRenderer))
	}
	m.viewport.SetContent(b.String())
	m.viewport.GotoBottom()
}

func (m *tuiModel) updateMarkdownRenderer() {
	contentWidth := previewWidth(m.viewport.Width)
	if m.mdRenderer != nil && m.mdWidth == contentWidth {
		return
	}
	m.mdWidth = contentWidth
	m.mdRenderer = newMarkdownRenderer(contentWidth)
}
