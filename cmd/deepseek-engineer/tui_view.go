package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m tuiModel) View() string {
	header := lipgloss.NewStyle().Bold(true).Render(asciiHeader())
	statusBar := lipgloss.NewStyle().Width(m.width).Render(renderStatusBar(m))

	inputLabel := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary)).Render("You (Enter to send)")
	inputBox := lipgloss.NewStyle().Width(m.width).Render(m.input.View())

	suggestions := ""
	items := currentSuggestions(m)
	if len(items) > 0 {
		lines := renderSuggestions(items, m.suggestIndex)
		suggestions = lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary)).Render(strings.Join(lines, "\n"))
	}

	var b strings.Builder
	b.WriteString(header + "\n\n")
	b.WriteString(m.viewport.View() + "\n\n")
	b.WriteString(renderDivider(m.width) + "\n")
	b.WriteString(inputLabel + "\n")
	b.WriteString(inputBox + "\n\n")
	if suggestions != "" {
		b.WriteString(suggestions + "\n\n")
	}
	b.WriteString(statusBar)

	return b.String()
}

func asciiHeader() string {
	return "\n" +
		" ________  _______   _______   ________  ________  _______   _______   ___  __       \n" +
		"|\\   ___ \\|\\  ___ \\ |\\  ___ \\ |\\   __  \\|\\   ____\\|\\  ___ \\ |\\  ___ \\ |\\  \\|\\  \\     \n" +
		"\\ \\  \\_|\\ \\ \\   __/|\\ \\   __/|\\ \\  \\|\\  \\ \\  \\___|\\ \\   __/|\\ \\   __/|\\ \\  \\/  /|_   \n" +
		" \\ \\  \\ \\\\ \\ \\  \\_|/_\\ \\  \\_|/_\\ \\   ____\\ \\_____  \\ \\  \\_|/_\\ \\  \\_|/_\\ \\   ___  \\  \n" +
		"  \\ \\  \\_\\\\ \\ \\  \\_|\\ \\ \\  \\_|\\ \\ \\  \\___|\\|____|\\  \\ \\  \\_|\\ \\ \\  \\_|\\ \\ \\  \\\\ \\  \\ \n" +
		"   \\ \\_______\\ \\_______\\ \\_______\\ \\__\\     ____\\_\\  \\ \\_______\\ \\_______\\ \\__\\\\ \\__\\\n" +
		"    \\|_______|\\|_______|\\|_______|\\|__|    |\\_________\\|_______|\\|_______|\\|__| \\|__|\n" +
		"                                           \\|_________|          engineer            \n"
}

func renderStatusBar(m tuiModel) string {
	activity := m.status
	if strings.TrimSpace(activity) == "" {
		activity = "Ready"
	}
	if m.err != nil {
		activity = "Error"
	}

	stats := m.eng.Stats()
	detail := fmt.Sprintf("%s | %s | %d msgs | %d files in context",
		activity, m.eng.Model(), stats.Total, stats.FileContents)

	style := lipgloss.NewStyle().Foreground(lipgloss.Color(colorSecondary))
	if activity != "Ready" {
		style = style.Bold(true)
	}
	return style.Render(detail)
}
