package main

import (
	"context"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/fitchmultz/deepseek-engineer/internal/llm"
	"github.com/fitchmultz/deepseek-engineer/internal/userconfig"
)

type commandItem struct {
	cmd  string
	desc string
}

func helpItems() []commandItem {
	return []commandItem{
		{cmd: "/add", desc: "Add a file or folder to the conversation"},
		{cmd: "/model", desc: "Show or set the model"},
		{cmd: "/retry", desc: "Retry the last prompt"},
		{cmd: "/context", desc: "Show conversation stats"},
		{cmd: "/help", desc: "Show commands"},
	}
}

func commandSuggestions(prefix string) []commandItem {
	all := helpItems()
	if prefix == "/" {
		return all
	}
	var out []commandItem
	for _, item := range all {
		if strings.HasPrefix(item.cmd, strings.Fields(prefix)[0]) {
			out = append(out, item)
		}
	}
	return out
}

func currentSuggestions(m tuiModel) []commandItem {
	val := strings.TrimSpace(m.input.Value())
	if strings.HasPrefix(val, "/") {
		return commandSuggestions(val)
	}
	return nil
}

func listenStream(ch <-chan streamMsg) tea.Cmd {
	return func() tea.Msg {
		msg, ok := <-ch
		if !ok {
			return streamMsg{done: true}
		}
		return msg
	}
}

func startTurn(m *tuiModel, prompt string) tea.Cmd {
	ch := make(chan streamMsg)
	ctx, cancel := context.WithCancel(context.Background())
	m.streamCh = ch
	m.cancelTurn = cancel
	m.running = true
	m.status = "Thinking..."
	eng := m.eng
	go func() {
		res, err := eng.Turn(ctx, prompt, func(d llm.Delta) {
			ch <- streamMsg{delta: d}
		})
		ch <- streamMsg{done: true, res: res, err: err}
		close(ch)
	}()
	return listenStream(ch)
}

func startAdd(m *tuiModel, path string) tea.Cmd {
	m.running = true
	m.status = "Scanning..."
	eng := m.eng
	return func() tea.Msg {
		report, err := eng.AddPath(path)
		return addMsg{path: path, report: report, err: err}
	}
}

func submitPrompt(m *tuiModel, prompt string) tea.Cmd {
	lower := strings.ToLower(strings.TrimSpace(prompt))
	if lower == "exit" || lower == "quit" {
		return tea.Quit
	}

	if strings.HasPrefix(prompt, "/") {
		return runCommand(m, prompt)
	}

	m.appendUser(prompt)
	m.lastPrompt = prompt
	return startTurn(m, prompt)
}

func runCommand(m *tuiModel, prompt string) tea.Cmd {
	fields := strings.Fields(prompt)
	cmd := strings.ToLower(fields[0])
	arg := strings.TrimSpace(strings.TrimPrefix(prompt, fields[0]))

	switch cmd {
	case "/add":
		if arg == "" {
			m.appendAction("Usage: /add path/to/file-or-folder")
			return nil
		}
		m.appendUser(prompt)
		return startAdd(m, arg)
	case "/model":
		if arg == "" {
			m.appendAction("Model: " + m.eng.Model())
			return nil
		}
		m.client.SetModel(arg)
		cfg, err := userconfig.Load()
		if err == nil {
			cfg.Model = arg
			if err := userconfig.Save(cfg); err != nil {
				m.appendAction("Error saving config: " + err.Error())
			}
		}
		m.appendAction("Model set: " + arg)
		return nil
	case "/retry":
		if m.lastPrompt == "" {
			m.appendAction("No previous prompt to retry.")
			return nil
		}
		m.err = nil
		m.appendAction("Retrying...")
		m.appendUser(m.lastPrompt)
		return startTurn(m, m.lastPrompt)
	case "/context":
		stats := m.eng.Stats()
		m.appendAction(fmt.Sprintf("Messages: %d | Files in context: %d | Exchanges: %d",
			stats.Total, stats.FileContents, stats.Exchanges))
		return nil
	case "/help":
		for _, item := range helpItems() {
			m.appendAction(item.cmd + "  " + item.desc)
		}
		return nil
	default:
		m.appendAction("Unknown command: " + cmd)
		return nil
	}
}

func choiceCount(m tuiModel) int {
	for i := len(m.history) - 1; i >= 0; i-- {
		if m.history[i].kind == "choice" {
			return len(m.history[i].options)
		}
	}
	return 0
}

func resolveChoice(m *tuiModel, index int) tea.Cmd {
	m.choiceActive = false
	count := choiceCount(*m)
	if count == 0 {
		return nil
	}
	if clamp(index, 0, count-1) == 0 {
		m.applyPending()
	} else {
		m.skipPending()
	}
	m.refreshViewport()
	return nil
}

func clamp(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
