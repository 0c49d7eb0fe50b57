package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"go.uber.org/zap"

	"github.com/fitchmultz/deepseek-engineer/internal/agent"
	"github.com/fitchmultz/deepseek-engineer/internal/llm"
	"github.com/fitchmultz/deepseek-engineer/internal/userconfig"
)

const (
	colorPrimary   = "252"
	colorSecondary = "244"
	colorAccent    = "39"
)

type streamMsg struct {
	delta llm.Delta
	done  bool
	res   agent.TurnResult
	err   error
}

type addMsg struct {
	path   string
	report agent.AddReport
	err    error
}

type historyEntry struct {
	text    string
	kind    string
	bold    bool
	options []string
}

type tuiModel struct {
	eng    *agent.Engine
	client *llm.Client
	log    *zap.Logger

	input    textinput.Model
	viewport viewport.Model
	history  []historyEntry

	running       bool
	status        string
	err           error
	width         int
	height        int
	lastPrompt    string
	suggestIndex  int
	choiceActive  bool
	choiceIndex   int
	pendingRes    *agent.TurnResult
	cancelTurn    context.CancelFunc
	streamCh      chan streamMsg
	mdRenderer    *glamour.TermRenderer
	mdWidth       int
}

func runTUI(root string, cfg userconfig.Config, client *llm.Client, log *zap.Logger) {
	eng, err := newEngine(root, cfg, client, log, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
	m := newTUIModel(eng, client, log)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		fmt.Println("TUI error:", err)
	}
}

func newTUIModel(eng *agent.Engine, client *llm.Client, log *zap.Logger) tuiModel {
	ti := textinput.New()
	ti.Placeholder = "Ask for code, or /add a file"
	ti.Focus()
	ti.CharLimit = 4000
	ti.Width = 80
	vp := viewport.New(80, 10)
	m := tuiModel{
		eng:      eng,
		client:   client,
		log:      log,
		input:    ti,
		viewport: vp,
		history:  []historyEntry{},
		status:   "Ready",
	}
	m.appendAction("Use /add path/to/file (or folder) to include files in the conversation.")
	m.appendAction("Type 'exit' or 'quit' to end.")
	m.updateMarkdownRenderer()
	m.refreshViewport()
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = clamp(m.width-4, 40, 120)
		m.viewport.Width = m.width
		m.viewport.Height = clamp(m.height-6, 6, 40)
		m.updateMarkdownRenderer()
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if m.choiceActive {
			switch msg.Type {
			case tea.KeyUp:
				m.choiceIndex = clamp(m.choiceIndex-1, 0, choiceCount(m)-1)
				m.refreshViewport()
				return m, nil
			case tea.KeyDown:
				m.choiceIndex = clamp(m.choiceIndex+1, 0, choiceCount(m)-1)
				m.refreshViewport()
				return m, nil
			case tea.KeyEnter:
				return m, resolveChoice(&m, m.choiceIndex)
			case tea.KeyEsc:
				// interrupting a confirmation declines it
				return m, resolveChoice(&m, choiceCount(m)-1)
			case tea.KeyCtrlC:
				return m, tea.Quit
			}
			return m, nil
		}

		suggestions := currentSuggestions(m)
		switch msg.Type {
		case tea.KeyCtrlC:
			return m, tea.Quit
		case tea.KeyEsc:
			if m.running && m.cancelTurn != nil {
				m.cancelTurn()
				return m, nil
			}
			return m, tea.Quit
		case tea.KeyUp:
			if m.running {
				return m, nil
			}
			if len(suggestions) > 0 && strings.HasPrefix(strings.TrimSpace(m.input.Value()), "/") {
				m.suggestIndex = clamp(m.suggestIndex-1, 0, len(suggestions)-1)
				return m, nil
			}
			if m.lastPrompt != "" {
				m.input.SetValue(m.lastPrompt)
				m.input.CursorEnd()
			}
			return m, nil
		case tea.KeyDown:
			if m.running {
				return m, nil
			}
			if len(suggestions) > 0 && strings.HasPrefix(strings.TrimSpace(m.input.Value()), "/") {
				m.suggestIndex = clamp(m.suggestIndex+1, 0, len(suggestions)-1)
				return m, nil
			}
		case tea.KeyEnter:
			if m.running {
				return m, nil
			}
			prompt := strings.TrimSpace(m.input.Value())
			if prompt == "" {
				return m, nil
			}
			if len(suggestions) > 0 && strings.HasPrefix(prompt, "/") {
				selected := suggestions[clamp(m.suggestIndex, 0, len(suggestions)-1)].cmd
				if prompt != selected && !strings.Contains(prompt, " ") {
					m.input.SetValue(selected)
					m.input.CursorEnd()
					return m, nil
				}
			}
			m.input.SetValue("")
			m.suggestIndex = 0
			return m, submitPrompt(&m, prompt)
		}

	case streamMsg:
		if msg.err != nil {
			m.running = false
			m.err = msg.err
			m.cancelTurn = nil
			m.clearReasoning()
			m.appendAction("Error: " + msg.err.Error())
			m.appendAction("Type /retry to try again.")
			m.status = "Error"
			return m, nil
		}
		if msg.done {
			m.running = false
			m.err = nil
			m.cancelTurn = nil
			m.status = "Ready"
			m.clearReasoning()
			m.showTurnResult(msg.res)
			return m, nil
		}
		if msg.delta.Reasoning {
			m.appendReasoning(msg.delta.Text)
		}
		return m, listenStream(m.streamCh)

	case addMsg:
		m.running = false
		m.status = "Ready"
		if msg.err != nil {
			m.appendAction("Error: " + msg.err.Error())
			return m, nil
		}
		for _, p := range msg.report.Added {
			m.appendAction("Added: " + p)
		}
		if n := len(msg.report.Skipped); n > 0 {
			m.appendAction(fmt.Sprintf("Skipped %d excluded or binary files.", n))
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.viewport, _ = m.viewport.Update(msg)
	return m, cmd
}

// showTurnResult renders the model's reply and, when file operations are
// proposed, previews them and asks for approval.
func (m *tuiModel) showTurnResult(res agent.TurnResult) {
	if !res.ParseOK {
		m.appendAction("Model returned unstructured output; showing it raw.")
		m.appendRaw(res.Reply)
		return
	}
	m.appendAssistant(res.Reply)

	if len(res.Creates) == 0 && len(res.Edits) == 0 {
		return
	}
	r := res
	m.pendingRes = &r
	m.appendPreview(renderChangePreview(res, previewWidth(m.viewport.Width)))
	m.appendChoice("Apply these changes?", []string{"Apply", "Skip"})
}

func (m *tuiModel) applyPending() {
	res := m.pendingRes
	m.pendingRes = nil
	if res == nil {
		return
	}
	for _, o := range m.eng.ApplyCreates(res.Creates, false) {
		m.appendOutcome("Create", o)
	}
	for _, o := range m.eng.ApplyEdits(res.Edits, false) {
		m.appendOutcome("Edit", o)
	}
}

func (m *tuiModel) skipPending() {
	m.pendingRes = nil
	m.appendAction("Skipped applying changes.")
}

func (m *tuiModel) appendOutcome(op string, o agent.Outcome) {
	switch {
	case o.Err != nil:
		if o.Detail != "" {
			m.appendAction(fmt.Sprintf("%s failed: %s (%s)", op, o.Path, o.Detail))
		} else {
			m.appendAction(fmt.Sprintf("%s failed: %s (%v)", op, o.Path, o.Err))
		}
	case o.Applied:
		m.appendAction(op + ": " + o.Path)
	default:
		m.appendAction(fmt.Sprintf("%s skipped: %s", op, o.Path))
	}
}
