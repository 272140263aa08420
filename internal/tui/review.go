// Package tui implements the interactive review loop: the generated command
// candidates are presented for the user to cycle through, edit, copy,
// confirm, or cancel. It also provides the first-run API key setup screen.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/oneq-sh/oneq/internal/executor"
	"github.com/oneq-sh/oneq/internal/history"
	"github.com/oneq-sh/oneq/internal/prompt"
)

// Action is the user's final decision for the session
type Action int

const (
	// ActionCancel discards the session
	ActionCancel Action = iota
	// ActionExecute hands the command to the host shell
	ActionExecute
	// ActionCopy copies the command to the clipboard
	ActionCopy
)

// Outcome is the result of a review session
type Outcome struct {
	Action  Action
	Command string // final command, including any edits
}

// reviewState tracks which screen is active
type reviewState int

const (
	statePresenting reviewState = iota
	stateEditing
	stateHistory
)

// ReviewModel is the bubbletea model for the review loop
type ReviewModel struct {
	query      string
	candidates []prompt.Candidate
	selected   int
	edits      map[int]string // candidate index -> edited command

	state   reviewState
	input   textinput.Model
	history viewport.Model
	styles  Styles

	historyEntries []history.Entry
	errMsg         string
	width          int
	outcome        Outcome
	done           bool
}

// NewReview creates a review model for the given candidates.
// The candidate list must be non-empty.
func NewReview(query string, candidates []prompt.Candidate, entries []history.Entry) ReviewModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.CharLimit = 0

	vp := viewport.New(80, 12)

	return ReviewModel{
		query:          query,
		candidates:     candidates,
		edits:          make(map[int]string),
		input:          ti,
		history:        vp,
		styles:         NewStyles(),
		historyEntries: entries,
		width:          80,
	}
}

// Outcome returns the final decision once the program has quit
func (m ReviewModel) Outcome() Outcome {
	return m.outcome
}

// currentCommand returns the selected candidate's command with edits applied
func (m ReviewModel) currentCommand() string {
	if edited, ok := m.edits[m.selected]; ok {
		return edited
	}
	return m.candidates[m.selected].Command
}

// Init implements tea.Model
func (m ReviewModel) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model
func (m ReviewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - 4
		m.history.Width = msg.Width - 4
		return m, nil

	case tea.KeyMsg:
		switch m.state {
		case stateEditing:
			return m.updateEditing(msg)
		case stateHistory:
			return m.updateHistory(msg)
		default:
			return m.updatePresenting(msg)
		}
	}

	return m, nil
}

func (m ReviewModel) updatePresenting(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "q", "esc", "n":
		m.outcome = Outcome{Action: ActionCancel}
		m.done = true
		return m, tea.Quit

	case "enter", "y":
		command := m.currentCommand()
		if err := executor.Validate(command); err != nil {
			m.errMsg = err.Error()
			return m, nil
		}
		m.outcome = Outcome{Action: ActionExecute, Command: command}
		m.done = true
		return m, tea.Quit

	case "c":
		m.outcome = Outcome{Action: ActionCopy, Command: m.currentCommand()}
		m.done = true
		return m, tea.Quit

	case "e":
		m.state = stateEditing
		m.errMsg = ""
		m.input.SetValue(m.currentCommand())
		m.input.CursorEnd()
		m.input.Focus()
		return m, textinput.Blink

	case "up", "k":
		if m.selected > 0 {
			m.selected--
			m.errMsg = ""
		}
		return m, nil

	case "down", "j", "tab":
		if m.selected < len(m.candidates)-1 {
			m.selected++
			m.errMsg = ""
		}
		return m, nil

	case "h":
		m.state = stateHistory
		m.history.SetContent(m.renderHistory())
		m.history.GotoTop()
		return m, nil
	}

	return m, nil
}

func (m ReviewModel) updateEditing(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.outcome = Outcome{Action: ActionCancel}
		m.done = true
		return m, tea.Quit

	case "esc":
		// Discard the in-progress edit, back to presenting
		m.state = statePresenting
		m.input.Blur()
		return m, nil

	case "enter":
		edited := strings.TrimSpace(m.input.Value())
		if edited != "" && edited != m.candidates[m.selected].Command {
			m.edits[m.selected] = edited
		} else {
			delete(m.edits, m.selected)
		}
		m.state = statePresenting
		m.input.Blur()
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m ReviewModel) updateHistory(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.outcome = Outcome{Action: ActionCancel}
		m.done = true
		return m, tea.Quit

	case "esc", "h", "q":
		m.state = statePresenting
		return m, nil
	}

	var cmd tea.Cmd
	m.history, cmd = m.history.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m ReviewModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("1q") + "  " + m.styles.Query.Render(m.query) + "\n\n")

	switch m.state {
	case stateHistory:
		b.WriteString(m.styles.Title.Render("History") + "\n")
		b.WriteString(m.history.View() + "\n")
		b.WriteString(m.styles.Help.Render("esc back · ctrl+c quit"))
		return b.String()

	case stateEditing:
		b.WriteString("Edit command:\n")
		b.WriteString(m.input.View() + "\n\n")
		b.WriteString(m.styles.Help.Render("enter accept · esc discard"))
		return b.String()
	}

	for i, cand := range m.candidates {
		command := cand.Command
		if edited, ok := m.edits[i]; ok {
			command = edited + m.styles.Dim.Render(" (edited)")
		}

		marker := "  "
		line := m.styles.Command.Render(command)
		if i == m.selected {
			marker = m.styles.Selected.Render("> ")
			line = m.styles.Selected.Render(command)
		}
		b.WriteString(marker + line + m.riskLabel(i) + "\n")

		if i == m.selected && cand.Explanation != "" {
			b.WriteString(m.styles.Dim.Render("    "+cand.Explanation) + "\n")
		}
	}

	if m.errMsg != "" {
		b.WriteString("\n" + m.styles.Error.Render(m.errMsg) + "\n")
	}

	b.WriteString("\n" + m.styles.Help.Render("enter run · e edit · c copy · j/k select · h history · q cancel"))
	return b.String()
}

// riskLabel renders a risk marker for candidate i
func (m ReviewModel) riskLabel(i int) string {
	command := m.candidates[i].Command
	if edited, ok := m.edits[i]; ok {
		command = edited
	}
	switch executor.Classify(command) {
	case executor.Dangerous:
		return "  " + m.styles.Danger.Render("[dangerous]")
	case executor.NeedsConfirm:
		return "  " + m.styles.Risk.Render("[modifies state]")
	default:
		return ""
	}
}

// renderHistory formats past entries for the history overlay, newest first
func (m ReviewModel) renderHistory() string {
	if len(m.historyEntries) == 0 {
		return "No history yet."
	}
	var b strings.Builder
	for i := len(m.historyEntries) - 1; i >= 0; i-- {
		e := m.historyEntries[i]
		b.WriteString(fmt.Sprintf("%s  %s\n    %s\n",
			m.styles.Dim.Render(e.Timestamp.Format("2006-01-02 15:04")),
			e.Query,
			m.styles.Command.Render(e.Command)))
	}
	return b.String()
}

// Review runs the review loop and returns the user's decision
func Review(query string, candidates []prompt.Candidate, entries []history.Entry) (Outcome, error) {
	p := tea.NewProgram(NewReview(query, candidates, entries))
	final, err := p.Run()
	if err != nil {
		return Outcome{}, fmt.Errorf("review UI failed: %w", err)
	}
	model, ok := final.(ReviewModel)
	if !ok {
		return Outcome{}, fmt.Errorf("review UI returned unexpected model")
	}
	return model.Outcome(), nil
}
