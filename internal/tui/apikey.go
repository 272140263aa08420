package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ErrSetupCancelled is returned when the user aborts the API key setup
var ErrSetupCancelled = errors.New("API key setup cancelled")

// APIKeyModel is the first-run screen asking for the Gemini API key
type APIKeyModel struct {
	input     textinput.Model
	styles    Styles
	key       string
	cancelled bool
	errMsg    string
}

// NewAPIKey creates the key entry model
func NewAPIKey() APIKeyModel {
	ti := textinput.New()
	ti.Prompt = "> "
	ti.EchoMode = textinput.EchoPassword
	ti.EchoCharacter = '*'
	ti.Focus()

	return APIKeyModel{
		input:  ti,
		styles: NewStyles(),
	}
}

// Init implements tea.Model
func (m APIKeyModel) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model
func (m APIKeyModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit

		case "enter":
			value := strings.TrimSpace(m.input.Value())
			if value == "" {
				m.errMsg = "API key cannot be empty"
				return m, nil
			}
			m.key = value
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// View implements tea.Model
func (m APIKeyModel) View() string {
	if m.key != "" || m.cancelled {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.styles.Title.Render("1q first-time setup") + "\n\n")
	b.WriteString("Enter your Gemini API key (https://aistudio.google.com/apikey):\n")
	b.WriteString(m.input.View() + "\n")
	if m.errMsg != "" {
		b.WriteString(m.styles.Error.Render(m.errMsg) + "\n")
	}
	b.WriteString("\n" + m.styles.Help.Render("enter save · esc cancel"))
	return b.String()
}

// PromptAPIKey runs the setup screen and returns the entered key.
// Returns ErrSetupCancelled if the user aborts.
func PromptAPIKey() (string, error) {
	p := tea.NewProgram(NewAPIKey())
	final, err := p.Run()
	if err != nil {
		return "", fmt.Errorf("API key setup failed: %w", err)
	}
	model, ok := final.(APIKeyModel)
	if !ok {
		return "", fmt.Errorf("API key setup returned unexpected model")
	}
	if model.cancelled {
		return "", ErrSetupCancelled
	}
	return model.key, nil
}
