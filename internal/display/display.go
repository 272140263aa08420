// Package display provides terminal output helpers for the inline style:
// colored status lines, markdown rendering for explanations, and a spinner
// shown while the API call is in flight.
package display

import (
	"fmt"
	"os"
	"time"

	"github.com/briandowns/spinner"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/oneq-sh/oneq/internal/history"
)

var (
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	warnStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	commandStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("14")).Bold(true)
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
)

var renderer *glamour.TermRenderer

// InitRenderer sets up the markdown renderer for explanations
func InitRenderer() error {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to initialize renderer: %w", err)
	}
	renderer = r
	return nil
}

// RenderMarkdown renders s as markdown, falling back to the raw text
func RenderMarkdown(s string) string {
	if renderer == nil {
		return s
	}
	out, err := renderer.Render(s)
	if err != nil {
		return s
	}
	return out
}

// ShowError prints a one-line error message to stderr
func ShowError(msg string) {
	fmt.Fprintln(os.Stderr, errorStyle.Render("Error: ")+msg)
}

// ShowWarning prints a one-line warning to stderr
func ShowWarning(msg string) {
	fmt.Fprintln(os.Stderr, warnStyle.Render("Warning: ")+msg)
}

// ShowSuccess prints a confirmation line
func ShowSuccess(msg string) {
	fmt.Println(successStyle.Render(msg))
}

// ShowCommand prints the generated command with its optional explanation
func ShowCommand(command, explanation string) {
	fmt.Println("Generated command:")
	fmt.Println("  " + commandStyle.Render(command))
	if explanation != "" {
		fmt.Print(RenderMarkdown(explanation))
	}
}

// ShowHistory prints past queries and their commands, oldest first
func ShowHistory(entries []history.Entry) {
	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return
	}
	for _, e := range entries {
		fmt.Println(dimStyle.Render(e.Timestamp.Format("2006-01-02 15:04")) + "  " + e.Query)
		fmt.Println("  " + commandStyle.Render(e.Command))
	}
}

// NewSpinner returns a spinner with the given status suffix, not yet started
func NewSpinner(suffix string) *spinner.Spinner {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	s.Suffix = " " + suffix
	_ = s.Color("cyan")
	return s
}
