package cmd

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/elk-language/go-prompt"
	istrings "github.com/elk-language/go-prompt/strings"
	"github.com/mattn/go-isatty"

	"github.com/oneq-sh/oneq/internal/display"
	"github.com/oneq-sh/oneq/internal/executor"
	"github.com/oneq-sh/oneq/internal/history"
	promptpkg "github.com/oneq-sh/oneq/internal/prompt"
	"github.com/oneq-sh/oneq/internal/tui"
)

// inlineSession holds the state for an inline review session
type inlineSession struct {
	app        *App
	query      string
	candidates []promptpkg.Candidate
	hist       history.Manager

	selected int
	edits    map[int]string // candidate index -> edited command
	editing  bool

	outcome  tui.Outcome
	exitFlag bool
}

// runInline reviews the candidates without the full-screen UI. Piped
// output degrades to printing the first command, so `1q ... | sh` and
// command substitution keep working.
func (app *App) runInline(query string, candidates []promptpkg.Candidate, hist history.Manager) {
	session := &inlineSession{
		app:        app,
		query:      query,
		candidates: candidates,
		hist:       hist,
		edits:      make(map[int]string),
	}

	if !isatty.IsTerminal(os.Stdout.Fd()) {
		session.runPiped()
		return
	}

	if app.cfg.Copy {
		app.recordHistory(hist, query, candidates[0].Command)
		display.ShowCommand(candidates[0].Command, candidates[0].Explanation)
		app.copyToClipboard(candidates[0].Command)
		return
	}

	if app.cfg.Execute {
		command := candidates[0].Command
		// Dangerous commands always go through the review menu
		if executor.Classify(command) != executor.Dangerous {
			if err := executor.Validate(command); err != nil {
				display.ShowError(err.Error())
				os.Exit(1)
			}
			app.recordHistory(hist, query, command)
			fmt.Println("Executing: " + command)
			if err := executor.Run(context.Background(), command); err != nil {
				display.ShowError(err.Error())
				os.Exit(1)
			}
			return
		}
		display.ShowWarning("Command looks dangerous, review it first.")
	}

	session.showCandidates()

	p := prompt.New(
		session.executor,
		prompt.WithCompleter(session.completer),
		prompt.WithPrefix("1q> "),
		prompt.WithTitle("1q"),
		prompt.WithPrefixTextColor(prompt.Green),
		prompt.WithMaxSuggestion(8),
		prompt.WithExitChecker(func(in string, breakline bool) bool {
			return session.exitFlag
		}),
		prompt.WithKeyBind(prompt.KeyBind{
			Key: prompt.ControlC,
			Fn: func(p *prompt.Prompt) bool {
				session.outcome = tui.Outcome{Action: tui.ActionCancel}
				session.exitFlag = true
				return false
			},
		}),
	)
	p.Run()

	session.finish()
}

// runPiped handles non-terminal output: print the first candidate, or run
// it when --execute was given
func (s *inlineSession) runPiped() {
	command := s.candidates[0].Command

	if s.app.cfg.Execute {
		if err := executor.Validate(command); err != nil {
			display.ShowError(err.Error())
			os.Exit(1)
		}
		s.app.recordHistory(s.hist, s.query, command)
		if err := executor.Run(context.Background(), command); err != nil {
			display.ShowError(err.Error())
			os.Exit(1)
		}
		return
	}

	fmt.Println(command)
	if s.candidates[0].Explanation != "" {
		fmt.Fprintln(os.Stderr, s.candidates[0].Explanation)
	}
}

// currentCommand returns the selected candidate with edits applied
func (s *inlineSession) currentCommand() string {
	if edited, ok := s.edits[s.selected]; ok {
		return edited
	}
	return s.candidates[s.selected].Command
}

// showCandidates prints the candidate list with risk markers
func (s *inlineSession) showCandidates() {
	for i, cand := range s.candidates {
		command := cand.Command
		if edited, ok := s.edits[i]; ok {
			command = edited
		}

		marker := "  "
		if i == s.selected {
			marker = "* "
		}
		label := ""
		switch executor.Classify(command) {
		case executor.Dangerous:
			label = "  [dangerous]"
		case executor.NeedsConfirm:
			label = "  [modifies state]"
		}

		if len(s.candidates) > 1 {
			fmt.Printf("%s%d) ", marker, i+1)
		} else {
			fmt.Print(marker)
		}
		display.ShowCommand(command+label, cand.Explanation)
	}
	fmt.Println("run · edit · copy · quit  (or a number to select)")
}

// executor handles one line of user input
func (s *inlineSession) executor(input string) {
	input = strings.TrimSpace(input)

	if s.editing {
		s.editing = false
		if input != "" && input != s.candidates[s.selected].Command {
			s.edits[s.selected] = input
		} else if input == s.candidates[s.selected].Command {
			delete(s.edits, s.selected)
		}
		s.showCandidates()
		return
	}

	if n, err := strconv.Atoi(input); err == nil {
		if n >= 1 && n <= len(s.candidates) {
			s.selected = n - 1
			s.showCandidates()
		} else {
			display.ShowWarning(fmt.Sprintf("pick a number between 1 and %d", len(s.candidates)))
		}
		return
	}

	switch strings.ToLower(input) {
	case "y", "yes", "r", "run":
		command := s.currentCommand()
		if err := executor.Validate(command); err != nil {
			display.ShowError(err.Error())
			return
		}
		s.outcome = tui.Outcome{Action: tui.ActionExecute, Command: command}
		s.exitFlag = true

	case "e", "edit":
		s.editing = true
		fmt.Println("Current: " + s.currentCommand())
		fmt.Println("Type the replacement command (empty line keeps it):")

	case "c", "copy":
		s.outcome = tui.Outcome{Action: tui.ActionCopy, Command: s.currentCommand()}
		s.exitFlag = true

	case "n", "no", "q", "quit", "exit":
		s.outcome = tui.Outcome{Action: tui.ActionCancel}
		s.exitFlag = true

	case "l", "list", "":
		s.showCandidates()

	default:
		display.ShowWarning("unknown action: " + input)
		fmt.Println("run · edit · copy · quit  (or a number to select)")
	}
}

// completer suggests the review actions
func (s *inlineSession) completer(d prompt.Document) ([]prompt.Suggest, istrings.RuneNumber, istrings.RuneNumber) {
	endIndex := d.CurrentRuneIndex()
	w := d.GetWordBeforeCursor()
	startIndex := endIndex - istrings.RuneCountInString(w)

	if s.editing || w == "" {
		return []prompt.Suggest{}, startIndex, endIndex
	}

	suggestions := []prompt.Suggest{
		{Text: "run", Description: "Execute the selected command"},
		{Text: "edit", Description: "Edit the selected command"},
		{Text: "copy", Description: "Copy the selected command to the clipboard"},
		{Text: "list", Description: "Show the candidates again"},
		{Text: "quit", Description: "Cancel without running anything"},
	}
	return prompt.FilterHasPrefix(suggestions, w, true), startIndex, endIndex
}

// finish acts on the decision after the prompt loop has exited
func (s *inlineSession) finish() {
	switch s.outcome.Action {
	case tui.ActionExecute:
		s.app.recordHistory(s.hist, s.query, s.outcome.Command)
		fmt.Println("Executing: " + s.outcome.Command)
		if err := executor.Run(context.Background(), s.outcome.Command); err != nil {
			display.ShowError(err.Error())
			os.Exit(1)
		}

	case tui.ActionCopy:
		s.app.recordHistory(s.hist, s.query, s.outcome.Command)
		s.app.copyToClipboard(s.outcome.Command)

	default:
		display.ShowWarning("Action cancelled.")
	}
}
