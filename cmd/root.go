package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/oneq-sh/oneq/internal/api"
	"github.com/oneq-sh/oneq/internal/config"
	"github.com/oneq-sh/oneq/internal/constants"
	"github.com/oneq-sh/oneq/internal/display"
	"github.com/oneq-sh/oneq/internal/executor"
	"github.com/oneq-sh/oneq/internal/history"
	"github.com/oneq-sh/oneq/internal/logging"
	"github.com/oneq-sh/oneq/internal/prompt"
	"github.com/oneq-sh/oneq/internal/tui"
)

// App holds the application state
type App struct {
	cfg     *config.Config
	client  api.Client
	verbose bool

	// Config and info actions
	showConfigPath   bool
	clearConfig      bool
	setDefaultOutput string
	showHistory      bool
	clearHistory     bool
}

// NewApp creates a new App instance with default configuration
func NewApp() *App {
	return &App{
		cfg: config.NewConfig(),
	}
}

// Execute runs the root command
func Execute() {
	app := NewApp()

	rootCmd := &cobra.Command{
		Use:   "1q [query]",
		Short: "Get the right one-liner command with natural language",
		Long: `1q translates a natural language request into a shell command using
the Gemini API, then lets you review, edit, copy, or run the result.

Examples:
  1q list files in Documents ending with .pdf
  1q -s inline "show disk usage per directory"
  1q -e "what is my public ip"       # run the command after confirming
  1q --show-history`,
		Version: constants.Version,
		Args:    cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			app.run(cmd, args)
		},
	}

	rootCmd.Flags().BoolVarP(&app.verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.Flags().StringVarP(&app.cfg.OutputStyle, "style", "s", "", "Output style: auto, tui, or inline")
	rootCmd.Flags().BoolVarP(&app.cfg.Execute, "execute", "e", false, "Execute the generated command (inline style)")
	rootCmd.Flags().BoolVarP(&app.cfg.Copy, "copy", "c", false, "Copy the generated command to the clipboard")
	rootCmd.Flags().StringVarP(&app.cfg.APIKey, "api-key", "k", "", "Gemini API key (overrides env and config file)")
	rootCmd.Flags().StringVarP(&app.cfg.Model, "model", "m", "", "Gemini model name")
	rootCmd.Flags().BoolVar(&app.cfg.IgnoreDefault, "ignore-default", false, "Ignore the config file and use flags only")
	rootCmd.Flags().BoolVar(&app.showConfigPath, "show-config-path", false, "Print the config file path and exit")
	rootCmd.Flags().BoolVar(&app.clearConfig, "clear-config", false, "Remove the config file and exit")
	rootCmd.Flags().StringVar(&app.setDefaultOutput, "set-default-output", "", "Save the default output style (auto, tui, inline) and exit")
	rootCmd.Flags().BoolVar(&app.showHistory, "show-history", false, "Print past queries and commands and exit")
	rootCmd.Flags().BoolVar(&app.clearHistory, "clear-history", false, "Remove the history file contents and exit")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func (app *App) run(cmd *cobra.Command, args []string) {
	if app.verbose {
		app.cfg.Debug = true
		logging.SetLevel(logging.LevelDebug)
	}

	if app.handleMaintenance() {
		return
	}

	// Resolve configuration; a missing API key triggers first-run setup
	if err := app.cfg.Validate(); err != nil {
		if errors.Is(err, config.ErrAPIKeyNotFound) {
			if !app.setupAPIKey() {
				return
			}
		} else {
			display.ShowError(err.Error())
			os.Exit(1)
		}
	}

	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		_ = cmd.Help()
		os.Exit(1)
	}

	style := app.cfg.OutputStyle
	if style == "auto" {
		if isatty.IsTerminal(os.Stdout.Fd()) {
			style = "tui"
		} else {
			style = "inline"
		}
	}

	logging.Debug("session start", logging.Fields{
		"query": query,
		"model": app.cfg.Model,
		"style": style,
	})

	if err := display.InitRenderer(); err != nil {
		logging.Warn("markdown renderer unavailable", logging.Fields{"reason": err.Error()})
	}

	result, err := app.generate(query)
	if err != nil {
		display.ShowError(apiErrorMessage(err))
		os.Exit(1)
	}

	if result.ModelError != "" {
		display.ShowError("no command generated: " + result.ModelError)
		os.Exit(1)
	}
	if len(result.Candidates) == 0 {
		display.ShowWarning("No command generated.")
		os.Exit(1)
	}

	hist := app.loadHistory()

	if style == "tui" {
		app.runTUI(query, result.Candidates, hist)
		return
	}
	app.runInline(query, result.Candidates, hist)
}

// generate builds the prompt, calls the API behind a spinner, and parses
// the response into candidates
func (app *App) generate(query string) (prompt.Result, error) {
	if app.client == nil {
		app.client = api.NewClient(app.cfg)
	}

	platform := prompt.DetectPlatform()
	request := prompt.Build(query, platform)

	spin := display.NewSpinner("thinking...")
	spin.Start()
	raw, err := app.client.Generate(context.Background(), request)
	spin.Stop()
	if err != nil {
		return prompt.Result{}, err
	}

	logging.Debug("model response", logging.Fields{"raw": raw})
	return prompt.Parse(raw), nil
}

// setupAPIKey runs the first-run key setup. Returns false when the user
// cancelled (normal exit, code 0).
func (app *App) setupAPIKey() bool {
	display.ShowWarning("Gemini API key not found. Launching setup...")

	key, err := tui.PromptAPIKey()
	if err != nil {
		if errors.Is(err, tui.ErrSetupCancelled) {
			display.ShowWarning("Setup cancelled.")
			return false
		}
		display.ShowError(err.Error())
		os.Exit(1)
	}

	path, err := config.SaveAPIKey(key)
	if err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}
	display.ShowSuccess("API key saved to " + path)
	app.cfg.APIKey = key
	return true
}

// handleMaintenance runs the config/history actions. Returns true when one
// of them handled the invocation.
func (app *App) handleMaintenance() bool {
	switch {
	case app.showConfigPath:
		path := config.ExistingConfigPath()
		if path == "" {
			path, _ = config.DefaultConfigPath()
		}
		fmt.Println(path)
		return true

	case app.clearConfig:
		if err := config.ClearConfigFile(); err != nil {
			display.ShowError(err.Error())
			os.Exit(1)
		}
		display.ShowSuccess("Configuration cleared.")
		return true

	case app.setDefaultOutput != "":
		if _, err := config.SaveOutputStyle(app.setDefaultOutput); err != nil {
			display.ShowError(err.Error())
			os.Exit(1)
		}
		display.ShowSuccess("Default output style set to: " + app.setDefaultOutput)
		return true

	case app.showHistory:
		hist := app.loadHistory()
		display.ShowHistory(hist.Entries())
		return true

	case app.clearHistory:
		hist := app.loadHistory()
		hist.Clear()
		if err := hist.Save(); err != nil {
			display.ShowError(err.Error())
			os.Exit(1)
		}
		display.ShowSuccess("History cleared.")
		return true
	}
	return false
}

// loadHistory loads the history file, continuing with empty history when
// it cannot be read
func (app *App) loadHistory() history.Manager {
	path, err := history.DefaultPath()
	if err != nil {
		logging.Warn("history unavailable", logging.Fields{"reason": err.Error()})
		return history.New("")
	}
	hist := history.New(path)
	if err := hist.Load(); err != nil {
		logging.Warn("could not load history", logging.Fields{"reason": err.Error()})
	}
	return hist
}

// runTUI hands the candidates to the review loop and acts on the outcome
func (app *App) runTUI(query string, candidates []prompt.Candidate, hist history.Manager) {
	outcome, err := tui.Review(query, candidates, hist.Entries())
	if err != nil {
		display.ShowError(err.Error())
		os.Exit(1)
	}

	switch outcome.Action {
	case tui.ActionExecute:
		app.recordHistory(hist, query, outcome.Command)
		fmt.Println("Executing: " + outcome.Command)
		if err := executor.Run(context.Background(), outcome.Command); err != nil {
			display.ShowError(err.Error())
			os.Exit(1)
		}

	case tui.ActionCopy:
		app.recordHistory(hist, query, outcome.Command)
		app.copyToClipboard(outcome.Command)

	default:
		display.ShowWarning("Action cancelled.")
	}
}

// recordHistory appends a confirmed pair and persists it
func (app *App) recordHistory(hist history.Manager, query, command string) {
	hist.Add(query, command)
	if err := hist.Save(); err != nil {
		logging.Warn("could not save history", logging.Fields{"reason": err.Error()})
	}
}

// copyToClipboard copies the command, reporting success or failure inline
func (app *App) copyToClipboard(command string) {
	if err := clipboard.WriteAll(command); err != nil {
		display.ShowError("could not copy to clipboard: " + err.Error())
		return
	}
	display.ShowSuccess("Command copied to clipboard!")
}

// apiErrorMessage maps API failures to one-line user messages
func apiErrorMessage(err error) string {
	switch {
	case api.IsAuth(err):
		return "invalid Gemini API key. Check ONEQ_API_KEY or run --clear-config to redo setup"
	case api.IsRateLimit(err):
		return "Gemini API rate limit reached. Try again in a moment"
	case errors.Is(err, api.ErrNetwork):
		return "network failure reaching the Gemini API: " + err.Error()
	default:
		return err.Error()
	}
}
