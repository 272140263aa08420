package executor

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"mvdan.cc/sh/v3/syntax"

	"github.com/oneq-sh/oneq/internal/constants"
	"github.com/oneq-sh/oneq/internal/logging"
)

// Validate checks that the command is syntactically valid shell. It catches
// truncated model output (unterminated quotes, dangling pipes) before the
// command is offered for execution. On Windows the check is skipped since
// cmd.exe syntax is not POSIX shell.
func Validate(command string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	parser := syntax.NewParser()
	if _, err := parser.Parse(strings.NewReader(command), ""); err != nil {
		return fmt.Errorf("not a valid shell command: %w", err)
	}
	return nil
}

// Run hands the confirmed command to the host shell with inherited stdio
func Run(ctx context.Context, command string) error {
	ctx, cancel := context.WithTimeout(ctx, constants.DefaultCommandTimeout)
	defer cancel()

	var cmd *exec.Cmd
	if runtime.GOOS == "windows" {
		cmd = exec.CommandContext(ctx, "cmd", "/C", command)
	} else {
		shell := os.Getenv("SHELL")
		if shell == "" {
			shell = "/bin/sh"
		}
		cmd = exec.CommandContext(ctx, shell, "-c", command)
	}

	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	logging.Debug("executing command", logging.Fields{"command": command, "path": cmd.Path})

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("command failed: %w", err)
	}
	return nil
}
