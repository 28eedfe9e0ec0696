// SPDX-License-Identifier: MPL-2.0

package buildtool

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"mvdan.cc/sh/v3/expand"
	"mvdan.cc/sh/v3/interp"
	"mvdan.cc/sh/v3/syntax"
)

// ScriptInvoker runs a user-configured build command line through the
// embedded shell interpreter, so a custom `build.command` behaves the same
// on every platform without depending on /bin/sh or cmd.exe.
//
// The command sees TARGETS (space-separated binary names) and WORKDIR in
// its environment and runs with the working directory set to workDir.
type ScriptInvoker struct {
	Command string
	Logger  *log.Logger
}

// NewScriptInvoker creates a ScriptInvoker for the given command line.
// The command is parsed upfront so configuration mistakes surface before
// any build runs.
func NewScriptInvoker(command string, logger *log.Logger) (*ScriptInvoker, error) {
	if strings.TrimSpace(command) == "" {
		return nil, fmt.Errorf("build command is empty")
	}
	if _, err := syntax.NewParser().Parse(strings.NewReader(command), "build.command"); err != nil {
		return nil, fmt.Errorf("build command syntax error: %w", err)
	}
	return &ScriptInvoker{Command: command, Logger: logger}, nil
}

// Run executes the configured command in workDir.
func (s *ScriptInvoker) Run(ctx context.Context, workDir string, targets []string) error {
	prog, err := syntax.NewParser().Parse(strings.NewReader(s.Command), "build.command")
	if err != nil {
		return &BuildError{WorkDir: workDir, Cause: err}
	}

	env := append(os.Environ(),
		"TARGETS="+strings.Join(targets, " "),
		"WORKDIR="+workDir,
	)

	runner, err := interp.New(
		interp.Dir(workDir),
		interp.Env(expand.ListEnviron(env...)),
		interp.StdIO(os.Stdin, os.Stdout, os.Stderr),
	)
	if err != nil {
		return &BuildError{WorkDir: workDir, Cause: fmt.Errorf("create interpreter: %w", err)}
	}

	s.Logger.Info("running custom build command", "workdir", workDir, "command", s.Command)

	if err := runner.Run(ctx, prog); err != nil {
		return &BuildError{WorkDir: workDir, Cause: err}
	}
	return nil
}
