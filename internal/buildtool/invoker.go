// SPDX-License-Identifier: MPL-2.0

package buildtool

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"

	"github.com/charmbracelet/log"
)

// cargoBin is the external build tool that produces the toolchain binaries.
const cargoBin = "cargo"

// Sentinel errors for programmatic detection with errors.Is.
var (
	ErrPrerequisiteMissing = errors.New("build prerequisite missing")
	ErrBuildFailed         = errors.New("build failed")
)

// PrerequisiteError reports a required external tool absent from PATH.
// Checked once, upfront, before anything else runs.
type PrerequisiteError struct {
	Tool string
}

func (e *PrerequisiteError) Error() string {
	return fmt.Sprintf("required build tool %q not found on PATH", e.Tool)
}

func (e *PrerequisiteError) Unwrap() error { return ErrPrerequisiteMissing }

// BuildError reports a non-zero exit from the external build tool.
// Build failures are deterministic for the same source, so there is no
// retry; the run aborts.
type BuildError struct {
	WorkDir string
	Cause   error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build failed in %s: %v", e.WorkDir, e.Cause)
}

func (e *BuildError) Unwrap() error { return ErrBuildFailed }

// Invoker triggers an external build for named binary targets in a working
// directory. Tests substitute a fake that drops pre-built fixture files
// instead of compiling.
type Invoker interface {
	Run(ctx context.Context, workDir string, targets []string) error
}

// CargoInvoker runs `cargo build --release` for the requested binary
// targets. Output streams through to the user; a hung build blocks until
// interrupted, which cancels ctx and kills the process.
type CargoInvoker struct {
	Logger *log.Logger
}

// NewCargoInvoker creates a CargoInvoker after verifying the build tool is
// on PATH. Returns PrerequisiteError when it is not.
func NewCargoInvoker(logger *log.Logger) (*CargoInvoker, error) {
	if _, err := exec.LookPath(cargoBin); err != nil {
		return nil, &PrerequisiteError{Tool: cargoBin}
	}
	return &CargoInvoker{Logger: logger}, nil
}

// Run builds the named targets in release mode inside workDir.
func (c *CargoInvoker) Run(ctx context.Context, workDir string, targets []string) error {
	args := []string{"build", "--release"}
	for _, t := range targets {
		args = append(args, "--bin", t)
	}

	c.Logger.Info("building toolchain binaries", "workdir", workDir, "targets", targets)

	cmd := exec.CommandContext(ctx, cargoBin, args...)
	cmd.Dir = workDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		return &BuildError{WorkDir: workDir, Cause: err}
	}
	return nil
}
