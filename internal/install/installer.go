// SPDX-License-Identifier: MPL-2.0

package install

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"

	"pordosol-setup/internal/artifact"
	"pordosol-setup/internal/platform"
)

// Subdirectory names of the canonical layout.
const (
	BinDirName       = "bin"
	ToolsDirName     = "tools"
	TemplatesDirName = "templates"
	StdlibDirName    = "stdlib"
)

// ErrInstallStep is the sentinel wrapped by StepError.
var ErrInstallStep = errors.New("install step failed")

// StepError reports a failed mkdir/copy step, naming the step and the path
// it was working on. Every step is idempotent or overwrite-based, so a
// re-run after fixing the cause repairs the layout.
type StepError struct {
	Step  string
	Path  string
	Cause error
}

func (e *StepError) Error() string {
	return fmt.Sprintf("install step %q failed at %s: %v", e.Step, e.Path, e.Cause)
}

func (e *StepError) Unwrap() error { return ErrInstallStep }

// Installer materializes the canonical SDK layout under Root:
//
//	<root>/bin/pordosol[.exe]
//	<root>/tools/compilador[.exe]
//	<root>/tools/interpretador[.exe]
//	<root>/tools/stdlib/
//	<root>/templates/<name>/...
//
// It only ever mutates the filesystem under Root.
type Installer struct {
	Root     string
	Platform platform.Platform
	Logger   *log.Logger
}

// New creates an Installer rooted at root. The root is absolutized before
// any use.
func New(root string, p platform.Platform, logger *log.Logger) (*Installer, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve installation root: %w", err)
	}
	return &Installer{Root: abs, Platform: p, Logger: logger}, nil
}

// BinDir returns <root>/bin.
func (i *Installer) BinDir() string { return filepath.Join(i.Root, BinDirName) }

// ToolsDir returns <root>/tools.
func (i *Installer) ToolsDir() string { return filepath.Join(i.Root, ToolsDirName) }

// TemplatesDir returns <root>/templates.
func (i *Installer) TemplatesDir() string { return filepath.Join(i.Root, TemplatesDirName) }

// StdlibDir returns <root>/tools/stdlib.
func (i *Installer) StdlibDir() string { return filepath.Join(i.ToolsDir(), StdlibDirName) }

// EnsureLayout creates the bin/, tools/ and templates/ directories.
// Create-if-missing; never fails when they already exist.
func (i *Installer) EnsureLayout() error {
	for _, dir := range []string{i.BinDir(), i.ToolsDir(), i.TemplatesDir()} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return &StepError{Step: "create layout directory", Path: dir, Cause: err}
		}
	}
	return nil
}

// InstallBinary copies a validated component binary into its layout slot:
// the CLI under bin/, compiler and interpreter under tools/. Plain
// overwrite copy; executable bits carry over from the source.
func (i *Installer) InstallBinary(role artifact.Role, src string) error {
	destDir := i.ToolsDir()
	if role == artifact.RoleCLI {
		destDir = i.BinDir()
	}
	dest := filepath.Join(destDir, i.Platform.ExeName(role.BinaryName()))

	i.Logger.Debug("installing binary", "role", role, "src", src, "dest", dest)
	if err := CopyFile(src, dest); err != nil {
		return &StepError{Step: fmt.Sprintf("install %s binary", role.BinaryName()), Path: dest, Cause: err}
	}
	return nil
}

// ReplaceTemplates wholesale-replaces <root>/templates with the contents
// of src. The old tree is removed first so files dropped or renamed
// upstream never survive an upgrade.
func (i *Installer) ReplaceTemplates(src string) error {
	return i.replaceTree("replace templates", src, i.TemplatesDir())
}

// ReplaceStdlib wholesale-replaces <root>/tools/stdlib with the contents
// of src.
func (i *Installer) ReplaceStdlib(src string) error {
	return i.replaceTree("replace stdlib", src, i.StdlibDir())
}

func (i *Installer) replaceTree(step, src, dest string) error {
	i.Logger.Debug("replacing tree", "src", src, "dest", dest)

	// Check the source before destroying the destination: validation runs
	// first in the normal flow, but a bad call must not half-delete an
	// existing install.
	if info, err := os.Stat(src); err != nil || !info.IsDir() {
		return &StepError{Step: step, Path: src, Cause: fmt.Errorf("source is not a directory")}
	}

	if err := os.RemoveAll(dest); err != nil {
		return &StepError{Step: step, Path: dest, Cause: err}
	}
	if err := CopyTree(src, dest); err != nil {
		return &StepError{Step: step, Path: dest, Cause: err}
	}
	return nil
}
