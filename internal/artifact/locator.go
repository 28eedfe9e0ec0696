// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"pordosol-setup/internal/platform"
)

// Canonical component binary names of the Por do Sol toolchain.
const (
	CLIBinary         = "pordosol"
	CompilerBinary    = "compilador"
	InterpreterBinary = "interpretador"
)

// StdlibDirName is the standard-library directory name inside toolchain
// source trees.
const StdlibDirName = "sistema-padrao"

// releaseSubdir is where the external build tool places optimized outputs,
// relative to a project root.
var releaseSubdir = filepath.Join("target", "release")

// Role identifies which toolchain component an artifact is.
type Role string

const (
	RoleCLI         Role = "cli"
	RoleCompiler    Role = "compiler"
	RoleInterpreter Role = "interpreter"
)

// BinaryName returns the bare (suffix-less) binary name for the role.
func (r Role) BinaryName() string {
	switch r {
	case RoleCLI:
		return CLIBinary
	case RoleCompiler:
		return CompilerBinary
	case RoleInterpreter:
		return InterpreterBinary
	}
	return string(r)
}

// Sentinel errors for programmatic detection with errors.Is.
var (
	ErrMissingArtifact     = errors.New("missing build artifact")
	ErrMissingResourceTree = errors.New("missing resource tree")
)

// MissingArtifactError reports an expected build output that does not exist
// as a regular file. The Path is the exact path that was probed.
type MissingArtifactError struct {
	Role Role
	Path string
}

func (e *MissingArtifactError) Error() string {
	return fmt.Sprintf("%s binary not found at %s", e.Role.BinaryName(), e.Path)
}

func (e *MissingArtifactError) Unwrap() error { return ErrMissingArtifact }

// MissingResourceTreeError reports a required companion directory
// (templates, stdlib) that is absent or not a directory.
type MissingResourceTreeError struct {
	Name string
	Path string
}

func (e *MissingResourceTreeError) Error() string {
	return fmt.Sprintf("%s directory not found at %s", e.Name, e.Path)
}

func (e *MissingResourceTreeError) Unwrap() error { return ErrMissingResourceTree }

// Locator resolves and validates build outputs and resource trees.
// All checks are read-only; the locator never mutates the filesystem.
type Locator struct {
	Platform platform.Platform
}

// NewLocator creates a Locator for the given platform.
func NewLocator(p platform.Platform) Locator {
	return Locator{Platform: p}
}

// ResolveBinary returns the expected optimized build output for a role
// under projectRoot: <projectRoot>/target/release/<name>[.exe].
func (l Locator) ResolveBinary(projectRoot string, role Role) string {
	return filepath.Join(projectRoot, releaseSubdir, l.Platform.ExeName(role.BinaryName()))
}

// ValidateBinary confirms path is a regular file. Returns
// MissingArtifactError naming the probed path otherwise.
func (l Locator) ValidateBinary(role Role, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.Mode().IsRegular() {
		return &MissingArtifactError{Role: role, Path: path}
	}
	return nil
}

// ValidateTree confirms path is a directory. Returns
// MissingResourceTreeError otherwise.
func ValidateTree(name, path string) error {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return &MissingResourceTreeError{Name: name, Path: path}
	}
	return nil
}

// ValidateStdlib confirms path is a usable standard-library tree: a
// directory containing a Sistema.toml manifest or a src/ subdirectory.
func ValidateStdlib(path string) error {
	if !IsStdlibDir(path) {
		return &MissingResourceTreeError{Name: "stdlib", Path: path}
	}
	return nil
}

// IsStdlibDir reports whether path looks like a standard-library tree.
func IsStdlibDir(path string) bool {
	info, err := os.Stat(path)
	if err != nil || !info.IsDir() {
		return false
	}
	if fi, err := os.Stat(filepath.Join(path, "Sistema.toml")); err == nil && fi.Mode().IsRegular() {
		return true
	}
	if fi, err := os.Stat(filepath.Join(path, "src")); err == nil && fi.IsDir() {
		return true
	}
	return false
}
