// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"strings"
	"testing"

	"pordosol-setup/internal/issue"
)

func TestFormatErrorForDisplayPlain(t *testing.T) {
	err := errors.New("boom")
	if got := formatErrorForDisplay(err, false); got != "boom" {
		t.Errorf("formatErrorForDisplay() = %q, want %q", got, "boom")
	}
}

func TestFormatErrorForDisplayActionable(t *testing.T) {
	err := issue.NewErrorContext().
		WithOperation("copy stdlib tree").
		WithResource("/tmp/stdlib").
		WithSuggestion("Check the path exists").
		Wrap(errors.New("permission denied")).
		BuildError()

	got := formatErrorForDisplay(err, false)
	if !strings.Contains(got, "copy stdlib tree") {
		t.Errorf("formatted error should include the operation, got: %q", got)
	}
	if !strings.Contains(got, "Check the path exists") {
		t.Errorf("formatted error should include suggestions, got: %q", got)
	}
}

func TestFormatErrorForDisplayVerboseShowsChain(t *testing.T) {
	inner := errors.New("disk full")
	err := issue.WrapWithContext(inner, "write archive", "/dist/pordosol.tar.gz")

	got := formatErrorForDisplay(err, true)
	if !strings.Contains(got, "disk full") {
		t.Errorf("verbose output should include the cause, got: %q", got)
	}
}

func TestGetVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() { Version, Commit, BuildDate = origVersion, origCommit, origDate })

	Version = "dev"
	if got := getVersionString(); got != "dev (built from source)" {
		t.Errorf("getVersionString() = %q", got)
	}

	Version, Commit, BuildDate = "1.2.3", "abc123", "2026-01-01"
	got := getVersionString()
	if !strings.Contains(got, "1.2.3") || !strings.Contains(got, "abc123") {
		t.Errorf("getVersionString() = %q, want version and commit", got)
	}
}

func TestExitErrorMessage(t *testing.T) {
	err := &ExitError{Code: 1, Err: errors.New("install failed")}
	if err.Error() != "install failed" {
		t.Errorf("Error() = %q", err.Error())
	}

	bare := &ExitError{Code: 3}
	if bare.Error() != "exit status 3" {
		t.Errorf("Error() = %q", bare.Error())
	}

	if !errors.Is(err, err.Err) {
		t.Error("ExitError should unwrap to its cause")
	}
}
