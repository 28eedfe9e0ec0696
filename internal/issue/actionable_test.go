// SPDX-License-Identifier: MPL-2.0

package issue

import (
	"errors"
	"strings"
	"testing"
)

func TestActionableErrorMessage(t *testing.T) {
	cause := errors.New("permission denied")
	err := NewErrorContext().
		WithOperation("copy stdlib tree").
		WithResource("/opt/sdk/tools/stdlib").
		Wrap(cause).
		Build()

	want := "failed to copy stdlib tree: /opt/sdk/tools/stdlib: permission denied"
	if err.Error() != want {
		t.Errorf("expected %q, got %q", want, err.Error())
	}

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to find the wrapped cause")
	}
}

func TestActionableErrorFormatSuggestions(t *testing.T) {
	err := NewErrorContext().
		WithOperation("update shell profile").
		WithResource("~/.bashrc").
		WithSuggestion("Check the file's permissions").
		WithSuggestion("Re-run the installer").
		Build()

	out := err.Format(false)
	if !strings.Contains(out, "• Check the file's permissions") {
		t.Errorf("expected first suggestion in output, got %q", out)
	}
	if !strings.Contains(out, "• Re-run the installer") {
		t.Errorf("expected second suggestion in output, got %q", out)
	}
	if strings.Contains(out, "Error chain") {
		t.Error("non-verbose format should not include the error chain")
	}
}

func TestActionableErrorFormatVerboseChain(t *testing.T) {
	inner := errors.New("disk full")
	middle := WrapWithOperation(inner, "write file")
	err := NewErrorContext().
		WithOperation("install binary").
		Wrap(middle).
		Build()

	out := err.Format(true)
	if !strings.Contains(out, "Error chain:") {
		t.Errorf("expected error chain in verbose output, got %q", out)
	}
	if !strings.Contains(out, "disk full") {
		t.Errorf("expected root cause in chain, got %q", out)
	}
}

func TestBuildRequiresOperation(t *testing.T) {
	if err := NewErrorContext().WithResource("somewhere").Build(); err != nil {
		t.Errorf("expected nil without operation, got %v", err)
	}
	if err := NewErrorContext().WithResource("somewhere").BuildError(); err != nil {
		t.Errorf("expected nil error without operation, got %v", err)
	}
}

func TestWrapWithContextNil(t *testing.T) {
	if got := WrapWithContext(nil, "op", "res"); got != nil {
		t.Errorf("expected nil for nil cause, got %v", got)
	}
}
