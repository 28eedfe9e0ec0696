// SPDX-License-Identifier: MPL-2.0

package install

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/charmbracelet/log"

	"pordosol-setup/internal/artifact"
	"pordosol-setup/internal/platform"
	"pordosol-setup/internal/testutil"
)

func newTestInstaller(t *testing.T) *Installer {
	t.Helper()
	inst, err := New(t.TempDir(), platform.Current(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("failed to create installer: %v", err)
	}
	return inst
}

func TestNewAbsolutizesRoot(t *testing.T) {
	t.Cleanup(testutil.MustChdir(t, t.TempDir()))

	inst, err := New("relative-root", platform.Current(), log.New(io.Discard))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !filepath.IsAbs(inst.Root) {
		t.Errorf("expected absolute root, got %q", inst.Root)
	}
}

func TestEnsureLayoutIdempotent(t *testing.T) {
	inst := newTestInstaller(t)

	for run := 0; run < 2; run++ {
		if err := inst.EnsureLayout(); err != nil {
			t.Fatalf("run %d: unexpected error: %v", run, err)
		}
	}

	for _, dir := range []string{inst.BinDir(), inst.ToolsDir(), inst.TemplatesDir()} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory %s to exist", dir)
		}
	}
}

func TestInstallBinaryPlacement(t *testing.T) {
	inst := newTestInstaller(t)
	if err := inst.EnsureLayout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := t.TempDir()
	cli := filepath.Join(src, "pordosol")
	comp := filepath.Join(src, "compilador")
	testutil.WriteExecutable(t, cli, "cli-bytes")
	testutil.WriteExecutable(t, comp, "compiler-bytes")

	if err := inst.InstallBinary(artifact.RoleCLI, cli); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := inst.InstallBinary(artifact.RoleCompiler, comp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	p := platform.Current()
	cliDest := filepath.Join(inst.BinDir(), p.ExeName("pordosol"))
	compDest := filepath.Join(inst.ToolsDir(), p.ExeName("compilador"))

	if got := testutil.MustReadFile(t, cliDest); got != "cli-bytes" {
		t.Errorf("unexpected CLI contents: %q", got)
	}
	if got := testutil.MustReadFile(t, compDest); got != "compiler-bytes" {
		t.Errorf("unexpected compiler contents: %q", got)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(cliDest)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		if info.Mode().Perm()&0o111 == 0 {
			t.Error("expected installed CLI to keep executable bits")
		}
	}
}

func TestInstallBinaryOverwrites(t *testing.T) {
	inst := newTestInstaller(t)
	if err := inst.EnsureLayout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	src := filepath.Join(t.TempDir(), "pordosol")
	testutil.WriteExecutable(t, src, "v1")
	if err := inst.InstallBinary(artifact.RoleCLI, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	testutil.WriteExecutable(t, src, "v2")
	if err := inst.InstallBinary(artifact.RoleCLI, src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	dest := filepath.Join(inst.BinDir(), platform.Current().ExeName("pordosol"))
	if got := testutil.MustReadFile(t, dest); got != "v2" {
		t.Errorf("expected overwrite to v2, got %q", got)
	}
}

func TestInstallBinaryMissingSource(t *testing.T) {
	inst := newTestInstaller(t)
	if err := inst.EnsureLayout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := inst.InstallBinary(artifact.RoleCLI, filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, ErrInstallStep) {
		t.Errorf("expected ErrInstallStep, got %v", err)
	}
}

func TestReplaceTemplatesRemovesStaleFiles(t *testing.T) {
	inst := newTestInstaller(t)
	if err := inst.EnsureLayout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// Pre-existing template from an older version.
	testutil.WriteFile(t, filepath.Join(inst.TemplatesDir(), "console", "stale.tpl"), "old")

	src := t.TempDir()
	testutil.WriteFile(t, filepath.Join(src, "console", "main.tpl"), "new")
	testutil.WriteFile(t, filepath.Join(src, "web", "index.tpl"), "new")

	if err := inst.ReplaceTemplates(src); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(inst.TemplatesDir(), "console", "stale.tpl")); !os.IsNotExist(err) {
		t.Error("expected stale.tpl to be removed by wholesale replace")
	}
	if got := testutil.MustReadFile(t, filepath.Join(inst.TemplatesDir(), "console", "main.tpl")); got != "new" {
		t.Errorf("unexpected template contents: %q", got)
	}
	if _, err := os.Stat(filepath.Join(inst.TemplatesDir(), "web", "index.tpl")); err != nil {
		t.Errorf("expected new template tree to be copied: %v", err)
	}
}

func TestReplaceStdlibUpgradeScenario(t *testing.T) {
	inst := newTestInstaller(t)
	if err := inst.EnsureLayout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	v1 := t.TempDir()
	testutil.WriteFile(t, filepath.Join(v1, "core.std"), "v1")
	if err := inst.ReplaceStdlib(v1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(filepath.Join(inst.StdlibDir(), "core.std")); err != nil {
		t.Fatalf("expected core.std after first install: %v", err)
	}

	v2 := t.TempDir()
	testutil.WriteFile(t, filepath.Join(v2, "core2.std"), "v2")
	if err := inst.ReplaceStdlib(v2); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := os.Stat(filepath.Join(inst.StdlibDir(), "core.std")); !os.IsNotExist(err) {
		t.Error("expected core.std to be gone after upgrade")
	}
	if _, err := os.Stat(filepath.Join(inst.StdlibDir(), "core2.std")); err != nil {
		t.Errorf("expected core2.std after upgrade: %v", err)
	}
}

func TestReplaceTreeMissingSource(t *testing.T) {
	inst := newTestInstaller(t)
	if err := inst.EnsureLayout(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	err := inst.ReplaceStdlib(filepath.Join(t.TempDir(), "absent"))
	if !errors.Is(err, ErrInstallStep) {
		t.Errorf("expected ErrInstallStep for missing source, got %v", err)
	}

	var se *StepError
	if !errors.As(err, &se) {
		t.Fatalf("expected StepError, got %T", err)
	}
	if se.Step == "" || se.Path == "" {
		t.Errorf("expected step and path in error, got %+v", se)
	}
}
