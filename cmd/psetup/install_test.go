// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pordosol-setup/internal/buildtool"
	"pordosol-setup/internal/config"
	"pordosol-setup/internal/platform"
	"pordosol-setup/internal/testutil"
)

// fakeInvoker drops empty executable fixtures where a real release build
// would put them.
type fakeInvoker struct {
	runs []string
}

func (f *fakeInvoker) Run(_ context.Context, workDir string, targets []string) error {
	f.runs = append(f.runs, workDir)
	plat := platform.Current()
	for _, target := range targets {
		path := filepath.Join(workDir, "target", "release", plat.ExeName(target))
		testWriteExecutable(path)
	}
	return nil
}

func testWriteExecutable(path string) {
	_ = os.MkdirAll(filepath.Dir(path), 0o755)
	_ = os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755)
}

// resetInstallFlags restores the package-level flag state between tests.
func resetInstallFlags(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		installRoot = ""
		installCLIProject = ""
		installToolchainProject = ""
		installStdlib = ""
		installTemplates = ""
		installSkipBuild = false
		installNoPath = false
		cfg = nil
		verbose = false
	})
}

// installFixture lays out source projects with a stdlib and templates tree.
func installFixture(t *testing.T) (cliProject, toolchainProject string) {
	t.Helper()
	cliProject = t.TempDir()
	toolchainProject = t.TempDir()

	testutil.WriteFile(t, filepath.Join(toolchainProject, "sistema-padrao", "Sistema.toml"),
		"nome = \"sistema-padrao\"\nversao = \"0.1.0\"\n")
	testutil.WriteFile(t, filepath.Join(toolchainProject, "sistema-padrao", "src", "core.pds"), "modulo core\n")
	testutil.WriteFile(t, filepath.Join(cliProject, "templates", "padrao", "principal.pds"), "inicio\n")
	return cliProject, toolchainProject
}

func newTestCommand() (*cobra.Command, *bytes.Buffer, *bytes.Buffer) {
	cmd := &cobra.Command{}
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	return cmd, &out, &errOut
}

func TestInstallEndToEnd(t *testing.T) {
	resetInstallFlags(t)
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Cleanup(testutil.MustUnsetenv(t, config.EnvHome))

	cliProject, toolchainProject := installFixture(t)
	root := filepath.Join(t.TempDir(), "sdk")

	fake := &fakeInvoker{}
	origInvoker := newInvoker
	newInvoker = func(string, *log.Logger) (buildtool.Invoker, error) { return fake, nil }
	t.Cleanup(func() { newInvoker = origInvoker })

	cfg = config.DefaultConfig()
	installRoot = root
	installCLIProject = cliProject
	installToolchainProject = toolchainProject

	cmd, out, _ := newTestCommand()
	if err := runInstall(cmd, nil); err != nil {
		t.Fatalf("runInstall() error = %v", err)
	}

	if len(fake.runs) != 2 {
		t.Errorf("invoker ran %d times, want 2 (CLI project + toolchain project)", len(fake.runs))
	}

	plat := platform.Current()
	for _, path := range []string{
		filepath.Join(root, "bin", plat.ExeName("pordosol")),
		filepath.Join(root, "tools", plat.ExeName("compilador")),
		filepath.Join(root, "tools", plat.ExeName("interpretador")),
		filepath.Join(root, "tools", "stdlib", "Sistema.toml"),
		filepath.Join(root, "tools", "stdlib", "src", "core.pds"),
		filepath.Join(root, "templates", "padrao", "principal.pds"),
	} {
		if _, err := os.Stat(path); err != nil {
			t.Errorf("expected %s after install: %v", path, err)
		}
	}

	if !bytes.Contains(out.Bytes(), []byte(root)) {
		t.Errorf("success output should name the root, got: %s", out.String())
	}
}

func TestInstallSharedProjectBuildsOnce(t *testing.T) {
	resetInstallFlags(t)
	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
	t.Cleanup(testutil.MustUnsetenv(t, config.EnvHome))

	project := t.TempDir()
	testutil.WriteFile(t, filepath.Join(project, "sistema-padrao", "src", "core.pds"), "modulo core\n")
	testutil.WriteFile(t, filepath.Join(project, "templates", "padrao", "principal.pds"), "inicio\n")

	fake := &fakeInvoker{}
	origInvoker := newInvoker
	newInvoker = func(string, *log.Logger) (buildtool.Invoker, error) { return fake, nil }
	t.Cleanup(func() { newInvoker = origInvoker })

	cfg = config.DefaultConfig()
	installRoot = filepath.Join(t.TempDir(), "sdk")
	installCLIProject = project
	installToolchainProject = project

	cmd, _, _ := newTestCommand()
	if err := runInstall(cmd, nil); err != nil {
		t.Fatalf("runInstall() error = %v", err)
	}
	if len(fake.runs) != 1 {
		t.Errorf("invoker ran %d times, want 1 for a shared project directory", len(fake.runs))
	}
}

func TestInstallSkipBuildMissingArtifactLeavesRootUntouched(t *testing.T) {
	resetInstallFlags(t)
	t.Cleanup(testutil.SetHomeDir(t, t.TempDir()))
	t.Cleanup(testutil.MustUnsetenv(t, config.EnvHome))

	cliProject, toolchainProject := installFixture(t)
	// No binaries built; --skip-build means validation must fail.

	root := filepath.Join(t.TempDir(), "sdk")
	cfg = config.DefaultConfig()
	installRoot = root
	installCLIProject = cliProject
	installToolchainProject = toolchainProject
	installSkipBuild = true

	cmd, _, _ := newTestCommand()
	err := runInstall(cmd, nil)
	if err == nil {
		t.Fatal("expected error for missing build outputs")
	}
	if _, statErr := os.Stat(root); !os.IsNotExist(statErr) {
		t.Errorf("root %s should not exist after failed validation", root)
	}
}

func TestInstallSkipBuildUsesExistingBinaries(t *testing.T) {
	resetInstallFlags(t)
	home := t.TempDir()
	t.Cleanup(testutil.SetHomeDir(t, home))
	t.Cleanup(testutil.MustUnsetenv(t, config.EnvHome))

	cliProject, toolchainProject := installFixture(t)
	plat := platform.Current()
	testWriteExecutable(filepath.Join(cliProject, "target", "release", plat.ExeName("pordosol")))
	testWriteExecutable(filepath.Join(toolchainProject, "target", "release", plat.ExeName("compilador")))
	testWriteExecutable(filepath.Join(toolchainProject, "target", "release", plat.ExeName("interpretador")))

	// The invoker must never run.
	origInvoker := newInvoker
	newInvoker = func(string, *log.Logger) (buildtool.Invoker, error) {
		t.Error("invoker constructed despite --skip-build")
		return &fakeInvoker{}, nil
	}
	t.Cleanup(func() { newInvoker = origInvoker })

	cfg = config.DefaultConfig()
	installRoot = filepath.Join(t.TempDir(), "sdk")
	installCLIProject = cliProject
	installToolchainProject = toolchainProject
	installSkipBuild = true

	cmd, _, _ := newTestCommand()
	if err := runInstall(cmd, nil); err != nil {
		t.Fatalf("runInstall() error = %v", err)
	}
}

func TestResolveInstallPlanDefaults(t *testing.T) {
	resetInstallFlags(t)
	t.Cleanup(testutil.MustSetenv(t, config.EnvHome, "/env/root"))

	plan, err := resolveInstallPlan(config.DefaultConfig())
	if err != nil {
		t.Fatalf("resolveInstallPlan() error = %v", err)
	}
	if plan.Root != "/env/root" {
		t.Errorf("Root = %q, want %q", plan.Root, "/env/root")
	}
	if want := filepath.Join(".", "sistema-padrao"); plan.Stdlib != want {
		t.Errorf("Stdlib = %q, want %q", plan.Stdlib, want)
	}
	if want := filepath.Join(".", "templates"); plan.Templates != want {
		t.Errorf("Templates = %q, want %q", plan.Templates, want)
	}
}

func TestResolveInstallPlanFlagsWinOverConfig(t *testing.T) {
	resetInstallFlags(t)

	c := config.DefaultConfig()
	c.Install.Root = "/config/root"
	c.Install.Stdlib = "/config/stdlib"
	installRoot = "/flag/root"

	plan, err := resolveInstallPlan(c)
	if err != nil {
		t.Fatalf("resolveInstallPlan() error = %v", err)
	}
	if plan.Root != "/flag/root" {
		t.Errorf("Root = %q, want flag value", plan.Root)
	}
	if plan.Stdlib != "/config/stdlib" {
		t.Errorf("Stdlib = %q, want config value", plan.Stdlib)
	}
}
