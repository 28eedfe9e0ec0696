// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"pordosol-setup/internal/artifact"
	"pordosol-setup/internal/config"
	"pordosol-setup/internal/install"
	"pordosol-setup/internal/issue"
	"pordosol-setup/internal/platform"
)

var (
	doctorRoot string

	doctorCmd = &cobra.Command{
		Use:   "doctor",
		Short: "Diagnose the current installation",
		Long: `Inspect the installation root and report the presence and location of
every SDK component: the CLI, the compiler, the interpreter, the
standard library, and the project templates. Exits with status 1 when
any component is missing. Doctor never modifies anything.`,
		RunE: runDoctor,
	}
)

func init() {
	doctorCmd.Flags().StringVar(&doctorRoot, "root", "", "installation root to inspect (default $PORDOSOL_HOME or ~/.pordosol)")
}

// componentCheck is one row of doctor output.
type componentCheck struct {
	Label string
	Path  string
	OK    bool
	Note  string
}

func runDoctor(cmd *cobra.Command, _ []string) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	plat := platform.Current()

	root := firstNonEmpty(doctorRoot, cfg.Install.Root)
	if root == "" {
		resolved, err := config.DefaultRoot()
		if err != nil {
			return &ExitError{Code: 1, Err: err}
		}
		root = resolved
	}

	inst, err := install.New(root, plat, newLogger(cmd.ErrOrStderr()))
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	checks := diagnoseLayout(inst, plat)

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, TitleStyle.Render("Por do Sol installation")+" "+PathStyle.Render(inst.Root))
	for _, check := range checks {
		mark := SuccessStyle.Render("✓")
		if !check.OK {
			mark = ErrorStyle.Render("✗")
		}
		line := fmt.Sprintf("  %s %-12s %s", mark, check.Label, check.Path)
		if check.Note != "" {
			line += " " + SubtitleStyle.Render("("+check.Note+")")
		}
		fmt.Fprintln(out, line)
	}

	if !allOK(checks) {
		if guidance, err := issue.Lookup(issue.ToolchainNotReadyId).Render("auto"); err == nil {
			fmt.Fprintln(out, guidance)
		}
		return &ExitError{Code: 1, Err: fmt.Errorf("installation at %s is not ready", inst.Root)}
	}

	fmt.Fprintln(out, SuccessStyle.Render("Toolchain ready."))
	return nil
}

// diagnoseLayout probes each component of the SDK layout read-only.
func diagnoseLayout(inst *install.Installer, plat platform.Platform) []componentCheck {
	checks := []componentCheck{
		checkFile("CLI", filepath.Join(inst.BinDir(), plat.ExeName(artifact.CLIBinary))),
		checkFile("compiler", filepath.Join(inst.ToolsDir(), plat.ExeName(artifact.CompilerBinary))),
		checkFile("interpreter", filepath.Join(inst.ToolsDir(), plat.ExeName(artifact.InterpreterBinary))),
	}

	stdlib := componentCheck{Label: "stdlib", Path: inst.StdlibDir(), OK: artifact.IsStdlibDir(inst.StdlibDir())}
	if stdlib.OK {
		if manifest, err := artifact.ReadStdlibManifest(inst.StdlibDir()); err == nil {
			stdlib.Note = manifest.Nome + " " + manifest.Versao
		}
	}
	checks = append(checks, stdlib)

	templates := componentCheck{Label: "templates", Path: inst.TemplatesDir()}
	if info, err := os.Stat(inst.TemplatesDir()); err == nil && info.IsDir() {
		templates.OK = true
	}
	return append(checks, templates)
}

func checkFile(label, path string) componentCheck {
	info, err := os.Stat(path)
	return componentCheck{
		Label: label,
		Path:  path,
		OK:    err == nil && info.Mode().IsRegular(),
	}
}

func allOK(checks []componentCheck) bool {
	for _, check := range checks {
		if !check.OK {
			return false
		}
	}
	return true
}
