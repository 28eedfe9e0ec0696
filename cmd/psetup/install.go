// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"pordosol-setup/internal/artifact"
	"pordosol-setup/internal/buildtool"
	"pordosol-setup/internal/config"
	"pordosol-setup/internal/envcfg"
	"pordosol-setup/internal/install"
	"pordosol-setup/internal/issue"
	"pordosol-setup/internal/platform"
)

// templatesSubdir is where the CLI project keeps its project templates.
const templatesSubdir = "templates"

var (
	installRoot             string
	installCLIProject       string
	installToolchainProject string
	installStdlib           string
	installTemplates        string
	installSkipBuild        bool
	installNoPath           bool

	installCmd = &cobra.Command{
		Use:   "install",
		Short: "Build the toolchain and install it as a self-contained SDK",
		Long: `Build the Por do Sol binaries in release mode and lay them out under
the installation root:

  <root>/bin/pordosol
  <root>/tools/compilador
  <root>/tools/interpretador
  <root>/tools/stdlib/
  <root>/templates/

The standard library and templates are replaced wholesale on every run,
so stale files never survive an upgrade. Shell startup files (or the
user registry on Windows) are updated to export PORDOSOL_HOME and put
the bin directory on PATH; pass --no-path to leave PATH alone.`,
		RunE: runInstall,
	}
)

func init() {
	installCmd.Flags().StringVar(&installRoot, "root", "", "installation root (default $PORDOSOL_HOME or ~/.pordosol)")
	installCmd.Flags().StringVar(&installCLIProject, "cli-project", "", "directory of the CLI project")
	installCmd.Flags().StringVar(&installToolchainProject, "toolchain-project", "", "directory of the compiler/interpreter project")
	installCmd.Flags().StringVar(&installStdlib, "stdlib", "", "standard library tree to install (default <toolchain-project>/sistema-padrao)")
	installCmd.Flags().StringVar(&installTemplates, "templates", "", "templates tree to install (default <cli-project>/templates)")
	installCmd.Flags().BoolVar(&installSkipBuild, "skip-build", false, "install existing release binaries without rebuilding")
	installCmd.Flags().BoolVar(&installNoPath, "no-path", false, "do not add the bin directory to PATH")
}

// newInvoker builds the configured build tool. Swapped in tests for a fake
// that drops pre-built fixtures instead of running cargo.
var newInvoker = func(command string, logger *log.Logger) (buildtool.Invoker, error) {
	if command != "" {
		return buildtool.NewScriptInvoker(command, logger)
	}
	return buildtool.NewCargoInvoker(logger)
}

// installPlan is the fully resolved set of paths an install run works with.
type installPlan struct {
	Root             string
	CLIProject       string
	ToolchainProject string
	Stdlib           string
	Templates        string
}

// resolveInstallPlan merges flags over config and fills in derived defaults.
func resolveInstallPlan(c *config.Config) (*installPlan, error) {
	plan := &installPlan{
		Root:             firstNonEmpty(installRoot, c.Install.Root),
		CLIProject:       firstNonEmpty(installCLIProject, c.Install.CLIProject),
		ToolchainProject: firstNonEmpty(installToolchainProject, c.Install.ToolchainProject),
		Stdlib:           firstNonEmpty(installStdlib, c.Install.Stdlib),
		Templates:        firstNonEmpty(installTemplates, c.Install.Templates),
	}

	if plan.Root == "" {
		root, err := config.DefaultRoot()
		if err != nil {
			return nil, err
		}
		plan.Root = root
	}
	if plan.Stdlib == "" {
		plan.Stdlib = filepath.Join(plan.ToolchainProject, artifact.StdlibDirName)
	}
	if plan.Templates == "" {
		plan.Templates = filepath.Join(plan.CLIProject, templatesSubdir)
	}
	return plan, nil
}

func runInstall(cmd *cobra.Command, _ []string) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := newLogger(cmd.ErrOrStderr())
	plat := platform.Current()

	plan, err := resolveInstallPlan(cfg)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	if !installSkipBuild {
		if err := buildProjects(cmd, logger, plan); err != nil {
			return &ExitError{Code: 1, Err: err}
		}
	}

	locator := artifact.NewLocator(plat)
	cliBin := locator.ResolveBinary(plan.CLIProject, artifact.RoleCLI)
	compilerBin := locator.ResolveBinary(plan.ToolchainProject, artifact.RoleCompiler)
	interpreterBin := locator.ResolveBinary(plan.ToolchainProject, artifact.RoleInterpreter)

	// Validate every source before the first destination mutation, so a
	// missing artifact can never leave a half-replaced install behind.
	if err := validateSources(locator, plan, cliBin, compilerBin, interpreterBin); err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	inst, err := install.New(plan.Root, plat, logger)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	logger.Info("installing", "root", inst.Root)
	if err := inst.EnsureLayout(); err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if err := inst.InstallBinary(artifact.RoleCLI, cliBin); err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if err := inst.InstallBinary(artifact.RoleCompiler, compilerBin); err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if err := inst.InstallBinary(artifact.RoleInterpreter, interpreterBin); err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if err := inst.ReplaceTemplates(plan.Templates); err != nil {
		return &ExitError{Code: 1, Err: err}
	}
	if err := inst.ReplaceStdlib(plan.Stdlib); err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	if manifest, err := artifact.ReadStdlibManifest(inst.StdlibDir()); err == nil {
		logger.Info("installed standard library", "name", manifest.Nome, "version", manifest.Versao)
	}

	// Environment wiring failures are warnings: the layout is complete and
	// a re-run (or manual edit) repairs the environment.
	configureEnvironment(cmd, logger, plat, inst)

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+"Por do Sol installed to "+PathStyle.Render(inst.Root))
	fmt.Fprintln(cmd.OutOrStdout(), SubtitleStyle.Render("  Restart your shell (or re-source your profile) to pick up the new environment."))
	return nil
}

// buildProjects runs release builds for the CLI and toolchain projects.
// When both point at the same directory, a single invocation builds all
// three targets.
func buildProjects(cmd *cobra.Command, logger *log.Logger, plan *installPlan) error {
	invoker, err := newInvoker(cfg.Build.Command, logger)
	if err != nil {
		return err
	}

	ctx := cmd.Context()

	cliAbs, err := filepath.Abs(plan.CLIProject)
	if err != nil {
		return fmt.Errorf("resolve cli project path: %w", err)
	}
	toolchainAbs, err := filepath.Abs(plan.ToolchainProject)
	if err != nil {
		return fmt.Errorf("resolve toolchain project path: %w", err)
	}

	if cliAbs == toolchainAbs {
		logger.Info("building toolchain", "dir", plan.CLIProject)
		return invoker.Run(ctx, plan.CLIProject, []string{
			artifact.CLIBinary, artifact.CompilerBinary, artifact.InterpreterBinary,
		})
	}

	logger.Info("building CLI", "dir", plan.CLIProject)
	if err := invoker.Run(ctx, plan.CLIProject, []string{artifact.CLIBinary}); err != nil {
		return err
	}
	logger.Info("building compiler and interpreter", "dir", plan.ToolchainProject)
	return invoker.Run(ctx, plan.ToolchainProject, []string{
		artifact.CompilerBinary, artifact.InterpreterBinary,
	})
}

// validateSources checks every install input up front.
func validateSources(locator artifact.Locator, plan *installPlan, cliBin, compilerBin, interpreterBin string) error {
	if err := locator.ValidateBinary(artifact.RoleCLI, cliBin); err != nil {
		return wrapMissingArtifact(err)
	}
	if err := locator.ValidateBinary(artifact.RoleCompiler, compilerBin); err != nil {
		return wrapMissingArtifact(err)
	}
	if err := locator.ValidateBinary(artifact.RoleInterpreter, interpreterBin); err != nil {
		return wrapMissingArtifact(err)
	}
	if err := artifact.ValidateStdlib(plan.Stdlib); err != nil {
		return issue.NewErrorContext().
			WithOperation("validate standard library").
			WithResource(plan.Stdlib).
			WithSuggestion("Pass --stdlib with the path to the sistema-padrao tree").
			WithSuggestion("A valid tree contains a Sistema.toml manifest or a src/ directory").
			Wrap(err).
			BuildError()
	}
	if err := artifact.ValidateTree(templatesSubdir, plan.Templates); err != nil {
		return issue.NewErrorContext().
			WithOperation("validate templates").
			WithResource(plan.Templates).
			WithSuggestion("Pass --templates with the path to the templates tree").
			Wrap(err).
			BuildError()
	}
	return nil
}

func wrapMissingArtifact(err error) error {
	return issue.NewErrorContext().
		WithOperation("locate build output").
		WithSuggestion("Run without --skip-build to build the binaries first").
		WithSuggestion("Check that --cli-project / --toolchain-project point at the right directories").
		Wrap(err).
		BuildError()
}

// configureEnvironment persists PORDOSOL_HOME and the PATH entry, reporting
// failures as warnings.
func configureEnvironment(cmd *cobra.Command, logger *log.Logger, plat platform.Platform, inst *install.Installer) {
	configurator, err := envcfg.New(plat, logger)
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Warning: ")+formatErrorForDisplay(err, verbose))
		return
	}
	errs := configurator.Apply(envcfg.Options{
		Root:   inst.Root,
		BinDir: inst.BinDir(),
		NoPath: installNoPath,
	})
	for _, applyErr := range errs {
		fmt.Fprintln(cmd.ErrOrStderr(), WarningStyle.Render("Warning: ")+formatErrorForDisplay(applyErr, verbose))
	}
	if len(errs) > 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), SubtitleStyle.Render("  The install itself succeeded; re-run to retry environment configuration."))
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
