// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"pordosol-setup/internal/config"
	"pordosol-setup/internal/release"
)

var (
	packageVersion  string
	packagePlatform string
	packageBinary   string
	packageOutput   string
	packageName     string
	packageSignKey  string

	packageCompiler    string
	packageInterpreter string
	packageStdlib      string
	packageTemplates   string

	packageCmd = &cobra.Command{
		Use:   "package",
		Short: "Assemble a versioned release archive with checksum sidecar",
		Long: `Stage a pre-built CLI binary (plus any companion artifacts) into the
SDK layout, archive it as <name>-<version>-<platform>.zip or .tar.gz
depending on the target platform, and write a sha256sum-compatible
checksum sidecar next to it.

Companion artifacts are picked up from flags, or from the environment
when the flags are unset:

  PORDOSOL_COMPILADOR_PATH     compiler binary
  PORDOSOL_INTERPRETADOR_PATH  interpreter binary
  PORDOSOL_STDLIB_PATH         standard library tree
  PORDOSOL_TEMPLATES_PATH      templates tree

An archive containing only the CLI binary is valid. When a minisign
secret key is supplied (--sign-key or PORDOSOL_MINISIGN_KEY) the archive
is signed as well.`,
		RunE: runPackage,
	}
)

func init() {
	packageCmd.Flags().StringVar(&packageVersion, "version", "", "release version (required)")
	packageCmd.Flags().StringVar(&packagePlatform, "platform", "", "target platform tag, e.g. linux-x64 or windows-x64 (required)")
	packageCmd.Flags().StringVar(&packageBinary, "binary", "", "pre-built CLI binary to package (required)")
	packageCmd.Flags().StringVar(&packageOutput, "output", "", "output directory (default \"dist\")")
	packageCmd.Flags().StringVar(&packageName, "name", "", "product name used in the archive filename (default \"pordosol\")")
	packageCmd.Flags().StringVar(&packageSignKey, "sign-key", "", "minisign secret key used to sign the archive")
	packageCmd.Flags().StringVar(&packageCompiler, "compiler", "", "compiler binary to bundle (default $PORDOSOL_COMPILADOR_PATH)")
	packageCmd.Flags().StringVar(&packageInterpreter, "interpreter", "", "interpreter binary to bundle (default $PORDOSOL_INTERPRETADOR_PATH)")
	packageCmd.Flags().StringVar(&packageStdlib, "stdlib", "", "standard library tree to bundle (default $PORDOSOL_STDLIB_PATH)")
	packageCmd.Flags().StringVar(&packageTemplates, "templates", "", "templates tree to bundle (default $PORDOSOL_TEMPLATES_PATH)")

	_ = packageCmd.MarkFlagRequired("version")
	_ = packageCmd.MarkFlagRequired("platform")
	_ = packageCmd.MarkFlagRequired("binary")
}

func runPackage(cmd *cobra.Command, _ []string) error {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	logger := newLogger(cmd.ErrOrStderr())

	req := release.Request{
		Name:        firstNonEmpty(packageName, cfg.Package.Name),
		Version:     packageVersion,
		PlatformTag: packagePlatform,
		BinaryPath:  packageBinary,
		OutputDir:   firstNonEmpty(packageOutput, cfg.Package.Output),
		DocsDir:     ".",
		Companions: release.Companions{
			Compiler:    firstNonEmpty(packageCompiler, os.Getenv(config.EnvCompilerPath)),
			Interpreter: firstNonEmpty(packageInterpreter, os.Getenv(config.EnvInterpreterPath)),
			Stdlib:      firstNonEmpty(packageStdlib, os.Getenv(config.EnvStdlibPath)),
			Templates:   firstNonEmpty(packageTemplates, os.Getenv(config.EnvTemplatesPath)),
		},
		SignSecretKey: firstNonEmpty(packageSignKey, os.Getenv(config.EnvSignKey)),
	}

	result, err := release.NewPackager(logger).Package(req)
	if err != nil {
		return &ExitError{Code: 1, Err: err}
	}

	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+"Release archive "+PathStyle.Render(result.ArchivePath))
	fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+"Checksum        "+PathStyle.Render(result.ChecksumPath))
	if result.SignaturePath != "" {
		fmt.Fprintln(cmd.OutOrStdout(), SuccessStyle.Render("✓ ")+"Signature       "+PathStyle.Render(result.SignaturePath))
	}
	return nil
}
