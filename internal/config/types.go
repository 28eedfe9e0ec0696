// SPDX-License-Identifier: MPL-2.0

package config

// Config is the fully resolved tool configuration.
type Config struct {
	Install InstallConfig `mapstructure:"install"`
	Build   BuildConfig   `mapstructure:"build"`
	Package PackageConfig `mapstructure:"package"`
	UI      UIConfig      `mapstructure:"ui"`
}

// InstallConfig controls where artifacts come from and where they land.
// Empty source paths are derived from the project directories at install
// time (stdlib under the toolchain project, templates under the CLI
// project); an empty root resolves to PORDOSOL_HOME, then ~/.pordosol.
type InstallConfig struct {
	Root             string `mapstructure:"root"`
	CLIProject       string `mapstructure:"cli_project"`
	ToolchainProject string `mapstructure:"toolchain_project"`
	Stdlib           string `mapstructure:"stdlib"`
	Templates        string `mapstructure:"templates"`
}

// BuildConfig customizes the external build invocation.
type BuildConfig struct {
	// Command, when set, replaces the default cargo invocation and runs
	// through the embedded shell interpreter.
	Command string `mapstructure:"command"`
}

// PackageConfig controls release packaging defaults.
type PackageConfig struct {
	Output string `mapstructure:"output"`
	Name   string `mapstructure:"name"`
}

// UIConfig controls output behavior.
type UIConfig struct {
	Verbose bool `mapstructure:"verbose"`
}

// DefaultConfig returns the built-in defaults used when no config file or
// environment overrides are present.
func DefaultConfig() *Config {
	return &Config{
		Install: InstallConfig{
			CLIProject:       ".",
			ToolchainProject: ".",
		},
		Package: PackageConfig{
			Output: "dist",
			Name:   "pordosol",
		},
	}
}
