// SPDX-License-Identifier: MPL-2.0

package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/spf13/viper"

	"pordosol-setup/internal/issue"
	"pordosol-setup/internal/platform"
	"pordosol-setup/pkg/cueutil"
)

const (
	// AppName is the application name, also the config directory name.
	AppName = "psetup"
	// ConfigFileName is the name of the config file (without extension).
	ConfigFileName = "config"
	// ConfigFileExt is the config file extension.
	ConfigFileExt = "cue"
)

// Environment variables consumed by the tool. PORDOSOL_HOME doubles as the
// default-root override on read and is exported on install; the *_PATH
// variables supply packaging companions.
const (
	EnvHome            = "PORDOSOL_HOME"
	EnvCompilerPath    = "PORDOSOL_COMPILADOR_PATH"
	EnvInterpreterPath = "PORDOSOL_INTERPRETADOR_PATH"
	EnvStdlibPath      = "PORDOSOL_STDLIB_PATH"
	EnvTemplatesPath   = "PORDOSOL_TEMPLATES_PATH"
	EnvSignKey         = "PORDOSOL_MINISIGN_KEY"
)

//go:embed config_schema.cue
var configSchema string

// Test/flag overrides for config resolution.
var (
	configFileOverride string
	configDirOverride  string
)

// SetConfigFilePathOverride points Load at an explicit config file
// (the --config flag).
func SetConfigFilePathOverride(path string) { configFileOverride = path }

// SetConfigDirOverride replaces the platform config directory, for tests.
func SetConfigDirOverride(dir string) { configDirOverride = dir }

// ConfigDir returns the psetup configuration directory using
// platform-specific conventions: Windows uses %APPDATA%, macOS uses
// ~/Library/Application Support, and Linux/others use $XDG_CONFIG_HOME
// (defaulting to ~/.config).
func ConfigDir() (string, error) {
	if configDirOverride != "" {
		return configDirOverride, nil
	}

	var configDir string

	switch runtime.GOOS {
	case platform.Windows:
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			configDir = filepath.Join(os.Getenv("USERPROFILE"), "AppData", "Roaming")
		}
	case platform.Darwin:
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configDir = filepath.Join(home, "Library", "Application Support")
	default: // Linux and others
		configDir = os.Getenv("XDG_CONFIG_HOME")
		if configDir == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return "", fmt.Errorf("failed to get home directory: %w", err)
			}
			configDir = filepath.Join(home, ".config")
		}
	}

	return filepath.Join(configDir, AppName), nil
}

// DefaultRoot resolves the installation root when neither flag nor config
// file sets one: PORDOSOL_HOME if set, otherwise ~/.pordosol.
func DefaultRoot() (string, error) {
	if root := os.Getenv(EnvHome); root != "" {
		return root, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, ".pordosol"), nil
}

// Load reads configuration with standard precedence: explicit --config
// file, else config.cue in the platform config directory, else defaults.
// PORDOSOL_HOME overrides install.root regardless of source.
func Load() (*Config, error) {
	v := viper.New()

	defaults := DefaultConfig()
	v.SetDefault("install.root", defaults.Install.Root)
	v.SetDefault("install.cli_project", defaults.Install.CLIProject)
	v.SetDefault("install.toolchain_project", defaults.Install.ToolchainProject)
	v.SetDefault("install.stdlib", defaults.Install.Stdlib)
	v.SetDefault("install.templates", defaults.Install.Templates)
	v.SetDefault("build.command", defaults.Build.Command)
	v.SetDefault("package.output", defaults.Package.Output)
	v.SetDefault("package.name", defaults.Package.Name)
	v.SetDefault("ui.verbose", defaults.UI.Verbose)

	if configFileOverride != "" {
		if !fileExists(configFileOverride) {
			return nil, issue.NewErrorContext().
				WithOperation("load configuration").
				WithResource(configFileOverride).
				WithSuggestion("Verify the file path is correct").
				Wrap(fmt.Errorf("config file not found: %s", configFileOverride)).
				BuildError()
		}
		if err := loadCUEIntoViper(v, configFileOverride); err != nil {
			return nil, wrapLoadError(err, configFileOverride)
		}
	} else {
		cfgDir, err := ConfigDir()
		if err != nil {
			return nil, err
		}
		cuePath := filepath.Join(cfgDir, ConfigFileName+"."+ConfigFileExt)
		if fileExists(cuePath) {
			if err := loadCUEIntoViper(v, cuePath); err != nil {
				return nil, wrapLoadError(err, cuePath)
			}
		}
		// No config file is fine; defaults apply.
	}

	// The home variable wins over file-provided roots so an installed SDK
	// keeps resolving to itself.
	if envRoot := os.Getenv(EnvHome); envRoot != "" {
		v.Set("install.root", envRoot)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	return &cfg, nil
}

// loadCUEIntoViper parses a CUE file, validates it against the #Config
// schema, and merges its contents into viper.
func loadCUEIntoViper(v *viper.Viper, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	res, err := cueutil.ParseAndDecodeString[map[string]any](configSchema, data, "#Config",
		cueutil.WithFilename(path))
	if err != nil {
		return err
	}

	return v.MergeConfigMap(*res.Value)
}

func wrapLoadError(err error, path string) error {
	return issue.NewErrorContext().
		WithOperation("load configuration").
		WithResource(path).
		WithSuggestion("Check that the file contains valid CUE syntax").
		WithSuggestion("Verify the configuration values match the expected schema").
		Wrap(err).
		BuildError()
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
