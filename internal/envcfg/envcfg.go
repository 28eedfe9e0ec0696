// SPDX-License-Identifier: MPL-2.0

package envcfg

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"

	"pordosol-setup/internal/platform"
)

// HomeVar is the environment variable pointing at the installation root.
// The downstream CLI reads it to locate tools/ and templates/.
const HomeVar = "PORDOSOL_HOME"

// ErrEnvironmentUpdate is the sentinel wrapped by UpdateError.
var ErrEnvironmentUpdate = errors.New("environment update failed")

// UpdateError reports a failed persistence target (a profile file or the
// registry store). These are warnings, not install failures: the files on
// disk are already correct when environment wiring runs.
type UpdateError struct {
	Target string
	Cause  error
}

func (e *UpdateError) Error() string {
	return fmt.Sprintf("could not update %s: %v", e.Target, e.Cause)
}

func (e *UpdateError) Unwrap() error { return ErrEnvironmentUpdate }

// Options controls what Apply persists.
type Options struct {
	// Root is the installation root, exported as PORDOSOL_HOME.
	Root string

	// BinDir is the installed bin directory added to PATH.
	BinDir string

	// NoPath skips all PATH mutation; the home variable is still set.
	NoPath bool
}

// Configurator applies the platform's environment-persistence strategy.
// It touches only user-level state: shell rc files under HomeDir on POSIX,
// the per-user registry store on Windows. Reads and writes go against the
// persisted values, never a cached copy; concurrent writers get
// last-writer-wins semantics.
type Configurator struct {
	Platform platform.Platform
	HomeDir  string
	Logger   *log.Logger
}

// New creates a Configurator for the current user's home directory.
func New(p platform.Platform, logger *log.Logger) (*Configurator, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	return &Configurator{Platform: p, HomeDir: home, Logger: logger}, nil
}

// Apply persists the home variable and (unless disabled) the PATH entry.
// Every failure is collected and returned rather than aborting: partial
// environment wiring is repairable by a re-run, and the install itself has
// already succeeded by the time Apply is called.
func (c *Configurator) Apply(opts Options) []error {
	switch c.Platform.EnvStrategy() {
	case platform.EnvStrategyRegistry:
		return c.applyRegistry(opts)
	default:
		return c.applyProfiles(opts)
	}
}

// applyProfiles rewrites the installer-owned block in each candidate shell
// startup file.
func (c *Configurator) applyProfiles(opts Options) []error {
	block := ProfileBlock{
		Home:        opts.Root,
		BinDir:      opts.BinDir,
		IncludePath: !opts.NoPath,
	}

	var errs []error
	for _, profile := range CandidateProfiles(c.HomeDir) {
		if err := UpsertBlock(profile, block); err != nil {
			errs = append(errs, &UpdateError{Target: profile, Cause: err})
			continue
		}
		c.Logger.Debug("updated shell profile", "file", profile, "path_entry", !opts.NoPath)
	}
	return errs
}
