// SPDX-License-Identifier: MPL-2.0

//go:build windows

package envcfg

import (
	"golang.org/x/sys/windows/registry"
)

const pathValueName = "Path"

// applyRegistry performs the read-modify-write cycle against the per-user
// environment store (HKCU\Environment). The read goes against the
// persisted value, not this process's environment, so entries added by
// other processes since our start are respected. No locking: last writer
// wins, per the single-user, infrequent-invocation design.
func (c *Configurator) applyRegistry(opts Options) []error {
	key, err := registry.OpenKey(registry.CURRENT_USER, "Environment", registry.QUERY_VALUE|registry.SET_VALUE)
	if err != nil {
		return []error{&UpdateError{Target: `HKCU\Environment`, Cause: err}}
	}
	defer key.Close()

	var errs []error

	if err := key.SetStringValue(HomeVar, opts.Root); err != nil {
		errs = append(errs, &UpdateError{Target: HomeVar, Cause: err})
	}

	if opts.NoPath {
		return errs
	}

	// REG_EXPAND_SZ is the conventional type for Path; a missing value is
	// treated as empty rather than an error.
	current, _, err := key.GetStringValue(pathValueName)
	if err != nil && err != registry.ErrNotExist {
		return append(errs, &UpdateError{Target: pathValueName, Cause: err})
	}

	entries := SplitPathList(current, ';')
	entries, changed := AddPathEntry(entries, opts.BinDir, c.Platform)
	if !changed {
		c.Logger.Debug("bin directory already on persisted PATH", "dir", opts.BinDir)
		return errs
	}

	if err := key.SetExpandStringValue(pathValueName, JoinPathList(entries, ';')); err != nil {
		errs = append(errs, &UpdateError{Target: pathValueName, Cause: err})
		return errs
	}

	c.Logger.Debug("appended bin directory to persisted PATH", "dir", opts.BinDir)
	return errs
}
