// SPDX-License-Identifier: MPL-2.0

//go:build !windows

package envcfg

import "errors"

// applyRegistry is unreachable on non-Windows hosts: the platform
// capability never selects the registry strategy here. The stub keeps the
// method set identical across builds.
func (c *Configurator) applyRegistry(Options) []error {
	return []error{&UpdateError{
		Target: "registry",
		Cause:  errors.New("structured environment store not available on this platform"),
	}}
}
