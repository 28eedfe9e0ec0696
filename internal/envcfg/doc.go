// SPDX-License-Identifier: MPL-2.0

// Package envcfg makes an installed SDK reachable from future shells: it
// exports PORDOSOL_HOME and puts the bin directory on PATH, through the
// platform's persistence mechanism (per-user registry store on Windows,
// delimited blocks in shell profile files elsewhere). Every mutation is a
// set-add or block-replace, so repeated runs never duplicate state, and
// failures here are reported as warnings rather than failing the install.
package envcfg
