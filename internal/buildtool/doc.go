// SPDX-License-Identifier: MPL-2.0

// Package buildtool invokes the external build tool that produces the
// toolchain binaries. The default invoker shells out to cargo; a
// configured custom command runs through an embedded shell interpreter
// instead. Both block until the build exits — no timeout, no retry.
package buildtool
