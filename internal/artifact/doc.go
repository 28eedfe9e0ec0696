// SPDX-License-Identifier: MPL-2.0

// Package artifact locates and validates the toolchain's build outputs and
// resource trees before anything downstream touches the destination. Every
// check here is read-only, so a failed validation leaves the installation
// root exactly as it was.
package artifact
