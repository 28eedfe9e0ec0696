// SPDX-License-Identifier: MPL-2.0

// Package release assembles versioned, platform-tagged distributable
// archives: a staging tree mirroring the install layout, compressed with
// the target platform's conventional format (zip for Windows tags,
// tar+gzip otherwise), a sha256sum-compatible checksum sidecar, and an
// optional minisign signature. Every output is regenerated from scratch
// per run.
package release
