// SPDX-License-Identifier: MPL-2.0

// Package install materializes the canonical SDK directory layout from
// validated artifacts. Directory creation is idempotent, binaries are
// overwrite-copied, and the templates and stdlib subtrees are
// wholesale-replaced (delete destination, then copy) so stale files never
// survive an upgrade.
package install
