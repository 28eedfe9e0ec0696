// SPDX-License-Identifier: MPL-2.0

// Package issue provides user-facing error infrastructure: ActionableError
// carries operation/resource/suggestion context for one-line fatal messages,
// and a small catalog of known issues renders richer Markdown guidance for
// recoverable situations (missing toolchain, unwritable profile).
package issue
