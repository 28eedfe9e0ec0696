// SPDX-License-Identifier: MPL-2.0

// Package cueutil centralizes the CUE schema-unification flow used for
// configuration parsing: compile the embedded schema, compile the user
// file, unify, validate, and decode into a Go struct, with error messages
// that carry JSON-path context instead of raw CUE internals.
package cueutil
