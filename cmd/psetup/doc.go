// SPDX-License-Identifier: MPL-2.0

// Package cmd contains all CLI commands for psetup.
//
// This package implements the Cobra command hierarchy: the root command
// plus the install, package, and doctor subcommands.
package cmd
