// SPDX-License-Identifier: MPL-2.0

// Package config loads psetup configuration from a CUE file validated
// against an embedded schema, layered over built-in defaults via viper.
// Precedence: flags > PORDOSOL_HOME > config file > defaults.
package config
