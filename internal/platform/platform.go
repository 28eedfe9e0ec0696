// SPDX-License-Identifier: EPL-2.0

// Package platform confines every cross-platform difference the installer
// cares about to a single capability value: executable suffix, archive
// convention, and environment-persistence strategy. The orchestration core
// is written once against this value instead of branching on runtime.GOOS
// at each call site.
package platform

import (
	"runtime"
	"strings"
)

// GOOS values the installer distinguishes.
const (
	Windows = "windows"
	Darwin  = "darwin"
	Linux   = "linux"
)

// EnvStrategy selects how the installed bin directory and home variable
// are persisted for future shells.
type EnvStrategy string

const (
	// EnvStrategyRegistry uses the structured per-user environment store
	// (HKCU\Environment on Windows).
	EnvStrategyRegistry EnvStrategy = "registry"

	// EnvStrategyProfile edits delimited blocks in shell profile files.
	EnvStrategyProfile EnvStrategy = "profile"
)

// ArchiveFormat is the release archive convention for a platform family.
type ArchiveFormat string

const (
	ArchiveZip   ArchiveFormat = "zip"
	ArchiveTarGz ArchiveFormat = "tar.gz"
)

// Ext returns the archive filename extension, without a leading dot.
func (f ArchiveFormat) Ext() string { return string(f) }

// Platform describes the host (or a synthetic host under test).
type Platform struct {
	// OS is a runtime.GOOS value.
	OS string
}

// Current returns the capability value for the running host.
func Current() Platform {
	return Platform{OS: runtime.GOOS}
}

// IsWindows reports whether this platform uses Windows conventions.
func (p Platform) IsWindows() bool { return p.OS == Windows }

// ExeSuffix returns the executable filename suffix (".exe" or "").
func (p Platform) ExeSuffix() string {
	if p.IsWindows() {
		return ".exe"
	}
	return ""
}

// ExeName appends the platform executable suffix to a bare binary name.
func (p Platform) ExeName(name string) string {
	return name + p.ExeSuffix()
}

// EnvStrategy returns the environment-persistence mechanism for this host.
// Exactly one strategy applies per platform.
func (p Platform) EnvStrategy() EnvStrategy {
	if p.IsWindows() {
		return EnvStrategyRegistry
	}
	return EnvStrategyProfile
}

// CaseInsensitivePaths reports whether path comparisons should fold case.
// Windows and macOS default filesystems are case-insensitive.
func (p Platform) CaseInsensitivePaths() bool {
	return p.OS == Windows || p.OS == Darwin
}

// ArchiveFormatFor returns the archive convention for a release platform
// tag (e.g. "linux-x64", "windows-x64"). The format follows the target
// tag, not the build host, so cross-packaging emits the right container.
func ArchiveFormatFor(tag string) ArchiveFormat {
	if strings.Contains(strings.ToLower(tag), Windows) {
		return ArchiveZip
	}
	return ArchiveTarGz
}
