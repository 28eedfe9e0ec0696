// SPDX-License-Identifier: MPL-2.0

package envcfg

import (
	"path/filepath"
	"strings"

	"pordosol-setup/internal/platform"
)

// SplitPathList splits a PATH-style value on the list separator, dropping
// empty entries.
func SplitPathList(value string, sep rune) []string {
	var out []string
	for _, entry := range strings.Split(value, string(sep)) {
		if strings.TrimSpace(entry) != "" {
			out = append(out, entry)
		}
	}
	return out
}

// JoinPathList joins entries with the list separator.
func JoinPathList(entries []string, sep rune) string {
	return strings.Join(entries, string(sep))
}

// normalizeForCompare produces the canonical comparison form of a PATH
// entry: absolute, cleaned, trailing separators stripped, and case-folded
// on platforms whose filesystems ignore case. Only used for membership
// tests; stored values keep their original spelling.
func normalizeForCompare(entry string, p platform.Platform) string {
	e := strings.TrimSpace(entry)
	if abs, err := filepath.Abs(e); err == nil {
		e = abs
	}
	e = filepath.Clean(e)
	e = strings.TrimRight(e, `/\`)
	if e == "" {
		e = string(filepath.Separator)
	}
	if p.CaseInsensitivePaths() {
		e = strings.ToLower(e)
	}
	return e
}

// ContainsPathEntry reports whether list already holds entry under
// normalized comparison.
func ContainsPathEntry(list []string, entry string, p platform.Platform) bool {
	want := normalizeForCompare(entry, p)
	for _, have := range list {
		if normalizeForCompare(have, p) == want {
			return true
		}
	}
	return false
}

// AddPathEntry appends entry to list unless an equivalent entry is already
// present. The second return reports whether the list changed. This is a
// set-add: N runs leave exactly one occurrence.
func AddPathEntry(list []string, entry string, p platform.Platform) ([]string, bool) {
	if ContainsPathEntry(list, entry, p) {
		return list, false
	}
	return append(list, entry), true
}
