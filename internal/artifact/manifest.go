// SPDX-License-Identifier: MPL-2.0

package artifact

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// StdlibManifest is the subset of Sistema.toml the installer cares about.
// The manifest is informational (doctor output, install logging); a stdlib
// tree without one is still valid if it has a src/ directory.
type StdlibManifest struct {
	Nome   string `toml:"nome"`
	Versao string `toml:"versao"`
}

// ReadStdlibManifest parses Sistema.toml under dir. Returns an error when
// the file is absent or malformed; callers treat this as missing metadata,
// not as an invalid stdlib.
func ReadStdlibManifest(dir string) (*StdlibManifest, error) {
	path := filepath.Join(dir, "Sistema.toml")
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read stdlib manifest: %w", err)
	}

	var m StdlibManifest
	if err := toml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return &m, nil
}
