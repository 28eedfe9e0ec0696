// SPDX-License-Identifier: MPL-2.0

package release

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// sha256HexLen is the length of a hex-encoded SHA-256 digest.
const sha256HexLen = 64

// DigestFile computes the SHA-256 digest of the file at path, hex-encoded
// in lowercase.
func DigestFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// WriteChecksumSidecar writes `<path>.sha256` containing one line in the
// canonical two-space format consumed by standard checksum utilities:
//
//	<64-hex-digest>  <filename>
//
// The filename is the archive's base name, so verification runs from the
// archive's own directory.
func WriteChecksumSidecar(path string) (string, error) {
	digest, err := DigestFile(path)
	if err != nil {
		return "", err
	}

	sidecarPath := path + ".sha256"
	line := fmt.Sprintf("%s  %s\n", digest, filepath.Base(path))
	if err := os.WriteFile(sidecarPath, []byte(line), 0o644); err != nil {
		return "", fmt.Errorf("write sidecar: %w", err)
	}
	return sidecarPath, nil
}

// ParseChecksumSidecar extracts the digest recorded for assetName from
// sidecar data. Blank lines and #-comments are skipped; the digest must be
// a well-formed SHA-256 hex string.
func ParseChecksumSidecar(data []byte, assetName string) (string, error) {
	for _, line := range strings.Split(strings.TrimSpace(string(data)), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			continue
		}
		digest := fields[0]
		if !isHexDigest(digest, sha256HexLen) {
			continue
		}
		if filepath.Base(fields[len(fields)-1]) == assetName {
			return strings.ToLower(digest), nil
		}
	}
	return "", fmt.Errorf("checksum for %s not found", assetName)
}

// VerifyChecksumSidecar recomputes the archive's digest and compares it
// against its sidecar.
func VerifyChecksumSidecar(archivePath string) error {
	data, err := os.ReadFile(archivePath + ".sha256")
	if err != nil {
		return fmt.Errorf("read sidecar: %w", err)
	}

	want, err := ParseChecksumSidecar(data, filepath.Base(archivePath))
	if err != nil {
		return err
	}

	got, err := DigestFile(archivePath)
	if err != nil {
		return err
	}
	if got != want {
		return fmt.Errorf("checksum mismatch for %s: sidecar %s, computed %s",
			filepath.Base(archivePath), want, got)
	}
	return nil
}

func isHexDigest(value string, expectedLen int) bool {
	if len(value) != expectedLen {
		return false
	}
	for _, ch := range value {
		if (ch < '0' || ch > '9') && (ch < 'a' || ch > 'f') && (ch < 'A' || ch > 'F') {
			return false
		}
	}
	return true
}
