// SPDX-License-Identifier: MPL-2.0

package envcfg

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Markers delimiting the installer-owned region inside a profile file.
// Everything between them (inclusive) belongs to this tool and is replaced
// wholesale on every run.
const (
	blockBegin = "# BEGIN pordosol-setup"
	blockEnd   = "# END pordosol-setup"
)

// ProfileBlock describes the content written between the markers.
type ProfileBlock struct {
	// Home is the installation root exported as PORDOSOL_HOME.
	Home string

	// BinDir is the directory prepended to PATH.
	BinDir string

	// IncludePath controls whether the PATH-prepend line is emitted.
	// Toggling it off on a later run removes a previously written line.
	IncludePath bool
}

// Render produces the full delimited block, newline-terminated.
func (b ProfileBlock) Render() string {
	var sb strings.Builder
	sb.WriteString(blockBegin + "\n")
	fmt.Fprintf(&sb, "export PORDOSOL_HOME=%q\n", b.Home)
	if b.IncludePath {
		fmt.Fprintf(&sb, "export PATH=%q:$PATH\n", b.BinDir)
	}
	sb.WriteString(blockEnd + "\n")
	return sb.String()
}

// UpsertBlock rewrites the installer-owned block in the profile file at
// path: any existing block is excised, then a fresh one is appended at the
// end. A missing file is created. Re-running never accumulates duplicates.
func UpsertBlock(path string, block ProfileBlock) error {
	content := ""
	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		content = string(data)
	case os.IsNotExist(err):
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create profile directory: %w", err)
		}
	default:
		return fmt.Errorf("read profile: %w", err)
	}

	content = exciseBlock(content)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	content += block.Render()

	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write profile: %w", err)
	}
	return nil
}

// exciseBlock removes the delimited region, markers included. A begin
// marker without a matching end swallows the rest of the file; the region
// is installer-owned either way.
func exciseBlock(content string) string {
	lines := strings.Split(content, "\n")
	var kept []string
	inBlock := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !inBlock && trimmed == blockBegin {
			inBlock = true
			continue
		}
		if inBlock {
			if trimmed == blockEnd {
				inBlock = false
			}
			continue
		}
		kept = append(kept, line)
	}

	out := strings.Join(kept, "\n")
	// Collapse the trailing blank left behind by an excised block.
	out = strings.TrimRight(out, "\n")
	if out != "" {
		out += "\n"
	}
	return out
}

// CandidateProfiles returns the deterministic set of shell startup files
// to update under home: the current shell's rc file first, then .profile
// as the login-shell fallback, deduplicated by path.
func CandidateProfiles(home string) []string {
	var files []string

	switch filepath.Base(os.Getenv("SHELL")) {
	case "zsh":
		files = append(files, filepath.Join(home, ".zshrc"))
	case "bash":
		files = append(files, filepath.Join(home, ".bashrc"))
	default:
		// Unknown or unset shell: cover both common rc files.
		files = append(files, filepath.Join(home, ".bashrc"), filepath.Join(home, ".zshrc"))
	}
	files = append(files, filepath.Join(home, ".profile"))

	seen := make(map[string]bool, len(files))
	var out []string
	for _, f := range files {
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out
}
