// SPDX-License-Identifier: MPL-2.0

package release

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"

	"pordosol-setup/internal/install"
	"pordosol-setup/internal/platform"
)

// Sentinel errors for programmatic detection with errors.Is.
var (
	ErrMissingBinary = errors.New("missing release binary")
	ErrArchiveWrite  = errors.New("archive write failed")
)

// MissingBinaryError reports a release binary path that does not exist.
type MissingBinaryError struct {
	Path string
}

func (e *MissingBinaryError) Error() string {
	return fmt.Sprintf("release binary not found at %s", e.Path)
}

func (e *MissingBinaryError) Unwrap() error { return ErrMissingBinary }

// ArchiveWriteError reports a failed archive or sidecar write.
type ArchiveWriteError struct {
	Path  string
	Cause error
}

func (e *ArchiveWriteError) Error() string {
	return fmt.Sprintf("failed to write %s: %v", e.Path, e.Cause)
}

func (e *ArchiveWriteError) Unwrap() error { return ErrArchiveWrite }

// Companions are optional artifacts bundled alongside the CLI binary.
// Empty or missing paths are silently skipped; a CLI-only archive is a
// valid release.
type Companions struct {
	Compiler    string
	Interpreter string
	Stdlib      string
	Templates   string
}

// Request describes one release package.
type Request struct {
	// Name is the product name used in the archive filename and as the
	// packaged binary's name (default "pordosol" at the CLI layer).
	Name string

	// Version is the release version string (e.g. "0.1.0").
	Version string

	// PlatformTag names the target platform (e.g. "linux-x64",
	// "windows-x64") and decides the archive format.
	PlatformTag string

	// BinaryPath is the pre-built CLI binary to package.
	BinaryPath string

	// OutputDir receives the staging tree, archive and sidecars.
	OutputDir string

	// DocsDir is scanned for top-level documentation files (best-effort).
	DocsDir string

	// Companions are optional bundled artifacts.
	Companions Companions

	// SignSecretKey, when set, triggers minisign signing of the archive.
	SignSecretKey string
}

// Result names the files a packaging run produced.
type Result struct {
	ArchivePath   string
	ChecksumPath  string
	SignaturePath string
}

// docFiles are copied into the package root when present next to DocsDir.
var docFiles = []string{"README.md", "LICENSE", "CHANGELOG.md"}

// Packager assembles platform-tagged release archives. Re-running with the
// same request deletes and regenerates every output, so packaging is
// idempotent per invocation.
type Packager struct {
	Logger *log.Logger
}

// NewPackager creates a Packager.
func NewPackager(logger *log.Logger) *Packager {
	return &Packager{Logger: logger}
}

// Package stages, archives, checksums and optionally signs one release.
func (p *Packager) Package(req Request) (*Result, error) {
	// Validate input before touching any output path.
	if info, err := os.Stat(req.BinaryPath); err != nil || !info.Mode().IsRegular() {
		return nil, &MissingBinaryError{Path: req.BinaryPath}
	}

	format := platform.ArchiveFormatFor(req.PlatformTag)
	baseName := fmt.Sprintf("%s-%s-%s", req.Name, req.Version, req.PlatformTag)
	stagingDir := filepath.Join(req.OutputDir, baseName)
	archivePath := stagingDir + "." + format.Ext()

	p.Logger.Info("packaging release", "name", baseName, "format", format)

	// Idempotence: clear previous outputs first.
	for _, stale := range []string{stagingDir, archivePath, archivePath + ".sha256", archivePath + ".minisig"} {
		if err := os.RemoveAll(stale); err != nil {
			return nil, &ArchiveWriteError{Path: stale, Cause: err}
		}
	}

	if err := p.stage(req, stagingDir); err != nil {
		return nil, err
	}

	if err := writeArchive(format, stagingDir, archivePath); err != nil {
		return nil, &ArchiveWriteError{Path: archivePath, Cause: err}
	}

	checksumPath, err := WriteChecksumSidecar(archivePath)
	if err != nil {
		return nil, &ArchiveWriteError{Path: archivePath + ".sha256", Cause: err}
	}

	res := &Result{ArchivePath: archivePath, ChecksumPath: checksumPath}

	if req.SignSecretKey != "" {
		sigPath, err := signArchive(archivePath, req.SignSecretKey, p.Logger)
		if err != nil {
			return nil, err
		}
		res.SignaturePath = sigPath
	}

	// The staging tree is an intermediate; only archives ship.
	if err := os.RemoveAll(stagingDir); err != nil {
		p.Logger.Warn("could not remove staging directory", "dir", stagingDir, "err", err)
	}

	p.Logger.Info("release packaged", "archive", archivePath)
	return res, nil
}

// stage builds the staging tree mirroring the install layout.
func (p *Packager) stage(req Request, stagingDir string) error {
	binDir := filepath.Join(stagingDir, install.BinDirName)
	toolsDir := filepath.Join(stagingDir, install.ToolsDirName)

	if err := os.MkdirAll(binDir, 0o755); err != nil {
		return &ArchiveWriteError{Path: binDir, Cause: err}
	}

	binName := req.Name + exeSuffixForTag(req.PlatformTag)
	if err := install.CopyFile(req.BinaryPath, filepath.Join(binDir, binName)); err != nil {
		return &ArchiveWriteError{Path: filepath.Join(binDir, binName), Cause: err}
	}

	for _, companion := range []struct {
		src  string
		name string
	}{
		{req.Companions.Compiler, "compilador"},
		{req.Companions.Interpreter, "interpretador"},
	} {
		if companion.src == "" {
			continue
		}
		info, err := os.Stat(companion.src)
		if err != nil || !info.Mode().IsRegular() {
			p.Logger.Debug("companion binary absent, skipping", "path", companion.src)
			continue
		}
		if err := os.MkdirAll(toolsDir, 0o755); err != nil {
			return &ArchiveWriteError{Path: toolsDir, Cause: err}
		}
		dest := filepath.Join(toolsDir, companion.name+exeSuffixForTag(req.PlatformTag))
		if err := install.CopyFile(companion.src, dest); err != nil {
			return &ArchiveWriteError{Path: dest, Cause: err}
		}
	}

	for _, tree := range []struct {
		src  string
		dest string
	}{
		{req.Companions.Stdlib, filepath.Join(toolsDir, install.StdlibDirName)},
		{req.Companions.Templates, filepath.Join(stagingDir, install.TemplatesDirName)},
	} {
		if tree.src == "" {
			continue
		}
		if info, err := os.Stat(tree.src); err != nil || !info.IsDir() {
			p.Logger.Debug("companion tree absent, skipping", "path", tree.src)
			continue
		}
		if err := install.CopyTree(tree.src, tree.dest); err != nil {
			return &ArchiveWriteError{Path: tree.dest, Cause: err}
		}
	}

	// Best-effort docs: missing files are not an error.
	docsDir := req.DocsDir
	if docsDir == "" {
		docsDir = "."
	}
	for _, doc := range docFiles {
		src := filepath.Join(docsDir, doc)
		if info, err := os.Stat(src); err != nil || !info.Mode().IsRegular() {
			continue
		}
		if err := install.CopyFile(src, filepath.Join(stagingDir, doc)); err != nil {
			return &ArchiveWriteError{Path: filepath.Join(stagingDir, doc), Cause: err}
		}
	}

	return nil
}

// exeSuffixForTag follows the target tag, not the build host, so packaging
// windows archives from linux names the binary correctly.
func exeSuffixForTag(tag string) string {
	if strings.Contains(strings.ToLower(tag), platform.Windows) {
		return ".exe"
	}
	return ""
}
