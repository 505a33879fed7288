package gateways

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// ChecksumFileName is the manifest written into each staging directory
const ChecksumFileName = "SHA256SUMS"

// ChecksumWriter writes sha256sum-compatible manifests
type ChecksumWriter struct{}

// NewChecksumWriter creates a new checksum writer
func NewChecksumWriter() *ChecksumWriter {
	return &ChecksumWriter{}
}

// WriteChecksums hashes every artifact, records the digest on it, and writes
// dir/SHA256SUMS with one "<digest>  <name>" line per artifact, sorted by name
func (w *ChecksumWriter) WriteChecksums(dir string, artifacts []entities.StagedArtifact) (string, error) {
	lines := make([]string, 0, len(artifacts))
	for i := range artifacts {
		sum, err := w.CalculateChecksum(artifacts[i].Path)
		if err != nil {
			return "", fmt.Errorf("%w: %w", entities.ErrStaging, err)
		}
		artifacts[i].SHA256 = sum
		lines = append(lines, fmt.Sprintf("%s  %s", sum, artifacts[i].Name))
	}
	sort.Slice(lines, func(i, j int) bool {
		return lines[i][sha256.Size*2+2:] < lines[j][sha256.Size*2+2:]
	})

	path := filepath.Join(dir, ChecksumFileName)
	content := strings.Join(lines, "\n")
	if len(lines) > 0 {
		content += "\n"
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil { //nolint:gosec // G306: manifest ships in public images
		return "", fmt.Errorf("%w: failed to write %s: %w", entities.ErrStaging, path, err)
	}

	return path, nil
}

// CalculateChecksum calculates the SHA256 checksum of a file
func (w *ChecksumWriter) CalculateChecksum(filePath string) (string, error) {
	//nolint:gosec // G304: File path is a staged artifact
	f, err := os.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to open file: %w", err)
	}
	//nolint:errcheck // Defer close on read-only file
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("failed to hash file: %w", err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// VerifyChecksums re-hashes every file listed in dir/SHA256SUMS. It returns
// the manifest path, and an error naming any file whose digest no longer matches.
func (w *ChecksumWriter) VerifyChecksums(dir string) (string, error) {
	path := filepath.Join(dir, ChecksumFileName)
	//nolint:gosec // G304: manifest inside a staging directory
	data, err := os.ReadFile(path)
	if err != nil {
		return path, fmt.Errorf("%w: failed to read %s: %w", entities.ErrStaging, path, err)
	}

	var mismatched []string
	for n, line := range strings.Split(strings.TrimRight(string(data), "\n"), "\n") {
		if line == "" {
			continue
		}
		want, name, ok := strings.Cut(line, "  ")
		if !ok || len(want) != sha256.Size*2 || name == "" {
			return path, fmt.Errorf("%w: %s line %d is malformed", entities.ErrStaging, path, n+1)
		}
		if name == "." || name == ".." || strings.ContainsAny(name, `/\`) {
			return path, fmt.Errorf("%w: %s line %d names a file outside %s", entities.ErrStaging, path, n+1, dir)
		}
		got, err := w.CalculateChecksum(filepath.Join(dir, name))
		if err != nil || got != want {
			mismatched = append(mismatched, name)
		}
	}

	if len(mismatched) > 0 {
		return path, fmt.Errorf("%w: checksum mismatch in %s: %s", entities.ErrStaging, dir, strings.Join(mismatched, ", "))
	}
	return path, nil
}
