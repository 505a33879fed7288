package gateways

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// ArtifactFinder locates release binaries in build output directories
type ArtifactFinder struct{}

// NewArtifactFinder creates a new artifact finder
func NewArtifactFinder() *ArtifactFinder {
	return &ArtifactFinder{}
}

// FindBinaries returns the regular files directly inside dir whose names
// start with prefix, sorted by name
func (f *ArtifactFinder) FindBinaries(dir, prefix string) ([]string, error) {
	info, err := os.Stat(dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: release output directory does not exist: %s", entities.ErrStaging, dir)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", entities.ErrStaging, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: release output path is not a directory: %s", entities.ErrStaging, dir)
	}

	pattern := prefix + "*"
	matches, err := doublestar.Glob(os.DirFS(dir), pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to glob pattern %s: %w", entities.ErrStaging, pattern, err)
	}

	binaries := make([]string, 0, len(matches))
	for _, match := range matches {
		path := filepath.Join(dir, filepath.FromSlash(match))
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", entities.ErrStaging, err)
		}
		// cargo leaves build-script and incremental directories next to the binaries
		if !info.Mode().IsRegular() {
			continue
		}
		binaries = append(binaries, path)
	}
	sort.Strings(binaries)

	return binaries, nil
}

// FindStaged returns the names of staged files in dir matching prefix. A
// missing directory yields no names rather than an error.
func (f *ArtifactFinder) FindStaged(dir, prefix string) ([]string, error) {
	if _, err := os.Stat(dir); errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	paths, err := f.FindBinaries(dir, prefix)
	if err != nil {
		return nil, err
	}
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = filepath.Base(p)
	}
	return names, nil
}
