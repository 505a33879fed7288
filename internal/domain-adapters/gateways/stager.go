package gateways

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/otiai10/copy"

	"github.com/ochairo/crossbuild/internal/domain/entities"
	"github.com/ochairo/crossbuild/internal/domain/interfaces"
)

const stagingDirMode = 0o755

// Stager copies release binaries into staging directories
type Stager struct {
	logger interfaces.Logger
}

// NewStager creates a new stager
func NewStager(logger interfaces.Logger) *Stager {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}
	return &Stager{logger: logger}
}

// EnsureDir creates the staging directory and any missing parents
func (s *Stager) EnsureDir(dir string) error {
	if err := os.MkdirAll(dir, stagingDirMode); err != nil {
		return fmt.Errorf("%w: failed to create staging directory: %w", entities.ErrStaging, err)
	}
	return nil
}

// Stage copies each binary into dir under its own name, keeping permissions
// and modification times. Existing files are overwritten. On failure the
// artifacts copied so far are returned with the error.
func (s *Stager) Stage(ctx context.Context, dir string, binaries []string) ([]entities.StagedArtifact, error) {
	if err := s.EnsureDir(dir); err != nil {
		return nil, err
	}

	opts := copy.Options{
		PreserveTimes: true,
		OnSymlink: func(string) copy.SymlinkAction {
			return copy.Deep
		},
	}

	staged := make([]entities.StagedArtifact, 0, len(binaries))
	for _, src := range binaries {
		if err := ctx.Err(); err != nil {
			return staged, err
		}

		name := filepath.Base(src)
		dest := filepath.Join(dir, name)
		s.logger.Info("copying artifact",
			interfaces.F("src", src),
			interfaces.F("dest", dest),
		)

		if err := copy.Copy(src, dest, opts); err != nil {
			return staged, fmt.Errorf("%w: failed to copy %s to %s: %w", entities.ErrStaging, src, dest, err)
		}

		info, err := os.Stat(dest)
		if err != nil {
			return staged, fmt.Errorf("%w: %w", entities.ErrStaging, err)
		}

		staged = append(staged, entities.StagedArtifact{
			Name:   name,
			Source: src,
			Path:   dest,
			Size:   info.Size(),
		})
	}

	return staged, nil
}

// Remove deletes staged files. Files that are already gone are ignored.
func (s *Stager) Remove(paths []string) error {
	var errs []error
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			errs = append(errs, err)
			continue
		}
		s.logger.Debug("removed staged file", interfaces.F("path", p))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", entities.ErrStaging, errors.Join(errs...))
	}
	return nil
}
