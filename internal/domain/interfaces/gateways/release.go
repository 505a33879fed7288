// Package gateways defines interfaces for the external tools and filesystem
// operations a release depends on.
package gateways

import (
	"context"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// Toolchain installs compilation targets
type Toolchain interface {
	// AddTarget makes the target available; adding an installed target is a no-op
	AddTarget(ctx context.Context, triple entities.Triple) error
}

// Builder compiles a release for a single platform
type Builder interface {
	Build(ctx context.Context, plan entities.PlatformPlan) error
}

// ArtifactFinder locates release binaries in a build output directory
type ArtifactFinder interface {
	FindBinaries(dir, prefix string) ([]string, error)
}

// Stager copies release binaries into a staging directory
type Stager interface {
	EnsureDir(dir string) error
	Stage(ctx context.Context, dir string, binaries []string) ([]entities.StagedArtifact, error)
	Remove(paths []string) error
}

// ChecksumWriter writes a checksum manifest for staged artifacts
type ChecksumWriter interface {
	WriteChecksums(dir string, artifacts []entities.StagedArtifact) (string, error)
}

// Signer produces a detached signature next to a file
type Signer interface {
	SignFile(path string) (string, error)
}

// StagedFinder lists the binaries already present in a staging directory
type StagedFinder interface {
	FindStaged(dir, prefix string) ([]string, error)
}

// ChecksumVerifier checks a staging directory against its checksum manifest
type ChecksumVerifier interface {
	// VerifyChecksums returns the manifest path it checked
	VerifyChecksums(dir string) (string, error)
}

// SignatureVerifier checks the detached signature stored next to a file
type SignatureVerifier interface {
	VerifySignature(path string) error
}
