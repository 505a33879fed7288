// Package entities defines core domain models and data structures.
package entities

// StagedArtifact is a release binary copied into a staging directory
type StagedArtifact struct {
	Name   string
	Source string
	Path   string
	Size   int64
	SHA256 string // Set once checksums are written
}
