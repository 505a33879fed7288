package entities

import "time"

// PlatformResult records what was staged for one platform
type PlatformResult struct {
	Plan          PlatformPlan
	Artifacts     []StagedArtifact
	ChecksumPath  string
	SignaturePath string
	BuildDuration time.Duration
	TotalDuration time.Duration
}

// ReleaseResult records the outcome of a release run
type ReleaseResult struct {
	Recipe     string
	Platforms  []PlatformResult
	Failed     *PlatformPlan // Platform that aborted the run, if any
	RolledBack []string      // Paths removed after a failure
	Duration   time.Duration
	Error      error
}

// Success reports whether every planned platform was staged
func (r *ReleaseResult) Success() bool {
	return r.Error == nil
}

// ArtifactCount returns the number of binaries staged across all platforms
func (r *ReleaseResult) ArtifactCount() int {
	n := 0
	for _, p := range r.Platforms {
		n += len(p.Artifacts)
	}
	return n
}
