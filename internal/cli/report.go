package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// ReleaseReport is the JSON document written by "build --report"
type ReleaseReport struct {
	Recipe          string           `json:"recipe"`
	Success         bool             `json:"success"`
	Error           string           `json:"error,omitempty"`
	ExitCode        int              `json:"exit_code"`
	FailedPlatform  string           `json:"failed_platform,omitempty"`
	Platforms       []PlatformReport `json:"platforms"`
	RolledBack      []string         `json:"rolled_back,omitempty"`
	DurationSeconds float64          `json:"duration_seconds"`
}

// PlatformReport describes one staged platform
type PlatformReport struct {
	Triple          string           `json:"triple"`
	Platform        string           `json:"platform"`
	Builder         string           `json:"builder"`
	StagingDir      string           `json:"staging_dir"`
	Artifacts       []ArtifactReport `json:"artifacts"`
	Checksums       string           `json:"checksums,omitempty"`
	Signature       string           `json:"signature,omitempty"`
	BuildSeconds    float64          `json:"build_seconds"`
	DurationSeconds float64          `json:"duration_seconds"`
}

// ArtifactReport describes one staged binary
type ArtifactReport struct {
	Name   string `json:"name"`
	Source string `json:"source"`
	Path   string `json:"path"`
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256,omitempty"`
}

func newReleaseReport(result *entities.ReleaseResult) *ReleaseReport {
	report := &ReleaseReport{
		Recipe:          result.Recipe,
		Success:         result.Success(),
		ExitCode:        entities.ExitCode(result.Error),
		Platforms:       make([]PlatformReport, 0, len(result.Platforms)),
		RolledBack:      result.RolledBack,
		DurationSeconds: result.Duration.Seconds(),
	}
	if result.Error != nil {
		report.Error = result.Error.Error()
	}
	if result.Failed != nil {
		report.FailedPlatform = string(result.Failed.Triple)
	}

	for _, p := range result.Platforms {
		pr := PlatformReport{
			Triple:          string(p.Plan.Triple),
			Platform:        string(p.Plan.ContainerPlatform),
			Builder:         string(p.Plan.Builder),
			StagingDir:      p.Plan.StagingDir,
			Artifacts:       make([]ArtifactReport, 0, len(p.Artifacts)),
			Checksums:       p.ChecksumPath,
			Signature:       p.SignaturePath,
			BuildSeconds:    p.BuildDuration.Seconds(),
			DurationSeconds: p.TotalDuration.Seconds(),
		}
		for _, a := range p.Artifacts {
			pr.Artifacts = append(pr.Artifacts, ArtifactReport{
				Name:   a.Name,
				Source: a.Source,
				Path:   a.Path,
				Size:   a.Size,
				SHA256: a.SHA256,
			})
		}
		report.Platforms = append(report.Platforms, pr)
	}

	return report
}

func writeReport(path string, report *ReleaseReport) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}
	if err := os.WriteFile(path, append(data, '\n'), 0o644); err != nil { //nolint:gosec // G306: report is not secret
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}
