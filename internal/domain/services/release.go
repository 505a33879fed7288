package services

import (
	"fmt"
	"sort"
	"strings"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// ReleaseStatus represents the readiness of a staging tree for image builds
type ReleaseStatus string

// Release validation statuses
const (
	StatusReady            ReleaseStatus = "ready"
	StatusNoArtifacts      ReleaseStatus = "no_artifacts"
	StatusMissingPlatforms ReleaseStatus = "missing_platforms"
	StatusMissingBinaries  ReleaseStatus = "missing_binaries"
)

// ReleaseValidation contains the validation result for a staging tree
type ReleaseValidation struct {
	Status             ReleaseStatus
	ExpectedPlatforms  []entities.ContainerPlatform
	AvailablePlatforms []entities.ContainerPlatform
	MissingPlatforms   []entities.ContainerPlatform
	// MissingBinaries lists, per platform, binary names that other platforms
	// have but this one lacks
	MissingBinaries map[entities.ContainerPlatform][]string
	ExpectedCount   int
	AvailableCount  int
}

// IsReady returns true if every platform has the same set of binaries staged
func (rv *ReleaseValidation) IsReady() bool {
	return rv.Status == StatusReady
}

// ErrorMessage returns a human-readable error message if not ready
func (rv *ReleaseValidation) ErrorMessage() string {
	switch rv.Status {
	case StatusReady:
		return ""
	case StatusNoArtifacts:
		return fmt.Sprintf("No staged binaries found (expected: %d platforms)", rv.ExpectedCount)
	case StatusMissingPlatforms:
		return fmt.Sprintf("Platform count mismatch (expected: %d, have: %d)\n   Missing: %s",
			rv.ExpectedCount, rv.AvailableCount, platformsToString(rv.MissingPlatforms))
	case StatusMissingBinaries:
		lines := make([]string, 0, len(rv.MissingBinaries))
		for _, p := range rv.ExpectedPlatforms {
			if names := rv.MissingBinaries[p]; len(names) > 0 {
				lines = append(lines, fmt.Sprintf("   %s: %s", p, strings.Join(names, ", ")))
			}
		}
		return "Binaries missing from some platforms\n" + strings.Join(lines, "\n")
	default:
		return "Unknown status"
	}
}

// ReleaseService handles staging validation logic
type ReleaseService struct{}

// NewReleaseService creates a new release service
func NewReleaseService() *ReleaseService {
	return &ReleaseService{}
}

// ValidateStaging checks that every planned platform has binaries staged and
// that all platforms carry the same binary names. staged maps each container
// platform to the binary names found in its staging directory.
func (s *ReleaseService) ValidateStaging(plans []entities.PlatformPlan, staged map[entities.ContainerPlatform][]string) *ReleaseValidation {
	validation := &ReleaseValidation{
		MissingBinaries: make(map[entities.ContainerPlatform][]string),
	}

	allNames := make(map[string]bool)
	for _, plan := range plans {
		validation.ExpectedPlatforms = append(validation.ExpectedPlatforms, plan.ContainerPlatform)
		names := staged[plan.ContainerPlatform]
		if len(names) == 0 {
			validation.MissingPlatforms = append(validation.MissingPlatforms, plan.ContainerPlatform)
			continue
		}
		validation.AvailablePlatforms = append(validation.AvailablePlatforms, plan.ContainerPlatform)
		for _, name := range names {
			allNames[name] = true
		}
	}
	validation.ExpectedCount = len(validation.ExpectedPlatforms)
	validation.AvailableCount = len(validation.AvailablePlatforms)

	for _, p := range validation.AvailablePlatforms {
		have := make(map[string]bool)
		for _, name := range staged[p] {
			have[name] = true
		}
		for name := range allNames {
			if !have[name] {
				validation.MissingBinaries[p] = append(validation.MissingBinaries[p], name)
			}
		}
		sort.Strings(validation.MissingBinaries[p])
	}

	switch {
	case validation.AvailableCount == 0:
		validation.Status = StatusNoArtifacts
	case len(validation.MissingPlatforms) > 0:
		validation.Status = StatusMissingPlatforms
	case hasMissingBinaries(validation.MissingBinaries):
		validation.Status = StatusMissingBinaries
	default:
		validation.Status = StatusReady
	}

	return validation
}

func hasMissingBinaries(m map[entities.ContainerPlatform][]string) bool {
	for _, names := range m {
		if len(names) > 0 {
			return true
		}
	}
	return false
}

// platformsToString converts a slice of platforms to a comma-separated string
func platformsToString(platforms []entities.ContainerPlatform) string {
	strs := make([]string, len(platforms))
	for i, p := range platforms {
		strs[i] = string(p)
	}
	return strings.Join(strs, ", ")
}
