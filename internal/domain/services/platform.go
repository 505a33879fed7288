// Package services implements domain logic that does not touch external tools.
package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/containerd/platforms"
	securejoin "github.com/cyphar/filepath-securejoin"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// Architecture prefixes with a known container platform
const (
	ArchX86_64  = "x86_64"
	ArchARMv7   = "armv7"
	ArchAArch64 = "aarch64"
)

// SupportedArchitectures lists the architecture prefixes ResolveContainerPlatform accepts
func SupportedArchitectures() []string {
	return []string{ArchX86_64, ArchARMv7, ArchAArch64}
}

// ResolveContainerPlatform maps an architecture prefix to the container
// platform its binaries are staged under
func ResolveContainerPlatform(arch string) (entities.ContainerPlatform, error) {
	var platform string
	switch arch {
	case ArchX86_64:
		platform = "linux/amd64"
	case ArchARMv7:
		platform = "linux/arm/v7"
	case ArchAArch64:
		platform = "linux/arm64"
	default:
		return "", fmt.Errorf("%w: no container platform for architecture %q (supported: %s)",
			entities.ErrConfiguration, arch, strings.Join(SupportedArchitectures(), ", "))
	}

	spec, err := platforms.Parse(platform)
	if err != nil {
		return "", fmt.Errorf("%w: invalid container platform %q: %w", entities.ErrConfiguration, platform, err)
	}
	return entities.ContainerPlatform(platforms.Format(spec)), nil
}

// SelectBuilder picks the native toolchain for the native architecture and
// the cross-compilation wrapper for everything else
func SelectBuilder(triple entities.Triple, nativeArch string) entities.BuilderKind {
	if triple.Arch() == nativeArch {
		return entities.BuilderNative
	}
	return entities.BuilderCross
}

// PlanningService resolves recipes into platform plans rooted at a project directory
type PlanningService struct {
	projectDir string
}

// NewPlanningService creates a planner for the given project directory
func NewPlanningService(projectDir string) *PlanningService {
	if projectDir == "" {
		projectDir = "."
	}
	return &PlanningService{projectDir: projectDir}
}

// PlanPlatform resolves the container platform, builder and directories for one triple
func (s *PlanningService) PlanPlatform(recipe *entities.ReleaseRecipe, triple entities.Triple) (entities.PlatformPlan, error) {
	containerPlatform, err := ResolveContainerPlatform(triple.Arch())
	if err != nil {
		return entities.PlatformPlan{}, fmt.Errorf("platform %s: %w", triple, err)
	}

	targetRoot := s.resolve(recipe.TargetDir)
	cacheRoot := s.resolve(recipe.CacheDir)
	stagingDir, err := securejoin.SecureJoin(cacheRoot, containerPlatform.Path())
	if err != nil {
		return entities.PlatformPlan{}, fmt.Errorf("%w: staging directory for %s: %w", entities.ErrConfiguration, triple, err)
	}

	return entities.PlatformPlan{
		Triple:            triple,
		ContainerPlatform: containerPlatform,
		Builder:           SelectBuilder(triple, recipe.NativeArch),
		TargetDir:         targetRoot,
		OutputDir:         filepath.Join(targetRoot, string(triple), "release"),
		StagingDir:        stagingDir,
	}, nil
}

// PlanRelease resolves the selected platforms in recipe order. Every triple is
// resolved before anything runs, so one bad entry fails the whole plan.
func (s *PlanningService) PlanRelease(recipe *entities.ReleaseRecipe, selection []entities.Triple) ([]entities.PlatformPlan, error) {
	for _, triple := range selection {
		if !recipe.HasPlatform(triple) {
			return nil, fmt.Errorf("%w: platform %s is not listed in recipe %s", entities.ErrConfiguration, triple, recipe.Name)
		}
	}

	selected := make(map[entities.Triple]bool, len(selection))
	for _, triple := range selection {
		selected[triple] = true
	}

	plans := make([]entities.PlatformPlan, 0, len(recipe.Platforms))
	for _, triple := range recipe.Platforms {
		if len(selected) > 0 && !selected[triple] {
			continue
		}
		plan, err := s.PlanPlatform(recipe, triple)
		if err != nil {
			return nil, err
		}
		plans = append(plans, plan)
	}

	return plans, nil
}

func (s *PlanningService) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(s.projectDir, dir)
}
