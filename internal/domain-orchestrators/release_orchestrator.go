// Package orchestrators coordinates complex workflows across multiple domain services.
package orchestrators

import (
	"context"
	"fmt"
	"time"

	"github.com/ochairo/crossbuild/internal/domain/entities"
	"github.com/ochairo/crossbuild/internal/domain/interfaces"
	"github.com/ochairo/crossbuild/internal/domain/interfaces/gateways"
	"github.com/ochairo/crossbuild/internal/domain/interfaces/services"
)

// ReleaseOrchestrator builds every platform of a release recipe in order and
// stages the resulting binaries
type ReleaseOrchestrator struct {
	recipe    *entities.ReleaseRecipe
	planner   services.Planner
	toolchain gateways.Toolchain
	builder   gateways.Builder
	finder    gateways.ArtifactFinder
	stager    gateways.Stager
	checksums gateways.ChecksumWriter
	signer    gateways.Signer
	logger    interfaces.Logger
	config    ReleaseOrchestratorConfig
}

// ReleaseOrchestratorConfig holds configuration for the orchestrator
type ReleaseOrchestratorConfig struct {
	Only              []entities.Triple // Restrict the run to these platforms; empty means all
	WriteChecksums    bool
	RollbackOnFailure bool
}

// NewReleaseOrchestrator creates a new release orchestrator. signer may be nil
// to skip signing.
func NewReleaseOrchestrator(
	recipe *entities.ReleaseRecipe,
	planner services.Planner,
	toolchain gateways.Toolchain,
	builder gateways.Builder,
	finder gateways.ArtifactFinder,
	stager gateways.Stager,
	checksums gateways.ChecksumWriter,
	signer gateways.Signer,
	logger interfaces.Logger,
	config ReleaseOrchestratorConfig,
) *ReleaseOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &ReleaseOrchestrator{
		recipe:    recipe,
		planner:   planner,
		toolchain: toolchain,
		builder:   builder,
		finder:    finder,
		stager:    stager,
		checksums: checksums,
		signer:    signer,
		logger:    logger,
		config:    config,
	}
}

// Plan resolves the selected platforms without running anything
func (o *ReleaseOrchestrator) Plan() ([]entities.PlatformPlan, error) {
	return o.planner.PlanRelease(o.recipe, o.config.Only)
}

// Run executes the release. Every platform is planned first, so an unmapped
// architecture fails before any program runs. The first failing platform
// aborts the run; platforms after it are not attempted.
func (o *ReleaseOrchestrator) Run(ctx context.Context) (*entities.ReleaseResult, error) {
	startTime := time.Now()
	result := &entities.ReleaseResult{Recipe: o.recipe.Name}

	plans, err := o.Plan()
	if err != nil {
		result.Error = fmt.Errorf("failed to plan release: %w", err)
		result.Duration = time.Since(startTime)
		return result, result.Error
	}

	var written []string
	for i := range plans {
		plan := plans[i]

		platformResult, paths, err := o.releasePlatform(ctx, plan)
		written = append(written, paths...)
		if err != nil {
			result.Failed = &plan
			result.Error = fmt.Errorf("platform %s: %w", plan.Triple, err)
			o.logger.Error("release failed",
				interfaces.F("triple", plan.Triple),
				interfaces.F("error", err),
			)
			if o.config.RollbackOnFailure {
				o.rollback(written, result)
			}
			result.Duration = time.Since(startTime)
			return result, result.Error
		}

		result.Platforms = append(result.Platforms, *platformResult)
	}

	result.Duration = time.Since(startTime)
	o.logger.Info("release complete",
		interfaces.F("platforms", len(result.Platforms)),
		interfaces.F("artifacts", result.ArtifactCount()),
		interfaces.F("duration", result.Duration.Round(time.Millisecond)),
	)
	return result, nil
}

// releasePlatform builds and stages one platform. It returns the paths it
// wrote even when it fails part way.
func (o *ReleaseOrchestrator) releasePlatform(ctx context.Context, plan entities.PlatformPlan) (*entities.PlatformResult, []string, error) {
	startTime := time.Now()
	result := &entities.PlatformResult{Plan: plan}

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	o.logger.Info("building platform",
		interfaces.F("triple", plan.Triple),
		interfaces.F("platform", plan.ContainerPlatform),
		interfaces.F("builder", plan.Builder),
	)

	// Step 1: Install the compilation target
	if err := o.toolchain.AddTarget(ctx, plan.Triple); err != nil {
		return nil, nil, err
	}

	// Step 2: Build the release binaries
	buildStart := time.Now()
	if err := o.builder.Build(ctx, plan); err != nil {
		return nil, nil, err
	}
	result.BuildDuration = time.Since(buildStart)

	// Step 3: Prepare the staging directory
	if err := o.stager.EnsureDir(plan.StagingDir); err != nil {
		return nil, nil, err
	}

	// Step 4: Collect the binaries from the release output
	o.logger.Info("release output", interfaces.F("dir", plan.OutputDir))
	binaries, err := o.finder.FindBinaries(plan.OutputDir, o.recipe.BinaryPrefix)
	if err != nil {
		return nil, nil, err
	}
	if len(binaries) == 0 {
		o.logger.Warn("no binaries matched",
			interfaces.F("dir", plan.OutputDir),
			interfaces.F("prefix", o.recipe.BinaryPrefix+"*"),
		)
	}

	// Step 5: Stage them
	artifacts, err := o.stager.Stage(ctx, plan.StagingDir, binaries)
	written := artifactPaths(artifacts)
	if err != nil {
		return nil, written, err
	}
	result.Artifacts = artifacts

	// Step 6: Checksums and signature
	if o.config.WriteChecksums || o.signer != nil {
		sumPath, err := o.checksums.WriteChecksums(plan.StagingDir, result.Artifacts)
		if err != nil {
			return nil, written, err
		}
		written = append(written, sumPath)
		result.ChecksumPath = sumPath

		if o.signer != nil {
			sigPath, err := o.signer.SignFile(sumPath)
			if err != nil {
				return nil, written, fmt.Errorf("%w: %w", entities.ErrStaging, err)
			}
			written = append(written, sigPath)
			result.SignaturePath = sigPath
		}
	}

	result.TotalDuration = time.Since(startTime)
	o.logger.Info("platform staged",
		interfaces.F("platform", plan.ContainerPlatform),
		interfaces.F("artifacts", len(result.Artifacts)),
		interfaces.F("dir", plan.StagingDir),
	)
	return result, written, nil
}

func (o *ReleaseOrchestrator) rollback(paths []string, result *entities.ReleaseResult) {
	if len(paths) == 0 {
		return
	}
	o.logger.Warn("rolling back staged files", interfaces.F("count", len(paths)))
	if err := o.stager.Remove(paths); err != nil {
		o.logger.Error("rollback incomplete", interfaces.F("error", err))
		return
	}
	result.RolledBack = paths
}

func artifactPaths(artifacts []entities.StagedArtifact) []string {
	paths := make([]string, len(artifacts))
	for i, a := range artifacts {
		paths[i] = a.Path
	}
	return paths
}
