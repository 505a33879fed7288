package orchestrators

import (
	"context"
	"fmt"

	"github.com/ochairo/crossbuild/internal/domain/entities"
	"github.com/ochairo/crossbuild/internal/domain/interfaces"
	"github.com/ochairo/crossbuild/internal/domain/interfaces/gateways"
	"github.com/ochairo/crossbuild/internal/domain/interfaces/services"
	domainservices "github.com/ochairo/crossbuild/internal/domain/services"
)

// VerifyOrchestrator checks that a staging tree is complete before images are built from it
type VerifyOrchestrator struct {
	recipe     *entities.ReleaseRecipe
	planner    services.Planner
	finder     gateways.StagedFinder
	release    *domainservices.ReleaseService
	checksums  gateways.ChecksumVerifier
	signatures gateways.SignatureVerifier
	logger     interfaces.Logger
	config     VerifyOrchestratorConfig
}

// VerifyOrchestratorConfig holds configuration for staging verification
type VerifyOrchestratorConfig struct {
	Only           []entities.Triple
	CheckChecksums bool // Implied when a signature verifier is set
}

// VerifyResult contains the outcome of a staging verification
type VerifyResult struct {
	Validation         *domainservices.ReleaseValidation
	Staged             map[entities.ContainerPlatform][]string
	ChecksumsVerified  []entities.ContainerPlatform
	SignaturesVerified []entities.ContainerPlatform
}

// NewVerifyOrchestrator creates a verifier. signatures may be nil to skip
// signature checks.
func NewVerifyOrchestrator(
	recipe *entities.ReleaseRecipe,
	planner services.Planner,
	finder gateways.StagedFinder,
	checksums gateways.ChecksumVerifier,
	signatures gateways.SignatureVerifier,
	logger interfaces.Logger,
	config VerifyOrchestratorConfig,
) *VerifyOrchestrator {
	if logger == nil {
		logger = &interfaces.NoOpLogger{}
	}

	return &VerifyOrchestrator{
		recipe:     recipe,
		planner:    planner,
		finder:     finder,
		release:    domainservices.NewReleaseService(),
		checksums:  checksums,
		signatures: signatures,
		logger:     logger,
		config:     config,
	}
}

// Verify checks every planned platform has the same binaries staged, then
// optionally checks checksum manifests and their signatures
func (o *VerifyOrchestrator) Verify(ctx context.Context) (*VerifyResult, error) {
	plans, err := o.planner.PlanRelease(o.recipe, o.config.Only)
	if err != nil {
		return nil, fmt.Errorf("failed to plan release: %w", err)
	}

	result := &VerifyResult{
		Staged: make(map[entities.ContainerPlatform][]string, len(plans)),
	}
	for _, plan := range plans {
		names, err := o.finder.FindStaged(plan.StagingDir, o.recipe.BinaryPrefix)
		if err != nil {
			return result, err
		}
		result.Staged[plan.ContainerPlatform] = names
		o.logger.Debug("staged binaries",
			interfaces.F("platform", plan.ContainerPlatform),
			interfaces.F("count", len(names)),
		)
	}

	result.Validation = o.release.ValidateStaging(plans, result.Staged)
	if !result.Validation.IsReady() {
		return result, fmt.Errorf("%w: %s", entities.ErrStaging, result.Validation.ErrorMessage())
	}

	if !o.config.CheckChecksums && o.signatures == nil {
		return result, nil
	}

	for _, plan := range plans {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		manifest, err := o.checksums.VerifyChecksums(plan.StagingDir)
		if err != nil {
			return result, fmt.Errorf("platform %s: %w", plan.ContainerPlatform, err)
		}
		result.ChecksumsVerified = append(result.ChecksumsVerified, plan.ContainerPlatform)

		if o.signatures != nil {
			if err := o.signatures.VerifySignature(manifest); err != nil {
				return result, fmt.Errorf("%w: platform %s: %w", entities.ErrStaging, plan.ContainerPlatform, err)
			}
			result.SignaturesVerified = append(result.SignaturesVerified, plan.ContainerPlatform)
		}
	}

	return result, nil
}
