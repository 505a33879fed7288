package cli

import (
	"context"
	"fmt"

	"github.com/ochairo/crossbuild/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/crossbuild/internal/domain-orchestrators"
	"github.com/ochairo/crossbuild/internal/domain/entities"
	"github.com/ochairo/crossbuild/internal/domain/interfaces"
	domaingateways "github.com/ochairo/crossbuild/internal/domain/interfaces/gateways"
	"github.com/ochairo/crossbuild/internal/domain/services"
	"github.com/ochairo/crossbuild/internal/external-adapters/gpg"
)

// VerifyCmd represents the 'crossbuild verify' command
type VerifyCmd struct {
	RecipeFlags `embed:""`

	Checksums bool   `help:"Also check every SHA256SUMS against the staged files."`
	Key       string `help:"Armored OpenPGP public key; checks each SHA256SUMS.asc. Implies --checksums." placeholder:"FILE"`
}

// Run executes the verify command
func (c *VerifyCmd) Run(ctx context.Context, app *App) error {
	recipe, err := c.loadRecipe(ctx, app)
	if err != nil {
		return err
	}

	var signatures domaingateways.SignatureVerifier
	if c.Key != "" {
		v := gpg.NewVerifier()
		if err := v.ImportKeyFromFile(c.Key); err != nil {
			return fmt.Errorf("%w: %w", entities.ErrConfiguration, err)
		}
		app.Logger.Debug("imported verification keys", interfaces.F("keys", v.KeyCount()))
		signatures = v
	}

	orch := orchestrators.NewVerifyOrchestrator(
		recipe,
		services.NewPlanningService(c.projectDir(app)),
		gateways.NewArtifactFinder(),
		gateways.NewChecksumWriter(),
		signatures,
		app.Logger,
		orchestrators.VerifyOrchestratorConfig{
			Only:           c.selection(),
			CheckChecksums: c.Checksums,
		},
	)

	if !app.Quiet {
		_, _ = bold.Fprintf(app.Out, "🔍 Verifying staged binaries for %s\n", recipe.Name)
	}

	result, err := orch.Verify(ctx)
	if err != nil {
		return err
	}

	if !app.Quiet {
		for _, p := range result.Validation.ExpectedPlatforms {
			_, _ = success.Fprintf(app.Out, "✅ %s", p)
			fmt.Fprintf(app.Out, " %v\n", result.Staged[p])
		}
		if len(result.ChecksumsVerified) > 0 {
			_, _ = faint.Fprintf(app.Out, "   checksums verified for %d platforms\n", len(result.ChecksumsVerified))
		}
		if len(result.SignaturesVerified) > 0 {
			_, _ = faint.Fprintf(app.Out, "   signatures verified for %d platforms\n", len(result.SignaturesVerified))
		}
	}
	return nil
}
