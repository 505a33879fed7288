package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ochairo/crossbuild/internal/domain-adapters/gateways"
	orchestrators "github.com/ochairo/crossbuild/internal/domain-orchestrators"
	"github.com/ochairo/crossbuild/internal/domain/entities"
	"github.com/ochairo/crossbuild/internal/domain/interfaces"
	domaingateways "github.com/ochairo/crossbuild/internal/domain/interfaces/gateways"
	"github.com/ochairo/crossbuild/internal/domain/services"
	"github.com/ochairo/crossbuild/internal/external-adapters/gpg"
)

// BuildCmd represents the 'crossbuild build' command
type BuildCmd struct {
	RecipeFlags `embed:""`

	DryRun         bool          `help:"Print the plan and exit without running anything."`
	Checksums      bool          `help:"Write SHA256SUMS into each staging directory."`
	SignKey        string        `help:"Armored OpenPGP private key used to sign each SHA256SUMS. Implies --checksums." placeholder:"FILE"`
	Rollback       bool          `help:"Remove the files this run staged if it fails."`
	Report         string        `help:"Write a JSON report of the run." placeholder:"FILE"`
	CommandTimeout time.Duration `help:"Limit each toolchain command. Zero means no limit." placeholder:"DURATION"`
}

// Run executes the build command
func (c *BuildCmd) Run(ctx context.Context, app *App) error {
	recipe, err := c.loadRecipe(ctx, app)
	if err != nil {
		return err
	}

	logger := app.Logger.With(interfaces.F("recipe", recipe.Name))
	projectDir := c.projectDir(app)
	planner := services.NewPlanningService(projectDir)

	timeout := c.CommandTimeout
	if timeout == 0 {
		timeout = app.Config.CommandTimeout
	}

	var signer domaingateways.Signer
	if c.SignKey != "" {
		s, err := gpg.NewSignerFromFile(c.SignKey, []byte(app.Config.SigningPassphrase))
		if err != nil {
			return fmt.Errorf("%w: %w", entities.ErrConfiguration, err)
		}
		logger.Debug("loaded signing key", interfaces.F("fingerprint", s.Fingerprint()))
		signer = s
	}

	runner := gateways.NewCommandRunner(logger, timeout).WithOutput(app.Out, app.Err)
	orch := orchestrators.NewReleaseOrchestrator(
		recipe,
		planner,
		gateways.NewRustupToolchain(runner, recipe.Toolchain.Installer, projectDir),
		gateways.NewCargoBuilder(runner, recipe.Toolchain, projectDir),
		gateways.NewArtifactFinder(),
		gateways.NewStager(logger),
		gateways.NewChecksumWriter(),
		signer,
		logger,
		orchestrators.ReleaseOrchestratorConfig{
			Only:              c.selection(),
			WriteChecksums:    c.Checksums,
			RollbackOnFailure: c.Rollback,
		},
	)

	if c.DryRun {
		plans, err := orch.Plan()
		if err != nil {
			return err
		}
		printPlan(app.Out, recipe, plans)
		return nil
	}

	result, runErr := orch.Run(ctx)

	if !app.Quiet {
		for _, p := range result.Platforms {
			printPlatformResult(app.Out, p)
		}
		printSummary(app.Out, result)
	}

	if c.Report != "" {
		if err := writeReport(c.Report, newReleaseReport(result)); err != nil {
			return errors.Join(runErr, err)
		}
	}

	return runErr
}
