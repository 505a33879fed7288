package cli

import (
	"context"

	"github.com/ochairo/crossbuild/internal/domain/services"
)

// PlanCmd represents the 'crossbuild plan' command
type PlanCmd struct {
	RecipeFlags `embed:""`
}

// Run executes the plan command
func (c *PlanCmd) Run(ctx context.Context, app *App) error {
	recipe, err := c.loadRecipe(ctx, app)
	if err != nil {
		return err
	}

	plans, err := services.NewPlanningService(c.projectDir(app)).PlanRelease(recipe, c.selection())
	if err != nil {
		return err
	}

	printPlan(app.Out, recipe, plans)
	return nil
}
