package cli

import (
	"context"

	"github.com/ochairo/crossbuild/internal/domain/entities"
	"github.com/ochairo/crossbuild/internal/domain/interfaces"
	"github.com/ochairo/crossbuild/internal/domain/interfaces/repositories"
	"github.com/ochairo/crossbuild/internal/external-adapters/yaml"
)

// RecipeFlags select the recipe, project and platforms a command works on
type RecipeFlags struct {
	Recipe     string   `help:"Release recipe file. Defaults to the XDG config recipe, then the built-in one. Overrides are logged as warnings." placeholder:"FILE"`
	ProjectDir string   `help:"Rust project directory. Defaults to the current directory." placeholder:"DIR"`
	Only       []string `help:"Only handle this target triple. Repeatable." placeholder:"TRIPLE"`
}

// loadRecipe resolves the recipe from the flag, then CROSSBUILD_RECIPE, then
// the XDG config directory, then the built-in recipe
func (f *RecipeFlags) loadRecipe(ctx context.Context, app *App) (*entities.ReleaseRecipe, error) {
	path := f.Recipe
	if path == "" {
		path = app.Config.Recipe
	}

	var repo repositories.RecipeRepository = yaml.NewRecipeRepository(path)
	recipe, err := repo.GetRecipe(ctx)
	if err != nil {
		return nil, err
	}

	if source := repo.Source(); source != yaml.BuiltinSource {
		app.Logger.Warn("using recipe override instead of the built-in platform list",
			interfaces.F("name", recipe.Name),
			interfaces.F("source", source),
			interfaces.F("platforms", len(recipe.Platforms)),
		)
		return recipe, nil
	}

	app.Logger.Debug("loaded built-in recipe", interfaces.F("name", recipe.Name))
	return recipe, nil
}

func (f *RecipeFlags) projectDir(app *App) string {
	if f.ProjectDir != "" {
		return f.ProjectDir
	}
	return app.Config.ProjectDir
}

func (f *RecipeFlags) selection() []entities.Triple {
	triples := make([]entities.Triple, len(f.Only))
	for i, t := range f.Only {
		triples[i] = entities.Triple(t)
	}
	return triples
}
