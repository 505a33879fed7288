package yaml

import (
	"context"
	_ "embed"
	"path/filepath"

	"github.com/adrg/xdg"

	"github.com/ochairo/crossbuild/internal/domain/entities"
	"github.com/ochairo/crossbuild/internal/domain/interfaces/repositories"
)

// BuiltinSource is reported by Source when the embedded recipe is used
const BuiltinSource = "(built-in)"

// userRecipePath is looked up under the XDG config directories
var userRecipePath = filepath.Join("crossbuild", "release.yml")

//go:embed release.yml
var builtinRecipe []byte

var _ repositories.RecipeRepository = (*RecipeRepository)(nil)

// RecipeRepository implements repositories.RecipeRepository. Lookup order is
// the explicit path, then crossbuild/release.yml in the XDG config
// directories, then the recipe compiled into the binary.
type RecipeRepository struct {
	path   string
	parser *RecipeParser
}

// NewRecipeRepository creates a repository; path may be empty
func NewRecipeRepository(path string) *RecipeRepository {
	if path == "" {
		if found, err := xdg.SearchConfigFile(userRecipePath); err == nil {
			path = found
		}
	}
	return &RecipeRepository{
		path:   path,
		parser: NewRecipeParser(),
	}
}

// GetRecipe loads and validates the release recipe
func (r *RecipeRepository) GetRecipe(_ context.Context) (*entities.ReleaseRecipe, error) {
	if r.path == "" {
		return r.parser.Parse(builtinRecipe)
	}
	return r.parser.ParseFile(r.path)
}

// Source returns the recipe path, or BuiltinSource for the embedded recipe
func (r *RecipeRepository) Source() string {
	if r.path == "" {
		return BuiltinSource
	}
	return r.path
}
