// Package repositories defines interfaces for data access layers.
package repositories

import (
	"context"

	"github.com/ochairo/crossbuild/internal/domain/entities"
)

// RecipeRepository defines the interface for loading the release recipe
type RecipeRepository interface {
	// GetRecipe loads the release recipe
	GetRecipe(ctx context.Context) (*entities.ReleaseRecipe, error)

	// Source describes where the recipe is loaded from
	Source() string
}
