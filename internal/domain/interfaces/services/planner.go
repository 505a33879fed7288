// Package services defines interfaces for domain service contracts.
package services

import "github.com/ochairo/crossbuild/internal/domain/entities"

// Planner resolves a release recipe into per-platform work
type Planner interface {
	// PlanRelease resolves every selected platform, in recipe order.
	// An empty selection means all platforms.
	PlanRelease(recipe *entities.ReleaseRecipe, selection []entities.Triple) ([]entities.PlatformPlan, error)
}
