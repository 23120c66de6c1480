// Package resolver flattens a recipe into its aggregated material
// requirements, either one level deep or by following crafting chains
// all the way down to base materials.
package resolver

import (
	"fmt"

	"github.com/tatarubot/tataru/internal/domain"
	"github.com/tatarubot/tataru/internal/metrics"
)

// RecipeFinder is the slice of the recipe catalog the engine needs:
// discovery of sub-recipes by output item.
type RecipeFinder interface {
	FindByOutputItem(itemID int) []domain.Recipe
}

// Resolve expands a recipe into a map from ingredient item id to total
// required amount. In direct mode each occupied slot contributes
// slot amount x multiplier. In recursive mode an ingredient with a
// known recipe is replaced by that recipe's own requirements, scaled
// by ceil(needed / output amount) crafts; ingredients with no recipe
// are base materials and accumulate as in direct mode.
//
// When several recipes produce the same ingredient the first in
// dataset order is used; no cost comparison is made. A crafting cycle
// returns ErrRecipeCycle rather than recursing without bound.
func Resolve(finder RecipeFinder, recipe domain.Recipe, recursive bool, multiplier int) (map[int]int, error) {
	if multiplier < 1 {
		return nil, fmt.Errorf("%w: multiplier must be >= 1, got %d", domain.ErrInvalidInput, multiplier)
	}

	mode := metrics.ModeDirect
	if recursive {
		mode = metrics.ModeRecursive
	}
	metrics.Resolutions.WithLabelValues(mode).Inc()

	maxDepth := 1
	acc := make(map[int]int)
	err := resolve(finder, recipe, recursive, multiplier, acc, map[int]bool{recipe.OutputItemID: true}, 1, &maxDepth)
	if err != nil {
		return nil, err
	}
	metrics.ResolutionDepth.Observe(float64(maxDepth))
	return acc, nil
}

func resolve(finder RecipeFinder, recipe domain.Recipe, recursive bool, multiplier int, acc map[int]int, path map[int]bool, depth int, maxDepth *int) error {
	if depth > *maxDepth {
		*maxDepth = depth
	}

	for slot := 0; slot < domain.RecipeSlots; slot++ {
		ing, ok := recipe.Ingredient(slot)
		if !ok {
			continue
		}
		needed := ing.Amount * multiplier

		if !recursive {
			acc[ing.ItemID] += needed
			continue
		}

		subRecipes := finder.FindByOutputItem(ing.ItemID)
		if len(subRecipes) == 0 {
			// Base material.
			acc[ing.ItemID] += needed
			continue
		}

		if path[ing.ItemID] {
			return fmt.Errorf("%w: item %d", domain.ErrRecipeCycle, ing.ItemID)
		}

		sub := subRecipes[0]
		crafts := ceilDiv(needed, sub.OutputAmount)

		path[ing.ItemID] = true
		if err := resolve(finder, sub, true, crafts, acc, path, depth+1, maxDepth); err != nil {
			return err
		}
		delete(path, ing.ItemID)
	}
	return nil
}

// ceilDiv is integer ceiling division: you cannot craft a fractional
// batch, so surplus output is implied and discarded.
func ceilDiv(needed, perCraft int) int {
	if perCraft < 1 {
		perCraft = 1
	}
	return (needed + perCraft - 1) / perCraft
}
