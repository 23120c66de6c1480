package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetIngredientBounds(t *testing.T) {
	var r Recipe

	require.NoError(t, r.SetIngredient(0, 10, 2))
	require.NoError(t, r.SetIngredient(RecipeSlots-1, 11, 1))

	assert.ErrorIs(t, r.SetIngredient(-1, 10, 1), ErrInvalidSlot)
	assert.ErrorIs(t, r.SetIngredient(RecipeSlots, 10, 1), ErrInvalidSlot)
}

func TestIngredientOccupancy(t *testing.T) {
	var r Recipe
	require.NoError(t, r.SetIngredient(2, 10, 3))

	ing, ok := r.Ingredient(2)
	require.True(t, ok)
	assert.Equal(t, Ingredient{ItemID: 10, Amount: 3}, ing)

	_, ok = r.Ingredient(0)
	assert.False(t, ok)

	_, ok = r.Ingredient(RecipeSlots)
	assert.False(t, ok)
}

func TestCraftTypeName(t *testing.T) {
	assert.Equal(t, "🧪Alchemy", Recipe{CraftType: 6}.CraftTypeName())
	assert.Equal(t, "🪚Woodworking", Recipe{CraftType: 0}.CraftTypeName())
	assert.Equal(t, "Unknown", Recipe{CraftType: 42}.CraftTypeName())
}

func TestItemEqual(t *testing.T) {
	a := Item{ID: 1, Name: "Potion", Emoji: "🍴", Category: "Medicine", IconURL: "https://example.com/1.png"}
	b := a

	assert.True(t, a.Equal(b))

	b.Emoji = "⚗️"
	assert.False(t, a.Equal(b))
}
