package domain

import "fmt"

// RecipeSlots is the fixed number of ingredient positions in a recipe.
const RecipeSlots = 8

// Ingredient is one occupied slot of a recipe. A zero-value Ingredient
// (ItemID 0) marks an empty slot.
type Ingredient struct {
	ItemID int `json:"item_id"`
	Amount int `json:"amount"`
}

// Recipe represents one row of the bulk recipe dataset. Recipes are
// immutable after load: the catalog hands out copies by value.
type Recipe struct {
	Number       int                     `json:"recipe_number"`
	CraftType    int                     `json:"craft_type"`
	OutputItemID int                     `json:"output_item_id"`
	OutputAmount int                     `json:"output_amount"`
	Ingredients  [RecipeSlots]Ingredient `json:"ingredients"`
}

// SetIngredient places an ingredient at the given slot index.
// An index outside [0,8) is a programming defect, not a data error.
func (r *Recipe) SetIngredient(index, itemID, amount int) error {
	if index < 0 || index >= RecipeSlots {
		return fmt.Errorf("%w: index %d", ErrInvalidSlot, index)
	}
	r.Ingredients[index] = Ingredient{ItemID: itemID, Amount: amount}
	return nil
}

// Ingredient returns the slot at the given index and whether it is
// occupied. Slots with a non-positive item id are empty by contract.
func (r Recipe) Ingredient(index int) (Ingredient, bool) {
	if index < 0 || index >= RecipeSlots {
		return Ingredient{}, false
	}
	ing := r.Ingredients[index]
	return ing, ing.ItemID > 0
}

// craftTypeNames maps the dataset's craft type enum to display names.
var craftTypeNames = map[int]string{
	0: "🪚Woodworking",
	1: "🔨Smithing",
	2: "🛡️Armorcraft",
	3: "💍Goldsmithing",
	4: "👜Leatherworking",
	5: "🧶Clothcraft",
	6: "🧪Alchemy",
	7: "🍳Cooking",
}

// CraftTypeName returns the display name for the recipe's discipline.
func (r Recipe) CraftTypeName() string {
	if name, ok := craftTypeNames[r.CraftType]; ok {
		return name
	}
	return "Unknown"
}
