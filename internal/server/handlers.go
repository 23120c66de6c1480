package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sort"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/tatarubot/tataru/internal/domain"
	"github.com/tatarubot/tataru/internal/itemstore"
	"github.com/tatarubot/tataru/internal/logger"
	"github.com/tatarubot/tataru/internal/recipecatalog"
	"github.com/tatarubot/tataru/internal/resolver"
)

var validate = validator.New()

// HealthResponse represents the response for health endpoints
type HealthResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// ResolveRequest asks for the ingredient totals of an item's default
// recipe. Multiplier defaults to one craft when omitted.
type ResolveRequest struct {
	ItemID     int  `json:"item_id" validate:"required,gt=0"`
	Recursive  bool `json:"recursive"`
	Multiplier int  `json:"multiplier" validate:"gte=1"`
}

// ResolvedIngredient is one line of a resolve response.
type ResolvedIngredient struct {
	ItemID int `json:"item_id"`
	Amount int `json:"amount"`
}

// ResolveResponse carries the resolved ingredient totals.
type ResolveResponse struct {
	ItemID       int                  `json:"item_id"`
	RecipeNumber int                  `json:"recipe_number"`
	Recursive    bool                 `json:"recursive"`
	Multiplier   int                  `json:"multiplier"`
	Ingredients  []ResolvedIngredient `json:"ingredients"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("Failed to encode JSON response", "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// handleHealthz provides a basic liveness check
func handleHealthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// handleReadyz reports ready once the recipe dataset is loaded.
func handleReadyz(catalog *recipecatalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if catalog.Len() == 0 {
			respondJSON(w, http.StatusServiceUnavailable, HealthResponse{
				Status:  "unavailable",
				Message: "recipe dataset not loaded",
			})
			return
		}
		respondJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
	}
}

// handleGetItem serves a cached item record by id. Unknown ids are not
// fetched from the directory here; the read API never writes.
func handleGetItem(store *itemstore.Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.Atoi(chi.URLParam(r, "id"))
		if err != nil || id <= 0 {
			respondError(w, http.StatusBadRequest, "item id must be a positive integer")
			return
		}

		item, ok := store.Cached(id)
		if !ok {
			respondError(w, http.StatusNotFound, domain.ErrMsgItemNotFound)
			return
		}
		respondJSON(w, http.StatusOK, item)
	}
}

// handleGetRecipe serves a recipe by its dataset number.
func handleGetRecipe(catalog *recipecatalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		number, err := strconv.Atoi(chi.URLParam(r, "number"))
		if err != nil || number <= 0 {
			respondError(w, http.StatusBadRequest, "recipe number must be a positive integer")
			return
		}

		recipe := catalog.FindByNumber(number)
		if recipe == nil {
			respondError(w, http.StatusNotFound, domain.ErrMsgRecipeNotFound)
			return
		}
		respondJSON(w, http.StatusOK, recipe)
	}
}

// handleResolve resolves the default recipe for an item into its
// ingredient totals, optionally recursing to base materials.
func handleResolve(catalog *recipecatalog.Catalog) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req ResolveRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if req.Multiplier == 0 {
			req.Multiplier = 1
		}
		if err := validate.Struct(req); err != nil {
			respondError(w, http.StatusBadRequest, "invalid request: "+err.Error())
			return
		}

		recipes := catalog.FindByOutputItem(req.ItemID)
		if len(recipes) == 0 {
			respondError(w, http.StatusNotFound, "no recipe produces this item")
			return
		}
		recipe := recipes[0]

		amounts, err := resolver.Resolve(catalog, recipe, req.Recursive, req.Multiplier)
		if err != nil {
			if errors.Is(err, domain.ErrRecipeCycle) {
				respondError(w, http.StatusUnprocessableEntity, "crafting chain contains a cycle")
				return
			}
			log.Error("Recipe resolution failed", "item_id", req.ItemID, "error", err)
			respondError(w, http.StatusInternalServerError, "failed to resolve recipe")
			return
		}

		respondJSON(w, http.StatusOK, ResolveResponse{
			ItemID:       req.ItemID,
			RecipeNumber: recipe.Number,
			Recursive:    req.Recursive,
			Multiplier:   req.Multiplier,
			Ingredients:  sortedIngredients(amounts),
		})
	}
}

// sortedIngredients flattens an amounts map into ascending item id
// order for stable output.
func sortedIngredients(amounts map[int]int) []ResolvedIngredient {
	out := make([]ResolvedIngredient, 0, len(amounts))
	for id, amount := range amounts {
		out = append(out, ResolvedIngredient{ItemID: id, Amount: amount})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemID < out[j].ItemID })
	return out
}
