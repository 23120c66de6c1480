package xivapi

import (
	"encoding/json"
	"fmt"

	"github.com/tatarubot/tataru/internal/domain"
)

// The directory answers in one of two observed shapes: the stable API
// uses flat fields keyed by ID, the beta API nests everything under
// fields with a row_id. Both are decoded here into a tagged form
// rather than probed ad hoc by callers.

type stableResult struct {
	ID             *int   `json:"ID"`
	Name           string `json:"Name"`
	Icon           string `json:"Icon"`
	ItemUICategory struct {
		Name string `json:"Name"`
	} `json:"ItemUICategory"`
}

type betaResult struct {
	RowID  *int `json:"row_id"`
	Fields *struct {
		Name               string `json:"Name"`
		ItemSearchCategory struct {
			Fields struct {
				Name string `json:"Name"`
			} `json:"fields"`
		} `json:"ItemSearchCategory"`
		Icon struct {
			Path string `json:"path"`
		} `json:"Icon"`
	} `json:"fields"`
}

// decodeItem parses a single directory record in either shape. Records
// missing required fields yield an error; callers treat that as
// "no result".
func decodeItem(raw json.RawMessage) (*domain.Item, error) {
	var stable stableResult
	if err := json.Unmarshal(raw, &stable); err == nil && stable.ID != nil {
		if stable.Name == "" || stable.ItemUICategory.Name == "" {
			return nil, fmt.Errorf("stable result %d missing required fields", *stable.ID)
		}
		category := stable.ItemUICategory.Name
		return &domain.Item{
			ID:       *stable.ID,
			Name:     stable.Name,
			Category: category,
			Emoji:    emojiForCategory(category),
			IconURL:  "https://xivapi.com" + stable.Icon,
		}, nil
	}

	var beta betaResult
	if err := json.Unmarshal(raw, &beta); err != nil {
		return nil, fmt.Errorf("failed to decode directory result: %w", err)
	}
	if beta.RowID == nil || beta.Fields == nil {
		return nil, fmt.Errorf("directory result matches neither stable nor beta shape")
	}
	if beta.Fields.Name == "" || beta.Fields.ItemSearchCategory.Fields.Name == "" {
		return nil, fmt.Errorf("beta result %d missing required fields", *beta.RowID)
	}
	category := beta.Fields.ItemSearchCategory.Fields.Name
	return &domain.Item{
		ID:       *beta.RowID,
		Name:     beta.Fields.Name,
		Category: category,
		Emoji:    emojiForCategory(category),
		IconURL:  fmt.Sprintf("https://beta.xivapi.com/api/1/asset/%s?format=png", beta.Fields.Icon.Path),
	}, nil
}
