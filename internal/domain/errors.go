package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Item errors
	ErrMsgItemNotFound = "item not found"

	// Recipe errors
	ErrMsgRecipeNotFound = "recipe not found"
	ErrMsgInvalidSlot    = "ingredient slot index out of range"
	ErrMsgRecipeCycle    = "recipe cycle detected"

	// Persistence errors
	ErrMsgPersistFailed = "failed to persist item catalog"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors.
// Wrap these with fmt.Errorf("%w: ...", domain.ErrXxx) for context.
var (
	// Item errors
	ErrItemNotFound = errors.New(ErrMsgItemNotFound)

	// Recipe errors
	ErrRecipeNotFound = errors.New(ErrMsgRecipeNotFound)
	ErrInvalidSlot    = errors.New(ErrMsgInvalidSlot)
	ErrRecipeCycle    = errors.New(ErrMsgRecipeCycle)

	// Persistence errors
	ErrPersistFailed = errors.New(ErrMsgPersistFailed)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
