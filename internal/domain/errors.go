package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Catalog errors
	ErrMsgItemNotFound   = "item not found"
	ErrMsgRecipeNotFound = "recipe not found"

	// Store errors
	ErrMsgStoreUnavailable     = "store unavailable"
	ErrMsgPredicateUnsupported = "predicate not supported by store"

	// Conversion errors
	ErrMsgConversionFailed = "script conversion failed"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the engine.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for
// additional context. Cancellation is not represented here: callers check
// errors.Is(err, context.Canceled) / context.DeadlineExceeded, and those two
// are the only errors allowed to unwind through every stage unmodified.
var (
	// Catalog errors
	ErrItemNotFound   = errors.New(ErrMsgItemNotFound)
	ErrRecipeNotFound = errors.New(ErrMsgRecipeNotFound)

	// Store errors. ErrStoreUnavailable marks transient network/5xx
	// failures and triggers exactly one full-scan fallback attempt.
	ErrStoreUnavailable     = errors.New(ErrMsgStoreUnavailable)
	ErrPredicateUnsupported = errors.New(ErrMsgPredicateUnsupported)

	// Conversion errors. Callers never see this one: it is caught at the
	// normalizer boundary and the original text is used unchanged.
	ErrConversionFailed = errors.New(ErrMsgConversionFailed)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
