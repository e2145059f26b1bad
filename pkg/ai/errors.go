package ai

import "errors"

// Structured-generation failure classes. Callers match these with errors.Is
// to decide whether a failure is recoverable per item.
var (
	// ErrNoStructuredResponse means the model answered without a usable
	// structured payload (no choices, or an empty message).
	ErrNoStructuredResponse = errors.New("no structured response from model")

	// ErrMalformedPayload means a payload was returned but could not be
	// decoded into the requested schema, even after repair.
	ErrMalformedPayload = errors.New("malformed structured payload")
)
