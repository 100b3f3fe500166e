package domain

import "errors"

// Domain errors - used across all layers
var (
	// ErrNotFound indicates the requested record was not found
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates the input is invalid
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoSelection indicates the reported selection is collapsed or empty
	ErrNoSelection = errors.New("no selection")

	// ErrCrossSection indicates a selection spans more than one section
	ErrCrossSection = errors.New("selection crosses section boundary")

	// ErrUnresolvableRange indicates a locator cannot be resolved against the
	// currently loaded document
	ErrUnresolvableRange = errors.New("range cannot be resolved")

	// ErrCancelled indicates an in-flight AI request was cancelled
	ErrCancelled = errors.New("request cancelled")

	// ErrNotConfigured indicates the AI service has not been configured
	ErrNotConfigured = errors.New("ai service not configured")

	// ErrServiceUnavailable indicates the AI backend could not be reached
	ErrServiceUnavailable = errors.New("service unavailable")

	// ErrContentTooShort indicates a chapter is too short to summarise
	ErrContentTooShort = errors.New("chapter content too short")
)
