package apperrors

import "errors"

var (
	// ErrValidation rejects plan, session or timer input that breaks an invariant.
	ErrValidation = errors.New("validation failed")
	// ErrFormat marks import payloads that are not JSON at all.
	ErrFormat = errors.New("invalid format")
	// ErrSchema marks JSON payloads missing required fields or with wrong shapes.
	ErrSchema = errors.New("invalid schema")

	ErrSlotEmpty    = errors.New("storage slot empty")
	ErrTimerRunning = errors.New("timer is running")
)
