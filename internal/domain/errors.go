package domain

import "errors"

var (
	// ErrInvalidInput rejects malformed boards or constraint edges before any
	// solving begins.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsolvable means zero completions exist from the given partial
	// board. It is an outcome, not a system fault.
	ErrUnsolvable = errors.New("no solution from current board")

	// ErrGenerationBudget means the generator could not meet its difficulty
	// targets within the retry budget. Safe to retry with a new seed.
	ErrGenerationBudget = errors.New("generation budget exceeded")

	// ErrNotFound reports an unknown puzzle id.
	ErrNotFound = errors.New("puzzle not found")
)
