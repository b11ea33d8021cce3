package usecase

import "errors"

var (
	// ErrInvalidAmount is returned when an amount is zero, negative, or has
	// more than two fractional digits.
	ErrInvalidAmount = errors.New("amount must be a positive value with at most two decimal places")

	// ErrEmptyNote is returned when an expense note is empty after trimming.
	ErrEmptyNote = errors.New("note must not be empty")
)
