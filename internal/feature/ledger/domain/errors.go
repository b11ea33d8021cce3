// Package domain defines domain-level errors for the ledger feature.
package domain

import "errors"

var (
	// ErrExpenseNotFound is returned when no expense matches the given ID.
	ErrExpenseNotFound = errors.New("expense not found")

	// ErrNotOwner is returned when a user tries to modify an expense they
	// do not own and they are not an admin.
	ErrNotOwner = errors.New("expense belongs to another user")
)
