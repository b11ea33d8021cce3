package usecase

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/marolinik/arteon-ledger/internal/feature/ledger/domain/entity"
)

// UserTotal is one row of the per-user contribution query. Users with no
// expenses appear with a zero total (left-join semantics).
type UserTotal struct {
	UserID    uint
	FullName  string
	TotalPaid decimal.Decimal
}

// ExpenseRepository abstracts the persistence layer for expense entities.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type ExpenseRepository interface {
	// Create persists a new expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByID retrieves an expense by ID, or domain.ErrExpenseNotFound.
	FindByID(ctx context.Context, id uint) (*entity.Expense, error)

	// Update overwrites the amount and note of an existing expense.
	Update(ctx context.Context, expense *entity.Expense) error

	// Delete removes an expense by ID, or domain.ErrExpenseNotFound.
	Delete(ctx context.Context, id uint) error

	// ListAll returns every expense ordered by DateEntered descending.
	ListAll(ctx context.Context) ([]entity.Expense, error)

	// SettleAll marks every unsettled expense as settled in one statement
	// and returns the number of rows changed.
	SettleAll(ctx context.Context) (int64, error)

	// SetStatus sets the status of a single expense.
	SetStatus(ctx context.Context, id uint, status entity.Status) error

	// TotalsByUser returns each user's summed contribution, including
	// users who have logged no expenses.
	TotalsByUser(ctx context.Context) ([]UserTotal, error)
}
