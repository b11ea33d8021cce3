// Package usecase implements the ledger business logic: expense CRUD,
// settlement, and balance computation.
package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/marolinik/arteon-ledger/internal/feature/ledger/domain"
	"github.com/marolinik/arteon-ledger/internal/feature/ledger/domain/entity"
)

// Actor identifies the user performing a ledger operation. Admins may
// modify any expense; everyone else only their own.
type Actor struct {
	ID      uint
	IsAdmin bool
}

// LedgerUsecase implements expense management for the shared ledger.
type LedgerUsecase struct {
	expenses  ExpenseRepository
	groupSize int
}

// NewLedgerUsecase creates a new LedgerUsecase instance. groupSize is the
// fixed number of housemates the total is split across.
func NewLedgerUsecase(expenses ExpenseRepository, groupSize int) *LedgerUsecase {
	return &LedgerUsecase{expenses: expenses, groupSize: groupSize}
}

// AddExpense validates and records a new unsettled expense owned by userID.
func (u *LedgerUsecase) AddExpense(ctx context.Context, userID uint, amount decimal.Decimal, note string) (*entity.Expense, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, ErrEmptyNote
	}

	expense := &entity.Expense{
		Amount:      amount,
		Note:        note,
		DateEntered: time.Now(),
		UserID:      userID,
		Status:      entity.StatusUnsettled,
	}
	if err := u.expenses.Create(ctx, expense); err != nil {
		return nil, fmt.Errorf("create expense: %w", err)
	}
	return expense, nil
}

// EditExpense overwrites the amount and note of an expense. Only the owner
// or an admin may edit; status, owner, and entry date stay as they are.
func (u *LedgerUsecase) EditExpense(ctx context.Context, actor Actor, id uint, amount decimal.Decimal, note string) (*entity.Expense, error) {
	if err := validateAmount(amount); err != nil {
		return nil, err
	}
	note = strings.TrimSpace(note)
	if note == "" {
		return nil, ErrEmptyNote
	}

	expense, err := u.expenses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if expense.UserID != actor.ID && !actor.IsAdmin {
		return nil, domain.ErrNotOwner
	}

	expense.Amount = amount
	expense.Note = note
	if err := u.expenses.Update(ctx, expense); err != nil {
		return nil, fmt.Errorf("update expense: %w", err)
	}
	return expense, nil
}

// DeleteExpense removes an expense. Only the owner or an admin may delete;
// settled expenses can be deleted too.
func (u *LedgerUsecase) DeleteExpense(ctx context.Context, actor Actor, id uint) error {
	expense, err := u.expenses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if expense.UserID != actor.ID && !actor.IsAdmin {
		return domain.ErrNotOwner
	}

	if err := u.expenses.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete expense: %w", err)
	}
	return nil
}

// SettleAll marks every unsettled expense as settled and returns how many
// were changed. Running it again is a harmless no-op.
func (u *LedgerUsecase) SettleAll(ctx context.Context) (int64, error) {
	count, err := u.expenses.SettleAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("settle all: %w", err)
	}
	return count, nil
}

// SettleOne marks a single expense as settled. An already settled expense
// reports alreadySettled = true without touching the record.
func (u *LedgerUsecase) SettleOne(ctx context.Context, id uint) (alreadySettled bool, err error) {
	expense, err := u.expenses.FindByID(ctx, id)
	if err != nil {
		return false, err
	}
	if expense.IsSettled() {
		return true, nil
	}

	if err := u.expenses.SetStatus(ctx, id, entity.StatusSettled); err != nil {
		return false, fmt.Errorf("settle expense: %w", err)
	}
	return false, nil
}

// ListExpenses returns all expenses, newest first. Settled and unsettled
// entries both appear.
func (u *LedgerUsecase) ListExpenses(ctx context.Context) ([]entity.Expense, error) {
	expenses, err := u.expenses.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	return expenses, nil
}

// validateAmount rejects non-positive amounts and amounts with more than
// two fractional digits.
func validateAmount(amount decimal.Decimal) error {
	if !amount.IsPositive() {
		return ErrInvalidAmount
	}
	if amount.Exponent() < -2 {
		return ErrInvalidAmount
	}
	return nil
}
