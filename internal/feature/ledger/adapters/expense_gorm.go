// Package adapters provides gorm-backed implementations of the ledger
// repository interfaces.
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/marolinik/arteon-ledger/internal/feature/ledger/domain"
	"github.com/marolinik/arteon-ledger/internal/feature/ledger/domain/entity"
	"github.com/marolinik/arteon-ledger/internal/feature/ledger/usecase"
)

// expenseGorm is a gorm implementation of usecase.ExpenseRepository.
type expenseGorm struct {
	db *gorm.DB
}

// Compile-time check to ensure expenseGorm implements ExpenseRepository.
var _ usecase.ExpenseRepository = (*expenseGorm)(nil)

// NewExpenseGorm creates a new gorm-backed expense repository.
func NewExpenseGorm(db *gorm.DB) usecase.ExpenseRepository {
	return &expenseGorm{db: db}
}

// Create persists a new expense.
func (r *expenseGorm) Create(ctx context.Context, expense *entity.Expense) error {
	return r.db.WithContext(ctx).Create(expense).Error
}

// FindByID retrieves an expense by ID.
func (r *expenseGorm) FindByID(ctx context.Context, id uint) (*entity.Expense, error) {
	var expense entity.Expense
	if err := r.db.WithContext(ctx).First(&expense, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrExpenseNotFound
		}
		return nil, err
	}
	return &expense, nil
}

// Update overwrites the amount and note of an existing expense. Owner,
// status, and entry date are not touched.
func (r *expenseGorm) Update(ctx context.Context, expense *entity.Expense) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Expense{}).
		Where("id = ?", expense.ID).
		Updates(map[string]any{
			"amount": expense.Amount,
			"note":   expense.Note,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// Delete removes an expense by ID.
func (r *expenseGorm) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&entity.Expense{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// ListAll returns every expense ordered by entry date descending.
func (r *expenseGorm) ListAll(ctx context.Context) ([]entity.Expense, error) {
	var expenses []entity.Expense
	if err := r.db.WithContext(ctx).
		Order("date_entered DESC").
		Find(&expenses).Error; err != nil {
		return nil, err
	}
	return expenses, nil
}

// SettleAll flips every unsettled expense to settled in one statement.
func (r *expenseGorm) SettleAll(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&entity.Expense{}).
		Where("status = ?", entity.StatusUnsettled).
		Update("status", entity.StatusSettled)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// SetStatus sets the status of a single expense.
func (r *expenseGorm) SetStatus(ctx context.Context, id uint, status entity.Status) error {
	result := r.db.WithContext(ctx).
		Model(&entity.Expense{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrExpenseNotFound
	}
	return nil
}

// TotalsByUser sums each user's contribution with a LEFT JOIN so users
// without expenses appear with a zero total.
func (r *expenseGorm) TotalsByUser(ctx context.Context) ([]usecase.UserTotal, error) {
	var totals []usecase.UserTotal
	err := r.db.WithContext(ctx).
		Table("users").
		Select("users.id AS user_id, users.full_name AS full_name, COALESCE(SUM(expenses.amount), 0) AS total_paid").
		Joins("LEFT JOIN expenses ON expenses.user_id = users.id").
		Group("users.id, users.full_name").
		Scan(&totals).Error
	if err != nil {
		return nil, err
	}
	return totals, nil
}
