package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/marolinik/arteon-ledger/internal/feature/ledger/domain"
	"github.com/marolinik/arteon-ledger/internal/feature/ledger/domain/entity"
)

// mockExpenseRepository is a functional mock of ExpenseRepository.
type mockExpenseRepository struct {
	CreateFunc       func(ctx context.Context, expense *entity.Expense) error
	FindByIDFunc     func(ctx context.Context, id uint) (*entity.Expense, error)
	UpdateFunc       func(ctx context.Context, expense *entity.Expense) error
	DeleteFunc       func(ctx context.Context, id uint) error
	ListAllFunc      func(ctx context.Context) ([]entity.Expense, error)
	SettleAllFunc    func(ctx context.Context) (int64, error)
	SetStatusFunc    func(ctx context.Context, id uint, status entity.Status) error
	TotalsByUserFunc func(ctx context.Context) ([]UserTotal, error)
}

func (m *mockExpenseRepository) Create(ctx context.Context, expense *entity.Expense) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, expense)
	}
	return nil
}

func (m *mockExpenseRepository) FindByID(ctx context.Context, id uint) (*entity.Expense, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrExpenseNotFound
}

func (m *mockExpenseRepository) Update(ctx context.Context, expense *entity.Expense) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, expense)
	}
	return nil
}

func (m *mockExpenseRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *mockExpenseRepository) ListAll(ctx context.Context) ([]entity.Expense, error) {
	if m.ListAllFunc != nil {
		return m.ListAllFunc(ctx)
	}
	return nil, nil
}

func (m *mockExpenseRepository) SettleAll(ctx context.Context) (int64, error) {
	if m.SettleAllFunc != nil {
		return m.SettleAllFunc(ctx)
	}
	return 0, nil
}

func (m *mockExpenseRepository) SetStatus(ctx context.Context, id uint, status entity.Status) error {
	if m.SetStatusFunc != nil {
		return m.SetStatusFunc(ctx, id, status)
	}
	return nil
}

func (m *mockExpenseRepository) TotalsByUser(ctx context.Context) ([]UserTotal, error) {
	if m.TotalsByUserFunc != nil {
		return m.TotalsByUserFunc(ctx)
	}
	return nil, nil
}

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal literal %q: %v", s, err)
	}
	return d
}

func TestLedgerUsecase_AddExpense(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		amount  string
		note    string
		wantErr error
	}{
		{name: "success: whole amount", amount: "40", note: "groceries"},
		{name: "success: two decimal places", amount: "12.34", note: "cleaning supplies"},
		{name: "success: minimum amount", amount: "0.01", note: "parking"},
		{name: "failure: zero amount", amount: "0", note: "groceries", wantErr: ErrInvalidAmount},
		{name: "failure: negative amount", amount: "-5", note: "groceries", wantErr: ErrInvalidAmount},
		{name: "failure: three decimal places", amount: "1.005", note: "groceries", wantErr: ErrInvalidAmount},
		{name: "failure: empty note", amount: "10", note: "", wantErr: ErrEmptyNote},
		{name: "failure: whitespace note", amount: "10", note: "   ", wantErr: ErrEmptyNote},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var created *entity.Expense
			repo := &mockExpenseRepository{
				CreateFunc: func(ctx context.Context, expense *entity.Expense) error {
					created = expense
					return nil
				},
			}
			uc := NewLedgerUsecase(repo, 4)

			expense, err := uc.AddExpense(context.Background(), 2, dec(t, tt.amount), tt.note)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if created != nil {
					t.Error("repository should not be called on validation failure")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if expense.UserID != 2 {
				t.Errorf("owner = %d, want 2", expense.UserID)
			}
			if expense.Status != entity.StatusUnsettled {
				t.Errorf("status = %q, want %q", expense.Status, entity.StatusUnsettled)
			}
			if expense.DateEntered.IsZero() {
				t.Error("DateEntered not set")
			}
			if !expense.Amount.Equal(dec(t, tt.amount)) {
				t.Errorf("amount = %s, want %s", expense.Amount, tt.amount)
			}
		})
	}
}

func TestLedgerUsecase_EditExpense(t *testing.T) {
	t.Parallel()

	existing := func() *entity.Expense {
		return &entity.Expense{ID: 7, UserID: 2, Amount: decimal.NewFromInt(10), Note: "old note", Status: entity.StatusUnsettled}
	}

	tests := []struct {
		name    string
		actor   Actor
		findErr error
		wantErr error
	}{
		{name: "success: owner edits", actor: Actor{ID: 2}},
		{name: "success: admin edits someone else's expense", actor: Actor{ID: 1, IsAdmin: true}},
		{name: "failure: non-owner non-admin", actor: Actor{ID: 3}, wantErr: domain.ErrNotOwner},
		{name: "failure: expense not found", actor: Actor{ID: 2}, findErr: domain.ErrExpenseNotFound, wantErr: domain.ErrExpenseNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			updated := false
			repo := &mockExpenseRepository{
				FindByIDFunc: func(ctx context.Context, id uint) (*entity.Expense, error) {
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					return existing(), nil
				},
				UpdateFunc: func(ctx context.Context, expense *entity.Expense) error {
					updated = true
					return nil
				},
			}
			uc := NewLedgerUsecase(repo, 4)

			expense, err := uc.EditExpense(context.Background(), tt.actor, 7, dec(t, "25.50"), "new note")

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if updated {
					t.Error("record must stay unchanged when the edit is denied")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !updated {
				t.Fatal("repository Update not called")
			}
			if !expense.Amount.Equal(dec(t, "25.50")) || expense.Note != "new note" {
				t.Errorf("expense not overwritten: amount=%s note=%q", expense.Amount, expense.Note)
			}
			if expense.UserID != 2 || expense.Status != entity.StatusUnsettled {
				t.Error("owner and status must be immutable on edit")
			}
		})
	}
}

func TestLedgerUsecase_EditExpense_InvalidInput(t *testing.T) {
	t.Parallel()

	repo := &mockExpenseRepository{}
	uc := NewLedgerUsecase(repo, 4)

	if _, err := uc.EditExpense(context.Background(), Actor{ID: 2}, 7, dec(t, "-1"), "note"); !errors.Is(err, ErrInvalidAmount) {
		t.Errorf("expected ErrInvalidAmount, got %v", err)
	}
	if _, err := uc.EditExpense(context.Background(), Actor{ID: 2}, 7, dec(t, "10"), " "); !errors.Is(err, ErrEmptyNote) {
		t.Errorf("expected ErrEmptyNote, got %v", err)
	}
}

func TestLedgerUsecase_DeleteExpense(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		actor   Actor
		status  entity.Status
		findErr error
		wantErr error
	}{
		{name: "success: owner deletes", actor: Actor{ID: 2}, status: entity.StatusUnsettled},
		{name: "success: owner deletes settled expense", actor: Actor{ID: 2}, status: entity.StatusSettled},
		{name: "success: admin deletes", actor: Actor{ID: 1, IsAdmin: true}, status: entity.StatusUnsettled},
		{name: "failure: non-owner non-admin", actor: Actor{ID: 3}, status: entity.StatusUnsettled, wantErr: domain.ErrNotOwner},
		{name: "failure: expense not found", actor: Actor{ID: 2}, findErr: domain.ErrExpenseNotFound, wantErr: domain.ErrExpenseNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			deleted := false
			repo := &mockExpenseRepository{
				FindByIDFunc: func(ctx context.Context, id uint) (*entity.Expense, error) {
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					return &entity.Expense{ID: 7, UserID: 2, Status: tt.status}, nil
				},
				DeleteFunc: func(ctx context.Context, id uint) error {
					deleted = true
					return nil
				},
			}
			uc := NewLedgerUsecase(repo, 4)

			err := uc.DeleteExpense(context.Background(), tt.actor, 7)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				if deleted {
					t.Error("record must stay unchanged when the delete is denied")
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !deleted {
				t.Error("repository Delete not called")
			}
		})
	}
}

func TestLedgerUsecase_SettleAll(t *testing.T) {
	t.Parallel()

	calls := 0
	repo := &mockExpenseRepository{
		SettleAllFunc: func(ctx context.Context) (int64, error) {
			calls++
			if calls == 1 {
				return 3, nil
			}
			return 0, nil // Second run finds nothing to settle
		},
	}
	uc := NewLedgerUsecase(repo, 4)

	count, err := uc.SettleAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 3 {
		t.Errorf("settled = %d, want 3", count)
	}

	count, err = uc.SettleAll(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if count != 0 {
		t.Errorf("second run settled = %d, want 0", count)
	}
}

func TestLedgerUsecase_SettleOne(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name               string
		status             entity.Status
		findErr            error
		wantAlreadySettled bool
		wantStatusCall     bool
		wantErr            error
	}{
		{name: "success: settles unsettled expense", status: entity.StatusUnsettled, wantStatusCall: true},
		{name: "success: already settled is informational", status: entity.StatusSettled, wantAlreadySettled: true},
		{name: "failure: expense not found", findErr: domain.ErrExpenseNotFound, wantErr: domain.ErrExpenseNotFound},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			statusCalled := false
			repo := &mockExpenseRepository{
				FindByIDFunc: func(ctx context.Context, id uint) (*entity.Expense, error) {
					if tt.findErr != nil {
						return nil, tt.findErr
					}
					return &entity.Expense{ID: 7, UserID: 2, Status: tt.status}, nil
				},
				SetStatusFunc: func(ctx context.Context, id uint, status entity.Status) error {
					statusCalled = true
					if status != entity.StatusSettled {
						t.Errorf("status = %q, want %q", status, entity.StatusSettled)
					}
					return nil
				},
			}
			uc := NewLedgerUsecase(repo, 4)

			alreadySettled, err := uc.SettleOne(context.Background(), 7)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if alreadySettled != tt.wantAlreadySettled {
				t.Errorf("alreadySettled = %v, want %v", alreadySettled, tt.wantAlreadySettled)
			}
			if statusCalled != tt.wantStatusCall {
				t.Errorf("SetStatus called = %v, want %v", statusCalled, tt.wantStatusCall)
			}
		})
	}
}
