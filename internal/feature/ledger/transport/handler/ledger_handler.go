// Package handler provides HTTP handlers for the ledger feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/marolinik/arteon-ledger/internal/feature/ledger/domain"
	"github.com/marolinik/arteon-ledger/internal/feature/ledger/domain/entity"
	"github.com/marolinik/arteon-ledger/internal/feature/ledger/transport/http/dto"
	"github.com/marolinik/arteon-ledger/internal/feature/ledger/usecase"
	"github.com/marolinik/arteon-ledger/internal/platform/token"
)

// LedgerUsecase defines the ledger operations the handler needs.
// Following Go convention: the interface is defined by the consumer (handler),
// not the provider (usecase).
type LedgerUsecase interface {
	AddExpense(ctx context.Context, userID uint, amount decimal.Decimal, note string) (*entity.Expense, error)
	EditExpense(ctx context.Context, actor usecase.Actor, id uint, amount decimal.Decimal, note string) (*entity.Expense, error)
	DeleteExpense(ctx context.Context, actor usecase.Actor, id uint) error
	SettleAll(ctx context.Context) (int64, error)
	SettleOne(ctx context.Context, id uint) (bool, error)
	ListExpenses(ctx context.Context) ([]entity.Expense, error)
	ComputeBalances(ctx context.Context) (*usecase.BalanceSheet, error)
}

// LedgerHandler handles HTTP requests for expense and balance operations.
type LedgerHandler struct {
	ledger LedgerUsecase
}

// NewLedgerHandler creates a new LedgerHandler instance.
func NewLedgerHandler(ledger LedgerUsecase) *LedgerHandler {
	return &LedgerHandler{ledger: ledger}
}

// Dashboard returns the expense list and the group balance sheet.
func (h *LedgerHandler) Dashboard(c *gin.Context) {
	expenses, sheet, ok := h.loadLedger(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, dto.DashboardResponse{
		Expenses: dto.ExpenseResponsesFromEntities(expenses),
		Sheet:    dto.BalanceSheetResponseFromSheet(sheet),
	})
}

// Admin returns the dashboard data extended with settlement counts.
func (h *LedgerHandler) Admin(c *gin.Context) {
	expenses, sheet, ok := h.loadLedger(c)
	if !ok {
		return
	}

	unsettled := 0
	for i := range expenses {
		if expenses[i].Status == entity.StatusUnsettled {
			unsettled++
		}
	}

	c.JSON(http.StatusOK, dto.AdminResponse{
		Expenses:       dto.ExpenseResponsesFromEntities(expenses),
		Sheet:          dto.BalanceSheetResponseFromSheet(sheet),
		UnsettledCount: unsettled,
		SettledCount:   len(expenses) - unsettled,
	})
}

// CreateExpense handles POST /expenses. The new expense is owned by the
// authenticated user and starts unsettled.
func (h *LedgerHandler) CreateExpense(c *gin.Context) {
	var req dto.ExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	user := token.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return
	}

	expense, err := h.ledger.AddExpense(c.Request.Context(), user.ID, req.Amount, req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("expense created", "expense_id", expense.ID, "user_id", user.ID)
	c.JSON(http.StatusCreated, dto.ExpenseResponseFromEntity(expense))
}

// UpdateExpense handles PUT /expenses/:id. Owner or admin only.
func (h *LedgerHandler) UpdateExpense(c *gin.Context) {
	id, ok := h.expenseID(c)
	if !ok {
		return
	}

	var req dto.ExpenseReq
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid request"})
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	expense, err := h.ledger.EditExpense(c.Request.Context(), actor, id, req.Amount, req.Note)
	if err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("expense updated", "expense_id", expense.ID, "actor_id", actor.ID)
	c.JSON(http.StatusOK, dto.ExpenseResponseFromEntity(expense))
}

// DeleteExpense handles DELETE /expenses/:id. Owner or admin only;
// settled expenses may be deleted too.
func (h *LedgerHandler) DeleteExpense(c *gin.Context) {
	id, ok := h.expenseID(c)
	if !ok {
		return
	}

	actor, ok := h.actor(c)
	if !ok {
		return
	}

	if err := h.ledger.DeleteExpense(c.Request.Context(), actor, id); err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("expense deleted", "expense_id", id, "actor_id", actor.ID)
	c.Status(http.StatusNoContent)
}

// SettleAll handles POST /admin/settle. Settling twice is a no-op that
// reports zero changed rows.
func (h *LedgerHandler) SettleAll(c *gin.Context) {
	count, err := h.ledger.SettleAll(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return
	}

	slog.Info("settled all expenses", "count", count)
	c.JSON(http.StatusOK, dto.SettleAllResponse{SettledCount: count})
}

// SettleOne handles POST /admin/expenses/:id/settle. An already settled
// expense reports "already_settled" with 200, never an error.
func (h *LedgerHandler) SettleOne(c *gin.Context) {
	id, ok := h.expenseID(c)
	if !ok {
		return
	}

	alreadySettled, err := h.ledger.SettleOne(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}

	status := "settled"
	if alreadySettled {
		status = "already_settled"
	}
	c.JSON(http.StatusOK, dto.SettleOneResponse{ID: id, Status: status})
}

// loadLedger fetches the expense list and balances shared by the
// dashboard and admin views. A false return means an error was written.
func (h *LedgerHandler) loadLedger(c *gin.Context) ([]entity.Expense, *usecase.BalanceSheet, bool) {
	expenses, err := h.ledger.ListExpenses(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return nil, nil, false
	}

	sheet, err := h.ledger.ComputeBalances(c.Request.Context())
	if err != nil {
		h.writeError(c, err)
		return nil, nil, false
	}

	return expenses, sheet, true
}

// expenseID parses the :id route parameter.
func (h *LedgerHandler) expenseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "invalid expense id"})
		return 0, false
	}
	return uint(id), true
}

// actor builds the ledger actor from the authenticated user.
func (h *LedgerHandler) actor(c *gin.Context) (usecase.Actor, bool) {
	user := token.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: "authentication required"})
		return usecase.Actor{}, false
	}
	return usecase.Actor{ID: user.ID, IsAdmin: user.IsAdmin}, true
}

// writeError maps usecase and domain errors to HTTP responses.
func (h *LedgerHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrExpenseNotFound):
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "expense not found"})
	case errors.Is(err, domain.ErrNotOwner):
		c.JSON(http.StatusForbidden, dto.ErrorResponse{Error: "you can only modify your own expenses"})
	case errors.Is(err, usecase.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: usecase.ErrInvalidAmount.Error()})
	case errors.Is(err, usecase.ErrEmptyNote):
		c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: usecase.ErrEmptyNote.Error()})
	default:
		slog.Error("ledger operation failed", "error", err, "path", c.FullPath())
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "internal server error"})
	}
}
