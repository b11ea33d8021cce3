package dto

import (
	"time"

	"github.com/marolinik/arteon-ledger/internal/feature/ledger/domain/entity"
	"github.com/marolinik/arteon-ledger/internal/feature/ledger/usecase"
)

// ErrorResponse is the standard error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

// ExpenseResponse represents one expense in API responses. Monetary
// values are rendered as fixed two-decimal strings.
type ExpenseResponse struct {
	ID          uint   `json:"id"`
	Amount      string `json:"amount"`
	Note        string `json:"note"`
	DateEntered string `json:"date_entered"`
	UserID      uint   `json:"user_id"`
	Status      string `json:"status"`
}

// ExpenseResponseFromEntity maps an expense entity to its API representation.
func ExpenseResponseFromEntity(e *entity.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		Amount:      e.Amount.StringFixed(2),
		Note:        e.Note,
		DateEntered: e.DateEntered.UTC().Format(time.RFC3339),
		UserID:      e.UserID,
		Status:      string(e.Status),
	}
}

// ExpenseResponsesFromEntities maps a slice of expenses, keeping order.
func ExpenseResponsesFromEntities(expenses []entity.Expense) []ExpenseResponse {
	out := make([]ExpenseResponse, 0, len(expenses))
	for i := range expenses {
		out = append(out, ExpenseResponseFromEntity(&expenses[i]))
	}
	return out
}

// BalanceLineResponse is one user's standing in the balance sheet.
type BalanceLineResponse struct {
	UserID    uint   `json:"user_id"`
	FullName  string `json:"full_name"`
	TotalPaid string `json:"total_paid"`
	Balance   string `json:"balance"`
	Owes      string `json:"owes"`
	Owed      string `json:"owed"`
}

// BalanceSheetResponse is the group-wide balance view.
type BalanceSheetResponse struct {
	TotalExpenses string                `json:"total_expenses"`
	CostPerPerson string                `json:"cost_per_person"`
	Balances      []BalanceLineResponse `json:"balances"`
}

// BalanceSheetResponseFromSheet maps a balance sheet, rounding every
// monetary value to two decimal places for presentation.
func BalanceSheetResponseFromSheet(sheet *usecase.BalanceSheet) BalanceSheetResponse {
	lines := make([]BalanceLineResponse, 0, len(sheet.Lines))
	for _, line := range sheet.Lines {
		lines = append(lines, BalanceLineResponse{
			UserID:    line.UserID,
			FullName:  line.FullName,
			TotalPaid: line.TotalPaid.StringFixed(2),
			Balance:   line.Balance.StringFixed(2),
			Owes:      line.Owes.StringFixed(2),
			Owed:      line.Owed.StringFixed(2),
		})
	}
	return BalanceSheetResponse{
		TotalExpenses: sheet.TotalExpenses.StringFixed(2),
		CostPerPerson: sheet.CostPerPerson.StringFixed(2),
		Balances:      lines,
	}
}

// DashboardResponse is the authenticated landing view: the full expense
// list plus the group balance sheet.
type DashboardResponse struct {
	Expenses []ExpenseResponse    `json:"expenses"`
	Sheet    BalanceSheetResponse `json:"balance_sheet"`
}

// AdminResponse extends the dashboard with settlement counts.
type AdminResponse struct {
	Expenses       []ExpenseResponse    `json:"expenses"`
	Sheet          BalanceSheetResponse `json:"balance_sheet"`
	UnsettledCount int                  `json:"unsettled_count"`
	SettledCount   int                  `json:"settled_count"`
}

// SettleAllResponse reports how many expenses a settle-all changed.
type SettleAllResponse struct {
	SettledCount int64 `json:"settled_count"`
}

// SettleOneResponse reports the outcome of settling one expense.
// Status is "settled" or "already_settled".
type SettleOneResponse struct {
	ID     uint   `json:"id"`
	Status string `json:"status"`
}
