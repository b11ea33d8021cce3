package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/shopspring/decimal"
)

// divisionPrecision is the number of fractional digits kept when the
// total is split across the group.
const divisionPrecision = 4

// BalanceLine is one user's standing against the equal per-person share.
// Exactly one of Owes/Owed is nonzero unless the balance is zero.
type BalanceLine struct {
	UserID    uint
	FullName  string
	TotalPaid decimal.Decimal
	Balance   decimal.Decimal
	Owes      decimal.Decimal
	Owed      decimal.Decimal
}

// BalanceSheet is the full group view: the expense pool, the equal share,
// and one line per user ordered by contribution (highest first).
type BalanceSheet struct {
	TotalExpenses decimal.Decimal
	CostPerPerson decimal.Decimal
	Lines         []BalanceLine
}

// ComputeBalances builds the group balance sheet. The total covers ALL
// expenses regardless of settlement status: settling acknowledges an
// expense administratively, it does not remove it from the pool.
func (u *LedgerUsecase) ComputeBalances(ctx context.Context) (*BalanceSheet, error) {
	totals, err := u.expenses.TotalsByUser(ctx)
	if err != nil {
		return nil, fmt.Errorf("totals by user: %w", err)
	}

	total := decimal.Zero
	for _, t := range totals {
		total = total.Add(t.TotalPaid)
	}

	costPerPerson := decimal.Zero
	if !total.IsZero() {
		costPerPerson = total.DivRound(decimal.NewFromInt(int64(u.groupSize)), divisionPrecision)
	}

	lines := make([]BalanceLine, 0, len(totals))
	for _, t := range totals {
		balance := t.TotalPaid.Sub(costPerPerson)
		line := BalanceLine{
			UserID:    t.UserID,
			FullName:  t.FullName,
			TotalPaid: t.TotalPaid,
			Balance:   balance,
			Owes:      decimal.Zero,
			Owed:      decimal.Zero,
		}
		if balance.IsNegative() {
			line.Owes = balance.Neg()
		} else {
			line.Owed = balance
		}
		lines = append(lines, line)
	}

	// Highest contributor first; equal contributions keep user-ID order
	sort.SliceStable(lines, func(i, j int) bool {
		cmp := lines[i].TotalPaid.Cmp(lines[j].TotalPaid)
		if cmp != 0 {
			return cmp > 0
		}
		return lines[i].UserID < lines[j].UserID
	})

	return &BalanceSheet{
		TotalExpenses: total,
		CostPerPerson: costPerPerson,
		Lines:         lines,
	}, nil
}
