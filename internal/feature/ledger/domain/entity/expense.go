// Package entity defines the domain entities for the ledger feature.
package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status is the settlement state of an expense. Transitions are
// one-way: an expense goes from unsettled to settled and never back.
type Status string

const (
	StatusUnsettled Status = "unsettled"
	StatusSettled   Status = "settled"
)

// Expense represents a single expense entry in the shared ledger.
// Amount is stored as NUMERIC(10,2); it never passes through float64.
type Expense struct {
	ID          uint            `gorm:"primaryKey"`
	Amount      decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Note        string          `gorm:"type:text;not null"`
	DateEntered time.Time       `gorm:"not null;index"`
	UserID      uint            `gorm:"not null;index"`
	Status      Status          `gorm:"type:varchar(20);not null;default:unsettled"`
}

// TableName specifies the table name for the Expense entity.
func (Expense) TableName() string {
	return "expenses"
}

// IsSettled reports whether the expense has been settled.
func (e *Expense) IsSettled() bool {
	return e.Status == StatusSettled
}
