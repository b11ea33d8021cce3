// Package dto defines data transfer objects for the ledger feature's HTTP transport layer.
package dto

import "github.com/shopspring/decimal"

// ExpenseReq represents the request body for creating or editing an
// expense. Amount accepts a JSON number or string and is validated in
// the usecase so zero and negative values get a precise error message.
type ExpenseReq struct {
	Amount decimal.Decimal `json:"amount"`
	Note   string          `json:"note"`
}
