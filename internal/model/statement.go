package model

import "github.com/shopspring/decimal"

// StatementNode is a derived report tree node, built fresh per report
// request and never persisted. A leaf's amount is its own balance; an
// interior node's amount is the sum of its children.
type StatementNode struct {
	ID        int64            `json:"id"`
	Name      string           `json:"name"`
	Code      string           `json:"code"`
	Type      AccountType      `json:"type"`
	Direction BalanceDirection `json:"direction,omitempty"`
	Amount    decimal.Decimal  `json:"amount"`
	Children  []*StatementNode `json:"children"`
}
