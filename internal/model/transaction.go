package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus is the lifecycle state of a voucher. Legacy rows
// carry an empty status and are treated as posted everywhere.
type TransactionStatus string

const (
	StatusDraft  TransactionStatus = "DRAFT"
	StatusPosted TransactionStatus = "POSTED"
)

// Posted reports whether a status participates in balances and reports.
func (s TransactionStatus) Posted() bool {
	return s == "" || s == StatusPosted
}

// Transaction is a voucher header. Splits reference it by ID.
type Transaction struct {
	ID          int64             `json:"transactionId"`
	VoucherDate time.Time         `json:"voucherDate"`
	Description string            `json:"description"`
	Status      TransactionStatus `json:"status"`
	CreatedAt   time.Time         `json:"createTime"`
}

// Direction is the debit/credit side of a split.
type Direction int

const (
	Debit  Direction = 1
	Credit Direction = -1
)

// ReconcileState tracks bank reconciliation per split.
type ReconcileState string

const (
	Unreconciled ReconcileState = "n"
	Cleared      ReconcileState = "c"
	Reconciled   ReconcileState = "y"
)

// Split is one posting line. Amount is non-negative; the side is
// carried by Direction.
type Split struct {
	ID            int64           `json:"splitId"`
	TransactionID int64           `json:"transactionId"`
	AccountID     int64           `json:"accountId"`
	Direction     Direction       `json:"dcDirection"`
	Amount        decimal.Decimal `json:"amount"`
	Reconcile     ReconcileState  `json:"reconcileState,omitempty"`
	Summary       string          `json:"summary,omitempty"`
}
