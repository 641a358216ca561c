package posting

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Machine codes for posting failures.
const (
	CodeValidation      = "VALIDATION_ERROR"
	CodeUnbalanced      = "UNBALANCED_TRANSACTION"
	CodeAccountNotFound = "ACCOUNT_NOT_FOUND"
	CodeBadReference    = "REFERENCE_ERROR"
)

// ValidationError reports a malformed posting request (empty split
// list, missing field, non-positive amount).
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid posting: %s: %s", e.Field, e.Reason)
}

// UnbalancedError reports that debit and credit totals differ by more
// than the configured tolerance.
type UnbalancedError struct {
	Debit  decimal.Decimal
	Credit decimal.Decimal
}

func (e *UnbalancedError) Error() string {
	return fmt.Sprintf("unbalanced transaction: debits (%s) != credits (%s)",
		e.Debit.StringFixed(2), e.Credit.StringFixed(2))
}

// ReferenceError reports a split naming an unknown account.
type ReferenceError struct {
	AccountID int64
}

func (e *ReferenceError) Error() string {
	return fmt.Sprintf("split references unknown account %d", e.AccountID)
}
