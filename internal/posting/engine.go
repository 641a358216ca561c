// Package posting validates and commits balanced vouchers.
package posting

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/model"
)

// Writer is the persistence surface the engine needs. CreateEntry
// must write the header and all splits as one atomic unit.
type Writer interface {
	CreateEntry(header model.Transaction, splits []model.Split) (int64, error)
	UpdateTransactionStatus(ids []int64, status model.TransactionStatus) error
}

// Lookup answers account questions from the current chart snapshot.
type Lookup interface {
	Exists(id int64) bool
	Require(code, role string) (model.Account, error)
}

// Engine validates and commits vouchers.
type Engine struct {
	writer    Writer
	lookup    Lookup
	codes     config.WellKnownCodes
	tolerance decimal.Decimal
	log       zerolog.Logger
}

// NewEngine creates a posting Engine.
func NewEngine(writer Writer, lookup Lookup, codes config.WellKnownCodes, tolerance decimal.Decimal, log zerolog.Logger) *Engine {
	return &Engine{writer: writer, lookup: lookup, codes: codes, tolerance: tolerance, log: log}
}

// SplitInput is one requested posting line.
type SplitInput struct {
	AccountID int64
	Direction model.Direction
	Amount    decimal.Decimal
	Summary   string
}

// PostInput is a manual voucher entry request.
type PostInput struct {
	Date        time.Time
	Description string
	Status      model.TransactionStatus
	Splits      []SplitInput
}

// Post validates a manual voucher and commits it atomically, enforcing
// the debit=credit invariant within the configured tolerance. Returns
// the new transaction ID.
func (e *Engine) Post(ctx context.Context, input PostInput) (int64, error) {
	return e.post(ctx, input, true)
}

func (e *Engine) post(ctx context.Context, input PostInput, enforceBalance bool) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(input.Splits) == 0 {
		return 0, &ValidationError{Field: "splits", Reason: "must not be empty"}
	}
	if input.Date.IsZero() {
		return 0, &ValidationError{Field: "voucherDate", Reason: "is required"}
	}
	if input.Status == "" {
		input.Status = model.StatusPosted
	}
	if input.Status != model.StatusDraft && input.Status != model.StatusPosted {
		return 0, &ValidationError{Field: "status", Reason: "must be DRAFT or POSTED"}
	}

	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	splits := make([]model.Split, 0, len(input.Splits))
	for _, in := range input.Splits {
		if in.Direction != model.Debit && in.Direction != model.Credit {
			return 0, &ValidationError{Field: "dcDirection", Reason: "must be 1 (debit) or -1 (credit)"}
		}
		if in.Amount.IsNegative() {
			return 0, &ValidationError{Field: "amount", Reason: "must not be negative"}
		}
		if !e.lookup.Exists(in.AccountID) {
			return 0, &ReferenceError{AccountID: in.AccountID}
		}
		if in.Direction == model.Debit {
			totalDebit = totalDebit.Add(in.Amount)
		} else {
			totalCredit = totalCredit.Add(in.Amount)
		}
		splits = append(splits, model.Split{
			AccountID: in.AccountID,
			Direction: in.Direction,
			Amount:    in.Amount,
			Reconcile: model.Unreconciled,
			Summary:   in.Summary,
		})
	}

	if enforceBalance {
		if diff := totalDebit.Sub(totalCredit).Abs(); diff.GreaterThan(e.tolerance) {
			return 0, &UnbalancedError{Debit: totalDebit, Credit: totalCredit}
		}
	}

	header := model.Transaction{
		VoucherDate: input.Date,
		Description: input.Description,
		Status:      input.Status,
		CreatedAt:   time.Now(),
	}
	txID, err := e.writer.CreateEntry(header, splits)
	if err != nil {
		return 0, err
	}

	e.log.Info().
		Int64("transaction_id", txID).
		Str("status", string(input.Status)).
		Str("debit_total", totalDebit.StringFixed(2)).
		Int("splits", len(splits)).
		Msg("voucher committed")
	return txID, nil
}

// SetStatus bulk-transitions vouchers, e.g. approving drafts to
// POSTED. No reverse transition is offered by callers.
func (e *Engine) SetStatus(ctx context.Context, ids []int64, status model.TransactionStatus) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if len(ids) == 0 {
		return &ValidationError{Field: "transactionIds", Reason: "must not be empty"}
	}
	if status != model.StatusDraft && status != model.StatusPosted {
		return &ValidationError{Field: "status", Reason: "must be DRAFT or POSTED"}
	}
	if err := e.writer.UpdateTransactionStatus(ids, status); err != nil {
		return err
	}
	e.log.Info().Ints64("transaction_ids", ids).Str("status", string(status)).Msg("voucher status updated")
	return nil
}

// twoLeg builds and commits a balanced debit/credit pair. Used by the
// auto-posting paths, which are balanced by construction and skip the
// tolerance check.
func (e *Engine) twoLeg(ctx context.Context, date time.Time, description string, debit, credit model.Account, amount decimal.Decimal, debitSummary, creditSummary string) (int64, error) {
	return e.post(ctx, PostInput{
		Date:        date,
		Description: description,
		Status:      model.StatusPosted,
		Splits: []SplitInput{
			{AccountID: debit.ID, Direction: model.Debit, Amount: amount, Summary: debitSummary},
			{AccountID: credit.ID, Direction: model.Credit, Amount: amount, Summary: creditSummary},
		},
	}, false)
}
