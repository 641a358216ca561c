package reports

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/accounts"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/store"
)

// LedgerEntry is one movement in a per-account ledger.
type LedgerEntry struct {
	SplitID        int64           `json:"splitId"`
	TransactionID  int64           `json:"transactionId"`
	Date           time.Time       `json:"date"`
	Summary        string          `json:"summary"`
	Direction      model.Direction `json:"dcDirection"`
	Amount         decimal.Decimal `json:"amount"`
	RunningBalance decimal.Decimal `json:"runningBalance"`
}

// Ledger is the detailed posting history of one account.
type Ledger struct {
	Account        model.Account   `json:"account"`
	Entries        []LedgerEntry   `json:"entries"`
	TotalDebit     decimal.Decimal `json:"totalDebit"`
	TotalCredit    decimal.Decimal `json:"totalCredit"`
	FinalBalance   decimal.Decimal `json:"finalBalance"`
	DirectionLabel string          `json:"balanceDirectionLabel"`
}

// AccountLedger returns the POSTED movements of one account in
// voucher-date order with a running balance signed per the account's
// natural direction.
func (s *Service) AccountLedger(ctx context.Context, accountID int64) (*Ledger, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	account, err := s.reader.GetAccount(accountID)
	if err != nil {
		return nil, err
	}
	transactions, err := s.reader.ListTransactions()
	if err != nil {
		return nil, err
	}
	splits, err := s.reader.ListSplits(store.SplitFilter{AccountID: accountID})
	if err != nil {
		return nil, err
	}

	byID := make(map[int64]model.Transaction, len(transactions))
	for _, tx := range transactions {
		byID[tx.ID] = tx
	}

	var rows []model.Split
	for _, split := range splits {
		tx, ok := byID[split.TransactionID]
		if !ok || !tx.Status.Posted() {
			continue
		}
		rows = append(rows, split)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := byID[rows[i].TransactionID], byID[rows[j].TransactionID]
		if !ti.VoucherDate.Equal(tj.VoucherDate) {
			return ti.VoucherDate.Before(tj.VoucherDate)
		}
		if ti.ID != tj.ID {
			return ti.ID < tj.ID
		}
		return rows[i].ID < rows[j].ID
	})

	debitNatural := accounts.DebitNatural(account.Type)
	ledger := &Ledger{Account: account, DirectionLabel: directionLabel(debitNatural)}

	running := decimal.Zero
	for _, split := range rows {
		if split.Direction == model.Debit {
			ledger.TotalDebit = ledger.TotalDebit.Add(split.Amount)
			if debitNatural {
				running = running.Add(split.Amount)
			} else {
				running = running.Sub(split.Amount)
			}
		} else {
			ledger.TotalCredit = ledger.TotalCredit.Add(split.Amount)
			if debitNatural {
				running = running.Sub(split.Amount)
			} else {
				running = running.Add(split.Amount)
			}
		}
		ledger.Entries = append(ledger.Entries, LedgerEntry{
			SplitID:        split.ID,
			TransactionID:  split.TransactionID,
			Date:           byID[split.TransactionID].VoucherDate,
			Summary:        split.Summary,
			Direction:      split.Direction,
			Amount:         split.Amount,
			RunningBalance: running,
		})
	}
	ledger.FinalBalance = running
	return ledger, nil
}

// SummaryRow is one line of the trial-balance style ledger summary.
type SummaryRow struct {
	AccountID      int64             `json:"accountId"`
	Code           string            `json:"accountCode"`
	Name           string            `json:"accountName"`
	Type           model.AccountType `json:"accountType"`
	TotalDebit     decimal.Decimal   `json:"totalDebit"`
	TotalCredit    decimal.Decimal   `json:"totalCredit"`
	Balance        decimal.Decimal   `json:"balance"`
	DirectionLabel string            `json:"balanceDirection"`
}

// LedgerSummary aggregates POSTED debit and credit totals per account.
// Accounts with no activity are skipped.
func (s *Service) LedgerSummary(ctx context.Context) ([]SummaryRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	debits := make(map[int64]decimal.Decimal)
	credits := make(map[int64]decimal.Decimal)
	for _, split := range snap.splits {
		if _, ok := snap.posted[split.TransactionID]; !ok {
			continue
		}
		if split.Direction == model.Debit {
			debits[split.AccountID] = debits[split.AccountID].Add(split.Amount)
		} else {
			credits[split.AccountID] = credits[split.AccountID].Add(split.Amount)
		}
	}

	var rows []SummaryRow
	for _, account := range snap.accounts {
		debit := debits[account.ID]
		credit := credits[account.ID]
		if debit.IsZero() && credit.IsZero() {
			continue
		}

		debitNatural := accounts.DebitNatural(account.Type)
		bal := debit.Sub(credit)
		if !debitNatural {
			bal = credit.Sub(debit)
		}
		rows = append(rows, SummaryRow{
			AccountID:      account.ID,
			Code:           account.Code,
			Name:           account.Name,
			Type:           account.Type,
			TotalDebit:     debit,
			TotalCredit:    credit,
			Balance:        bal,
			DirectionLabel: directionLabel(debitNatural),
		})
	}
	return rows, nil
}

// VoucherRow is one line of the voucher list, with the debit-side
// total as the voucher amount.
type VoucherRow struct {
	TransactionID int64                   `json:"transactionId"`
	VoucherDate   time.Time               `json:"voucherDate"`
	Description   string                  `json:"description"`
	Status        model.TransactionStatus `json:"status"`
	TotalAmount   decimal.Decimal         `json:"totalAmount"`
}

// Vouchers lists all voucher headers, newest voucher date first.
func (s *Service) Vouchers(ctx context.Context) ([]VoucherRow, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	debitTotals := make(map[int64]decimal.Decimal)
	for _, split := range snap.splits {
		if split.Direction == model.Debit {
			debitTotals[split.TransactionID] = debitTotals[split.TransactionID].Add(split.Amount)
		}
	}

	rows := make([]VoucherRow, 0, len(snap.transactions))
	for _, tx := range snap.transactions {
		rows = append(rows, VoucherRow{
			TransactionID: tx.ID,
			VoucherDate:   tx.VoucherDate,
			Description:   tx.Description,
			Status:        tx.Status,
			TotalAmount:   debitTotals[tx.ID],
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].VoucherDate.Equal(rows[j].VoucherDate) {
			return rows[i].VoucherDate.After(rows[j].VoucherDate)
		}
		return rows[i].TransactionID > rows[j].TransactionID
	})
	return rows, nil
}

func directionLabel(debitNatural bool) string {
	if debitNatural {
		return "DR"
	}
	return "CR"
}
