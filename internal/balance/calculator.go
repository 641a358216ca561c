// Package balance folds the posting history into per-account signed
// balances. All functions are pure over their snapshot inputs.
package balance

import (
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/accounts"
	"github.com/finbook-dev/finbook/internal/model"
)

// PostedIDs returns the set of transaction IDs that participate in
// balance and report computations: status POSTED, plus legacy rows
// with an unset status.
func PostedIDs(transactions []model.Transaction) map[int64]struct{} {
	posted := make(map[int64]struct{}, len(transactions))
	for _, tx := range transactions {
		if tx.Status.Posted() {
			posted[tx.ID] = struct{}{}
		}
	}
	return posted
}

// Compute returns the signed balance of every account in the snapshot.
// Splits of unposted transactions are excluded entirely. The balance
// of a debit-natural account (ASSET, EXPENSE) is debits minus credits;
// for the rest it is credits minus debits. Accounts with no postings
// yield zero, not absence.
func Compute(accountList []model.Account, splits []model.Split, posted map[int64]struct{}) map[int64]decimal.Decimal {
	debits := make(map[int64]decimal.Decimal)
	credits := make(map[int64]decimal.Decimal)

	for _, split := range splits {
		if _, ok := posted[split.TransactionID]; !ok {
			continue
		}
		if split.Direction == model.Debit {
			debits[split.AccountID] = debits[split.AccountID].Add(split.Amount)
		} else {
			credits[split.AccountID] = credits[split.AccountID].Add(split.Amount)
		}
	}

	balances := make(map[int64]decimal.Decimal, len(accountList))
	for _, account := range accountList {
		debit := debits[account.ID]
		credit := credits[account.ID]
		if accounts.DebitNatural(account.Type) {
			balances[account.ID] = debit.Sub(credit)
		} else {
			balances[account.ID] = credit.Sub(debit)
		}
	}
	return balances
}
