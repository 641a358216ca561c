package statement

import (
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
)

// IncomeStatement is the derived profit report.
type IncomeStatement struct {
	Revenue         decimal.Decimal `json:"revenue"`
	Cost            decimal.Decimal `json:"cost"`
	GrossProfit     decimal.Decimal `json:"grossProfit"`
	Expense         decimal.Decimal `json:"expense"`
	FinanceExpense  decimal.Decimal `json:"financeExpense"`
	OperatingProfit decimal.Decimal `json:"operatingProfit"`
	NetProfit       decimal.Decimal `json:"netProfit"`
}

// IncomeStatement classifies every posted split into revenue, cost of
// sales, finance expense or operating expense and derives the profit
// lines. A credit on a revenue account increases revenue and a debit
// decreases it; the expense buckets are symmetric with debit
// increasing.
func (c *Classifier) IncomeStatement(accountList []model.Account, splits []model.Split, posted map[int64]struct{}) IncomeStatement {
	byID := make(map[int64]model.Account, len(accountList))
	for _, a := range accountList {
		byID[a.ID] = a
	}

	var revenue, cost, expense, financeExpense decimal.Decimal
	for _, split := range splits {
		if _, ok := posted[split.TransactionID]; !ok {
			continue
		}
		account, ok := byID[split.AccountID]
		if !ok {
			continue
		}

		switch c.IncomeBucketFor(account) {
		case BucketRevenue:
			if split.Direction == model.Credit {
				revenue = revenue.Add(split.Amount)
			} else {
				revenue = revenue.Sub(split.Amount)
			}
		case BucketCost:
			cost = addDebitNatural(cost, split)
		case BucketFinanceExpense:
			financeExpense = addDebitNatural(financeExpense, split)
		case BucketExpense:
			expense = addDebitNatural(expense, split)
		}
	}

	grossProfit := revenue.Sub(cost)
	operatingProfit := grossProfit.Sub(expense).Sub(financeExpense)

	return IncomeStatement{
		Revenue:         revenue,
		Cost:            cost,
		GrossProfit:     grossProfit,
		Expense:         expense,
		FinanceExpense:  financeExpense,
		OperatingProfit: operatingProfit,
		NetProfit:       operatingProfit,
	}
}

func addDebitNatural(total decimal.Decimal, split model.Split) decimal.Decimal {
	if split.Direction == model.Debit {
		return total.Add(split.Amount)
	}
	return total.Sub(split.Amount)
}
