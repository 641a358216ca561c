package statement

import (
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
)

// CashflowStatement is the derived operating cash summary. Investing
// and financing activities are not classified and stay zero.
type CashflowStatement struct {
	SalesCashIn      decimal.Decimal `json:"salesCashIn"`
	PurchaseCashOut  decimal.Decimal `json:"purchaseCashOut"`
	SalaryCashOut    decimal.Decimal `json:"salaryCashOut"`
	OtherCashIn      decimal.Decimal `json:"otherCashIn"`
	OtherCashOut     decimal.Decimal `json:"otherCashOut"`
	OperatingCashNet decimal.Decimal `json:"operatingCashNet"`
	InvestingCashNet decimal.Decimal `json:"investingCashNet"`
	FinancingCashNet decimal.Decimal `json:"financingCashNet"`
	TotalCashChange  decimal.Decimal `json:"totalCashChange"`
}

// Cashflow buckets every posted movement on a cash account by the
// owning voucher's description: debits (cash in) split into sales
// collections vs other, credits (cash out) into purchases, salaries
// or other, in that priority order.
func (c *Classifier) Cashflow(accountList []model.Account, transactions []model.Transaction, splits []model.Split, posted map[int64]struct{}) CashflowStatement {
	cashAccounts := make(map[int64]struct{})
	for _, a := range accountList {
		if c.IsCashAccount(a) {
			cashAccounts[a.ID] = struct{}{}
		}
	}

	descriptions := make(map[int64]string, len(transactions))
	for _, tx := range transactions {
		descriptions[tx.ID] = tx.Description
	}

	var stmt CashflowStatement
	for _, split := range splits {
		if _, ok := posted[split.TransactionID]; !ok {
			continue
		}
		if _, ok := cashAccounts[split.AccountID]; !ok {
			continue
		}

		switch c.CashBucketFor(split.Direction, descriptions[split.TransactionID]) {
		case CashSalesIn:
			stmt.SalesCashIn = stmt.SalesCashIn.Add(split.Amount)
		case CashOtherIn:
			stmt.OtherCashIn = stmt.OtherCashIn.Add(split.Amount)
		case CashPurchaseOut:
			stmt.PurchaseCashOut = stmt.PurchaseCashOut.Add(split.Amount)
		case CashSalaryOut:
			stmt.SalaryCashOut = stmt.SalaryCashOut.Add(split.Amount)
		case CashOtherOut:
			stmt.OtherCashOut = stmt.OtherCashOut.Add(split.Amount)
		}
	}

	stmt.OperatingCashNet = stmt.SalesCashIn.
		Sub(stmt.PurchaseCashOut).
		Sub(stmt.SalaryCashOut).
		Add(stmt.OtherCashIn).
		Sub(stmt.OtherCashOut)
	stmt.InvestingCashNet = decimal.Zero
	stmt.FinancingCashNet = decimal.Zero
	stmt.TotalCashChange = stmt.OperatingCashNet
	return stmt
}
