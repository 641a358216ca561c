package accounts

import "github.com/finbook-dev/finbook/internal/model"

// DefaultChart returns the default chart of accounts installed by
// init. Codes follow the numeric scheme the posting engine's
// well-known roles reference.
func DefaultChart() []model.Account {
	return []model.Account{
		{Code: "1001", Name: "Cash on Hand", Type: model.AccountTypeAsset, Direction: model.DirectionDebit},
		{Code: "1002", Name: "Bank Deposit", Type: model.AccountTypeAsset, Direction: model.DirectionDebit, Description: "Primary operating bank account"},
		{Code: "1122", Name: "Accounts Receivable", Type: model.AccountTypeAsset, Direction: model.DirectionDebit},
		{Code: "1405", Name: "Inventory", Type: model.AccountTypeAsset, Direction: model.DirectionDebit, Description: "Goods held for sale"},
		{Code: "2202", Name: "Accounts Payable", Type: model.AccountTypeLiability, Direction: model.DirectionCredit},
		{Code: "2211", Name: "Salary Payable", Type: model.AccountTypeLiability, Direction: model.DirectionCredit, Description: "Accrued employee compensation"},
		{Code: "3001", Name: "Paid-in Capital", Type: model.AccountTypeEquity, Direction: model.DirectionCredit},
		{Code: "3103", Name: "Net Profit", Type: model.AccountTypeEquity, Direction: model.DirectionCredit, Description: "Current-year result, derived at report time"},
		{Code: "6001", Name: "Sales Revenue", Type: model.AccountTypeIncome, Direction: model.DirectionCredit},
		{Code: "6401", Name: "Cost of Sales", Type: model.AccountTypeExpense, Direction: model.DirectionDebit},
		{Code: "6601", Name: "Operating Expenses", Type: model.AccountTypeExpense, Direction: model.DirectionDebit},
		{Code: "6602", Name: "Administrative Expenses", Type: model.AccountTypeExpense, Direction: model.DirectionDebit},
		{Code: "6603", Name: "Finance Expense", Type: model.AccountTypeExpense, Direction: model.DirectionDebit, Description: "Interest and bank charges"},
	}
}
