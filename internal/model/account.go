package model

// AccountType classifies accounts in the chart of accounts.
type AccountType string

const (
	AccountTypeAsset     AccountType = "ASSET"
	AccountTypeLiability AccountType = "LIABILITY"
	AccountTypeEquity    AccountType = "EQUITY"
	AccountTypeIncome    AccountType = "INCOME"
	AccountTypeExpense   AccountType = "EXPENSE"
)

// BalanceDirection is the declared side on which an account's balance
// grows. Informational only: the account type decides the natural sign.
type BalanceDirection string

const (
	DirectionDebit  BalanceDirection = "DEBIT"
	DirectionCredit BalanceDirection = "CREDIT"
)

// Account is one node in the chart of accounts. ParentID forms a
// forest; 0 means top-level.
type Account struct {
	ID          int64            `json:"accountId"`
	Code        string           `json:"accountCode"`
	Name        string           `json:"accountName"`
	Type        AccountType      `json:"accountType"`
	ParentID    int64            `json:"parentId"`
	Direction   BalanceDirection `json:"balanceDirection"`
	Description string           `json:"description,omitempty"`
}
