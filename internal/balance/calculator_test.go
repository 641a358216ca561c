package balance

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

var testAccounts = []model.Account{
	{ID: 1, Code: "1002", Name: "Bank Deposit", Type: model.AccountTypeAsset},
	{ID: 2, Code: "2202", Name: "Accounts Payable", Type: model.AccountTypeLiability},
	{ID: 3, Code: "6001", Name: "Sales Revenue", Type: model.AccountTypeIncome},
	{ID: 4, Code: "6601", Name: "Operating Expenses", Type: model.AccountTypeExpense},
}

func TestPostedIDs(t *testing.T) {
	transactions := []model.Transaction{
		{ID: 1, Status: model.StatusPosted},
		{ID: 2, Status: model.StatusDraft},
		{ID: 3, Status: ""}, // legacy rows count as posted
	}

	posted := PostedIDs(transactions)
	assert.Contains(t, posted, int64(1))
	assert.NotContains(t, posted, int64(2))
	assert.Contains(t, posted, int64(3))
}

func TestCompute_SignConventions(t *testing.T) {
	splits := []model.Split{
		{ID: 1, TransactionID: 1, AccountID: 1, Direction: model.Debit, Amount: dec("500.00")},
		{ID: 2, TransactionID: 1, AccountID: 3, Direction: model.Credit, Amount: dec("500.00")},
		{ID: 3, TransactionID: 2, AccountID: 4, Direction: model.Debit, Amount: dec("120.00")},
		{ID: 4, TransactionID: 2, AccountID: 1, Direction: model.Credit, Amount: dec("120.00")},
	}
	posted := map[int64]struct{}{1: {}, 2: {}}

	balances := Compute(testAccounts, splits, posted)

	// Asset: debit - credit.
	assert.True(t, balances[1].Equal(dec("380.00")), "bank = 500 - 120, got %s", balances[1])
	// Income: credit - debit.
	assert.True(t, balances[3].Equal(dec("500.00")))
	// Expense: debit - credit.
	assert.True(t, balances[4].Equal(dec("120.00")))
}

func TestCompute_DraftExcluded(t *testing.T) {
	splits := []model.Split{
		{ID: 1, TransactionID: 1, AccountID: 1, Direction: model.Debit, Amount: dec("500.00")},
		{ID: 2, TransactionID: 2, AccountID: 1, Direction: model.Debit, Amount: dec("9999.00")},
	}
	posted := map[int64]struct{}{1: {}} // transaction 2 is a draft

	balances := Compute(testAccounts, splits, posted)
	assert.True(t, balances[1].Equal(dec("500.00")))
}

func TestCompute_NoPostingsYieldsZero(t *testing.T) {
	balances := Compute(testAccounts, nil, map[int64]struct{}{})

	require.Len(t, balances, len(testAccounts))
	for _, account := range testAccounts {
		bal, ok := balances[account.ID]
		require.True(t, ok, "account %d must be present", account.ID)
		assert.True(t, bal.IsZero())
	}
}
