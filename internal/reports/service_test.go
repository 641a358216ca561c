package reports

import (
	"context"
	"io"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/accounts"
	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/logging"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/posting"
	"github.com/finbook-dev/finbook/internal/store"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

type fixture struct {
	store    *store.Store
	registry *accounts.Registry
	engine   *posting.Engine
	service  *Service
}

// newFixture seeds a fresh store with the default chart and wires the
// posting engine and report service over it.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	st, err := store.Open(filepath.Join(t.TempDir(), "finbook.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	require.NoError(t, st.SeedAccounts(accounts.DefaultChart()))
	chart, err := st.ListAccounts()
	require.NoError(t, err)

	registry := accounts.NewRegistry(chart)
	log := logging.NewWithWriter(io.Discard)
	cfg := config.Default()
	engine := posting.NewEngine(st, registry, cfg.Accounts, cfg.Thresholds.Tolerance(), log)

	return &fixture{
		store:    st,
		registry: registry,
		engine:   engine,
		service:  NewService(st, log),
	}
}

func (f *fixture) mustAccount(t *testing.T, code string) model.Account {
	t.Helper()
	account, ok := f.registry.ByCode(code)
	require.True(t, ok, "chart is missing code %s", code)
	return account
}

func (f *fixture) post(t *testing.T, date time.Time, description string, status model.TransactionStatus, legs ...posting.SplitInput) int64 {
	t.Helper()
	id, err := f.engine.Post(context.Background(), posting.PostInput{
		Date:        date,
		Description: description,
		Status:      status,
		Splits:      legs,
	})
	require.NoError(t, err)
	return id
}

func TestLedgerSummary_PurchaseScenario(t *testing.T) {
	f := newFixture(t)
	inventory := f.mustAccount(t, "1405")
	payable := f.mustAccount(t, "2202")

	f.post(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "stock purchase", model.StatusPosted,
		posting.SplitInput{AccountID: inventory.ID, Direction: model.Debit, Amount: dec("3500.00")},
		posting.SplitInput{AccountID: payable.ID, Direction: model.Credit, Amount: dec("3500.00")},
	)

	rows, err := f.service.LedgerSummary(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)

	byCode := make(map[string]SummaryRow)
	for _, row := range rows {
		byCode[row.Code] = row
	}

	// Both sides show +3500 under their natural direction.
	assert.True(t, byCode["1405"].Balance.Equal(dec("3500.00")))
	assert.Equal(t, "DR", byCode["1405"].DirectionLabel)
	assert.True(t, byCode["2202"].Balance.Equal(dec("3500.00")))
	assert.Equal(t, "CR", byCode["2202"].DirectionLabel)
}

func TestBalanceSheet_PurchaseScenario(t *testing.T) {
	f := newFixture(t)
	inventory := f.mustAccount(t, "1405")
	payable := f.mustAccount(t, "2202")

	f.post(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "stock purchase", model.StatusPosted,
		posting.SplitInput{AccountID: inventory.ID, Direction: model.Debit, Amount: dec("3500.00")},
		posting.SplitInput{AccountID: payable.ID, Direction: model.Credit, Amount: dec("3500.00")},
	)

	sheet, err := f.service.BalanceSheet(context.Background())
	require.NoError(t, err)

	assert.True(t, sheet.TotalAsset.Equal(dec("3500.00")))
	assert.True(t, sheet.TotalLiabilityEquity.Equal(dec("3500.00")))
	assert.True(t, sheet.NetProfit.IsZero())
}

func TestBalanceSheet_NetProfitMatchesIncomeStatement(t *testing.T) {
	f := newFixture(t)
	bank := f.mustAccount(t, "1002")
	revenue := f.mustAccount(t, "6001")
	expense := f.mustAccount(t, "6601")

	f.post(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "cash sale", model.StatusPosted,
		posting.SplitInput{AccountID: bank.ID, Direction: model.Debit, Amount: dec("1000.00")},
		posting.SplitInput{AccountID: revenue.ID, Direction: model.Credit, Amount: dec("1000.00")},
	)
	f.post(t, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), "office rent", model.StatusPosted,
		posting.SplitInput{AccountID: expense.ID, Direction: model.Debit, Amount: dec("400.00")},
		posting.SplitInput{AccountID: bank.ID, Direction: model.Credit, Amount: dec("400.00")},
	)

	income, err := f.service.IncomeStatement(context.Background())
	require.NoError(t, err)
	sheet, err := f.service.BalanceSheet(context.Background())
	require.NoError(t, err)

	assert.True(t, income.NetProfit.Equal(dec("600.00")))
	assert.True(t, sheet.NetProfit.Equal(income.NetProfit))
	// Injected profit flows into equity, keeping the two sides equal.
	assert.True(t, sheet.Equity.Amount.Equal(dec("600.00")))
	assert.True(t, sheet.TotalAsset.Equal(sheet.TotalLiabilityEquity))
}

func TestCashflow_PayrollScenario(t *testing.T) {
	f := newFixture(t)

	_, err := f.engine.IssuePayroll(context.Background(), "2025-05", dec("12000.00"))
	require.NoError(t, err)

	stmt, err := f.service.Cashflow(context.Background())
	require.NoError(t, err)

	assert.True(t, stmt.SalaryCashOut.Equal(dec("12000.00")))
	assert.True(t, stmt.OperatingCashNet.Equal(dec("-12000.00")))
}

func TestReports_UnbalancedVoucherLeavesNoRows(t *testing.T) {
	f := newFixture(t)
	inventory := f.mustAccount(t, "1405")
	payable := f.mustAccount(t, "2202")

	_, err := f.engine.Post(context.Background(), posting.PostInput{
		Date:        time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		Description: "bad voucher",
		Splits: []posting.SplitInput{
			{AccountID: inventory.ID, Direction: model.Debit, Amount: dec("100.00")},
			{AccountID: payable.ID, Direction: model.Credit, Amount: dec("50.00")},
		},
	})
	require.Error(t, err)

	rows, err := f.service.LedgerSummary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows)

	vouchers, err := f.service.Vouchers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, vouchers)
}

func TestReports_DraftExcludedUntilPosted(t *testing.T) {
	f := newFixture(t)
	inventory := f.mustAccount(t, "1405")
	payable := f.mustAccount(t, "2202")

	txID := f.post(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), "pending purchase", model.StatusDraft,
		posting.SplitInput{AccountID: inventory.ID, Direction: model.Debit, Amount: dec("200.00")},
		posting.SplitInput{AccountID: payable.ID, Direction: model.Credit, Amount: dec("200.00")},
	)

	rows, err := f.service.LedgerSummary(context.Background())
	require.NoError(t, err)
	assert.Empty(t, rows, "draft vouchers stay out of the summary")

	require.NoError(t, f.engine.SetStatus(context.Background(), []int64{txID}, model.StatusPosted))

	rows, err = f.service.LedgerSummary(context.Background())
	require.NoError(t, err)
	assert.Len(t, rows, 2)
}

func TestAccountLedger_RunningBalance(t *testing.T) {
	f := newFixture(t)
	bank := f.mustAccount(t, "1002")
	revenue := f.mustAccount(t, "6001")
	expense := f.mustAccount(t, "6601")

	f.post(t, time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC), "cash sale", model.StatusPosted,
		posting.SplitInput{AccountID: bank.ID, Direction: model.Debit, Amount: dec("1000.00")},
		posting.SplitInput{AccountID: revenue.ID, Direction: model.Credit, Amount: dec("1000.00")},
	)
	f.post(t, time.Date(2025, 4, 2, 0, 0, 0, 0, time.UTC), "office rent", model.StatusPosted,
		posting.SplitInput{AccountID: expense.ID, Direction: model.Debit, Amount: dec("400.00")},
		posting.SplitInput{AccountID: bank.ID, Direction: model.Credit, Amount: dec("400.00")},
	)

	ledger, err := f.service.AccountLedger(context.Background(), bank.ID)
	require.NoError(t, err)

	require.Len(t, ledger.Entries, 2)
	assert.True(t, ledger.Entries[0].RunningBalance.Equal(dec("1000.00")))
	assert.True(t, ledger.Entries[1].RunningBalance.Equal(dec("600.00")))
	assert.True(t, ledger.FinalBalance.Equal(dec("600.00")))
	assert.Equal(t, "DR", ledger.DirectionLabel)

	_, err = f.service.AccountLedger(context.Background(), 9999)
	assert.ErrorIs(t, err, store.ErrNotFound)
}

func TestVouchers_NewestFirstWithDebitTotals(t *testing.T) {
	f := newFixture(t)
	inventory := f.mustAccount(t, "1405")
	payable := f.mustAccount(t, "2202")

	f.post(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), "older", model.StatusPosted,
		posting.SplitInput{AccountID: inventory.ID, Direction: model.Debit, Amount: dec("10.00")},
		posting.SplitInput{AccountID: payable.ID, Direction: model.Credit, Amount: dec("10.00")},
	)
	f.post(t, time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), "newer", model.StatusPosted,
		posting.SplitInput{AccountID: inventory.ID, Direction: model.Debit, Amount: dec("20.00")},
		posting.SplitInput{AccountID: payable.ID, Direction: model.Credit, Amount: dec("20.00")},
	)

	rows, err := f.service.Vouchers(context.Background())
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "newer", rows[0].Description)
	assert.True(t, rows[0].TotalAmount.Equal(dec("20.00")))
	assert.Equal(t, "older", rows[1].Description)
}
