package posting

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finbook-dev/finbook/internal/accounts"
	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/logging"
	"github.com/finbook-dev/finbook/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// mockWriter records committed entries without a real store.
type mockWriter struct {
	headers  []model.Transaction
	splits   [][]model.Split
	statuses map[int64]model.TransactionStatus
	nextID   int64
}

func newMockWriter() *mockWriter {
	return &mockWriter{statuses: make(map[int64]model.TransactionStatus)}
}

func (m *mockWriter) CreateEntry(header model.Transaction, splits []model.Split) (int64, error) {
	m.nextID++
	header.ID = m.nextID
	m.headers = append(m.headers, header)
	m.splits = append(m.splits, splits)
	return m.nextID, nil
}

func (m *mockWriter) UpdateTransactionStatus(ids []int64, status model.TransactionStatus) error {
	for _, id := range ids {
		m.statuses[id] = status
	}
	return nil
}

func chartWithIDs() *accounts.Registry {
	chart := accounts.DefaultChart()
	for i := range chart {
		chart[i].ID = int64(i + 1)
	}
	return accounts.NewRegistry(chart)
}

func newTestEngine(w Writer, lookup Lookup) *Engine {
	codes := config.Default().Accounts
	return NewEngine(w, lookup, codes, dec("0.01"), logging.NewWithWriter(io.Discard))
}

func TestPost_BalancedVoucher(t *testing.T) {
	writer := newMockWriter()
	engine := newTestEngine(writer, chartWithIDs())

	txID, err := engine.Post(context.Background(), PostInput{
		Date:        date(2025, time.March, 10),
		Description: "purchase of office stock",
		Status:      model.StatusPosted,
		Splits: []SplitInput{
			{AccountID: 4, Direction: model.Debit, Amount: dec("3500.00"), Summary: "goods received"},
			{AccountID: 5, Direction: model.Credit, Amount: dec("3500.00"), Summary: "owed to supplier"},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), txID)

	require.Len(t, writer.splits, 1)
	require.Len(t, writer.splits[0], 2)
	assert.Equal(t, model.Unreconciled, writer.splits[0][0].Reconcile)
	assert.Equal(t, model.StatusPosted, writer.headers[0].Status)
}

func TestPost_UnbalancedRejectedAtomically(t *testing.T) {
	writer := newMockWriter()
	engine := newTestEngine(writer, chartWithIDs())

	_, err := engine.Post(context.Background(), PostInput{
		Date:        date(2025, time.March, 10),
		Description: "bad voucher",
		Splits: []SplitInput{
			{AccountID: 4, Direction: model.Debit, Amount: dec("100.00")},
			{AccountID: 5, Direction: model.Credit, Amount: dec("90.00")},
		},
	})
	require.Error(t, err)

	var unbalanced *UnbalancedError
	require.True(t, errors.As(err, &unbalanced))
	assert.True(t, unbalanced.Debit.Equal(dec("100.00")))
	assert.True(t, unbalanced.Credit.Equal(dec("90.00")))

	// Nothing was written.
	assert.Empty(t, writer.headers)
	assert.Empty(t, writer.splits)
}

func TestPost_ToleranceBoundary(t *testing.T) {
	writer := newMockWriter()
	engine := newTestEngine(writer, chartWithIDs())

	// Off by exactly the tolerance: allowed.
	_, err := engine.Post(context.Background(), PostInput{
		Date: date(2025, time.March, 10),
		Splits: []SplitInput{
			{AccountID: 4, Direction: model.Debit, Amount: dec("100.00")},
			{AccountID: 5, Direction: model.Credit, Amount: dec("99.99")},
		},
	})
	assert.NoError(t, err)

	// Off by more than the tolerance: rejected.
	_, err = engine.Post(context.Background(), PostInput{
		Date: date(2025, time.March, 10),
		Splits: []SplitInput{
			{AccountID: 4, Direction: model.Debit, Amount: dec("100.00")},
			{AccountID: 5, Direction: model.Credit, Amount: dec("99.98")},
		},
	})
	var unbalanced *UnbalancedError
	require.True(t, errors.As(err, &unbalanced))
}

func TestPost_EmptySplits(t *testing.T) {
	engine := newTestEngine(newMockWriter(), chartWithIDs())

	_, err := engine.Post(context.Background(), PostInput{Date: date(2025, time.March, 10)})
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
	assert.Equal(t, "splits", validation.Field)
}

func TestPost_UnknownAccount(t *testing.T) {
	engine := newTestEngine(newMockWriter(), chartWithIDs())

	_, err := engine.Post(context.Background(), PostInput{
		Date: date(2025, time.March, 10),
		Splits: []SplitInput{
			{AccountID: 999, Direction: model.Debit, Amount: dec("10.00")},
			{AccountID: 5, Direction: model.Credit, Amount: dec("10.00")},
		},
	})
	var reference *ReferenceError
	require.True(t, errors.As(err, &reference))
	assert.Equal(t, int64(999), reference.AccountID)
}

func TestPost_DefaultsToPosted(t *testing.T) {
	writer := newMockWriter()
	engine := newTestEngine(writer, chartWithIDs())

	_, err := engine.Post(context.Background(), PostInput{
		Date: date(2025, time.March, 10),
		Splits: []SplitInput{
			{AccountID: 4, Direction: model.Debit, Amount: dec("10.00")},
			{AccountID: 5, Direction: model.Credit, Amount: dec("10.00")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusPosted, writer.headers[0].Status)
}

func TestSetStatus(t *testing.T) {
	writer := newMockWriter()
	engine := newTestEngine(writer, chartWithIDs())

	err := engine.SetStatus(context.Background(), []int64{3, 7}, model.StatusPosted)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPosted, writer.statuses[3])
	assert.Equal(t, model.StatusPosted, writer.statuses[7])

	err = engine.SetStatus(context.Background(), nil, model.StatusPosted)
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
}

func TestAutoPostInvoice_Purchase(t *testing.T) {
	writer := newMockWriter()
	registry := chartWithIDs()
	engine := newTestEngine(writer, registry)

	_, err := engine.AutoPostInvoice(context.Background(), Invoice{
		Kind:   InvoicePurchase,
		Date:   date(2025, time.April, 2),
		Amount: dec("3500.00"),
	})
	require.NoError(t, err)

	require.Len(t, writer.splits, 1)
	legs := writer.splits[0]
	require.Len(t, legs, 2)

	inventory, _ := registry.ByCode("1405")
	payable, _ := registry.ByCode("2202")
	assert.Equal(t, inventory.ID, legs[0].AccountID)
	assert.Equal(t, model.Debit, legs[0].Direction)
	assert.Equal(t, payable.ID, legs[1].AccountID)
	assert.Equal(t, model.Credit, legs[1].Direction)
	assert.True(t, legs[0].Amount.Equal(legs[1].Amount))
}

func TestAutoPostInvoice_Sale(t *testing.T) {
	writer := newMockWriter()
	registry := chartWithIDs()
	engine := newTestEngine(writer, registry)

	_, err := engine.AutoPostInvoice(context.Background(), Invoice{
		Kind:   InvoiceSale,
		Amount: dec("1200.00"),
	})
	require.NoError(t, err)

	receivable, _ := registry.ByCode("1122")
	revenue, _ := registry.ByCode("6001")
	legs := writer.splits[0]
	assert.Equal(t, receivable.ID, legs[0].AccountID)
	assert.Equal(t, revenue.ID, legs[1].AccountID)
}

func TestAutoPostInvoice_MissingAccount(t *testing.T) {
	// Chart without inventory: purchase auto-posting must refuse.
	registry := accounts.NewRegistry([]model.Account{
		{ID: 1, Code: "2202", Name: "Accounts Payable", Type: model.AccountTypeLiability},
	})
	writer := newMockWriter()
	engine := newTestEngine(writer, registry)

	_, err := engine.AutoPostInvoice(context.Background(), Invoice{
		Kind:   InvoicePurchase,
		Amount: dec("10.00"),
	})
	var notFound *accounts.NotFoundError
	require.True(t, errors.As(err, &notFound))
	assert.Equal(t, "1405", notFound.Code)
	assert.Empty(t, writer.headers)
}

func TestProcessPayment(t *testing.T) {
	writer := newMockWriter()
	registry := chartWithIDs()
	engine := newTestEngine(writer, registry)

	_, err := engine.ProcessPayment(context.Background(), PaymentPay, dec("250.00"))
	require.NoError(t, err)
	_, err = engine.ProcessPayment(context.Background(), PaymentReceive, dec("800.00"))
	require.NoError(t, err)

	bank, _ := registry.ByCode("1002")
	payable, _ := registry.ByCode("2202")
	receivable, _ := registry.ByCode("1122")

	// PAY: debit payable, credit bank.
	pay := writer.splits[0]
	assert.Equal(t, payable.ID, pay[0].AccountID)
	assert.Equal(t, bank.ID, pay[1].AccountID)
	assert.Contains(t, writer.headers[0].Description, "purchase")

	// RECEIVE: debit bank, credit receivable.
	receive := writer.splits[1]
	assert.Equal(t, bank.ID, receive[0].AccountID)
	assert.Equal(t, receivable.ID, receive[1].AccountID)
	assert.Contains(t, writer.headers[1].Description, "collection")
}

func TestIssuePayroll(t *testing.T) {
	writer := newMockWriter()
	registry := chartWithIDs()
	engine := newTestEngine(writer, registry)

	_, err := engine.IssuePayroll(context.Background(), "2025-05", dec("12000.00"))
	require.NoError(t, err)

	salaryPayable, _ := registry.ByCode("2211")
	bank, _ := registry.ByCode("1002")
	legs := writer.splits[0]
	assert.Equal(t, salaryPayable.ID, legs[0].AccountID)
	assert.Equal(t, model.Debit, legs[0].Direction)
	assert.Equal(t, bank.ID, legs[1].AccountID)
	assert.Equal(t, model.Credit, legs[1].Direction)
	assert.Contains(t, writer.headers[0].Description, "salary")

	_, err = engine.IssuePayroll(context.Background(), "", dec("1.00"))
	var validation *ValidationError
	require.True(t, errors.As(err, &validation))
}
