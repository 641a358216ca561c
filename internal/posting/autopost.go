package posting

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceKind is the business document type behind an auto-posting.
type InvoiceKind string

const (
	InvoicePurchase InvoiceKind = "PURCHASE"
	InvoiceSale     InvoiceKind = "SALE"
)

// Invoice carries the already-extracted figures of a business document
// to auto-post. The document itself lives outside this system.
type Invoice struct {
	Kind        InvoiceKind
	Date        time.Time
	Description string
	Amount      decimal.Decimal
}

// AutoPostInvoice converts a business document into a balanced voucher:
// a purchase debits inventory and credits accounts payable, a sale
// debits accounts receivable and credits sales revenue. Fails with
// *accounts.NotFoundError when a required account code is absent.
func (e *Engine) AutoPostInvoice(ctx context.Context, invoice Invoice) (int64, error) {
	if invoice.Amount.IsNegative() || invoice.Amount.IsZero() {
		return 0, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	date := invoice.Date
	if date.IsZero() {
		date = time.Now()
	}

	switch invoice.Kind {
	case InvoicePurchase:
		inventory, err := e.lookup.Require(e.codes.Inventory, "inventory")
		if err != nil {
			return 0, err
		}
		payable, err := e.lookup.Require(e.codes.Payable, "accounts payable")
		if err != nil {
			return 0, err
		}
		desc := invoice.Description
		if desc == "" {
			desc = "purchase goods received"
		}
		return e.twoLeg(ctx, date, desc, inventory, payable, invoice.Amount,
			"goods received into inventory", "owed to supplier")

	case InvoiceSale:
		receivable, err := e.lookup.Require(e.codes.Receivable, "accounts receivable")
		if err != nil {
			return 0, err
		}
		revenue, err := e.lookup.Require(e.codes.SalesRevenue, "sales revenue")
		if err != nil {
			return 0, err
		}
		desc := invoice.Description
		if desc == "" {
			desc = "sales invoice issued"
		}
		return e.twoLeg(ctx, date, desc, receivable, revenue, invoice.Amount,
			"due from customer", "sales revenue")

	default:
		return 0, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown invoice kind %q", invoice.Kind)}
	}
}

// PaymentKind distinguishes money leaving from money arriving.
type PaymentKind string

const (
	PaymentPay     PaymentKind = "PAY"
	PaymentReceive PaymentKind = "RECEIVE"
)

// ProcessPayment settles an open payable or receivable through the
// bank account: PAY debits accounts payable and credits bank, RECEIVE
// debits bank and credits accounts receivable.
func (e *Engine) ProcessPayment(ctx context.Context, kind PaymentKind, amount decimal.Decimal) (int64, error) {
	if amount.IsNegative() || amount.IsZero() {
		return 0, &ValidationError{Field: "amount", Reason: "must be positive"}
	}
	bank, err := e.lookup.Require(e.codes.BankDeposit, "bank deposit")
	if err != nil {
		return 0, err
	}

	switch kind {
	case PaymentPay:
		payable, err := e.lookup.Require(e.codes.Payable, "accounts payable")
		if err != nil {
			return 0, err
		}
		return e.twoLeg(ctx, time.Now(), "purchase payment to supplier", payable, bank, amount,
			"payable settled", "bank transfer out")

	case PaymentReceive:
		receivable, err := e.lookup.Require(e.codes.Receivable, "accounts receivable")
		if err != nil {
			return 0, err
		}
		return e.twoLeg(ctx, time.Now(), "sales collection received", bank, receivable, amount,
			"customer remittance in", "receivable cleared")

	default:
		return 0, &ValidationError{Field: "kind", Reason: fmt.Sprintf("unknown payment kind %q", kind)}
	}
}

// IssuePayroll posts one month's salary payout: debit salary payable,
// credit bank. The description carries the salary keyword so cash-flow
// classification buckets the outflow correctly.
func (e *Engine) IssuePayroll(ctx context.Context, month string, total decimal.Decimal) (int64, error) {
	if total.IsNegative() || total.IsZero() {
		return 0, &ValidationError{Field: "totalAmount", Reason: "must be positive"}
	}
	if month == "" {
		return 0, &ValidationError{Field: "month", Reason: "is required"}
	}

	salaryPayable, err := e.lookup.Require(e.codes.SalaryPayable, "salary payable")
	if err != nil {
		return 0, err
	}
	bank, err := e.lookup.Require(e.codes.BankDeposit, "bank deposit")
	if err != nil {
		return 0, err
	}

	description := fmt.Sprintf("%s salary payroll payment", month)
	summary := fmt.Sprintf("%s payroll", month)
	return e.twoLeg(ctx, time.Now(), description, salaryPayable, bank, total, summary, summary)
}
