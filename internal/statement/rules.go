package statement

import (
	"strings"

	"github.com/finbook-dev/finbook/internal/model"
)

// IncomeBucket is the income-statement classification of an account.
type IncomeBucket int

const (
	BucketNone IncomeBucket = iota
	BucketRevenue
	BucketCost
	BucketFinanceExpense
	BucketExpense
)

// CashBucket is the cash-flow classification of one cash movement.
type CashBucket int

const (
	CashUnclassified CashBucket = iota
	CashSalesIn
	CashOtherIn
	CashPurchaseOut
	CashSalaryOut
	CashOtherOut
)

// AccountRule maps an account to an income bucket. Rules are checked
// in order; the first match wins.
type AccountRule struct {
	Name   string
	Match  func(model.Account) bool
	Bucket IncomeBucket
}

// FlowRule maps a cash movement to a cash bucket by the direction of
// the split and the owning voucher's description. Ordered, first
// match wins; a nil Match matches everything on that direction.
type FlowRule struct {
	Name      string
	Direction model.Direction
	Match     func(description string) bool
	Bucket    CashBucket
}

// Classifier holds the keyword rule sets driving income and cash-flow
// classification. Description matching is inherently heuristic, so the
// rules live here as plain ordered lists that can be replaced or
// reordered without touching any aggregation logic.
type Classifier struct {
	AccountRules []AccountRule
	FlowRules    []FlowRule
	CashCodes    []string
	CashKeywords []string
}

func nameContains(keywords ...string) func(string) bool {
	return func(s string) bool {
		s = strings.ToLower(s)
		for _, kw := range keywords {
			if strings.Contains(s, kw) {
				return true
			}
		}
		return false
	}
}

func hasAnyPrefix(code string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(code, p) {
			return true
		}
	}
	return false
}

func isRevenueAccount(a model.Account) bool {
	return a.Type == model.AccountTypeIncome ||
		strings.HasPrefix(a.Code, "4") ||
		a.Code == "6001" ||
		nameContains("revenue", "sales income")(a.Name)
}

func isExpenseSide(a model.Account) bool {
	return a.Type == model.AccountTypeExpense || hasAnyPrefix(a.Code, "5", "64", "66")
}

// NewClassifier returns the canonical rule set.
func NewClassifier() *Classifier {
	return &Classifier{
		AccountRules: []AccountRule{
			{
				Name:   "revenue",
				Match:  isRevenueAccount,
				Bucket: BucketRevenue,
			},
			{
				Name: "cost-of-sales",
				Match: func(a model.Account) bool {
					return isExpenseSide(a) &&
						(a.Code == "6401" || hasAnyPrefix(a.Code, "64") || nameContains("cost")(a.Name))
				},
				Bucket: BucketCost,
			},
			{
				Name: "finance-expense",
				Match: func(a model.Account) bool {
					return isExpenseSide(a) &&
						(hasAnyPrefix(a.Code, "6603") || nameContains("finance expense")(a.Name))
				},
				Bucket: BucketFinanceExpense,
			},
			{
				Name:   "operating-expense",
				Match:  isExpenseSide,
				Bucket: BucketExpense,
			},
		},
		FlowRules: []FlowRule{
			{Name: "sales-collection", Direction: model.Debit, Match: nameContains("sales", "collection"), Bucket: CashSalesIn},
			{Name: "other-inflow", Direction: model.Debit, Bucket: CashOtherIn},
			{Name: "purchase", Direction: model.Credit, Match: nameContains("purchase", "procurement", "goods received"), Bucket: CashPurchaseOut},
			{Name: "salary", Direction: model.Credit, Match: nameContains("salary", "payroll", "wages"), Bucket: CashSalaryOut},
			{Name: "other-outflow", Direction: model.Credit, Bucket: CashOtherOut},
		},
		CashCodes:    []string{"1001", "1002"},
		CashKeywords: []string{"cash", "bank"},
	}
}

// IncomeBucketFor classifies an account for the income statement.
func (c *Classifier) IncomeBucketFor(a model.Account) IncomeBucket {
	for _, rule := range c.AccountRules {
		if rule.Match(a) {
			return rule.Bucket
		}
	}
	return BucketNone
}

// IsCashAccount reports whether an account holds cash: a reserved
// cash/bank code or a cash/bank keyword in the name.
func (c *Classifier) IsCashAccount(a model.Account) bool {
	for _, code := range c.CashCodes {
		if a.Code == code {
			return true
		}
	}
	return nameContains(c.CashKeywords...)(a.Name)
}

// CashBucketFor classifies one cash movement by split direction and
// voucher description.
func (c *Classifier) CashBucketFor(direction model.Direction, description string) CashBucket {
	for _, rule := range c.FlowRules {
		if rule.Direction != direction {
			continue
		}
		if rule.Match == nil || rule.Match(description) {
			return rule.Bucket
		}
	}
	return CashUnclassified
}
