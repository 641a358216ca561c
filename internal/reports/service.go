// Package reports derives financial statements from a full, freshly
// read snapshot of the posting history. Every report is recomputed
// from scratch per request; nothing is cached between calls.
package reports

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/balance"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/statement"
	"github.com/finbook-dev/finbook/internal/store"
)

// Reader is the read side of the persistence collaborator.
type Reader interface {
	ListAccounts() ([]model.Account, error)
	ListTransactions() ([]model.Transaction, error)
	ListSplits(filter store.SplitFilter) ([]model.Split, error)
	GetAccount(id int64) (model.Account, error)
}

// Service computes reports over store snapshots.
type Service struct {
	reader     Reader
	classifier *statement.Classifier
	log        zerolog.Logger
}

// NewService creates a report Service with the canonical classifier.
func NewService(reader Reader, log zerolog.Logger) *Service {
	return &Service{reader: reader, classifier: statement.NewClassifier(), log: log}
}

// NewServiceWithClassifier creates a report Service with a custom rule
// set.
func NewServiceWithClassifier(reader Reader, classifier *statement.Classifier, log zerolog.Logger) *Service {
	return &Service{reader: reader, classifier: classifier, log: log}
}

type snapshot struct {
	accounts     []model.Account
	transactions []model.Transaction
	splits       []model.Split
	posted       map[int64]struct{}
}

func (s *Service) snapshot(ctx context.Context) (*snapshot, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	accounts, err := s.reader.ListAccounts()
	if err != nil {
		return nil, err
	}
	transactions, err := s.reader.ListTransactions()
	if err != nil {
		return nil, err
	}
	splits, err := s.reader.ListSplits(store.SplitFilter{})
	if err != nil {
		return nil, err
	}
	return &snapshot{
		accounts:     accounts,
		transactions: transactions,
		splits:       splits,
		posted:       balance.PostedIDs(transactions),
	}, nil
}

// BalanceSheet is the derived balance sheet. TotalAsset and
// TotalLiabilityEquity are both reported even when they disagree;
// imbalance is an output, never an error.
type BalanceSheet struct {
	Asset                *model.StatementNode `json:"asset"`
	Liability            *model.StatementNode `json:"liability"`
	Equity               *model.StatementNode `json:"equity"`
	TotalAsset           decimal.Decimal      `json:"totalAsset"`
	TotalLiabilityEquity decimal.Decimal      `json:"totalLiabilityEquity"`
	NetProfit            decimal.Decimal      `json:"netProfit"`
}

// BalanceSheet builds the three statement trees, injects the derived
// net profit into the equity tree, and reports the two totals as-is.
func (s *Service) BalanceSheet(ctx context.Context) (*BalanceSheet, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}

	balances := balance.Compute(snap.accounts, snap.splits, snap.posted)
	netProfit := s.classifier.IncomeStatement(snap.accounts, snap.splits, snap.posted).NetProfit

	asset := statement.BuildTree(model.AccountTypeAsset, snap.accounts, balances)
	liability := statement.BuildTree(model.AccountTypeLiability, snap.accounts, balances)
	equity := statement.BuildTree(model.AccountTypeEquity, snap.accounts, balances)
	statement.InjectNetProfit(equity, netProfit)

	return &BalanceSheet{
		Asset:                asset,
		Liability:            liability,
		Equity:               equity,
		TotalAsset:           asset.Amount,
		TotalLiabilityEquity: liability.Amount.Add(equity.Amount),
		NetProfit:            netProfit,
	}, nil
}

// IncomeStatement derives the profit report from posted splits.
func (s *Service) IncomeStatement(ctx context.Context) (*statement.IncomeStatement, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	stmt := s.classifier.IncomeStatement(snap.accounts, snap.splits, snap.posted)
	return &stmt, nil
}

// Cashflow derives the operating cash summary from posted splits on
// cash accounts.
func (s *Service) Cashflow(ctx context.Context) (*statement.CashflowStatement, error) {
	snap, err := s.snapshot(ctx)
	if err != nil {
		return nil, err
	}
	stmt := s.classifier.Cashflow(snap.accounts, snap.transactions, snap.splits, snap.posted)
	return &stmt, nil
}
