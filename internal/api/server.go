// Package api exposes the ledger over JSON/HTTP. Handlers are thin:
// they parse, call the core, and map typed errors to the error
// envelope. Report reads never fail on malformed book data; posting
// writes fail hard.
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/accounts"
	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/posting"
	"github.com/finbook-dev/finbook/internal/reports"
	"github.com/finbook-dev/finbook/internal/store"
)

// Server wires the posting engine and report service to HTTP routes.
type Server struct {
	store     *store.Store
	reports   *reports.Service
	codes     config.WellKnownCodes
	tolerance decimal.Decimal
	log       zerolog.Logger
}

// NewServer creates a Server over an open store.
func NewServer(st *store.Store, cfg *config.Config, log zerolog.Logger) *Server {
	return &Server{
		store:     st,
		reports:   reports.NewService(st, log),
		codes:     cfg.Accounts,
		tolerance: cfg.Thresholds.Tolerance(),
		log:       log,
	}
}

// newEngine builds a posting engine over a fresh chart-of-accounts
// snapshot. Each posting request sees the chart as of its own start.
func (s *Server) newEngine() (*posting.Engine, error) {
	accountList, err := s.store.ListAccounts()
	if err != nil {
		return nil, err
	}
	registry := accounts.NewRegistry(accountList)
	return posting.NewEngine(s.store, registry, s.codes, s.tolerance, s.log), nil
}

// Router returns the HTTP handler with all routes registered.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(RequestLogger(s.log))

	r.Route("/api", func(r chi.Router) {
		r.Get("/accounts", s.handleListAccounts)
		r.Post("/accounts", s.handleCreateAccount)

		r.Get("/transactions", s.handleListVouchers)
		r.Post("/transactions", s.handlePostTransaction)
		r.Post("/transactions/post", s.handleApprove)

		r.Post("/invoices/post", s.handleAutoPostInvoice)
		r.Post("/payments", s.handleProcessPayment)
		r.Post("/payroll", s.handleIssuePayroll)

		r.Get("/reports/balance-sheet", s.handleBalanceSheet)
		r.Get("/reports/income", s.handleIncomeStatement)
		r.Get("/reports/cashflow", s.handleCashflow)

		r.Get("/ledger/{accountID}", s.handleAccountLedger)
		r.Get("/ledger-summary", s.handleLedgerSummary)
	})

	return r
}
