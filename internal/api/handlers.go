package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/accounts"
	"github.com/finbook-dev/finbook/internal/logging"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/posting"
	"github.com/finbook-dev/finbook/internal/store"
)

const dateFormat = "2006-01-02"

// writePostingError maps the typed posting errors onto the envelope.
func writePostingError(w http.ResponseWriter, err error) {
	var validationErr *posting.ValidationError
	var unbalancedErr *posting.UnbalancedError
	var referenceErr *posting.ReferenceError
	var notFoundErr *accounts.NotFoundError

	switch {
	case errors.As(err, &validationErr):
		writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, validationErr.Error())
	case errors.As(err, &unbalancedErr):
		writeJSONError(w, http.StatusUnprocessableEntity, posting.CodeUnbalanced, unbalancedErr.Error())
	case errors.As(err, &referenceErr):
		writeJSONError(w, http.StatusUnprocessableEntity, posting.CodeBadReference, referenceErr.Error())
	case errors.As(err, &notFoundErr):
		writeJSONError(w, http.StatusUnprocessableEntity, posting.CodeAccountNotFound, notFoundErr.Error())
	default:
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "posting failed")
	}
}

type splitRequest struct {
	AccountID int64           `json:"accountId"`
	Direction model.Direction `json:"dcDirection"`
	Amount    decimal.Decimal `json:"amount"`
	Summary   string          `json:"summary"`
}

type postTransactionRequest struct {
	VoucherDate string                  `json:"voucherDate"`
	Description string                  `json:"description"`
	Status      model.TransactionStatus `json:"status"`
	Splits      []splitRequest          `json:"splits"`
}

func (s *Server) handlePostTransaction(w http.ResponseWriter, r *http.Request) {
	var req postTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, "failed to parse request body")
		return
	}
	date, err := time.Parse(dateFormat, req.VoucherDate)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, "voucherDate must be YYYY-MM-DD")
		return
	}

	engine, err := s.newEngine()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "loading chart of accounts failed")
		return
	}

	input := posting.PostInput{Date: date, Description: req.Description, Status: req.Status}
	for _, split := range req.Splits {
		input.Splits = append(input.Splits, posting.SplitInput{
			AccountID: split.AccountID,
			Direction: split.Direction,
			Amount:    split.Amount,
			Summary:   split.Summary,
		})
	}

	txID, err := engine.Post(r.Context(), input)
	if err != nil {
		writePostingError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transactionId": txID})
}

type approveRequest struct {
	TransactionIDs []int64 `json:"transactionIds"`
}

func (s *Server) handleApprove(w http.ResponseWriter, r *http.Request) {
	var req approveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, "failed to parse request body")
		return
	}

	engine, err := s.newEngine()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "loading chart of accounts failed")
		return
	}
	if err := engine.SetStatus(r.Context(), req.TransactionIDs, model.StatusPosted); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
		writePostingError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"posted": len(req.TransactionIDs)})
}

type invoiceRequest struct {
	Kind        posting.InvoiceKind `json:"kind"`
	Date        string              `json:"date"`
	Description string              `json:"description"`
	Amount      decimal.Decimal     `json:"amount"`
}

func (s *Server) handleAutoPostInvoice(w http.ResponseWriter, r *http.Request) {
	var req invoiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, "failed to parse request body")
		return
	}
	var date time.Time
	if req.Date != "" {
		parsed, err := time.Parse(dateFormat, req.Date)
		if err != nil {
			writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, "date must be YYYY-MM-DD")
			return
		}
		date = parsed
	}

	engine, err := s.newEngine()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "loading chart of accounts failed")
		return
	}
	txID, err := engine.AutoPostInvoice(r.Context(), posting.Invoice{
		Kind:        req.Kind,
		Date:        date,
		Description: req.Description,
		Amount:      req.Amount,
	})
	if err != nil {
		writePostingError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transactionId": txID})
}

type paymentRequest struct {
	Kind   posting.PaymentKind `json:"kind"`
	Amount decimal.Decimal     `json:"amount"`
}

func (s *Server) handleProcessPayment(w http.ResponseWriter, r *http.Request) {
	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, "failed to parse request body")
		return
	}

	engine, err := s.newEngine()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "loading chart of accounts failed")
		return
	}
	txID, err := engine.ProcessPayment(r.Context(), req.Kind, req.Amount)
	if err != nil {
		writePostingError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transactionId": txID})
}

type payrollRequest struct {
	Month       string          `json:"month"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

func (s *Server) handleIssuePayroll(w http.ResponseWriter, r *http.Request) {
	var req payrollRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, "failed to parse request body")
		return
	}

	engine, err := s.newEngine()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "loading chart of accounts failed")
		return
	}
	txID, err := engine.IssuePayroll(r.Context(), req.Month, req.TotalAmount)
	if err != nil {
		writePostingError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"transactionId": txID})
}

func (s *Server) handleListAccounts(w http.ResponseWriter, r *http.Request) {
	accountList, err := s.store.ListAccounts()
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "listing accounts failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"accounts": accountList})
}

func (s *Server) handleCreateAccount(w http.ResponseWriter, r *http.Request) {
	var account model.Account
	if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
		writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, "failed to parse request body")
		return
	}
	if account.Name == "" || account.Type == "" {
		writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, "accountName and accountType are required")
		return
	}
	account.ID = 0
	id, err := s.store.PutAccount(account)
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "creating account failed")
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"accountId": id})
}

func (s *Server) handleListVouchers(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.Vouchers(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "listing vouchers failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"transactions": rows})
}

func (s *Server) handleBalanceSheet(w http.ResponseWriter, r *http.Request) {
	sheet, err := s.reports.BalanceSheet(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "balance sheet computation failed")
		return
	}
	writeJSON(w, http.StatusOK, sheet)
}

func (s *Server) handleIncomeStatement(w http.ResponseWriter, r *http.Request) {
	stmt, err := s.reports.IncomeStatement(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "income statement computation failed")
		return
	}
	writeJSON(w, http.StatusOK, stmt)
}

func (s *Server) handleCashflow(w http.ResponseWriter, r *http.Request) {
	stmt, err := s.reports.Cashflow(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "cashflow computation failed")
		return
	}
	writeJSON(w, http.StatusOK, stmt)
}

func (s *Server) handleAccountLedger(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "accountID"), 10, 64)
	if err != nil {
		writeJSONError(w, http.StatusBadRequest, posting.CodeValidation, "invalid account ID")
		return
	}
	ledger, err := s.reports.AccountLedger(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeJSONError(w, http.StatusNotFound, "NOT_FOUND", "account not found")
			return
		}
		log := logging.FromContext(r.Context())
		log.Error().Err(err).Msg("ledger computation failed")
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "ledger computation failed")
		return
	}
	writeJSON(w, http.StatusOK, ledger)
}

func (s *Server) handleLedgerSummary(w http.ResponseWriter, r *http.Request) {
	rows, err := s.reports.LedgerSummary(r.Context())
	if err != nil {
		writeJSONError(w, http.StatusInternalServerError, "INTERNAL_ERROR", "ledger summary computation failed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"rows": rows})
}
