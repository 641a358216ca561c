package accounts

import (
	"fmt"

	"github.com/finbook-dev/finbook/internal/model"
)

// NotFoundError reports that a well-known account code required for a
// posting is absent from the chart of accounts.
type NotFoundError struct {
	Code string
	Role string
}

func (e *NotFoundError) Error() string {
	if e.Role != "" {
		return fmt.Sprintf("account %s (%s) not found in chart of accounts", e.Code, e.Role)
	}
	return fmt.Sprintf("account %s not found in chart of accounts", e.Code)
}

// Registry provides in-memory lookup over a chart-of-accounts snapshot.
type Registry struct {
	accounts []model.Account
	byID     map[int64]model.Account
	byCode   map[string]model.Account
	children map[int64][]model.Account
}

// NewRegistry indexes a slice of accounts.
func NewRegistry(accounts []model.Account) *Registry {
	byID := make(map[int64]model.Account, len(accounts))
	byCode := make(map[string]model.Account, len(accounts))
	children := make(map[int64][]model.Account)
	for _, a := range accounts {
		byID[a.ID] = a
		if a.Code != "" {
			byCode[a.Code] = a
		}
		if a.ParentID != 0 {
			children[a.ParentID] = append(children[a.ParentID], a)
		}
	}
	return &Registry{accounts: accounts, byID: byID, byCode: byCode, children: children}
}

// All returns all accounts in the snapshot.
func (r *Registry) All() []model.Account {
	return r.accounts
}

// Get returns an account by ID.
func (r *Registry) Get(id int64) (model.Account, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// Exists reports whether an account ID exists.
func (r *Registry) Exists(id int64) bool {
	_, ok := r.byID[id]
	return ok
}

// ByCode returns an account by its chart code.
func (r *Registry) ByCode(code string) (model.Account, bool) {
	a, ok := r.byCode[code]
	return a, ok
}

// Require resolves a well-known code or fails with *NotFoundError.
// Role names the posting role for the error message (e.g. "bank
// deposit").
func (r *Registry) Require(code, role string) (model.Account, error) {
	a, ok := r.byCode[code]
	if !ok {
		return model.Account{}, &NotFoundError{Code: code, Role: role}
	}
	return a, nil
}

// ByType returns all accounts of the given type.
func (r *Registry) ByType(accountType model.AccountType) []model.Account {
	var result []model.Account
	for _, a := range r.accounts {
		if a.Type == accountType {
			result = append(result, a)
		}
	}
	return result
}

// Children returns the direct children of an account.
func (r *Registry) Children(parentID int64) []model.Account {
	return r.children[parentID]
}

// DebitNatural reports whether balances of the given account type grow
// on the debit side. True for ASSET and EXPENSE; LIABILITY, EQUITY and
// INCOME grow on the credit side.
func DebitNatural(t model.AccountType) bool {
	return t == model.AccountTypeAsset || t == model.AccountTypeExpense
}
