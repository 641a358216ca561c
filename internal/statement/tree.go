// Package statement derives financial statements from account
// snapshots and balance maps. Everything here is pure computation;
// reads never fail, missing data degrades to zero.
package statement

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/finbook-dev/finbook/internal/model"
)

// Reserved identifiers for synthesized nodes.
const (
	virtualRootID      int64 = 0
	syntheticProfitID  int64 = -1
	netProfitCode            = "3103"
	netProfitAltCode         = "3131"
	netProfitLeafName        = "Net Profit"
)

func typeLabel(t model.AccountType) string {
	switch t {
	case model.AccountTypeAsset:
		return "Assets"
	case model.AccountTypeLiability:
		return "Liabilities"
	case model.AccountTypeEquity:
		return "Owner's Equity"
	case model.AccountTypeIncome:
		return "Income"
	case model.AccountTypeExpense:
		return "Expenses"
	default:
		return string(t)
	}
}

// BuildTree assembles the statement tree for one account type. Roots
// are accounts of the type whose parent is absent or outside the type.
// With zero or multiple roots a virtual root (id 0, type label as
// name) is synthesized so every statement renders as a single tree
// even over a flat or malformed chart. A leaf's amount is its own
// balance; an interior node's amount is the sum of its children.
func BuildTree(t model.AccountType, accountList []model.Account, balances map[int64]decimal.Decimal) *model.StatementNode {
	byID := make(map[int64]model.Account, len(accountList))
	children := make(map[int64][]model.Account)
	for _, a := range accountList {
		byID[a.ID] = a
	}
	for _, a := range accountList {
		if a.ParentID != 0 {
			children[a.ParentID] = append(children[a.ParentID], a)
		}
	}

	var roots []model.Account
	for _, a := range accountList {
		if a.Type != t {
			continue
		}
		parent, ok := byID[a.ParentID]
		if a.ParentID == 0 || !ok || parent.Type != t {
			roots = append(roots, a)
		}
	}

	if len(roots) == 1 {
		return buildNode(roots[0], children, balances, map[int64]bool{})
	}

	virtual := &model.StatementNode{
		ID:     virtualRootID,
		Name:   typeLabel(t),
		Code:   "",
		Type:   t,
		Amount: decimal.Zero,
	}
	for _, root := range roots {
		child := buildNode(root, children, balances, map[int64]bool{})
		virtual.Children = append(virtual.Children, child)
		virtual.Amount = virtual.Amount.Add(child.Amount)
	}
	return virtual
}

// buildNode recursively constructs one subtree. The path set breaks
// cycles in the parent references: a child already on the path is
// skipped, so a cyclic chart degrades instead of recursing forever.
func buildNode(account model.Account, children map[int64][]model.Account, balances map[int64]decimal.Decimal, path map[int64]bool) *model.StatementNode {
	path[account.ID] = true
	defer delete(path, account.ID)

	node := &model.StatementNode{
		ID:        account.ID,
		Name:      account.Name,
		Code:      account.Code,
		Type:      account.Type,
		Direction: account.Direction,
	}

	kids := children[account.ID]
	built := make([]*model.StatementNode, 0, len(kids))
	for _, kid := range kids {
		if path[kid.ID] {
			continue
		}
		built = append(built, buildNode(kid, children, balances, path))
	}

	if len(built) == 0 {
		node.Amount = balances[account.ID]
		return node
	}

	sum := decimal.Zero
	for _, child := range built {
		sum = sum.Add(child.Amount)
	}
	node.Children = built
	node.Amount = sum
	return node
}

// InjectNetProfit overwrites the designated net-profit leaf of an
// equity tree with the derived figure, appending a synthetic leaf when
// none exists and the figure is non-zero, then re-aggregates every
// ancestor amount bottom-up.
func InjectNetProfit(equity *model.StatementNode, netProfit decimal.Decimal) {
	if equity == nil {
		return
	}
	if !setProfitNode(equity, netProfit) && !netProfit.IsZero() {
		equity.Children = append(equity.Children, &model.StatementNode{
			ID:        syntheticProfitID,
			Name:      netProfitLeafName + " (derived)",
			Code:      netProfitCode,
			Type:      model.AccountTypeEquity,
			Direction: model.DirectionCredit,
			Amount:    netProfit,
		})
	}
	Reaggregate(equity)
}

func setProfitNode(node *model.StatementNode, netProfit decimal.Decimal) bool {
	if isNetProfitNode(node) {
		node.Amount = netProfit
		node.Name = netProfitLeafName
		return true
	}
	for _, child := range node.Children {
		if setProfitNode(child, netProfit) {
			return true
		}
	}
	return false
}

func isNetProfitNode(node *model.StatementNode) bool {
	if node.Code == netProfitCode || node.Code == netProfitAltCode {
		return true
	}
	return strings.Contains(strings.ToLower(node.Name), "net profit")
}

// Reaggregate recomputes interior amounts from the leaves up and
// returns the root amount. Leaves keep their amounts.
func Reaggregate(node *model.StatementNode) decimal.Decimal {
	if node == nil {
		return decimal.Zero
	}
	if len(node.Children) == 0 {
		return node.Amount
	}
	sum := decimal.Zero
	for _, child := range node.Children {
		sum = sum.Add(Reaggregate(child))
	}
	node.Amount = sum
	return sum
}
