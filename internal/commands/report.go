package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/finbook-dev/finbook/internal/config"
	"github.com/finbook-dev/finbook/internal/logging"
	"github.com/finbook-dev/finbook/internal/model"
	"github.com/finbook-dev/finbook/internal/reports"
	"github.com/finbook-dev/finbook/internal/store"
)

func newReportCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "report {balance-sheet|income|cashflow|summary}",
		Short:     "Print a financial statement",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"balance-sheet", "income", "cashflow", "summary"},
		RunE: func(cmd *cobra.Command, args []string) error {
			configPath, _ := cmd.Flags().GetString("config")
			return runReport(cmd.Context(), configPath, args[0])
		},
	}
	return cmd
}

func runReport(ctx context.Context, configPath, kind string) error {
	if ctx == nil {
		ctx = context.Background()
	}
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return err
	}
	defer st.Close()

	svc := reports.NewService(st, logging.New())

	switch kind {
	case "balance-sheet":
		sheet, err := svc.BalanceSheet(ctx)
		if err != nil {
			return err
		}
		printTree(sheet.Asset, 0)
		printTree(sheet.Liability, 0)
		printTree(sheet.Equity, 0)
		fmt.Printf("\nTotal assets:               %14s\n", sheet.TotalAsset.StringFixed(2))
		fmt.Printf("Total liabilities + equity: %14s\n", sheet.TotalLiabilityEquity.StringFixed(2))
		fmt.Printf("Net profit:                 %14s\n", sheet.NetProfit.StringFixed(2))

	case "income":
		stmt, err := svc.IncomeStatement(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Revenue:          %14s\n", stmt.Revenue.StringFixed(2))
		fmt.Printf("Cost of sales:    %14s\n", stmt.Cost.StringFixed(2))
		fmt.Printf("Gross profit:     %14s\n", stmt.GrossProfit.StringFixed(2))
		fmt.Printf("Expenses:         %14s\n", stmt.Expense.StringFixed(2))
		fmt.Printf("Finance expense:  %14s\n", stmt.FinanceExpense.StringFixed(2))
		fmt.Printf("Operating profit: %14s\n", stmt.OperatingProfit.StringFixed(2))
		fmt.Printf("Net profit:       %14s\n", stmt.NetProfit.StringFixed(2))

	case "cashflow":
		stmt, err := svc.Cashflow(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("Sales cash in:      %14s\n", stmt.SalesCashIn.StringFixed(2))
		fmt.Printf("Other cash in:      %14s\n", stmt.OtherCashIn.StringFixed(2))
		fmt.Printf("Purchase cash out:  %14s\n", stmt.PurchaseCashOut.StringFixed(2))
		fmt.Printf("Salary cash out:    %14s\n", stmt.SalaryCashOut.StringFixed(2))
		fmt.Printf("Other cash out:     %14s\n", stmt.OtherCashOut.StringFixed(2))
		fmt.Printf("Operating net:      %14s\n", stmt.OperatingCashNet.StringFixed(2))
		fmt.Printf("Total cash change:  %14s\n", stmt.TotalCashChange.StringFixed(2))

	case "summary":
		rows, err := svc.LedgerSummary(ctx)
		if err != nil {
			return err
		}
		fmt.Printf("%-8s %-28s %14s %14s %14s %s\n", "CODE", "ACCOUNT", "DEBIT", "CREDIT", "BALANCE", "DIR")
		for _, row := range rows {
			fmt.Printf("%-8s %-28s %14s %14s %14s %s\n",
				row.Code, row.Name,
				row.TotalDebit.StringFixed(2), row.TotalCredit.StringFixed(2),
				row.Balance.StringFixed(2), row.DirectionLabel)
		}

	default:
		return fmt.Errorf("unknown report %q", kind)
	}
	return nil
}

func printTree(node *model.StatementNode, depth int) {
	if node == nil {
		return
	}
	indent := strings.Repeat("  ", depth)
	label := node.Name
	if node.Code != "" {
		label = node.Code + " " + label
	}
	fmt.Printf("%s%-*s %14s\n", indent, 40-len(indent), label, node.Amount.StringFixed(2))
	for _, child := range node.Children {
		printTree(child, depth+1)
	}
}
