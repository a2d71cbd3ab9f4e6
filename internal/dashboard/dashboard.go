// Package dashboard computes the aggregated values the dashboard displays.
// All functions are pure: they take a snapshot of categories and
// transactions, perform no I/O, and never return an error. Empty input
// yields a well-defined zeroed result.
package dashboard

import (
	"sort"

	"fintrack/internal/models"
)

// recentLimit is the number of transactions shown in the recent activity list.
const recentLimit = 5

// Totals holds per-currency income and expense sums in cents.
type Totals struct {
	Income  int64 `json:"income"`
	Expense int64 `json:"expense"`
}

// CategorySpend holds spending vs budget data for one category.
//
// Spent sums transaction amounts regardless of currency; callers needing a
// currency-correct breakdown must pre-filter transactions to one currency.
// Percentage is not capped at 100; clamping for progress bars is a display
// concern.
type CategorySpend struct {
	CategoryID  string            `json:"category_id"`
	Name        string            `json:"name"`
	Kind        models.RecordKind `json:"kind"`
	Spent       int64             `json:"spent"`
	BudgetLimit int64             `json:"budget_limit"`
	Percentage  float64           `json:"percentage"`
}

// Summary contains the aggregated dashboard values.
//
// Balance sums (income - expense) of every currency into one scalar without
// conversion. That is a deliberate simplification of the product, not a bug.
type Summary struct {
	TotalsByCurrency   map[string]Totals    `json:"totals_by_currency"`
	Balance            int64                `json:"balance"`
	CategorySpending   []CategorySpend      `json:"category_spending"`
	RecentTransactions []models.Transaction `json:"recent_transactions"`
}

// Compute aggregates a snapshot of categories and transactions into the
// dashboard summary.
func Compute(categories []models.Category, transactions []models.Transaction) Summary {
	summary := Summary{
		TotalsByCurrency:   make(map[string]Totals),
		CategorySpending:   make([]CategorySpend, 0, len(categories)),
		RecentTransactions: []models.Transaction{},
	}

	spentByCategory := make(map[string]int64)

	for _, tx := range transactions {
		totals := summary.TotalsByCurrency[tx.Currency]
		switch tx.Kind {
		case models.KindIncome:
			totals.Income += tx.Amount
		case models.KindExpense:
			totals.Expense += tx.Amount
		}
		summary.TotalsByCurrency[tx.Currency] = totals

		if tx.CategoryID != nil {
			spentByCategory[*tx.CategoryID] += tx.Amount
		}
	}

	for _, totals := range summary.TotalsByCurrency {
		summary.Balance += totals.Income - totals.Expense
	}

	for _, cat := range categories {
		spent := spentByCategory[cat.ID]
		var percentage float64
		if cat.BudgetLimit > 0 {
			percentage = float64(spent) / float64(cat.BudgetLimit) * 100
		}
		summary.CategorySpending = append(summary.CategorySpending, CategorySpend{
			CategoryID:  cat.ID,
			Name:        cat.Name,
			Kind:        cat.Kind,
			Spent:       spent,
			BudgetLimit: cat.BudgetLimit,
			Percentage:  percentage,
		})
	}

	summary.RecentTransactions = recent(transactions, recentLimit)

	return summary
}

// recent returns the n most recent transactions by date, newest first,
// without mutating the input slice.
func recent(transactions []models.Transaction, n int) []models.Transaction {
	sorted := make([]models.Transaction, len(transactions))
	copy(sorted, transactions)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Date.After(sorted[j].Date)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
