// Package insights derives rule-based guidance from a user's recent
// financial activity. The engine is deterministic: a snapshot of the
// trailing 30 days feeds a fixed, ordered rule list, and identical
// snapshots always produce identical insights.
package insights

import (
	"context"
	"sort"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/budget"
	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

// CategorySpend is one category's expense total over the snapshot window.
type CategorySpend struct {
	Category string     `json:"category"`
	Amount   core.Money `json:"amount"`
}

// BudgetAlert flags a budget whose spend has crossed its alert threshold.
type BudgetAlert struct {
	Category   string     `json:"category"`
	Percentage float64    `json:"percentage"`
	Spent      core.Money `json:"spent"`
	Limit      core.Money `json:"limit"`
}

// Snapshot is the trailing-30-day view the rules evaluate.
type Snapshot struct {
	TopCategories []CategorySpend `json:"top_spending_categories"`
	Income        core.Money      `json:"monthly_income"`
	Expenses      core.Money      `json:"monthly_expenses"`
	SavingsRate   float64         `json:"savings_rate"`
	BudgetAlerts  []BudgetAlert   `json:"budget_alerts"`
}

// Insight is one piece of generated guidance.
type Insight struct {
	Type    string `json:"type"`
	Title   string `json:"title"`
	Message string `json:"message"`
	Icon    string `json:"icon"`
}

// Analyzer assembles snapshots from the store.
type Analyzer struct {
	store      store.Store
	aggregator *budget.Aggregator
}

func NewAnalyzer(s store.Store) *Analyzer {
	return &Analyzer{
		store:      s,
		aggregator: budget.NewAggregator(s),
	}
}

const snapshotWindow = 30 * 24 * time.Hour

// Snapshot builds the trailing-30-day view as of asOf. Category totals are
// summed in fixed-point decimal and the top five expense categories are
// reported, largest first with name as the tie-break.
func (a *Analyzer) Snapshot(ctx context.Context, userID string, asOf time.Time) (Snapshot, error) {
	since := asOf.Add(-snapshotWindow)

	txs, err := a.store.ListTransactions(ctx, userID, store.TxFilter{From: since, To: asOf})
	if err != nil {
		return Snapshot{}, err
	}

	categories, err := a.store.ListCategories(ctx, userID)
	if err != nil {
		return Snapshot{}, err
	}
	names := make(map[string]string, len(categories))
	for _, c := range categories {
		names[c.ID] = c.Name
	}

	var income, expenses core.Money
	byCategory := make(map[string]core.Money)

	for _, tx := range txs {
		switch tx.Type {
		case core.TxIncome:
			income = income.Add(tx.Amount)
		case core.TxExpense:
			expenses = expenses.Add(tx.Amount)
			if tx.CategoryID != "" {
				byCategory[tx.CategoryID] = byCategory[tx.CategoryID].Add(tx.Amount)
			}
		}
	}

	top := make([]CategorySpend, 0, len(byCategory))
	for id, amount := range byCategory {
		name, ok := names[id]
		if !ok {
			name = "Unknown"
		}
		top = append(top, CategorySpend{Category: name, Amount: amount})
	}
	sort.Slice(top, func(i, j int) bool {
		if !top[i].Amount.Equal(top[j].Amount) {
			return top[i].Amount.GreaterThan(top[j].Amount)
		}
		return top[i].Category < top[j].Category
	})
	if len(top) > 5 {
		top = top[:5]
	}

	alerts, err := a.budgetAlerts(ctx, userID, names, asOf)
	if err != nil {
		return Snapshot{}, err
	}

	return Snapshot{
		TopCategories: top,
		Income:        income,
		Expenses:      expenses,
		SavingsRate:   income.Sub(expenses).PercentOf(income),
		BudgetAlerts:  alerts,
	}, nil
}

func (a *Analyzer) budgetAlerts(ctx context.Context, userID string, names map[string]string, asOf time.Time) ([]BudgetAlert, error) {
	budgets, err := a.store.ListBudgets(ctx, userID)
	if err != nil {
		return nil, err
	}

	var alerts []BudgetAlert
	for _, b := range budgets {
		spent, err := a.aggregator.SpendFor(ctx, userID, b, asOf)
		if err != nil {
			return nil, err
		}
		pct := spent.PercentOf(b.Amount)
		if pct < b.AlertThreshold*100 {
			continue
		}
		name, ok := names[b.CategoryID]
		if !ok {
			name = "Unknown"
		}
		alerts = append(alerts, BudgetAlert{
			Category:   name,
			Percentage: pct,
			Spent:      spent,
			Limit:      b.Amount,
		})
	}
	return alerts, nil
}

// Analyze builds the snapshot and runs the rule list over it.
func (a *Analyzer) Analyze(ctx context.Context, userID string, asOf time.Time) (Snapshot, []Insight, error) {
	snap, err := a.Snapshot(ctx, userID, asOf)
	if err != nil {
		return Snapshot{}, nil, err
	}
	return snap, Generate(snap), nil
}
