package services

import (
	"context"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/shyamvijaybalaji/WealthFlow/internal/budget"
	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

// ExpenseByCategory is one slice of the all-time expense breakdown.
type ExpenseByCategory struct {
	CategoryName  string     `json:"category_name"`
	CategoryIcon  string     `json:"category_icon"`
	CategoryColor string     `json:"category_color"`
	Total         core.Money `json:"total"`
}

// DashboardSummary is the single-call overview of a user's finances. Every
// monetary figure is computed server side from the ledger.
type DashboardSummary struct {
	TotalBalance       core.Money          `json:"total_balance"`
	TotalAccounts      int                 `json:"total_accounts"`
	TotalTransactions  int                 `json:"total_transactions"`
	TotalBudget        core.Money          `json:"total_budget"`
	TotalSpent         core.Money          `json:"total_spent"`
	BudgetRemaining    core.Money          `json:"budget_remaining"`
	RecentTransactions []core.Transaction  `json:"recent_transactions"`
	ExpenseByCategory  []ExpenseByCategory `json:"expense_by_category"`
}

const (
	recentTransactionsLimit = 10
	categoryBreakdownLimit  = 10
)

// DashboardService assembles the summary with the independent reads fanned
// out concurrently.
type DashboardService struct {
	store      store.Store
	aggregator *budget.Aggregator
}

func NewDashboardService(s store.Store) *DashboardService {
	return &DashboardService{
		store:      s,
		aggregator: budget.NewAggregator(s),
	}
}

// Summary builds the dashboard for one user as of now.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*DashboardSummary, error) {
	var (
		accounts   []core.Account
		txCount    int
		recent     []core.Transaction
		breakdown  []ExpenseByCategory
		budgetPart struct {
			total, spent core.Money
		}
	)

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		var err error
		accounts, err = s.store.ListAccounts(ctx, userID)
		return err
	})

	g.Go(func() error {
		var err error
		txCount, err = s.store.CountTransactions(ctx, userID)
		return err
	})

	g.Go(func() error {
		var err error
		recent, err = s.store.ListTransactions(ctx, userID, store.TxFilter{Limit: recentTransactionsLimit})
		return err
	})

	g.Go(func() error {
		var err error
		breakdown, err = s.expenseBreakdown(ctx, userID)
		return err
	})

	g.Go(func() error {
		var err error
		budgetPart.total, budgetPart.spent, err = s.budgetTotals(ctx, userID)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var totalBalance core.Money
	for _, a := range accounts {
		totalBalance = totalBalance.Add(a.Balance)
	}

	return &DashboardSummary{
		TotalBalance:       totalBalance,
		TotalAccounts:      len(accounts),
		TotalTransactions:  txCount,
		TotalBudget:        budgetPart.total,
		TotalSpent:         budgetPart.spent,
		BudgetRemaining:    budgetPart.total.Sub(budgetPart.spent),
		RecentTransactions: recent,
		ExpenseByCategory:  breakdown,
	}, nil
}

// expenseBreakdown groups all-time expense transactions by category,
// largest total first, capped at ten slices.
func (s *DashboardService) expenseBreakdown(ctx context.Context, userID string) ([]ExpenseByCategory, error) {
	txs, err := s.store.ListTransactions(ctx, userID, store.TxFilter{Type: core.TxExpense})
	if err != nil {
		return nil, err
	}

	categories, err := s.store.ListCategories(ctx, userID)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]core.Category, len(categories))
	for _, c := range categories {
		byID[c.ID] = c
	}

	totals := make(map[string]core.Money)
	for _, tx := range txs {
		if tx.CategoryID == "" {
			continue
		}
		totals[tx.CategoryID] = totals[tx.CategoryID].Add(tx.Amount)
	}

	out := make([]ExpenseByCategory, 0, len(totals))
	for id, total := range totals {
		c := byID[id]
		icon := c.Icon
		if icon == "" {
			icon = "📊"
		}
		color := c.Color
		if color == "" {
			color = "#C4C4C4"
		}
		name := c.Name
		if name == "" {
			name = "Unknown"
		}
		out = append(out, ExpenseByCategory{
			CategoryName:  name,
			CategoryIcon:  icon,
			CategoryColor: color,
			Total:         total,
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].Total.Equal(out[j].Total) {
			return out[i].Total.GreaterThan(out[j].Total)
		}
		return out[i].CategoryName < out[j].CategoryName
	})
	if len(out) > categoryBreakdownLimit {
		out = out[:categoryBreakdownLimit]
	}
	return out, nil
}

func (s *DashboardService) budgetTotals(ctx context.Context, userID string) (total, spent core.Money, err error) {
	budgets, err := s.store.ListBudgets(ctx, userID)
	if err != nil {
		return core.Money{}, core.Money{}, err
	}

	now := time.Now().UTC()
	for _, b := range budgets {
		total = total.Add(b.Amount)
		sp, err := s.aggregator.SpendFor(ctx, userID, b, now)
		if err != nil {
			return core.Money{}, core.Money{}, err
		}
		spent = spent.Add(sp)
	}
	return total, spent, nil
}
