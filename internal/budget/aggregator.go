// Package budget computes spend against budget policies. Budgets never
// store running totals; every report is derived from the transaction range
// query at read time, so a report is always consistent with the ledger.
package budget

import (
	"context"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

// Report is the evaluated state of one budget over its current window.
type Report struct {
	Budget     core.Budget       `json:"budget"`
	Spent      core.Money        `json:"spent"`
	Remaining  core.Money        `json:"remaining"`
	Percentage float64           `json:"percentage"`
	Status     core.BudgetStatus `json:"status"`
	WindowFrom time.Time         `json:"window_from"`
	WindowTo   time.Time         `json:"window_to"`
}

// Aggregator derives budget reports from the transaction store.
type Aggregator struct {
	txs store.TransactionStore
}

func NewAggregator(txs store.TransactionStore) *Aggregator {
	return &Aggregator{txs: txs}
}

// Window resolves a budget's evaluation range as of a point in time. A
// monthly budget covers 30 days from its start, a yearly one 365 days; an
// unknown period degrades to [start, asOf]. Both ends are inclusive.
func Window(period core.BudgetPeriod, start, asOf time.Time) (time.Time, time.Time) {
	switch period {
	case core.PeriodMonthly:
		return start, start.AddDate(0, 0, 30)
	case core.PeriodYearly:
		return start, start.AddDate(0, 0, 365)
	default:
		return start, asOf
	}
}

// SpendFor sums the user's expense transactions in the budget's category
// over the budget's window. Summation runs in fixed-point decimal.
func (a *Aggregator) SpendFor(ctx context.Context, userID string, b core.Budget, asOf time.Time) (core.Money, error) {
	from, to := Window(b.Period, b.StartDate, asOf)

	txs, err := a.txs.ListTransactions(ctx, userID, store.TxFilter{
		CategoryID: b.CategoryID,
		Type:       core.TxExpense,
		From:       from,
		To:         to,
	})
	if err != nil {
		return core.Money{}, err
	}

	var spent core.Money
	for _, tx := range txs {
		spent = spent.Add(tx.Amount)
	}
	return spent, nil
}

// Evaluate produces the full report for one budget. Remaining may go
// negative when the budget is blown; Percentage is a display ratio and the
// status thresholds are exceeded at 100% and warning at the budget's alert
// threshold.
func (a *Aggregator) Evaluate(ctx context.Context, userID string, b core.Budget, asOf time.Time) (Report, error) {
	spent, err := a.SpendFor(ctx, userID, b, asOf)
	if err != nil {
		return Report{}, err
	}

	from, to := Window(b.Period, b.StartDate, asOf)
	pct := spent.PercentOf(b.Amount)

	return Report{
		Budget:     b,
		Spent:      spent,
		Remaining:  b.Amount.Sub(spent),
		Percentage: pct,
		Status:     StatusFor(pct, b.AlertThreshold),
		WindowFrom: from,
		WindowTo:   to,
	}, nil
}

// EvaluateAll reports on every budget the user has, as of now.
func (a *Aggregator) EvaluateAll(ctx context.Context, userID string, budgets []core.Budget, asOf time.Time) ([]Report, error) {
	reports := make([]Report, 0, len(budgets))
	for _, b := range budgets {
		r, err := a.Evaluate(ctx, userID, b, asOf)
		if err != nil {
			return nil, err
		}
		reports = append(reports, r)
	}
	return reports, nil
}

// StatusFor classifies a percentage-used figure against an alert threshold
// expressed as a fraction in [0, 1].
func StatusFor(percentage, threshold float64) core.BudgetStatus {
	switch {
	case percentage >= 100:
		return core.StatusExceeded
	case percentage >= threshold*100:
		return core.StatusWarning
	default:
		return core.StatusOK
	}
}
