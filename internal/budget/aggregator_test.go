package budget

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store/memory"
)

func seedExpense(t *testing.T, st *memory.Store, id, userID, categoryID, amount string, date time.Time) {
	t.Helper()
	a := &core.Account{ID: "acc-" + userID, UserID: userID, Name: "Checking", Type: core.AccountChecking}
	st.CreateAccount(context.Background(), a)
	tx := &core.Transaction{
		ID:          id,
		UserID:      userID,
		AccountID:   a.ID,
		CategoryID:  categoryID,
		Amount:      core.MustMoney(amount),
		Description: "seed",
		Type:        core.TxExpense,
		Date:        date,
	}
	if err := st.CreateTransaction(context.Background(), tx, core.Money{}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
}

func TestWindow(t *testing.T) {
	start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	asOf := time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		period core.BudgetPeriod
		to     time.Time
	}{
		{core.PeriodMonthly, start.AddDate(0, 0, 30)},
		{core.PeriodYearly, start.AddDate(0, 0, 365)},
		{core.BudgetPeriod("unknown"), asOf},
	}
	for _, tc := range cases {
		from, to := Window(tc.period, start, asOf)
		if !from.Equal(start) || !to.Equal(tc.to) {
			t.Fatalf("%s: expected [%s, %s], got [%s, %s]", tc.period, start, tc.to, from, to)
		}
	}
}

func TestAggregator_Evaluate_ExceededBudget(t *testing.T) {
	st := memory.New()
	a := NewAggregator(st)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	b := core.Budget{
		ID:             "b1",
		UserID:         "u1",
		CategoryID:     "groceries",
		Amount:         core.MustMoney("500.00"),
		Period:         core.PeriodMonthly,
		AlertThreshold: 0.8,
		StartDate:      start,
	}

	// Three 200.00 expenses inside the window.
	for i, id := range []string{"t1", "t2", "t3"} {
		seedExpense(t, st, id, "u1", "groceries", "200.00", start.AddDate(0, 0, i+1))
	}
	// Outside the window and outside the category: both ignored.
	seedExpense(t, st, "t4", "u1", "groceries", "999.00", start.AddDate(0, 0, 40))
	seedExpense(t, st, "t5", "u1", "travel", "999.00", start.AddDate(0, 0, 2))

	r, err := a.Evaluate(context.Background(), "u1", b, start.AddDate(0, 0, 10))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if r.Spent.String() != "600.00" {
		t.Fatalf("expected spent 600.00, got %s", r.Spent)
	}
	if r.Remaining.String() != "-100.00" {
		t.Fatalf("expected remaining -100.00, got %s", r.Remaining)
	}
	if r.Percentage != 120.0 {
		t.Fatalf("expected 120.0%%, got %.1f", r.Percentage)
	}
	if r.Status != core.StatusExceeded {
		t.Fatalf("expected exceeded, got %s", r.Status)
	}
}

func TestAggregator_SpendFor_RepeatableAsOf(t *testing.T) {
	st := memory.New()
	a := NewAggregator(st)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	b := core.Budget{CategoryID: "groceries", Amount: core.MustMoney("500.00"), Period: core.PeriodMonthly, AlertThreshold: 0.8, StartDate: start}
	seedExpense(t, st, "t1", "u1", "groceries", "200.00", start.AddDate(0, 0, 2))
	asOf := start.AddDate(0, 0, 10)

	first, err := a.SpendFor(context.Background(), "u1", b, asOf)
	if err != nil {
		t.Fatalf("spend for: %v", err)
	}
	second, err := a.SpendFor(context.Background(), "u1", b, asOf)
	if err != nil {
		t.Fatalf("spend for: %v", err)
	}
	// Without intervening writes, the same asOf must produce the same figure.
	if first.String() != second.String() {
		t.Fatalf("repeated evaluation diverged: %s vs %s", first, second)
	}
}

func TestReport_FieldNames(t *testing.T) {
	b, err := json.Marshal(Report{})
	if err != nil {
		t.Fatalf("marshal report: %v", err)
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(b, &keys); err != nil {
		t.Fatalf("unmarshal report: %v", err)
	}
	for _, want := range []string{"budget", "spent", "remaining", "percentage", "status"} {
		if _, ok := keys[want]; !ok {
			t.Fatalf("missing field %q in %s", want, b)
		}
	}
}

func TestAggregator_Evaluate_IncomeNeverCounts(t *testing.T) {
	st := memory.New()
	a := NewAggregator(st)

	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	st.CreateAccount(context.Background(), &core.Account{ID: "acc-u1", UserID: "u1", Name: "x", Type: core.AccountChecking})
	st.CreateTransaction(context.Background(), &core.Transaction{
		ID: "inc1", UserID: "u1", AccountID: "acc-u1", CategoryID: "groceries",
		Amount: core.MustMoney("400.00"), Description: "refund", Type: core.TxIncome,
		Date: start.AddDate(0, 0, 1),
	}, core.Money{})

	b := core.Budget{CategoryID: "groceries", Amount: core.MustMoney("500.00"), Period: core.PeriodMonthly, AlertThreshold: 0.8, StartDate: start}
	r, err := a.Evaluate(context.Background(), "u1", b, start.AddDate(0, 0, 5))
	if err != nil {
		t.Fatalf("evaluate: %v", err)
	}
	if !r.Spent.IsZero() {
		t.Fatalf("expected zero spend, got %s", r.Spent)
	}
	if r.Status != core.StatusOK {
		t.Fatalf("expected ok, got %s", r.Status)
	}
}

func TestStatusFor(t *testing.T) {
	cases := []struct {
		pct, threshold float64
		want           core.BudgetStatus
	}{
		{0, 0.8, core.StatusOK},
		{79.9, 0.8, core.StatusOK},
		{80.0, 0.8, core.StatusWarning},
		{99.9, 0.8, core.StatusWarning},
		{100.0, 0.8, core.StatusExceeded},
		{120.0, 0.8, core.StatusExceeded},
		{100.0, 0, core.StatusExceeded}, // exceeded wins over a zero threshold
		{50.0, 0.5, core.StatusWarning},
	}
	for _, tc := range cases {
		if got := StatusFor(tc.pct, tc.threshold); got != tc.want {
			t.Fatalf("pct=%.1f threshold=%.2f: expected %s, got %s", tc.pct, tc.threshold, tc.want, got)
		}
	}
}

func TestAggregator_EvaluateAll(t *testing.T) {
	st := memory.New()
	a := NewAggregator(st)
	start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

	budgets := []core.Budget{
		{ID: "b1", CategoryID: "groceries", Amount: core.MustMoney("500.00"), Period: core.PeriodMonthly, AlertThreshold: 0.8, StartDate: start},
		{ID: "b2", CategoryID: "travel", Amount: core.MustMoney("200.00"), Period: core.PeriodYearly, AlertThreshold: 0.8, StartDate: start},
	}
	reports, err := a.EvaluateAll(context.Background(), "u1", budgets, start.AddDate(0, 0, 3))
	if err != nil {
		t.Fatalf("evaluate all: %v", err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	for _, r := range reports {
		if r.Status != core.StatusOK || !r.Spent.IsZero() {
			t.Fatalf("expected pristine budget, got %+v", r)
		}
	}
}
