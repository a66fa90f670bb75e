package insights

import (
	"context"
	"testing"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store/memory"
)

func seedTx(t *testing.T, st *memory.Store, id string, txType core.TransactionType, categoryID, amount string, date time.Time) {
	t.Helper()
	tx := &core.Transaction{
		ID:          id,
		UserID:      "u1",
		AccountID:   "acc-u1",
		CategoryID:  categoryID,
		Amount:      core.MustMoney(amount),
		Description: "seed",
		Type:        txType,
		Date:        date,
	}
	if err := st.CreateTransaction(context.Background(), tx, core.Money{}); err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
}

func newSeededStore(t *testing.T) *memory.Store {
	t.Helper()
	st := memory.New()
	ctx := context.Background()
	st.CreateAccount(ctx, &core.Account{ID: "acc-u1", UserID: "u1", Name: "Checking", Type: core.AccountChecking})
	st.CreateCategory(ctx, &core.Category{ID: "groceries", UserID: "u1", Name: "Groceries", Type: core.CategoryExpense})
	st.CreateCategory(ctx, &core.Category{ID: "travel", UserID: "u1", Name: "Travel", Type: core.CategoryExpense})
	return st
}

func TestAnalyzer_Snapshot(t *testing.T) {
	st := newSeededStore(t)
	asOf := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)

	seedTx(t, st, "i1", core.TxIncome, "", "2000.00", asOf.AddDate(0, 0, -5))
	seedTx(t, st, "e1", core.TxExpense, "groceries", "400.00", asOf.AddDate(0, 0, -3))
	seedTx(t, st, "e2", core.TxExpense, "groceries", "200.00", asOf.AddDate(0, 0, -2))
	seedTx(t, st, "e3", core.TxExpense, "travel", "150.00", asOf.AddDate(0, 0, -1))
	// Outside the trailing 30 days: ignored.
	seedTx(t, st, "old", core.TxExpense, "groceries", "9999.00", asOf.AddDate(0, 0, -45))

	snap, err := NewAnalyzer(st).Snapshot(context.Background(), "u1", asOf)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	if snap.Income.String() != "2000.00" {
		t.Fatalf("expected income 2000.00, got %s", snap.Income)
	}
	if snap.Expenses.String() != "750.00" {
		t.Fatalf("expected expenses 750.00, got %s", snap.Expenses)
	}
	if snap.SavingsRate != 62.5 {
		t.Fatalf("expected savings rate 62.5, got %.2f", snap.SavingsRate)
	}

	if len(snap.TopCategories) != 2 {
		t.Fatalf("expected 2 categories, got %d", len(snap.TopCategories))
	}
	if snap.TopCategories[0].Category != "Groceries" || snap.TopCategories[0].Amount.String() != "600.00" {
		t.Fatalf("unexpected top category: %+v", snap.TopCategories[0])
	}
	if snap.TopCategories[1].Category != "Travel" {
		t.Fatalf("unexpected second category: %+v", snap.TopCategories[1])
	}
}

func TestAnalyzer_Snapshot_TopFiveWithNameTieBreak(t *testing.T) {
	st := newSeededStore(t)
	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	ctx := context.Background()
	names := []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo", "Foxtrot"}
	for i, n := range names {
		id := "cat-" + n
		st.CreateCategory(ctx, &core.Category{ID: id, UserID: "u1", Name: n, Type: core.CategoryExpense})
		seedTx(t, st, "e-"+n, core.TxExpense, id, "50.00", asOf.AddDate(0, 0, -i-1))
	}

	snap, err := NewAnalyzer(st).Snapshot(ctx, "u1", asOf)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.TopCategories) != 5 {
		t.Fatalf("expected top 5, got %d", len(snap.TopCategories))
	}
	// Equal amounts fall back to name order, so Foxtrot drops off.
	for i, want := range []string{"Alpha", "Bravo", "Charlie", "Delta", "Echo"} {
		if snap.TopCategories[i].Category != want {
			t.Fatalf("position %d: expected %s, got %s", i, want, snap.TopCategories[i].Category)
		}
	}
}

func TestAnalyzer_Snapshot_ZeroIncome(t *testing.T) {
	st := newSeededStore(t)
	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	seedTx(t, st, "e1", core.TxExpense, "groceries", "100.00", asOf.AddDate(0, 0, -1))

	snap, err := NewAnalyzer(st).Snapshot(context.Background(), "u1", asOf)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if snap.SavingsRate != 0 {
		t.Fatalf("expected savings rate 0 with no income, got %.2f", snap.SavingsRate)
	}
}

func TestAnalyzer_BudgetAlerts(t *testing.T) {
	st := newSeededStore(t)
	ctx := context.Background()
	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	start := asOf.AddDate(0, 0, -10)

	st.CreateBudget(ctx, &core.Budget{
		ID: "b1", UserID: "u1", CategoryID: "groceries",
		Amount: core.MustMoney("500.00"), Period: core.PeriodMonthly,
		AlertThreshold: 0.8, StartDate: start,
	})
	st.CreateBudget(ctx, &core.Budget{
		ID: "b2", UserID: "u1", CategoryID: "travel",
		Amount: core.MustMoney("1000.00"), Period: core.PeriodMonthly,
		AlertThreshold: 0.8, StartDate: start,
	})

	seedTx(t, st, "e1", core.TxExpense, "groceries", "450.00", asOf.AddDate(0, 0, -2))
	seedTx(t, st, "e2", core.TxExpense, "travel", "100.00", asOf.AddDate(0, 0, -2))

	snap, err := NewAnalyzer(st).Snapshot(ctx, "u1", asOf)
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if len(snap.BudgetAlerts) != 1 {
		t.Fatalf("expected 1 alert, got %+v", snap.BudgetAlerts)
	}
	a := snap.BudgetAlerts[0]
	if a.Category != "Groceries" || a.Percentage != 90.0 {
		t.Fatalf("unexpected alert: %+v", a)
	}
	if a.Spent.String() != "450.00" || a.Limit.String() != "500.00" {
		t.Fatalf("unexpected alert amounts: %+v", a)
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	st := newSeededStore(t)
	asOf := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	seedTx(t, st, "i1", core.TxIncome, "", "1000.00", asOf.AddDate(0, 0, -1))
	seedTx(t, st, "e1", core.TxExpense, "groceries", "700.00", asOf.AddDate(0, 0, -1))

	snap, generated, err := NewAnalyzer(st).Analyze(context.Background(), "u1", asOf)
	if err != nil {
		t.Fatalf("analyze: %v", err)
	}
	if snap.SavingsRate != 30.0 {
		t.Fatalf("expected savings rate 30.0, got %.2f", snap.SavingsRate)
	}
	if len(generated) == 0 {
		t.Fatal("expected at least one insight")
	}
	if generated[0].Title != "Excellent Savings!" {
		t.Fatalf("expected savings insight first, got %q", generated[0].Title)
	}
}
