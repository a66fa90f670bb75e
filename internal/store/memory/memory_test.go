package memory

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

func newAccount(id, userID string) *core.Account {
	return &core.Account{
		ID: id, UserID: userID, Name: "Checking",
		Type: core.AccountChecking, Balance: core.MustMoney("100.00"),
	}
}

func newTx(id, userID, accountID, categoryID string) *core.Transaction {
	return &core.Transaction{
		ID: id, UserID: userID, AccountID: accountID, CategoryID: categoryID,
		Amount: core.MustMoney("25.00"), Description: "test",
		Type: core.TxExpense, Date: time.Now().UTC(), CreatedAt: time.Now().UTC(),
	}
}

func TestStore_OwnershipScoping(t *testing.T) {
	st := New()
	ctx := context.Background()
	st.CreateAccount(ctx, newAccount("a1", "alice"))

	// Another user's reads and writes all come back as not found.
	if _, err := st.GetAccount(ctx, "bob", "a1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.DeleteAccount(ctx, "bob", "a1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if err := st.UpdateAccount(ctx, newAccount("a1", "bob")); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	accounts, _ := st.ListAccounts(ctx, "bob")
	if len(accounts) != 0 {
		t.Fatalf("expected no accounts for bob, got %d", len(accounts))
	}
}

func TestStore_CreateTransaction_AdjustsBalanceAtomically(t *testing.T) {
	st := New()
	ctx := context.Background()
	st.CreateAccount(ctx, newAccount("a1", "alice"))

	tx := newTx("t1", "alice", "a1", "")
	if err := st.CreateTransaction(ctx, tx, core.MustMoney("25.00").Neg()); err != nil {
		t.Fatalf("create transaction: %v", err)
	}

	a, _ := st.GetAccount(ctx, "alice", "a1")
	if a.Balance.String() != "75.00" {
		t.Fatalf("expected balance 75.00, got %s", a.Balance)
	}
}

func TestStore_CreateTransaction_ForeignAccount(t *testing.T) {
	st := New()
	ctx := context.Background()
	st.CreateAccount(ctx, newAccount("a1", "alice"))

	err := st.CreateTransaction(ctx, newTx("t1", "bob", "a1", ""), core.Money{})
	if !errors.Is(err, core.ErrAccessDenied) {
		t.Fatalf("expected ErrAccessDenied, got %v", err)
	}
}

func TestStore_DeleteAccount_CascadesTransactions(t *testing.T) {
	st := New()
	ctx := context.Background()
	st.CreateAccount(ctx, newAccount("a1", "alice"))
	st.CreateAccount(ctx, newAccount("a2", "alice"))
	st.CreateTransaction(ctx, newTx("t1", "alice", "a1", ""), core.Money{})
	st.CreateTransaction(ctx, newTx("t2", "alice", "a2", ""), core.Money{})

	if err := st.DeleteAccount(ctx, "alice", "a1"); err != nil {
		t.Fatalf("delete account: %v", err)
	}

	if _, err := st.GetTransaction(ctx, "alice", "t1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected t1 gone, got %v", err)
	}
	if _, err := st.GetTransaction(ctx, "alice", "t2"); err != nil {
		t.Fatalf("expected t2 to survive, got %v", err)
	}
	// The cascade also clears export bookkeeping.
	pending, _ := st.ListPendingExport(ctx, 10)
	if len(pending) != 1 || pending[0].ID != "t2" {
		t.Fatalf("expected only t2 pending, got %+v", pending)
	}
}

func TestStore_DeleteCategory_CascadesBudgetsAndDetachesTransactions(t *testing.T) {
	st := New()
	ctx := context.Background()
	st.CreateAccount(ctx, newAccount("a1", "alice"))
	st.CreateCategory(ctx, &core.Category{ID: "c1", UserID: "alice", Name: "Groceries", Type: core.CategoryExpense})
	st.CreateBudget(ctx, &core.Budget{ID: "b1", UserID: "alice", CategoryID: "c1", Amount: core.MustMoney("500.00"), Period: core.PeriodMonthly, AlertThreshold: 0.8, StartDate: time.Now()})
	st.CreateTransaction(ctx, newTx("t1", "alice", "a1", "c1"), core.Money{})

	if err := st.DeleteCategory(ctx, "alice", "c1"); err != nil {
		t.Fatalf("delete category: %v", err)
	}

	if _, err := st.GetBudget(ctx, "alice", "b1"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected budget cascade, got %v", err)
	}
	tx, err := st.GetTransaction(ctx, "alice", "t1")
	if err != nil {
		t.Fatalf("expected transaction to survive, got %v", err)
	}
	if tx.CategoryID != "" {
		t.Fatalf("expected transaction detached, got category %q", tx.CategoryID)
	}
}

func TestStore_SystemCategoriesVisibleToEveryone(t *testing.T) {
	st := New()
	ctx := context.Background()
	st.CreateCategory(ctx, &core.Category{ID: "sys", Name: "Salary", Type: core.CategoryIncome, IsSystem: true})
	st.CreateCategory(ctx, &core.Category{ID: "own", UserID: "alice", Name: "Hobby", Type: core.CategoryExpense})

	if _, err := st.GetCategory(ctx, "bob", "sys"); err != nil {
		t.Fatalf("expected system category visible, got %v", err)
	}
	if _, err := st.GetCategory(ctx, "bob", "own"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected alice's category hidden, got %v", err)
	}
	// System categories cannot be deleted through the user API.
	if err := st.DeleteCategory(ctx, "bob", "sys"); !errors.Is(err, core.ErrNotFound) {
		t.Fatalf("expected system category undeletable, got %v", err)
	}
}

func TestStore_CreateBudget_DuplicateCategory(t *testing.T) {
	st := New()
	ctx := context.Background()
	b := &core.Budget{ID: "b1", UserID: "alice", CategoryID: "c1", Amount: core.MustMoney("100.00"), Period: core.PeriodMonthly, AlertThreshold: 0.8, StartDate: time.Now()}
	if err := st.CreateBudget(ctx, b); err != nil {
		t.Fatalf("create budget: %v", err)
	}

	dup := *b
	dup.ID = "b2"
	if err := st.CreateBudget(ctx, &dup); !errors.Is(err, core.ErrDuplicateBudget) {
		t.Fatalf("expected ErrDuplicateBudget, got %v", err)
	}

	// Same category for a different user is fine.
	other := *b
	other.ID = "b3"
	other.UserID = "bob"
	if err := st.CreateBudget(ctx, &other); err != nil {
		t.Fatalf("expected cross-user budget to succeed, got %v", err)
	}
}

func TestStore_ListTransactions_FilterAndPaging(t *testing.T) {
	st := New()
	ctx := context.Background()
	st.CreateAccount(ctx, newAccount("a1", "alice"))

	base := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		tx := newTx(string(rune('a'+i)), "alice", "a1", "c1")
		tx.Date = base.AddDate(0, 0, i)
		st.CreateTransaction(ctx, tx, core.Money{})
	}

	// Newest first.
	all, _ := st.ListTransactions(ctx, "alice", store.TxFilter{})
	if len(all) != 5 || all[0].ID != "e" {
		t.Fatalf("expected newest first, got %+v", all)
	}

	// Inclusive window.
	windowed, _ := st.ListTransactions(ctx, "alice", store.TxFilter{
		From: base.AddDate(0, 0, 1), To: base.AddDate(0, 0, 3),
	})
	if len(windowed) != 3 {
		t.Fatalf("expected 3 in window, got %d", len(windowed))
	}

	// Offset past the end is empty, not an error.
	page, err := st.ListTransactions(ctx, "alice", store.TxFilter{Offset: 10})
	if err != nil || len(page) != 0 {
		t.Fatalf("expected empty page, got %v (err=%v)", page, err)
	}

	paged, _ := st.ListTransactions(ctx, "alice", store.TxFilter{Limit: 2, Offset: 1})
	if len(paged) != 2 || paged[0].ID != "d" {
		t.Fatalf("expected page [d, c], got %+v", paged)
	}
}
