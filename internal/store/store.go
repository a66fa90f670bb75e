// Package store defines the persistence contract the computation layer
// runs against. Every accessor is ownership-scoped: reads and writes for a
// record owned by another user fail with core.ErrNotFound, never with a
// distinguishable error.
package store

import (
	"context"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

// ExportPending and friends track the Sheets export state of a transaction.
const (
	ExportPending = "pending"
	ExportDone    = "synced"
	ExportError   = "error"
)

// TxFilter narrows transaction range queries. Zero fields are ignored.
// From/To are inclusive on both ends. Results are ordered newest first.
type TxFilter struct {
	AccountID  string
	CategoryID string
	Type       core.TransactionType
	From       time.Time
	To         time.Time
	Limit      int
	Offset     int
}

type AccountStore interface {
	CreateAccount(ctx context.Context, a *core.Account) error
	GetAccount(ctx context.Context, userID, id string) (*core.Account, error)
	ListAccounts(ctx context.Context, userID string) ([]core.Account, error)
	UpdateAccount(ctx context.Context, a *core.Account) error
	// DeleteAccount cascades to the account's transactions.
	DeleteAccount(ctx context.Context, userID, id string) error
}

type TransactionStore interface {
	// CreateTransaction persists tx and adjusts the owning account's
	// balance by delta as a single atomic unit: a reader never observes
	// one without the other. Returns core.ErrAccessDenied when the account
	// does not exist or belongs to another user.
	CreateTransaction(ctx context.Context, tx *core.Transaction, delta core.Money) error
	GetTransaction(ctx context.Context, userID, id string) (*core.Transaction, error)
	ListTransactions(ctx context.Context, userID string, f TxFilter) ([]core.Transaction, error)
	CountTransactions(ctx context.Context, userID string) (int, error)
	// UpdateTransaction edits descriptive fields only; it never re-adjusts
	// the balance applied at creation.
	UpdateTransaction(ctx context.Context, tx *core.Transaction) error
	DeleteTransaction(ctx context.Context, userID, id string) error

	// Export bookkeeping, consumed by the worker. Lookups are unscoped
	// because the worker runs without a user context.
	GetTransactionForExport(ctx context.Context, id string) (*core.Transaction, error)
	ListPendingExport(ctx context.Context, limit int) ([]core.Transaction, error)
	MarkExported(ctx context.Context, id string) error
	MarkExportError(ctx context.Context, id string) error
}

type CategoryStore interface {
	CreateCategory(ctx context.Context, c *core.Category) error
	// GetCategory resolves a user category or a system category; other
	// users' categories are invisible.
	GetCategory(ctx context.Context, userID, id string) (*core.Category, error)
	ListCategories(ctx context.Context, userID string) ([]core.Category, error)
	// DeleteCategory cascades to the category's budgets and detaches its
	// transactions.
	DeleteCategory(ctx context.Context, userID, id string) error
}

type BudgetStore interface {
	// CreateBudget enforces one budget per (user, category) and returns
	// core.ErrDuplicateBudget on violation.
	CreateBudget(ctx context.Context, b *core.Budget) error
	GetBudget(ctx context.Context, userID, id string) (*core.Budget, error)
	GetBudgetByCategory(ctx context.Context, userID, categoryID string) (*core.Budget, error)
	ListBudgets(ctx context.Context, userID string) ([]core.Budget, error)
	UpdateBudget(ctx context.Context, b *core.Budget) error
	DeleteBudget(ctx context.Context, userID, id string) error
}

type InvestmentStore interface {
	CreateInvestment(ctx context.Context, inv *core.Investment) error
	GetInvestment(ctx context.Context, userID, id string) (*core.Investment, error)
	ListInvestments(ctx context.Context, userID string) ([]core.Investment, error)
	UpdateInvestment(ctx context.Context, inv *core.Investment) error
	DeleteInvestment(ctx context.Context, userID, id string) error
}

type SavingsGoalStore interface {
	CreateSavingsGoal(ctx context.Context, g *core.SavingsGoal) error
	GetSavingsGoal(ctx context.Context, userID, id string) (*core.SavingsGoal, error)
	ListSavingsGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error)
	UpdateSavingsGoal(ctx context.Context, g *core.SavingsGoal) error
	DeleteSavingsGoal(ctx context.Context, userID, id string) error
}

// Store is the full persistence surface a backend must provide.
type Store interface {
	AccountStore
	TransactionStore
	CategoryStore
	BudgetStore
	InvestmentStore
	SavingsGoalStore

	Close() error
}
