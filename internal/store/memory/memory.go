// Package memory provides an in-process store.Store used by tests and the
// "memory" backend. A single mutex guards all maps; the balance adjustment
// in CreateTransaction happens under the same critical section as the
// insert, which gives the atomicity the contract asks for.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

type Store struct {
	mu sync.RWMutex

	accounts     map[string]core.Account
	transactions map[string]core.Transaction
	categories   map[string]core.Category
	budgets      map[string]core.Budget
	investments  map[string]core.Investment
	goals        map[string]core.SavingsGoal

	exportStatus map[string]string // transaction id -> store.Export*
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		accounts:     make(map[string]core.Account),
		transactions: make(map[string]core.Transaction),
		categories:   make(map[string]core.Category),
		budgets:      make(map[string]core.Budget),
		investments:  make(map[string]core.Investment),
		goals:        make(map[string]core.SavingsGoal),
		exportStatus: make(map[string]string),
	}
}

func (s *Store) Close() error { return nil }

// Accounts

func (s *Store) CreateAccount(ctx context.Context, a *core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.accounts[a.ID] = *a
	return nil
}

func (s *Store) GetAccount(ctx context.Context, userID, id string) (*core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return nil, core.ErrNotFound
	}
	cp := a
	return &cp, nil
}

func (s *Store) ListAccounts(ctx context.Context, userID string) ([]core.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Account
	for _, a := range s.accounts {
		if a.UserID == userID {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateAccount(ctx context.Context, a *core.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.accounts[a.ID]
	if !ok || cur.UserID != a.UserID {
		return core.ErrNotFound
	}
	a.UpdatedAt = time.Now().UTC()
	s.accounts[a.ID] = *a
	return nil
}

func (s *Store) DeleteAccount(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[id]
	if !ok || a.UserID != userID {
		return core.ErrNotFound
	}
	delete(s.accounts, id)
	// Cascade: the account exclusively owns its transactions.
	for txID, tx := range s.transactions {
		if tx.AccountID == id {
			delete(s.transactions, txID)
			delete(s.exportStatus, txID)
		}
	}
	return nil
}

// Transactions

func (s *Store) CreateTransaction(ctx context.Context, tx *core.Transaction, delta core.Money) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.accounts[tx.AccountID]
	if !ok || a.UserID != tx.UserID {
		return core.ErrAccessDenied
	}
	s.transactions[tx.ID] = *tx
	s.exportStatus[tx.ID] = store.ExportPending
	a.Balance = a.Balance.Add(delta)
	a.UpdatedAt = time.Now().UTC()
	s.accounts[a.ID] = a
	return nil
}

func (s *Store) GetTransaction(ctx context.Context, userID, id string) (*core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.transactions[id]
	if !ok || tx.UserID != userID {
		return nil, core.ErrNotFound
	}
	cp := tx
	return &cp, nil
}

func matches(tx core.Transaction, f store.TxFilter) bool {
	if f.AccountID != "" && tx.AccountID != f.AccountID {
		return false
	}
	if f.CategoryID != "" && tx.CategoryID != f.CategoryID {
		return false
	}
	if f.Type != "" && tx.Type != f.Type {
		return false
	}
	if !f.From.IsZero() && tx.Date.Before(f.From) {
		return false
	}
	if !f.To.IsZero() && tx.Date.After(f.To) {
		return false
	}
	return true
}

func (s *Store) ListTransactions(ctx context.Context, userID string, f store.TxFilter) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Transaction
	for _, tx := range s.transactions {
		if tx.UserID == userID && matches(tx, f) {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (s *Store) CountTransactions(ctx context.Context, userID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, tx := range s.transactions {
		if tx.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (s *Store) UpdateTransaction(ctx context.Context, tx *core.Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.transactions[tx.ID]
	if !ok || cur.UserID != tx.UserID {
		return core.ErrNotFound
	}
	tx.UpdatedAt = time.Now().UTC()
	s.transactions[tx.ID] = *tx
	return nil
}

func (s *Store) DeleteTransaction(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	tx, ok := s.transactions[id]
	if !ok || tx.UserID != userID {
		return core.ErrNotFound
	}
	delete(s.transactions, id)
	delete(s.exportStatus, id)
	return nil
}

func (s *Store) GetTransactionForExport(ctx context.Context, id string) (*core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	tx, ok := s.transactions[id]
	if !ok {
		return nil, core.ErrNotFound
	}
	cp := tx
	return &cp, nil
}

func (s *Store) ListPendingExport(ctx context.Context, limit int) ([]core.Transaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Transaction
	for id, status := range s.exportStatus {
		if status != store.ExportPending {
			continue
		}
		if tx, ok := s.transactions[id]; ok {
			out = append(out, tx)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (s *Store) MarkExported(ctx context.Context, id string) error {
	return s.setExportStatus(id, store.ExportDone)
}

func (s *Store) MarkExportError(ctx context.Context, id string) error {
	return s.setExportStatus(id, store.ExportError)
}

func (s *Store) setExportStatus(id, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.transactions[id]; !ok {
		return core.ErrNotFound
	}
	s.exportStatus[id] = status
	return nil
}

// Categories

func (s *Store) CreateCategory(ctx context.Context, c *core.Category) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[c.ID] = *c
	return nil
}

func (s *Store) GetCategory(ctx context.Context, userID, id string) (*core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.categories[id]
	if !ok || (!c.IsSystem && c.UserID != userID) {
		return nil, core.ErrNotFound
	}
	cp := c
	return &cp, nil
}

func (s *Store) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Category
	for _, c := range s.categories {
		if c.IsSystem || c.UserID == userID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *Store) DeleteCategory(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.categories[id]
	if !ok || c.IsSystem || c.UserID != userID {
		return core.ErrNotFound
	}
	delete(s.categories, id)
	// Cascade to budgets, detach transactions.
	for bID, b := range s.budgets {
		if b.CategoryID == id {
			delete(s.budgets, bID)
		}
	}
	for txID, tx := range s.transactions {
		if tx.CategoryID == id {
			tx.CategoryID = ""
			s.transactions[txID] = tx
		}
	}
	return nil
}

// Budgets

func (s *Store) CreateBudget(ctx context.Context, b *core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, cur := range s.budgets {
		if cur.UserID == b.UserID && cur.CategoryID == b.CategoryID {
			return core.ErrDuplicateBudget
		}
	}
	s.budgets[b.ID] = *b
	return nil
}

func (s *Store) GetBudget(ctx context.Context, userID, id string) (*core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return nil, core.ErrNotFound
	}
	cp := b
	return &cp, nil
}

func (s *Store) GetBudgetByCategory(ctx context.Context, userID, categoryID string) (*core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, b := range s.budgets {
		if b.UserID == userID && b.CategoryID == categoryID {
			cp := b
			return &cp, nil
		}
	}
	return nil, core.ErrNotFound
}

func (s *Store) ListBudgets(ctx context.Context, userID string) ([]core.Budget, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Budget
	for _, b := range s.budgets {
		if b.UserID == userID {
			out = append(out, b)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateBudget(ctx context.Context, b *core.Budget) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.budgets[b.ID]
	if !ok || cur.UserID != b.UserID {
		return core.ErrNotFound
	}
	b.UpdatedAt = time.Now().UTC()
	s.budgets[b.ID] = *b
	return nil
}

func (s *Store) DeleteBudget(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.budgets[id]
	if !ok || b.UserID != userID {
		return core.ErrNotFound
	}
	delete(s.budgets, id)
	return nil
}

// Investments

func (s *Store) CreateInvestment(ctx context.Context, inv *core.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.investments[inv.ID] = *inv
	return nil
}

func (s *Store) GetInvestment(ctx context.Context, userID, id string) (*core.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inv, ok := s.investments[id]
	if !ok || inv.UserID != userID {
		return nil, core.ErrNotFound
	}
	cp := inv
	return &cp, nil
}

func (s *Store) ListInvestments(ctx context.Context, userID string) ([]core.Investment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.Investment
	for _, inv := range s.investments {
		if inv.UserID == userID {
			out = append(out, inv)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateInvestment(ctx context.Context, inv *core.Investment) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.investments[inv.ID]
	if !ok || cur.UserID != inv.UserID {
		return core.ErrNotFound
	}
	inv.UpdatedAt = time.Now().UTC()
	s.investments[inv.ID] = *inv
	return nil
}

func (s *Store) DeleteInvestment(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.investments[id]
	if !ok || inv.UserID != userID {
		return core.ErrNotFound
	}
	delete(s.investments, id)
	return nil
}

// Savings goals

func (s *Store) CreateSavingsGoal(ctx context.Context, g *core.SavingsGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.goals[g.ID] = *g
	return nil
}

func (s *Store) GetSavingsGoal(ctx context.Context, userID, id string) (*core.SavingsGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	g, ok := s.goals[id]
	if !ok || g.UserID != userID {
		return nil, core.ErrNotFound
	}
	cp := g
	return &cp, nil
}

func (s *Store) ListSavingsGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []core.SavingsGoal
	for _, g := range s.goals {
		if g.UserID == userID {
			out = append(out, g)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateSavingsGoal(ctx context.Context, g *core.SavingsGoal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.goals[g.ID]
	if !ok || cur.UserID != g.UserID {
		return core.ErrNotFound
	}
	g.UpdatedAt = time.Now().UTC()
	s.goals[g.ID] = *g
	return nil
}

func (s *Store) DeleteSavingsGoal(ctx context.Context, userID, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	g, ok := s.goals[id]
	if !ok || g.UserID != userID {
		return core.ErrNotFound
	}
	delete(s.goals, id)
	return nil
}
