// Package ledger records money movements against accounts. It is the only
// component that mutates account balances, and it serializes writes per
// account so the invariant new_balance = old_balance + delta holds under
// concurrency.
package ledger

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

// Ledger turns TransactionIntents into persisted Transactions. A per-account
// mutex keeps the read-adjust-write of the balance atomic with respect to
// other writers on the same account, so store backends without row locking
// stay correct under composition.
type Ledger struct {
	store store.Store

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func New(s store.Store) *Ledger {
	return &Ledger{
		store: s,
		locks: make(map[string]*sync.Mutex),
	}
}

// Delta maps a transaction type and magnitude to a signed balance
// adjustment. Income credits, expense debits, transfer leaves the balance
// untouched because the counterparty leg is out of scope for a single-entry
// record.
func Delta(t core.TransactionType, amount core.Money) core.Money {
	switch t {
	case core.TxIncome:
		return amount
	case core.TxExpense:
		return amount.Neg()
	default:
		return core.Money{}
	}
}

// Apply validates intent, computes the balance delta, and persists the
// transaction together with the balance adjustment. Returns
// core.ErrAccessDenied when the account does not exist or belongs to
// another user.
func (l *Ledger) Apply(ctx context.Context, userID string, intent core.TransactionIntent) (*core.Transaction, error) {
	if err := intent.Validate(); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	date := intent.Date
	if date.IsZero() {
		date = now
	}

	tx := &core.Transaction{
		ID:          uuid.NewString(),
		UserID:      userID,
		AccountID:   intent.AccountID,
		CategoryID:  intent.CategoryID,
		Amount:      intent.Amount,
		Description: intent.Description,
		Merchant:    intent.Merchant,
		Type:        intent.Type,
		Date:        date.UTC(),
		Tags:        intent.Tags,
		Notes:       intent.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	delta := Delta(intent.Type, intent.Amount)

	lock := l.accountLock(intent.AccountID)
	lock.Lock()
	defer lock.Unlock()

	if err := l.store.CreateTransaction(ctx, tx, delta); err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "Ledger entry applied",
		"transaction_id", tx.ID,
		"account_id", tx.AccountID,
		"transaction_type", string(tx.Type),
		"delta", delta.String())

	return tx, nil
}

func (l *Ledger) accountLock(accountID string) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	lock, ok := l.locks[accountID]
	if !ok {
		lock = &sync.Mutex{}
		l.locks[accountID] = lock
	}
	return lock
}
