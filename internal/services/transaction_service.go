// Package services orchestrates the computation layer behind the HTTP
// handlers: ledger writes with export fan-out, and read-side aggregation.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/shyamvijaybalaji/WealthFlow/internal/amqp"
	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/ledger"
	applog "github.com/shyamvijaybalaji/WealthFlow/internal/log"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

// TransactionService records transactions through the ledger and enqueues
// the spreadsheet export. The local write is the source of truth: a publish
// failure is logged and the request still succeeds, the periodic worker
// sweep picks the row up later.
type TransactionService struct {
	store      store.Store
	ledger     *ledger.Ledger
	amqpClient *amqp.Client
}

func NewTransactionService(s store.Store, l *ledger.Ledger, amqpClient *amqp.Client) *TransactionService {
	return &TransactionService{
		store:      s,
		ledger:     l,
		amqpClient: amqpClient,
	}
}

// Record applies the intent through the ledger and publishes a sync
// message for the export worker.
func (s *TransactionService) Record(ctx context.Context, userID string, intent core.TransactionIntent) (*core.Transaction, error) {
	tx, err := s.ledger.Apply(ctx, userID, intent)
	if err != nil {
		return nil, err
	}

	applog.NewStructuredLogger(applog.FromContext(ctx)).
		LogTransactionRecorded(ctx, tx.ID, tx.AccountID, string(tx.Type), tx.Amount.String())

	if err := s.publishSyncMessage(ctx, tx.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"transaction_id", tx.ID, "error", err)
		// The transaction is saved locally; the pending sweep will export it.
	}

	return tx, nil
}

// Update edits a transaction's descriptive fields and re-enqueues the
// export so the mirror reflects the change.
func (s *TransactionService) Update(ctx context.Context, tx *core.Transaction) error {
	if err := s.store.UpdateTransaction(ctx, tx); err != nil {
		return err
	}

	if err := s.publishSyncMessage(ctx, tx.ID); err != nil {
		slog.ErrorContext(ctx, "Failed to publish sync message",
			"transaction_id", tx.ID, "error", err)
	}

	return nil
}

// Delete removes a transaction.
func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	return s.store.DeleteTransaction(ctx, userID, id)
}

func (s *TransactionService) publishSyncMessage(ctx context.Context, transactionID string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}

	return s.amqpClient.PublishTransactionSync(ctx, transactionID)
}

// Close releases the AMQP connection. The store is owned by the caller.
func (s *TransactionService) Close() error {
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			return fmt.Errorf("close amqp client: %w", err)
		}
	}
	return nil
}
