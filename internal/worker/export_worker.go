// Package worker drains the transaction export queue into the spreadsheet
// mirror. AMQP messages drive the fast path; a periodic sweep over rows
// still marked pending recovers anything a lost message left behind.
package worker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/shyamvijaybalaji/WealthFlow/internal/amqp"
	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

// Exporter is the destination for transaction rows.
type Exporter interface {
	Append(ctx context.Context, tx *core.Transaction) (string, error)
}

// ExportWorker syncs pending transactions from the store to the exporter.
type ExportWorker struct {
	store     store.TransactionStore
	exporter  Exporter
	batchSize int
}

func NewExportWorker(s store.TransactionStore, exporter Exporter, batchSize int) *ExportWorker {
	return &ExportWorker{
		store:     s,
		exporter:  exporter,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP.
func (w *ExportWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "transaction_id", msg.TransactionID)

	tx, err := w.store.GetTransactionForExport(ctx, msg.TransactionID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			// Deleted before the worker got to it. Nothing to mirror.
			slog.WarnContext(ctx, "Transaction gone before export", "transaction_id", msg.TransactionID)
			return nil
		}
		return fmt.Errorf("get transaction from store: %w", err)
	}

	return w.export(ctx, tx)
}

// ProcessPending sweeps transactions that never made it to the exporter.
// This is the backup path for lost AMQP messages.
func (w *ExportWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.store.ListPendingExport(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("list pending export: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending exports", "count", len(pending))

	for i := range pending {
		if err := w.export(ctx, &pending[i]); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction",
				"transaction_id", pending[i].ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains a larger pending backlog once at worker startup,
// recovering from missed messages or worker downtime.
func (w *ExportWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.store.ListPendingExport(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("list pending export for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending exports found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending exports on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for i := range pending {
		if err := w.export(ctx, &pending[i]); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction during startup",
				"transaction_id", pending[i].ID, "error", err)
			errorCount++
			continue
		}
		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *ExportWorker) export(ctx context.Context, tx *core.Transaction) error {
	ref, err := w.exporter.Append(ctx, tx)
	if err != nil {
		if markErr := w.store.MarkExportError(ctx, tx.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark export error",
				"transaction_id", tx.ID, "error", markErr)
		}
		return fmt.Errorf("append to exporter: %w", err)
	}

	if err := w.store.MarkExported(ctx, tx.ID); err != nil {
		return fmt.Errorf("mark exported: %w", err)
	}

	slog.InfoContext(ctx, "Transaction exported",
		"transaction_id", tx.ID,
		"sheets_ref", ref)

	return nil
}
