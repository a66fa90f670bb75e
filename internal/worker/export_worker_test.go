package worker

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/amqp"
	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store/memory"
)

type fakeExporter struct {
	appended []string
	failFor  map[string]bool
}

func (f *fakeExporter) Append(ctx context.Context, tx *core.Transaction) (string, error) {
	if f.failFor[tx.ID] {
		return "", errors.New("sheets unavailable")
	}
	f.appended = append(f.appended, tx.ID)
	return fmt.Sprintf("Transactions!A%d", len(f.appended)), nil
}

func seedTx(t *testing.T, st *memory.Store, id string) {
	t.Helper()
	ctx := context.Background()
	st.CreateAccount(ctx, &core.Account{ID: "acc-u1", UserID: "u1", Name: "Checking", Type: core.AccountChecking})
	err := st.CreateTransaction(ctx, &core.Transaction{
		ID: id, UserID: "u1", AccountID: "acc-u1",
		Amount: core.MustMoney("10.00"), Description: "seed",
		Type: core.TxExpense, Date: time.Now().UTC(), CreatedAt: time.Now().UTC(),
	}, core.Money{})
	if err != nil {
		t.Fatalf("seed transaction: %v", err)
	}
}

func TestExportWorker_HandleSyncMessage(t *testing.T) {
	st := memory.New()
	exp := &fakeExporter{}
	w := NewExportWorker(st, exp, 10)
	seedTx(t, st, "t1")

	msg := amqp.NewTransactionSyncMessage("t1")
	if err := w.HandleSyncMessage(context.Background(), msg); err != nil {
		t.Fatalf("handle: %v", err)
	}
	if len(exp.appended) != 1 || exp.appended[0] != "t1" {
		t.Fatalf("expected t1 exported, got %v", exp.appended)
	}

	// Exported rows leave the pending queue.
	pending, _ := st.ListPendingExport(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows, got %d", len(pending))
	}
}

func TestExportWorker_HandleSyncMessage_GoneTransaction(t *testing.T) {
	st := memory.New()
	w := NewExportWorker(st, &fakeExporter{}, 10)

	// Deleted before the worker got to it: not an error.
	if err := w.HandleSyncMessage(context.Background(), amqp.NewTransactionSyncMessage("missing")); err != nil {
		t.Fatalf("expected nil for missing transaction, got %v", err)
	}
}

func TestExportWorker_HandleSyncMessage_ExporterFailure(t *testing.T) {
	st := memory.New()
	exp := &fakeExporter{failFor: map[string]bool{"t1": true}}
	w := NewExportWorker(st, exp, 10)
	seedTx(t, st, "t1")

	if err := w.HandleSyncMessage(context.Background(), amqp.NewTransactionSyncMessage("t1")); err == nil {
		t.Fatal("expected error from failing exporter")
	}

	// The row is marked errored, not left pending.
	pending, _ := st.ListPendingExport(context.Background(), 10)
	if len(pending) != 0 {
		t.Fatalf("expected no pending rows after export error, got %d", len(pending))
	}
}

func TestExportWorker_ProcessPending(t *testing.T) {
	st := memory.New()
	exp := &fakeExporter{}
	w := NewExportWorker(st, exp, 2)

	for _, id := range []string{"t1", "t2", "t3"} {
		seedTx(t, st, id)
	}

	// Batch size caps one sweep.
	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if len(exp.appended) != 2 {
		t.Fatalf("expected 2 exported in first sweep, got %d", len(exp.appended))
	}

	// Second sweep drains the rest.
	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if len(exp.appended) != 3 {
		t.Fatalf("expected 3 exported after second sweep, got %d", len(exp.appended))
	}
}

func TestExportWorker_ProcessPending_ContinuesPastFailures(t *testing.T) {
	st := memory.New()
	exp := &fakeExporter{failFor: map[string]bool{"t1": true}}
	w := NewExportWorker(st, exp, 10)
	seedTx(t, st, "t1")
	seedTx(t, st, "t2")

	if err := w.ProcessPending(context.Background()); err != nil {
		t.Fatalf("process pending: %v", err)
	}
	if len(exp.appended) != 1 || exp.appended[0] != "t2" {
		t.Fatalf("expected only t2 exported, got %v", exp.appended)
	}
}

func TestExportWorker_StartupSyncCheck(t *testing.T) {
	st := memory.New()
	exp := &fakeExporter{}
	w := NewExportWorker(st, exp, 2)

	// Startup drains batchSize*5 at once.
	for i := 0; i < 7; i++ {
		seedTx(t, st, fmt.Sprintf("t%d", i))
	}
	if err := w.StartupSyncCheck(context.Background()); err != nil {
		t.Fatalf("startup sync: %v", err)
	}
	if len(exp.appended) != 7 {
		t.Fatalf("expected 7 exported on startup, got %d", len(exp.appended))
	}
}
