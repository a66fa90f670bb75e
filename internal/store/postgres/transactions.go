package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/lib/pq"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

const txCols = `id, user_id, account_id, category_id, amount::TEXT, description, merchant,
	transaction_type, transaction_date, tags, notes, created_at, updated_at`

// CreateTransaction inserts tx and moves the account balance by delta in
// one SQL transaction. The balance row is locked FOR UPDATE so concurrent
// writers against the same account serialize instead of clobbering each
// other. A foreign or missing account fails with core.ErrAccessDenied.
func (r *Repository) CreateTransaction(ctx context.Context, tx *core.Transaction, delta core.Money) (err error) {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			dbTx.Rollback()
		}
	}()

	var balanceStr string
	err = dbTx.QueryRowContext(ctx,
		`SELECT balance::TEXT FROM accounts WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		tx.AccountID, tx.UserID,
	).Scan(&balanceStr)
	if errors.Is(err, sql.ErrNoRows) {
		err = core.ErrAccessDenied
		return err
	}
	if err != nil {
		return fmt.Errorf("load account balance: %w", err)
	}

	balance, err := decodeMoney(balanceStr)
	if err != nil {
		return err
	}

	_, err = dbTx.ExecContext(ctx,
		`INSERT INTO transactions (id, user_id, account_id, category_id, amount, description,
		 merchant, transaction_type, transaction_date, tags, notes, created_at, updated_at, export_status)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`,
		tx.ID, tx.UserID, tx.AccountID, nullStr(tx.CategoryID), tx.Amount.String(),
		tx.Description, nullStr(tx.Merchant), string(tx.Type), tx.Date.UTC(),
		pq.Array(tx.Tags), nullStr(tx.Notes), tx.CreatedAt.UTC(), tx.UpdatedAt.UTC(),
		store.ExportPending,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	newBalance := balance.Add(delta)
	_, err = dbTx.ExecContext(ctx,
		`UPDATE accounts SET balance = $1, updated_at = $2 WHERE id = $3`,
		newBalance.String(), time.Now().UTC(), tx.AccountID,
	)
	if err != nil {
		return fmt.Errorf("adjust balance: %w", err)
	}

	if err = dbTx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}

	slog.InfoContext(ctx, "Transaction persisted",
		"transaction_id", tx.ID,
		"account_id", tx.AccountID,
		"transaction_type", string(tx.Type),
		"amount", tx.Amount.String(),
		"balance", newBalance.String())

	return nil
}

func (r *Repository) GetTransaction(ctx context.Context, userID, id string) (*core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+txCols+` FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get transaction: %w", err)
	}
	return tx, nil
}

func (r *Repository) ListTransactions(ctx context.Context, userID string, f store.TxFilter) ([]core.Transaction, error) {
	query := `SELECT ` + txCols + ` FROM transactions WHERE user_id = $1`
	args := []any{userID}

	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if f.AccountID != "" {
		query += ` AND account_id = ` + arg(f.AccountID)
	}
	if f.CategoryID != "" {
		query += ` AND category_id = ` + arg(f.CategoryID)
	}
	if f.Type != "" {
		query += ` AND transaction_type = ` + arg(string(f.Type))
	}
	if !f.From.IsZero() {
		query += ` AND transaction_date >= ` + arg(f.From.UTC())
	}
	if !f.To.IsZero() {
		query += ` AND transaction_date <= ` + arg(f.To.UTC())
	}

	query += ` ORDER BY transaction_date DESC`

	if f.Limit > 0 {
		query += ` LIMIT ` + arg(f.Limit)
		if f.Offset > 0 {
			query += ` OFFSET ` + arg(f.Offset)
		}
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, *tx)
	}
	return out, rows.Err()
}

func (r *Repository) CountTransactions(ctx context.Context, userID string) (int, error) {
	var n int
	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = $1`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// UpdateTransaction touches descriptive fields only. The balance applied
// at creation stays as it was.
func (r *Repository) UpdateTransaction(ctx context.Context, tx *core.Transaction) error {
	tx.UpdatedAt = time.Now().UTC()
	err := execOwned(ctx, r.db,
		`UPDATE transactions SET category_id = $1, description = $2, merchant = $3,
		 transaction_date = $4, tags = $5, notes = $6, updated_at = $7
		 WHERE id = $8 AND user_id = $9`,
		nullStr(tx.CategoryID), tx.Description, nullStr(tx.Merchant),
		tx.Date.UTC(), pq.Array(tx.Tags), nullStr(tx.Notes), tx.UpdatedAt,
		tx.ID, tx.UserID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update transaction: %w", err)
	}
	return nil
}

// DeleteTransaction removes the row without reverting the original balance
// adjustment.
func (r *Repository) DeleteTransaction(ctx context.Context, userID, id string) error {
	err := execOwned(ctx, r.db,
		`DELETE FROM transactions WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (r *Repository) GetTransactionForExport(ctx context.Context, id string) (*core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+txCols+` FROM transactions WHERE id = $1`, id)
	tx, err := scanTransaction(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get transaction for export: %w", err)
	}
	return tx, nil
}

func (r *Repository) ListPendingExport(ctx context.Context, limit int) ([]core.Transaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+txCols+` FROM transactions WHERE export_status = $1
		 ORDER BY created_at LIMIT $2`,
		store.ExportPending, limit)
	if err != nil {
		return nil, fmt.Errorf("list pending export: %w", err)
	}
	defer rows.Close()

	var out []core.Transaction
	for rows.Next() {
		tx, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		out = append(out, *tx)
	}
	return out, rows.Err()
}

func (r *Repository) MarkExported(ctx context.Context, id string) error {
	return r.setExportStatus(ctx, id, store.ExportDone)
}

func (r *Repository) MarkExportError(ctx context.Context, id string) error {
	return r.setExportStatus(ctx, id, store.ExportError)
}

func (r *Repository) setExportStatus(ctx context.Context, id, status string) error {
	err := execOwned(ctx, r.db,
		`UPDATE transactions SET export_status = $1, updated_at = $2 WHERE id = $3`,
		status, time.Now().UTC(), id)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("set export status: %w", err)
	}
	return nil
}

func scanTransaction(row rowScanner) (*core.Transaction, error) {
	var (
		tx                          core.Transaction
		categoryID, merchant, notes sql.NullString
		tags                        pq.StringArray
		amount, typ                 string
	)
	err := row.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &categoryID, &amount,
		&tx.Description, &merchant, &typ, &tx.Date, &tags, &notes, &tx.CreatedAt, &tx.UpdatedAt)
	if err != nil {
		return nil, err
	}
	tx.CategoryID = strOf(categoryID)
	tx.Merchant = strOf(merchant)
	tx.Notes = strOf(notes)
	tx.Type = core.TransactionType(typ)
	tx.Tags = []string(tags)

	if tx.Amount, err = decodeMoney(amount); err != nil {
		return nil, err
	}
	tx.Date = tx.Date.UTC()
	tx.CreatedAt = tx.CreatedAt.UTC()
	tx.UpdatedAt = tx.UpdatedAt.UTC()
	return &tx, nil
}
