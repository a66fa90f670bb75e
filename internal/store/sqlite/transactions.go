package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
	"github.com/shyamvijaybalaji/WealthFlow/internal/store"
)

const txCols = `id, user_id, account_id, category_id, amount, description, merchant,
	transaction_type, transaction_date, tags, notes, created_at, updated_at`

// CreateTransaction inserts tx and moves the account balance by delta
// inside one SQL transaction. The ownership check runs on the same
// snapshot, so a foreign or missing account rolls everything back with
// core.ErrAccessDenied.
func (r *Repository) CreateTransaction(ctx context.Context, tx *core.Transaction, delta core.Money) (err error) {
	dbTx, err := r.writer.BeginTx(ctx, nil)
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
		`SELECT balance FROM accounts WHERE id = ? AND user_id = ?`,
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

	tags, err := encodeTags(tx.Tags)
	if err != nil {
		return err
	}

	_, err = dbTx.ExecContext(ctx,
		`INSERT INTO transactions (`+txCols+`, export_status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		tx.ID, tx.UserID, tx.AccountID, nullStr(tx.CategoryID), tx.Amount.String(),
		tx.Description, nullStr(tx.Merchant), string(tx.Type), encodeTime(tx.Date),
		tags, nullStr(tx.Notes), encodeTime(tx.CreatedAt), encodeTime(tx.UpdatedAt),
		store.ExportPending,
	)
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}

	newBalance := balance.Add(delta)
	_, err = dbTx.ExecContext(ctx,
		`UPDATE accounts SET balance = ?, updated_at = ? WHERE id = ?`,
		newBalance.String(), encodeTime(time.Now().UTC()), tx.AccountID,
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
	row := r.reader.QueryRowContext(ctx,
		`SELECT `+txCols+` FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
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
	query := `SELECT ` + txCols + ` FROM transactions WHERE user_id = ?`
	args := []any{userID}

	if f.AccountID != "" {
		query += ` AND account_id = ?`
		args = append(args, f.AccountID)
	}
	if f.CategoryID != "" {
		query += ` AND category_id = ?`
		args = append(args, f.CategoryID)
	}
	if f.Type != "" {
		query += ` AND transaction_type = ?`
		args = append(args, string(f.Type))
	}
	if !f.From.IsZero() {
		query += ` AND transaction_date >= ?`
		args = append(args, encodeTime(f.From))
	}
	if !f.To.IsZero() {
		query += ` AND transaction_date <= ?`
		args = append(args, encodeTime(f.To))
	}

	query += ` ORDER BY transaction_date DESC`

	if f.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, f.Limit)
		if f.Offset > 0 {
			query += fmt.Sprintf(` OFFSET %d`, f.Offset)
		}
	}

	rows, err := r.reader.QueryContext(ctx, query, args...)
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
	err := r.reader.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM transactions WHERE user_id = ?`, userID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return n, nil
}

// UpdateTransaction touches descriptive fields only. The balance applied
// at creation stays as it was.
func (r *Repository) UpdateTransaction(ctx context.Context, tx *core.Transaction) error {
	tags, err := encodeTags(tx.Tags)
	if err != nil {
		return err
	}
	tx.UpdatedAt = time.Now().UTC()
	err = execOwned(ctx, r.writer,
		`UPDATE transactions SET category_id = ?, description = ?, merchant = ?,
		 transaction_date = ?, tags = ?, notes = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		nullStr(tx.CategoryID), tx.Description, nullStr(tx.Merchant),
		encodeTime(tx.Date), tags, nullStr(tx.Notes), encodeTime(tx.UpdatedAt),
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
	err := execOwned(ctx, r.writer,
		`DELETE FROM transactions WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (r *Repository) GetTransactionForExport(ctx context.Context, id string) (*core.Transaction, error) {
	row := r.reader.QueryRowContext(ctx,
		`SELECT `+txCols+` FROM transactions WHERE id = ?`, id)
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
	rows, err := r.reader.QueryContext(ctx,
		`SELECT `+txCols+` FROM transactions WHERE export_status = ?
		 ORDER BY created_at LIMIT ?`,
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
	err := execOwned(ctx, r.writer,
		`UPDATE transactions SET export_status = ?, updated_at = ? WHERE id = ?`,
		status, encodeTime(time.Now().UTC()), id)
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
		tags                        sql.NullString
		amount, typ                 string
		date, createdAt, updatedAt  string
	)
	err := row.Scan(&tx.ID, &tx.UserID, &tx.AccountID, &categoryID, &amount,
		&tx.Description, &merchant, &typ, &date, &tags, &notes, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	tx.CategoryID = strOf(categoryID)
	tx.Merchant = strOf(merchant)
	tx.Notes = strOf(notes)
	tx.Type = core.TransactionType(typ)

	if tx.Amount, err = decodeMoney(amount); err != nil {
		return nil, err
	}
	if tx.Tags, err = decodeTags(tags); err != nil {
		return nil, err
	}
	if tx.Date, err = decodeTime(date); err != nil {
		return nil, err
	}
	if tx.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if tx.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &tx, nil
}
