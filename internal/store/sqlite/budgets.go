package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const budgetCols = `id, user_id, category_id, amount, period, alert_threshold, start_date, created_at, updated_at`

func (r *Repository) CreateBudget(ctx context.Context, b *core.Budget) error {
	_, err := r.writer.ExecContext(ctx,
		`INSERT INTO budgets (`+budgetCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.UserID, b.CategoryID, b.Amount.String(), string(b.Period),
		b.AlertThreshold, encodeTime(b.StartDate), encodeTime(b.CreatedAt), encodeTime(b.UpdatedAt),
	)
	if err != nil {
		// The (user_id, category_id) unique index backs the
		// one-budget-per-category invariant.
		if strings.Contains(err.Error(), "UNIQUE") {
			return core.ErrDuplicateBudget
		}
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

func (r *Repository) GetBudget(ctx context.Context, userID, id string) (*core.Budget, error) {
	row := r.reader.QueryRowContext(ctx,
		`SELECT `+budgetCols+` FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	b, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get budget: %w", err)
	}
	return b, nil
}

func (r *Repository) GetBudgetByCategory(ctx context.Context, userID, categoryID string) (*core.Budget, error) {
	row := r.reader.QueryRowContext(ctx,
		`SELECT `+budgetCols+` FROM budgets WHERE user_id = ? AND category_id = ?`, userID, categoryID)
	b, err := scanBudget(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get budget by category: %w", err)
	}
	return b, nil
}

func (r *Repository) ListBudgets(ctx context.Context, userID string) ([]core.Budget, error) {
	rows, err := r.reader.QueryContext(ctx,
		`SELECT `+budgetCols+` FROM budgets WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list budgets: %w", err)
	}
	defer rows.Close()

	var out []core.Budget
	for rows.Next() {
		b, err := scanBudget(rows)
		if err != nil {
			return nil, fmt.Errorf("scan budget: %w", err)
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateBudget(ctx context.Context, b *core.Budget) error {
	b.UpdatedAt = time.Now().UTC()
	err := execOwned(ctx, r.writer,
		`UPDATE budgets SET amount = ?, period = ?, alert_threshold = ?, start_date = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		b.Amount.String(), string(b.Period), b.AlertThreshold, encodeTime(b.StartDate),
		encodeTime(b.UpdatedAt), b.ID, b.UserID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update budget: %w", err)
	}
	return nil
}

func (r *Repository) DeleteBudget(ctx context.Context, userID, id string) error {
	err := execOwned(ctx, r.writer,
		`DELETE FROM budgets WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete budget: %w", err)
	}
	return nil
}

func scanBudget(row rowScanner) (*core.Budget, error) {
	var (
		b                               core.Budget
		amount, period                  string
		startDate, createdAt, updatedAt string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &amount, &period,
		&b.AlertThreshold, &startDate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	b.Period = core.BudgetPeriod(period)

	if b.Amount, err = decodeMoney(amount); err != nil {
		return nil, err
	}
	if b.StartDate, err = decodeTime(startDate); err != nil {
		return nil, err
	}
	if b.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if b.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &b, nil
}
