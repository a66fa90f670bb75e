package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const budgetCols = `id, user_id, category_id, amount::TEXT, period, alert_threshold, start_date, created_at, updated_at`

func (r *Repository) CreateBudget(ctx context.Context, b *core.Budget) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO budgets (id, user_id, category_id, amount, period, alert_threshold, start_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		b.ID, b.UserID, b.CategoryID, b.Amount.String(), string(b.Period),
		b.AlertThreshold, b.StartDate.UTC(), b.CreatedAt.UTC(), b.UpdatedAt.UTC(),
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code.Name() == "unique_violation" {
			return core.ErrDuplicateBudget
		}
		return fmt.Errorf("insert budget: %w", err)
	}
	return nil
}

func (r *Repository) GetBudget(ctx context.Context, userID, id string) (*core.Budget, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+budgetCols+` FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
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
	row := r.db.QueryRowContext(ctx,
		`SELECT `+budgetCols+` FROM budgets WHERE user_id = $1 AND category_id = $2`, userID, categoryID)
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
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+budgetCols+` FROM budgets WHERE user_id = $1 ORDER BY created_at`, userID)
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
	err := execOwned(ctx, r.db,
		`UPDATE budgets SET amount = $1, period = $2, alert_threshold = $3, start_date = $4, updated_at = $5
		 WHERE id = $6 AND user_id = $7`,
		b.Amount.String(), string(b.Period), b.AlertThreshold, b.StartDate.UTC(),
		b.UpdatedAt, b.ID, b.UserID,
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
	err := execOwned(ctx, r.db,
		`DELETE FROM budgets WHERE id = $1 AND user_id = $2`, id, userID)
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
		b              core.Budget
		amount, period string
	)
	err := row.Scan(&b.ID, &b.UserID, &b.CategoryID, &amount, &period,
		&b.AlertThreshold, &b.StartDate, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Period = core.BudgetPeriod(period)

	if b.Amount, err = decodeMoney(amount); err != nil {
		return nil, err
	}
	b.StartDate = b.StartDate.UTC()
	b.CreatedAt = b.CreatedAt.UTC()
	b.UpdatedAt = b.UpdatedAt.UTC()
	return &b, nil
}
