package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const goalCols = `id, user_id, goal_name, target_amount::TEXT, current_amount::TEXT, deadline, icon, created_at, updated_at`

func (r *Repository) CreateSavingsGoal(ctx context.Context, g *core.SavingsGoal) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO savings_goals (id, user_id, goal_name, target_amount, current_amount, deadline, icon, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		g.ID, g.UserID, g.Name, g.TargetAmount.String(), g.CurrentAmount.String(),
		nullTime(g.Deadline), nullStr(g.Icon), g.CreatedAt.UTC(), g.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert savings goal: %w", err)
	}
	return nil
}

func (r *Repository) GetSavingsGoal(ctx context.Context, userID, id string) (*core.SavingsGoal, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+goalCols+` FROM savings_goals WHERE id = $1 AND user_id = $2`, id, userID)
	g, err := scanGoal(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get savings goal: %w", err)
	}
	return g, nil
}

func (r *Repository) ListSavingsGoals(ctx context.Context, userID string) ([]core.SavingsGoal, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+goalCols+` FROM savings_goals WHERE user_id = $1 ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}
	defer rows.Close()

	var out []core.SavingsGoal
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan savings goal: %w", err)
		}
		out = append(out, *g)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateSavingsGoal(ctx context.Context, g *core.SavingsGoal) error {
	g.UpdatedAt = time.Now().UTC()
	err := execOwned(ctx, r.db,
		`UPDATE savings_goals SET goal_name = $1, target_amount = $2, current_amount = $3,
		 deadline = $4, icon = $5, updated_at = $6
		 WHERE id = $7 AND user_id = $8`,
		g.Name, g.TargetAmount.String(), g.CurrentAmount.String(),
		nullTime(g.Deadline), nullStr(g.Icon), g.UpdatedAt, g.ID, g.UserID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update savings goal: %w", err)
	}
	return nil
}

func (r *Repository) DeleteSavingsGoal(ctx context.Context, userID, id string) error {
	err := execOwned(ctx, r.db,
		`DELETE FROM savings_goals WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete savings goal: %w", err)
	}
	return nil
}

func scanGoal(row rowScanner) (*core.SavingsGoal, error) {
	var (
		g               core.SavingsGoal
		target, current string
		deadline        sql.NullTime
		icon            sql.NullString
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &target, &current, &deadline, &icon, &g.CreatedAt, &g.UpdatedAt)
	if err != nil {
		return nil, err
	}
	g.Icon = strOf(icon)

	if g.TargetAmount, err = decodeMoney(target); err != nil {
		return nil, err
	}
	if g.CurrentAmount, err = decodeMoney(current); err != nil {
		return nil, err
	}
	if deadline.Valid {
		t := deadline.Time.UTC()
		g.Deadline = &t
	}
	g.CreatedAt = g.CreatedAt.UTC()
	g.UpdatedAt = g.UpdatedAt.UTC()
	return &g, nil
}
