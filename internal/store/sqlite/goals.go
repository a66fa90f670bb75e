package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const goalCols = `id, user_id, goal_name, target_amount, current_amount, deadline, icon, created_at, updated_at`

func (r *Repository) CreateSavingsGoal(ctx context.Context, g *core.SavingsGoal) error {
	_, err := r.writer.ExecContext(ctx,
		`INSERT INTO savings_goals (`+goalCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.UserID, g.Name, g.TargetAmount.String(), g.CurrentAmount.String(),
		encodeNullTime(g.Deadline), nullStr(g.Icon), encodeTime(g.CreatedAt), encodeTime(g.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert savings goal: %w", err)
	}
	return nil
}

func (r *Repository) GetSavingsGoal(ctx context.Context, userID, id string) (*core.SavingsGoal, error) {
	row := r.reader.QueryRowContext(ctx,
		`SELECT `+goalCols+` FROM savings_goals WHERE id = ? AND user_id = ?`, id, userID)
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
	rows, err := r.reader.QueryContext(ctx,
		`SELECT `+goalCols+` FROM savings_goals WHERE user_id = ? ORDER BY created_at`, userID)
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
	err := execOwned(ctx, r.writer,
		`UPDATE savings_goals SET goal_name = ?, target_amount = ?, current_amount = ?,
		 deadline = ?, icon = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		g.Name, g.TargetAmount.String(), g.CurrentAmount.String(),
		encodeNullTime(g.Deadline), nullStr(g.Icon), encodeTime(g.UpdatedAt), g.ID, g.UserID,
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
	err := execOwned(ctx, r.writer,
		`DELETE FROM savings_goals WHERE id = ? AND user_id = ?`, id, userID)
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
		g                     core.SavingsGoal
		target, current       string
		deadline, icon        sql.NullString
		createdAt, updatedAt  string
	)
	err := row.Scan(&g.ID, &g.UserID, &g.Name, &target, &current, &deadline, &icon, &createdAt, &updatedAt)
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
	if deadline.Valid && deadline.String != "" {
		t, err := decodeTime(deadline.String)
		if err != nil {
			return nil, err
		}
		g.Deadline = &t
	}
	if g.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if g.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &g, nil
}
