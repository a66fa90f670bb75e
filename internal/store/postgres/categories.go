package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const categoryCols = `id, user_id, name, category_type, icon, color, is_system, created_at, updated_at`

func (r *Repository) CreateCategory(ctx context.Context, c *core.Category) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO categories (`+categoryCols+`) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		c.ID, nullStr(c.UserID), c.Name, string(c.Type), nullStr(c.Icon), nullStr(c.Color),
		c.IsSystem, c.CreatedAt.UTC(), c.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

func (r *Repository) GetCategory(ctx context.Context, userID, id string) (*core.Category, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+categoryCols+` FROM categories
		 WHERE id = $1 AND (user_id = $2 OR is_system)`, id, userID)
	c, err := scanCategory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get category: %w", err)
	}
	return c, nil
}

func (r *Repository) ListCategories(ctx context.Context, userID string) ([]core.Category, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+categoryCols+` FROM categories
		 WHERE user_id = $1 OR is_system ORDER BY name`, userID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	var out []core.Category
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *Repository) DeleteCategory(ctx context.Context, userID, id string) error {
	err := execOwned(ctx, r.db,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2 AND NOT is_system`, id, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}

func scanCategory(row rowScanner) (*core.Category, error) {
	var (
		c                   core.Category
		userID, icon, color sql.NullString
		typ                 string
	)
	err := row.Scan(&c.ID, &userID, &c.Name, &typ, &icon, &color, &c.IsSystem, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	c.UserID = strOf(userID)
	c.Icon = strOf(icon)
	c.Color = strOf(color)
	c.Type = core.CategoryType(typ)
	c.CreatedAt = c.CreatedAt.UTC()
	c.UpdatedAt = c.UpdatedAt.UTC()
	return &c, nil
}
