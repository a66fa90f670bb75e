package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const categoryCols = `id, user_id, name, category_type, icon, color, is_system, created_at, updated_at`

func (r *Repository) CreateCategory(ctx context.Context, c *core.Category) error {
	_, err := r.writer.ExecContext(ctx,
		`INSERT INTO categories (`+categoryCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, nullStr(c.UserID), c.Name, string(c.Type), nullStr(c.Icon), nullStr(c.Color),
		boolToInt(c.IsSystem), encodeTime(c.CreatedAt), encodeTime(c.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert category: %w", err)
	}
	return nil
}

// GetCategory resolves the user's own categories plus the shared system
// set; anything else reads as absent.
func (r *Repository) GetCategory(ctx context.Context, userID, id string) (*core.Category, error) {
	row := r.reader.QueryRowContext(ctx,
		`SELECT `+categoryCols+` FROM categories
		 WHERE id = ? AND (user_id = ? OR is_system = 1)`, id, userID)
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
	rows, err := r.reader.QueryContext(ctx,
		`SELECT `+categoryCols+` FROM categories
		 WHERE user_id = ? OR is_system = 1 ORDER BY name`, userID)
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

// DeleteCategory removes a user category; its budgets cascade away and
// its transactions are detached by the FK actions. System categories are
// not deletable through this path.
func (r *Repository) DeleteCategory(ctx context.Context, userID, id string) error {
	err := execOwned(ctx, r.writer,
		`DELETE FROM categories WHERE id = ? AND user_id = ? AND is_system = 0`, id, userID)
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
		c                    core.Category
		userID, icon, color  sql.NullString
		typ                  string
		isSystem             int
		createdAt, updatedAt string
	)
	err := row.Scan(&c.ID, &userID, &c.Name, &typ, &icon, &color, &isSystem, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	c.UserID = strOf(userID)
	c.Icon = strOf(icon)
	c.Color = strOf(color)
	c.Type = core.CategoryType(typ)
	c.IsSystem = isSystem != 0

	if c.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if c.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &c, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
