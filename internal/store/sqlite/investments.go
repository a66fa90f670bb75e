package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const investmentCols = `id, user_id, asset_type, symbol, quantity, purchase_price, current_price, purchase_date, created_at, updated_at`

func (r *Repository) CreateInvestment(ctx context.Context, inv *core.Investment) error {
	_, err := r.writer.ExecContext(ctx,
		`INSERT INTO investments (`+investmentCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		inv.ID, inv.UserID, string(inv.AssetType), inv.Symbol, inv.Quantity.String(),
		inv.PurchasePrice.String(), encodeNullMoney(inv.CurrentPrice),
		encodeTime(inv.PurchaseDate), encodeTime(inv.CreatedAt), encodeTime(inv.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("insert investment: %w", err)
	}
	return nil
}

func (r *Repository) GetInvestment(ctx context.Context, userID, id string) (*core.Investment, error) {
	row := r.reader.QueryRowContext(ctx,
		`SELECT `+investmentCols+` FROM investments WHERE id = ? AND user_id = ?`, id, userID)
	inv, err := scanInvestment(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, core.ErrNotFound
		}
		return nil, fmt.Errorf("get investment: %w", err)
	}
	return inv, nil
}

func (r *Repository) ListInvestments(ctx context.Context, userID string) ([]core.Investment, error) {
	rows, err := r.reader.QueryContext(ctx,
		`SELECT `+investmentCols+` FROM investments WHERE user_id = ? ORDER BY created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list investments: %w", err)
	}
	defer rows.Close()

	var out []core.Investment
	for rows.Next() {
		inv, err := scanInvestment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan investment: %w", err)
		}
		out = append(out, *inv)
	}
	return out, rows.Err()
}

func (r *Repository) UpdateInvestment(ctx context.Context, inv *core.Investment) error {
	inv.UpdatedAt = time.Now().UTC()
	err := execOwned(ctx, r.writer,
		`UPDATE investments SET asset_type = ?, symbol = ?, quantity = ?, purchase_price = ?,
		 current_price = ?, purchase_date = ?, updated_at = ?
		 WHERE id = ? AND user_id = ?`,
		string(inv.AssetType), inv.Symbol, inv.Quantity.String(), inv.PurchasePrice.String(),
		encodeNullMoney(inv.CurrentPrice), encodeTime(inv.PurchaseDate),
		encodeTime(inv.UpdatedAt), inv.ID, inv.UserID,
	)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("update investment: %w", err)
	}
	return nil
}

func (r *Repository) DeleteInvestment(ctx context.Context, userID, id string) error {
	err := execOwned(ctx, r.writer,
		`DELETE FROM investments WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete investment: %w", err)
	}
	return nil
}

func encodeNullMoney(m *core.Money) any {
	if m == nil {
		return nil
	}
	return m.String()
}

func scanInvestment(row rowScanner) (*core.Investment, error) {
	var (
		inv                                 core.Investment
		assetType, quantity, purchasePrice  string
		currentPrice                        sql.NullString
		purchaseDate, createdAt, updatedAt  string
	)
	err := row.Scan(&inv.ID, &inv.UserID, &assetType, &inv.Symbol, &quantity,
		&purchasePrice, &currentPrice, &purchaseDate, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	inv.AssetType = core.AssetType(assetType)

	if inv.Quantity, err = core.NewQuantityFromString(quantity); err != nil {
		return nil, err
	}
	if inv.PurchasePrice, err = decodeMoney(purchasePrice); err != nil {
		return nil, err
	}
	if currentPrice.Valid {
		m, err := decodeMoney(currentPrice.String)
		if err != nil {
			return nil, err
		}
		inv.CurrentPrice = &m
	}
	if inv.PurchaseDate, err = decodeTime(purchaseDate); err != nil {
		return nil, err
	}
	if inv.CreatedAt, err = decodeTime(createdAt); err != nil {
		return nil, err
	}
	if inv.UpdatedAt, err = decodeTime(updatedAt); err != nil {
		return nil, err
	}
	return &inv, nil
}
