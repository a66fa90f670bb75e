package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

const investmentCols = `id, user_id, asset_type, symbol, quantity::TEXT, purchase_price::TEXT, current_price::TEXT, purchase_date, created_at, updated_at`

func (r *Repository) CreateInvestment(ctx context.Context, inv *core.Investment) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO investments (id, user_id, asset_type, symbol, quantity, purchase_price, current_price, purchase_date, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		inv.ID, inv.UserID, string(inv.AssetType), inv.Symbol, inv.Quantity.String(),
		inv.PurchasePrice.String(), encodeNullMoney(inv.CurrentPrice),
		inv.PurchaseDate.UTC(), inv.CreatedAt.UTC(), inv.UpdatedAt.UTC(),
	)
	if err != nil {
		return fmt.Errorf("insert investment: %w", err)
	}
	return nil
}

func (r *Repository) GetInvestment(ctx context.Context, userID, id string) (*core.Investment, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+investmentCols+` FROM investments WHERE id = $1 AND user_id = $2`, id, userID)
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
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+investmentCols+` FROM investments WHERE user_id = $1 ORDER BY created_at`, userID)
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
	err := execOwned(ctx, r.db,
		`UPDATE investments SET asset_type = $1, symbol = $2, quantity = $3, purchase_price = $4,
		 current_price = $5, purchase_date = $6, updated_at = $7
		 WHERE id = $8 AND user_id = $9`,
		string(inv.AssetType), inv.Symbol, inv.Quantity.String(), inv.PurchasePrice.String(),
		encodeNullMoney(inv.CurrentPrice), inv.PurchaseDate.UTC(),
		inv.UpdatedAt, inv.ID, inv.UserID,
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
	err := execOwned(ctx, r.db,
		`DELETE FROM investments WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		if errors.Is(err, core.ErrNotFound) {
			return err
		}
		return fmt.Errorf("delete investment: %w", err)
	}
	return nil
}

func scanInvestment(row rowScanner) (*core.Investment, error) {
	var (
		inv                                core.Investment
		assetType, quantity, purchasePrice string
		currentPrice                       sql.NullString
	)
	err := row.Scan(&inv.ID, &inv.UserID, &assetType, &inv.Symbol, &quantity,
		&purchasePrice, &currentPrice, &inv.PurchaseDate, &inv.CreatedAt, &inv.UpdatedAt)
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
	inv.PurchaseDate = inv.PurchaseDate.UTC()
	inv.CreatedAt = inv.CreatedAt.UTC()
	inv.UpdatedAt = inv.UpdatedAt.UTC()
	return &inv, nil
}
