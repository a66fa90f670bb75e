// Package export pushes recorded transactions to a Google Sheets
// spreadsheet. The sheet is an append-only mirror of the ledger, one row
// per transaction, used for ad-hoc analysis outside the API.
package export

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	goption "google.golang.org/api/option"
	gsheet "google.golang.org/api/sheets/v4"

	"github.com/shyamvijaybalaji/WealthFlow/internal/config"
	"github.com/shyamvijaybalaji/WealthFlow/internal/core"
)

// SheetsExporter appends transaction rows to one sheet of one spreadsheet.
type SheetsExporter struct {
	svc           *gsheet.Service
	spreadsheetID string
	sheetName     string
}

// NewSheetsExporter builds an exporter from the configured spreadsheet and
// service account credentials.
func NewSheetsExporter(ctx context.Context, cfg *config.Config) (*SheetsExporter, error) {
	if cfg.GoogleSpreadsheetID == "" {
		return nil, errors.New("missing spreadsheet ID")
	}

	credentialsJSON, err := loadCredentials(cfg)
	if err != nil {
		return nil, err
	}

	svc, err := gsheet.NewService(ctx,
		goption.WithCredentialsJSON(credentialsJSON),
		goption.WithScopes(gsheet.SpreadsheetsScope))
	if err != nil {
		return nil, fmt.Errorf("create sheets service: %w", err)
	}

	slog.InfoContext(ctx, "Google Sheets exporter ready",
		"spreadsheet_id", cfg.GoogleSpreadsheetID,
		"sheet", cfg.GoogleSheetName)

	return &SheetsExporter{
		svc:           svc,
		spreadsheetID: cfg.GoogleSpreadsheetID,
		sheetName:     cfg.GoogleSheetName,
	}, nil
}

func loadCredentials(cfg *config.Config) ([]byte, error) {
	if cfg.GoogleCredentialsJSON != "" {
		return []byte(cfg.GoogleCredentialsJSON), nil
	}
	if cfg.GoogleCredentialsFile != "" {
		b, err := os.ReadFile(cfg.GoogleCredentialsFile)
		if err != nil {
			return nil, fmt.Errorf("read credentials file: %w", err)
		}
		return b, nil
	}
	return nil, errors.New("missing service account credentials")
}

// Append writes one transaction as a row and returns the updated range as
// a reference.
func (e *SheetsExporter) Append(ctx context.Context, tx *core.Transaction) (string, error) {
	if e.svc == nil {
		return "", errors.New("sheets service not initialized")
	}

	vr := &gsheet.ValueRange{Values: [][]any{TransactionRow(tx)}}

	rng := fmt.Sprintf("%s!A:H", e.sheetName)
	resp, err := e.svc.Spreadsheets.Values.Append(e.spreadsheetID, rng, vr).
		ValueInputOption("USER_ENTERED").
		InsertDataOption("INSERT_ROWS").
		Context(ctx).Do()
	if err != nil {
		return "", fmt.Errorf("append to sheet %s: %w", e.sheetName, err)
	}

	ref := ""
	if resp.Updates != nil {
		ref = resp.Updates.UpdatedRange
	}

	slog.InfoContext(ctx, "Transaction exported to sheet",
		"transaction_id", tx.ID,
		"sheets_ref", ref)

	return ref, nil
}

// TransactionRow flattens a transaction into the spreadsheet column layout:
// date, type, description, merchant, amount, tags, notes, ID.
func TransactionRow(tx *core.Transaction) []any {
	return []any{
		tx.Date.UTC().Format("2006-01-02"),
		string(tx.Type),
		tx.Description,
		tx.Merchant,
		tx.Amount.String(),
		strings.Join(tx.Tags, ", "),
		tx.Notes,
		tx.ID,
	}
}
