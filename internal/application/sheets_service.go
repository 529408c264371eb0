package application

import (
	"context"
	"fmt"

	"foxhole/pkg/sheets"
)

const (
	defaultSheetTitle = "Foxhole War Leaderboard"
	defaultClearRange = "A1:Z1000"
	defaultStartCell  = "A1"
)

// SheetsMirror keeps a Google spreadsheet in step with the live leaderboard.
type SheetsMirror struct {
	client        sheets.Client
	ownerEmail    string
	spreadsheetID string
}

func NewSheetsMirror(client sheets.Client, spreadsheetID, ownerEmail string) *SheetsMirror {
	return &SheetsMirror{
		client:        client,
		ownerEmail:    ownerEmail,
		spreadsheetID: spreadsheetID,
	}
}

// EnsureSheetExists creates and shares the spreadsheet on first use.
func (m *SheetsMirror) EnsureSheetExists(ctx context.Context) (string, error) {
	if m.spreadsheetID != "" {
		return m.URL(), nil
	}

	id, url, err := m.client.CreateSpreadsheet(ctx, defaultSheetTitle)
	if err != nil {
		return "", fmt.Errorf("failed to create spreadsheet: %w", err)
	}
	m.spreadsheetID = id

	if m.ownerEmail != "" {
		if err := m.client.AddPermission(ctx, id, m.ownerEmail, "writer"); err != nil {
			return "", fmt.Errorf("failed to add owner permission: %w", err)
		}
	}

	if err := m.client.MakePublic(ctx, id); err != nil {
		return "", fmt.Errorf("failed to make spreadsheet public: %w", err)
	}

	return url, nil
}

func (m *SheetsMirror) Publish(ctx context.Context, title string, rows [][]interface{}) error {
	if _, err := m.EnsureSheetExists(ctx); err != nil {
		return err
	}

	values := append([][]interface{}{{title}}, rows...)

	if err := m.client.ClearRange(ctx, m.spreadsheetID, defaultClearRange); err != nil {
		return fmt.Errorf("failed to clear spreadsheet: %w", err)
	}
	if err := m.client.UpdateValues(ctx, m.spreadsheetID, defaultStartCell, values); err != nil {
		return fmt.Errorf("failed to update spreadsheet: %w", err)
	}
	return nil
}

func (m *SheetsMirror) URL() string {
	if m.spreadsheetID == "" {
		return ""
	}
	return fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s", m.spreadsheetID)
}
