package application

import (
	"context"
	"fmt"

	"foxhole/internal/models"

	"github.com/xuri/excelize/v2"
)

// ExportWar builds an xlsx workbook with the leaderboard, vehicle totals and
// correction log of a war. Only officers may export.
func (s *WarServiceImpl) ExportWar(ctx context.Context, name, callerID string, authorize Authorizer) ([]byte, error) {
	if authorize == nil || !authorize(callerID) {
		return nil, ErrForbidden
	}

	war, err := s.warOrActive(ctx, name)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledger.GetWarLeaderboard(ctx, war.ID, exportLimit)
	if err != nil {
		return nil, err
	}
	totals, err := s.ledger.GetVehicleTotals(ctx, war.ID)
	if err != nil {
		return nil, err
	}
	edits, err := s.ledger.GetEditLog(ctx, war.ID, exportLimit)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	defer f.Close()

	board := [][]interface{}{{"Место", "ID игрока", "Игрок", "Очки"}}
	for i, e := range entries {
		board = append(board, []interface{}{i + 1, e.PlayerID, s.nameOrID(ctx, e.PlayerID), e.Points})
	}

	vehicles := [][]interface{}{{"Категория", "Вес", "Уничтожено"}}
	for _, t := range totals {
		weight, _ := models.VehicleWeight(t.Vehicle)
		vehicles = append(vehicles, []interface{}{t.Vehicle, weight, t.Total})
	}

	log := [][]interface{}{{"Дата (UTC)", "Офицер", "Игрок", "Категория", "Техника", "Изменение", "Было", "Стало", "Очки"}}
	for _, e := range edits {
		log = append(log, []interface{}{
			e.CreatedAt.UTC().Format("2006-01-02 15:04"),
			e.EditorID, e.TargetID, e.Vehicle, e.DisplayName,
			e.Delta, e.BeforeCount, e.AfterCount, e.PointsDelta,
		})
	}

	sheets := []struct {
		name string
		rows [][]interface{}
	}{
		{excelLeaderboardSheet, board},
		{excelVehiclesSheet, vehicles},
		{excelEditLogSheet, log},
	}
	for _, sh := range sheets {
		if err := writeSheet(f, sh.name, sh.rows); err != nil {
			return nil, err
		}
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to drop default sheet: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

func (s *WarServiceImpl) nameOrID(ctx context.Context, playerID string) string {
	callCtx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	name, err := s.resolver.Resolve(callCtx, playerID)
	if err != nil {
		return playerID
	}
	return name
}

func writeSheet(f *excelize.File, sheet string, rows [][]interface{}) error {
	if _, err := f.NewSheet(sheet); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", sheet, err)
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write row %d of %s: %w", i+1, sheet, err)
		}
	}
	f.SetColWidth(sheet, "A", "A", 18)
	f.SetColWidth(sheet, "B", "I", 16)
	return nil
}
