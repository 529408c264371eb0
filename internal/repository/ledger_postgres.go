package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"foxhole/internal/models"
)

type LedgerPostgres struct {
	db *sql.DB
}

func NewLedgerPostgres(db *sql.DB) *LedgerPostgres {
	return &LedgerPostgres{db: db}
}

func (r *LedgerPostgres) RecordDestruction(ctx context.Context, d models.Destruction) (points int, err error) {
	if d.Amount <= 0 {
		return 0, ErrInvalidAmount
	}
	weight, ok := models.VehicleWeight(d.Vehicle)
	if !ok {
		return 0, ErrUnknownVehicle
	}
	points = weight * d.Amount

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	if err = addPoints(ctx, tx, d.PlayerID, d.WarID, points); err != nil {
		return 0, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO destructions (player_id, war_id, vehicle, display_name, count)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (player_id, war_id, vehicle, display_name)
		DO UPDATE SET count = destructions.count + EXCLUDED.count
	`, d.PlayerID, d.WarID, d.Vehicle, d.DisplayName, d.Amount)
	if err != nil {
		return 0, fmt.Errorf("failed to upsert destruction: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return points, nil
}

func (r *LedgerPostgres) CorrectDestruction(ctx context.Context, c models.Correction) (entry models.EditLogEntry, err error) {
	weight, ok := models.VehicleWeight(c.Vehicle)
	if !ok {
		return models.EditLogEntry{}, ErrUnknownVehicle
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.EditLogEntry{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// The row must exist before it can be locked.
	_, err = tx.ExecContext(ctx, `
		INSERT INTO destructions (player_id, war_id, vehicle, display_name, count)
		VALUES ($1, $2, $3, $4, 0)
		ON CONFLICT (player_id, war_id, vehicle, display_name) DO NOTHING
	`, c.TargetID, c.WarID, c.Vehicle, c.DisplayName)
	if err != nil {
		return models.EditLogEntry{}, fmt.Errorf("failed to ensure destruction row: %w", err)
	}

	var current int
	err = tx.QueryRowContext(ctx, `
		SELECT count FROM destructions
		WHERE player_id = $1 AND war_id = $2 AND vehicle = $3 AND display_name = $4
		FOR UPDATE
	`, c.TargetID, c.WarID, c.Vehicle, c.DisplayName).Scan(&current)
	if err != nil {
		return models.EditLogEntry{}, fmt.Errorf("failed to read destruction count: %w", err)
	}

	after, pointsDelta := models.ApplyCorrection(current, c.Delta, weight)

	_, err = tx.ExecContext(ctx, `
		UPDATE destructions SET count = $5
		WHERE player_id = $1 AND war_id = $2 AND vehicle = $3 AND display_name = $4
	`, c.TargetID, c.WarID, c.Vehicle, c.DisplayName, after)
	if err != nil {
		return models.EditLogEntry{}, fmt.Errorf("failed to update destruction count: %w", err)
	}

	if err = addPoints(ctx, tx, c.TargetID, c.WarID, pointsDelta); err != nil {
		return models.EditLogEntry{}, err
	}

	entry = models.EditLogEntry{
		WarID:       c.WarID,
		EditorID:    c.EditorID,
		TargetID:    c.TargetID,
		Vehicle:     c.Vehicle,
		DisplayName: c.DisplayName,
		Delta:       c.Delta,
		BeforeCount: current,
		AfterCount:  after,
		PointsDelta: pointsDelta,
		CreatedAt:   time.Now().UTC(),
	}
	err = tx.QueryRowContext(ctx, `
		INSERT INTO edit_logs (
			war_id, editor_id, target_id, vehicle, display_name,
			delta, before_count, after_count, points_delta, created_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id
	`, entry.WarID, entry.EditorID, entry.TargetID, entry.Vehicle, entry.DisplayName,
		entry.Delta, entry.BeforeCount, entry.AfterCount, entry.PointsDelta, entry.CreatedAt,
	).Scan(&entry.ID)
	if err != nil {
		return models.EditLogEntry{}, fmt.Errorf("failed to append edit log: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return models.EditLogEntry{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return entry, nil
}

func (r *LedgerPostgres) GetPlayerStats(ctx context.Context, playerID string, warID int64, vehicle string) ([]models.VehicleStat, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT vehicle, display_name, SUM(count)::BIGINT AS total
		FROM destructions
		WHERE player_id = $1 AND war_id = $2 AND ($3 = '' OR vehicle = $3)
		GROUP BY vehicle, display_name
		ORDER BY total DESC, vehicle, display_name
	`, playerID, warID, vehicle)
	if err != nil {
		return nil, fmt.Errorf("failed to get player stats: %w", err)
	}
	defer rows.Close()

	stats := []models.VehicleStat{}
	for rows.Next() {
		var s models.VehicleStat
		if err := rows.Scan(&s.Vehicle, &s.DisplayName, &s.Count); err != nil {
			return nil, fmt.Errorf("failed to scan player stat: %w", err)
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}

func (r *LedgerPostgres) GetPlayerTotalPoints(ctx context.Context, playerID string, warID int64) (int, error) {
	var points int
	err := r.db.QueryRowContext(ctx,
		"SELECT COALESCE(SUM(points), 0)::BIGINT FROM scores WHERE player_id = $1 AND war_id = $2",
		playerID, warID,
	).Scan(&points)
	if err != nil {
		return 0, fmt.Errorf("failed to get player points: %w", err)
	}
	return points, nil
}

func (r *LedgerPostgres) GetWarLeaderboard(ctx context.Context, warID int64, limit int) ([]models.ScoreEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT player_id, war_id, points
		FROM scores
		WHERE war_id = $1
		ORDER BY points DESC, seq ASC
		LIMIT $2
	`, warID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []models.ScoreEntry{}
	for rows.Next() {
		var e models.ScoreEntry
		if err := rows.Scan(&e.PlayerID, &e.WarID, &e.Points); err != nil {
			return nil, fmt.Errorf("failed to scan score: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *LedgerPostgres) GetVehicleTotals(ctx context.Context, warID int64) ([]models.VehicleTotal, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT vehicle, SUM(count)::BIGINT AS total
		FROM destructions
		WHERE war_id = $1
		GROUP BY vehicle
		ORDER BY total DESC, vehicle
	`, warID)
	if err != nil {
		return nil, fmt.Errorf("failed to get vehicle totals: %w", err)
	}
	defer rows.Close()

	totals := []models.VehicleTotal{}
	for rows.Next() {
		var t models.VehicleTotal
		if err := rows.Scan(&t.Vehicle, &t.Total); err != nil {
			return nil, fmt.Errorf("failed to scan vehicle total: %w", err)
		}
		totals = append(totals, t)
	}
	return totals, rows.Err()
}

func (r *LedgerPostgres) GetEditLog(ctx context.Context, warID int64, limit int) ([]models.EditLogEntry, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, war_id, editor_id, target_id, vehicle, display_name,
			delta, before_count, after_count, points_delta, created_at
		FROM edit_logs
		WHERE war_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2
	`, warID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get edit log: %w", err)
	}
	defer rows.Close()

	entries := []models.EditLogEntry{}
	for rows.Next() {
		var e models.EditLogEntry
		err := rows.Scan(&e.ID, &e.WarID, &e.EditorID, &e.TargetID, &e.Vehicle, &e.DisplayName,
			&e.Delta, &e.BeforeCount, &e.AfterCount, &e.PointsDelta, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan edit log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func addPoints(ctx context.Context, tx *sql.Tx, playerID string, warID int64, points int) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO scores (player_id, war_id, points) VALUES ($1, $2, $3)
		ON CONFLICT (player_id, war_id) DO UPDATE SET points = scores.points + EXCLUDED.points
	`, playerID, warID, points)
	if err != nil {
		return fmt.Errorf("failed to upsert score: %w", err)
	}
	return nil
}
