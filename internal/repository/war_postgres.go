package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"foxhole/internal/models"
)

type WarPostgres struct {
	db *sql.DB
}

func NewWarPostgres(db *sql.DB) *WarPostgres {
	return &WarPostgres{db: db}
}

func (r *WarPostgres) StartWar(ctx context.Context, name string) (war models.War, err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return models.War{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		}
	}()

	// Serializes concurrent starts; plain reads are not blocked.
	if _, err = tx.ExecContext(ctx, "LOCK TABLE wars IN SHARE ROW EXCLUSIVE MODE"); err != nil {
		return models.War{}, fmt.Errorf("failed to lock wars: %w", err)
	}

	var exists bool
	err = tx.QueryRowContext(ctx, "SELECT EXISTS(SELECT 1 FROM wars WHERE name = $1)", name).Scan(&exists)
	if err != nil {
		return models.War{}, fmt.Errorf("failed to check war existence: %w", err)
	}
	if exists {
		err = ErrWarExists
		return models.War{}, err
	}

	if _, err = tx.ExecContext(ctx, "UPDATE wars SET active = FALSE WHERE active"); err != nil {
		return models.War{}, fmt.Errorf("failed to deactivate wars: %w", err)
	}

	war = models.War{Name: name, Active: true, StartedAt: time.Now().UTC()}
	err = tx.QueryRowContext(ctx,
		"INSERT INTO wars (name, active, started_at) VALUES ($1, TRUE, $2) RETURNING id",
		war.Name, war.StartedAt,
	).Scan(&war.ID)
	if err != nil {
		if isUniqueViolation(err) {
			err = ErrWarExists
			return models.War{}, err
		}
		return models.War{}, fmt.Errorf("failed to insert war: %w", err)
	}

	if err = tx.Commit(); err != nil {
		return models.War{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return war, nil
}

func (r *WarPostgres) GetActiveWar(ctx context.Context) (*models.War, error) {
	return r.getOne(ctx, "SELECT id, name, active, started_at FROM wars WHERE active")
}

func (r *WarPostgres) GetWarByName(ctx context.Context, name string) (*models.War, error) {
	return r.getOne(ctx, "SELECT id, name, active, started_at FROM wars WHERE name = $1", name)
}

func (r *WarPostgres) ListPastWars(ctx context.Context, limit int) ([]models.War, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, name, active, started_at
		FROM wars
		WHERE NOT active
		ORDER BY started_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list past wars: %w", err)
	}
	defer rows.Close()

	wars := []models.War{}
	for rows.Next() {
		var w models.War
		if err := rows.Scan(&w.ID, &w.Name, &w.Active, &w.StartedAt); err != nil {
			return nil, fmt.Errorf("failed to scan war: %w", err)
		}
		wars = append(wars, w)
	}
	return wars, rows.Err()
}

func (r *WarPostgres) getOne(ctx context.Context, query string, args ...interface{}) (*models.War, error) {
	var w models.War
	err := r.db.QueryRowContext(ctx, query, args...).Scan(&w.ID, &w.Name, &w.Active, &w.StartedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get war: %w", err)
	}
	w.StartedAt = w.StartedAt.UTC()
	return &w, nil
}
