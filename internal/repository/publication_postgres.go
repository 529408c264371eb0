package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"foxhole/internal/models"
)

type PublicationPostgres struct {
	db *sql.DB
}

func NewPublicationPostgres(db *sql.DB) *PublicationPostgres {
	return &PublicationPostgres{db: db}
}

func (r *PublicationPostgres) Register(ctx context.Context, p models.LivePublication) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO live_publications (war_id, channel_id, leaderboard_msg, vehicles_msg)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (war_id) DO UPDATE SET
			channel_id = EXCLUDED.channel_id,
			leaderboard_msg = EXCLUDED.leaderboard_msg,
			vehicles_msg = EXCLUDED.vehicles_msg
	`, p.WarID, p.ChannelID, p.LeaderboardMsg, p.VehiclesMsg)
	if err != nil {
		return fmt.Errorf("failed to register live publication: %w", err)
	}
	return nil
}

func (r *PublicationPostgres) Lookup(ctx context.Context, warID int64) (*models.LivePublication, error) {
	p := models.LivePublication{WarID: warID}
	err := r.db.QueryRowContext(ctx,
		"SELECT channel_id, leaderboard_msg, vehicles_msg FROM live_publications WHERE war_id = $1", warID,
	).Scan(&p.ChannelID, &p.LeaderboardMsg, &p.VehiclesMsg)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to lookup live publication: %w", err)
	}
	return &p, nil
}
