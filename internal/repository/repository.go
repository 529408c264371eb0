package repository

import (
	"context"
	"database/sql"
	"errors"

	"foxhole/internal/models"
)

var (
	ErrWarExists      = errors.New("war already exists")
	ErrInvalidAmount  = errors.New("amount must be positive")
	ErrUnknownVehicle = errors.New("unknown vehicle category")
)

type War interface {
	StartWar(ctx context.Context, name string) (models.War, error)
	GetActiveWar(ctx context.Context) (*models.War, error)
	GetWarByName(ctx context.Context, name string) (*models.War, error)
	ListPastWars(ctx context.Context, limit int) ([]models.War, error)
}

type Ledger interface {
	RecordDestruction(ctx context.Context, d models.Destruction) (int, error)
	CorrectDestruction(ctx context.Context, c models.Correction) (models.EditLogEntry, error)
	GetPlayerStats(ctx context.Context, playerID string, warID int64, vehicle string) ([]models.VehicleStat, error)
	GetPlayerTotalPoints(ctx context.Context, playerID string, warID int64) (int, error)
	GetWarLeaderboard(ctx context.Context, warID int64, limit int) ([]models.ScoreEntry, error)
	GetVehicleTotals(ctx context.Context, warID int64) ([]models.VehicleTotal, error)
	GetEditLog(ctx context.Context, warID int64, limit int) ([]models.EditLogEntry, error)
}

type Publication interface {
	Register(ctx context.Context, p models.LivePublication) error
	Lookup(ctx context.Context, warID int64) (*models.LivePublication, error)
}

type Repository struct {
	War
	Ledger
	Publication
	db *sql.DB
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		War:         NewWarPostgres(db),
		Ledger:      NewLedgerPostgres(db),
		Publication: NewPublicationPostgres(db),
		db:          db,
	}
}
