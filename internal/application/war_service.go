package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"foxhole/internal/models"
	"foxhole/internal/repository"
)

type WarService interface {
	StartWar(ctx context.Context, name, location string) (models.War, error)
	Destroy(ctx context.Context, req DestroyRequest) (*DestroyResult, error)
	EditDestroy(ctx context.Context, req EditRequest, authorize Authorizer) (models.EditLogEntry, error)
	GetStats(ctx context.Context, req StatsRequest) (*PlayerReport, error)
	ListPastWars(ctx context.Context) ([]models.War, error)
	GetWarTop(ctx context.Context, name string) (*WarTop, error)
	GetEditLog(ctx context.Context, name, callerID string, authorize Authorizer) (*EditLogReport, error)
	ExportWar(ctx context.Context, name, callerID string, authorize Authorizer) ([]byte, error)
}

type DestroyRequest struct {
	PlayerID   string
	Vehicle    string
	Amount     int
	CustomName string
}

type DestroyResult struct {
	War         models.War
	DisplayName string
	Amount      int
	Points      int
}

type EditRequest struct {
	EditorID   string
	TargetID   string
	Vehicle    string
	Delta      int
	CustomName string
}

type StatsRequest struct {
	WarName  string
	PlayerID string
	Vehicle  string
}

type PlayerReport struct {
	War      models.War
	PlayerID string
	Vehicle  string
	Stats    []models.VehicleStat
	Points   int
}

type WarTop struct {
	War       models.War
	Standings []Standing
}

type EditLogReport struct {
	War     models.War
	Entries []models.EditLogEntry
}

type WarServiceImpl struct {
	wars     repository.War
	ledger   repository.Ledger
	pubs     repository.Publication
	sink     PublicationSink
	resolver IdentityResolver
	limit    int
	timeout  time.Duration
	logger   Logger
}

func NewWarServiceImpl(wars repository.War, ledger repository.Ledger, pubs repository.Publication, sink PublicationSink, resolver IdentityResolver, opts RefreshOptions, logger Logger) *WarServiceImpl {
	opts = opts.withDefaults()
	return &WarServiceImpl{
		wars:     wars,
		ledger:   ledger,
		pubs:     pubs,
		sink:     sink,
		resolver: resolver,
		limit:    opts.LeaderboardLimit,
		timeout:  opts.CallTimeout,
		logger:   logger,
	}
}

// StartWar starts the war and creates its live messages in location. The war
// stays started when the messages cannot be created; the error then wraps
// ErrUnreachable.
func (s *WarServiceImpl) StartWar(ctx context.Context, name, location string) (models.War, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return models.War{}, ErrEmptyWarName
	}

	war, err := s.wars.StartWar(ctx, name)
	if err != nil {
		if errors.Is(err, repository.ErrWarExists) {
			return models.War{}, ErrWarExists
		}
		return models.War{}, err
	}
	s.logger.Info("war %s started (id %d)", war.Name, war.ID)

	lb, err := s.sink.CreateMessage(ctx, location, placeholderLeaderboard)
	if err != nil {
		return war, fmt.Errorf("%w: failed to create leaderboard message: %v", ErrUnreachable, err)
	}
	veh, err := s.sink.CreateMessage(ctx, location, placeholderVehicles)
	if err != nil {
		return war, fmt.Errorf("%w: failed to create vehicles message: %v", ErrUnreachable, err)
	}

	err = s.pubs.Register(ctx, models.LivePublication{
		WarID:          war.ID,
		ChannelID:      location,
		LeaderboardMsg: lb,
		VehiclesMsg:    veh,
	})
	if err != nil {
		return war, err
	}
	return war, nil
}

func (s *WarServiceImpl) Destroy(ctx context.Context, req DestroyRequest) (*DestroyResult, error) {
	if _, ok := models.VehicleWeight(req.Vehicle); !ok {
		return nil, ErrUnknownVehicle
	}
	if req.Amount <= 0 {
		return nil, ErrInvalidAmount
	}

	war, err := s.activeWar(ctx)
	if err != nil {
		return nil, err
	}

	name := displayName(req.Vehicle, req.CustomName)
	points, err := s.ledger.RecordDestruction(ctx, models.Destruction{
		PlayerID:    req.PlayerID,
		WarID:       war.ID,
		Vehicle:     req.Vehicle,
		DisplayName: name,
		Amount:      req.Amount,
	})
	if err != nil {
		return nil, mapLedgerError(err)
	}

	return &DestroyResult{
		War:         *war,
		DisplayName: name,
		Amount:      req.Amount,
		Points:      points,
	}, nil
}

func (s *WarServiceImpl) EditDestroy(ctx context.Context, req EditRequest, authorize Authorizer) (models.EditLogEntry, error) {
	if authorize == nil || !authorize(req.EditorID) {
		return models.EditLogEntry{}, ErrForbidden
	}
	if _, ok := models.VehicleWeight(req.Vehicle); !ok {
		return models.EditLogEntry{}, ErrUnknownVehicle
	}

	war, err := s.activeWar(ctx)
	if err != nil {
		return models.EditLogEntry{}, err
	}

	entry, err := s.ledger.CorrectDestruction(ctx, models.Correction{
		EditorID:    req.EditorID,
		TargetID:    req.TargetID,
		WarID:       war.ID,
		Vehicle:     req.Vehicle,
		DisplayName: displayName(req.Vehicle, req.CustomName),
		Delta:       req.Delta,
	})
	if err != nil {
		return models.EditLogEntry{}, mapLedgerError(err)
	}

	s.logger.Info("correction by %s for %s in war %s: %s/%s %+d (%d -> %d, points %+d)",
		entry.EditorID, entry.TargetID, war.Name, entry.Vehicle, entry.DisplayName,
		entry.Delta, entry.BeforeCount, entry.AfterCount, entry.PointsDelta)
	return entry, nil
}

func (s *WarServiceImpl) GetStats(ctx context.Context, req StatsRequest) (*PlayerReport, error) {
	if req.Vehicle != "" {
		if _, ok := models.VehicleWeight(req.Vehicle); !ok {
			return nil, ErrUnknownVehicle
		}
	}

	war, err := s.warOrActive(ctx, req.WarName)
	if err != nil {
		return nil, err
	}

	stats, err := s.ledger.GetPlayerStats(ctx, req.PlayerID, war.ID, req.Vehicle)
	if err != nil {
		return nil, err
	}

	points, err := s.ledger.GetPlayerTotalPoints(ctx, req.PlayerID, war.ID)
	if err != nil {
		return nil, err
	}

	return &PlayerReport{
		War:      *war,
		PlayerID: req.PlayerID,
		Vehicle:  req.Vehicle,
		Stats:    stats,
		Points:   displayPoints(points),
	}, nil
}

func (s *WarServiceImpl) ListPastWars(ctx context.Context) ([]models.War, error) {
	return s.wars.ListPastWars(ctx, pastWarsLimit)
}

func (s *WarServiceImpl) GetWarTop(ctx context.Context, name string) (*WarTop, error) {
	war, err := s.warByName(ctx, name)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledger.GetWarLeaderboard(ctx, war.ID, s.limit)
	if err != nil {
		return nil, err
	}

	return &WarTop{
		War:       *war,
		Standings: resolveStandings(ctx, s.resolver, entries, s.timeout, s.logger),
	}, nil
}

func (s *WarServiceImpl) GetEditLog(ctx context.Context, name, callerID string, authorize Authorizer) (*EditLogReport, error) {
	if authorize == nil || !authorize(callerID) {
		return nil, ErrForbidden
	}

	war, err := s.warOrActive(ctx, name)
	if err != nil {
		return nil, err
	}

	entries, err := s.ledger.GetEditLog(ctx, war.ID, editLogLimit)
	if err != nil {
		return nil, err
	}
	return &EditLogReport{War: *war, Entries: entries}, nil
}

func (s *WarServiceImpl) activeWar(ctx context.Context) (*models.War, error) {
	war, err := s.wars.GetActiveWar(ctx)
	if err != nil {
		return nil, err
	}
	if war == nil {
		return nil, ErrNoActiveWar
	}
	return war, nil
}

func (s *WarServiceImpl) warByName(ctx context.Context, name string) (*models.War, error) {
	war, err := s.wars.GetWarByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, err
	}
	if war == nil {
		return nil, ErrWarNotFound
	}
	return war, nil
}

func (s *WarServiceImpl) warOrActive(ctx context.Context, name string) (*models.War, error) {
	if strings.TrimSpace(name) != "" {
		return s.warByName(ctx, name)
	}
	return s.activeWar(ctx)
}

func mapLedgerError(err error) error {
	switch {
	case errors.Is(err, repository.ErrInvalidAmount):
		return ErrInvalidAmount
	case errors.Is(err, repository.ErrUnknownVehicle):
		return ErrUnknownVehicle
	default:
		return err
	}
}
