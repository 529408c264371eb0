package application

import (
	"context"

	"foxhole/internal/repository"
)

type Logger interface {
	Error(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Info(format string, v ...interface{})
	Debug(format string, v ...interface{})
}

// IdentityResolver turns a player id into a displayable name.
// It returns ErrNotFound when the player can no longer be resolved.
type IdentityResolver interface {
	Resolve(ctx context.Context, playerID string) (string, error)
}

// PublicationSink owns the messages that carry the live leaderboard.
type PublicationSink interface {
	CreateMessage(ctx context.Context, location, text string) (string, error)
	UpdateMessage(ctx context.Context, location, handle, text string) error
}

// LeaderboardMirror receives a copy of the live leaderboard rows.
type LeaderboardMirror interface {
	Publish(ctx context.Context, title string, rows [][]interface{}) error
}

// Authorizer reports whether the caller may correct other players' records.
type Authorizer func(callerID string) bool

type Service struct {
	WarService     WarService
	RefreshService *RefreshService
}

func NewService(repos *repository.Repository, sink PublicationSink, resolver IdentityResolver, mirror LeaderboardMirror, refresh RefreshOptions, logger Logger) *Service {
	return &Service{
		WarService:     NewWarServiceImpl(repos.War, repos.Ledger, repos.Publication, sink, resolver, refresh, logger),
		RefreshService: NewRefreshService(repos.War, repos.Ledger, repos.Publication, sink, resolver, mirror, refresh, logger),
	}
}
