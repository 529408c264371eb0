package application

import (
	"context"
	"errors"
	"strings"
	"time"

	"foxhole/internal/models"
)

type Standing struct {
	Rank     int
	PlayerID string
	Name     string
	Points   int
}

func (s Standing) DisplayPoints() int {
	return displayPoints(s.Points)
}

// resolveStandings resolves every entry with its own timeout. Entries that
// cannot be resolved are dropped; the rest keep their leaderboard rank.
func resolveStandings(ctx context.Context, resolver IdentityResolver, entries []models.ScoreEntry, timeout time.Duration, logger Logger) []Standing {
	standings := make([]Standing, 0, len(entries))
	for idx, e := range entries {
		if ctx.Err() != nil {
			break
		}

		callCtx, cancel := context.WithTimeout(ctx, timeout)
		name, err := resolver.Resolve(callCtx, e.PlayerID)
		cancel()
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				logger.Debug("player %s not found, skipping row", e.PlayerID)
			} else {
				logger.Warn("failed to resolve player %s: %v", e.PlayerID, err)
			}
			continue
		}

		standings = append(standings, Standing{
			Rank:     idx + 1,
			PlayerID: e.PlayerID,
			Name:     name,
			Points:   e.Points,
		})
	}
	return standings
}

func displayName(vehicle, custom string) string {
	if name := strings.TrimSpace(custom); name != "" {
		return name
	}
	return vehicle
}

// displayPoints never shows a negative score; the ledger itself may hold one.
func displayPoints(points int) int {
	if points < 0 {
		return 0
	}
	return points
}
