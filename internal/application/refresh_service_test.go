package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"foxhole/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 3, 14, 18, 5, 0, 0, time.UTC)

func newTestRefresh(store *fakeStore, sink *fakeSink, resolver IdentityResolver, mirror LeaderboardMirror) *RefreshService {
	r := NewRefreshService(store, store, store, sink, resolver, mirror, RefreshOptions{CallTimeout: time.Second}, nopLogger{})
	r.now = func() time.Time { return fixedNow }
	return r
}

func seedWar(t *testing.T, store *fakeStore, name string) models.War {
	t.Helper()
	ctx := context.Background()
	war, err := store.StartWar(ctx, name)
	require.NoError(t, err)
	require.NoError(t, store.Register(ctx, models.LivePublication{
		WarID: war.ID, ChannelID: "chan", LeaderboardMsg: "lb", VehiclesMsg: "veh",
	}))
	return war
}

func TestRefreshService_Tick(t *testing.T) {
	ctx := context.Background()

	t.Run("no active war makes no sink calls", func(t *testing.T) {
		store, sink := newFakeStore(), &fakeSink{}
		newTestRefresh(store, sink, fakeResolver{}, nil).Tick(ctx)
		assert.Zero(t, sink.calls())
	})

	t.Run("no publication makes no sink calls", func(t *testing.T) {
		store, sink := newFakeStore(), &fakeSink{}
		_, err := store.StartWar(ctx, "1")
		require.NoError(t, err)

		newTestRefresh(store, sink, fakeResolver{}, nil).Tick(ctx)
		assert.Zero(t, sink.calls())
		assert.NotContains(t, store.calls, "GetWarLeaderboard")
	})

	t.Run("updates both messages", func(t *testing.T) {
		store, sink := newFakeStore(), &fakeSink{}
		war := seedWar(t, store, "42")
		_, err := store.RecordDestruction(ctx, models.Destruction{
			PlayerID: "p1", WarID: war.ID, Vehicle: models.VehicleLightTanks, DisplayName: models.VehicleLightTanks, Amount: 2,
		})
		require.NoError(t, err)

		newTestRefresh(store, sink, fakeResolver{}, nil).Tick(ctx)

		require.Len(t, sink.updated, 2)
		assert.Equal(t, sinkCall{
			Location: "chan", Handle: "lb",
			Text: "🏆 **Лидерборд — Война #42**\n\n**1. name-p1** — 6\n\n⏱ 18:05 UTC",
		}, sink.updated[0])
		assert.Equal(t, sinkCall{
			Location: "chan", Handle: "veh",
			Text: "🚗 **Техника — Война #42**\n\n**Легкие танки** — 2\n\n⏱ 18:05 UTC",
		}, sink.updated[1])
	})

	t.Run("one unresolved player among ten keeps the other nine", func(t *testing.T) {
		store, sink := newFakeStore(), &fakeSink{}
		war := seedWar(t, store, "42")
		for i := 0; i < 10; i++ {
			_, err := store.RecordDestruction(ctx, models.Destruction{
				PlayerID: fmt.Sprintf("p%d", i), WarID: war.ID,
				Vehicle: models.VehicleLogistics, DisplayName: models.VehicleLogistics, Amount: 10 - i,
			})
			require.NoError(t, err)
		}

		resolver := fakeResolver{missing: map[string]bool{"p4": true}}
		newTestRefresh(store, sink, resolver, nil).Tick(ctx)

		require.Len(t, sink.updated, 2)
		text := sink.updated[0].Text
		assert.Equal(t, 9, strings.Count(text, "name-p"))
		assert.NotContains(t, text, "name-p4")
		assert.Contains(t, text, "**6. name-p5** — 5")
	})

	t.Run("resolver errors other than not found are skipped too", func(t *testing.T) {
		store, sink := newFakeStore(), &fakeSink{}
		war := seedWar(t, store, "42")
		for _, p := range []string{"a", "b"} {
			_, err := store.RecordDestruction(ctx, models.Destruction{
				PlayerID: p, WarID: war.ID, Vehicle: models.VehicleLogistics, DisplayName: models.VehicleLogistics, Amount: 1,
			})
			require.NoError(t, err)
		}

		newTestRefresh(store, sink, fakeResolver{failing: map[string]bool{"a": true}}, nil).Tick(ctx)
		require.Len(t, sink.updated, 2)
		assert.Contains(t, sink.updated[0].Text, "**2. name-b** — 1")
	})

	t.Run("empty board", func(t *testing.T) {
		store, sink := newFakeStore(), &fakeSink{}
		seedWar(t, store, "42")

		newTestRefresh(store, sink, fakeResolver{}, nil).Tick(ctx)
		require.Len(t, sink.updated, 2)
		assert.Contains(t, sink.updated[0].Text, emptyBoardText)
		assert.Contains(t, sink.updated[1].Text, emptyBoardText)
	})

	t.Run("failed leaderboard update still updates vehicles", func(t *testing.T) {
		store := newFakeStore()
		sink := &fakeSink{updateErr: map[string]error{"lb": fmt.Errorf("%w: unknown message", ErrNotFound)}}
		seedWar(t, store, "42")

		r := newTestRefresh(store, sink, fakeResolver{}, nil)
		r.Tick(ctx)
		r.Tick(ctx)

		require.Len(t, sink.updated, 4)
		assert.Equal(t, "veh", sink.updated[1].Handle)
		assert.Equal(t, "veh", sink.updated[3].Handle)
	})

	t.Run("store failure ends the tick quietly", func(t *testing.T) {
		store, sink := newFakeStore(), &fakeSink{}
		seedWar(t, store, "42")
		store.err = errors.New("connection refused")

		newTestRefresh(store, sink, fakeResolver{}, nil).Tick(ctx)
		assert.Zero(t, sink.calls())
	})

	t.Run("mirror receives the same rows", func(t *testing.T) {
		store, sink := newFakeStore(), &fakeSink{}
		war := seedWar(t, store, "42")
		_, err := store.CorrectDestruction(ctx, models.Correction{
			EditorID: "o", TargetID: "p1", WarID: war.ID, Vehicle: models.VehicleLogistics, DisplayName: models.VehicleLogistics, Delta: -2,
		})
		require.NoError(t, err)

		mirror := &fakeMirror{err: errors.New("quota exceeded")}
		newTestRefresh(store, sink, fakeResolver{}, mirror).Tick(ctx)

		assert.Equal(t, "Война #42", mirror.title)
		assert.Equal(t, [][]interface{}{
			{"Место", "Игрок", "Очки"},
			{1, "name-p1", 0},
		}, mirror.rows)
		assert.Len(t, sink.updated, 2)
	})
}

func TestRefreshService_Lifecycle(t *testing.T) {
	store, sink := newFakeStore(), &fakeSink{}
	seedWar(t, store, "42")

	r := NewRefreshService(store, store, store, sink, fakeResolver{}, nil,
		RefreshOptions{Interval: 20 * time.Millisecond, CallTimeout: time.Second}, nopLogger{})
	require.NoError(t, r.Init())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	r.Run(ctx)

	assert.Eventually(t, func() bool { return sink.calls() >= 4 }, 2*time.Second, 10*time.Millisecond)

	r.Stop()
	after := sink.calls()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, after, sink.calls())
}

func TestRefreshOptions_Defaults(t *testing.T) {
	opts := RefreshOptions{}.withDefaults()
	assert.Equal(t, defaultRefreshInterval, opts.Interval)
	assert.Equal(t, defaultExternalCallTimeout, opts.CallTimeout)
	assert.Equal(t, defaultLeaderboardLimit, opts.LeaderboardLimit)
}
