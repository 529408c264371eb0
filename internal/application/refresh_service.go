package application

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"foxhole/internal/repository"

	"github.com/go-co-op/gocron/v2"
)

type RefreshOptions struct {
	Interval         time.Duration
	CallTimeout      time.Duration
	LeaderboardLimit int
}

func (o RefreshOptions) withDefaults() RefreshOptions {
	if o.Interval <= 0 {
		o.Interval = defaultRefreshInterval
	}
	if o.CallTimeout <= 0 {
		o.CallTimeout = defaultExternalCallTimeout
	}
	if o.LeaderboardLimit <= 0 {
		o.LeaderboardLimit = defaultLeaderboardLimit
	}
	return o
}

// RefreshService periodically rewrites the live messages of the active war.
// Ticks never overlap and a failed tick is simply retried on the next interval.
type RefreshService struct {
	wars     repository.War
	ledger   repository.Ledger
	pubs     repository.Publication
	sink     PublicationSink
	resolver IdentityResolver
	mirror   LeaderboardMirror
	opts     RefreshOptions
	logger   Logger
	now      func() time.Time

	scheduler gocron.Scheduler

	mu     sync.Mutex
	ctx    context.Context
	cancel context.CancelFunc
}

func NewRefreshService(wars repository.War, ledger repository.Ledger, pubs repository.Publication, sink PublicationSink, resolver IdentityResolver, mirror LeaderboardMirror, opts RefreshOptions, logger Logger) *RefreshService {
	return &RefreshService{
		wars:     wars,
		ledger:   ledger,
		pubs:     pubs,
		sink:     sink,
		resolver: resolver,
		mirror:   mirror,
		opts:     opts.withDefaults(),
		logger:   logger,
		now:      time.Now,
		ctx:      context.Background(),
	}
}

func (r *RefreshService) Init() error {
	s, err := gocron.NewScheduler()
	if err != nil {
		return fmt.Errorf("failed to create scheduler: %w", err)
	}

	_, err = s.NewJob(
		gocron.DurationJob(r.opts.Interval),
		gocron.NewTask(r.runTick),
		gocron.WithName("live-leaderboard"),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
		gocron.WithStartAt(gocron.WithStartImmediately()),
	)
	if err != nil {
		return fmt.Errorf("failed to schedule refresh job: %w", err)
	}

	r.scheduler = s
	return nil
}

func (r *RefreshService) Run(ctx context.Context) {
	r.mu.Lock()
	r.ctx, r.cancel = context.WithCancel(ctx)
	r.mu.Unlock()

	r.logger.Info("live leaderboard refresh started, interval %s", r.opts.Interval)
	r.scheduler.Start()
}

func (r *RefreshService) Stop() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()

	if r.scheduler == nil {
		return
	}
	if err := r.scheduler.Shutdown(); err != nil {
		r.logger.Warn("refresh scheduler shutdown: %v", err)
	}
}

func (r *RefreshService) runTick() {
	defer func() {
		if rec := recover(); rec != nil {
			r.logger.Error("refresh tick panicked: %v", rec)
		}
	}()

	r.mu.Lock()
	ctx := r.ctx
	r.mu.Unlock()

	if ctx.Err() != nil {
		return
	}
	r.Tick(ctx)
}

// Tick performs one refresh of the active war's live messages.
func (r *RefreshService) Tick(ctx context.Context) {
	war, err := r.wars.GetActiveWar(ctx)
	if err != nil {
		r.logger.Error("refresh: failed to get active war: %v", err)
		return
	}
	if war == nil {
		return
	}

	pub, err := r.pubs.Lookup(ctx, war.ID)
	if err != nil {
		r.logger.Error("refresh: failed to lookup live publication for war %s: %v", war.Name, err)
		return
	}
	if pub == nil {
		return
	}

	entries, err := r.ledger.GetWarLeaderboard(ctx, war.ID, r.opts.LeaderboardLimit)
	if err != nil {
		r.logger.Error("refresh: failed to get leaderboard for war %s: %v", war.Name, err)
		return
	}

	totals, err := r.ledger.GetVehicleTotals(ctx, war.ID)
	if err != nil {
		r.logger.Error("refresh: failed to get vehicle totals for war %s: %v", war.Name, err)
		return
	}

	standings := resolveStandings(ctx, r.resolver, entries, r.opts.CallTimeout, r.logger)
	now := r.now()

	r.update(ctx, pub.ChannelID, pub.LeaderboardMsg, RenderLeaderboard(*war, standings, now))
	r.update(ctx, pub.ChannelID, pub.VehiclesMsg, RenderVehicles(*war, totals, now))

	if r.mirror != nil {
		callCtx, cancel := context.WithTimeout(ctx, r.opts.CallTimeout)
		defer cancel()
		if err := r.mirror.Publish(callCtx, "Война #"+war.Name, standingsRows(standings)); err != nil {
			r.logger.Warn("refresh: leaderboard mirror failed: %v", err)
		}
	}
}

func (r *RefreshService) update(ctx context.Context, location, handle, text string) {
	callCtx, cancel := context.WithTimeout(ctx, r.opts.CallTimeout)
	defer cancel()

	err := r.sink.UpdateMessage(callCtx, location, handle, text)
	switch {
	case err == nil:
	case errors.Is(err, ErrNotFound):
		r.logger.Warn("refresh: live message %s in %s is gone", handle, location)
	default:
		r.logger.Warn("refresh: failed to update message %s in %s: %v", handle, location, err)
	}
}
