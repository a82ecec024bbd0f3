package refresh

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jopli11/PreStocks-Tracker/internal/metrics"
	"github.com/jopli11/PreStocks-Tracker/internal/model"
)

// LastUpdatedPlaceholder is shown until the first successful refresh.
const LastUpdatedPlaceholder = "--:--:--"

// Source provides feed records to refresh from.
type Source interface {
	Fetch(ctx context.Context) ([]model.FeedRecord, error)
}

// Config holds refresher configuration.
type Config struct {
	Interval time.Duration // Poll interval (default: 60s)
	Timeout  time.Duration // Per-fetch timeout (default: 10s)
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		Interval: 60 * time.Second,
		Timeout:  10 * time.Second,
	}
}

// Snapshot is the read-only view of refresher state handed to consumers.
type Snapshot struct {
	Records     []model.FeedRecord
	LastUpdated string
	Loading     bool
}

// Update is broadcast to subscribers after each successful refresh.
type Update struct {
	CycleID  uuid.UUID
	Snapshot Snapshot
}

// Refresher owns the polling loop and the current feed snapshot. The
// snapshot is replaced atomically; consumers only ever see the most
// recently completed successful refresh.
type Refresher struct {
	cfg    Config
	source Source
	logger *slog.Logger

	mu          sync.RWMutex
	records     []model.FeedRecord
	loading     bool
	lastUpdated string

	subMu sync.Mutex
	subs  []chan Update

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// New creates a Refresher. The feed starts empty, loading, with a
// placeholder timestamp.
func New(cfg Config, source Source, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.Interval <= 0 {
		cfg.Interval = DefaultConfig().Interval
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultConfig().Timeout
	}
	return &Refresher{
		cfg:         cfg,
		source:      source,
		logger:      logger,
		loading:     true,
		lastUpdated: LastUpdatedPlaceholder,
	}
}

// Start begins the polling loop: one refresh immediately, then one per
// interval.
func (r *Refresher) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.run()

	r.logger.Info("refresher started", "interval", r.cfg.Interval)
	return nil
}

// Stop cancels the polling loop and waits for in-flight refreshes. After
// Stop returns no further fetch is issued; a tick already scheduled but
// not yet fired does not fire.
func (r *Refresher) Stop(ctx context.Context) error {
	if r.cancel != nil {
		r.cancel()
	}

	done := make(chan struct{})
	go func() {
		r.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		r.logger.Info("refresher stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Snapshot returns a copy of the current state. The record slice is
// cloned so callers get a read-only derived view.
func (r *Refresher) Snapshot() Snapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return Snapshot{
		Records:     append([]model.FeedRecord(nil), r.records...),
		LastUpdated: r.lastUpdated,
		Loading:     r.loading,
	}
}

// Subscribe returns a channel receiving an Update after every successful
// refresh. Slow subscribers have updates dropped rather than blocking the
// loop.
func (r *Refresher) Subscribe() <-chan Update {
	ch := make(chan Update, 4)
	r.subMu.Lock()
	r.subs = append(r.subs, ch)
	r.subMu.Unlock()
	return ch
}

// run is the main polling loop.
func (r *Refresher) run() {
	defer r.wg.Done()

	ticker := time.NewTicker(r.cfg.Interval)
	defer ticker.Stop()

	// Refresh immediately on activation.
	r.spawnRefresh()

	for {
		select {
		case <-r.ctx.Done():
			return
		case <-ticker.C:
			r.spawnRefresh()
		}
	}
}

// spawnRefresh runs one refresh in its own goroutine. Refreshes are not
// serialized against each other: a fetch slower than the interval may
// overlap the next one. Replacement is atomic per completed call, so the
// snapshot stays consistent either way.
func (r *Refresher) spawnRefresh() {
	r.wg.Add(1)
	go func() {
		defer r.wg.Done()
		r.refresh()
	}()
}

// refresh performs a single fetch-and-replace cycle. Failures of any kind
// are logged and swallowed; the previous snapshot stays visible.
func (r *Refresher) refresh() {
	cycle := uuid.New()
	start := time.Now()

	metrics.RefreshTotal.Inc()

	ctx, cancel := context.WithTimeout(r.ctx, r.cfg.Timeout)
	defer cancel()

	records, err := r.source.Fetch(ctx)
	metrics.RefreshDuration.Observe(time.Since(start).Seconds())

	if err != nil {
		metrics.RefreshFailures.Inc()

		r.mu.Lock()
		r.loading = false
		r.mu.Unlock()

		r.logger.Warn("feed refresh failed",
			"cycle", cycle,
			"error", err,
			"duration", time.Since(start),
		)
		return
	}

	updated := time.Now().Format("15:04:05")

	r.mu.Lock()
	r.records = records
	r.lastUpdated = updated
	r.loading = false
	r.mu.Unlock()

	metrics.FeedRecords.Set(float64(len(records)))

	r.logger.Info("feed refreshed",
		"cycle", cycle,
		"records", len(records),
		"duration", time.Since(start),
	)

	r.broadcast(Update{CycleID: cycle, Snapshot: r.Snapshot()})
}

// broadcast delivers an update to all subscribers without blocking.
func (r *Refresher) broadcast(u Update) {
	r.subMu.Lock()
	defer r.subMu.Unlock()

	for _, ch := range r.subs {
		select {
		case ch <- u:
		default:
			r.logger.Warn("dropping update for slow subscriber", "cycle", u.CycleID)
		}
	}
}
