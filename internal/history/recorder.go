package history

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jopli11/PreStocks-Tracker/internal/metrics"
	"github.com/jopli11/PreStocks-Tracker/internal/refresh"
)

// snapshotRow is one feed record flattened for the feed_snapshots table.
type snapshotRow struct {
	SnapshotID uuid.UUID
	CapturedAt int64 // µs since epoch
	Symbol     string
	Name       string
	Price      *float64
	Valuation  *float64
	Supply     *float64
}

// Stats tracks recorder activity.
type Stats struct {
	Inserts int64
	Errors  int64
	Flushes int64
}

// Recorder consumes refresh updates and writes them to the database.
type Recorder struct {
	db      *pgxpool.Pool
	updates <-chan refresh.Update
	logger  *slog.Logger

	statsMu sync.Mutex
	stats   Stats

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewRecorder creates a Recorder reading from updates.
func NewRecorder(db *pgxpool.Pool, updates <-chan refresh.Update, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.Default()
	}
	return &Recorder{
		db:      db,
		updates: updates,
		logger:  logger,
	}
}

// Start begins consuming updates.
func (r *Recorder) Start(ctx context.Context) error {
	r.ctx, r.cancel = context.WithCancel(ctx)

	r.wg.Add(1)
	go r.consumeLoop()

	r.logger.Info("history recorder started")
	return nil
}

// Stop gracefully shuts down the recorder.
func (r *Recorder) Stop(ctx context.Context) error {
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
		r.logger.Info("history recorder stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Stats returns current recorder counters.
func (r *Recorder) Stats() Stats {
	r.statsMu.Lock()
	defer r.statsMu.Unlock()
	return r.stats
}

// Ping reports database health for the /healthz endpoint.
func (r *Recorder) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}

func (r *Recorder) consumeLoop() {
	defer r.wg.Done()

	for {
		select {
		case <-r.ctx.Done():
			return
		case u := <-r.updates:
			r.record(u)
		}
	}
}

// record flattens one update into rows and batch-inserts them.
func (r *Recorder) record(u refresh.Update) {
	rows := buildRows(u, time.Now())
	if len(rows) == 0 {
		return
	}

	start := time.Now()

	if err := r.batchInsert(rows); err != nil {
		metrics.HistoryErrors.Inc()
		r.statsMu.Lock()
		r.stats.Errors++
		r.statsMu.Unlock()
		r.logger.Error("history batch insert failed",
			"cycle", u.CycleID,
			"error", err,
			"count", len(rows),
		)
		return
	}

	metrics.HistoryInserts.Add(float64(len(rows)))
	r.statsMu.Lock()
	r.stats.Inserts += int64(len(rows))
	r.stats.Flushes++
	r.statsMu.Unlock()

	r.logger.Debug("recorded snapshot",
		"cycle", u.CycleID,
		"rows", len(rows),
		"duration", time.Since(start),
	)
}

// buildRows flattens the update's records into table rows. Records without
// a symbol and name are skipped: they can never be matched or displayed,
// so there is nothing worth keying history on.
func buildRows(u refresh.Update, capturedAt time.Time) []snapshotRow {
	rows := make([]snapshotRow, 0, len(u.Snapshot.Records))
	for i := range u.Snapshot.Records {
		rec := &u.Snapshot.Records[i]
		if rec.Symbol == "" && rec.Name == "" {
			continue
		}
		rows = append(rows, snapshotRow{
			SnapshotID: u.CycleID,
			CapturedAt: capturedAt.UnixMicro(),
			Symbol:     rec.Symbol,
			Name:       rec.Name,
			Price:      rec.Price(),
			Valuation:  rec.Valuation(),
			Supply:     rec.Supply,
		})
	}
	return rows
}

// batchInsert writes rows using pgx.Batch.
func (r *Recorder) batchInsert(rows []snapshotRow) error {
	batch := &pgx.Batch{}
	for _, row := range rows {
		batch.Queue(`
			INSERT INTO feed_snapshots (snapshot_id, captured_at, symbol, name, price, valuation, supply)
			VALUES ($1, $2, $3, $4, $5, $6, $7)
		`, row.SnapshotID, row.CapturedAt, row.Symbol, row.Name, row.Price, row.Valuation, row.Supply)
	}

	results := r.db.SendBatch(r.ctx, batch)
	defer results.Close()

	for range rows {
		if _, err := results.Exec(); err != nil {
			return err
		}
	}

	return nil
}
