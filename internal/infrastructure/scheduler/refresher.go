// Package scheduler runs the background curriculum refresh. The objective
// table is immutable at request time; the refresher periodically rebuilds it
// from the source and swaps the new table in atomically.
package scheduler

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/kayrademirkan/mebtg/internal/domain/curriculum"
)

// Refresher reloads the curriculum table on a fixed interval.
type Refresher struct {
	source   curriculum.Source
	holder   *curriculum.Holder
	interval time.Duration
	logger   *slog.Logger

	mu      sync.Mutex
	lastRun time.Time
	lastErr error
}

// NewRefresher creates a refresher. An interval of zero disables it; Run
// returns immediately in that case.
func NewRefresher(source curriculum.Source, holder *curriculum.Holder, interval time.Duration, logger *slog.Logger) *Refresher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Refresher{
		source:   source,
		holder:   holder,
		interval: interval,
		logger:   logger,
	}
}

// Run blocks until the context is cancelled, refreshing on every tick. A
// failed reload is logged and the previous table stays in service.
func (r *Refresher) Run(ctx context.Context) {
	if r.interval <= 0 {
		return
	}

	r.logger.Info("curriculum refresher started", "interval", r.interval)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			r.logger.Info("curriculum refresher stopped")
			return
		case <-ticker.C:
			r.refresh(ctx)
		}
	}
}

func (r *Refresher) refresh(ctx context.Context) {
	started := time.Now()
	table, err := r.source.Load(ctx)

	r.mu.Lock()
	r.lastRun = started
	r.lastErr = err
	r.mu.Unlock()

	if err != nil {
		r.logger.Error("curriculum refresh failed, keeping current table",
			"error", err,
			"duration", time.Since(started),
		)
		return
	}

	r.holder.Swap(table)
	r.logger.Info("curriculum table refreshed",
		"entries", table.Size(),
		"duration", time.Since(started),
	)
}

// LastResult returns the time and error of the most recent refresh attempt.
func (r *Refresher) LastResult() (time.Time, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lastRun, r.lastErr
}
