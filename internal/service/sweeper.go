package service

import (
	"context"
	"log/slog"
	"time"
)

// DefaultSweepInterval is how often the sweeper garbage-collects expired
// share codes unless configured otherwise.
const DefaultSweepInterval = time.Minute

type shareCodeCleaner interface {
	DeleteExpiredBefore(ctx context.Context, t time.Time) (int64, error)
}

// ShareCodeSweeper periodically deletes expired share codes. It is pure
// garbage collection: read paths already treat expired rows as missing and
// delete them lazily, so correctness never depends on the sweep running.
// Without it the store just grows with abandoned codes.
type ShareCodeSweeper struct {
	codes    shareCodeCleaner
	logger   *slog.Logger
	interval time.Duration
	now      func() time.Time
}

func NewShareCodeSweeper(codes shareCodeCleaner, logger *slog.Logger, interval time.Duration) *ShareCodeSweeper {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}

	return &ShareCodeSweeper{
		codes:    codes,
		logger:   logger,
		interval: interval,
		now:      time.Now,
	}
}

// Run sweeps on the configured interval until the context is done. A failed
// sweep is logged and retried on the next tick; double-deleting a row that a
// concurrent lazy cleanup already removed is harmless.
func (sw *ShareCodeSweeper) Run(ctx context.Context) error {
	ticker := time.NewTicker(sw.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			sw.Sweep(ctx)
		}
	}
}

// Sweep removes all currently expired share codes once.
func (sw *ShareCodeSweeper) Sweep(ctx context.Context) {
	count, err := sw.codes.DeleteExpiredBefore(ctx, sw.now())
	if err != nil {
		sw.logger.Error("share code sweep failed", slog.Any("err", err))
		return
	}

	if count > 0 {
		sw.logger.Info("removed expired share codes", slog.Int64("count", count))
	}
}
