package settlement

import (
	"context"
	"log/slog"
	"time"
)

type ExpiredCleaner interface {
	CleanupExpired(ctx context.Context) (int64, error)
}

// Worker keeps the current settlement window of every active benefit and
// fleet warm in the cache, and sweeps expired cache entries. Read-side only:
// losing a run costs nothing but a cold cache.
type Worker struct {
	service  *Service
	repo     Aggregator
	cleaner  ExpiredCleaner
	logger   *slog.Logger
	interval time.Duration
}

func NewWorker(service *Service, repo Aggregator, cleaner ExpiredCleaner, logger *slog.Logger, interval time.Duration) *Worker {
	return &Worker{
		service:  service,
		repo:     repo,
		cleaner:  cleaner,
		logger:   logger,
		interval: interval,
	}
}

// Run starts the worker loop
func (w *Worker) Run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("settlement worker started", "interval", w.interval)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("settlement worker stopped")
			return
		case <-ticker.C:
			w.refreshAll(ctx)
		}
	}
}

func (w *Worker) refreshAll(ctx context.Context) {
	now := time.Now()

	benefits, err := w.repo.ListActiveBenefits(ctx)
	if err != nil {
		w.logger.Error("failed to list active benefits", "error", err)
	}
	for _, b := range benefits {
		if _, err := w.service.BenefitSummary(ctx, b.ID, now); err != nil {
			w.logger.Warn("failed to refresh benefit settlement",
				"error", err,
				"benefit_id", b.ID,
			)
		}
	}

	fleets, err := w.repo.ListActiveFleets(ctx)
	if err != nil {
		w.logger.Error("failed to list active fleets", "error", err)
	}
	for _, f := range fleets {
		if _, err := w.service.FleetSummary(ctx, f.ID, now); err != nil {
			w.logger.Warn("failed to refresh fleet settlement",
				"error", err,
				"fleet_id", f.ID,
			)
		}
	}

	if w.cleaner != nil {
		if n, err := w.cleaner.CleanupExpired(ctx); err != nil {
			w.logger.Warn("failed to clean expired cache entries", "error", err)
		} else if n > 0 {
			w.logger.Debug("expired cache entries removed", "count", n)
		}
	}

	w.logger.Debug("settlement refresh completed",
		"benefits", len(benefits),
		"fleets", len(fleets),
	)
}
