// Package worker runs the scheduled monthly rollover: at each calendar
// month boundary every family's quota is reset and reallocated.
package worker

import (
	"context"
	"time"

	familydomain "family-scheduler-go/internal/domain/family"
	"family-scheduler-go/pkg/logger"
)

type RolloverRunner interface {
	MonthlyRollover(ctx context.Context, now time.Time) ([]familydomain.RolloverFailure, error)
}

type Rollover struct {
	families RolloverRunner
	log      logger.Logger
	now      func() time.Time

	// interval, when positive, replaces the month-boundary schedule
	// with a fixed period. Meant for staging environments.
	interval time.Duration
}

func NewRollover(families RolloverRunner, interval time.Duration, log logger.Logger) *Rollover {
	return &Rollover{
		families: families,
		log:      log,
		now:      time.Now,
		interval: interval,
	}
}

// Run blocks until ctx is done, firing once at every month boundary
// (or every fixed interval when one is configured). One family's
// failure never stops the batch; failures are logged per family after
// each run.
func (w *Rollover) Run(ctx context.Context) {
	for {
		var wait time.Duration
		if w.interval > 0 {
			wait = w.interval
			w.log.Info("rollover: sleeping for fixed interval", "interval", w.interval)
		} else {
			next := nextMonthStart(w.now())
			wait = time.Until(next)
			w.log.Info("rollover: sleeping until next month boundary", "next", next)
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			w.log.Info("rollover: stopped")
			return
		case <-timer.C:
		}

		w.RunOnce(ctx)
	}
}

// RunOnce performs a single rollover pass for the current time.
func (w *Rollover) RunOnce(ctx context.Context) {
	now := w.now()
	w.log.Info("rollover: starting monthly rollover", "month", now.Format("2006-01"))

	failures, err := w.families.MonthlyRollover(ctx, now)
	if err != nil {
		w.log.Error("rollover: batch failed", "err", err)
		return
	}

	for _, failure := range failures {
		w.log.Error("rollover: family failed", "family_id", failure.FamilyID, "err", failure.Err)
	}
	w.log.Info("rollover: monthly rollover complete", "failed", len(failures))
}

func nextMonthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month()+1, 1, 0, 0, 0, 0, t.Location())
}
