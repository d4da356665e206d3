package monitoring

import (
	"github.com/lenskeep/camvault-be/internal/repository"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// ValuationTracker periodically records the collection's total
// estimated value so the API can serve a value-over-time history.
type ValuationTracker struct {
	repo repository.CameraRepositoryProvider
	cron *cron.Cron
}

// NewValuationTracker creates a tracker snapshotting on the given cron
// schedule (e.g. "@daily").
func NewValuationTracker(repo repository.CameraRepositoryProvider, schedule string) (*ValuationTracker, error) {
	t := &ValuationTracker{
		repo: repo,
		cron: cron.New(),
	}
	if _, err := t.cron.AddFunc(schedule, t.snapshot); err != nil {
		return nil, err
	}
	return t, nil
}

// Start begins the snapshot schedule and records one snapshot
// immediately so a fresh deployment has a baseline point.
func (t *ValuationTracker) Start() {
	log.Info().Msg("Starting valuation tracker")
	t.snapshot()
	t.cron.Start()
}

// Stop halts the schedule. Already-running snapshots finish.
func (t *ValuationTracker) Stop() {
	log.Info().Msg("Stopping valuation tracker")
	t.cron.Stop()
}

func (t *ValuationTracker) snapshot() {
	total, err := t.repo.TotalValue()
	if err != nil {
		log.Error().Err(err).Msg("Valuation snapshot: failed to compute total value")
		return
	}
	count, err := t.repo.Count(repository.CameraFilter{})
	if err != nil {
		log.Error().Err(err).Msg("Valuation snapshot: failed to count cameras")
		return
	}
	if err := t.repo.InsertValuationSnapshot(total, count); err != nil {
		log.Error().Err(err).Msg("Valuation snapshot: failed to record snapshot")
		return
	}
	log.Debug().Float64("total_value", total).Int("cameras", count).Msg("Recorded valuation snapshot")
}
