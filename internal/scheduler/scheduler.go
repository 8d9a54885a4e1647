// Package scheduler runs the periodic extension of open recurring events
// into the new year.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Extender materializes the occurrences open series are missing.
type Extender interface {
	ExtendAll(ctx context.Context) (int, error)
}

type Scheduler struct {
	cron     *cron.Cron
	extender Extender
	logger   *zap.Logger
}

// New schedules extender on the standard five-field cron spec, evaluated in loc.
func New(spec string, loc *time.Location, extender Extender, logger *zap.Logger) (*Scheduler, error) {
	s := &Scheduler{
		cron:     cron.New(cron.WithLocation(loc)),
		extender: extender,
		logger:   logger,
	}
	if _, err := s.cron.AddFunc(spec, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("schedule series extension %q: %w", spec, err)
	}
	return s, nil
}

// Start catches up on extensions missed while the server was down, then
// hands the job to cron.
func (s *Scheduler) Start(ctx context.Context) {
	s.RunOnce(ctx)
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.logger.Info("Series extension scheduled", zap.Time("next", e.Schedule.Next(time.Now().In(s.cron.Location()))))
	}
}

// Stop stops the scheduler; the returned context is done once a running
// job has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// RunOnce extends all open series now.
func (s *Scheduler) RunOnce(ctx context.Context) {
	started := time.Now()
	n, err := s.extender.ExtendAll(ctx)
	if err != nil {
		s.logger.Error("Series extension finished with errors", zap.Int("occurrences", n), zap.Error(err))
		return
	}
	s.logger.Info("Series extension finished", zap.Int("occurrences", n), zap.Duration("took", time.Since(started)))
}
