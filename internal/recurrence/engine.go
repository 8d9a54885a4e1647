package recurrence

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdg-garage/venue-events-api/internal/metrics"
	"github.com/gdg-garage/venue-events-api/internal/models"
	"github.com/gdg-garage/venue-events-api/internal/timerange"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// Repository is the persistence the engine writes series through.
type Repository interface {
	// Transaction runs fn against a repository bound to a single transaction.
	Transaction(ctx context.Context, fn func(repo Repository) error) error
	// ResolveReferences maps location and file upload guids to row ids.
	ResolveReferences(ctx context.Context, locationGUID, fileUploadGUID string) (locationID, fileUploadID uint, err error)
	CreateRecurringEvent(ctx context.Context, series *models.RecurringEvent) error
	CreateOccurrence(ctx context.Context, occurrence *models.SingleEvent) error
	// LastOccurrence returns the latest occurrence of a series, or nil.
	LastOccurrence(ctx context.Context, seriesID uint) (*models.SingleEvent, error)
	// MarkGenerated records the series end of a generation run together
	// with the rule rendered up to it.
	MarkGenerated(ctx context.Context, seriesID uint, until time.Time, rrule string) error
	// OpenSeries lists series generated up to some point before until that
	// may still have occurrences left.
	OpenSeries(ctx context.Context, until time.Time) ([]models.RecurringEvent, error)
}

// Config configures an Engine. Zero fields fall back to the system clock,
// UTC, a no-op logger and no metrics.
type Config struct {
	Clock    Clock
	Location *time.Location
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// Engine materializes recurring events into single-event occurrences.
type Engine struct {
	repo    Repository
	clock   Clock
	loc     *time.Location
	logger  *zap.Logger
	metrics *metrics.Metrics
}

func NewEngine(repo Repository, cfg Config) *Engine {
	e := &Engine{
		repo:    repo,
		clock:   cfg.Clock,
		loc:     cfg.Location,
		logger:  cfg.Logger,
		metrics: cfg.Metrics,
	}
	if e.clock == nil {
		e.clock = SystemClock
	}
	if e.loc == nil {
		e.loc = time.UTC
	}
	if e.logger == nil {
		e.logger = zap.NewNop()
	}
	return e
}

// Request describes a new recurring event.
type Request struct {
	models.EventText
	StartFirstOccurrence time.Time
	EndFirstOccurrence   time.Time
	EndRecurrence        mo.Option[time.Time]
	Recurrence           models.Recurrence
	RecurrenceMetadata   int
	EventLocationGUID    string
	FileUploadGUID       string
	CreatedByID          uint
}

// Generate validates req, stores the series template and materializes every
// occurrence from the first one up to the effective series end: the end of
// the current year, or EndRecurrence if that is sooner. Validation failures
// are returned before anything is written. Writes share one transaction.
func (e *Engine) Generate(ctx context.Context, req Request) (*models.RecurringEvent, error) {
	if !timerange.Valid(req.StartFirstOccurrence, req.EndFirstOccurrence) {
		return nil, fmt.Errorf("first occurrence: %w", timerange.ErrInvalidTimeRange)
	}
	if end, ok := req.EndRecurrence.Get(); ok && !timerange.Valid(req.StartFirstOccurrence, end) {
		return nil, fmt.Errorf("end of recurrence: %w", timerange.ErrInvalidTimeRange)
	}
	rule, err := NewRule(req.Recurrence, req.RecurrenceMetadata)
	if err != nil {
		return nil, err
	}

	first := Window{Start: req.StartFirstOccurrence, End: req.EndFirstOccurrence}.In(e.loc)
	until := EffectiveEnd(e.clock.Now(), req.EndRecurrence, e.loc)

	rr, err := rule.RRule(first.Start, until)
	if err != nil {
		return nil, err
	}

	series := &models.RecurringEvent{
		EventText:            req.EventText,
		Recurrence:           rule.Kind(),
		RecurrenceMetadata:   rule.Metadata(),
		StartFirstOccurrence: first.Start,
		EndFirstOccurrence:   first.End,
		RRule:                rr,
		GeneratedUntil:       until,
		CreatedByID:          req.CreatedByID,
	}
	if end, ok := req.EndRecurrence.Get(); ok {
		series.EndRecurrence = &end
	}

	var count int
	err = e.repo.Transaction(ctx, func(repo Repository) error {
		locationID, fileUploadID, err := repo.ResolveReferences(ctx, req.EventLocationGUID, req.FileUploadGUID)
		if err != nil {
			return err
		}
		series.EventLocationID = locationID
		series.FileUploadID = fileUploadID

		if err := repo.CreateRecurringEvent(ctx, series); err != nil {
			return err
		}

		count, err = e.materialize(ctx, repo, series, rule, first, until, false)
		return err
	})
	if err != nil {
		return nil, err
	}

	e.metrics.ObserveSeriesGenerated()
	e.metrics.ObserveOccurrences(string(rule.Kind()), count)
	e.logger.Info("recurring event generated",
		zap.String("guid", series.GUID),
		zap.String("recurrence", string(rule.Kind())),
		zap.Int("occurrences", count),
		zap.Time("until", until),
	)
	return series, nil
}

// Extend materializes the occurrences of series falling between the end of
// its last generation and its current effective end. Occurrences edited or
// deleted in the meantime are left alone. New occurrences take their
// visibility from the latest existing one.
func (e *Engine) Extend(ctx context.Context, series *models.RecurringEvent) (int, error) {
	rule, err := NewRule(series.Recurrence, series.RecurrenceMetadata)
	if err != nil {
		return 0, err
	}

	until := EffectiveEnd(e.clock.Now(), mo.PointerToOption(series.EndRecurrence), e.loc)
	from := series.GeneratedUntil
	if !from.Before(until) {
		return 0, nil
	}

	first := Window{Start: series.StartFirstOccurrence, End: series.EndFirstOccurrence}.In(e.loc)
	rr, err := rule.RRule(first.Start, until)
	if err != nil {
		return 0, err
	}

	var count int
	err = e.repo.Transaction(ctx, func(repo Repository) error {
		public := false
		last, err := repo.LastOccurrence(ctx, series.ID)
		if err != nil {
			return err
		}
		if last != nil {
			public = last.IsPublic
		}

		err = Walk(first, rule, until, func(w Window) error {
			if w.Start.Before(from) {
				return nil
			}
			if err := repo.CreateOccurrence(ctx, occurrenceOf(series, w, public)); err != nil {
				return err
			}
			count++
			return nil
		})
		if err != nil {
			return err
		}

		return repo.MarkGenerated(ctx, series.ID, until, rr)
	})
	if err != nil {
		return 0, err
	}

	series.GeneratedUntil = until
	series.RRule = rr
	e.metrics.ObserveSeriesExtended()
	e.metrics.ObserveOccurrences(string(rule.Kind()), count)
	e.logger.Info("recurring event extended",
		zap.String("guid", series.GUID),
		zap.Int("occurrences", count),
		zap.Time("until", until),
	)
	return count, nil
}

// ExtendAll extends every series that may have occurrences left before the
// end of the current year. A failing series does not stop the others.
func (e *Engine) ExtendAll(ctx context.Context) (int, error) {
	open, err := e.repo.OpenSeries(ctx, EndOfYear(e.clock.Now(), e.loc))
	if err != nil {
		return 0, fmt.Errorf("list open series: %w", err)
	}

	var total int
	var errs []error
	for i := range open {
		n, err := e.Extend(ctx, &open[i])
		if err != nil {
			e.logger.Error("failed to extend recurring event", zap.String("guid", open[i].GUID), zap.Error(err))
			errs = append(errs, fmt.Errorf("extend %s: %w", open[i].GUID, err))
			continue
		}
		total += n
	}
	return total, errors.Join(errs...)
}

func (e *Engine) materialize(ctx context.Context, repo Repository, series *models.RecurringEvent, rule Rule, from Window, until time.Time, public bool) (int, error) {
	count := 0
	err := Walk(from, rule, until, func(w Window) error {
		if err := repo.CreateOccurrence(ctx, occurrenceOf(series, w, public)); err != nil {
			return err
		}
		count++
		return nil
	})
	return count, err
}

// Walk calls fn for from and each following window of rule while the
// window starts before until. It stops at the first error fn returns.
func Walk(from Window, rule Rule, until time.Time, fn func(Window) error) error {
	for w := from; w.Start.Before(until); w = rule.Next(w) {
		if !timerange.Valid(w.Start, w.End) {
			return fmt.Errorf("occurrence at %s: %w", w.Start.Format(time.RFC3339), timerange.ErrInvalidTimeRange)
		}
		if err := fn(w); err != nil {
			return err
		}
	}
	return nil
}

// Expand returns the windows Walk visits.
func Expand(from Window, rule Rule, until time.Time) []Window {
	var out []Window
	_ = Walk(from, rule, until, func(w Window) error {
		out = append(out, w)
		return nil
	})
	return out
}

func occurrenceOf(series *models.RecurringEvent, w Window, public bool) *models.SingleEvent {
	seriesID := series.ID
	return &models.SingleEvent{
		EventText:        series.EventText,
		Start:            w.Start,
		End:              w.End,
		IsPublic:         public,
		IsRecurring:      true,
		RecurringEventID: &seriesID,
		EventLocationID:  series.EventLocationID,
		FileUploadID:     series.FileUploadID,
		CreatedByID:      series.CreatedByID,
	}
}
