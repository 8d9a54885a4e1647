package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdg-garage/venue-events-api/internal/models"
	"github.com/gdg-garage/venue-events-api/internal/recurrence"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ recurrence.Repository = (*Store)(nil)

// Transaction runs fn with a Store bound to one database transaction.
func (s *Store) Transaction(ctx context.Context, fn func(repo recurrence.Repository) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(New(tx))
	})
}

func (s *Store) ResolveReferences(ctx context.Context, locationGUID, fileUploadGUID string) (uint, uint, error) {
	var location models.EventLocation
	if err := s.db.WithContext(ctx).Where("guid = ?", locationGUID).First(&location).Error; err != nil {
		return 0, 0, notFound(err, "event location", locationGUID)
	}
	var upload models.FileUpload
	if err := s.db.WithContext(ctx).Where("guid = ?", fileUploadGUID).First(&upload).Error; err != nil {
		return 0, 0, notFound(err, "file upload", fileUploadGUID)
	}
	return location.ID, upload.ID, nil
}

func (s *Store) CreateRecurringEvent(ctx context.Context, series *models.RecurringEvent) error {
	series.StartFirstOccurrence = series.StartFirstOccurrence.UTC()
	series.EndFirstOccurrence = series.EndFirstOccurrence.UTC()
	series.GeneratedUntil = series.GeneratedUntil.UTC()
	if series.EndRecurrence != nil {
		end := series.EndRecurrence.UTC()
		series.EndRecurrence = &end
	}
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(series).Error; err != nil {
		return fmt.Errorf("create recurring event: %w", err)
	}
	return nil
}

func (s *Store) LastOccurrence(ctx context.Context, seriesID uint) (*models.SingleEvent, error) {
	var event models.SingleEvent
	err := s.db.WithContext(ctx).
		Where("recurring_event_id = ?", seriesID).
		Order("start_at DESC").
		First(&event).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("last occurrence of series %d: %w", seriesID, err)
	}
	return &event, nil
}

func (s *Store) MarkGenerated(ctx context.Context, seriesID uint, until time.Time, rrule string) error {
	err := s.db.WithContext(ctx).Model(&models.RecurringEvent{}).
		Where("id = ?", seriesID).
		Updates(map[string]any{"generated_until": until.UTC(), "rrule": rrule}).Error
	if err != nil {
		return fmt.Errorf("mark series %d generated: %w", seriesID, err)
	}
	return nil
}

func (s *Store) OpenSeries(ctx context.Context, until time.Time) ([]models.RecurringEvent, error) {
	var series []models.RecurringEvent
	err := s.db.WithContext(ctx).
		Where("generated_until < ?", until.UTC()).
		Where("(end_recurrence IS NULL OR end_recurrence > generated_until)").
		Find(&series).Error
	if err != nil {
		return nil, fmt.Errorf("list open series: %w", err)
	}
	return series, nil
}

func (s *Store) GetRecurringEvent(ctx context.Context, guid string) (*models.RecurringEvent, error) {
	var series models.RecurringEvent
	if err := s.withRefs(ctx).Where("guid = ?", guid).First(&series).Error; err != nil {
		return nil, notFound(err, "recurring event", guid)
	}
	return &series, nil
}

func (s *Store) ListRecurringEvents(ctx context.Context) ([]models.RecurringEvent, error) {
	var series []models.RecurringEvent
	if err := s.withRefs(ctx).Order("start_first_occurrence ASC").Find(&series).Error; err != nil {
		return nil, fmt.Errorf("list recurring events: %w", err)
	}
	return series, nil
}

// RecurringEventFields are the template fields editable after creation.
type RecurringEventFields struct {
	models.EventText
	EventLocationGUID string
	FileUploadGUID    string
}

// UpdateRecurringEvent changes the template only. Occurrences already
// materialized keep their text, location and image.
func (s *Store) UpdateRecurringEvent(ctx context.Context, guid string, fields RecurringEventFields) (*models.RecurringEvent, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var series models.RecurringEvent
		if err := tx.Where("guid = ?", guid).First(&series).Error; err != nil {
			return notFound(err, "recurring event", guid)
		}

		locationID, fileUploadID, err := New(tx).ResolveReferences(ctx, fields.EventLocationGUID, fields.FileUploadGUID)
		if err != nil {
			return err
		}

		series.EventText = fields.EventText
		series.EventLocationID = locationID
		series.FileUploadID = fileUploadID
		if err := tx.Omit(clause.Associations).Save(&series).Error; err != nil {
			return fmt.Errorf("update recurring event %s: %w", guid, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetRecurringEvent(ctx, guid)
}

// DeleteRecurringEvent removes a template together with all of its
// occurrences.
func (s *Store) DeleteRecurringEvent(ctx context.Context, guid string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var series models.RecurringEvent
		if err := tx.Where("guid = ?", guid).First(&series).Error; err != nil {
			return notFound(err, "recurring event", guid)
		}
		if err := tx.Where("recurring_event_id = ?", series.ID).Delete(&models.SingleEvent{}).Error; err != nil {
			return fmt.Errorf("delete occurrences of %s: %w", guid, err)
		}
		if err := tx.Delete(&series).Error; err != nil {
			return fmt.Errorf("delete recurring event %s: %w", guid, err)
		}
		return nil
	})
}

// SetSeriesPublic flips the visibility of every occurrence of a series and
// returns how many occurrences it has.
func (s *Store) SetSeriesPublic(ctx context.Context, guid string, public bool) (int64, error) {
	var n int64
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var series models.RecurringEvent
		if err := tx.Where("guid = ?", guid).First(&series).Error; err != nil {
			return notFound(err, "recurring event", guid)
		}
		res := tx.Model(&models.SingleEvent{}).
			Where("recurring_event_id = ?", series.ID).
			Update("is_public", public)
		if res.Error != nil {
			return fmt.Errorf("set visibility of series %s: %w", guid, res.Error)
		}
		n = res.RowsAffected
		return nil
	})
	return n, err
}

// Occurrences returns the occurrences of a series ordered by start.
func (s *Store) Occurrences(ctx context.Context, guid string) ([]models.SingleEvent, error) {
	series, err := s.GetRecurringEvent(ctx, guid)
	if err != nil {
		return nil, err
	}
	var events []models.SingleEvent
	err = s.withRefs(ctx).
		Where("recurring_event_id = ?", series.ID).
		Order("start_at ASC").
		Find(&events).Error
	if err != nil {
		return nil, fmt.Errorf("list occurrences of %s: %w", guid, err)
	}
	return events, nil
}
