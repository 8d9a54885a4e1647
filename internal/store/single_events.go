package store

import (
	"context"
	"fmt"
	"time"

	"github.com/gdg-garage/venue-events-api/internal/models"
	"github.com/gdg-garage/venue-events-api/internal/timerange"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SingleEventFields are the editable fields of a single event.
type SingleEventFields struct {
	models.EventText
	Start             time.Time
	End               time.Time
	IsPublic          bool
	EventLocationGUID string
	FileUploadGUID    string
}

func (s *Store) withRefs(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Preload("EventLocation").Preload("FileUpload")
}

// CreateSingleEvent stores a standalone event created by createdByID.
func (s *Store) CreateSingleEvent(ctx context.Context, fields SingleEventFields, createdByID uint) (*models.SingleEvent, error) {
	if err := timerange.Validate(fields.Start, fields.End); err != nil {
		return nil, err
	}

	locationID, fileUploadID, err := s.ResolveReferences(ctx, fields.EventLocationGUID, fields.FileUploadGUID)
	if err != nil {
		return nil, err
	}

	event := &models.SingleEvent{
		EventText:       fields.EventText,
		Start:           fields.Start,
		End:             fields.End,
		IsPublic:        fields.IsPublic,
		EventLocationID: locationID,
		FileUploadID:    fileUploadID,
		CreatedByID:     createdByID,
	}
	if err := s.CreateOccurrence(ctx, event); err != nil {
		return nil, err
	}
	return s.GetSingleEvent(ctx, event.GUID)
}

// CreateOccurrence inserts event as is. Instants are stored in UTC.
func (s *Store) CreateOccurrence(ctx context.Context, event *models.SingleEvent) error {
	event.Start = event.Start.UTC()
	event.End = event.End.UTC()
	if err := s.db.WithContext(ctx).Omit(clause.Associations).Create(event).Error; err != nil {
		return fmt.Errorf("create single event: %w", err)
	}
	return nil
}

func (s *Store) GetSingleEvent(ctx context.Context, guid string) (*models.SingleEvent, error) {
	var event models.SingleEvent
	if err := s.withRefs(ctx).Where("guid = ?", guid).First(&event).Error; err != nil {
		return nil, notFound(err, "single event", guid)
	}
	return &event, nil
}

// UpdateSingleEvent replaces the editable fields of an event. Occurrences of
// a series keep their parent link.
func (s *Store) UpdateSingleEvent(ctx context.Context, guid string, fields SingleEventFields) (*models.SingleEvent, error) {
	if err := timerange.Validate(fields.Start, fields.End); err != nil {
		return nil, err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		txs := New(tx)

		var event models.SingleEvent
		if err := tx.Where("guid = ?", guid).First(&event).Error; err != nil {
			return notFound(err, "single event", guid)
		}

		locationID, fileUploadID, err := txs.ResolveReferences(ctx, fields.EventLocationGUID, fields.FileUploadGUID)
		if err != nil {
			return err
		}

		event.EventText = fields.EventText
		event.Start = fields.Start.UTC()
		event.End = fields.End.UTC()
		event.IsPublic = fields.IsPublic
		event.EventLocationID = locationID
		event.FileUploadID = fileUploadID

		if err := tx.Omit(clause.Associations).Save(&event).Error; err != nil {
			return fmt.Errorf("update single event %s: %w", guid, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetSingleEvent(ctx, guid)
}

// DeleteSingleEvent removes exactly one event.
func (s *Store) DeleteSingleEvent(ctx context.Context, guid string) error {
	res := s.db.WithContext(ctx).Where("guid = ?", guid).Delete(&models.SingleEvent{})
	if res.Error != nil {
		return fmt.Errorf("delete single event %s: %w", guid, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("single event %s: %w", guid, ErrNotFound)
	}
	return nil
}

func (s *Store) Publish(ctx context.Context, guid string) error {
	return s.setPublic(ctx, guid, true)
}

func (s *Store) Unpublish(ctx context.Context, guid string) error {
	return s.setPublic(ctx, guid, false)
}

func (s *Store) setPublic(ctx context.Context, guid string, public bool) error {
	res := s.db.WithContext(ctx).Model(&models.SingleEvent{}).Where("guid = ?", guid).Update("is_public", public)
	if res.Error != nil {
		return fmt.Errorf("set visibility of %s: %w", guid, res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("single event %s: %w", guid, ErrNotFound)
	}
	return nil
}

// GetSingleEvents returns the events matching [start, end] under
// timerange.Overlaps, ordered by start.
func (s *Store) GetSingleEvents(ctx context.Context, start, end time.Time, publicOnly bool) ([]models.SingleEvent, error) {
	q := s.withRefs(ctx).
		Where(timerange.OverlapClause("start_at", "end_at"), timerange.OverlapArgs(start.UTC(), end.UTC())...)
	if publicOnly {
		q = q.Where("is_public = ?", true)
	}

	var events []models.SingleEvent
	if err := q.Order("start_at ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("query single events: %w", err)
	}
	return events, nil
}

// ListAll returns every single event, public or not.
func (s *Store) ListAll(ctx context.Context) ([]models.SingleEvent, error) {
	var events []models.SingleEvent
	if err := s.withRefs(ctx).Find(&events).Error; err != nil {
		return nil, fmt.Errorf("list single events: %w", err)
	}
	return events, nil
}
