package store

import (
	"context"
	"fmt"

	"github.com/gdg-garage/venue-events-api/internal/models"
	"gorm.io/gorm"
)

func (s *Store) CreateEventLocation(ctx context.Context, location *models.EventLocation) error {
	if err := s.db.WithContext(ctx).Create(location).Error; err != nil {
		return fmt.Errorf("create event location: %w", err)
	}
	return nil
}

func (s *Store) ListEventLocations(ctx context.Context) ([]models.EventLocation, error) {
	var locations []models.EventLocation
	if err := s.db.WithContext(ctx).Order("name ASC").Find(&locations).Error; err != nil {
		return nil, fmt.Errorf("list event locations: %w", err)
	}
	return locations, nil
}

// DeleteEventLocation fails with ErrUnprocessableState while any event
// still takes place there.
func (s *Store) DeleteEventLocation(ctx context.Context, guid string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var location models.EventLocation
		if err := tx.Where("guid = ?", guid).First(&location).Error; err != nil {
			return notFound(err, "event location", guid)
		}
		if err := ensureUnreferenced(tx, "event_location_id", location.ID); err != nil {
			return fmt.Errorf("event location %s: %w", guid, err)
		}
		if err := tx.Delete(&location).Error; err != nil {
			return fmt.Errorf("delete event location %s: %w", guid, err)
		}
		return nil
	})
}

func (s *Store) CreateFileUpload(ctx context.Context, upload *models.FileUpload) error {
	if err := s.db.WithContext(ctx).Create(upload).Error; err != nil {
		return fmt.Errorf("create file upload: %w", err)
	}
	return nil
}

func (s *Store) ListFileUploads(ctx context.Context) ([]models.FileUpload, error) {
	var uploads []models.FileUpload
	if err := s.db.WithContext(ctx).Order("id ASC").Find(&uploads).Error; err != nil {
		return nil, fmt.Errorf("list file uploads: %w", err)
	}
	return uploads, nil
}

// DeleteFileUpload fails with ErrUnprocessableState while any event still
// uses the image.
func (s *Store) DeleteFileUpload(ctx context.Context, guid string) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var upload models.FileUpload
		if err := tx.Where("guid = ?", guid).First(&upload).Error; err != nil {
			return notFound(err, "file upload", guid)
		}
		if err := ensureUnreferenced(tx, "file_upload_id", upload.ID); err != nil {
			return fmt.Errorf("file upload %s: %w", guid, err)
		}
		if err := tx.Delete(&upload).Error; err != nil {
			return fmt.Errorf("delete file upload %s: %w", guid, err)
		}
		return nil
	})
}

func ensureUnreferenced(tx *gorm.DB, column string, id uint) error {
	for _, model := range []any{&models.SingleEvent{}, &models.RecurringEvent{}} {
		var n int64
		if err := tx.Model(model).Where(column+" = ?", id).Count(&n).Error; err != nil {
			return err
		}
		if n > 0 {
			return fmt.Errorf("still referenced by %d events: %w", n, ErrUnprocessableState)
		}
	}
	return nil
}
