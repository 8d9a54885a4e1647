// Package store persists events, their locations and images with gorm.
package store

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

var (
	// ErrNotFound is returned when a referenced guid does not resolve.
	ErrNotFound = errors.New("not found")
	// ErrUnprocessableState is returned when a change would break a
	// reference still held by other rows.
	ErrUnprocessableState = errors.New("unprocessable state")
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

// notFound turns gorm's record-not-found into ErrNotFound.
func notFound(err error, what, guid string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s %s: %w", what, guid, ErrNotFound)
	}
	return fmt.Errorf("find %s %s: %w", what, guid, err)
}
