package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/venue-events-api/internal/recurrence"
	"github.com/gdg-garage/venue-events-api/internal/store"
	"github.com/gdg-garage/venue-events-api/internal/timerange"
)

// httpError maps domain errors onto API status codes. Errors that already
// carry a status pass through untouched.
func httpError(err error, msg string) error {
	var statusErr huma.StatusError
	switch {
	case errors.As(err, &statusErr):
		return err
	case errors.Is(err, timerange.ErrInvalidTimeRange),
		errors.Is(err, recurrence.ErrInvalidRecurrence):
		return huma.Error422UnprocessableEntity(err.Error())
	case errors.Is(err, store.ErrNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, store.ErrUnprocessableState):
		return huma.Error422UnprocessableEntity(err.Error())
	default:
		return huma.Error500InternalServerError(msg + ": " + err.Error())
	}
}
