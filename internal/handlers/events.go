package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/venue-events-api/internal/recurrence"
	"github.com/gdg-garage/venue-events-api/internal/store"
	"github.com/gdg-garage/venue-events-api/internal/timerange"
	"go.uber.org/zap"
)

// EventsHandler serves the public calendar. Only published events are
// visible through it.
type EventsHandler struct {
	store  *store.Store
	clock  recurrence.Clock
	window time.Duration
	loc    *time.Location
	logger *zap.Logger
}

func NewEventsHandler(s *store.Store, clock recurrence.Clock, window time.Duration, loc *time.Location, logger *zap.Logger) *EventsHandler {
	if clock == nil {
		clock = recurrence.SystemClock
	}
	if loc == nil {
		loc = time.UTC
	}
	return &EventsHandler{store: s, clock: clock, window: window, loc: loc, logger: logger}
}

type RangeInput struct {
	Start string `query:"start" doc:"Range start (RFC 3339). Requires end."`
	End   string `query:"end" doc:"Range end (RFC 3339). Requires start."`
}

type ListEventsOutput struct {
	Body []SingleEventResponse
}

// resolveRange defaults to [now, now+window] when both bounds are absent.
func (h *EventsHandler) resolveRange(startParam, endParam string) (time.Time, time.Time, error) {
	if startParam == "" && endParam == "" {
		now := h.clock.Now()
		return now, now.Add(h.window), nil
	}
	if startParam == "" || endParam == "" {
		return time.Time{}, time.Time{}, huma.Error400BadRequest("start and end must be given together")
	}

	start, err := time.Parse(time.RFC3339, startParam)
	if err != nil {
		return time.Time{}, time.Time{}, huma.Error400BadRequest("invalid start: " + err.Error())
	}
	end, err := time.Parse(time.RFC3339, endParam)
	if err != nil {
		return time.Time{}, time.Time{}, huma.Error400BadRequest("invalid end: " + err.Error())
	}
	if err := timerange.Validate(start, end); err != nil {
		return time.Time{}, time.Time{}, huma.Error422UnprocessableEntity(err.Error())
	}
	return start, end, nil
}

func (h *EventsHandler) HandleList(ctx context.Context, input *RangeInput) (*ListEventsOutput, error) {
	start, end, err := h.resolveRange(input.Start, input.End)
	if err != nil {
		return nil, err
	}

	events, err := h.store.GetSingleEvents(ctx, start, end, true)
	if err != nil {
		return nil, httpError(err, "Failed to query events")
	}

	return &ListEventsOutput{Body: toSingleEvents(events, h.loc)}, nil
}

type GUIDInput struct {
	GUID string `path:"guid" doc:"Event guid"`
}

type SingleEventOutput struct {
	Body SingleEventResponse
}

func (h *EventsHandler) HandleGet(ctx context.Context, input *GUIDInput) (*SingleEventOutput, error) {
	event, err := h.store.GetSingleEvent(ctx, input.GUID)
	if err != nil {
		return nil, httpError(err, "Failed to load event")
	}
	// Unpublished events do not exist publicly.
	if !event.IsPublic {
		return nil, huma.Error404NotFound("single event " + input.GUID + ": not found")
	}
	return &SingleEventOutput{Body: toSingleEvent(*event, h.loc)}, nil
}
