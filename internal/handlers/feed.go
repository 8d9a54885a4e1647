package handlers

import (
	"context"
	"time"

	ics "github.com/arran4/golang-ical"
	"github.com/gdg-garage/venue-events-api/internal/models"
	"go.uber.org/zap"
)

const (
	feedProductID = "-//GDG Garage//Venue Events//EN"
	uidDomain     = "@venue-events"

	propertySeriesRRule = "X-VENUE-SERIES-RRULE"
)

type FeedInput struct {
	Lang string `query:"lang" enum:"de,en" default:"de" doc:"Language of titles and descriptions"`
}

type FeedOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// HandleFeed renders the public events of the default window as an iCal
// feed. Occurrences of a series are exported one by one and point at their
// series through RELATED-TO.
func (h *EventsHandler) HandleFeed(ctx context.Context, input *FeedInput) (*FeedOutput, error) {
	now := h.clock.Now()
	events, err := h.store.GetSingleEvents(ctx, now, now.Add(h.window), true)
	if err != nil {
		return nil, httpError(err, "Failed to query events")
	}

	series, err := h.store.ListRecurringEvents(ctx)
	if err != nil {
		return nil, httpError(err, "Failed to query recurring events")
	}
	byID := make(map[uint]models.RecurringEvent, len(series))
	for _, s := range series {
		byID[s.ID] = s
	}

	lang := input.Lang
	if lang == "" {
		lang = "de"
	}

	cal := buildFeed(events, byID, lang, now, h.loc)
	h.logger.Debug("Rendered event feed", zap.Int("events", len(events)), zap.String("lang", lang))

	return &FeedOutput{
		ContentType: "text/calendar; charset=utf-8",
		Body:        []byte(cal.Serialize()),
	}, nil
}

func buildFeed(events []models.SingleEvent, series map[uint]models.RecurringEvent, lang string, now time.Time, loc *time.Location) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId(feedProductID)
	cal.SetXWRCalName("Venue Events")
	cal.SetXWRTimezone(loc.String())

	for _, e := range events {
		ev := cal.AddEvent(e.GUID + uidDomain)
		ev.SetDtStampTime(now)
		ev.SetStartAt(e.Start)
		ev.SetEndAt(e.End)
		ev.SetSummary(e.Title(lang))
		if desc := e.Description(lang); desc != "" {
			ev.SetDescription(desc)
		}
		if e.EventLocation.Name != "" {
			ev.SetLocation(e.EventLocation.Name)
		}
		if e.FileUpload.URL != "" {
			ev.SetURL(e.FileUpload.URL)
		}
		if e.RecurringEventID == nil {
			continue
		}
		if s, ok := series[*e.RecurringEventID]; ok {
			ev.AddProperty(ics.ComponentProperty("RELATED-TO"), s.GUID+uidDomain)
			if s.RRule != "" {
				ev.AddProperty(ics.ComponentProperty(propertySeriesRRule), s.RRule)
			}
		}
	}
	return cal
}
