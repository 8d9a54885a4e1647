package handlers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
)

func TestHandleFeed_RoundTrip(t *testing.T) {
	now := time.Date(2024, time.November, 1, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	series, err := env.admin.HandleCreateRecurringEvent(env.ctx, env.dailySeries(time.Date(2024, time.November, 1, 10, 0, 0, 0, time.UTC)))
	if err != nil {
		t.Fatalf("HandleCreateRecurringEvent returned error: %v", err)
	}
	if _, err := env.admin.HandlePublishRecurringEvent(env.ctx, &AdminGUIDInput{GUID: series.Body.GUID}); err != nil {
		t.Fatalf("HandlePublishRecurringEvent returned error: %v", err)
	}

	out, err := env.events.HandleFeed(env.ctx, &FeedInput{Lang: "en"})
	if err != nil {
		t.Fatalf("HandleFeed returned error: %v", err)
	}
	if !strings.HasPrefix(out.ContentType, "text/calendar") {
		t.Errorf("expected text/calendar, got %s", out.ContentType)
	}

	cal, err := ical.NewDecoder(bytes.NewReader(out.Body)).Decode()
	if err != nil {
		t.Fatalf("failed to decode feed: %v", err)
	}

	events := cal.Events()
	if len(events) != 21 {
		t.Fatalf("expected 21 events, got %d", len(events))
	}

	first := events[0]
	summary, err := first.Props.Text(ical.PropSummary)
	if err != nil {
		t.Fatalf("failed to read summary: %v", err)
	}
	if summary != "Open workshop" {
		t.Errorf("expected English summary, got '%s'", summary)
	}

	start, err := first.DateTimeStart(time.UTC)
	if err != nil {
		t.Fatalf("failed to read DTSTART: %v", err)
	}
	if !start.Equal(time.Date(2024, time.November, 1, 10, 0, 0, 0, time.UTC)) {
		t.Errorf("expected first event on Nov 1 10:00, got %v", start)
	}

	related := first.Props.Get(ical.PropRelatedTo)
	if related == nil || related.Value != series.Body.GUID+uidDomain {
		t.Errorf("expected RELATED-TO %s, got %v", series.Body.GUID+uidDomain, related)
	}
	rule := first.Props.Get(propertySeriesRRule)
	if rule == nil || !strings.Contains(rule.Value, "FREQ=DAILY") {
		t.Errorf("expected series rule, got %v", rule)
	}
}

func TestHandleFeed_DefaultsToGerman(t *testing.T) {
	now := time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)

	body := env.singleEventBody("Flohmarkt", now.Add(26*time.Hour), now.Add(30*time.Hour))
	body.IsPublic = true
	if _, err := env.admin.HandleCreateSingleEvent(env.ctx, &CreateSingleEventInput{Body: body}); err != nil {
		t.Fatalf("HandleCreateSingleEvent returned error: %v", err)
	}

	out, err := env.events.HandleFeed(env.ctx, &FeedInput{})
	if err != nil {
		t.Fatalf("HandleFeed returned error: %v", err)
	}
	cal, err := ical.NewDecoder(bytes.NewReader(out.Body)).Decode()
	if err != nil {
		t.Fatalf("failed to decode feed: %v", err)
	}
	events := cal.Events()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	summary, _ := events[0].Props.Text(ical.PropSummary)
	if summary != "Flohmarkt" {
		t.Errorf("expected German summary, got '%s'", summary)
	}
	if events[0].Props.Get(ical.PropRelatedTo) != nil {
		t.Error("expected no RELATED-TO on a standalone event")
	}
}
