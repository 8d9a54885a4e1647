package handlers

import (
	"time"

	"github.com/gdg-garage/venue-events-api/internal/models"
)

type LocationResponse struct {
	GUID   string `json:"guid"`
	Name   string `json:"name"`
	Street string `json:"street"`
	City   string `json:"city"`
	Zip    string `json:"zip"`
}

type FileUploadResponse struct {
	GUID     string `json:"guid"`
	FileName string `json:"file_name"`
	URL      string `json:"url"`
	MimeType string `json:"mime_type"`
}

type SingleEventResponse struct {
	GUID          string             `json:"guid"`
	TitleDe       string             `json:"title_de"`
	TitleEn       string             `json:"title_en"`
	DescriptionDe string             `json:"description_de"`
	DescriptionEn string             `json:"description_en"`
	Start         time.Time          `json:"start"`
	End           time.Time          `json:"end"`
	IsPublic      bool               `json:"is_public"`
	IsRecurring   bool               `json:"is_recurring"`
	EventLocation LocationResponse   `json:"event_location"`
	FileUpload    FileUploadResponse `json:"file_upload"`
}

type RecurringEventResponse struct {
	GUID                 string             `json:"guid"`
	TitleDe              string             `json:"title_de"`
	TitleEn              string             `json:"title_en"`
	DescriptionDe        string             `json:"description_de"`
	DescriptionEn        string             `json:"description_en"`
	Recurrence           models.Recurrence  `json:"recurrence"`
	RecurrenceMetadata   int                `json:"recurrence_metadata"`
	StartFirstOccurrence time.Time          `json:"start_first_occurrence"`
	EndFirstOccurrence   time.Time          `json:"end_first_occurrence"`
	EndRecurrence        *time.Time         `json:"end_recurrence,omitempty"`
	RRule                string             `json:"rrule"`
	GeneratedUntil       time.Time          `json:"generated_until"`
	EventLocation        LocationResponse   `json:"event_location"`
	FileUpload           FileUploadResponse `json:"file_upload"`
}

func toLocation(l models.EventLocation) LocationResponse {
	return LocationResponse{GUID: l.GUID, Name: l.Name, Street: l.Street, City: l.City, Zip: l.Zip}
}

func toFileUpload(f models.FileUpload) FileUploadResponse {
	return FileUploadResponse{GUID: f.GUID, FileName: f.FileName, URL: f.URL, MimeType: f.MimeType}
}

// toSingleEvent renders instants in loc.
func toSingleEvent(e models.SingleEvent, loc *time.Location) SingleEventResponse {
	return SingleEventResponse{
		GUID:          e.GUID,
		TitleDe:       e.TitleDe,
		TitleEn:       e.TitleEn,
		DescriptionDe: e.DescriptionDe,
		DescriptionEn: e.DescriptionEn,
		Start:         e.Start.In(loc),
		End:           e.End.In(loc),
		IsPublic:      e.IsPublic,
		IsRecurring:   e.IsRecurring,
		EventLocation: toLocation(e.EventLocation),
		FileUpload:    toFileUpload(e.FileUpload),
	}
}

func toSingleEvents(events []models.SingleEvent, loc *time.Location) []SingleEventResponse {
	out := make([]SingleEventResponse, 0, len(events))
	for _, e := range events {
		out = append(out, toSingleEvent(e, loc))
	}
	return out
}

func toRecurringEvent(s models.RecurringEvent, loc *time.Location) RecurringEventResponse {
	res := RecurringEventResponse{
		GUID:                 s.GUID,
		TitleDe:              s.TitleDe,
		TitleEn:              s.TitleEn,
		DescriptionDe:        s.DescriptionDe,
		DescriptionEn:        s.DescriptionEn,
		Recurrence:           s.Recurrence,
		RecurrenceMetadata:   s.RecurrenceMetadata,
		StartFirstOccurrence: s.StartFirstOccurrence.In(loc),
		EndFirstOccurrence:   s.EndFirstOccurrence.In(loc),
		RRule:                s.RRule,
		GeneratedUntil:       s.GeneratedUntil.In(loc),
		EventLocation:        toLocation(s.EventLocation),
		FileUpload:           toFileUpload(s.FileUpload),
	}
	if s.EndRecurrence != nil {
		end := s.EndRecurrence.In(loc)
		res.EndRecurrence = &end
	}
	return res
}
