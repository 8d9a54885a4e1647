package handlers

import (
	"context"
	"time"

	"github.com/gdg-garage/venue-events-api/internal/auth"
	"github.com/gdg-garage/venue-events-api/internal/models"
	"github.com/gdg-garage/venue-events-api/internal/notifier"
	"github.com/gdg-garage/venue-events-api/internal/recurrence"
	"github.com/gdg-garage/venue-events-api/internal/store"
	"github.com/samber/mo"
)

type CreateRecurringEventInput struct {
	auth.AuthInput
	Body struct {
		EventTextBody
		StartFirstOccurrence time.Time  `json:"start_first_occurrence" doc:"Start of the first occurrence"`
		EndFirstOccurrence   time.Time  `json:"end_first_occurrence" doc:"End of the first occurrence"`
		EndRecurrence        *time.Time `json:"end_recurrence,omitempty" doc:"No occurrence starts at or after this instant"`
		Recurrence           string     `json:"recurrence" enum:"EveryXDays,EveryMonthAtDayX,EveryLastDayInMonth,EveryFirstDayInMonth,EverySecondDayInMonth,EveryThirdDayInMonth"`
		RecurrenceMetadata   int        `json:"recurrence_metadata" doc:"Days between occurrences, day of month (1-31) or weekday (0-6, Sunday = 0)"`
		EventLocationGUID    string     `json:"event_location_guid"`
		FileUploadGUID       string     `json:"file_upload_guid"`
	}
}

type UpdateRecurringEventInput struct {
	auth.AuthInput
	GUID string `path:"guid"`
	Body struct {
		EventTextBody
		EventLocationGUID string `json:"event_location_guid"`
		FileUploadGUID    string `json:"file_upload_guid"`
	}
}

type RecurringEventOutput struct {
	Body RecurringEventResponse
}

type RecurringEventListOutput struct {
	Body []RecurringEventResponse
}

type SeriesVisibilityOutput struct {
	Body struct {
		Occurrences int64 `json:"occurrences" doc:"Occurrences of the series"`
	}
}

// HandleCreateRecurringEvent stores the series and materializes its
// occurrences up to the end of the current year.
func (h *AdminHandler) HandleCreateRecurringEvent(ctx context.Context, input *CreateRecurringEventInput) (*RecurringEventOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	series, err := h.engine.Generate(ctx, recurrence.Request{
		EventText:            input.Body.text(),
		StartFirstOccurrence: input.Body.StartFirstOccurrence,
		EndFirstOccurrence:   input.Body.EndFirstOccurrence,
		EndRecurrence:        mo.PointerToOption(input.Body.EndRecurrence),
		Recurrence:           models.Recurrence(input.Body.Recurrence),
		RecurrenceMetadata:   input.Body.RecurrenceMetadata,
		EventLocationGUID:    input.Body.EventLocationGUID,
		FileUploadGUID:       input.Body.FileUploadGUID,
		CreatedByID:          userID,
	})
	if err != nil {
		return nil, httpError(err, "Failed to create recurring event")
	}

	series, err = h.store.GetRecurringEvent(ctx, series.GUID)
	if err != nil {
		return nil, httpError(err, "Failed to load recurring event")
	}
	return &RecurringEventOutput{Body: toRecurringEvent(*series, h.loc)}, nil
}

func (h *AdminHandler) HandleGetRecurringEvent(ctx context.Context, input *AdminGUIDInput) (*RecurringEventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	series, err := h.store.GetRecurringEvent(ctx, input.GUID)
	if err != nil {
		return nil, httpError(err, "Failed to load recurring event")
	}
	return &RecurringEventOutput{Body: toRecurringEvent(*series, h.loc)}, nil
}

func (h *AdminHandler) HandleListRecurringEvents(ctx context.Context, input *AdminInput) (*RecurringEventListOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	series, err := h.store.ListRecurringEvents(ctx)
	if err != nil {
		return nil, httpError(err, "Failed to list recurring events")
	}
	out := make([]RecurringEventResponse, 0, len(series))
	for _, s := range series {
		out = append(out, toRecurringEvent(s, h.loc))
	}
	return &RecurringEventListOutput{Body: out}, nil
}

// HandleUpdateRecurringEvent edits the template. Existing occurrences are
// not touched.
func (h *AdminHandler) HandleUpdateRecurringEvent(ctx context.Context, input *UpdateRecurringEventInput) (*RecurringEventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	series, err := h.store.UpdateRecurringEvent(ctx, input.GUID, store.RecurringEventFields{
		EventText:         input.Body.text(),
		EventLocationGUID: input.Body.EventLocationGUID,
		FileUploadGUID:    input.Body.FileUploadGUID,
	})
	if err != nil {
		return nil, httpError(err, "Failed to update recurring event")
	}
	return &RecurringEventOutput{Body: toRecurringEvent(*series, h.loc)}, nil
}

func (h *AdminHandler) HandleDeleteRecurringEvent(ctx context.Context, input *AdminGUIDInput) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := h.store.DeleteRecurringEvent(ctx, input.GUID); err != nil {
		return nil, httpError(err, "Failed to delete recurring event")
	}
	return nil, nil
}

func (h *AdminHandler) HandlePublishRecurringEvent(ctx context.Context, input *AdminGUIDInput) (*SeriesVisibilityOutput, error) {
	return h.setSeriesPublic(ctx, input, true)
}

func (h *AdminHandler) HandleUnpublishRecurringEvent(ctx context.Context, input *AdminGUIDInput) (*SeriesVisibilityOutput, error) {
	return h.setSeriesPublic(ctx, input, false)
}

func (h *AdminHandler) setSeriesPublic(ctx context.Context, input *AdminGUIDInput, public bool) (*SeriesVisibilityOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	n, err := h.store.SetSeriesPublic(ctx, input.GUID, public)
	if err != nil {
		return nil, httpError(err, "Failed to change visibility of recurring event")
	}

	if public {
		series, err := h.store.GetRecurringEvent(ctx, input.GUID)
		if err != nil {
			return nil, httpError(err, "Failed to load recurring event")
		}
		h.notify("recurring event", series.GUID, func(nt notifier.Notifier) error { return nt.NotifySeriesPublished(*series, n) })
	}

	res := &SeriesVisibilityOutput{}
	res.Body.Occurrences = n
	return res, nil
}

func (h *AdminHandler) HandleListOccurrences(ctx context.Context, input *AdminGUIDInput) (*SingleEventListOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	events, err := h.store.Occurrences(ctx, input.GUID)
	if err != nil {
		return nil, httpError(err, "Failed to list occurrences")
	}
	return &SingleEventListOutput{Body: toSingleEvents(events, h.loc)}, nil
}
