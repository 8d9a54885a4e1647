package handlers

import (
	"context"
	"time"

	"github.com/gdg-garage/venue-events-api/internal/auth"
	"github.com/gdg-garage/venue-events-api/internal/notifier"
	"github.com/gdg-garage/venue-events-api/internal/store"
)

type SingleEventBody struct {
	EventTextBody
	Start             time.Time `json:"start" doc:"Start of the event"`
	End               time.Time `json:"end" doc:"End of the event, after start"`
	IsPublic          bool      `json:"is_public,omitempty" doc:"Visible in the public calendar"`
	EventLocationGUID string    `json:"event_location_guid" doc:"Location of the event"`
	FileUploadGUID    string    `json:"file_upload_guid" doc:"Image of the event"`
}

func (b SingleEventBody) fields() store.SingleEventFields {
	return store.SingleEventFields{
		EventText:         b.text(),
		Start:             b.Start,
		End:               b.End,
		IsPublic:          b.IsPublic,
		EventLocationGUID: b.EventLocationGUID,
		FileUploadGUID:    b.FileUploadGUID,
	}
}

type CreateSingleEventInput struct {
	auth.AuthInput
	Body SingleEventBody
}

type UpdateSingleEventInput struct {
	auth.AuthInput
	GUID string `path:"guid"`
	Body SingleEventBody
}

type SingleEventListOutput struct {
	Body []SingleEventResponse
}

func (h *AdminHandler) HandleCreateSingleEvent(ctx context.Context, input *CreateSingleEventInput) (*SingleEventOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	event, err := h.store.CreateSingleEvent(ctx, input.Body.fields(), userID)
	if err != nil {
		return nil, httpError(err, "Failed to create event")
	}
	if event.IsPublic {
		h.notify("single event", event.GUID, func(n notifier.Notifier) error { return n.NotifyPublished(*event) })
	}
	return &SingleEventOutput{Body: toSingleEvent(*event, h.loc)}, nil
}

func (h *AdminHandler) HandleGetSingleEvent(ctx context.Context, input *AdminGUIDInput) (*SingleEventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	event, err := h.store.GetSingleEvent(ctx, input.GUID)
	if err != nil {
		return nil, httpError(err, "Failed to load event")
	}
	return &SingleEventOutput{Body: toSingleEvent(*event, h.loc)}, nil
}

// HandleListSingleEvents returns every event, public or not.
func (h *AdminHandler) HandleListSingleEvents(ctx context.Context, input *AdminInput) (*SingleEventListOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	events, err := h.store.ListAll(ctx)
	if err != nil {
		return nil, httpError(err, "Failed to list events")
	}
	return &SingleEventListOutput{Body: toSingleEvents(events, h.loc)}, nil
}

func (h *AdminHandler) HandleUpdateSingleEvent(ctx context.Context, input *UpdateSingleEventInput) (*SingleEventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	event, err := h.store.UpdateSingleEvent(ctx, input.GUID, input.Body.fields())
	if err != nil {
		return nil, httpError(err, "Failed to update event")
	}
	return &SingleEventOutput{Body: toSingleEvent(*event, h.loc)}, nil
}

func (h *AdminHandler) HandleDeleteSingleEvent(ctx context.Context, input *AdminGUIDInput) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := h.store.DeleteSingleEvent(ctx, input.GUID); err != nil {
		return nil, httpError(err, "Failed to delete event")
	}
	return nil, nil
}

func (h *AdminHandler) HandlePublishSingleEvent(ctx context.Context, input *AdminGUIDInput) (*SingleEventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := h.store.Publish(ctx, input.GUID); err != nil {
		return nil, httpError(err, "Failed to publish event")
	}
	event, err := h.store.GetSingleEvent(ctx, input.GUID)
	if err != nil {
		return nil, httpError(err, "Failed to load event")
	}
	h.notify("single event", event.GUID, func(n notifier.Notifier) error { return n.NotifyPublished(*event) })
	return &SingleEventOutput{Body: toSingleEvent(*event, h.loc)}, nil
}

func (h *AdminHandler) HandleUnpublishSingleEvent(ctx context.Context, input *AdminGUIDInput) (*SingleEventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := h.store.Unpublish(ctx, input.GUID); err != nil {
		return nil, httpError(err, "Failed to unpublish event")
	}
	event, err := h.store.GetSingleEvent(ctx, input.GUID)
	if err != nil {
		return nil, httpError(err, "Failed to load event")
	}
	return &SingleEventOutput{Body: toSingleEvent(*event, h.loc)}, nil
}
