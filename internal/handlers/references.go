package handlers

import (
	"context"

	"github.com/gdg-garage/venue-events-api/internal/auth"
	"github.com/gdg-garage/venue-events-api/internal/models"
)

type CreateLocationInput struct {
	auth.AuthInput
	Body struct {
		Name   string `json:"name" minLength:"1"`
		Street string `json:"street,omitempty"`
		City   string `json:"city,omitempty"`
		Zip    string `json:"zip,omitempty"`
	}
}

type LocationOutput struct {
	Body LocationResponse
}

type LocationListOutput struct {
	Body []LocationResponse
}

func (h *AdminHandler) HandleCreateLocation(ctx context.Context, input *CreateLocationInput) (*LocationOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	location := models.EventLocation{
		Name:   input.Body.Name,
		Street: input.Body.Street,
		City:   input.Body.City,
		Zip:    input.Body.Zip,
	}
	if err := h.store.CreateEventLocation(ctx, &location); err != nil {
		return nil, httpError(err, "Failed to create location")
	}
	return &LocationOutput{Body: toLocation(location)}, nil
}

func (h *AdminHandler) HandleListLocations(ctx context.Context, input *AdminInput) (*LocationListOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	locations, err := h.store.ListEventLocations(ctx)
	if err != nil {
		return nil, httpError(err, "Failed to list locations")
	}
	out := make([]LocationResponse, 0, len(locations))
	for _, l := range locations {
		out = append(out, toLocation(l))
	}
	return &LocationListOutput{Body: out}, nil
}

func (h *AdminHandler) HandleDeleteLocation(ctx context.Context, input *AdminGUIDInput) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := h.store.DeleteEventLocation(ctx, input.GUID); err != nil {
		return nil, httpError(err, "Failed to delete location")
	}
	return nil, nil
}

// CreateFileUploadInput registers an image already stored elsewhere.
type CreateFileUploadInput struct {
	auth.AuthInput
	Body struct {
		FileName string `json:"file_name" minLength:"1"`
		URL      string `json:"url" format:"uri"`
		MimeType string `json:"mime_type" pattern:"^image/"`
	}
}

type FileUploadOutput struct {
	Body FileUploadResponse
}

type FileUploadListOutput struct {
	Body []FileUploadResponse
}

func (h *AdminHandler) HandleCreateFileUpload(ctx context.Context, input *CreateFileUploadInput) (*FileUploadOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.Cookie)
	if err != nil {
		return nil, err
	}

	upload := models.FileUpload{
		FileName:    input.Body.FileName,
		URL:         input.Body.URL,
		MimeType:    input.Body.MimeType,
		CreatedByID: userID,
	}
	if err := h.store.CreateFileUpload(ctx, &upload); err != nil {
		return nil, httpError(err, "Failed to create file upload")
	}
	return &FileUploadOutput{Body: toFileUpload(upload)}, nil
}

func (h *AdminHandler) HandleListFileUploads(ctx context.Context, input *AdminInput) (*FileUploadListOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	uploads, err := h.store.ListFileUploads(ctx)
	if err != nil {
		return nil, httpError(err, "Failed to list file uploads")
	}
	out := make([]FileUploadResponse, 0, len(uploads))
	for _, u := range uploads {
		out = append(out, toFileUpload(u))
	}
	return &FileUploadListOutput{Body: out}, nil
}

func (h *AdminHandler) HandleDeleteFileUpload(ctx context.Context, input *AdminGUIDInput) (*struct{}, error) {
	if _, err := h.authHandler.Authorize(ctx, input.Cookie); err != nil {
		return nil, err
	}

	if err := h.store.DeleteFileUpload(ctx, input.GUID); err != nil {
		return nil, httpError(err, "Failed to delete file upload")
	}
	return nil, nil
}
