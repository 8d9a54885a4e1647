package handlers

import (
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/danielgtaylor/huma/v2/adapters/humachi"
	"github.com/gdg-garage/venue-events-api/internal/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouteOptions struct {
	EnableCORS bool
	// CORSOrigins lists the front-end origins allowed to call the API with
	// the session cookie.
	CORSOrigins []string
	// Metrics is mounted on /metrics when set.
	Metrics http.Handler
}

func RegisterRoutes(r *chi.Mux, eventsHandler *EventsHandler, adminHandler *AdminHandler, opts RouteOptions) huma.API {
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	if opts.EnableCORS {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   opts.CORSOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           300,
		}))
	}

	// Initialize Huma API
	config := huma.DefaultConfig("Venue Events API", "1.0.0")
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"cookieAuth": {
			Type: "apiKey",
			In:   "cookie",
			Name: auth.CookieName,
		},
	}
	api := humachi.New(r, config)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	if opts.Metrics != nil {
		r.Handle("/metrics", opts.Metrics)
	}

	// Public routes
	huma.Get(api, "/events", eventsHandler.HandleList)
	huma.Get(api, "/events.ics", eventsHandler.HandleFeed)
	huma.Get(api, "/events/{guid}", eventsHandler.HandleGet)

	// Admin routes
	requireSession := adminHandler.authHandler.Middleware(api)
	secured := func(o *huma.Operation) {
		o.Security = []map[string][]string{{"cookieAuth": {}}}
		o.Tags = []string{"admin"}
		o.Middlewares = append(o.Middlewares, requireSession)
	}

	huma.Get(api, "/admin/single-events", adminHandler.HandleListSingleEvents, secured)
	huma.Post(api, "/admin/single-events", adminHandler.HandleCreateSingleEvent, secured)
	huma.Get(api, "/admin/single-events/{guid}", adminHandler.HandleGetSingleEvent, secured)
	huma.Put(api, "/admin/single-events/{guid}", adminHandler.HandleUpdateSingleEvent, secured)
	huma.Delete(api, "/admin/single-events/{guid}", adminHandler.HandleDeleteSingleEvent, secured)
	huma.Post(api, "/admin/single-events/{guid}/publish", adminHandler.HandlePublishSingleEvent, secured)
	huma.Post(api, "/admin/single-events/{guid}/unpublish", adminHandler.HandleUnpublishSingleEvent, secured)

	huma.Get(api, "/admin/recurring-events", adminHandler.HandleListRecurringEvents, secured)
	huma.Post(api, "/admin/recurring-events", adminHandler.HandleCreateRecurringEvent, secured)
	huma.Get(api, "/admin/recurring-events/{guid}", adminHandler.HandleGetRecurringEvent, secured)
	huma.Put(api, "/admin/recurring-events/{guid}", adminHandler.HandleUpdateRecurringEvent, secured)
	huma.Delete(api, "/admin/recurring-events/{guid}", adminHandler.HandleDeleteRecurringEvent, secured)
	huma.Post(api, "/admin/recurring-events/{guid}/publish", adminHandler.HandlePublishRecurringEvent, secured)
	huma.Post(api, "/admin/recurring-events/{guid}/unpublish", adminHandler.HandleUnpublishRecurringEvent, secured)
	huma.Get(api, "/admin/recurring-events/{guid}/occurrences", adminHandler.HandleListOccurrences, secured)

	huma.Get(api, "/admin/locations", adminHandler.HandleListLocations, secured)
	huma.Post(api, "/admin/locations", adminHandler.HandleCreateLocation, secured)
	huma.Delete(api, "/admin/locations/{guid}", adminHandler.HandleDeleteLocation, secured)

	huma.Get(api, "/admin/file-uploads", adminHandler.HandleListFileUploads, secured)
	huma.Post(api, "/admin/file-uploads", adminHandler.HandleCreateFileUpload, secured)
	huma.Delete(api, "/admin/file-uploads/{guid}", adminHandler.HandleDeleteFileUpload, secured)

	return api
}
