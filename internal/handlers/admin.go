package handlers

import (
	"time"

	"github.com/gdg-garage/venue-events-api/internal/auth"
	"github.com/gdg-garage/venue-events-api/internal/models"
	"github.com/gdg-garage/venue-events-api/internal/notifier"
	"github.com/gdg-garage/venue-events-api/internal/recurrence"
	"github.com/gdg-garage/venue-events-api/internal/store"
	"go.uber.org/zap"
)

// AdminHandler serves the staff API. Every operation requires a valid
// session cookie.
type AdminHandler struct {
	store       *store.Store
	engine      *recurrence.Engine
	notifier    notifier.Notifier
	authHandler *auth.AuthHandler
	loc         *time.Location
	logger      *zap.Logger
}

func NewAdminHandler(s *store.Store, engine *recurrence.Engine, n notifier.Notifier, authHandler *auth.AuthHandler, loc *time.Location, logger *zap.Logger) *AdminHandler {
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AdminHandler{
		store:       s,
		engine:      engine,
		notifier:    n,
		authHandler: authHandler,
		loc:         loc,
		logger:      logger,
	}
}

type AdminInput struct {
	auth.AuthInput
}

type AdminGUIDInput struct {
	auth.AuthInput
	GUID string `path:"guid"`
}

// EventTextBody holds the bilingual text of an event. German is mandatory.
type EventTextBody struct {
	TitleDe       string `json:"title_de" minLength:"1" doc:"German title"`
	TitleEn       string `json:"title_en,omitempty" doc:"English title"`
	DescriptionDe string `json:"description_de,omitempty" doc:"German description"`
	DescriptionEn string `json:"description_en,omitempty" doc:"English description"`
}

func (b EventTextBody) text() models.EventText {
	return models.EventText{
		TitleDe:       b.TitleDe,
		TitleEn:       b.TitleEn,
		DescriptionDe: b.DescriptionDe,
		DescriptionEn: b.DescriptionEn,
	}
}

// notify runs fn when a notifier is configured. Failures are logged only.
func (h *AdminHandler) notify(what, guid string, fn func(notifier.Notifier) error) {
	if h.notifier == nil {
		return
	}
	if err := fn(h.notifier); err != nil {
		h.logger.Warn("Failed to send publish notification", zap.String("kind", what), zap.String("guid", guid), zap.Error(err))
	}
}
