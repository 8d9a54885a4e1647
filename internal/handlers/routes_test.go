package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const frontendOrigin = "https://calendar.example.org"

func TestRegisterRoutes(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))

	r := chi.NewRouter()
	RegisterRoutes(r, env.events, env.admin, RouteOptions{
		EnableCORS:  true,
		CORSOrigins: []string{frontendOrigin},
		Metrics:     promhttp.HandlerFor(prometheus.NewRegistry(), promhttp.HandlerOpts{}),
	})

	tests := []struct {
		method string
		path   string
		status int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodGet, "/metrics", http.StatusOK},
		{http.MethodGet, "/events", http.StatusOK},
		{http.MethodGet, "/events?start=2024-01-01T00:00:00Z", http.StatusBadRequest},
		{http.MethodGet, "/events?start=2024-02-01T00:00:00Z&end=2024-01-01T00:00:00Z", http.StatusUnprocessableEntity},
		{http.MethodGet, "/events/unknown", http.StatusNotFound},
		{http.MethodGet, "/events.ics", http.StatusOK},
		{http.MethodGet, "/admin/single-events", http.StatusUnauthorized},
		{http.MethodDelete, "/admin/recurring-events/unknown", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			req.Header.Set("Origin", frontendOrigin)
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if rec.Code != tt.status {
				t.Errorf("expected status %d, got %d: %s", tt.status, rec.Code, rec.Body.String())
			}
		})
	}

	t.Run("feed content type", func(t *testing.T) {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/events.ics?lang=en", nil))
		if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/calendar") {
			t.Errorf("expected text/calendar, got %s", ct)
		}
		if !strings.Contains(rec.Body.String(), "BEGIN:VCALENDAR") {
			t.Errorf("expected a calendar body, got %s", rec.Body.String())
		}
	})

	t.Run("session cookie", func(t *testing.T) {
		var userID uint
		if err := env.db.Raw("SELECT id FROM users LIMIT 1").Scan(&userID).Error; err != nil {
			t.Fatalf("failed to load user: %v", err)
		}
		token, err := env.admin.authHandler.GenerateToken(userID)
		if err != nil {
			t.Fatalf("GenerateToken returned error: %v", err)
		}
		req := httptest.NewRequest(http.MethodGet, "/admin/locations", nil)
		req.AddCookie(&http.Cookie{Name: "auth_token", Value: token})
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Errorf("expected 200 with a valid session, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("cors allows the front end", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodOptions, "/admin/single-events", nil)
		req.Header.Set("Origin", frontendOrigin)
		req.Header.Set("Access-Control-Request-Method", http.MethodGet)
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		if got := rec.Header().Get("Access-Control-Allow-Origin"); got != frontendOrigin {
			t.Errorf("expected allowed origin %s, got %q", frontendOrigin, got)
		}
		if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "true" {
			t.Errorf("expected credentials to be allowed, got %q", got)
		}
	})

	t.Run("cors ignores foreign origins", func(t *testing.T) {
		for _, path := range []string{"/events", "/admin/single-events"} {
			req := httptest.NewRequest(http.MethodGet, path, nil)
			req.Header.Set("Origin", "https://evil.example")
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, req)
			if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
				t.Errorf("%s: expected no allowed origin for a foreign site, got %q", path, got)
			}
			if got := rec.Header().Get("Access-Control-Allow-Credentials"); got != "" {
				t.Errorf("%s: expected no credentials header for a foreign site, got %q", path, got)
			}
		}
	})
}
