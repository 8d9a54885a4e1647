package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/bwmarrin/discordgo"
	"github.com/gdg-garage/venue-events-api/internal/auth"
	"github.com/gdg-garage/venue-events-api/internal/config"
	"github.com/gdg-garage/venue-events-api/internal/database"
	"github.com/gdg-garage/venue-events-api/internal/handlers"
	"github.com/gdg-garage/venue-events-api/internal/logging"
	"github.com/gdg-garage/venue-events-api/internal/metrics"
	"github.com/gdg-garage/venue-events-api/internal/notifier"
	"github.com/gdg-garage/venue-events-api/internal/recurrence"
	"github.com/gdg-garage/venue-events-api/internal/scheduler"
	"github.com/gdg-garage/venue-events-api/internal/store"
	"github.com/go-chi/chi/v5"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	// .env is optional; real environment variables win.
	_ = godotenv.Load()

	// Load Configuration
	cfg := config.LoadConfig()

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("Invalid timezone", zap.Error(err))
	}

	// Connect to Database
	db := database.Connect(cfg, logger)
	s := store.New(db)

	engine := recurrence.NewEngine(s, recurrence.Config{
		Location: loc,
		Logger:   logger.Named("recurrence"),
		Metrics:  metrics.New(prometheus.DefaultRegisterer),
	})

	var eventNotifier notifier.Notifier
	if cfg.DiscordBotToken != "" {
		session, err := discordgo.New("Bot " + cfg.DiscordBotToken)
		if err != nil {
			logger.Warn("Discord notifier not initialized", zap.Error(err))
		} else {
			eventNotifier = notifier.NewDiscordNotifier(session, cfg.DiscordNotificationsChannelID, loc)
		}
	}

	// Initialize Handlers
	authHandler := auth.NewAuthHandler(cfg, db)
	eventsHandler := handlers.NewEventsHandler(s, recurrence.SystemClock, cfg.DefaultWindow, loc, logger.Named("events"))
	adminHandler := handlers.NewAdminHandler(s, engine, eventNotifier, authHandler, loc, logger.Named("admin"))

	// Initialize Router
	r := chi.NewRouter()
	handlers.RegisterRoutes(r, eventsHandler, adminHandler, handlers.RouteOptions{
		EnableCORS:  cfg.EnableCORS,
		CORSOrigins: cfg.CORSOrigins,
		Metrics:     promhttp.Handler(),
	})

	sched, err := scheduler.New(cfg.ExtendSeriesCron, loc, engine, logger.Named("scheduler"))
	if err != nil {
		logger.Fatal("Invalid series extension schedule", zap.Error(err))
	}
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sched.Start(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("Starting server", zap.String("port", cfg.Port), zap.String("timezone", loc.String()))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down")

	<-sched.Stop().Done()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Failed to shut down server", zap.Error(err))
	}
}
