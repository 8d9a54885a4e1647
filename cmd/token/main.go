// Command token mints a session token for a staff member, creating the
// account on first use. Set it as the auth_token cookie.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"github.com/gdg-garage/venue-events-api/internal/auth"
	"github.com/gdg-garage/venue-events-api/internal/config"
	"github.com/gdg-garage/venue-events-api/internal/database"
	"github.com/gdg-garage/venue-events-api/internal/logging"
	"github.com/joho/godotenv"
)

func main() {
	username := flag.String("user", "", "staff username")
	email := flag.String("email", "", "staff email (optional)")
	flag.Parse()

	if *username == "" {
		log.Fatal("-user is required")
	}

	_ = godotenv.Load()
	cfg := config.LoadConfig()
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is not set")
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	db := database.Connect(cfg, logger)
	authHandler := auth.NewAuthHandler(cfg, db)

	user, err := authHandler.EnsureUser(context.Background(), *username, *email)
	if err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	token, err := authHandler.GenerateToken(user.ID)
	if err != nil {
		log.Fatalf("Failed to sign token: %v", err)
	}
	fmt.Println(token)
}
