package config

import (
	"fmt"
	"log"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                          string        `mapstructure:"PORT"`
	DatabaseDriver                string        `mapstructure:"DATABASE_DRIVER"`
	DatabaseDSN                   string        `mapstructure:"DATABASE_DSN"`
	Timezone                      string        `mapstructure:"TIMEZONE"`
	LogLevel                      string        `mapstructure:"LOG_LEVEL"`
	JWTSecret                     string        `mapstructure:"JWT_SECRET"`
	DiscordBotToken               string        `mapstructure:"DISCORD_BOT_TOKEN"`
	DiscordNotificationsChannelID string        `mapstructure:"DISCORD_NOTIFICATIONS_CHANNEL_ID"`
	ExtendSeriesCron              string        `mapstructure:"EXTEND_SERIES_CRON"`
	DefaultWindow                 time.Duration `mapstructure:"DEFAULT_WINDOW"`
	EnableCORS                    bool          `mapstructure:"ENABLE_CORS"`
	CORSOrigins                   []string      `mapstructure:"CORS_ORIGINS"`
}

func LoadConfig() *Config {
	viper.SetDefault("PORT", "8080")
	viper.SetDefault("DATABASE_DRIVER", "sqlite")
	viper.SetDefault("DATABASE_DSN", "venue.db")
	viper.SetDefault("TIMEZONE", "Europe/Berlin")
	viper.SetDefault("LOG_LEVEL", "info")
	// Five past midnight on January 1st.
	viper.SetDefault("EXTEND_SERIES_CRON", "5 0 1 1 *")
	viper.SetDefault("DEFAULT_WINDOW", 3*7*24*time.Hour)
	viper.SetDefault("ENABLE_CORS", false)
	// Origins of the calendar front end allowed to send credentials.
	viper.SetDefault("CORS_ORIGINS", []string{"http://127.0.0.1:4000"})

	viper.BindEnv("JWT_SECRET")
	viper.BindEnv("DISCORD_BOT_TOKEN")
	viper.BindEnv("DISCORD_NOTIFICATIONS_CHANNEL_ID")
	viper.BindEnv("CORS_ORIGINS")

	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	return &config
}

// Location resolves the venue's time zone. Calendar arithmetic for
// recurring events happens in it.
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
