package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	App       AppConfig
	Catalog   CatalogConfig
	Redis     RedisConfig
	RateLimit RateLimitConfig
}

type ServerConfig struct {
	Port           string
	Env            string
	AllowedOrigins []string
}

type AppConfig struct {
	Timezone     string
	SeedDemoData bool
	LogFile      string
	LogLevel     string
}

type CatalogConfig struct {
	File             string
	FallbackType     string
	ResnapshotOnEdit bool
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type RateLimitConfig struct {
	Enabled  bool
	Requests int
	Window   time.Duration
}

func Load() *Config {
	viper.SetConfigName(".env")
	viper.SetConfigType("env")
	viper.AddConfigPath(".")
	viper.AutomaticEnv()

	// Set defaults
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_ENV", "development")
	viper.SetDefault("CORS_ALLOWED_ORIGINS", "")
	viper.SetDefault("APP_TIMEZONE", "Asia/Jakarta")
	viper.SetDefault("SEED_DEMO_DATA", true)
	viper.SetDefault("LOG_FILE", "harvest.log")
	viper.SetDefault("LOG_LEVEL", "")
	viper.SetDefault("CATALOG_FILE", "")
	viper.SetDefault("CATALOG_FALLBACK_TYPE", "Tomat")
	viper.SetDefault("CATALOG_RESNAPSHOT_ON_EDIT", true)
	viper.SetDefault("REDIS_HOST", "localhost")
	viper.SetDefault("REDIS_PORT", "6379")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("RATE_LIMIT_ENABLED", false)
	viper.SetDefault("RATE_LIMIT_REQUESTS", 120)
	viper.SetDefault("RATE_LIMIT_WINDOW_SECONDS", 60)

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Could not read config file: %v", err)
	}

	return &Config{
		Server: ServerConfig{
			Port:           viper.GetString("SERVER_PORT"),
			Env:            viper.GetString("SERVER_ENV"),
			AllowedOrigins: splitList(viper.GetString("CORS_ALLOWED_ORIGINS")),
		},
		App: AppConfig{
			Timezone:     viper.GetString("APP_TIMEZONE"),
			SeedDemoData: viper.GetBool("SEED_DEMO_DATA"),
			LogFile:      viper.GetString("LOG_FILE"),
			LogLevel:     viper.GetString("LOG_LEVEL"),
		},
		Catalog: CatalogConfig{
			File:             viper.GetString("CATALOG_FILE"),
			FallbackType:     viper.GetString("CATALOG_FALLBACK_TYPE"),
			ResnapshotOnEdit: viper.GetBool("CATALOG_RESNAPSHOT_ON_EDIT"),
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetString("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		RateLimit: RateLimitConfig{
			Enabled:  viper.GetBool("RATE_LIMIT_ENABLED"),
			Requests: viper.GetInt("RATE_LIMIT_REQUESTS"),
			Window:   time.Duration(viper.GetInt("RATE_LIMIT_WINDOW_SECONDS")) * time.Second,
		},
	}
}

// IsDevelopment reports whether the server runs in development mode
func (c *Config) IsDevelopment() bool {
	return c.Server.Env != "production"
}

// Location resolves the configured time zone used to turn "now" into a
// calendar day
func (c *Config) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %q: %w", c.App.Timezone, err)
	}
	return loc, nil
}

// RedisAddr returns host:port for the rate limiter
func (c *Config) RedisAddr() string {
	return c.Redis.Host + ":" + c.Redis.Port
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
