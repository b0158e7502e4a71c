package server

import (
	"fmt"
	"net/http"
	"time"

	"harvest-keeper/internal/config"
	"harvest-keeper/internal/metrics"
	custommiddleware "harvest-keeper/internal/middleware"
	"harvest-keeper/internal/service"
	"harvest-keeper/internal/transport"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	*http.Server
	config *config.Config
	logger *zap.Logger
	redis  *redis.Client
}

// NewServer wires the router. redisClient may be nil, in which case rate
// limiting is skipped even when enabled in cfg.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	harvestService service.HarvestService,
	sessionService service.SessionService,
	redisClient *redis.Client,
) *Server {
	// Create router
	router := chi.NewRouter()

	// Add basic middleware
	router.Use(custommiddleware.DefaultMiddlewareStack()...)
	router.Use(custommiddleware.CORSMiddleware(cfg.Server.AllowedOrigins, cfg.IsDevelopment()))
	router.Use(custommiddleware.LoggingMiddleware(logger))
	router.Use(metrics.Middleware)
	router.Use(custommiddleware.ErrorHandlingMiddleware(logger))

	if cfg.RateLimit.Enabled && redisClient != nil {
		router.Use(custommiddleware.RateLimitMiddleware(redisClient, custommiddleware.RateLimitConfig{
			RequestsPerWindow: cfg.RateLimit.Requests,
			Window:            cfg.RateLimit.Window,
			KeyPrefix:         "ratelimit:harvest",
			ExemptPaths:       []string{"/health", "/metrics"},
		}, logger))
	}

	// Health check endpoint
	router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`))
	})
	router.Handle("/metrics", promhttp.Handler())

	// Initialize handlers
	productHandler := transport.NewProductHandler(harvestService, logger)
	catalogHandler := transport.NewCatalogHandler(harvestService.Catalog())
	reminderHandler := transport.NewReminderHandler(harvestService, logger)
	sessionHandler := transport.NewSessionHandler(sessionService, logger)

	// Register routes
	productHandler.RegisterRoutes(router)
	catalogHandler.RegisterRoutes(router)
	reminderHandler.RegisterRoutes(router)
	sessionHandler.RegisterRoutes(router)

	server := &Server{
		Server: &http.Server{
			Addr:         fmt.Sprintf(":%s", cfg.Server.Port),
			Handler:      router,
			IdleTimeout:  time.Minute,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		config: cfg,
		logger: logger,
		redis:  redisClient,
	}

	return server
}

func (s *Server) Close() error {
	s.logger.Info("Closing server resources")

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Error("Failed to close redis connection", zap.Error(err))
		}
	}

	s.logger.Sync()
	return nil
}
