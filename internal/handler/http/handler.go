package http

import (
	"time"

	"github.com/OleksandrHridzhak/onda-sync/internal/config"
	"github.com/OleksandrHridzhak/onda-sync/internal/logger"
	"github.com/OleksandrHridzhak/onda-sync/internal/ratelimit"
	"github.com/OleksandrHridzhak/onda-sync/internal/service"
)

type Handler struct {
	services *service.Services

	authCfg        config.Auth
	limiter        *ratelimit.Limiter
	requestTimeout time.Duration

	logger *logger.Logger
}

func NewHandler(services *service.Services, cfg *config.StructuredConfig, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:       services,
		authCfg:        cfg.Auth,
		limiter:        ratelimit.NewLimiter(cfg.RateLimit.MaxRequests, cfg.RateLimit.Window),
		requestTimeout: cfg.Server.RequestTimeout,
		logger:         logger,
	}
}
