package http

import (
	"github.com/finpay/gateway/internal/gateway"
	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/ratelimit"
	"github.com/finpay/gateway/internal/service"
)

type Handler struct {
	services   *service.Services
	dispatcher *gateway.Dispatcher
	limiter    *ratelimit.Limiter

	logger *logger.Logger
}

func NewHandler(services *service.Services, dispatcher *gateway.Dispatcher, limiter *ratelimit.Limiter, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		services:   services,
		dispatcher: dispatcher,
		limiter:    limiter,
		logger:     logger,
	}
}
