package service

import (
	"github.com/finpay/gateway/internal/cache"
	"github.com/finpay/gateway/internal/config"
	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/store"
)

// Services bundles the service layer behind one injection point for the
// HTTP handlers.
type Services struct {
	TokenService TokenService
	AuthService  AuthService
}

// NewServices wires the service layer to its repositories and the cache.
func NewServices(storages *store.Storages, c *cache.Cache, cfg config.StructuredConfig, logger *logger.Logger) *Services {
	tokenService := NewTokenService(storages.RefreshTokenRepository, cfg.Auth, logger)

	return &Services{
		TokenService: tokenService,
		AuthService:  NewAuthService(storages.UserRepository, tokenService, c, logger),
	}
}
