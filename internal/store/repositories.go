package store

import "github.com/finpay/gateway/internal/logger"

// Storages bundles every repository behind one injection point for the
// service layer.
type Storages struct {
	UserRepository         UserRepository
	RefreshTokenRepository RefreshTokenRepository
}

// NewStorages wires all repositories to the shared database connection.
func NewStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository:         NewUserRepository(db, log),
		RefreshTokenRepository: NewRefreshTokenRepository(db, log),
	}
}
