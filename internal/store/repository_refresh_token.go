package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/models"
)

// refreshTokenRepository is the PostgreSQL-backed implementation of
// [RefreshTokenRepository]. It executes all token lifecycle operations
// against the "refresh_tokens" table.
type refreshTokenRepository struct {
	logger *logger.Logger
	db     *DB
}

// NewRefreshTokenRepository constructs a [RefreshTokenRepository] backed by
// the provided database connection and logger.
func NewRefreshTokenRepository(db *DB, logger *logger.Logger) RefreshTokenRepository {
	logger.Debug().Msg("creating refresh token repository")
	return &refreshTokenRepository{
		db:     db,
		logger: logger,
	}
}

// Create persists a freshly issued refresh token.
func (r *refreshTokenRepository) Create(ctx context.Context, token models.RefreshToken) error {
	log := logger.FromContext(ctx)

	query, args, err := buildInsertRefreshTokenQuery(token.Token, token.UserID, token.ExpiresAt)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Create").Msg("failed to create query")
		return err
	}

	if _, err = r.db.ExecContext(ctx, query, args...); err != nil {
		log.Err(err).
			Str("func", "*refreshTokenRepository.Create").
			Int64("user_id", token.UserID).
			Msg("failed to execute query for saving refresh token")
		return fmt.Errorf("unexpected DB error: %w", err)
	}

	return nil
}

// Find looks up a refresh token by its value.
//
// Returns [ErrRefreshTokenNotFound] when no row matches: the token was never
// issued, was consumed by rotation, or was revoked by logout.
func (r *refreshTokenRepository) Find(ctx context.Context, token string) (models.RefreshToken, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildFindRefreshTokenQuery(token)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Find").Msg("failed to create query")
		return models.RefreshToken{}, err
	}

	var found models.RefreshToken
	row := r.db.QueryRowContext(ctx, query, args...)
	if err = row.Scan(&found.Token, &found.UserID, &found.ExpiresAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.RefreshToken{}, ErrRefreshTokenNotFound
		}
		log.Err(err).Str("func", "*refreshTokenRepository.Find").Msg("error: scanning error")
		return models.RefreshToken{}, fmt.Errorf("unexpected DB error: %w", err)
	}

	return found, nil
}

// Delete removes a single refresh token and reports how many rows were
// affected. A zero count means another caller already consumed the token.
func (r *refreshTokenRepository) Delete(ctx context.Context, token string) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteRefreshTokenQuery(token)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Delete").Msg("failed to create query")
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Delete").Msg("failed to execute query for deleting refresh token")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.Delete").Msg("failed to read affected rows count")
		return 0, err
	}

	return rowsAffected, nil
}

// DeleteByUserID revokes every refresh token issued to the given user.
// Used by logout to invalidate all active sessions at once.
func (r *refreshTokenRepository) DeleteByUserID(ctx context.Context, userID int64) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteUserRefreshTokensQuery(userID)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.DeleteByUserID").Msg("failed to create query")
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).
			Str("func", "*refreshTokenRepository.DeleteByUserID").
			Int64("user_id", userID).
			Msg("failed to execute query for deleting user refresh tokens")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.DeleteByUserID").Msg("failed to read affected rows count")
		return 0, err
	}

	return rowsAffected, nil
}

// DeleteExpired removes every token whose expiry is at or before now.
// Runs from the background housekeeping loop.
func (r *refreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := buildDeleteExpiredRefreshTokensQuery(now)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.DeleteExpired").Msg("failed to create query")
		return 0, err
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.DeleteExpired").Msg("failed to execute query for deleting expired refresh tokens")
		return 0, fmt.Errorf("unexpected DB error: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Err(err).Str("func", "*refreshTokenRepository.DeleteExpired").Msg("failed to read affected rows count")
		return 0, err
	}

	return rowsAffected, nil
}
