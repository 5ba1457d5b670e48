package service

import (
	"context"
	"errors"
	"time"

	"github.com/finpay/gateway/internal/config"
	"github.com/finpay/gateway/internal/errs"
	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/store"
	"github.com/finpay/gateway/internal/utils"
	"github.com/finpay/gateway/models"
)

// tokenService is the concrete implementation of [TokenService].
//
// Access tokens are stateless HMAC-SHA256 JWTs; refresh tokens are opaque
// UUIDs persisted in the refresh token store, which makes them revocable and
// single-use under rotation.
type tokenService struct {
	refreshTokens store.RefreshTokenRepository
	uuidGenerator *utils.UUIDGenerator

	// tokenSignKey is the HMAC secret used to sign and verify access tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued token.
	tokenIssuer string

	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration

	logger *logger.Logger
}

// NewTokenService constructs a [TokenService] wired to the refresh token
// store and populated with security parameters from cfg.
func NewTokenService(refreshTokens store.RefreshTokenRepository, cfg config.Auth, logger *logger.Logger) TokenService {
	return &tokenService{
		refreshTokens:   refreshTokens,
		uuidGenerator:   utils.NewUUIDGenerator(),
		tokenSignKey:    cfg.TokenSignKey,
		tokenIssuer:     cfg.TokenIssuer,
		accessTokenTTL:  cfg.AccessTokenTTL,
		refreshTokenTTL: cfg.RefreshTokenTTL,
		logger:          logger,
	}
}

// CreateTokenPair issues a fresh access/refresh pair for the user. The
// refresh token is persisted before the pair is returned, so a returned pair
// is always redeemable.
func (s *tokenService) CreateTokenPair(ctx context.Context, userID int64) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	accessToken, err := utils.GenerateAccessToken(s.tokenIssuer, userID, s.accessTokenTTL, s.tokenSignKey)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("access token generation failed")
		return models.TokenPair{}, errs.Wrap(errs.KindInternal, "could not issue access token", err)
	}

	refreshToken := models.RefreshToken{
		UserID:    userID,
		Token:     s.uuidGenerator.Generate(),
		ExpiresAt: time.Now().Add(s.refreshTokenTTL),
	}
	if err = s.refreshTokens.Create(ctx, refreshToken); err != nil {
		log.Err(err).Int64("user_id", userID).Msg("refresh token persistence failed")
		return models.TokenPair{}, errs.Wrap(errs.KindInternal, "could not issue refresh token", err)
	}

	return models.TokenPair{
		AccessToken:  accessToken.SignedString,
		RefreshToken: refreshToken.Token,
	}, nil
}

// VerifyAccessToken checks the signature, issuer and expiry of a raw access
// token. An expired token is reported as KindTokenExpired so clients know to
// refresh instead of re-authenticating.
func (s *tokenService) VerifyAccessToken(ctx context.Context, tokenString string) (models.AccessToken, error) {
	token, err := utils.ValidateAndParseAccessToken(tokenString, s.tokenSignKey, s.tokenIssuer)
	if err != nil {
		if utils.IsTokenExpired(err) {
			return models.AccessToken{}, errs.Wrap(errs.KindTokenExpired, "access token has expired", err)
		}
		return models.AccessToken{}, errs.Wrap(errs.KindUnauthorized, "invalid access token", err)
	}

	return token, nil
}

// Rotate redeems a refresh token for a new pair and invalidates the old
// token in the same flow.
//
// An expired token is deleted before the failure is reported, so it cannot
// be retried. When two requests race on the same token, the delete below
// succeeds for exactly one of them; the loser gets KindUnauthorized and no
// second pair is ever issued.
func (s *tokenService) Rotate(ctx context.Context, refreshToken string) (models.TokenPair, error) {
	log := logger.FromContext(ctx)

	found, err := s.refreshTokens.Find(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, store.ErrRefreshTokenNotFound) {
			return models.TokenPair{}, errs.New(errs.KindUnauthorized, "refresh token is not recognized")
		}
		log.Err(err).Msg("refresh token lookup failed")
		return models.TokenPair{}, errs.Wrap(errs.KindInternal, "could not verify refresh token", err)
	}

	if found.Expired(time.Now()) {
		if _, deleteErr := s.refreshTokens.Delete(ctx, refreshToken); deleteErr != nil {
			log.Err(deleteErr).Msg("failed to remove expired refresh token")
		}
		return models.TokenPair{}, errs.New(errs.KindTokenExpired, "refresh token has expired")
	}

	deleted, err := s.refreshTokens.Delete(ctx, refreshToken)
	if err != nil {
		log.Err(err).Msg("refresh token invalidation failed")
		return models.TokenPair{}, errs.Wrap(errs.KindInternal, "could not rotate refresh token", err)
	}
	if deleted == 0 {
		return models.TokenPair{}, errs.New(errs.KindUnauthorized, "refresh token was already used")
	}

	return s.CreateTokenPair(ctx, found.UserID)
}

// RevokeAll invalidates every refresh token issued to the user. Access
// tokens already in the wild stay valid until their own expiry.
func (s *tokenService) RevokeAll(ctx context.Context, userID int64) error {
	log := logger.FromContext(ctx)

	revoked, err := s.refreshTokens.DeleteByUserID(ctx, userID)
	if err != nil {
		log.Err(err).Int64("user_id", userID).Msg("refresh token revocation failed")
		return errs.Wrap(errs.KindInternal, "could not revoke refresh tokens", err)
	}

	log.Info().Int64("user_id", userID).Int64("revoked", revoked).Msg("refresh tokens revoked")
	return nil
}
