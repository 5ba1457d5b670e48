package service

import (
	"context"

	"github.com/finpay/gateway/models"
)

// TokenService owns the credential lifecycle: issuing access/refresh pairs,
// verifying access tokens, rotating refresh tokens and revocation.
type TokenService interface {
	CreateTokenPair(ctx context.Context, userID int64) (models.TokenPair, error)
	VerifyAccessToken(ctx context.Context, tokenString string) (models.AccessToken, error)
	Rotate(ctx context.Context, refreshToken string) (models.TokenPair, error)
	RevokeAll(ctx context.Context, userID int64) error
}

// AuthService implements the account-facing authentication flows exposed by
// the HTTP layer.
type AuthService interface {
	Register(ctx context.Context, user models.User, password string) (models.User, error)
	Login(ctx context.Context, email, password string) (models.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (models.TokenPair, error)
	Logout(ctx context.Context, userID int64) error
	Me(ctx context.Context, userID int64) (models.User, error)
}
