package models

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// AccessToken wraps a parsed JWT access token with convenience accessors.
//
// It embeds [jwt.Token] for low-level operations and [jwt.RegisteredClaims]
// for standard claim access. Access tokens are stateless: they are verified
// cryptographically and are never persisted server-side.
type AccessToken struct {
	// Token is the underlying JWT used for signing and claim inspection.
	*jwt.Token `json:"-"`

	// RegisteredClaims provides the standard JWT claim set (RFC 7519).
	jwt.RegisteredClaims

	// SignedString is the compact JWS form of the token
	// (base64url header.payload.signature), ready for an HTTP header.
	SignedString string `json:"-"`

	// UserID is the owner identifier parsed from the "sub" claim.
	UserID int64 `json:"-"`
}

// GetUserID extracts the user identifier from the token's "sub" claim and
// parses it as a base-10 int64.
func (t *AccessToken) GetUserID() (int64, error) {
	sub, err := t.GetSubject()
	if err != nil {
		return 0, fmt.Errorf("error extracting UserID from token: %w", err)
	}

	userID, err := strconv.ParseInt(sub, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("error converting UserID from token to int64: %w", err)
	}

	return userID, nil
}

// String returns the compact JWS serialization of the token.
// It implements the [fmt.Stringer] interface.
func (t *AccessToken) String() string {
	return t.SignedString
}

// RefreshToken is a server-persisted, revocable credential used to obtain a
// new access/refresh pair. Unlike access tokens, refresh tokens are opaque
// strings: they carry no claims and must be looked up in the store, which is
// what makes revocation possible.
type RefreshToken struct {
	// UserID is the owner of the token.
	UserID int64 `json:"user_id"`

	// Token is the opaque random token value.
	Token string `json:"token"`

	// ExpiresAt is the absolute expiry time after which the token must be
	// rejected and removed.
	ExpiresAt time.Time `json:"expires_at"`
}

// Expired reports whether the token's expiry has passed at the given instant.
func (r *RefreshToken) Expired(now time.Time) bool {
	return now.After(r.ExpiresAt)
}

// TokenPair is the access+refresh pair returned by login and refresh.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}
