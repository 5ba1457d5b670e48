package utils

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/finpay/gateway/models"
	"github.com/golang-jwt/jwt/v5"
)

// GenerateAccessToken creates a signed HMAC-SHA256 JWT with the standard
// claim set: iss, sub (the user ID as a base-10 string), iat and exp.
//
// All parameters are required; an error is returned when any is empty or
// zero.
func GenerateAccessToken(issuer string, userID int64, tokenDuration time.Duration, signKey string) (models.AccessToken, error) {
	if issuer == "" || tokenDuration == 0 || signKey == "" {
		return models.AccessToken{}, errors.New("invalid params for generating JWT token")
	}

	now := time.Now()
	claims := &jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   strconv.FormatInt(userID, 10),
		ExpiresAt: jwt.NewNumericDate(now.Add(tokenDuration)),
		IssuedAt:  jwt.NewNumericDate(now),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString([]byte(signKey))
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("error occurred during signing JWT token: %w", err)
	}

	return models.AccessToken{Token: token, SignedString: tokenString, UserID: userID}, nil
}

// ValidateAndParseAccessToken verifies the signature, issuer and expiry of a
// raw JWT string and extracts the user ID from the subject claim.
//
// Only HMAC-signed tokens are accepted; an asymmetric algorithm in the
// header is a verification failure, not a fallback.
func ValidateAndParseAccessToken(tokenString, tokenSignKey, tokenIssuer string) (models.AccessToken, error) {
	parsed := &models.AccessToken{}
	token, err := jwt.ParseWithClaims(tokenString, parsed, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(tokenSignKey), nil
	}, jwt.WithIssuer(tokenIssuer))
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("error occurred validating and parsing token: %w", err)
	}

	userIDString, err := token.Claims.GetSubject()
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("error occurred during getting subject from token: %w", err)
	}
	if userIDString == "" {
		return models.AccessToken{}, errors.New("empty subject error")
	}

	userID, err := strconv.ParseInt(userIDString, 10, 64)
	if err != nil {
		return models.AccessToken{}, fmt.Errorf("error occurred during converting subject to user ID: %w", err)
	}

	parsed.Token = token
	parsed.SignedString = tokenString
	parsed.UserID = userID

	return *parsed, nil
}

// IsTokenExpired reports whether err represents a JWT expiry failure rather
// than some other validation problem.
func IsTokenExpired(err error) bool {
	return errors.Is(err, jwt.ErrTokenExpired)
}

// ParseBearerToken extracts the credential from an Authorization header of
// the form "Bearer <token>".
func ParseBearerToken(authorizationHeader string) (string, error) {
	parts := strings.Split(strings.TrimSpace(authorizationHeader), " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", errors.New("invalid authorization header")
	}
	return parts[1], nil
}
