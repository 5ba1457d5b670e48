package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key derives a cache key from a namespace, an operation name and the raw
// request parameters. The parameters are hashed so that sensitive values
// such as card numbers and API keys never appear in the key space.
func Key(namespace, op string, params ...string) string {
	h := sha256.New()
	for _, p := range params {
		h.Write([]byte(p))
		h.Write([]byte{0})
	}
	digest := hex.EncodeToString(h.Sum(nil))

	return "finpay:" + namespace + ":" + op + ":" + digest[:16]
}

// LoginAttemptsKey names the failed-login counter for an email address.
// The email is hashed for the same reason request parameters are.
func LoginAttemptsKey(email string) string {
	return Key("auth", "login_attempts", strings.ToLower(email))
}

// MaskCardNumber renders a card number for logs and trace attributes.
// Everything except the last four digits is replaced with asterisks.
func MaskCardNumber(number string) string {
	if len(number) <= 4 {
		return strings.Repeat("*", len(number))
	}
	return strings.Repeat("*", len(number)-4) + number[len(number)-4:]
}

// MaskAPIKey renders a merchant API key for logs and trace attributes,
// keeping only a short prefix to aid correlation.
func MaskAPIKey(key string) string {
	if len(key) <= 4 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + strings.Repeat("*", len(key)-4)
}
