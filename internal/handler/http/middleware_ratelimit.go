package http

import (
	"net"
	"net/http"

	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/utils"
	"github.com/finpay/gateway/models"
)

// withRateLimit enforces the per-client token bucket. It runs before
// authentication, so a flooding client is refused with 429 without the cost
// of verifying its credentials.
func (h *Handler) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := clientKey(r)

		if !h.limiter.Allow(key) {
			logger.FromRequest(r).Warn().Str("client", key).Msg("rate limit exceeded")
			utils.WriteJSON(w, models.NewErrorResponse("rate limit exceeded"), http.StatusTooManyRequests)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// clientKey identifies the client bucket. The remote IP is enough for a
// gateway that terminates client connections directly; behind a trusted
// load balancer chi's RealIP middleware would rewrite RemoteAddr first.
func clientKey(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
