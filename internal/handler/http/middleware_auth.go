package http

import (
	"context"
	"net/http"

	"github.com/finpay/gateway/internal/logger"
	"github.com/finpay/gateway/internal/utils"
)

// auth enforces bearer-token authentication.
//
// It extracts the token from the "Authorization" header, verifies it via the
// token service, and on success stores the authenticated user's ID in the
// request context under [utils.UserIDCtxKey]. Verification failures produce
// the uniform 401 error body; an expired token gets a distinct message so
// clients know to call the refresh endpoint.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)

		tokenString, err := utils.ParseBearerToken(r.Header.Get("Authorization"))
		if err != nil {
			log.Warn().Err(err).Msg("missing or malformed authorization header")
			respondError(w, r, errUnauthorized("missing or malformed authorization header"))
			return
		}

		ctx := r.Context()
		token, err := h.services.TokenService.VerifyAccessToken(ctx, tokenString)
		if err != nil {
			respondError(w, r, err)
			return
		}

		// downstream handlers read the user ID from the context instead of
		// re-parsing the token
		ctx = context.WithValue(ctx, utils.UserIDCtxKey, token.UserID)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
