package http

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Init builds the router. Middleware order matters: the rate limiter sits
// before authentication, so a throttled client gets 429 without its
// credentials ever being inspected.
func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID)
	router.Use(h.withLogging)
	router.Use(h.withRateLimit)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Post("/api/auth/register", h.register)
		r.Post("/api/auth/login", h.login)
		r.Post("/api/auth/refresh", h.refresh)
	})

	// routes behind token authentication
	router.Group(func(r chi.Router) {
		r.Use(h.auth)

		r.Get("/api/auth/me", h.me)
		r.Post("/api/auth/logout", h.logout)

		r.Get("/api/card/number/{number}", h.findCardByNumber)
		r.Get("/api/merchant/apikey/{key}", h.findMerchantByAPIKey)
	})

	return router
}
