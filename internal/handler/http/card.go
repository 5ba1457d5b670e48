package http

import (
	"net/http"
	"time"

	"github.com/finpay/gateway/internal/cache"
	"github.com/finpay/gateway/internal/gateway"
	"github.com/finpay/gateway/internal/utils"
	"github.com/finpay/gateway/models"
	"github.com/go-chi/chi/v5"
	"go.opentelemetry.io/otel/attribute"
)

const cardCacheTTL = 5 * time.Minute

type findCardByNumberRequest struct {
	CardNumber string `json:"card_number"`
}

// findCardByNumber proxies GET /api/card/number/{number} to the card
// backend. The card number is sensitive: trace attributes see the masked
// form and the cache key only a hash.
func (h *Handler) findCardByNumber(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	number := chi.URLParam(r, "number")
	if number == "" {
		respondError(w, r, errValidation("card number is required"))
		return
	}

	reply, err := gateway.Call[models.APIResponse[models.Card]](ctx, h.dispatcher, gateway.Request{
		Entity:   "card",
		Method:   "/card.CardService/FindByCardNumber",
		Op:       "FindCardByNumber",
		CacheKey: cache.Key("card", "find_by_number", number),
		TTL:      cardCacheTTL,
		Attrs: []attribute.KeyValue{
			attribute.String("card_number", cache.MaskCardNumber(number)),
		},
		Body: findCardByNumberRequest{CardNumber: number},
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, reply, http.StatusOK)
}
