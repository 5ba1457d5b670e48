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

const merchantCacheTTL = 5 * time.Minute

type findMerchantByAPIKeyRequest struct {
	APIKey string `json:"api_key"`
}

// findMerchantByAPIKey proxies GET /api/merchant/apikey/{key} to the
// merchant backend. The API key is treated like a card number: masked in
// trace attributes, hashed in the cache key.
func (h *Handler) findMerchantByAPIKey(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	apiKey := chi.URLParam(r, "key")
	if apiKey == "" {
		respondError(w, r, errValidation("api key is required"))
		return
	}

	reply, err := gateway.Call[models.APIResponse[models.Merchant]](ctx, h.dispatcher, gateway.Request{
		Entity:   "merchant",
		Method:   "/merchant.MerchantService/FindByApiKey",
		Op:       "FindMerchantByAPIKey",
		CacheKey: cache.Key("merchant", "find_by_apikey", apiKey),
		TTL:      merchantCacheTTL,
		Attrs: []attribute.KeyValue{
			attribute.String("api_key", cache.MaskAPIKey(apiKey)),
		},
		Body: findMerchantByAPIKeyRequest{APIKey: apiKey},
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	utils.WriteJSON(w, reply, http.StatusOK)
}
