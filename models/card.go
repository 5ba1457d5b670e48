package models

import "time"

// Card is the gateway-side view of a card record returned by the card
// backend service. Field mapping and mutation flows live in the backend; the
// gateway only relays this shape.
type Card struct {
	CardID       int64     `json:"id"`
	UserID       int64     `json:"user_id"`
	CardNumber   string    `json:"card_number"`
	CardType     string    `json:"card_type"`
	ExpireDate   time.Time `json:"expire_date"`
	CVV          string    `json:"-"`
	CardProvider string    `json:"card_provider"`
}

// Merchant is the gateway-side view of a merchant record. The APIKey is
// sensitive: it is masked before appearing in logs, trace attributes, or
// cache keys.
type Merchant struct {
	MerchantID int64  `json:"id"`
	Name       string `json:"name"`
	APIKey     string `json:"api_key"`
	UserID     int64  `json:"user_id"`
	Status     string `json:"status"`
}
