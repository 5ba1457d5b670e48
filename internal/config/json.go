package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] with JSON tags and
// string-friendly durations for file-based configuration.
type StructuredJSONConfig struct {
	Auth struct {
		TokenSignKey    string   `json:"token_sign_key"`
		TokenIssuer     string   `json:"token_issuer"`
		AccessTokenTTL  Duration `json:"access_token_ttl"`
		RefreshTokenTTL Duration `json:"refresh_token_ttl"`
	} `json:"auth,omitempty"`

	Storage struct {
		DB struct {
			DSN string `json:"dsn"`
		} `json:"db,omitempty"`

		Cache struct {
			Address    string   `json:"address"`
			Password   string   `json:"password"`
			DB         int      `json:"db"`
			DefaultTTL Duration `json:"default_ttl"`
		} `json:"cache,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
	} `json:"server,omitempty"`

	Backends struct {
		CardAddress        string   `json:"card_address"`
		MerchantAddress    string   `json:"merchant_address"`
		SaldoAddress       string   `json:"saldo_address"`
		TopupAddress       string   `json:"topup_address"`
		TransactionAddress string   `json:"transaction_address"`
		TransferAddress    string   `json:"transfer_address"`
		WithdrawAddress    string   `json:"withdraw_address"`
		RoleAddress        string   `json:"role_address"`
		UserAddress        string   `json:"user_address"`
		CallTimeout        Duration `json:"call_timeout"`
	} `json:"backends,omitempty"`

	RateLimit struct {
		Capacity       int      `json:"capacity"`
		RefillInterval Duration `json:"refill_interval"`
	} `json:"rate_limit,omitempty"`

	Observability struct {
		ExporterAddress string `json:"exporter_address"`
		ServiceName     string `json:"service_name"`
	} `json:"observability,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	cfg := &StructuredConfig{
		Auth: Auth{
			TokenSignKey:    jsonCfg.Auth.TokenSignKey,
			TokenIssuer:     jsonCfg.Auth.TokenIssuer,
			AccessTokenTTL:  time.Duration(jsonCfg.Auth.AccessTokenTTL),
			RefreshTokenTTL: time.Duration(jsonCfg.Auth.RefreshTokenTTL),
		},
		Storage: Storage{
			DB: DB{
				DSN: jsonCfg.Storage.DB.DSN,
			},
			Cache: Cache{
				Address:    jsonCfg.Storage.Cache.Address,
				Password:   jsonCfg.Storage.Cache.Password,
				DB:         jsonCfg.Storage.Cache.DB,
				DefaultTTL: time.Duration(jsonCfg.Storage.Cache.DefaultTTL),
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
		},
		Backends: Backends{
			CardAddress:        jsonCfg.Backends.CardAddress,
			MerchantAddress:    jsonCfg.Backends.MerchantAddress,
			SaldoAddress:       jsonCfg.Backends.SaldoAddress,
			TopupAddress:       jsonCfg.Backends.TopupAddress,
			TransactionAddress: jsonCfg.Backends.TransactionAddress,
			TransferAddress:    jsonCfg.Backends.TransferAddress,
			WithdrawAddress:    jsonCfg.Backends.WithdrawAddress,
			RoleAddress:        jsonCfg.Backends.RoleAddress,
			UserAddress:        jsonCfg.Backends.UserAddress,
			CallTimeout:        time.Duration(jsonCfg.Backends.CallTimeout),
		},
		RateLimit: RateLimit{
			Capacity:       jsonCfg.RateLimit.Capacity,
			RefillInterval: time.Duration(jsonCfg.RateLimit.RefillInterval),
		},
		Observability: Observability{
			ExporterAddress: jsonCfg.Observability.ExporterAddress,
			ServiceName:     jsonCfg.Observability.ServiceName,
		},
		JSONFilePath: "",
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling
// from strings like "1h", "30s".
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v interface{}
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return json.Unmarshal(b, (*time.Duration)(d))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
