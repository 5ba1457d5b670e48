package rpc

import (
	"fmt"
	"io"

	"github.com/finpay/gateway/internal/config"
	"github.com/finpay/gateway/internal/logger"
)

// Backends is the registry of connected backend services, keyed by entity
// name. Only entities with a configured address are dialed.
type Backends struct {
	clients map[string]*Client
	conns   []io.Closer
	logger  *logger.Logger
}

// NewBackends dials every configured backend service.
func NewBackends(cfg config.Backends, log *logger.Logger) (*Backends, error) {
	addresses := map[string]string{
		"card":        cfg.CardAddress,
		"merchant":    cfg.MerchantAddress,
		"saldo":       cfg.SaldoAddress,
		"topup":       cfg.TopupAddress,
		"transaction": cfg.TransactionAddress,
		"transfer":    cfg.TransferAddress,
		"withdraw":    cfg.WithdrawAddress,
		"role":        cfg.RoleAddress,
		"user":        cfg.UserAddress,
	}

	b := &Backends{
		clients: make(map[string]*Client, len(addresses)),
		logger:  log,
	}

	for entity, address := range addresses {
		if address == "" {
			continue
		}

		conn, err := Dial(address)
		if err != nil {
			b.Close()
			log.Err(err).Str("entity", entity).Str("address", address).Msg("failed to dial backend")
			return nil, fmt.Errorf("dial %s backend: %w", entity, err)
		}

		b.clients[entity] = NewClient(conn, cfg.CallTimeout, log)
		b.conns = append(b.conns, conn)
		log.Info().Str("entity", entity).Str("address", address).Msg("backend connected")
	}

	return b, nil
}

// Client returns the client for an entity, or an error when the entity has
// no configured backend.
func (b *Backends) Client(entity string) (*Client, error) {
	client, ok := b.clients[entity]
	if !ok {
		return nil, fmt.Errorf("no backend configured for entity %q", entity)
	}
	return client, nil
}

// Close tears down every backend connection.
func (b *Backends) Close() {
	for _, conn := range b.conns {
		if err := conn.Close(); err != nil {
			b.logger.Err(err).Msg("closing backend connection")
		}
	}
}
