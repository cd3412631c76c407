package secrets

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/hashicorp/consul/api"
)

// ConsulStore reads secrets from Consul KV under a key prefix.
type ConsulStore struct {
	kv     *api.KV
	prefix string
}

// NewConsulStore connects to the agent at address. An empty address uses the
// client defaults (CONSUL_HTTP_ADDR or 127.0.0.1:8500).
func NewConsulStore(address, token, prefix string) (*ConsulStore, error) {
	cfg := api.DefaultConfig()
	if address != "" {
		cfg.Address = address
	}
	if token != "" {
		cfg.Token = token
	}
	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create Consul client: %w", err)
	}
	if prefix != "" && !strings.HasSuffix(prefix, "/") {
		prefix += "/"
	}
	slog.Info("Consul secret store initialized", "address", cfg.Address, "prefix", prefix)
	return &ConsulStore{kv: client.KV(), prefix: prefix}, nil
}

func (s *ConsulStore) Get(ctx context.Context, name string) (string, error) {
	key := s.prefix + name
	pair, _, err := s.kv.Get(key, (&api.QueryOptions{}).WithContext(ctx))
	if err != nil {
		return "", fmt.Errorf("failed to get key %s: %w", key, err)
	}
	if pair == nil {
		return "", ErrNotFound
	}
	return strings.TrimSpace(string(pair.Value)), nil
}
