package secrets

import (
	"context"
	"strings"

	"github.com/spf13/viper"
)

// EnvStore reads secrets from the environment (or .env file) through viper.
// Dashes in secret names map to underscores: BACKEND-API-KEY is read from
// BACKEND_API_KEY.
type EnvStore struct {
	v *viper.Viper
}

// NewEnvStore uses v, or the global viper instance when v is nil.
func NewEnvStore(v *viper.Viper) *EnvStore {
	if v == nil {
		v = viper.GetViper()
	}
	return &EnvStore{v: v}
}

func (s *EnvStore) Get(_ context.Context, name string) (string, error) {
	key := strings.ReplaceAll(name, "-", "_")
	if !s.v.IsSet(key) {
		return "", ErrNotFound
	}
	value := s.v.GetString(key)
	if value == "" {
		return "", ErrNotFound
	}
	return value, nil
}
