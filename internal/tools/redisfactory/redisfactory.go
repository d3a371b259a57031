package redisfactory

import (
	"time"

	"bitbucket.org/realdreams/travel-site/internal/config"
	"github.com/redis/go-redis/v9"
)

// If one connection needs to be broken up new function should be introduced
// example: SessionsClient()

type Factory struct {
	responsesCache *redis.Client
	preferences    *redis.Client
}

// New builds one client per configured URI. Empty URIs leave the client nil so callers fall back
// to their non-redis engines.
func New(cfg config.RedisConfig) (*Factory, error) {
	responsesCache, err := newClient(cfg.ResponsesCacheURI)
	if err != nil {
		return nil, err
	}

	preferences, err := newClient(cfg.PreferencesURI)
	if err != nil {
		return nil, err
	}

	return &Factory{
		responsesCache: responsesCache,
		preferences:    preferences,
	}, nil
}

func newClient(uri string) (*redis.Client, error) {
	if uri == "" {
		return nil, nil
	}

	opt, err := redis.ParseURL(uri)
	if err != nil {
		return nil, err
	}

	opt.DialTimeout = 4 * time.Second
	opt.ReadTimeout = 3 * time.Second
	opt.WriteTimeout = 3 * time.Second

	return redis.NewClient(opt), nil
}

func (f *Factory) ResponsesCacheClient() *redis.Client {
	return f.responsesCache
}

func (f *Factory) PreferencesClient() *redis.Client {
	return f.preferences
}

func (f *Factory) Close() error {
	for _, client := range []*redis.Client{f.responsesCache, f.preferences} {
		if client == nil {
			continue
		}
		if err := client.Close(); err != nil {
			return err
		}
	}
	return nil
}
