package session

import (
	"context"
	"log/slog"

	"bijou/config"
	"bijou/internal/domain/repository"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Store backend names accepted in config.
const (
	ProviderMemory = "memory"
	ProviderRedis  = "redis"
	ProviderBlob   = "blob"
)

// StoreParams holds dependencies for the SessionStore, injected by Fx
type StoreParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

// NewStore creates a SessionStore based on configuration.
func NewStore(params StoreParams) (repository.SessionStore, error) {
	cfg := params.Config.Session
	logger := params.Logger

	// No configuration means ephemeral in-memory sessions.
	if cfg == nil || cfg.Provider == "" || cfg.Provider == ProviderMemory {
		logger.Info("Using in-memory session store")

		return NewMemoryStore(), nil
	}

	switch cfg.Provider {
	case ProviderRedis:
		if cfg.Redis == nil || cfg.Redis.Addr == "" {
			return nil, errors.New("redis address is required for the redis session store")
		}
		logger.Info("Using redis session store", slog.String("addr", cfg.Redis.Addr))

		store, err := NewRedisStore(params.Ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return store.Close()
			},
		})

		return store, nil

	case ProviderBlob:
		if cfg.Blob == nil || cfg.Blob.URL == "" {
			return nil, errors.New("bucket URL is required for the blob session store")
		}
		logger.Info("Using blob session store", slog.String("bucket", cfg.Blob.URL))

		store, err := NewBlobStore(params.Ctx, cfg.Blob.URL)
		if err != nil {
			return nil, err
		}
		params.Lc.Append(fx.Hook{
			OnStop: func(context.Context) error {
				return store.Close()
			},
		})

		return store, nil

	default:
		return nil, errors.Errorf("unknown session store provider: %s", cfg.Provider)
	}
}

// Module provides the session store FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewStore),
)
