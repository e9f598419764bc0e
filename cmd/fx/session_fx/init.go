package session_fx

import (
	"context"
	"fmt"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"jelajah/internal/config"
	"jelajah/internal/services"
	mem "jelajah/pkg/memcache"
	"jelajah/pkg/utils"
)

var Module = fx.Provide(
	provideSessionStore,
	provideSessionTokens,
)

func provideSessionStore(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (mem.SessionStore[services.PlannerState], error) {
	switch cfg.SessionBackend {
	case config.SessionBackendMemory:
		return mem.NewMemorySessionStore[services.PlannerState](cfg.SessionTTL), nil
	case config.SessionBackendRedis:
		client, err := mem.NewRedisClient(context.Background(), cfg.RedisURL)
		if err != nil {
			return nil, err
		}
		lc.Append(fx.StopHook(func() error {
			return client.Close()
		}))
		logger.Info("planner sessions stored in redis")
		return mem.NewRedisSessionStore[services.PlannerState](client, cfg.SessionTTL), nil
	default:
		return nil, fmt.Errorf("%w: %s", utils.ErrUnsupportedBackend, cfg.SessionBackend)
	}
}

func provideSessionTokens(cfg *config.Config) *utils.SessionTokens {
	return utils.NewSessionTokens(cfg.SessionSecret, cfg.SessionTTL)
}
