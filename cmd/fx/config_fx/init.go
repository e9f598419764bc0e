package config_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"jelajah/internal/config"
	"jelajah/internal/infra"
	"jelajah/pkg/metrics"
)

var Module = fx.Provide(
	config.Load,
	provideLogger,
	metrics.New,
)

func provideLogger(lc fx.Lifecycle, cfg *config.Config) (*zap.Logger, error) {
	logger, err := infra.NewLogger(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		_ = logger.Sync()
	}))
	return logger, nil
}
