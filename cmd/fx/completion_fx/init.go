package completion_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"jelajah/internal/config"
	"jelajah/pkg/utils"
)

var Module = fx.Provide(ProvideCompletionClient)

// ProvideCompletionClient builds the client for COMPLETION_PROVIDER.
func ProvideCompletionClient(cfg *config.Config, logger *zap.Logger) (utils.CompletionClientInterface, error) {
	completionCfg := CompletionConfig(cfg)
	logger.Info("initializing completion client",
		zap.String("provider", completionCfg.Provider),
		zap.String("model", completionCfg.Model),
		zap.Bool("search", completionCfg.SearchEnabled),
	)
	return utils.NewCompletionClient(context.Background(), completionCfg)
}

func CompletionConfig(cfg *config.Config) utils.CompletionConfig {
	return utils.CompletionConfig{
		Provider:      cfg.CompletionProvider,
		APIKey:        cfg.CompletionAPIKey(),
		Model:         cfg.CompletionModel(),
		SearchEnabled: cfg.SearchEnabled,
		Timeout:       cfg.GenerationTimeout,
	}
}
