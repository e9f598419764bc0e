package db_fx

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jelajah/internal/config"
	"jelajah/internal/infra"
	"jelajah/internal/repositories"
)

const memoryLogSize = 200

var Module = fx.Provide(
	provideDB,
	provideGenerationLogRepo,
)

// provideDB returns a nil *gorm.DB when POSTGRES_URL is empty.
func provideDB(lc fx.Lifecycle, cfg *config.Config, logger *zap.Logger) (*gorm.DB, error) {
	db, err := infra.InitPostgresql(context.Background(), cfg.PostgresURL, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(func() {
		infra.ClosePostgresql(db, logger)
	}))
	return db, nil
}

func provideGenerationLogRepo(db *gorm.DB) repositories.GenerationLogRepositoryInterface {
	if db == nil {
		return repositories.NewMemoryGenerationLogRepository(memoryLogSize)
	}
	return repositories.NewGenerationLogRepository(db)
}
