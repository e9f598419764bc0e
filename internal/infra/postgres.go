package infra

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"jelajah/internal/models/db_models"
)

// InitPostgresql opens the generation log database and migrates its table.
// An empty dsn means the log is disabled and nil is returned.
func InitPostgresql(ctx context.Context, dsn string, logger *zap.Logger) (*gorm.DB, error) {
	if dsn == "" {
		logger.Info("POSTGRES_URL not set, generation log kept in memory")
		return nil, nil
	}

	connectionPool, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger: gormlogger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	sqlDB, err := connectionPool.DB()
	if err != nil {
		return nil, fmt.Errorf("get database instance: %w", err)
	}
	sqlDB.SetMaxOpenConns(10)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := connectionPool.WithContext(ctx).AutoMigrate(&db_models.GenerationLog{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("migrate generation log: %w", err)
	}

	logger.Info("connected to PostgreSQL")
	return connectionPool, nil
}

func ClosePostgresql(db *gorm.DB, logger *zap.Logger) {
	if db == nil {
		return
	}
	sqlDB, err := db.DB()
	if err != nil {
		logger.Warn("get database instance", zap.Error(err))
		return
	}

	if err := sqlDB.Close(); err != nil {
		logger.Warn("close database connection", zap.Error(err))
	} else {
		logger.Info("PostgreSQL database connection closed")
	}
}
