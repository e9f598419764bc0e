package repositories

import (
	"context"
	"sync"

	"gorm.io/gorm"

	"jelajah/internal/models/db_models"
)

type GenerationLogRepositoryInterface interface {
	CreateGenerationLog(ctx context.Context, entry *db_models.GenerationLog) error
	ListRecentGenerationLogs(ctx context.Context, limit int) ([]db_models.GenerationLog, error)
}

type GenerationLogRepository struct {
	db *gorm.DB
}

func NewGenerationLogRepository(db *gorm.DB) *GenerationLogRepository {
	return &GenerationLogRepository{db: db}
}

func (r *GenerationLogRepository) CreateGenerationLog(ctx context.Context, entry *db_models.GenerationLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *GenerationLogRepository) ListRecentGenerationLogs(ctx context.Context, limit int) ([]db_models.GenerationLog, error) {
	var logs []db_models.GenerationLog
	err := r.db.WithContext(ctx).
		Omit("raw_response").
		Order("created_at DESC").
		Limit(limit).
		Find(&logs).Error
	return logs, err
}

// MemoryGenerationLogRepository keeps the latest entries in process. It backs
// the log when no database is configured.
type MemoryGenerationLogRepository struct {
	mu      sync.RWMutex
	entries []db_models.GenerationLog
	max     int
}

func NewMemoryGenerationLogRepository(max int) *MemoryGenerationLogRepository {
	if max <= 0 {
		max = 100
	}
	return &MemoryGenerationLogRepository{max: max}
}

func (r *MemoryGenerationLogRepository) CreateGenerationLog(ctx context.Context, entry *db_models.GenerationLog) error {
	// Same defaults gorm would fill in.
	if err := entry.BeforeCreate(nil); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	if len(r.entries) > r.max {
		r.entries = r.entries[len(r.entries)-r.max:]
	}
	return nil
}

func (r *MemoryGenerationLogRepository) ListRecentGenerationLogs(ctx context.Context, limit int) ([]db_models.GenerationLog, error) {
	if limit <= 0 {
		return nil, nil
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]db_models.GenerationLog, 0, min(limit, len(r.entries)))
	for i := len(r.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, r.entries[i])
	}
	return out, nil
}
