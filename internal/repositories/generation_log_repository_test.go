package repositories

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jelajah/internal/models/db_models"
)

func TestMemoryGenerationLogRepository(t *testing.T) {
	repo := NewMemoryGenerationLogRepository(3)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		entry := &db_models.GenerationLog{Destination: fmt.Sprintf("city-%d", i), Outcome: db_models.OutcomeSuccess}
		require.NoError(t, repo.CreateGenerationLog(ctx, entry))
		assert.NotEqual(t, uuid.Nil, entry.ID)
		assert.NotZero(t, entry.CreatedAt)
	}

	got, err := repo.ListRecentGenerationLogs(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 3, "only the newest entries are kept")
	assert.Equal(t, "city-4", got[0].Destination)
	assert.Equal(t, "city-2", got[2].Destination)

	got, err = repo.ListRecentGenerationLogs(ctx, 1)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "city-4", got[0].Destination)

	got, err = repo.ListRecentGenerationLogs(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}
