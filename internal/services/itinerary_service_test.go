package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"jelajah/internal/models/db_models"
	"jelajah/internal/models/request_models"
	"jelajah/internal/repositories"
	"jelajah/pkg/metrics"
	"jelajah/pkg/utils"
)

func newTestItineraryService(t *testing.T, completion utils.CompletionClientInterface, logs repositories.GenerationLogRepositoryInterface) ItineraryServiceInterface {
	t.Helper()
	if logs == nil {
		logs = repositories.NewMemoryGenerationLogRepository(10)
	}
	return NewItineraryService(
		completion,
		NewBudgetService(utils.NewAmountFormatter("id")),
		logs,
		metrics.New(),
		zaptest.NewLogger(t),
		PromptLanguageEnglish,
	)
}

var kyotoRequest = request_models.TravelRequest{Destination: "Kyoto", Duration: 2, Interests: "food"}

func TestGenerate_Kyoto(t *testing.T) {
	completion := &fakeCompletion{reply: utils.Completion{Text: kyotoReply, Sources: []string{"https://kyoto.travel"}}}
	logs := repositories.NewMemoryGenerationLogRepository(10)
	svc := newTestItineraryService(t, completion, logs)

	got, err := svc.Generate(context.Background(), "s1", kyotoRequest)
	require.NoError(t, err)

	require.Len(t, got.Itinerary, 2)
	assert.Equal(t, 1, got.Itinerary[0].Day)
	assert.Equal(t, "Temples", got.Itinerary[0].Theme)
	assert.Len(t, got.Itinerary[0].Activities, 2)
	assert.Equal(t, "Thousands of torii gates.", got.Itinerary[0].Activities[0].Description)
	assert.Equal(t, 2, got.Itinerary[1].Day)
	assert.Equal(t, 0.0, got.Budget.TotalCost)
	assert.Equal(t, 2, got.Budget.Days)
	assert.Equal(t, []string{"https://kyoto.travel"}, got.Sources)

	require.Equal(t, 1, completion.promptCount())
	assert.Contains(t, completion.prompts[0], "Destination: Kyoto")

	entries, err := logs.ListRecentGenerationLogs(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, db_models.OutcomeSuccess, entries[0].Outcome)
	assert.Equal(t, 2, entries[0].DayCount)
	assert.Equal(t, "s1", entries[0].SessionID)
	assert.NotEmpty(t, entries[0].Itinerary)
}

func TestGenerate_ProseIsDecodeError(t *testing.T) {
	completion := &fakeCompletion{reply: utils.Completion{Text: "I'm sorry, I can't plan that trip right now."}}
	logs := repositories.NewMemoryGenerationLogRepository(10)
	svc := newTestItineraryService(t, completion, logs)

	got, err := svc.Generate(context.Background(), "s1", kyotoRequest)

	var decErr *utils.DecodeError
	require.ErrorAs(t, err, &decErr)
	assert.Nil(t, got.Itinerary)
	assert.Equal(t, utils.DecodeFailedMessage, utils.UserMessage(err))

	entries, _ := logs.ListRecentGenerationLogs(context.Background(), 10)
	require.Len(t, entries, 1)
	assert.Equal(t, db_models.OutcomeDecodeError, entries[0].Outcome)
	assert.Contains(t, entries[0].RawResponse, "I'm sorry")
}

func TestGenerate_CompletionFailure(t *testing.T) {
	t.Run("generation error passes through", func(t *testing.T) {
		genErr := utils.NewGenerationError("the itinerary service returned an empty response", nil)
		svc := newTestItineraryService(t, &fakeCompletion{err: genErr}, nil)

		_, err := svc.Generate(context.Background(), "s1", kyotoRequest)
		assert.Same(t, genErr, err)
	})

	t.Run("other errors are wrapped", func(t *testing.T) {
		svc := newTestItineraryService(t, &fakeCompletion{err: errors.New("socket closed")}, nil)

		_, err := svc.Generate(context.Background(), "s1", kyotoRequest)
		var genErr *utils.GenerationError
		require.ErrorAs(t, err, &genErr)
		assert.Equal(t, "the itinerary service failed: socket closed", utils.UserMessage(err))
	})
}

func TestGenerate_InvalidRequest(t *testing.T) {
	tests := []request_models.TravelRequest{
		{Destination: " ", Duration: 2, Interests: "food"},
		{Destination: "Kyoto", Duration: 0, Interests: "food"},
		{Destination: "Kyoto", Duration: 31, Interests: "food"},
		{Destination: "Kyoto", Duration: 2, Interests: ""},
	}

	for _, req := range tests {
		completion := &fakeCompletion{reply: utils.Completion{Text: kyotoReply}}
		svc := newTestItineraryService(t, completion, nil)

		_, err := svc.Generate(context.Background(), "s1", req)
		assert.ErrorIs(t, err, utils.ErrInvalidInput)
		assert.Zero(t, completion.promptCount(), "nothing should be sent for %+v", req)
	}
}

func TestGenerate_LogFailureIsNotFatal(t *testing.T) {
	svc := newTestItineraryService(t, &fakeCompletion{reply: utils.Completion{Text: kyotoReply}}, failingLogRepo{})

	got, err := svc.Generate(context.Background(), "s1", kyotoRequest)
	require.NoError(t, err)
	assert.Len(t, got.Itinerary, 2)
}

func TestListRecentGenerations(t *testing.T) {
	logs := repositories.NewMemoryGenerationLogRepository(10)
	svc := newTestItineraryService(t, &fakeCompletion{reply: utils.Completion{Text: kyotoReply}}, logs)

	for _, dest := range []string{"Kyoto", "Bali", "Lisbon"} {
		req := kyotoRequest
		req.Destination = dest
		_, err := svc.Generate(context.Background(), "s1", req)
		require.NoError(t, err)
	}

	got, err := svc.ListRecentGenerations(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "Lisbon", got[0].Destination)
	assert.Equal(t, "Bali", got[1].Destination)
	assert.Equal(t, "fake", got[0].Provider)
	assert.NotEmpty(t, got[0].ID)

	all, err := svc.ListRecentGenerations(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestListRecentGenerations_RepositoryError(t *testing.T) {
	svc := newTestItineraryService(t, &fakeCompletion{}, failingLogRepo{})

	_, err := svc.ListRecentGenerations(context.Background(), 5)
	assert.ErrorIs(t, err, utils.ErrDatabaseError)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab…", truncate("abcdef", 2))
	// "é" is two bytes; never cut it in half.
	assert.Equal(t, "a…", truncate("aé", 2))
}
