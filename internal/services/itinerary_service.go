package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"go.uber.org/zap"

	"jelajah/internal/models/db_models"
	"jelajah/internal/models/request_models"
	"jelajah/internal/models/response_models"
	"jelajah/internal/repositories"
	"jelajah/pkg/metrics"
	"jelajah/pkg/utils"
)

const (
	MinTripDays = 1
	MaxTripDays = 30

	rawLogLimit = 500
)

type ItineraryServiceInterface interface {
	// Generate runs prompt → completion → extract → decode. Errors are
	// ErrInvalidInput, *utils.GenerationError or *utils.DecodeError.
	Generate(ctx context.Context, sessionID string, req request_models.TravelRequest) (response_models.GeneratedItinerary, error)
	ListRecentGenerations(ctx context.Context, limit int) ([]response_models.GenerationLogEntry, error)
}

type ItineraryService struct {
	completion     utils.CompletionClientInterface
	budgetService  BudgetServiceInterface
	generationLogs repositories.GenerationLogRepositoryInterface
	metrics        *metrics.Metrics
	logger         *zap.Logger
	promptLanguage string
}

func NewItineraryService(
	completion utils.CompletionClientInterface,
	budgetService BudgetServiceInterface,
	generationLogs repositories.GenerationLogRepositoryInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
	promptLanguage string,
) ItineraryServiceInterface {
	return &ItineraryService{
		completion:     completion,
		budgetService:  budgetService,
		generationLogs: generationLogs,
		metrics:        m,
		logger:         logger.Named("itinerary"),
		promptLanguage: promptLanguage,
	}
}

// ValidateTravelRequest trims the text fields and checks the form limits.
func ValidateTravelRequest(req request_models.TravelRequest) (request_models.TravelRequest, error) {
	req.Destination = strings.TrimSpace(req.Destination)
	req.Interests = strings.TrimSpace(req.Interests)

	switch {
	case req.Destination == "":
		return req, fmt.Errorf("%w: destination is required", utils.ErrInvalidInput)
	case req.Interests == "":
		return req, fmt.Errorf("%w: interests are required", utils.ErrInvalidInput)
	case req.Duration < MinTripDays || req.Duration > MaxTripDays:
		return req, fmt.Errorf("%w: duration must be between %d and %d days", utils.ErrInvalidInput, MinTripDays, MaxTripDays)
	}
	return req, nil
}

func (s *ItineraryService) Generate(ctx context.Context, sessionID string, req request_models.TravelRequest) (response_models.GeneratedItinerary, error) {
	req, err := ValidateTravelRequest(req)
	if err != nil {
		return response_models.GeneratedItinerary{}, err
	}

	log := s.logger.With(
		zap.String("session_id", sessionID),
		zap.String("destination", req.Destination),
		zap.Int("duration", req.Duration),
		zap.String("provider", s.completion.Provider()),
	)

	prompt := BuildItineraryPrompt(req, s.promptLanguage)
	startTime := time.Now()
	s.metrics.GenerationStarted()
	defer s.metrics.GenerationFinished()

	record := &db_models.GenerationLog{
		SessionID:   sessionID,
		Destination: req.Destination,
		Duration:    req.Duration,
		Interests:   req.Interests,
		Provider:    s.completion.Provider(),
	}

	completion, err := s.completion.Complete(ctx, prompt)
	if err != nil {
		elapsed := time.Since(startTime)
		log.Error("completion failed", zap.Error(err), zap.Duration("elapsed", elapsed))
		s.metrics.ObserveGeneration(record.Provider, metrics.OutcomeGenerationError, elapsed)

		var genErr *utils.GenerationError
		if !errors.As(err, &genErr) {
			err = utils.NewGenerationError("the itinerary service failed", err)
		}
		record.Outcome = db_models.OutcomeGenerationError
		record.Error = err.Error()
		s.saveLog(ctx, log, record, elapsed)
		return response_models.GeneratedItinerary{}, err
	}

	record.RawResponse = completion.Text
	record.Sources = completion.Sources

	itinerary, err := utils.DecodeItinerary(utils.ExtractJSONPayload(completion.Text))
	elapsed := time.Since(startTime)
	if err != nil {
		log.Warn("could not decode itinerary",
			zap.Error(err),
			zap.String("raw_response", truncate(completion.Text, rawLogLimit)),
			zap.Duration("elapsed", elapsed),
		)
		s.metrics.ObserveGeneration(record.Provider, metrics.OutcomeDecodeError, elapsed)
		record.Outcome = db_models.OutcomeDecodeError
		record.Error = err.Error()
		s.saveLog(ctx, log, record, elapsed)
		return response_models.GeneratedItinerary{}, err
	}

	if len(itinerary) != req.Duration {
		log.Info("model returned a different number of days", zap.Int("days", len(itinerary)))
	}
	log.Info("itinerary generated",
		zap.Int("days", len(itinerary)),
		zap.Int("sources", len(completion.Sources)),
		zap.Duration("elapsed", elapsed),
	)
	s.metrics.ObserveGeneration(record.Provider, metrics.OutcomeSuccess, elapsed)

	record.Outcome = db_models.OutcomeSuccess
	record.DayCount = len(itinerary)
	if encoded, err := json.Marshal(itinerary); err == nil {
		record.Itinerary = encoded
	}
	s.saveLog(ctx, log, record, elapsed)

	return response_models.GeneratedItinerary{
		Itinerary: itinerary,
		Budget:    s.budgetService.Summarize(itinerary),
		Sources:   completion.Sources,
	}, nil
}

// saveLog never fails the generation; a broken audit log only gets a warning.
func (s *ItineraryService) saveLog(ctx context.Context, log *zap.Logger, record *db_models.GenerationLog, elapsed time.Duration) {
	record.LatencyMs = elapsed.Milliseconds()
	if err := s.generationLogs.CreateGenerationLog(context.WithoutCancel(ctx), record); err != nil {
		log.Warn("could not store generation log", zap.Error(err))
	}
}

func (s *ItineraryService) ListRecentGenerations(ctx context.Context, limit int) ([]response_models.GenerationLogEntry, error) {
	if limit < 1 || limit > 100 {
		limit = 20
	}

	logs, err := s.generationLogs.ListRecentGenerationLogs(ctx, limit)
	if err != nil {
		s.logger.Error("list generation logs", zap.Error(err))
		return nil, utils.ErrDatabaseError
	}

	entries := make([]response_models.GenerationLogEntry, 0, len(logs))
	for _, l := range logs {
		entries = append(entries, response_models.GenerationLogEntry{
			ID:          l.ID.String(),
			Destination: l.Destination,
			Duration:    l.Duration,
			Interests:   l.Interests,
			Provider:    l.Provider,
			Outcome:     string(l.Outcome),
			Error:       l.Error,
			DayCount:    l.DayCount,
			LatencyMs:   l.LatencyMs,
			CreatedAt:   l.CreatedAt,
		})
	}
	return entries, nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8.RuneStart(s[n]) {
		n--
	}
	return s[:n] + "…"
}
