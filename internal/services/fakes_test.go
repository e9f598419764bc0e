package services

import (
	"context"
	"sync"

	"jelajah/internal/models/db_models"
	"jelajah/pkg/utils"
)

// fakeCompletion answers every prompt with the same reply, optionally waiting
// on release first.
type fakeCompletion struct {
	mu      sync.Mutex
	reply   utils.Completion
	err     error
	prompts []string
	release chan struct{}
	started chan struct{}
}

func (f *fakeCompletion) Complete(ctx context.Context, prompt string) (utils.Completion, error) {
	f.mu.Lock()
	f.prompts = append(f.prompts, prompt)
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return utils.Completion{}, utils.NewGenerationError("the itinerary service could not be reached", ctx.Err())
		}
	}
	return f.reply, f.err
}

func (f *fakeCompletion) Provider() string { return "fake" }

func (f *fakeCompletion) promptCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.prompts)
}

type failingLogRepo struct{}

func (failingLogRepo) CreateGenerationLog(ctx context.Context, entry *db_models.GenerationLog) error {
	return context.DeadlineExceeded
}

func (failingLogRepo) ListRecentGenerationLogs(ctx context.Context, limit int) ([]db_models.GenerationLog, error) {
	return nil, context.DeadlineExceeded
}

const kyotoReply = "Here you go!\n```json\n" + `[
  {"day": 1, "theme": "Temples", "activities": [
    {"name": "Fushimi Inari", "hours": "24h", "cost": "Free", "description": "Thousands of torii gates."},
    {"name": "Nishiki Market", "hours": "10:00-18:00", "cost": "¥2000"}
  ]},
  {"day": 2, "theme": "Food", "activities": [
    {"name": "Pontocho dinner", "hours": "18:00-22:00", "cost": "¥6000"}
  ]}
]` + "\n```\nEnjoy your trip."
