package services

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"jelajah/internal/models/request_models"
	"jelajah/internal/models/response_models"
	"jelajah/pkg/metrics"
	mem "jelajah/pkg/memcache"
	"jelajah/pkg/utils"
)

// PlannerState is what one browser session remembers between requests.
type PlannerState struct {
	Store      ItineraryStore              `json:"store"`
	Loading    bool                        `json:"loading"`
	Error      string                      `json:"error,omitempty"`
	Sources    []string                    `json:"sources,omitempty"`
	Request    *response_models.TravelEcho `json:"request,omitempty"`
	Generation uint64                      `json:"generation"`
	UpdatedAt  int64                       `json:"updated_at"`
}

// StalePendingMessage fills the error slot of a session whose generation was
// lost, typically because the instance running it went away.
const StalePendingMessage = "Planning took too long and was abandoned. Please try again."

// PendingTimeout is how long a session may stay loading before it is treated
// as abandoned. With no generation timeout a fixed ceiling applies.
func PendingTimeout(generationTimeout time.Duration) time.Duration {
	if generationTimeout <= 0 {
		return 10 * time.Minute
	}
	return generationTimeout + time.Minute
}

type PlannerServiceInterface interface {
	View(ctx context.Context, sessionID string) (response_models.PlannerView, error)
	// Submit generates synchronously and leaves the result (or the error
	// message) in the session. The generation error is returned as well.
	Submit(ctx context.Context, sessionID string, req request_models.TravelRequest) (response_models.PlannerView, error)
	// SubmitAsync marks the session as loading and generates in the
	// background. Only validation and pending errors are returned.
	SubmitAsync(sessionID string, req request_models.TravelRequest) error
	UpdateCost(ctx context.Context, sessionID string, dayIndex, activityIndex int, cost float64) (response_models.PlannerView, error)
	Reset(ctx context.Context, sessionID string) (response_models.PlannerView, error)
	DismissError(ctx context.Context, sessionID string) (response_models.PlannerView, error)
	// Close waits for background generations, cancelling them if ctx ends first.
	Close(ctx context.Context) error
}

type PlannerService struct {
	sessions         mem.SessionStore[PlannerState]
	itineraryService ItineraryServiceInterface
	budgetService    BudgetServiceInterface
	metrics          *metrics.Metrics
	logger           *zap.Logger
	pendingTimeout   time.Duration
	now              func() time.Time

	baseCtx context.Context
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

func NewPlannerService(
	sessions mem.SessionStore[PlannerState],
	itineraryService ItineraryServiceInterface,
	budgetService BudgetServiceInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
	pendingTimeout time.Duration,
) *PlannerService {
	ctx, cancel := context.WithCancel(context.Background())
	return &PlannerService{
		sessions:         sessions,
		itineraryService: itineraryService,
		budgetService:    budgetService,
		metrics:          m,
		logger:           logger.Named("planner"),
		pendingTimeout:   pendingTimeout,
		now:              time.Now,
		baseCtx:          ctx,
		cancel:           cancel,
	}
}

func (p *PlannerService) View(ctx context.Context, sessionID string) (response_models.PlannerView, error) {
	state, _, err := p.sessions.Get(ctx, sessionID)
	if err != nil {
		p.logger.Error("load session", zap.String("session_id", sessionID), zap.Error(err))
		return response_models.PlannerView{}, fmt.Errorf("%w: %v", utils.ErrSessionStoreError, err)
	}
	return p.toView(sessionID, state), nil
}

func (p *PlannerService) Submit(ctx context.Context, sessionID string, req request_models.TravelRequest) (response_models.PlannerView, error) {
	req, generation, err := p.begin(ctx, sessionID, req)
	if err != nil {
		return response_models.PlannerView{}, err
	}

	result, genErr := p.itineraryService.Generate(ctx, sessionID, req)
	view, err := p.finish(context.WithoutCancel(ctx), sessionID, generation, result, genErr)
	if err != nil {
		return response_models.PlannerView{}, err
	}
	return view, genErr
}

func (p *PlannerService) SubmitAsync(sessionID string, req request_models.TravelRequest) error {
	req, generation, err := p.begin(p.baseCtx, sessionID, req)
	if err != nil {
		return err
	}

	p.wg.Add(1)
	go func() {
		defer p.wg.Done()
		result, genErr := p.itineraryService.Generate(p.baseCtx, sessionID, req)
		if _, err := p.finish(context.Background(), sessionID, generation, result, genErr); err != nil {
			p.logger.Error("store generation result", zap.String("session_id", sessionID), zap.Error(err))
		}
	}()
	return nil
}

// begin validates the request and flips the session into loading. The
// previous itinerary and error are dropped so nothing stale shows while
// waiting.
func (p *PlannerService) begin(ctx context.Context, sessionID string, req request_models.TravelRequest) (request_models.TravelRequest, uint64, error) {
	req, err := ValidateTravelRequest(req)
	if err != nil {
		return req, 0, err
	}

	var generation uint64
	err = p.sessions.Update(ctx, sessionID, func(state *PlannerState) error {
		if state.Loading {
			if !p.abandoned(*state) {
				return utils.ErrGenerationPending
			}
			p.logger.Warn("replacing abandoned generation", zap.String("session_id", sessionID), zap.Uint64("generation", state.Generation))
		}
		state.Loading = true
		state.Error = ""
		state.Sources = nil
		state.Store.Clear()
		state.Request = &response_models.TravelEcho{
			Destination: req.Destination,
			Duration:    req.Duration,
			Interests:   req.Interests,
		}
		state.Generation++
		state.UpdatedAt = p.now().Unix()
		generation = state.Generation
		return nil
	})
	if err != nil {
		if errors.Is(err, utils.ErrGenerationPending) {
			return req, 0, err
		}
		return req, 0, fmt.Errorf("%w: %v", utils.ErrSessionStoreError, err)
	}
	return req, generation, nil
}

// finish stores the outcome unless the session moved on (reset or a newer
// submission) while the generation was running.
func (p *PlannerService) finish(ctx context.Context, sessionID string, generation uint64, result response_models.GeneratedItinerary, genErr error) (response_models.PlannerView, error) {
	var view response_models.PlannerView
	err := p.sessions.Update(ctx, sessionID, func(state *PlannerState) error {
		if state.Generation != generation {
			p.logger.Info("discarding stale generation", zap.String("session_id", sessionID))
			view = p.toView(sessionID, *state)
			return nil
		}
		state.Loading = false
		state.UpdatedAt = p.now().Unix()
		if genErr != nil {
			state.Error = utils.UserMessage(genErr)
			state.Sources = nil
			state.Store.Clear()
		} else {
			state.Error = ""
			state.Sources = result.Sources
			state.Store.Replace(result.Itinerary)
		}
		view = p.toView(sessionID, *state)
		return nil
	})
	if err != nil {
		return response_models.PlannerView{}, fmt.Errorf("%w: %v", utils.ErrSessionStoreError, err)
	}
	return view, nil
}

func (p *PlannerService) UpdateCost(ctx context.Context, sessionID string, dayIndex, activityIndex int, cost float64) (response_models.PlannerView, error) {
	var view response_models.PlannerView
	err := p.sessions.Update(ctx, sessionID, func(state *PlannerState) error {
		applied := state.Store.UpdateCost(dayIndex, activityIndex, cost)
		p.metrics.ObserveCostUpdate(applied)
		if applied {
			state.UpdatedAt = p.now().Unix()
		}
		view = p.toView(sessionID, *state)
		return nil
	})
	if err != nil {
		return response_models.PlannerView{}, fmt.Errorf("%w: %v", utils.ErrSessionStoreError, err)
	}
	return view, nil
}

// Reset forgets the itinerary and any error. A generation still running for
// this session will find its result discarded.
func (p *PlannerService) Reset(ctx context.Context, sessionID string) (response_models.PlannerView, error) {
	var view response_models.PlannerView
	err := p.sessions.Update(ctx, sessionID, func(state *PlannerState) error {
		state.Store.Clear()
		state.Error = ""
		state.Sources = nil
		state.Request = nil
		if state.Loading {
			state.Loading = false
			state.Generation++
		}
		state.UpdatedAt = p.now().Unix()
		view = p.toView(sessionID, *state)
		return nil
	})
	if err != nil {
		return response_models.PlannerView{}, fmt.Errorf("%w: %v", utils.ErrSessionStoreError, err)
	}
	return view, nil
}

func (p *PlannerService) DismissError(ctx context.Context, sessionID string) (response_models.PlannerView, error) {
	var view response_models.PlannerView
	err := p.sessions.Update(ctx, sessionID, func(state *PlannerState) error {
		state.Error = ""
		if p.abandoned(*state) {
			state.Loading = false
			state.Generation++
			state.UpdatedAt = p.now().Unix()
		}
		view = p.toView(sessionID, *state)
		return nil
	})
	if err != nil {
		return response_models.PlannerView{}, fmt.Errorf("%w: %v", utils.ErrSessionStoreError, err)
	}
	return view, nil
}

func (p *PlannerService) Close(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.cancel()
		return nil
	case <-ctx.Done():
		p.cancel()
		<-done
		return ctx.Err()
	}
}

// abandoned reports a loading session nobody has touched for longer than a
// generation can take.
func (p *PlannerService) abandoned(state PlannerState) bool {
	if !state.Loading || p.pendingTimeout <= 0 {
		return false
	}
	return p.now().Sub(time.Unix(state.UpdatedAt, 0)) > p.pendingTimeout
}

func (p *PlannerService) toView(sessionID string, state PlannerState) response_models.PlannerView {
	view := response_models.PlannerView{
		SessionID: sessionID,
		Loading:   state.Loading,
		Error:     state.Error,
		Sources:   state.Sources,
		Request:   state.Request,
	}
	if p.abandoned(state) {
		view.Loading = false
		view.Error = StalePendingMessage
	}
	if it, ok := state.Store.Snapshot(); ok {
		summary := p.budgetService.Summarize(it)
		view.Itinerary = it
		view.Budget = &summary
	}
	return view
}
