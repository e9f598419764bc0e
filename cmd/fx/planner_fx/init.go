package planner_fx

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"jelajah/internal/config"
	"jelajah/internal/repositories"
	"jelajah/internal/services"
	"jelajah/pkg/metrics"
	mem "jelajah/pkg/memcache"
	"jelajah/pkg/utils"
)

var Module = fx.Provide(
	provideBudgetService,
	provideItineraryService,
	providePlannerService,
)

func provideBudgetService(cfg *config.Config) services.BudgetServiceInterface {
	return services.NewBudgetService(utils.NewAmountFormatter(cfg.DisplayLocale))
}

func provideItineraryService(
	cfg *config.Config,
	completion utils.CompletionClientInterface,
	budgetService services.BudgetServiceInterface,
	generationLogs repositories.GenerationLogRepositoryInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
) services.ItineraryServiceInterface {
	return services.NewItineraryService(completion, budgetService, generationLogs, m, logger, cfg.PromptLanguage)
}

// providePlannerService drains background generations when the app stops.
func providePlannerService(
	lc fx.Lifecycle,
	cfg *config.Config,
	sessions mem.SessionStore[services.PlannerState],
	itineraryService services.ItineraryServiceInterface,
	budgetService services.BudgetServiceInterface,
	m *metrics.Metrics,
	logger *zap.Logger,
) services.PlannerServiceInterface {
	planner := services.NewPlannerService(sessions, itineraryService, budgetService, m, logger, services.PendingTimeout(cfg.GenerationTimeout))
	lc.Append(fx.Hook{OnStop: planner.Close})
	return planner
}
