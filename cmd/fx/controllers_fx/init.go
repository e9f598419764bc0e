package controllers_fx

import (
	"go.uber.org/fx"

	"jelajah/internal/api/controllers"
	"jelajah/internal/api/views"
	"jelajah/internal/config"
	"jelajah/pkg/middleware"
)

var Module = fx.Options(
	fx.Provide(views.NewRenderer),
	fx.Provide(provideRateLimiter),
	fx.Provide(controllers.NewPlannerController),
	fx.Provide(controllers.NewItineraryController),
	fx.Provide(controllers.NewHealthController))

func provideRateLimiter(cfg *config.Config) *middleware.RateLimiter {
	return middleware.NewRateLimiter(cfg.RateLimitPerMinute, cfg.RateLimitBurst)
}
