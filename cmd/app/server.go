package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"jelajah/cmd/fx/completion_fx"
	"jelajah/cmd/fx/config_fx"
	"jelajah/cmd/fx/controllers_fx"
	"jelajah/cmd/fx/db_fx"
	"jelajah/cmd/fx/planner_fx"
	"jelajah/cmd/fx/session_fx"
	"jelajah/internal/api/controllers"
	"jelajah/internal/config"
	"jelajah/pkg/middleware"
	"jelajah/pkg/utils"
)

func runServer() error {
	app := fx.New(
		config_fx.Module,
		db_fx.Module,
		session_fx.Module,
		completion_fx.Module,
		planner_fx.Module,
		controllers_fx.Module,

		fx.Provide(ProvideRouter),
		fx.Invoke(StartServer),
		fx.WithLogger(func(logger *zap.Logger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: logger.Named("fx")}
		}),
	)
	if err := app.Err(); err != nil {
		return err
	}

	app.Run()
	return nil
}

func StartServer(lc fx.Lifecycle, cfg *config.Config, engine *gin.Engine, logger *zap.Logger) {
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			ln, err := net.Listen("tcp", srv.Addr)
			if err != nil {
				return err
			}
			logger.Info("starting HTTP server", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					logger.Error("HTTP server stopped", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

type RouterParams struct {
	fx.In

	Config              *config.Config
	Logger              *zap.Logger
	Tokens              *utils.SessionTokens
	RateLimiter         *middleware.RateLimiter
	PlannerController   *controllers.PlannerController
	ItineraryController *controllers.ItineraryController
	HealthController    *controllers.HealthController
}

func ProvideRouter(p RouterParams) *gin.Engine {
	gin.SetMode(p.Config.GinMode)

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())
	r.Use(middleware.RequestLogger(p.Logger))
	r.Use(middleware.Recovery(p.Logger))
	r.Use(middleware.CORSMiddleware())

	RegisterRoutes(r, p)

	return r
}

func RegisterRoutes(r *gin.Engine, p RouterParams) {
	r.GET("/healthz", p.HealthController.HealthHandler)
	r.GET("/metrics", p.HealthController.MetricsHandler())

	session := middleware.SessionMiddleware(p.Tokens, p.Logger)
	limit := p.RateLimiter.Limit()

	pages := r.Group("/", session)
	pages.GET("", p.PlannerController.PageHandler)
	pages.POST("/plan", p.RateLimiter.LimitWith(p.PlannerController.RateLimitedFormHandler), p.PlannerController.SubmitFormHandler)
	pages.POST("/cost", p.PlannerController.UpdateCostFormHandler)
	pages.POST("/reset", p.PlannerController.ResetFormHandler)
	pages.POST("/dismiss", p.PlannerController.DismissFormHandler)

	api := r.Group("/api", session)

	itineraries := api.Group("/itineraries")
	itineraries.POST("/generate", limit, p.ItineraryController.GenerateHandler)

	api.GET("/generations", p.ItineraryController.ListGenerationsHandler)

	planner := api.Group("/planner")
	planner.GET("", p.PlannerController.GetPlannerHandler)
	planner.POST("/submit", limit, p.PlannerController.SubmitHandler)
	planner.PUT("/days/:dayIndex/activities/:activityIndex/cost", p.PlannerController.UpdateCostHandler)
	planner.POST("/reset", p.PlannerController.ResetHandler)
	planner.DELETE("/error", p.PlannerController.DismissErrorHandler)
}
