package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jelajah/internal/api/views"
	"jelajah/internal/models/request_models"
	"jelajah/internal/models/response_models"
	"jelajah/internal/services"
	"jelajah/pkg/middleware"
	"jelajah/pkg/utils"
)

const defaultTripDays = 3

type PlannerController struct {
	plannerService services.PlannerServiceInterface
	renderer       *views.Renderer
	logger         *zap.Logger
}

func NewPlannerController(plannerService services.PlannerServiceInterface, renderer *views.Renderer, logger *zap.Logger) *PlannerController {
	return &PlannerController{
		plannerService: plannerService,
		renderer:       renderer,
		logger:         logger,
	}
}

// GET /
func (p *PlannerController) PageHandler(c *gin.Context) {
	view, err := p.plannerService.View(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		p.renderError(c, err)
		return
	}
	p.render(c, http.StatusOK, view, "")
}

// POST /plan
func (p *PlannerController) SubmitFormHandler(c *gin.Context) {
	sessionID := middleware.SessionID(c)

	var req request_models.TravelRequest
	bindErr := c.ShouldBind(&req)
	if bindErr == nil {
		bindErr = p.plannerService.SubmitAsync(sessionID, req)
	}

	switch {
	case bindErr == nil, errors.Is(bindErr, utils.ErrGenerationPending):
		c.Redirect(http.StatusSeeOther, "/")
	default:
		view, err := p.plannerService.View(c.Request.Context(), sessionID)
		if err != nil {
			p.renderError(c, err)
			return
		}
		view.Request = &response_models.TravelEcho{
			Destination: req.Destination,
			Duration:    req.Duration,
			Interests:   req.Interests,
		}
		p.render(c, http.StatusBadRequest, view, formErrorMessage(bindErr))
	}
}

// RateLimitedFormHandler answers a throttled POST /plan with the page
// itself, keeping what the user typed.
func (p *PlannerController) RateLimitedFormHandler(c *gin.Context) {
	view, err := p.plannerService.View(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		p.renderError(c, err)
		return
	}
	var req request_models.TravelRequest
	_ = c.ShouldBind(&req)
	view.Request = &response_models.TravelEcho{
		Destination: req.Destination,
		Duration:    req.Duration,
		Interests:   req.Interests,
	}
	p.render(c, http.StatusTooManyRequests, view, middleware.TooManyRequestsMessage)
}

// POST /cost
func (p *PlannerController) UpdateCostFormHandler(c *gin.Context) {
	var form request_models.UpdateCostForm
	if err := c.ShouldBind(&form); err != nil {
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	_, err := p.plannerService.UpdateCost(c.Request.Context(), middleware.SessionID(c),
		form.DayIndex, form.ActivityIndex, utils.CoerceCost(form.Cost))
	if err != nil {
		p.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// POST /reset
func (p *PlannerController) ResetFormHandler(c *gin.Context) {
	if _, err := p.plannerService.Reset(c.Request.Context(), middleware.SessionID(c)); err != nil {
		p.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// POST /dismiss
func (p *PlannerController) DismissFormHandler(c *gin.Context) {
	if _, err := p.plannerService.DismissError(c.Request.Context(), middleware.SessionID(c)); err != nil {
		p.renderError(c, err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/")
}

// GET /api/planner
func (p *PlannerController) GetPlannerHandler(c *gin.Context) {
	view, err := p.plannerService.View(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}
	utils.RespondSuccess(c, view, "Planner fetched successfully")
}

// POST /api/planner/submit
func (p *PlannerController) SubmitHandler(c *gin.Context) {
	var req request_models.TravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "destination, duration (1-30) and interests are required")
		return
	}

	view, err := p.plannerService.Submit(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		utils.HandleServiceError(c, p.logger, err, view)
		return
	}
	utils.RespondSuccess(c, view, "Itinerary generated successfully")
}

// PUT /api/planner/days/:dayIndex/activities/:activityIndex/cost
func (p *PlannerController) UpdateCostHandler(c *gin.Context) {
	dayIndex, err := strconv.Atoi(c.Param("dayIndex"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid day index")
		return
	}
	activityIndex, err := strconv.Atoi(c.Param("activityIndex"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid activity index")
		return
	}

	var req request_models.UpdateCostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid request format")
		return
	}

	view, err := p.plannerService.UpdateCost(c.Request.Context(), middleware.SessionID(c),
		dayIndex, activityIndex, utils.CoerceCost(req.Cost))
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}
	utils.RespondSuccess(c, view, "Cost updated")
}

// POST /api/planner/reset
func (p *PlannerController) ResetHandler(c *gin.Context) {
	view, err := p.plannerService.Reset(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}
	utils.RespondSuccess(c, view, "Planner reset")
}

// DELETE /api/planner/error
func (p *PlannerController) DismissErrorHandler(c *gin.Context) {
	view, err := p.plannerService.DismissError(c.Request.Context(), middleware.SessionID(c))
	if err != nil {
		utils.HandleServiceError(c, p.logger, err)
		return
	}
	utils.RespondSuccess(c, view, "Error dismissed")
}

func (p *PlannerController) render(c *gin.Context, status int, view response_models.PlannerView, formError string) {
	c.Status(status)
	c.Header("Content-Type", "text/html; charset=utf-8")
	err := p.renderer.RenderPlanner(c.Writer, views.PlannerPage{
		View:       view,
		FormError:  formError,
		MaxDays:    services.MaxTripDays,
		DefaultDur: defaultTripDays,
	})
	if err != nil {
		p.logger.Error("render planner page", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
	}
}

func (p *PlannerController) renderError(c *gin.Context, err error) {
	p.logger.Error("planner page", zap.String("trace_id", c.GetString("trace_id")), zap.Error(err))
	c.String(http.StatusServiceUnavailable, "The planner is unavailable right now. Please try again shortly.")
}

func formErrorMessage(err error) string {
	if errors.Is(err, utils.ErrInvalidInput) {
		return err.Error()
	}
	return "Please fill in a destination, a trip length between 1 and 30 days, and your interests."
}
