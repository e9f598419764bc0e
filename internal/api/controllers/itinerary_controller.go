package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"jelajah/internal/models/request_models"
	"jelajah/internal/services"
	"jelajah/pkg/middleware"
	"jelajah/pkg/utils"
)

type ItineraryController struct {
	itineraryService services.ItineraryServiceInterface
	logger           *zap.Logger
}

func NewItineraryController(itineraryService services.ItineraryServiceInterface, logger *zap.Logger) *ItineraryController {
	return &ItineraryController{
		itineraryService: itineraryService,
		logger:           logger,
	}
}

// POST /api/itineraries/generate
// Stateless: the result is returned but not kept in the planner session.
func (i *ItineraryController) GenerateHandler(c *gin.Context) {
	var req request_models.TravelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "destination, duration (1-30) and interests are required")
		return
	}

	generated, err := i.itineraryService.Generate(c.Request.Context(), middleware.SessionID(c), req)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, generated, "Itinerary generated successfully")
}

// GET /api/generations?limit=20
func (i *ItineraryController) ListGenerationsHandler(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if err != nil || limit < 1 || limit > 100 {
		utils.RespondError(c, http.StatusBadRequest, "Invalid limit (must be 1-100)")
		return
	}

	entries, err := i.itineraryService.ListRecentGenerations(c.Request.Context(), limit)
	if err != nil {
		utils.HandleServiceError(c, i.logger, err)
		return
	}

	utils.RespondSuccess(c, entries, "Generations fetched successfully")
}
