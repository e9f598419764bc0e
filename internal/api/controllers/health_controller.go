package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"jelajah/pkg/metrics"
)

type HealthController struct {
	metrics *metrics.Metrics
}

func NewHealthController(m *metrics.Metrics) *HealthController {
	return &HealthController{metrics: m}
}

func (h *HealthController) HealthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *HealthController) MetricsHandler() gin.HandlerFunc {
	return gin.WrapH(h.metrics.Handler())
}
