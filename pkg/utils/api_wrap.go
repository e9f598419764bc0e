package utils

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type APIResponse struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	TraceID string      `json:"trace_id,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

func traceIDOf(c *gin.Context) string {
	return c.GetString("trace_id")
}

func RespondSuccess(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, APIResponse{
		Status:  "success",
		Code:    http.StatusOK,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

func RespondError(c *gin.Context, code int, message string) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
	})
}

func respondErrorData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, APIResponse{
		Status:  "error",
		Code:    code,
		Message: message,
		TraceID: traceIDOf(c),
		Data:    data,
	})
}

// HandleServiceError maps service errors onto the response envelope. data, if
// given, is sent along (the planner view, so clients can render the error slot).
func HandleServiceError(c *gin.Context, logger *zap.Logger, err error, data ...interface{}) {
	var payload interface{}
	if len(data) > 0 {
		payload = data[0]
	}
	log := logger.With(zap.String("trace_id", traceIDOf(c)), zap.Error(err))

	var genErr *GenerationError
	var decErr *DecodeError
	switch {
	case errors.Is(err, ErrInvalidInput):
		respondErrorData(c, http.StatusBadRequest, err.Error(), payload)
	case errors.Is(err, ErrGenerationPending):
		respondErrorData(c, http.StatusConflict, "An itinerary is already being generated", payload)
	case errors.As(err, &genErr):
		log.Warn("generation failed")
		respondErrorData(c, http.StatusBadGateway, genErr.Error(), payload)
	case errors.As(err, &decErr):
		log.Warn("decode failed")
		respondErrorData(c, http.StatusBadGateway, DecodeFailedMessage, payload)
	case errors.Is(err, ErrDatabaseError):
		log.Error("database error")
		respondErrorData(c, http.StatusInternalServerError, "Internal server error", payload)
	case errors.Is(err, ErrSessionStoreError):
		log.Error("session store error")
		respondErrorData(c, http.StatusServiceUnavailable, "Planner session unavailable", payload)
	default:
		log.Error("unknown error")
		respondErrorData(c, http.StatusInternalServerError, "Internal server error", payload)
	}
}
