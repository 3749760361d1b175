package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"coindash/internal/repository"
	"coindash/internal/service"
)

type apiResponse struct {
	Code    int            `json:"code"`
	Message string         `json:"message"`
	Data    any            `json:"data,omitempty"`
	Meta    map[string]any `json:"meta,omitempty"`
}

func Ok(c *gin.Context, data any, meta map[string]any) {
	c.JSON(http.StatusOK, apiResponse{
		Code:    0,
		Message: "ok",
		Data:    data,
		Meta:    meta,
	})
}

func Error(c *gin.Context, status int, message string, meta map[string]any) {
	c.JSON(status, apiResponse{
		Code:    status,
		Message: message,
		Meta:    meta,
	})
}

// serviceError maps the service error kinds onto HTTP statuses. NotFound,
// rate limits, caller mistakes, and upstream failures must stay
// distinguishable for the UI.
func serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		Error(c, http.StatusNotFound, err.Error(), nil)
	case errors.Is(err, service.ErrRateLimited):
		Error(c, http.StatusTooManyRequests, service.RateLimitAdvisory, nil)
	case errors.Is(err, service.ErrUnknownRanking):
		Error(c, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, repository.ErrMissingCoinID):
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	default:
		Error(c, http.StatusInternalServerError, err.Error(), nil)
	}
}
