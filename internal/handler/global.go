package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coindash/internal/service"
)

type GlobalHandler struct {
	Query   *service.QueryService
	Refresh *service.RefreshService
	Logger  *zap.Logger
}

func (h *GlobalHandler) Register(r *gin.Engine) {
	r.GET("/api/global", h.getGlobal)
	r.POST("/api/global", h.refreshGlobal)
	r.GET("/api/refresh-state", h.listRefreshState)
}

// @Summary Get the cached market-wide snapshot
// @Tags global
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/global [get]
func (h *GlobalHandler) getGlobal(c *gin.Context) {
	result, err := h.Query.GetGlobal(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, result, nil)
}

// @Summary Refresh the market-wide snapshot from upstream
// @Tags global
// @Success 200 {object} apiResponse
// @Failure 429 {object} apiResponse
// @Failure 500 {object} apiResponse
// @Router /api/global [post]
func (h *GlobalHandler) refreshGlobal(c *gin.Context) {
	result, err := h.Refresh.RefreshGlobal(c.Request.Context())
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("global refresh failed", zap.Error(err))
		}
		serviceError(c, err)
		return
	}
	Ok(c, result, nil)
}

// @Summary List per-scope refresh bookkeeping
// @Tags global
// @Success 200 {object} apiResponse
// @Router /api/refresh-state [get]
func (h *GlobalHandler) listRefreshState(c *gin.Context) {
	states, err := h.Query.ListRefreshStates(c.Request.Context())
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, states, nil)
}
