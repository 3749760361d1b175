package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coindash/internal/service"
)

type CoinHandler struct {
	Query   *service.QueryService
	Refresh *service.RefreshService
	Logger  *zap.Logger
}

func (h *CoinHandler) Register(r *gin.Engine) {
	group := r.Group("/api/coins")
	group.GET("/:id", h.getCoin)
	group.POST("/:id", h.refreshCoin)
}

// @Summary Get a cached coin with its staleness label
// @Tags coins
// @Param id path string true "coin id"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/coins/{id} [get]
func (h *CoinHandler) getCoin(c *gin.Context) {
	result, err := h.Query.GetCoin(c.Request.Context(), c.Param("id"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, result, nil)
}

// @Summary Refresh one coin from upstream
// @Tags coins
// @Param id path string true "coin id"
// @Success 200 {object} apiResponse
// @Failure 429 {object} apiResponse
// @Failure 500 {object} apiResponse
// @Router /api/coins/{id} [post]
func (h *CoinHandler) refreshCoin(c *gin.Context) {
	id := c.Param("id")
	result, err := h.Refresh.RefreshCoin(c.Request.Context(), id)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("coin refresh failed", zap.String("id", id), zap.Error(err))
		}
		serviceError(c, err)
		return
	}
	Ok(c, result, nil)
}
