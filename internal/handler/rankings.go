package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"coindash/internal/service"
)

type RankingHandler struct {
	Query   *service.QueryService
	Refresh *service.RefreshService
	Logger  *zap.Logger
}

func (h *RankingHandler) Register(r *gin.Engine) {
	group := r.Group("/api/rankings")
	group.GET("/:name", h.getRanking)
	group.POST("/:name", h.refreshRanking)
}

// @Summary Get a cached ranking (top100|trending|gainers|losers)
// @Tags rankings
// @Param name path string true "ranking name"
// @Success 200 {object} apiResponse
// @Failure 404 {object} apiResponse
// @Router /api/rankings/{name} [get]
func (h *RankingHandler) getRanking(c *gin.Context) {
	result, err := h.Query.GetRanking(c.Request.Context(), c.Param("name"))
	if err != nil {
		serviceError(c, err)
		return
	}
	Ok(c, result, nil)
}

// @Summary Refresh a ranking from upstream
// @Tags rankings
// @Param name path string true "ranking name"
// @Success 200 {object} apiResponse
// @Failure 400 {object} apiResponse
// @Failure 429 {object} apiResponse
// @Failure 500 {object} apiResponse
// @Router /api/rankings/{name} [post]
func (h *RankingHandler) refreshRanking(c *gin.Context) {
	name := c.Param("name")
	result, err := h.Refresh.RefreshRanking(c.Request.Context(), name)
	if err != nil {
		if h.Logger != nil {
			h.Logger.Warn("ranking refresh failed", zap.String("ranking", name), zap.Error(err))
		}
		serviceError(c, err)
		return
	}
	Ok(c, gin.H{
		"success": true,
		"count":   len(result.Entries),
		"entries": result.Entries,
	}, nil)
}
