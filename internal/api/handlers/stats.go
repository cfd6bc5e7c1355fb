package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ioulasri/CodeArena/internal/service"
	"github.com/ioulasri/CodeArena/pkg/logger"
)

type StatsHandler struct {
	statsService *service.StatsService
}

func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// GetMyStats 내 전적 조회
func (h *StatsHandler) GetMyStats(c *gin.Context) {
	userID := c.GetString("userId")

	stats, err := h.statsService.StatsForUser(c.Request.Context(), userID)
	if err != nil {
		logger.Error("Failed to fetch stats", "userId", userID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch stats",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

// GetLeaderboard 리더보드 조회
func (h *StatsHandler) GetLeaderboard(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	entries, err := h.statsService.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		logger.Error("Failed to fetch leaderboard", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Failed to fetch leaderboard",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"leaderboard": entries,
		"count":       len(entries),
	})
}
