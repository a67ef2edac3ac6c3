package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	leaderboardService "anoa.com/skinannotator/internal/modules/leaderboard/service"
	"anoa.com/skinannotator/pkg/ratelimiter"
	"anoa.com/skinannotator/pkg/response"
	"github.com/gin-gonic/gin"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

type LeaderboardHandler struct {
	service leaderboardService.LeaderboardService
}

func NewLeaderboardHandler(service leaderboardService.LeaderboardService) *LeaderboardHandler {
	return &LeaderboardHandler{service: service}
}

func (h *LeaderboardHandler) GetLeaderboard(c *gin.Context) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if err != nil || limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	leaderboard, err := h.service.GetLeaderboard(c.Request.Context(), limit)
	if err != nil {
		response.ResponseError(c, "LEADERBOARD", err)
		return
	}

	c.JSON(http.StatusOK, leaderboard)
}

func (h *LeaderboardHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context())
	if err != nil {
		response.ResponseError(c, "LEADERBOARD STATS", err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *LeaderboardHandler) Refresh(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, "LEADERBOARD REFRESH", err)
		return
	}

	result, err := h.service.ManualRefresh(c.Request.Context(), userID)
	if err != nil {
		var rateLimitErr *ratelimiter.RateLimitError
		if errors.As(err, &rateLimitErr) {
			c.Header("Retry-After", fmt.Sprintf("%.0f", rateLimitErr.RetryAfter.Seconds()))
		}
		response.ResponseError(c, "LEADERBOARD REFRESH", err)
		return
	}

	if !result.Success {
		c.JSON(http.StatusInternalServerError, result)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LeaderboardHandler) Debug(c *gin.Context) {
	debug, err := h.service.Debug(c.Request.Context())
	if err != nil {
		response.ResponseError(c, "LEADERBOARD DEBUG", err)
		return
	}

	c.JSON(http.StatusOK, debug)
}
