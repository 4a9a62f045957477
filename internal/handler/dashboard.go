package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/sendurway/signalwise/internal/aggregate"
)

// DashboardHandler serves the click summary.
type DashboardHandler struct {
	summaries *aggregate.Service
	window    int
}

// NewDashboardHandler creates a DashboardHandler. window is the default
// number of recent clicks summarized.
func NewDashboardHandler(summaries *aggregate.Service, window int) *DashboardHandler {
	return &DashboardHandler{summaries: summaries, window: window}
}

// HandleClicks summarizes the newest clicks. The optional limit parameter is
// clamped to [1, aggregate.MaxWindow].
func (h *DashboardHandler) HandleClicks(c *gin.Context) {
	limit := h.window
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			limit = max(1, n)
		}
	}
	limit = aggregate.ClampWindow(limit)

	summary := h.summaries.Summarize(c.Request.Context(), limit)

	c.Header("Cache-Control", "no-store")
	c.JSON(http.StatusOK, gin.H{
		"window":  limit,
		"summary": summary,
	})
}
