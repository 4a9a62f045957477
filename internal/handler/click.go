// Package handler implements the SignalWise HTTP endpoints.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sendurway/signalwise/internal/carrier"
	"github.com/sendurway/signalwise/internal/clicklog"
	"github.com/sendurway/signalwise/internal/domain"
	"github.com/sendurway/signalwise/internal/metrics"
	"github.com/sendurway/signalwise/internal/middleware"
)

// Reasons a click is redirected without being logged.
const (
	skipRateLimited = "rate_limited"
	skipBot         = "bot"
)

const debugNote = "If has_database_host or has_database_password is false, credentials are not " +
	"configured for this deployment. If insert_error is set, the store rejected the insert."

// DebugResponse is returned instead of a redirect when debug=1.
type DebugResponse struct {
	Debug               bool    `json:"debug"`
	Carrier             string  `json:"carrier"`
	Resolved            bool    `json:"resolved"`
	HasDatabaseHost     bool    `json:"has_database_host"`
	HasDatabasePassword bool    `json:"has_database_password"`
	InsertOK            bool    `json:"insert_ok"`
	InsertError         *string `json:"insert_error"`
	Note                string  `json:"note"`
}

// ClickHandler logs outbound clicks and redirects to the carrier.
type ClickHandler struct {
	directory *carrier.Directory
	clicks    *clicklog.Logger
	metrics   *metrics.Metrics
	env       EnvStatus
	skipBots  bool
}

// NewClickHandler creates a ClickHandler with the given dependencies.
func NewClickHandler(
	directory *carrier.Directory,
	clicks *clicklog.Logger,
	m *metrics.Metrics,
	env EnvStatus,
	skipBots bool,
) *ClickHandler {
	return &ClickHandler{
		directory: directory,
		clicks:    clicks,
		metrics:   m,
		env:       env,
		skipBots:  skipBots,
	}
}

// HandleRedirect logs the click within the logger's budget, then redirects.
// The response is a redirect whatever the logging outcome.
func (h *ClickHandler) HandleRedirect(c *gin.Context) {
	target, known := h.directory.Resolve(c.Param("carrier"))

	event := h.clicks.NewEvent(domain.ClickParams{
		Carrier:        c.Param("carrier"),
		HomeZip:        c.Query("homeZip"),
		DataTier:       c.Query("dataTier"),
		Priority:       c.Query("priority"),
		Source:         c.Query("source"),
		CurrentCarrier: c.Query("currentCarrier"),
		CurrentBill:    c.Query("currentBill"),
		UserAgent:      c.Request.UserAgent(),
	})

	outcome := h.record(c, event)
	h.metrics.RecordRedirect(event.Carrier, known)

	if c.Query("debug") == "1" {
		c.JSON(http.StatusOK, h.debugResponse(event, known, outcome))
		return
	}

	c.Header("Cache-Control", "no-store")
	c.Redirect(http.StatusFound, target)
}

func (h *ClickHandler) record(c *gin.Context, event domain.ClickEvent) clicklog.Outcome {
	ctx := c.Request.Context()

	switch {
	case middleware.IsRateLimited(c):
		return h.clicks.Skip(ctx, event, skipRateLimited)
	case h.skipBots && middleware.IsBot(c):
		return h.clicks.Skip(ctx, event, skipBot)
	default:
		return h.clicks.Log(ctx, event)
	}
}

func (h *ClickHandler) debugResponse(event domain.ClickEvent, known bool, outcome clicklog.Outcome) DebugResponse {
	resp := DebugResponse{
		Debug:               true,
		Carrier:             event.Carrier,
		Resolved:            known,
		HasDatabaseHost:     h.env.HasDatabaseHost,
		HasDatabasePassword: h.env.HasDatabasePassword,
		InsertOK:            outcome.OK,
		Note:                debugNote,
	}
	if !outcome.OK {
		cause := outcome.Cause
		resp.InsertError = &cause
	}
	return resp
}
