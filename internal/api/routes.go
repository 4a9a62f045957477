// Package api wires handlers into the HTTP router.
package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sendurway/signalwise/internal/handler"
	"github.com/sendurway/signalwise/internal/middleware"
)

// Handlers groups every endpoint the service exposes.
type Handlers struct {
	Click     *handler.ClickHandler
	Results   *handler.ResultsHandler
	Dashboard *handler.DashboardHandler
	Env       *handler.EnvHandler
	Metrics   http.Handler
}

// RateLimit configures click throttling on the redirect route.
type RateLimit struct {
	MaxClicks int
	Window    time.Duration
}

// SetupRoutes configures all API routes.
// Health routes are registered by the infrastructure gin builder.
func SetupRoutes(router *gin.Engine, h Handlers, rl RateLimit, done <-chan struct{}) {
	router.GET("/results", h.Results.HandleResults)
	router.GET("/clicks", h.Dashboard.HandleClicks)
	router.GET("/env-check", h.Env.HandleEnvCheck)
	router.GET("/metrics", gin.WrapH(h.Metrics))

	// Outbound redirect with bot and rate-limit flagging
	click := router.Group("")
	click.Use(middleware.BotFilter())
	click.Use(middleware.RateLimiter(rl.MaxClicks, rl.Window, done))
	click.GET("/go/:carrier", h.Click.HandleRedirect)
}
