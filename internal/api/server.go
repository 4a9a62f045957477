package api

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/sendurway/signalwise/internal/config"
	infragin "github.com/sendurway/signalwise/internal/infrastructure/gin"
	infralogger "github.com/sendurway/signalwise/internal/infrastructure/logger"
	"github.com/sendurway/signalwise/internal/storage"
)

const (
	defaultReadTimeout  = 10 * time.Second
	defaultWriteTimeout = 10 * time.Second
	defaultIdleTimeout  = 60 * time.Second

	healthPingTimeout = 2 * time.Second
)

// Dependencies are the backends reported by /health. RedisPing may be nil.
type Dependencies struct {
	Store     storage.ClickStore
	RedisPing func(ctx context.Context) error
}

// NewServer creates a new HTTP server. Background goroutines started by the
// routes stop when done is closed.
func NewServer(
	h Handlers,
	deps Dependencies,
	cfg *config.Config,
	log infralogger.Logger,
	done <-chan struct{},
) *infragin.Server {
	rl := RateLimit{
		MaxClicks: cfg.RateLimit.MaxClicksPerMinute,
		Window:    cfg.RateLimit.Window(),
	}

	builder := infragin.NewServerBuilder(cfg.Service.Name, cfg.Service.Port).
		WithLogger(log).
		WithDebug(cfg.Service.Debug).
		WithVersion(cfg.Service.Version).
		WithCORSOrigins(cfg.Service.CORSOrigins).
		WithTimeouts(defaultReadTimeout, defaultWriteTimeout, defaultIdleTimeout).
		// Redirects keep working without the store, so a failed ping degrades.
		WithHealthCheck("database", infragin.PingHealthChecker(
			"database", infragin.HealthStatusDegraded, withTimeout(deps.Store.Ping),
		)).
		WithRoutes(func(router *gin.Engine) {
			SetupRoutes(router, h, rl, done)
		})

	if deps.RedisPing != nil {
		builder = builder.WithHealthCheck("redis", infragin.PingHealthChecker(
			"redis", infragin.HealthStatusDegraded, withTimeout(deps.RedisPing),
		))
	}

	return builder.Build()
}

func withTimeout(ping func(ctx context.Context) error) func() error {
	return func() error {
		ctx, cancel := context.WithTimeout(context.Background(), healthPingTimeout)
		defer cancel()
		return ping(ctx)
	}
}
