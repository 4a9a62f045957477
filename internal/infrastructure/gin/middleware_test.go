package gin_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	ginpkg "github.com/gin-gonic/gin"

	infragin "github.com/sendurway/signalwise/internal/infrastructure/gin"
	"github.com/sendurway/signalwise/internal/infrastructure/logger"
)

func TestRequestIDLoggerMiddleware_GeneratesID(t *testing.T) {
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	router.ServeHTTP(w, req)

	reqID := w.Header().Get(infragin.RequestIDHeader)
	const expectedLen = 32
	if len(reqID) != expectedLen {
		t.Errorf("generated request ID %q has length %d, want %d", reqID, len(reqID), expectedLen)
	}
}

func TestRequestIDLoggerMiddleware_PreservesExistingID(t *testing.T) {
	const inboundID = "trace-from-upstream-abc123"

	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(infragin.RequestIDHeader, inboundID)
	router.ServeHTTP(w, req)

	if got := w.Header().Get(infragin.RequestIDHeader); got != inboundID {
		t.Errorf("response X-Request-ID = %q, want %q", got, inboundID)
	}
}

func TestRequestIDLoggerMiddleware_RejectsOversizedID(t *testing.T) {
	oversizedID := strings.Repeat("x", 200)
	router := newTestRouter(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", http.NoBody)
	req.Header.Set(infragin.RequestIDHeader, oversizedID)
	router.ServeHTTP(w, req)

	gotID := w.Header().Get(infragin.RequestIDHeader)
	if gotID == oversizedID || gotID == "" {
		t.Errorf("X-Request-ID = %q, want a freshly generated id", gotID)
	}
}

func TestRecoveryMiddleware_Returns500(t *testing.T) {
	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	router.Use(infragin.RecoveryMiddleware(logger.NewNop()))
	router.GET("/boom", func(*ginpkg.Context) { panic(errors.New("boom")) })

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/boom", http.NoBody))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
}

func TestCORSMiddleware_Preflight(t *testing.T) {
	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	router.Use(infragin.CORSMiddleware(infragin.CORSConfig{
		Enabled:        true,
		AllowedOrigins: []string{"https://signalwise.example"},
	}))
	router.GET("/results", func(c *ginpkg.Context) { c.String(http.StatusOK, "ok") })

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodOptions, "/results", http.NoBody)
	req.Header.Set("Origin", "https://signalwise.example")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusNoContent {
		t.Fatalf("expected 204 for preflight, got %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://signalwise.example" {
		t.Errorf("Access-Control-Allow-Origin = %q", got)
	}
}

func TestHealthRoutes_DegradedCheckStays200(t *testing.T) {
	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	infragin.RegisterHealthRoutes(router, infragin.HealthOptions{
		ServiceName:    "signalwise",
		ServiceVersion: "test",
		Checks: map[string]infragin.HealthChecker{
			"database": infragin.PingHealthChecker("database", infragin.HealthStatusDegraded,
				func() error { return errors.New("down") }),
		},
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", http.NoBody))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for degraded health, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), `"status":"degraded"`) {
		t.Errorf("body = %s, want degraded status", w.Body.String())
	}
}

func newTestRouter(t *testing.T) *ginpkg.Engine {
	t.Helper()

	ginpkg.SetMode(ginpkg.TestMode)
	router := ginpkg.New()
	router.Use(infragin.RequestIDLoggerMiddleware(logger.NewNop()))
	router.GET("/test", func(c *ginpkg.Context) {
		c.String(http.StatusOK, "ok")
	})

	return router
}
