package profiling_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sendurway/signalwise/internal/infrastructure/logger"
	"github.com/sendurway/signalwise/internal/infrastructure/profiling"
)

func TestSetDefaults(t *testing.T) {
	var cfg profiling.Config
	cfg.SetDefaults()

	assert.Equal(t, 6060, cfg.PprofPort)
	assert.Equal(t, "http://pyroscope:4040", cfg.ServerURL)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, "localhost:6060", cfg.PprofAddr())
}

func TestDisabledProfilersStartNothing(t *testing.T) {
	cfg := profiling.Config{}
	cfg.SetDefaults()

	assert.Nil(t, profiling.StartPprofServer(cfg, logger.NewNop()))

	p, err := profiling.StartPyroscope(cfg, "signalwise", "test", logger.NewNop())
	require.NoError(t, err)
	assert.Nil(t, p)
	assert.NoError(t, p.Stop())
}

func TestPprofMuxServesIndex(t *testing.T) {
	w := httptest.NewRecorder()
	profiling.NewPprofMux().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/pprof/", http.NoBody))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "goroutine")
}
