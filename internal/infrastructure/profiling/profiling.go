// Package profiling starts the optional pprof endpoint and Pyroscope agent.
package profiling

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/pprof"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/grafana/pyroscope-go"

	"github.com/sendurway/signalwise/internal/infrastructure/logger"
)

const (
	defaultPprofPort   = 6060
	defaultServerURL   = "http://pyroscope:4040"
	defaultEnvironment = "development"
	pprofHeaderTimeout = 5 * time.Second
	applicationPrefix  = "signalwise."
)

// Config controls both profilers. Both are off unless enabled.
type Config struct {
	Pprof       bool   `env:"ENABLE_PROFILING"            yaml:"pprof"`
	PprofPort   int    `env:"PPROF_PORT"                  yaml:"pprof_port"`
	Pyroscope   bool   `env:"ENABLE_CONTINUOUS_PROFILING" yaml:"pyroscope"`
	ServerURL   string `env:"PYROSCOPE_SERVER_URL"        yaml:"server_url"`
	Environment string `env:"PYROSCOPE_ENVIRONMENT"       yaml:"environment"`
}

// SetDefaults fills unset ports and addresses.
func (c *Config) SetDefaults() {
	if c.PprofPort == 0 {
		c.PprofPort = defaultPprofPort
	}
	if c.ServerURL == "" {
		c.ServerURL = defaultServerURL
	}
	if c.Environment == "" {
		c.Environment = defaultEnvironment
	}
}

// PprofAddr is the loopback address the pprof server binds to.
func (c *Config) PprofAddr() string {
	return "localhost:" + strconv.Itoa(c.PprofPort)
}

// NewPprofMux returns a mux serving the standard /debug/pprof/ endpoints.
func NewPprofMux() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/debug/pprof/", pprof.Index)
	mux.HandleFunc("/debug/pprof/cmdline", pprof.Cmdline)
	mux.HandleFunc("/debug/pprof/profile", pprof.Profile)
	mux.HandleFunc("/debug/pprof/symbol", pprof.Symbol)
	mux.HandleFunc("/debug/pprof/trace", pprof.Trace)
	return mux
}

// StartPprofServer serves pprof on localhost in the background. It returns
// nil when pprof is disabled.
func StartPprofServer(cfg Config, log logger.Logger) *http.Server {
	if !cfg.Pprof {
		return nil
	}

	srv := &http.Server{
		Addr:              cfg.PprofAddr(),
		Handler:           NewPprofMux(),
		ReadHeaderTimeout: pprofHeaderTimeout,
	}

	go func() {
		log.Info("Starting pprof server", logger.String("address", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("pprof server error", logger.Error(err))
		}
	}()

	return srv
}

// Profiler wraps a running Pyroscope agent. A nil Profiler is valid.
type Profiler struct {
	profiler *pyroscope.Profiler
}

// StartPyroscope starts continuous profiling. It returns nil, nil when
// continuous profiling is disabled.
func StartPyroscope(cfg Config, serviceName, version string, log logger.Logger) (*Profiler, error) {
	if !cfg.Pyroscope {
		return nil, nil
	}

	profiler, err := pyroscope.Start(pyroscope.Config{
		ApplicationName: applicationPrefix + serviceName,
		ServerAddress:   cfg.ServerURL,
		ProfileTypes: []pyroscope.ProfileType{
			pyroscope.ProfileCPU,
			pyroscope.ProfileAllocObjects,
			pyroscope.ProfileAllocSpace,
			pyroscope.ProfileInuseObjects,
			pyroscope.ProfileInuseSpace,
			pyroscope.ProfileGoroutines,
		},
		Tags: map[string]string{
			"environment": cfg.Environment,
			"version":     version,
			"hostname":    hostname(),
			"go_version":  runtime.Version(),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("start pyroscope profiler: %w", err)
	}

	log.Info("Pyroscope continuous profiling started",
		logger.String("server", cfg.ServerURL),
		logger.String("environment", cfg.Environment),
	)

	return &Profiler{profiler: profiler}, nil
}

// Stop flushes and stops the agent.
func (p *Profiler) Stop() error {
	if p == nil || p.profiler == nil {
		return nil
	}
	return p.profiler.Stop()
}

func hostname() string {
	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}
	return name
}
