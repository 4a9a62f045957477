package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sendurway/signalwise/internal/domain"
)

func TestSetDefaults(t *testing.T) {
	t.Helper()

	cfg := &Config{}
	setDefaults(cfg)

	assertStringEqual(t, "service.name", defaultServiceName, cfg.Service.Name)
	assertStringEqual(t, "service.version", defaultVersion, cfg.Service.Version)
	assertIntEqual(t, "service.port", defaultServicePort, cfg.Service.Port)

	assertStringEqual(t, "database.host", "", cfg.Database.Host)
	assertIntEqual(t, "database.port", defaultDBPort, cfg.Database.Port)
	assertStringEqual(t, "database.user", defaultDBUser, cfg.Database.User)
	assertStringEqual(t, "database.database", defaultDBName, cfg.Database.Database)
	assertStringEqual(t, "database.sslmode", defaultDBSSLMode, cfg.Database.SSLMode)

	if cfg.Click.LogTimeout != defaultLogTimeout {
		t.Errorf("click.log_timeout: got %v, want %v", cfg.Click.LogTimeout, defaultLogTimeout)
	}
	if cfg.Click.SkipBots {
		t.Error("click.skip_bots: expected false by default")
	}

	assertIntEqual(t, "dashboard.window", defaultWindow, cfg.Dashboard.Window)
	assertIntEqual(t, "dashboard.table_rows", defaultTableRows, cfg.Dashboard.TableRows)
	if cfg.Dashboard.CacheTTL != defaultCacheTTL {
		t.Errorf("dashboard.cache_ttl: got %v, want %v", cfg.Dashboard.CacheTTL, defaultCacheTTL)
	}

	assertIntEqual(t, "rate_limit.max_clicks_per_minute",
		defaultMaxClicksPerMinute, cfg.RateLimit.MaxClicksPerMinute)
	assertIntEqual(t, "rate_limit.window_seconds",
		defaultWindowSeconds, cfg.RateLimit.WindowSeconds)

	assertStringEqual(t, "logging.level", defaultLoggingLevel, cfg.Logging.Level)

	if cfg.Profiling.Pprof || cfg.Profiling.Pyroscope {
		t.Error("profiling: expected both profilers off by default")
	}
	assertIntEqual(t, "profiling.pprof_port", 6060, cfg.Profiling.PprofPort)
}

func TestValidate_ValidConfig(t *testing.T) {
	t.Helper()

	cfg := &Config{}
	setDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected no validation error, got: %v", err)
	}
}

func TestValidate_MissingCredentialsIsNotAnError(t *testing.T) {
	t.Helper()

	cfg := &Config{}
	setDefaults(cfg)

	if cfg.Database.HasCredentials() {
		t.Fatal("expected no credentials in default config")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("expected missing credentials to pass validation, got: %v", err)
	}
}

func TestValidate_Errors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{
			name:   "bad port",
			mutate: func(c *Config) { c.Service.Port = 70000 },
			want:   "service.port: must be between 1 and 65535",
		},
		{
			name:   "bad log level",
			mutate: func(c *Config) { c.Logging.Level = "verbose" },
			want:   "logging.level: must be one of: debug, info, warn, error",
		},
		{
			name:   "relative carrier url",
			mutate: func(c *Config) { c.Carriers.Mint = "/mint" },
			want:   "carriers.mint: must be an absolute http(s) URL",
		},
		{
			name:   "javascript fallback",
			mutate: func(c *Config) { c.Carriers.Fallback = "javascript:alert(1)" },
			want:   "carriers.fallback: must be an absolute http(s) URL",
		},
		{
			name:   "negative log timeout",
			mutate: func(c *Config) { c.Click.LogTimeout = -time.Second },
			want:   "click.log_timeout: must not be negative",
		},
		{
			name:   "window too large",
			mutate: func(c *Config) { c.Dashboard.Window = 5000 },
			want:   "dashboard.window: must not exceed 1000",
		},
		{
			name:   "negative table rows",
			mutate: func(c *Config) { c.Dashboard.TableRows = -1 },
			want:   "dashboard.table_rows: must be greater than zero",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error, got nil")
			}
			if err.Error() != tt.want {
				t.Errorf("error message: got %q, want %q", err.Error(), tt.want)
			}
		})
	}
}

func TestDSN(t *testing.T) {
	t.Helper()

	db := DatabaseConfig{
		Host:     "db.internal",
		Port:     5433,
		User:     "funnel",
		Password: "s3cret",
		Database: "signalwise",
		SSLMode:  "disable",
	}

	expected := "host=db.internal port=5433 user=funnel password=s3cret dbname=signalwise sslmode=disable"
	assertStringEqual(t, "dsn", expected, db.DSN())

	if !db.HasCredentials() {
		t.Error("expected credentials to be present")
	}
}

func TestCarrierOverrides(t *testing.T) {
	t.Helper()

	c := CarriersConfig{Visible: "https://example.com/visible"}
	overrides := c.Overrides()

	assertStringEqual(t, "visible", "https://example.com/visible", overrides[domain.CarrierVisible])
	assertStringEqual(t, "mint", "", overrides[domain.CarrierMint])
}

func TestLoad_EnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("ENV_FILE", filepath.Join(dir, "missing.env"))
	t.Setenv("POSTGRES_SIGNALWISE_PASSWORD", "from-env")
	t.Setenv("OUTBOUND_URL_MINT", "https://partner.example.com/mint")
	t.Setenv("CLICK_SKIP_BOTS", "true")

	path := filepath.Join(dir, "config.yml")
	body := "database:\n  host: db.internal\n  password: from-yaml\n" +
		"click:\n  log_timeout: 250ms\n" +
		"dashboard:\n  window: 300\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	assertStringEqual(t, "database.host", "db.internal", cfg.Database.Host)
	assertStringEqual(t, "database.password", "from-env", cfg.Database.Password)
	assertStringEqual(t, "carriers.mint", "https://partner.example.com/mint", cfg.Carriers.Mint)
	assertIntEqual(t, "dashboard.window", 300, cfg.Dashboard.Window)
	assertIntEqual(t, "dashboard.table_rows", defaultTableRows, cfg.Dashboard.TableRows)

	if cfg.Click.LogTimeout != 250*time.Millisecond {
		t.Errorf("click.log_timeout: got %v, want 250ms", cfg.Click.LogTimeout)
	}
	if !cfg.Click.SkipBots {
		t.Error("click.skip_bots: expected env override to enable it")
	}
}

func assertStringEqual(t *testing.T, field, want, got string) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %q, want %q", field, got, want)
	}
}

func assertIntEqual(t *testing.T, field string, want, got int) {
	t.Helper()
	if got != want {
		t.Errorf("%s: got %d, want %d", field, got, want)
	}
}
