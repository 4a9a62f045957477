package config

import (
	"fmt"
	"time"

	"github.com/sendurway/signalwise/internal/domain"
	infraconfig "github.com/sendurway/signalwise/internal/infrastructure/config"
	"github.com/sendurway/signalwise/internal/infrastructure/profiling"
)

// Default configuration values.
const (
	defaultServiceName  = "signalwise"
	defaultServicePort  = 8080
	defaultVersion      = "0.1.0"
	defaultLoggingLevel = "info"
	defaultDBPort       = 5432
	defaultDBName       = "signalwise"
	defaultDBUser       = "postgres"
	defaultDBSSLMode    = "require"

	defaultMaxClicksPerMinute = 30
	defaultWindowSeconds      = 60

	defaultLogTimeout = 800 * time.Millisecond
	defaultWindow     = 500
	defaultTableRows  = 50
	defaultCacheTTL   = 30 * time.Second
	maxWindow         = 1000
)

// Config holds the application configuration.
type Config struct {
	Service   ServiceConfig    `yaml:"service"`
	Database  DatabaseConfig   `yaml:"database"`
	Redis     RedisConfig      `yaml:"redis"`
	Carriers  CarriersConfig   `yaml:"carriers"`
	Click     ClickConfig      `yaml:"click"`
	Dashboard DashboardConfig  `yaml:"dashboard"`
	RateLimit RateLimitConfig  `yaml:"rate_limit"`
	Logging   LoggingConfig    `yaml:"logging"`
	Profiling profiling.Config `yaml:"profiling"`
}

// ServiceConfig holds service-level configuration.
type ServiceConfig struct {
	Name        string   `yaml:"name"`
	Version     string   `yaml:"version"`
	Port        int      `env:"PORT"                   yaml:"port"`
	Debug       bool     `env:"APP_DEBUG"              yaml:"debug"`
	CORSOrigins []string `env:"SIGNALWISE_CORS_ORIGINS" yaml:"cors_origins"`
}

// DatabaseConfig holds PostgreSQL database configuration. Host has no
// default: an empty host or password means the click store is unconfigured.
type DatabaseConfig struct {
	Host     string `env:"POSTGRES_SIGNALWISE_HOST"     yaml:"host"`
	Port     int    `env:"POSTGRES_SIGNALWISE_PORT"     yaml:"port"`
	User     string `env:"POSTGRES_SIGNALWISE_USER"     yaml:"user"`
	Password string `env:"POSTGRES_SIGNALWISE_PASSWORD" yaml:"password"`
	Database string `env:"POSTGRES_SIGNALWISE_DB"       yaml:"database"`
	SSLMode  string `env:"POSTGRES_SIGNALWISE_SSLMODE"  yaml:"sslmode"`
}

// DSN returns the PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Database, d.SSLMode,
	)
}

// HasHost reports whether a database host is configured.
func (d *DatabaseConfig) HasHost() bool { return d.Host != "" }

// HasPassword reports whether a database password is configured.
func (d *DatabaseConfig) HasPassword() bool { return d.Password != "" }

// HasCredentials reports whether the click store can be constructed.
func (d *DatabaseConfig) HasCredentials() bool {
	return d.HasHost() && d.HasPassword()
}

// RedisConfig holds the optional dashboard cache connection.
type RedisConfig struct {
	Address  string `env:"REDIS_ADDRESS"  yaml:"address"`
	Password string `env:"REDIS_PASSWORD" yaml:"password"`
	DB       int    `env:"REDIS_DB"       yaml:"db"`
}

// Enabled reports whether a Redis address is configured.
func (r *RedisConfig) Enabled() bool { return r.Address != "" }

// CarriersConfig overrides outbound URLs. Empty values keep the built-in URL.
type CarriersConfig struct {
	Mint     string `env:"OUTBOUND_URL_MINT"      yaml:"mint"`
	Visible  string `env:"OUTBOUND_URL_VISIBLE"   yaml:"visible"`
	USMobile string `env:"OUTBOUND_URL_US_MOBILE" yaml:"us_mobile"`
	Fallback string `env:"OUTBOUND_FALLBACK_URL"  yaml:"fallback"`
}

// Overrides returns the configured per-carrier URLs keyed by carrier.
func (c *CarriersConfig) Overrides() map[domain.Carrier]string {
	return map[domain.Carrier]string{
		domain.CarrierMint:     c.Mint,
		domain.CarrierVisible:  c.Visible,
		domain.CarrierUSMobile: c.USMobile,
	}
}

// ClickConfig controls click logging on the redirect route.
type ClickConfig struct {
	LogTimeout time.Duration `env:"CLICK_LOG_TIMEOUT" yaml:"log_timeout"`
	SkipBots   bool          `env:"CLICK_SKIP_BOTS"   yaml:"skip_bots"`
}

// DashboardConfig controls the click summary.
type DashboardConfig struct {
	Window    int           `yaml:"window"`
	TableRows int           `yaml:"table_rows"`
	CacheTTL  time.Duration `yaml:"cache_ttl"`
}

// RateLimitConfig holds per-IP click throttling configuration.
type RateLimitConfig struct {
	MaxClicksPerMinute int `yaml:"max_clicks_per_minute"`
	WindowSeconds      int `yaml:"window_seconds"`
}

// Window returns the rate limit window as a duration.
func (r *RateLimitConfig) Window() time.Duration {
	return time.Duration(r.WindowSeconds) * time.Second
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `env:"LOG_LEVEL" yaml:"level"`
}

// Load loads configuration from the specified path.
func Load(path string) (*Config, error) {
	return infraconfig.LoadWithDefaults[Config](path, setDefaults)
}

// setDefaults applies default values to the config.
func setDefaults(cfg *Config) {
	setServiceDefaults(&cfg.Service)
	setDatabaseDefaults(&cfg.Database)
	setClickDefaults(&cfg.Click)
	setDashboardDefaults(&cfg.Dashboard)
	setRateLimitDefaults(&cfg.RateLimit)
	setLoggingDefaults(&cfg.Logging)
	cfg.Profiling.SetDefaults()
}

// setServiceDefaults applies default values to ServiceConfig.
func setServiceDefaults(svc *ServiceConfig) {
	if svc.Name == "" {
		svc.Name = defaultServiceName
	}
	if svc.Version == "" {
		svc.Version = defaultVersion
	}
	if svc.Port == 0 {
		svc.Port = defaultServicePort
	}
}

// setDatabaseDefaults applies default values to DatabaseConfig.
func setDatabaseDefaults(db *DatabaseConfig) {
	if db.Port == 0 {
		db.Port = defaultDBPort
	}
	if db.User == "" {
		db.User = defaultDBUser
	}
	if db.Database == "" {
		db.Database = defaultDBName
	}
	if db.SSLMode == "" {
		db.SSLMode = defaultDBSSLMode
	}
}

func setClickDefaults(click *ClickConfig) {
	if click.LogTimeout == 0 {
		click.LogTimeout = defaultLogTimeout
	}
}

func setDashboardDefaults(d *DashboardConfig) {
	if d.Window == 0 {
		d.Window = defaultWindow
	}
	if d.TableRows == 0 {
		d.TableRows = defaultTableRows
	}
	if d.CacheTTL == 0 {
		d.CacheTTL = defaultCacheTTL
	}
}

// setRateLimitDefaults applies default values to RateLimitConfig.
func setRateLimitDefaults(rl *RateLimitConfig) {
	if rl.MaxClicksPerMinute == 0 {
		rl.MaxClicksPerMinute = defaultMaxClicksPerMinute
	}
	if rl.WindowSeconds == 0 {
		rl.WindowSeconds = defaultWindowSeconds
	}
}

// setLoggingDefaults applies default values to LoggingConfig.
func setLoggingDefaults(log *LoggingConfig) {
	if log.Level == "" {
		log.Level = defaultLoggingLevel
	}
}

// Validate validates the configuration. Missing database credentials are
// not an error: the service runs without click storage.
func (c *Config) Validate() error {
	if err := infraconfig.ValidatePort("service.port", c.Service.Port); err != nil {
		return err
	}
	if err := infraconfig.ValidateLogLevel("logging.level", c.Logging.Level); err != nil {
		return err
	}

	urls := []struct{ field, value string }{
		{"carriers.mint", c.Carriers.Mint},
		{"carriers.visible", c.Carriers.Visible},
		{"carriers.us_mobile", c.Carriers.USMobile},
		{"carriers.fallback", c.Carriers.Fallback},
	}
	for _, u := range urls {
		if err := infraconfig.ValidateHTTPURL(u.field, u.value); err != nil {
			return err
		}
	}

	if c.Click.LogTimeout < 0 {
		return &infraconfig.ValidationError{Field: "click.log_timeout", Message: "must not be negative"}
	}
	if err := infraconfig.ValidatePositive("dashboard.window", c.Dashboard.Window); err != nil {
		return err
	}
	if c.Dashboard.Window > maxWindow {
		return &infraconfig.ValidationError{
			Field:   "dashboard.window",
			Message: fmt.Sprintf("must not exceed %d", maxWindow),
		}
	}
	if err := infraconfig.ValidatePositive("dashboard.table_rows", c.Dashboard.TableRows); err != nil {
		return err
	}
	if err := infraconfig.ValidatePositive("rate_limit.max_clicks_per_minute", c.RateLimit.MaxClicksPerMinute); err != nil {
		return err
	}
	return infraconfig.ValidatePositive("rate_limit.window_seconds", c.RateLimit.WindowSeconds)
}
