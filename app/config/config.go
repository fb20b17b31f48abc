package config

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/isina-nej/unipath/app/ctxlog"
	"github.com/isina-nej/unipath/app/database"
)

// DefaultPath is read when neither a flag nor UNIPATH_CONFIG names a file.
const DefaultPath = "unipath.hcl"

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Auth        AuthConfig
	Maintenance MaintenanceConfig
	RateLimit   RateLimitConfig
	Log         LogConfig
}

type ServerConfig struct {
	Port           int
	CORSOrigins    string
	TemplateReload bool
}

// Addr is the listen address for Port.
func (s ServerConfig) Addr() string {
	return ":" + strconv.Itoa(s.Port)
}

type DatabaseConfig struct {
	Driver string
	DSN    string
	Pool   database.PoolConfig
}

type AuthConfig struct {
	JWTSecret string
	TokenTTL  time.Duration
	Issuer    string
}

type MaintenanceConfig struct {
	// SweepInterval of zero disables the scheduled consistency sweep.
	SweepInterval time.Duration
}

// LimitRule allows Max requests per client within Window.
type LimitRule struct {
	Max    int
	Window time.Duration
}

type RateLimitConfig struct {
	Enabled   bool
	Global    LimitRule
	Reads     LimitRule
	Writes    LimitRule
	Aggregate LimitRule
}

type LogConfig struct {
	Format string
	Level  string
}

// Default returns the configuration used when no file is present: a local
// SQLite database with foreign keys enforced.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, CORSOrigins: "*"},
		Database: DatabaseConfig{
			Driver: "sqlite",
			DSN:    "file:unipath.db?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)&_txlock=immediate",
			Pool:   database.PoolConfig{MaxOpenConns: 25, MaxIdleConns: 5},
		},
		Auth: AuthConfig{
			JWTSecret: "unipath-development-secret",
			TokenTTL:  24 * time.Hour,
			Issuer:    "unipath",
		},
		Maintenance: MaintenanceConfig{SweepInterval: 15 * time.Minute},
		RateLimit: RateLimitConfig{
			Enabled:   true,
			Global:    LimitRule{Max: 50, Window: time.Hour},
			Reads:     LimitRule{Max: 100, Window: time.Minute},
			Writes:    LimitRule{Max: 30, Window: time.Minute},
			Aggregate: LimitRule{Max: 10, Window: time.Minute},
		},
		Log: LogConfig{Format: "text", Level: "info"},
	}
}

// file mirrors the HCL layout. Durations are written as Go duration strings.
type file struct {
	Server      *serverBlock      `hcl:"server,block"`
	Database    *databaseBlock    `hcl:"database,block"`
	Auth        *authBlock        `hcl:"auth,block"`
	Maintenance *maintenanceBlock `hcl:"maintenance,block"`
	RateLimit   *rateLimitBlock   `hcl:"rate_limit,block"`
	Log         *logBlock         `hcl:"log,block"`
}

type serverBlock struct {
	Port           *int    `hcl:"port,optional"`
	CORSOrigins    *string `hcl:"cors_origins,optional"`
	TemplateReload *bool   `hcl:"template_reload,optional"`
}

type databaseBlock struct {
	Driver          *string `hcl:"driver,optional"`
	DSN             *string `hcl:"dsn,optional"`
	MaxOpenConns    *int    `hcl:"max_open_conns,optional"`
	MaxIdleConns    *int    `hcl:"max_idle_conns,optional"`
	ConnMaxLifetime *string `hcl:"conn_max_lifetime,optional"`
}

type authBlock struct {
	JWTSecret *string `hcl:"jwt_secret,optional"`
	TokenTTL  *string `hcl:"token_ttl,optional"`
	Issuer    *string `hcl:"issuer,optional"`
}

type maintenanceBlock struct {
	SweepInterval *string `hcl:"sweep_interval,optional"`
}

type rateLimitBlock struct {
	Enabled *bool        `hcl:"enabled,optional"`
	Limits  []limitBlock `hcl:"limit,block"`
}

type limitBlock struct {
	Name   string `hcl:"name,label"`
	Max    int    `hcl:"max"`
	Window string `hcl:"window"`
}

type logBlock struct {
	Format *string `hcl:"format,optional"`
	Level  *string `hcl:"level,optional"`
}

// Load builds the configuration from defaults, then the HCL file, then the
// environment. path may be empty; UNIPATH_CONFIG and DefaultPath are tried
// next, and a missing default file is not an error.
func Load(ctx context.Context, path string) (*Config, error) {
	logger := ctxlog.FromContext(ctx)
	cfg := Default()

	explicit := path != ""
	if !explicit {
		if env := os.Getenv("UNIPATH_CONFIG"); env != "" {
			path, explicit = env, true
		} else {
			path = DefaultPath
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := decodeFile(path, cfg); err != nil {
			return nil, err
		}
		logger.Debug("Loaded configuration file.", "path", path)
	} else if explicit || !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config file %s: %w", path, err)
	}

	if err := applyEnv(cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return fmt.Errorf("failed to parse HCL file %s: %s", path, diags.Error())
	}

	var raw file
	diags = gohcl.DecodeBody(f.Body, nil, &raw)
	if diags.HasErrors() {
		return fmt.Errorf("failed to decode HCL file %s: %s", path, diags.Error())
	}

	if err := raw.apply(cfg); err != nil {
		return fmt.Errorf("config file %s: %w", path, err)
	}
	return nil
}

func (f *file) apply(cfg *Config) error {
	if b := f.Server; b != nil {
		setIf(&cfg.Server.Port, b.Port)
		setIf(&cfg.Server.CORSOrigins, b.CORSOrigins)
		setIf(&cfg.Server.TemplateReload, b.TemplateReload)
	}

	if b := f.Database; b != nil {
		setIf(&cfg.Database.Driver, b.Driver)
		setIf(&cfg.Database.DSN, b.DSN)
		setIf(&cfg.Database.Pool.MaxOpenConns, b.MaxOpenConns)
		setIf(&cfg.Database.Pool.MaxIdleConns, b.MaxIdleConns)
		if err := setDuration(&cfg.Database.Pool.ConnMaxLifetime, "database.conn_max_lifetime", b.ConnMaxLifetime); err != nil {
			return err
		}
	}

	if b := f.Auth; b != nil {
		setIf(&cfg.Auth.JWTSecret, b.JWTSecret)
		setIf(&cfg.Auth.Issuer, b.Issuer)
		if err := setDuration(&cfg.Auth.TokenTTL, "auth.token_ttl", b.TokenTTL); err != nil {
			return err
		}
	}

	if b := f.Maintenance; b != nil {
		if err := setDuration(&cfg.Maintenance.SweepInterval, "maintenance.sweep_interval", b.SweepInterval); err != nil {
			return err
		}
	}

	if b := f.RateLimit; b != nil {
		setIf(&cfg.RateLimit.Enabled, b.Enabled)
		for _, l := range b.Limits {
			rule, err := l.rule()
			if err != nil {
				return err
			}
			switch l.Name {
			case "global":
				cfg.RateLimit.Global = rule
			case "reads":
				cfg.RateLimit.Reads = rule
			case "writes":
				cfg.RateLimit.Writes = rule
			case "aggregate":
				cfg.RateLimit.Aggregate = rule
			default:
				return fmt.Errorf("unknown rate limit %q: must be global, reads, writes or aggregate", l.Name)
			}
		}
	}

	if b := f.Log; b != nil {
		setIf(&cfg.Log.Format, b.Format)
		setIf(&cfg.Log.Level, b.Level)
	}
	return nil
}

func (l limitBlock) rule() (LimitRule, error) {
	window, err := time.ParseDuration(l.Window)
	if err != nil {
		return LimitRule{}, fmt.Errorf("rate_limit %q window: %w", l.Name, err)
	}
	return LimitRule{Max: l.Max, Window: window}, nil
}

func setIf[T any](dst *T, v *T) {
	if v != nil {
		*dst = *v
	}
}

func setDuration(dst *time.Duration, name string, v *string) error {
	if v == nil {
		return nil
	}
	d, err := time.ParseDuration(*v)
	if err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	*dst = d
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.DSN = v
		// A postgres URL without an explicit driver means postgres.
		if os.Getenv("DB_DRIVER") == "" && (strings.HasPrefix(v, "postgres://") || strings.HasPrefix(v, "postgresql://")) {
			cfg.Database.Driver = "postgres"
		}
	}
	if v := os.Getenv("DB_DRIVER"); v != "" {
		cfg.Database.Driver = v
	}
	if v := os.Getenv("JWT_SECRET"); v != "" {
		cfg.Auth.JWTSecret = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("PORT: %q is not a number", v)
		}
		cfg.Server.Port = port
	}
	return nil
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if _, err := database.DialectFor(c.Database.Driver); err != nil {
		return fmt.Errorf("database.driver: %w", err)
	}
	if c.Database.DSN == "" {
		return errors.New("database.dsn is required")
	}
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if c.Auth.TokenTTL <= 0 {
		return errors.New("auth.token_ttl must be positive")
	}
	if c.Maintenance.SweepInterval < 0 {
		return errors.New("maintenance.sweep_interval must not be negative")
	}
	if c.RateLimit.Enabled {
		for name, rule := range map[string]LimitRule{
			"global":    c.RateLimit.Global,
			"reads":     c.RateLimit.Reads,
			"writes":    c.RateLimit.Writes,
			"aggregate": c.RateLimit.Aggregate,
		} {
			if rule.Max <= 0 || rule.Window <= 0 {
				return fmt.Errorf("rate_limit %q needs a positive max and window", name)
			}
		}
	}
	switch strings.ToLower(c.Log.Format) {
	case "text", "json":
	default:
		return fmt.Errorf("log.format %q must be text or json", c.Log.Format)
	}
	return nil
}

// OpenStore opens the configured database and applies the schema.
func (c *Config) OpenStore(ctx context.Context) (*database.Store, error) {
	store, err := database.Open(ctx, c.Database.Driver, c.Database.DSN, c.Database.Pool)
	if err != nil {
		return nil, err
	}
	if err := database.RunMigrations(ctx, store); err != nil {
		store.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return store, nil
}
