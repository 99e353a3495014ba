package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the path checked for YAML configuration.
const DefaultConfigFile = "stayhub.yaml"

// minSecretLen is the minimum JWT secret length accepted outside development.
const minSecretLen = 32

// Load returns a Config using the hierarchy: defaults < YAML < ENV.
// The YAML path may be overridden with STAYHUB_CONFIG.
func Load() (*Config, error) {
	path := DefaultConfigFile
	if v := os.Getenv("STAYHUB_CONFIG"); v != "" {
		path = v
	}
	return LoadFrom(path)
}

// LoadFrom returns a Config loaded from the given YAML path using the
// hierarchy: defaults < YAML < ENV. A missing file is not an error.
func LoadFrom(yamlPath string) (*Config, error) {
	cfg := Defaults()

	if err := loadYAML(&cfg, yamlPath); err != nil {
		return nil, fmt.Errorf("config yaml: %w", err)
	}

	loadEnv(&cfg)

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validate: %w", err)
	}

	return &cfg, nil
}

func loadYAML(cfg *Config, path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // operator-supplied path
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// loadEnv overlays environment variables onto cfg.
// Only non-empty env values override the current config.
func loadEnv(cfg *Config) {
	setString(&cfg.Server.Port, "STAYHUB_PORT")
	setString(&cfg.Server.Mode, "GIN_MODE")
	setDuration(&cfg.Server.ShutdownTimeout, "STAYHUB_SHUTDOWN_TIMEOUT")

	setString(&cfg.Postgres.DSN, "DATABASE_URL")
	setInt32(&cfg.Postgres.MaxConns, "STAYHUB_PG_MAX_CONNS")
	setInt32(&cfg.Postgres.MinConns, "STAYHUB_PG_MIN_CONNS")
	setDuration(&cfg.Postgres.MaxConnLifetime, "STAYHUB_PG_MAX_CONN_LIFETIME")
	setBool(&cfg.Postgres.AutoMigrate, "STAYHUB_AUTO_MIGRATE")

	setString(&cfg.Auth.JWTSecret, "JWT_SECRET")
	setString(&cfg.Auth.Issuer, "STAYHUB_JWT_ISSUER")
	setDuration(&cfg.Auth.SessionTTL, "STAYHUB_SESSION_TTL")
	setInt(&cfg.Auth.BcryptCost, "STAYHUB_BCRYPT_COST")

	setBool(&cfg.Cache.Enabled, "STAYHUB_CACHE_ENABLED")
	setInt64(&cfg.Cache.L1MaxEntries, "STAYHUB_CACHE_L1_MAX_ENTRIES")
	setDuration(&cfg.Cache.TTL, "STAYHUB_CACHE_TTL")
	setString(&cfg.Cache.RedisAddr, "REDIS_ADDR")
	setString(&cfg.Cache.RedisPassword, "REDIS_PASSWORD")
	setInt(&cfg.Cache.RedisDB, "STAYHUB_REDIS_DB")

	setString(&cfg.Logging.Level, "STAYHUB_LOG_LEVEL")
	setBool(&cfg.Logging.Development, "STAYHUB_LOG_DEVELOPMENT")

	setBool(&cfg.Security.HideForeignResources, "STAYHUB_HIDE_FOREIGN_RESOURCES")
}

func validate(cfg *Config) error {
	if cfg.Server.Port == "" {
		return errors.New("server.port is required")
	}
	if cfg.Postgres.DSN == "" {
		return errors.New("postgres.dsn is required")
	}
	if cfg.Postgres.MaxConns < 1 {
		return errors.New("postgres.max_conns must be >= 1")
	}
	if cfg.Auth.SessionTTL <= 0 {
		return errors.New("auth.session_ttl must be positive")
	}
	if cfg.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	if !cfg.IsDevelopment() && len(cfg.Auth.JWTSecret) < minSecretLen {
		return fmt.Errorf("auth.jwt_secret must be at least %d bytes", minSecretLen)
	}
	if cfg.Auth.BcryptCost < 4 || cfg.Auth.BcryptCost > 31 {
		return errors.New("auth.bcrypt_cost must be between 4 and 31")
	}
	if cfg.Cache.Enabled && cfg.Cache.L1MaxEntries < 1 {
		return errors.New("cache.l1_max_entries must be >= 1")
	}
	return nil
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setInt32(dst *int32, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 32); err == nil {
			*dst = int32(n)
		}
	}
}

func setInt64(dst *int64, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *time.Duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			*dst = d
		}
	}
}
