package config

import (
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Environment Environment `mapstructure:"-"`

	Server    ServerConfig    `mapstructure:"server"`
	Database  DatabaseConfig  `mapstructure:"database"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Log       LogConfig       `mapstructure:"log"`
	Cache     CacheConfig     `mapstructure:"cache"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	MealPlan  MealPlanConfig  `mapstructure:"mealplan"`
	AWS       AWSConfig       `mapstructure:"aws"`
}

// ServerConfig contains HTTP server configuration
type ServerConfig struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port" validate:"required,numeric"`
	AllowedOrigins  []string      `mapstructure:"allowed_origins" validate:"dive,url"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Addr returns the listen address
func (s ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, s.Port)
}

// DatabaseConfig contains database connection and pool configuration
type DatabaseConfig struct {
	Host               string        `mapstructure:"host" validate:"required"`
	Port               string        `mapstructure:"port" validate:"required,numeric"`
	User               string        `mapstructure:"user" validate:"required"`
	Password           string        `mapstructure:"password"`
	Name               string        `mapstructure:"name" validate:"required"`
	SSLMode            string        `mapstructure:"ssl_mode" validate:"oneof=disable allow prefer require verify-ca verify-full"`
	MaxOpenConns       int           `mapstructure:"max_open_conns" validate:"min=1"`
	MaxIdleConns       int           `mapstructure:"max_idle_conns" validate:"min=0,ltefield=MaxOpenConns"`
	ConnMaxLifetime    time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime    time.Duration `mapstructure:"conn_max_idle_time"`
	SlowQueryThreshold time.Duration `mapstructure:"slow_query_threshold"`
	AutoMigrate        bool          `mapstructure:"auto_migrate"`
}

// DSN returns the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode,
	)
}

// URL returns the connection string in URL form, as golang-migrate expects
func (d DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		d.User, d.Password, net.JoinHostPort(d.Host, d.Port), d.Name, d.SSLMode)
}

// RedisConfig contains Redis configuration
type RedisConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"min=0"`
	URL      string `mapstructure:"url"`
}

// Enabled reports whether a Redis server has been configured
func (r RedisConfig) Enabled() bool {
	return r.URL != "" || r.Host != ""
}

// LogConfig contains logger configuration
type LogConfig struct {
	Level  string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" validate:"oneof=json console"`
}

// CacheConfig controls the recipe read-through cache
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// RateLimitConfig controls per-client request limiting
type RateLimitConfig struct {
	Enabled           bool `mapstructure:"enabled"`
	RequestsPerMinute int  `mapstructure:"requests_per_minute" validate:"min=1"`
	Burst             int  `mapstructure:"burst" validate:"min=1"`
}

// MealPlanConfig selects where the meal plan catalog is loaded from:
// empty or "builtin", a YAML file path, or an s3://bucket/key URL.
type MealPlanConfig struct {
	Source string `mapstructure:"source"`
}

// AWSConfig contains AWS settings used by the S3 meal plan source
type AWSConfig struct {
	Region   string `mapstructure:"region"`
	Endpoint string `mapstructure:"endpoint"`
}

// envBindings maps config keys to the environment variables that override them
var envBindings = map[string][]string{
	"server.host":                    {"SERVER_HOST"},
	"server.port":                    {"SERVER_PORT", "PORT"},
	"server.allowed_origins":         {"ALLOWED_ORIGINS"},
	"database.host":                  {"DB_HOST"},
	"database.port":                  {"DB_PORT"},
	"database.user":                  {"DB_USER"},
	"database.password":              {"DB_PASSWORD"},
	"database.name":                  {"DB_NAME"},
	"database.ssl_mode":              {"DB_SSL_MODE"},
	"database.max_open_conns":        {"DB_MAX_OPEN_CONNS"},
	"database.max_idle_conns":        {"DB_MAX_IDLE_CONNS"},
	"database.auto_migrate":          {"DB_AUTO_MIGRATE"},
	"redis.host":                     {"REDIS_HOST"},
	"redis.port":                     {"REDIS_PORT"},
	"redis.password":                 {"REDIS_PASSWORD"},
	"redis.url":                      {"REDIS_URL"},
	"log.level":                      {"LOG_LEVEL"},
	"log.format":                     {"LOG_FORMAT"},
	"cache.ttl":                      {"CACHE_TTL"},
	"rate_limit.enabled":             {"RATE_LIMIT_ENABLED"},
	"rate_limit.requests_per_minute": {"RATE_LIMIT_RPM"},
	"mealplan.source":                {"MEALPLAN_SOURCE"},
	"aws.region":                     {"AWS_REGION"},
	"aws.endpoint":                   {"AWS_ENDPOINT_URL"},
}

// LoadConfig creates a new Config instance from defaults, an optional config
// file, environment variables and Docker secrets
func LoadConfig() (*Config, error) {
	// A missing .env file is the normal case outside local development
	_ = godotenv.Load()

	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	for key, envs := range envBindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.Environment = GetEnvironment()

	// Secrets are only read from files when the environment did not provide them
	if cfg.Database.Password == "" {
		cfg.Database.Password = readSecret("db_password")
	}
	if cfg.Redis.Password == "" {
		cfg.Redis.Password = readSecret("redis_password")
	}

	if err := ValidateConfig(cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.host", "")
	v.SetDefault("server.port", "3000")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})
	v.SetDefault("server.read_timeout", "15s")
	v.SetDefault("server.write_timeout", "15s")
	v.SetDefault("server.shutdown_timeout", "10s")

	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", "5432")
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.name", "mealplanner")
	v.SetDefault("database.ssl_mode", "disable")
	v.SetDefault("database.max_open_conns", 25)
	v.SetDefault("database.max_idle_conns", 5)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")
	v.SetDefault("database.slow_query_threshold", "200ms")
	v.SetDefault("database.auto_migrate", false)

	v.SetDefault("redis.db", 0)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	v.SetDefault("cache.ttl", "5m")

	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests_per_minute", 120)
	v.SetDefault("rate_limit.burst", 20)

	v.SetDefault("aws.region", "us-east-1")
}

// readSecret reads a Docker secret from the secrets directory
func readSecret(name string) string {
	secretsDir := os.Getenv("SECRETS_DIR")
	if secretsDir == "" {
		secretsDir = "/run/secrets"
	}
	data, err := os.ReadFile(filepath.Join(secretsDir, name))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(data))
}
