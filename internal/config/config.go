package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// Config holds the application configuration
type Config struct {
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	Mining   MiningConfig
	Cache    CacheConfig
	Catalog  CatalogConfig
}

// ServerConfig holds HTTP server settings
type ServerConfig struct {
	Port              int           `envconfig:"PORT" default:"8080" validate:"min=1,max=65535"`
	APIKey            string        `envconfig:"API_KEY" validate:"required"`
	ReadHeaderTimeout time.Duration `envconfig:"SERVER_READ_HEADER_TIMEOUT" default:"5s" validate:"gt=0"`
	ShutdownTimeout   time.Duration `envconfig:"SERVER_SHUTDOWN_TIMEOUT" default:"30s" validate:"gt=0"`
	MaxBodyBytes      int64         `envconfig:"SERVER_MAX_BODY_BYTES" default:"1048576" validate:"min=1"`
	TrustedProxies    []string      `envconfig:"TRUSTED_PROXIES"`
	SSEKeepalive      time.Duration `envconfig:"SSE_KEEPALIVE_INTERVAL" default:"30s" validate:"gt=0"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level       string `envconfig:"LOG_LEVEL" default:"info" validate:"oneof=debug info warn warning error DEBUG INFO WARN WARNING ERROR"`
	Format      string `envconfig:"LOG_FORMAT" default:"text" validate:"oneof=json text"`
	Environment string `envconfig:"ENVIRONMENT" default:"dev"`
	ServiceName string `envconfig:"SERVICE_NAME" default:"mine-idler"`
	Version     string `envconfig:"APP_VERSION" default:"dev"`
}

// DatabaseConfig holds PostgreSQL connection settings
type DatabaseConfig struct {
	Host            string        `envconfig:"DB_HOST" default:"localhost" validate:"required"`
	Port            int           `envconfig:"DB_PORT" default:"5432" validate:"min=1,max=65535"`
	User            string        `envconfig:"DB_USER" default:"postgres" validate:"required"`
	Password        string        `envconfig:"DB_PASSWORD" default:"postgres"`
	Name            string        `envconfig:"DB_NAME" default:"mineidler" validate:"required"`
	SSLMode         string        `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConns        int           `envconfig:"DB_MAX_CONNS" default:"20" validate:"min=1"`
	MaxConnIdleTime time.Duration `envconfig:"DB_MAX_CONN_IDLE_TIME" default:"5m"`
	MaxConnLifetime time.Duration `envconfig:"DB_MAX_CONN_LIFETIME" default:"1h"`
}

// MiningConfig holds session cadence and inventory writer settings
type MiningConfig struct {
	TickInterval         time.Duration `envconfig:"MINING_TICK_INTERVAL" default:"8.2s" validate:"gt=0"`
	WriterQueueSize      int           `envconfig:"MINING_WRITER_QUEUE_SIZE" default:"1024" validate:"min=1"`
	FlushInterval        time.Duration `envconfig:"MINING_FLUSH_INTERVAL" default:"2s" validate:"gt=0"`
	FlushBatchSize       int           `envconfig:"MINING_FLUSH_BATCH_SIZE" default:"100" validate:"min=1"`
	CapacityWorkers      int           `envconfig:"MINING_CAPACITY_WORKERS" default:"4" validate:"min=1"`
	CapacityQueueSize    int           `envconfig:"MINING_CAPACITY_QUEUE_SIZE" default:"256" validate:"min=1"`
	CapacityCheckTimeout time.Duration `envconfig:"MINING_CAPACITY_CHECK_TIMEOUT" default:"5s" validate:"gt=0"`
}

// CacheConfig holds cache settings
type CacheConfig struct {
	Type string        `envconfig:"CACHE_TYPE" default:"memory" validate:"oneof=memory redis"`
	TTL  time.Duration `envconfig:"CACHE_TTL" default:"30s" validate:"gt=0"`
	Size int           `envconfig:"CACHE_SIZE" default:"1024" validate:"min=1"`

	UpgradesSize int           `envconfig:"UPGRADES_CACHE_SIZE" default:"10000" validate:"min=1"`
	UpgradesTTL  time.Duration `envconfig:"UPGRADES_CACHE_TTL" default:"10m" validate:"gt=0"`

	RedisHost     string `envconfig:"REDIS_HOST" default:"localhost"`
	RedisPort     int    `envconfig:"REDIS_PORT" default:"6379"`
	RedisPassword string `envconfig:"REDIS_PASSWORD" default:""`
	RedisDB       int    `envconfig:"REDIS_DB" default:"0"`
}

// CatalogConfig points at an on-disk catalog; empty uses the embedded one
type CatalogConfig struct {
	Dir string `envconfig:"CATALOG_DIR" default:""`
}

// Load loads the configuration from the environment, reading .env first if present
func Load() (*Config, error) {
	// Load .env file if it exists, but don't fail if it doesn't (could be real env vars)
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedToLoadConfig, err)
	}

	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgInvalidConfig, err)
	}

	return &cfg, nil
}

// DatabaseURL returns the PostgreSQL connection string
func (c *Config) DatabaseURL() string {
	d := c.Database
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		d.User, d.Password, d.Host, d.Port, d.Name, d.SSLMode)
}

// RedisAddress returns the Redis address in host:port format
func (c *CacheConfig) RedisAddress() string {
	return fmt.Sprintf("%s:%d", c.RedisHost, c.RedisPort)
}

// IsDevelopment reports whether the environment is a development one
func (l *LogConfig) IsDevelopment() bool {
	return l.Environment == "dev" || l.Environment == "development"
}
