package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = ""

	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Storage      StorageConfig
	Media        MediaConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"CATALOG_APP_ENV" required:"true"`
	Port         string `envconfig:"CATALOG_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"CATALOG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"CATALOG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"CATALOG_DB_DSN" required:"true"`
	Driver string `envconfig:"CATALOG_DB_DRIVER" default:"postgres"`

	MaxOpenConns    int           `envconfig:"CATALOG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"CATALOG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"CATALOG_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"CATALOG_REDIS_URL"`
	Address      string        `envconfig:"CATALOG_REDIS_ADDR"`
	Password     string        `envconfig:"CATALOG_REDIS_PASSWORD"`
	DB           int           `envconfig:"CATALOG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"CATALOG_REDIS_POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"CATALOG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"CATALOG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"CATALOG_REDIS_WRITE_TIMEOUT" default:"5s"`

	VideoCacheTTL time.Duration `envconfig:"CATALOG_REDIS_VIDEO_CACHE_TTL" default:"5m"`
}

type StorageConfig struct {
	Endpoint  string `envconfig:"CATALOG_STORAGE_ENDPOINT" required:"true"`
	AccessKey string `envconfig:"CATALOG_STORAGE_ACCESS_KEY" required:"true"`
	SecretKey string `envconfig:"CATALOG_STORAGE_SECRET_KEY" required:"true"`
	Bucket    string `envconfig:"CATALOG_STORAGE_BUCKET" required:"true"`
	UseSSL    bool   `envconfig:"CATALOG_STORAGE_USE_SSL" default:"false"`
}

// MediaConfig caps upload sizes per video file field, in kilobytes.
type MediaConfig struct {
	VideoMaxKB   int64 `envconfig:"CATALOG_MEDIA_VIDEO_MAX_KB" default:"50000000"`
	TrailerMaxKB int64 `envconfig:"CATALOG_MEDIA_TRAILER_MAX_KB" default:"1000000"`
	ThumbMaxKB   int64 `envconfig:"CATALOG_MEDIA_THUMB_MAX_KB" default:"5000"`
	BannerMaxKB  int64 `envconfig:"CATALOG_MEDIA_BANNER_MAX_KB" default:"10000"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"CATALOG_AUTO_MIGRATE" default:"false"`
}
