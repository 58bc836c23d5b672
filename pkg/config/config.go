package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "SABORES"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "SABORES_DB_DSN"
	EnvDBHost = "SABORES_DB_HOST"
	EnvDBUser = "SABORES_DB_USER"
	EnvDBName = "SABORES_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	Catalog      CatalogConfig
	FeatureFlags FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"SABORES_APP_ENV" required:"true"`
	Port         string `envconfig:"SABORES_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SABORES_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SABORES_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SABORES_DB_DSN"`
	Driver string `envconfig:"SABORES_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SABORES_DB_HOST"`
	LegacyPort     int    `envconfig:"SABORES_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SABORES_DB_USER"`
	LegacyPassword string `envconfig:"SABORES_DB_PASSWORD"`
	LegacyName     string `envconfig:"SABORES_DB_NAME"`
	LegacySSLMode  string `envconfig:"SABORES_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SABORES_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SABORES_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SABORES_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SABORES_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"SABORES_REDIS_URL"`
	Address      string        `envconfig:"SABORES_REDIS_ADDR"`
	Password     string        `envconfig:"SABORES_REDIS_PASSWORD"`
	DB           int           `envconfig:"SABORES_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SABORES_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SABORES_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SABORES_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SABORES_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SABORES_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// CatalogConfig tunes the in-memory/redis snapshot the pricing engine reads.
type CatalogConfig struct {
	CacheEnabled bool          `envconfig:"SABORES_CATALOG_CACHE_ENABLED" default:"false"`
	CacheTTL     time.Duration `envconfig:"SABORES_CATALOG_CACHE_TTL" default:"30s"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SABORES_AUTO_MIGRATE" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
