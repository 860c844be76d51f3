package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Session  SessionConfig
	SMTP     SMTPConfig
	Auth     AuthConfig
	Upload   UploadConfig
	Seed     SeedConfig
}

type AppConfig struct {
	AppName     string `env:"APP_NAME"`
	Environment string `env:"APP_ENV"`
	HTTPPort    string `env:"HTTP_PORT"`
}

func (a AppConfig) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(a.Environment), "production")
}

type DatabaseConfig struct {
	DBHost     string `env:"DB_HOST"`
	DBPort     string `env:"DB_PORT"`
	DBName     string `env:"DB_NAME"`
	DBUser     string `env:"DB_USER"`
	DBPassword string `env:"DB_PASSWORD"`
	DBSSLMode  string `env:"DB_SSL_MODE" envDefault:"disable"`

	ConnectTimeout        time.Duration `env:"DB_CONNECT_TIMEOUT"`
	PoolMaxConns          int32         `env:"DB_POOL_MAX_CONNS"`
	PoolMinConns          int32         `env:"DB_POOL_MIN_CONNS"`
	PoolMaxConnLifetime   time.Duration `env:"DB_POOL_MAX_CONN_LIFETIME"`
	PoolMaxConnIdleTime   time.Duration `env:"DB_POOL_MAX_CONN_IDLE_TIME"`
	PoolHealthCheckPeriod time.Duration `env:"DB_POOL_HEALTH_CHECK_PERIOD"`
}

type RedisConfig struct {
	Host     string `env:"REDIS_HOST" envDefault:"localhost"`
	Port     string `env:"REDIS_PORT" envDefault:"6379"`
	Password string `env:"REDIS_PASSWORD"`
}

func (r RedisConfig) Addr() string {
	return fmt.Sprintf("%s:%s", strings.TrimSpace(r.Host), strings.TrimSpace(r.Port))
}

type SessionConfig struct {
	Secret     string        `env:"SESSION_SECRET"`
	TTL        time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CookieName string        `env:"SESSION_COOKIE_NAME" envDefault:"session"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST"`
	Port     int    `env:"SMTP_PORT" envDefault:"587"`
	Username string `env:"SMTP_USERNAME"`
	Password string `env:"SMTP_PASSWORD"`
	From     string `env:"SMTP_FROM" envDefault:"noreply@thisisnotfine.fr"`
}

type AuthConfig struct {
	MinPasswordLen  int           `env:"MIN_PASSWORD_LEN" envDefault:"3"`
	LoginRateLimit  int           `env:"LOGIN_RATE_LIMIT" envDefault:"5"`
	LoginRateWindow time.Duration `env:"LOGIN_RATE_WINDOW" envDefault:"15m"`
}

type UploadConfig struct {
	Dir           string `env:"UPLOAD_DIR" envDefault:"public/uploads/cv"`
	MaxCVSizeByte int64  `env:"UPLOAD_MAX_CV_BYTES" envDefault:"5242880"`
}

type SeedConfig struct {
	AdminEmail    string `env:"SEED_ADMIN_EMAIL"`
	AdminPassword string `env:"SEED_ADMIN_PASSWORD"`
}

var errMissingRequiredEnv = errors.New("missing required environment variables")

func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, err
	}

	var missing []string
	req := func(key, value string) {
		if strings.TrimSpace(value) == "" {
			missing = append(missing, key)
		}
	}

	req("APP_NAME", cfg.App.AppName)
	req("APP_ENV", cfg.App.Environment)
	req("HTTP_PORT", cfg.App.HTTPPort)
	req("SESSION_SECRET", cfg.Session.Secret)

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("%w: %s", errMissingRequiredEnv, strings.Join(missing, ", "))
	}

	if cfg.Auth.MinPasswordLen < 1 {
		cfg.Auth.MinPasswordLen = 1
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 168 * time.Hour
	}

	return cfg, nil
}
