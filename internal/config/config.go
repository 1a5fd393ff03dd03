package config

import (
	"fmt"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
	"github.com/tgienger/pm/internal/apperrors"
)

const (
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Env     string        `env:"PM_ENV" env-default:"local"`
	Storage StorageConfig `env-prefix:"PM_"`
	Redis   RedisConfig   `env-prefix:"PM_REDIS_"`
	Auth    AuthConfig    `env-prefix:"PM_AUTH_"`
	Log     LogConfig     `env-prefix:"PM_LOG_"`
}

type StorageConfig struct {
	Backend string `env:"STORAGE_BACKEND" env-default:"sqlite"`
	// DBPath overrides the XDG data directory location when set.
	DBPath string `env:"DB_PATH"`
}

type RedisConfig struct {
	Addr     string        `env:"ADDR" env-default:"localhost:6379"`
	Password string        `env:"PASSWORD"`
	DB       int           `env:"DB" env-default:"0"`
	Prefix   string        `env:"PREFIX" env-default:"pm:"`
	Timeout  time.Duration `env:"TIMEOUT" env-default:"2s"`
}

type AuthConfig struct {
	// Latency is the simulated round trip of the account service.
	Latency time.Duration `env:"LATENCY" env-default:"1s"`
}

type LogConfig struct {
	Level    string `env:"LEVEL" env-default:"info"`
	Path     string `env:"PATH"`
	Disabled bool   `env:"DISABLED" env-default:"false"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	const op = "config.Load"

	// .env is optional
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	switch cfg.Storage.Backend {
	case BackendSQLite, BackendMemory, BackendRedis:
	default:
		return nil, fmt.Errorf("%s: %w: %q", op, apperrors.ErrUnknownBackend, cfg.Storage.Backend)
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic("failed to read config from environment: " + err.Error())
	}
	return cfg
}
