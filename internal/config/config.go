// config — загрузка конфигурации клиента.
//
// Источники (по убыванию приоритета):
//  1. явный путь --config;
//  2. CONFIG_PATH;
//  3. ./local.yaml;
//  4. только ENV (cleanenv).
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env     string        `yaml:"env" env:"ENV" env-default:"local"`
	API     APIConfig     `yaml:"api"`
	Session SessionConfig `yaml:"session"`
	Storage StorageConfig `yaml:"storage"`
}

// APIConfig — адрес и таймауты FitGen API.
type APIConfig struct {
	// BaseURL — базовый адрес API; зашитый дефолт используется,
	// если ни файл, ни FITGEN_API_URL его не задали.
	BaseURL string        `yaml:"base_url" env:"FITGEN_API_URL" env-default:"https://api.fitgen.app/api/v1"`
	Timeout time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"15s"`
}

// SessionConfig — параметры фонового обновления токена.
type SessionConfig struct {
	CheckInterval time.Duration `yaml:"check_interval" env:"SESSION_CHECK_INTERVAL" env-default:"5m"`
	MaxRetries    int           `yaml:"max_retries" env:"SESSION_MAX_RETRIES" env-default:"3"`
	RetryStep     time.Duration `yaml:"retry_step" env:"SESSION_RETRY_STEP" env-default:"2s"`
}

// StorageConfig — выбор бэкенда хранения сессии.
//
// Backend: securefile (зашифрованный файл, дефолт), file (обычный JSON),
// memory (эфемерная сессия), redis (общий профиль).
type StorageConfig struct {
	Backend  string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"securefile"`
	Path     string `yaml:"path" env:"STORAGE_PATH"`
	RedisURL string `yaml:"redis_url" env:"REDIS_URL"`
}

// MustLoad — паника при ошибке загрузки.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}

	return cfg
}

func Load(path string) (*Config, error) {
	var cfg Config

	tryRead := func(p string) (*Config, error) {
		if p == "" {
			return nil, fmt.Errorf("empty config path")
		}

		if _, err := os.Stat(p); err != nil {
			return nil, fmt.Errorf("config file %q stat failed: %w", p, err)
		}

		if err := cleanenv.ReadConfig(p, &cfg); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 1) --config
	if path != "" {
		return tryRead(path)
	}

	// 2) CONFIG_PATH
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		return tryRead(envPath)
	}

	// 3) ./local.yaml
	if _, err := os.Stat("local.yaml"); err == nil {
		if err := cleanenv.ReadConfig("local.yaml", &cfg); err != nil {
			return nil, fmt.Errorf("failed to read local.yaml: %w", err)
		}

		if err := cleanenv.ReadEnv(&cfg); err != nil {
			return nil, fmt.Errorf("failed to overlay env: %w", err)
		}

		return &cfg, nil
	}

	// 4) только ENV
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config not found: provide --config, CONFIG_PATH, local.yaml or env vars: %w", err)
	}

	return &cfg, nil
}
