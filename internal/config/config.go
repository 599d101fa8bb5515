// internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

const DefaultPath = "config.yml"

type Config struct {
	Auth    ServiceConfig `yaml:"auth"`
	Tasks   ServiceConfig `yaml:"tasks"`
	Session SessionConfig `yaml:"session"`
	Clock   ClockConfig   `yaml:"clock"`
	Logging LoggingConfig `yaml:"logging"`
	Stub    StubConfig    `yaml:"stub"`
}

type ServiceConfig struct {
	BaseURL string `yaml:"base_url"`
}

type SessionConfig struct {
	Backend string `yaml:"backend"` // "sqlite" или "memory"
	Path    string `yaml:"path"`
}

type ClockConfig struct {
	Interval time.Duration `yaml:"interval"`
	Location string        `yaml:"location"`
}

type LoggingConfig struct {
	Development bool   `yaml:"development"`
	Level       string `yaml:"level"`
}

type StubConfig struct {
	AuthAddr   string           `yaml:"auth_addr"`
	TasksAddr  string           `yaml:"tasks_addr"`
	JWTSecret  string           `yaml:"jwt_secret"`
	TokenTTL   time.Duration    `yaml:"token_ttl"`
	RateLimit  int              `yaml:"rate_limit"`
	Repository RepositoryConfig `yaml:"repository"`
	Database   DatabaseConfig   `yaml:"database"`
}

type RepositoryConfig struct {
	Type string `yaml:"type"` // "postgres" или "inmemory"
}

type DatabaseConfig struct {
	URL            string        `yaml:"url"`
	MaxConnections int32         `yaml:"max_connections"`
	MinConnections int32         `yaml:"min_connections"`
	IdleTimeout    time.Duration `yaml:"idle_timeout"`
}

func Default() *Config {
	return &Config{
		Auth:  ServiceConfig{BaseURL: "http://localhost:8081/auth"},
		Tasks: ServiceConfig{BaseURL: "http://localhost:8082/tasks"},
		Session: SessionConfig{
			Backend: "sqlite",
			Path:    defaultSessionPath(),
		},
		Clock: ClockConfig{
			Interval: time.Second,
			Location: "Asia/Kolkata",
		},
		Logging: LoggingConfig{Level: "warn"},
		Stub: StubConfig{
			AuthAddr:   ":8081",
			TasksAddr:  ":8082",
			TokenTTL:   10 * time.Hour,
			RateLimit:  100,
			Repository: RepositoryConfig{Type: "inmemory"},
			Database: DatabaseConfig{
				MaxConnections: 10,
				MinConnections: 2,
				IdleTimeout:    5 * time.Minute,
			},
		},
	}
}

// Load читает YAML поверх значений по умолчанию. Отсутствующий файл не ошибка.
func Load(path string) (*Config, error) {
	cfg := Default()

	file, err := os.Open(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return nil, fmt.Errorf("не могу открыть %s: %w", path, err)
	default:
		defer file.Close()
		decoder := yaml.NewDecoder(file)
		if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("ошибка парсинга %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("AUTH_API_URL"); v != "" {
		c.Auth.BaseURL = v
	}
	if v := os.Getenv("TASKS_API_URL"); v != "" {
		c.Tasks.BaseURL = v
	}
	if v := os.Getenv("TASKCLIENT_SESSION_PATH"); v != "" {
		c.Session.Path = v
	}
	if v := os.Getenv("STUB_JWT_SECRET"); v != "" {
		c.Stub.JWTSecret = v
	}
	if v := os.Getenv("STUB_DATABASE_URL"); v != "" {
		c.Stub.Database.URL = v
	}
}

func (c *Config) Validate() error {
	if c.Auth.BaseURL == "" {
		return fmt.Errorf("не задан auth.base_url")
	}
	if c.Tasks.BaseURL == "" {
		return fmt.Errorf("не задан tasks.base_url")
	}
	switch c.Session.Backend {
	case "sqlite":
		if c.Session.Path == "" {
			return fmt.Errorf("не задан session.path для sqlite")
		}
	case "memory":
	default:
		return fmt.Errorf("неизвестный session.backend %q", c.Session.Backend)
	}
	if c.Clock.Interval <= 0 {
		c.Clock.Interval = time.Second
	}
	return nil
}

func defaultSessionPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "taskclient-session.db"
	}
	return filepath.Join(dir, "taskclient", "session.db")
}
