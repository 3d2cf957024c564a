package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/mvc/pkg/cookie"
	"github.com/dmitrymomot/mvc/pkg/db"
	"github.com/dmitrymomot/mvc/pkg/logger"
	"github.com/dmitrymomot/mvc/pkg/mailer"
	"github.com/dmitrymomot/mvc/pkg/mailer/resend"
	"github.com/dmitrymomot/mvc/pkg/redis"
	"github.com/dmitrymomot/mvc/pkg/session"
)

// Errors.
var (
	ErrReadFile = errors.New("config: read file")
	ErrParse    = errors.New("config: parse")
)

// Config is the full application configuration.
type Config struct {
	App     AppConfig      `yaml:"app"`
	Server  ServerConfig   `yaml:"server"`
	DB      db.Config      `yaml:"db"`
	Redis   redis.Config   `yaml:"redis"`
	Cookie  cookie.Config  `yaml:"cookie"`
	Session session.Config `yaml:"session"`
	Mail    mailer.Config  `yaml:"mail"`
	Resend  resend.Config  `yaml:"resend"`
	Log     logger.Config  `yaml:"log"`
	Jobs    JobsConfig     `yaml:"jobs"`

	// Databases holds extra named connections. DB is registered as "default".
	Databases map[string]db.Config `yaml:"databases"`
}

// AppConfig holds dispatcher settings.
type AppConfig struct {
	Name    string `env:"APP_NAME" envDefault:"mvc" yaml:"name"`
	Home    string `env:"APP_HOME" envDefault:"/pages" yaml:"home"`
	Testing bool   `env:"APP_TESTING" yaml:"testing"`
	Debug   bool   `env:"APP_DEBUG" yaml:"debug"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `env:"SERVER_ADDR" envDefault:":8080" yaml:"addr"`
	ShutdownTimeout time.Duration `env:"SERVER_SHUTDOWN_TIMEOUT" envDefault:"30s" yaml:"shutdown_timeout"`
}

// JobsConfig holds background job settings.
type JobsConfig struct {
	MaxWorkers int `env:"JOBS_MAX_WORKERS" envDefault:"100" yaml:"max_workers"`
	// Schedules maps a URL to a cron expression.
	Schedules map[string]string `yaml:"schedules"`
}

// noDefaults makes env skip envDefault so values from the file survive.
const noDefaults = "envDefaultOff"

// Load builds a Config from defaults, then the YAML file at path (skipped
// when path is empty), then environment variables.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrReadFile, path, err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("%w %s: %w", ErrParse, path, err)
		}
	}

	if err := env.ParseWithOptions(cfg, env.Options{DefaultValueTagName: noDefaults}); err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	return cfg, nil
}

// MustLoad is Load that panics on error.
func MustLoad(path string) *Config {
	cfg, err := Load(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

// Connections returns every configured database by name, DB included as
// db.DefaultConnection when enabled.
func (c *Config) Connections() map[string]db.Config {
	out := make(map[string]db.Config, len(c.Databases)+1)
	for name, cfg := range c.Databases {
		out[name] = cfg
	}
	if c.DB.Enabled() {
		out[db.DefaultConnection] = c.DB
	}
	return out
}
