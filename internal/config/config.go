package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

const (
	BackendMemory = "memory"
	BackendDapr   = "dapr"
)

type Config struct {
	Service   ServiceConfig   `koanf:"service"`
	Server    ServerConfig    `koanf:"server"`
	Storage   StorageConfig   `koanf:"storage"`
	Cache     CacheConfig     `koanf:"cache"`
	Log       LogConfig       `koanf:"log"`
	Telemetry TelemetryConfig `koanf:"telemetry"`
}

type ServiceConfig struct {
	Name    string `koanf:"name"`
	Version string `koanf:"version"`
}

type ServerConfig struct {
	Port            string        `koanf:"port"`
	GinMode         string        `koanf:"gin_mode"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

type StorageConfig struct {
	// Backend is "memory" or "dapr".
	Backend   string `koanf:"backend"`
	DaprStore string `koanf:"dapr_store"`
}

type CacheConfig struct {
	// ListTTL of 0 turns list caching off.
	ListTTL       time.Duration `koanf:"list_ttl"`
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

type LogConfig struct {
	Level string `koanf:"level"`
}

type TelemetryConfig struct {
	Enabled     bool `koanf:"enabled"`
	PrettyPrint bool `koanf:"pretty_print"`
}

func defaultConfig() *Config {
	return &Config{
		Service: ServiceConfig{
			Name:    "intake-api",
			Version: "1.0.0",
		},
		Server: ServerConfig{
			Port:            "8080",
			GinMode:         "",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    15 * time.Second,
			ShutdownTimeout: 30 * time.Second,
		},
		Storage: StorageConfig{
			Backend:   BackendMemory,
			DaprStore: "statestore",
		},
		Cache: CacheConfig{
			ListTTL:       30 * time.Second,
			SweepInterval: time.Minute,
		},
		Log: LogConfig{
			Level: "info",
		},
		Telemetry: TelemetryConfig{
			Enabled:     true,
			PrettyPrint: false,
		},
	}
}

// Default returns the built-in configuration without reading any source.
func Default() *Config {
	return defaultConfig()
}

func (c *Config) Validate() error {
	var errs []error

	if c.Service.Name == "" {
		errs = append(errs, errors.New("service.name must not be empty"))
	}
	if c.Server.Port == "" {
		errs = append(errs, errors.New("server.port must not be empty"))
	}
	switch c.Storage.Backend {
	case BackendMemory:
	case BackendDapr:
		if c.Storage.DaprStore == "" {
			errs = append(errs, errors.New("storage.dapr_store is required for the dapr backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be %q or %q, got %q", BackendMemory, BackendDapr, c.Storage.Backend))
	}
	if c.Cache.ListTTL < 0 {
		errs = append(errs, errors.New("cache.list_ttl must not be negative"))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		errs = append(errs, fmt.Errorf("log.level: %w", err))
	}
	switch strings.ToLower(c.Server.GinMode) {
	case "", "debug", "release", "test":
	default:
		errs = append(errs, fmt.Errorf("server.gin_mode must be debug, release or test, got %q", c.Server.GinMode))
	}

	return errors.Join(errs...)
}
