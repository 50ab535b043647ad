package config

import (
	"fmt"
	"net"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "HOOKBRIDGE_"

// Config holds the recognized options. Everything has a working default so
// the bridge runs with no environment at all: loopback bind, port 8080,
// event log in the working directory, last 100 events kept.
type Config struct {
	Host        string `koanf:"host" validate:"required"`
	Port        int    `koanf:"port" validate:"required,min=1,max=65535"`
	StoragePath string `koanf:"storage_path" validate:"required"`
	Capacity    int    `koanf:"capacity" validate:"required,min=1"`
}

// Load reads configuration from HOOKBRIDGE_* environment variables over the
// defaults and validates the result.
func Load() (*Config, error) {
	k := koanf.New(".")
	err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil)
	if err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	cfg := &Config{
		Host:        "127.0.0.1",
		Port:        8080,
		StoragePath: "github_events.json",
		Capacity:    100,
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Addr returns the host:port the server binds to.
func (c *Config) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
