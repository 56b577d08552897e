// Package config loads process configuration from an optional YAML file with
// environment variable overrides (GUARDRAILS_ prefix).
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"

	"github.com/studyhall/guardrails"
)

// Config is the full process configuration.
type Config struct {
	Redis   RedisConfig            `mapstructure:"redis"`
	Limits  map[string]LimitConfig `mapstructure:"limits"`
	Content ContentConfig          `mapstructure:"content"`
}

// RedisConfig describes the shared admission store connection.
type RedisConfig struct {
	Addr        string        `mapstructure:"addr"`
	Password    string        `mapstructure:"password"`
	DB          int           `mapstructure:"db"`
	DialTimeout time.Duration `mapstructure:"dial_timeout"`
	ReadTimeout time.Duration `mapstructure:"read_timeout"`
}

// Options converts the section into client options for the store.
func (r RedisConfig) Options() *redis.Options {
	return &redis.Options{
		Addr:        r.Addr,
		Password:    r.Password,
		DB:          r.DB,
		DialTimeout: r.DialTimeout,
		ReadTimeout: r.ReadTimeout,
	}
}

// LimitConfig is a named admission policy.
type LimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowSeconds int `mapstructure:"window_seconds"`
}

// ContentConfig holds the sandboxed content settings.
type ContentConfig struct {
	Root string `mapstructure:"root"`
}

// Load reads configuration from path (skipped when empty) and the environment.
// Environment variables use the GUARDRAILS_ prefix with underscores, e.g.
// GUARDRAILS_REDIS_ADDR.
func Load(path string) (*Config, error) {
	v := viper.New()

	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.dial_timeout", "5s")
	v.SetDefault("redis.read_timeout", "3s")
	v.SetDefault("content.root", "content")

	v.SetEnvPrefix("GUARDRAILS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %v: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// PolicyFor returns the named admission policy, if configured.
func (c *Config) PolicyFor(name string) (guardrails.Policy, bool) {
	limit, ok := c.Limits[name]
	if !ok {
		return guardrails.Policy{}, false
	}
	return guardrails.Policy{
		MaxRequests:   limit.MaxRequests,
		WindowSeconds: limit.WindowSeconds,
	}, true
}
