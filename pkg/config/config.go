// Package config holds the process-wide image configuration.
//
// The configuration is read on every validation check, so changes made with
// [Configure] or [Update] take effect for images mounted afterwards and for
// any later attach of an existing image.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

// EnvEnableWarnings overrides [Config.EnableWarnings] when set to a boolean.
const EnvEnableWarnings = "DRIFTIMG_ENABLE_WARNINGS"

// Config is the global image configuration.
type Config struct {
	// EnableWarnings turns on developer diagnostics for missing src or alt.
	EnableWarnings bool `yaml:"enableWarnings"`
}

var (
	mu      sync.RWMutex
	current Config
)

// Configure replaces the global configuration.
func Configure(cfg Config) {
	mu.Lock()
	current = cfg
	mu.Unlock()
}

// Update applies fn to a copy of the current configuration and stores the result.
//
//	config.Update(func(c *config.Config) { c.EnableWarnings = true })
func Update(fn func(*Config)) {
	if fn == nil {
		return
	}
	mu.Lock()
	next := current
	fn(&next)
	current = next
	mu.Unlock()
}

// Get returns the current configuration.
func Get() Config {
	mu.RLock()
	defer mu.RUnlock()
	return current
}

// Reset restores the defaults ({EnableWarnings: false}).
func Reset() {
	Configure(Config{})
}

// Parse decodes a YAML document into a Config.
func Parse(data []byte) (Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse image config: %w", err)
	}
	return cfg, nil
}

// LoadFile reads a YAML configuration file. A missing file yields the
// defaults without error.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Config{}, nil
		}
		return Config{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(data)
}

// FromEnv applies environment overrides to cfg and returns the result.
// Unparseable values are reported as an error and leave cfg unchanged.
func FromEnv(cfg Config) (Config, error) {
	raw, ok := os.LookupEnv(EnvEnableWarnings)
	if !ok || strings.TrimSpace(raw) == "" {
		return cfg, nil
	}
	v, err := strconv.ParseBool(strings.TrimSpace(raw))
	if err != nil {
		return cfg, fmt.Errorf("invalid %s=%q: %w", EnvEnableWarnings, raw, err)
	}
	cfg.EnableWarnings = v
	return cfg, nil
}
