package resource

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"github.com/hupe1980/prealloc"
	"gopkg.in/yaml.v3"
)

// Config holds resource limits.
//
// It can be loaded from YAML:
//
//	memory_limit_bytes: 268435456
//	alloc_bytes_per_sec: 67108864
//	tag_limits:
//	  conn.keys: 1048576
//	  stmt.tables: 4194304
type Config struct {
	// MemoryLimitBytes is the hard limit for all overflow regions together.
	// If 0, no hard limit is enforced (only tracking).
	MemoryLimitBytes int64 `yaml:"memory_limit_bytes"`

	// TagLimits caps the bytes granted under individual tags.
	// Tags without an entry (or with 0) are only tracked.
	TagLimits map[prealloc.Tag]int64 `yaml:"tag_limits"`

	// AllocBytesPerSec is the maximum rate at which bytes are granted.
	// A single grant larger than this is always refused. If 0, unlimited.
	AllocBytesPerSec int64 `yaml:"alloc_bytes_per_sec"`
}

// Validate reports configuration errors.
func (c Config) Validate() error {
	var errs []error
	if c.MemoryLimitBytes < 0 {
		errs = append(errs, fmt.Errorf("memory_limit_bytes must not be negative, got %d", c.MemoryLimitBytes))
	}
	if c.AllocBytesPerSec < 0 {
		errs = append(errs, fmt.Errorf("alloc_bytes_per_sec must not be negative, got %d", c.AllocBytesPerSec))
	}
	for tag, limit := range c.TagLimits {
		if limit < 0 {
			errs = append(errs, fmt.Errorf("tag_limits[%q] must not be negative, got %d", tag, limit))
		}
	}
	return errors.Join(errs...)
}

// ParseConfig decodes a YAML document into a Config and validates it.
// Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil {
		return Config{}, fmt.Errorf("resource: decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("resource: invalid config: %w", err)
	}
	return cfg, nil
}

// LoadConfig reads and parses a YAML config file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("resource: read config: %w", err)
	}
	return ParseConfig(data)
}
