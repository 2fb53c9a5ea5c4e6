package config

import (
	"os"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
	"gopkg.in/yaml.v3"

	"github.com/On-Jun9/PhotoTidy/pkg/types"
)

type Config struct {
	Source     string            `yaml:"source"`
	Target     string            `yaml:"target"`
	Exclude    []string          `yaml:"exclude"`
	Dedup      types.DedupMethod `yaml:"dedup"`
	KeepGoing  bool              `yaml:"keep_going"`
	DryRun     bool              `yaml:"dry_run"`
	HashVerify bool              `yaml:"hash_verify"`
	LogFile    string            `yaml:"log_file"`
	LogJSON    bool              `yaml:"log_json"`
	LogLevel   string            `yaml:"log_level"`
	Progress   bool              `yaml:"progress"`
}

// DefaultConfig copies every file, stops at the first failure and logs to the
// console only.
func DefaultConfig() *Config {
	return &Config{
		Exclude:    nil,
		Dedup:      types.DedupMethodNone,
		KeepGoing:  false,
		DryRun:     false,
		HashVerify: false,
		LogFile:    "",
		LogJSON:    false,
		LogLevel:   zerolog.InfoLevel.String(),
		Progress:   false,
	}
}

func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Errorf("reading config %q: %w", path, err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, errors.Errorf("parsing config %q: %w", path, err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Source == "" {
		return &ValidationError{Field: "source", Message: "source directory is required"}
	}
	if c.Target == "" {
		return &ValidationError{Field: "target", Message: "target directory is required"}
	}

	switch c.Dedup {
	case types.DedupMethodNone, types.DedupMethodNameSize, types.DedupMethodHash:
	default:
		return &ValidationError{Field: "dedup", Message: "unknown method " + string(c.Dedup) + " (want name-size or hash)"}
	}

	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	if c.LogLevel == "" {
		c.LogLevel = zerolog.InfoLevel.String()
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return &ValidationError{Field: "log_level", Message: err.Error()}
	}

	return nil
}

// Level returns the parsed log level. Call after Validate.
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || c.LogLevel == "" {
		return zerolog.InfoLevel
	}
	return level
}

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Field + ": " + e.Message
}
