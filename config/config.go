// Package config holds the simulator run configuration.
package config

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/log"
	"gopkg.in/yaml.v3"
)

// Config controls a single simulator run.
type Config struct {
	// Program is the path of the ELF or text image to execute.
	Program string `json:"program" yaml:"program"`

	// MaxInstructions bounds the number of executed instructions.
	// 0 means no limit.
	MaxInstructions uint64 `json:"max_instructions" yaml:"max_instructions"`

	// LogLevel is one of trace, debug, info, warn, error or crit.
	// Default: info.
	LogLevel string `json:"log_level" yaml:"log_level"`

	// EntryPoint overrides the program's entry point when non-zero.
	EntryPoint uint32 `json:"entry_point" yaml:"entry_point"`

	// StackPointer overrides the initial $sp when non-zero.
	StackPointer uint32 `json:"stack_pointer" yaml:"stack_pointer"`

	// Interactive starts the command shell instead of running to completion.
	Interactive bool `json:"interactive" yaml:"interactive"`
}

var logLevels = map[string]slog.Level{
	"trace": log.LevelTrace,
	"debug": log.LevelDebug,
	"info":  log.LevelInfo,
	"warn":  log.LevelWarn,
	"error": log.LevelError,
	"crit":  log.LevelCrit,
}

// Default returns a Config with default values.
func Default() *Config {
	return &Config{
		LogLevel: "info",
	}
}

// Load reads a Config from a YAML (.yaml, .yml) or JSON file. Fields not
// present in the file keep their default values.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if isYAML(path) {
		err = yaml.Unmarshal(data, cfg)
	} else {
		err = json.Unmarshal(data, cfg)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}

	return cfg, nil
}

// Save writes the Config to path, choosing the format from its extension.
func (c *Config) Save(path string) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration can drive a run.
func (c *Config) Validate() error {
	if c.Program == "" {
		return fmt.Errorf("program must be set")
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	if c.EntryPoint%4 != 0 {
		return fmt.Errorf("entry_point 0x%08x must be word aligned", c.EntryPoint)
	}
	if c.StackPointer%4 != 0 {
		return fmt.Errorf("stack_pointer 0x%08x must be word aligned", c.StackPointer)
	}
	return nil
}

// Level returns the slog level named by LogLevel.
func (c *Config) Level() (slog.Level, error) {
	lvl, ok := logLevels[strings.ToLower(c.LogLevel)]
	if !ok {
		return 0, fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	return lvl, nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
