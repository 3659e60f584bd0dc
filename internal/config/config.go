// Package config loads smartinfo settings from a YAML file, the environment
// and command-line flags.
package config

import (
	"fmt"
	"time"
)

// Config is the full runtime configuration.
type Config struct {
	Smartctl SmartctlConfig `yaml:"smartctl" mapstructure:"smartctl"`
	Output   OutputConfig   `yaml:"output" mapstructure:"output"`
	Log      LogConfig      `yaml:"log" mapstructure:"log"`
}

// SmartctlConfig controls how smartctl is found and run.
type SmartctlConfig struct {
	Path    string        `yaml:"path" mapstructure:"path"`       // explicit binary, empty = search PATH
	Timeout time.Duration `yaml:"timeout" mapstructure:"timeout"` // 0 = no timeout
}

// OutputConfig controls rendering.
type OutputConfig struct {
	Color bool `yaml:"color" mapstructure:"color"`
}

// LogConfig controls the logrus logger.
type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`             // debug, info, warn, error, fatal
	Format     string `yaml:"format" mapstructure:"format"`           // text, json
	Output     string `yaml:"output" mapstructure:"output"`           // stdout, stderr, file
	FilePath   string `yaml:"file_path" mapstructure:"file_path"`     // used when Output is file
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`       // MB
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"` // rotated files kept
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`         // days
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Caller     bool   `yaml:"caller" mapstructure:"caller"`
}

// Validate checks values the loader cannot default away.
func (c *Config) Validate() error {
	if c.Smartctl.Timeout < 0 {
		return fmt.Errorf("smartctl.timeout must not be negative, got %s", c.Smartctl.Timeout)
	}
	if c.Log.Output == "file" && c.Log.FilePath == "" {
		return fmt.Errorf("log.file_path is required when log.output is file")
	}
	return nil
}
