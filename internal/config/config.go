package config

import (
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/1broseidon/winsnap/internal/placement"
)

// MaxResetScale bounds reset_scale so a reset window stays visible.
const MaxResetScale = 10.0

// Config holds the application configuration.
type Config struct {
	ResetScale           float64 `yaml:"reset_scale"`
	LogLevel             string  `yaml:"log_level"`
	Notifications        bool    `yaml:"notifications"`
	NotifyOnFailure      bool    `yaml:"notify_on_failure"`
	Display              string  `yaml:"display,omitempty"`
	XAuthority           string  `yaml:"xauthority,omitempty"`
	TopologyPollInterval int     `yaml:"topology_poll_interval"`
}

func DefaultConfig() *Config {
	return &Config{
		ResetScale:           placement.DefaultResetScale,
		LogLevel:             "info",
		Notifications:        true,
		NotifyOnFailure:      false,
		TopologyPollInterval: 0,
	}
}

// SlogLevel maps log_level onto a slog level.
func (c *Config) SlogLevel() slog.Level {
	switch c.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// PollInterval returns the topology watcher period; zero disables the watcher.
func (c *Config) PollInterval() time.Duration {
	if c.TopologyPollInterval <= 0 {
		return 0
	}
	return time.Duration(c.TopologyPollInterval) * time.Second
}

// Validate performs strict validation of the effective configuration.
func (c *Config) Validate() error {
	if math.IsNaN(c.ResetScale) || c.ResetScale <= 1 || c.ResetScale > MaxResetScale {
		return &ValidationError{Path: "reset_scale", Err: fmt.Errorf("reset_scale must be > 1 and <= %g", MaxResetScale)}
	}
	if c.LogLevel != "debug" && c.LogLevel != "info" && c.LogLevel != "warning" && c.LogLevel != "error" {
		return &ValidationError{Path: "log_level", Err: fmt.Errorf("log_level must be one of: debug, info, warning, error")}
	}
	if c.TopologyPollInterval < 0 {
		return &ValidationError{Path: "topology_poll_interval", Err: fmt.Errorf("topology_poll_interval must be >= 0")}
	}
	if c.NotifyOnFailure && !c.Notifications {
		return &ValidationError{Path: "notify_on_failure", Err: fmt.Errorf("notify_on_failure requires notifications: true")}
	}
	return nil
}
