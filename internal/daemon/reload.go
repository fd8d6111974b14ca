package daemon

import (
	"log/slog"
	"sync"

	"github.com/1broseidon/winsnap/internal/config"
)

// ScaleSetter receives the reset scale.
type ScaleSetter interface {
	SetResetScale(scale float64)
}

// NotifySetter receives notification toggles.
type NotifySetter interface {
	SetEnabled(enabled, onFailure bool)
}

// ConfigSync owns the live configuration and pushes reloads into running
// components. A failed reload keeps the previous configuration.
type ConfigSync struct {
	load     func() (*config.Config, error)
	snapper  ScaleSetter
	notifier NotifySetter
	level    *slog.LevelVar
	logger   *slog.Logger

	mu      sync.Mutex
	current *config.Config
}

// NewConfigSync applies initial to the components and returns the sync.
// notifier and level may be nil.
func NewConfigSync(initial *config.Config, load func() (*config.Config, error), snapper ScaleSetter, notifier NotifySetter, level *slog.LevelVar, logger *slog.Logger) *ConfigSync {
	if logger == nil {
		logger = slog.Default()
	}
	c := &ConfigSync{
		load:     load,
		snapper:  snapper,
		notifier: notifier,
		level:    level,
		logger:   logger,
	}
	c.apply(initial)
	return c
}

// Current returns the active configuration.
func (c *ConfigSync) Current() *config.Config {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Reload re-reads configuration and applies it.
func (c *ConfigSync) Reload() error {
	cfg, err := c.load()
	if err != nil {
		c.logger.Error("config reload failed; keeping previous config", "error", err)
		return err
	}

	prev := c.Current()
	c.apply(cfg)

	if prev != nil && prev.Display != cfg.Display {
		c.logger.Warn("display change requires a restart", "display", cfg.Display)
	}
	if prev != nil && prev.TopologyPollInterval != cfg.TopologyPollInterval {
		c.logger.Warn("topology_poll_interval change requires a restart")
	}
	c.logger.Info("config reloaded",
		"reset_scale", cfg.ResetScale,
		"log_level", cfg.LogLevel,
		"notifications", cfg.Notifications)
	return nil
}

func (c *ConfigSync) apply(cfg *config.Config) {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	c.mu.Lock()
	c.current = cfg
	c.mu.Unlock()

	if c.level != nil {
		c.level.Set(cfg.SlogLevel())
	}
	if c.snapper != nil {
		c.snapper.SetResetScale(cfg.ResetScale)
	}
	if c.notifier != nil {
		c.notifier.SetEnabled(cfg.Notifications, cfg.NotifyOnFailure)
	}
}
