package config

import (
	"fmt"
	"strings"
)

// Explain returns the effective value at the given key and its source.
//
// Supported keys:
//
//	reset_scale
//	log_level
//	notifications
//	notify_on_failure
//	display
//	xauthority
//	topology_poll_interval
func Explain(res *LoadResult, path string) (any, Source, error) {
	if res == nil || res.Config == nil {
		return nil, Source{}, fmt.Errorf("no config loaded")
	}
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, Source{}, fmt.Errorf("path is empty")
	}

	value, err := lookupValue(res.Config, path)
	if err != nil {
		return nil, Source{}, err
	}

	if src, ok := res.Sources[path]; ok {
		return value, src, nil
	}
	return value, Source{Kind: SourceDefault, Name: "defaults"}, nil
}

// Keys lists every key Explain understands.
func Keys() []string {
	return []string{
		"reset_scale",
		"log_level",
		"notifications",
		"notify_on_failure",
		"display",
		"xauthority",
		"topology_poll_interval",
	}
}

func lookupValue(cfg *Config, path string) (any, error) {
	switch path {
	case "reset_scale":
		return cfg.ResetScale, nil
	case "log_level":
		return cfg.LogLevel, nil
	case "notifications":
		return cfg.Notifications, nil
	case "notify_on_failure":
		return cfg.NotifyOnFailure, nil
	case "display":
		return cfg.Display, nil
	case "xauthority":
		return cfg.XAuthority, nil
	case "topology_poll_interval":
		return cfg.TopologyPollInterval, nil
	default:
		return nil, fmt.Errorf("unknown path: %s (expected one of: %s)", path, strings.Join(Keys(), ", "))
	}
}
