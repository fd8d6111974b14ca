package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// IncludeList supports either:
//
//	include: "/path/to/file.yaml"
//
// or:
//
//	include:
//	  - "/path/to/file.yaml"
//	  - "/path/to/dir"
type IncludeList []string

func (l *IncludeList) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case 0:
		// Not present.
		*l = nil
		return nil
	case yaml.ScalarNode:
		if value.Tag != "!!str" {
			return fmt.Errorf("include must be a string or list of strings")
		}
		*l = []string{value.Value}
		return nil
	case yaml.SequenceNode:
		out := make([]string, 0, len(value.Content))
		for _, item := range value.Content {
			if item.Kind != yaml.ScalarNode || item.Tag != "!!str" {
				return fmt.Errorf("include entries must be strings")
			}
			out = append(out, item.Value)
		}
		*l = out
		return nil
	default:
		return fmt.Errorf("include must be a string or list of strings")
	}
}

// RawConfig mirrors Config with pointer fields so unset keys can be told
// apart from zero values while merging files.
type RawConfig struct {
	Include              IncludeList `yaml:"include"`
	ResetScale           *float64    `yaml:"reset_scale"`
	LogLevel             *string     `yaml:"log_level"`
	Notifications        *bool       `yaml:"notifications"`
	NotifyOnFailure      *bool       `yaml:"notify_on_failure"`
	Display              *string     `yaml:"display"`
	XAuthority           *string     `yaml:"xauthority"`
	TopologyPollInterval *int        `yaml:"topology_poll_interval"`
}

func (c RawConfig) merge(overlay RawConfig) RawConfig {
	out := c
	// Include is only used during loading; never merge it into the effective config.
	out.Include = nil

	if overlay.ResetScale != nil {
		out.ResetScale = overlay.ResetScale
	}
	if overlay.LogLevel != nil {
		out.LogLevel = overlay.LogLevel
	}
	if overlay.Notifications != nil {
		out.Notifications = overlay.Notifications
	}
	if overlay.NotifyOnFailure != nil {
		out.NotifyOnFailure = overlay.NotifyOnFailure
	}
	if overlay.Display != nil {
		out.Display = overlay.Display
	}
	if overlay.XAuthority != nil {
		out.XAuthority = overlay.XAuthority
	}
	if overlay.TopologyPollInterval != nil {
		out.TopologyPollInterval = overlay.TopologyPollInterval
	}
	return out
}
