package mcp

import "github.com/1broseidon/winsnap/internal/ipc"

// SnapWindowInput is the input for the snap_window tool.
type SnapWindowInput struct {
	Action string `json:"action" jsonschema:"One of: left, right, maximize, reset, next-display"`
}

// SnapWindowOutput is the output for the snap_window tool.
type SnapWindowOutput struct {
	Action     string        `json:"action"`
	Status     string        `json:"status"`
	Reason     string        `json:"reason,omitempty"`
	Display    string        `json:"display,omitempty"`
	Frame      ipc.FrameInfo `json:"frame"`
	DurationMS int64         `json:"duration_ms"`
}

// ListDisplaysInput is the input for the list_displays tool.
type ListDisplaysInput struct{}

// ListDisplaysOutput is the output for the list_displays tool.
type ListDisplaysOutput struct {
	PrimaryHeight float64           `json:"primary_height"`
	Displays      []ipc.DisplayInfo `json:"displays"`
}

// DaemonStatusInput is the input for the daemon_status tool.
type DaemonStatusInput struct{}

// DaemonStatusOutput is the output for the daemon_status tool.
type DaemonStatusOutput struct {
	Running       bool    `json:"running"`
	UptimeSeconds int64   `json:"uptime_seconds"`
	Platform      string  `json:"platform"`
	ListenerState string  `json:"listener_state"`
	ResetScale    float64 `json:"reset_scale"`
	DisplayCount  int     `json:"display_count"`
	Applied       int     `json:"applied"`
	Skipped       int     `json:"skipped"`
	Failed        int     `json:"failed"`
	LastAction    string  `json:"last_action,omitempty"`
}
