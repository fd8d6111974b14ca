package ipc

import (
	"encoding/json"
	"fmt"

	"github.com/1broseidon/winsnap/internal/geometry"
	"github.com/1broseidon/winsnap/internal/hotkeys"
	"github.com/1broseidon/winsnap/internal/platform"
	"github.com/1broseidon/winsnap/internal/snapping"
)

// CommandType represents different IPC command types
type CommandType string

const (
	CommandSnap        CommandType = "SNAP"
	CommandReload      CommandType = "RELOAD"
	CommandGetStatus   CommandType = "GET_STATUS"
	CommandGetDisplays CommandType = "GET_DISPLAYS"
	CommandGetBindings CommandType = "GET_BINDINGS"
)

// Request represents an IPC request from client to server
type Request struct {
	Command CommandType     `json:"command"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Response represents an IPC response from server to client
type Response struct {
	Status string          `json:"status"` // "OK" or "ERROR"
	Data   json.RawMessage `json:"data,omitempty"`
	Error  string          `json:"error,omitempty"`
}

// SnapPayload is the payload for SNAP.
type SnapPayload struct {
	Action string `json:"action"`
}

// FrameInfo is a rectangle on the wire.
type FrameInfo struct {
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	Width      float64 `json:"width"`
	Height     float64 `json:"height"`
	Convention string  `json:"convention"`
}

// SnapData is the outcome of one action.
type SnapData struct {
	Action     string    `json:"action"`
	Status     string    `json:"status"`
	Reason     string    `json:"reason,omitempty"`
	Display    string    `json:"display,omitempty"`
	Frame      FrameInfo `json:"frame"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
}

// StatusData represents the data returned by GET_STATUS
type StatusData struct {
	DaemonRunning bool      `json:"daemon_running"`
	UptimeSeconds int64     `json:"uptime_seconds"`
	Platform      string    `json:"platform"`
	ListenerState string    `json:"listener_state"`
	ResetScale    float64   `json:"reset_scale"`
	DisplayCount  int       `json:"display_count"`
	Applied       int       `json:"applied"`
	Skipped       int       `json:"skipped"`
	Failed        int       `json:"failed"`
	LastAction    *SnapData `json:"last_action,omitempty"`
}

// DisplayInfo represents information about a single display.
type DisplayInfo struct {
	ID      int       `json:"id"`
	Name    string    `json:"name"`
	Index   int       `json:"index"`
	Primary bool      `json:"primary"`
	Bounds  FrameInfo `json:"bounds"`
	Usable  FrameInfo `json:"usable"`
}

// DisplaysData represents the data returned by GET_DISPLAYS
type DisplaysData struct {
	PrimaryHeight float64       `json:"primary_height"`
	Displays      []DisplayInfo `json:"displays"`
}

// BindingInfo is one hotkey chord.
type BindingInfo struct {
	Chord  string `json:"chord"`
	Action string `json:"action"`
}

// BindingsData represents the data returned by GET_BINDINGS
type BindingsData struct {
	Bindings []BindingInfo `json:"bindings"`
}

func frameInfo(f geometry.Frame) FrameInfo {
	return FrameInfo{
		X:          f.X,
		Y:          f.Y,
		Width:      f.Width,
		Height:     f.Height,
		Convention: f.Convention.String(),
	}
}

// SnapDataFromOutcome converts an action outcome for the wire.
func SnapDataFromOutcome(o snapping.Outcome) SnapData {
	data := SnapData{
		Action:     o.Action.String(),
		Status:     o.Status.String(),
		Reason:     o.Reason,
		Display:    o.Display,
		Frame:      frameInfo(o.Frame),
		DurationMS: o.Duration.Milliseconds(),
	}
	if o.Err != nil {
		data.Error = o.Err.Error()
	}
	return data
}

// DisplayInfoFrom converts a display for the wire.
func DisplayInfoFrom(d platform.Display) DisplayInfo {
	return DisplayInfo{
		ID:      d.ID,
		Name:    d.Name,
		Index:   d.Index,
		Primary: d.Primary,
		Bounds:  frameInfo(d.Bounds),
		Usable:  frameInfo(d.Usable),
	}
}

// BindingInfoFrom converts a binding for the wire.
func BindingInfoFrom(b hotkeys.Binding) BindingInfo {
	return BindingInfo{
		Chord:  b.String(),
		Action: b.Action.String(),
	}
}

// NewOKResponse creates a successful response with optional data
func NewOKResponse(data interface{}) (*Response, error) {
	var dataBytes json.RawMessage
	if data != nil {
		bytes, err := json.Marshal(data)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal response data: %w", err)
		}
		dataBytes = bytes
	}

	return &Response{
		Status: "OK",
		Data:   dataBytes,
	}, nil
}

// NewErrorResponse creates an error response with a message
func NewErrorResponse(errMsg string) *Response {
	return &Response{
		Status: "ERROR",
		Error:  errMsg,
	}
}

// ParseRequest parses a request from JSON bytes
func ParseRequest(data []byte) (*Request, error) {
	var req Request
	if err := json.Unmarshal(data, &req); err != nil {
		return nil, fmt.Errorf("failed to parse request: %w", err)
	}
	return &req, nil
}

// Marshal converts a response to JSON bytes
func (r *Response) Marshal() ([]byte, error) {
	return json.Marshal(r)
}
