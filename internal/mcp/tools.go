package mcp

import (
	"context"
	"fmt"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/1broseidon/winsnap/internal/placement"
)

func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "snap_window",
		Description: "Snap the currently focused window. Actions: left and right fill half of the display's usable area, maximize fills it, reset centers the window at the usable area divided by the reset scale, next-display moves the window to the next display keeping its size. Returns applied, skipped (nothing to do) or an error.",
	}, s.handleSnapWindow)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "list_displays",
		Description: "List connected displays in order with full and usable frames. Frames use the native convention: origin at the bottom-left of the primary display, Y growing upward.",
	}, s.handleListDisplays)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "daemon_status",
		Description: "Report whether the winsnap daemon is running, its hotkey listener state and action counters.",
	}, s.handleDaemonStatus)
}

func (s *Server) handleSnapWindow(_ context.Context, _ *mcpsdk.CallToolRequest, args SnapWindowInput) (*mcpsdk.CallToolResult, SnapWindowOutput, error) {
	action, err := placement.ParseAction(args.Action)
	if err != nil {
		return nil, SnapWindowOutput{}, err
	}

	data, err := s.client.Snap(action.String())
	if err != nil {
		return nil, SnapWindowOutput{}, err
	}
	if data.Status == "failed" {
		msg := data.Reason
		if data.Error != "" {
			msg = data.Error
		}
		return nil, SnapWindowOutput{}, fmt.Errorf("%s failed: %s", data.Action, msg)
	}

	return nil, SnapWindowOutput{
		Action:     data.Action,
		Status:     data.Status,
		Reason:     data.Reason,
		Display:    data.Display,
		Frame:      data.Frame,
		DurationMS: data.DurationMS,
	}, nil
}

func (s *Server) handleListDisplays(_ context.Context, _ *mcpsdk.CallToolRequest, _ ListDisplaysInput) (*mcpsdk.CallToolResult, ListDisplaysOutput, error) {
	data, err := s.client.GetDisplays()
	if err != nil {
		return nil, ListDisplaysOutput{}, err
	}
	return nil, ListDisplaysOutput{
		PrimaryHeight: data.PrimaryHeight,
		Displays:      data.Displays,
	}, nil
}

func (s *Server) handleDaemonStatus(_ context.Context, _ *mcpsdk.CallToolRequest, _ DaemonStatusInput) (*mcpsdk.CallToolResult, DaemonStatusOutput, error) {
	status, err := s.client.GetStatus()
	if err != nil {
		// A stopped daemon is a valid answer, not a tool failure.
		return nil, DaemonStatusOutput{Running: false}, nil
	}

	out := DaemonStatusOutput{
		Running:       status.DaemonRunning,
		UptimeSeconds: status.UptimeSeconds,
		Platform:      status.Platform,
		ListenerState: status.ListenerState,
		ResetScale:    status.ResetScale,
		DisplayCount:  status.DisplayCount,
		Applied:       status.Applied,
		Skipped:       status.Skipped,
		Failed:        status.Failed,
	}
	if status.LastAction != nil {
		out.LastAction = status.LastAction.Action + " " + status.LastAction.Status
	}
	return nil, out, nil
}
