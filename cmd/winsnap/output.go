package main

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/fatih/color"

	"github.com/1broseidon/winsnap/internal/hotkeys"
	"github.com/1broseidon/winsnap/internal/ipc"
)

var (
	successColor = color.New(color.FgGreen, color.Bold)
	errorColor   = color.New(color.FgRed, color.Bold)
	warnColor    = color.New(color.FgYellow)
	infoColor    = color.New(color.FgCyan)
	keyColor     = color.New(color.FgYellow)
)

func statusColor(status string) *color.Color {
	switch status {
	case "applied":
		return successColor
	case "skipped":
		return warnColor
	default:
		return errorColor
	}
}

func printStatus(w io.Writer, s *ipc.StatusData) {
	running := errorColor.Sprint("no")
	if s.DaemonRunning {
		running = successColor.Sprint("yes")
	}
	fmt.Fprintf(w, "%s %s\n", keyColor.Sprint("daemon_running:"), running)
	fmt.Fprintf(w, "%s %s\n", keyColor.Sprint("platform:      "), s.Platform)
	fmt.Fprintf(w, "%s %s\n", keyColor.Sprint("listener:      "), s.ListenerState)
	fmt.Fprintf(w, "%s %g\n", keyColor.Sprint("reset_scale:   "), s.ResetScale)
	fmt.Fprintf(w, "%s %d\n", keyColor.Sprint("displays:      "), s.DisplayCount)
	fmt.Fprintf(w, "%s %d\n", keyColor.Sprint("uptime_seconds:"), s.UptimeSeconds)
	fmt.Fprintf(w, "%s %s applied, %s skipped, %s failed\n",
		keyColor.Sprint("actions:       "),
		successColor.Sprint(s.Applied),
		warnColor.Sprint(s.Skipped),
		errorColor.Sprint(s.Failed))
	if s.LastAction != nil {
		fmt.Fprintf(w, "%s %s\n", keyColor.Sprint("last_action:   "), formatSnap(s.LastAction))
	}
}

func formatSnap(d *ipc.SnapData) string {
	var b strings.Builder
	b.WriteString(d.Action)
	b.WriteString(" ")
	b.WriteString(statusColor(d.Status).Sprint(d.Status))
	if d.Display != "" {
		fmt.Fprintf(&b, " on %s", d.Display)
	}
	if d.Status == "applied" {
		fmt.Fprintf(&b, " %s", formatFrame(d.Frame))
	}
	if d.Reason != "" {
		fmt.Fprintf(&b, " (%s)", d.Reason)
	}
	if d.Error != "" {
		fmt.Fprintf(&b, ": %s", d.Error)
	}
	return b.String()
}

func formatFrame(f ipc.FrameInfo) string {
	return fmt.Sprintf("%gx%g+%g+%g", f.Width, f.Height, f.X, f.Y)
}

func printDisplays(w io.Writer, d *ipc.DisplaysData) {
	fmt.Fprintf(w, "%s %g (native convention, origin bottom-left of primary)\n", infoColor.Sprint("primary height:"), d.PrimaryHeight)
	for _, disp := range d.Displays {
		marker := " "
		if disp.Primary {
			marker = successColor.Sprint("*")
		}
		fmt.Fprintf(w, "%s %d %s\n", marker, disp.Index, keyColor.Sprint(disp.Name))
		fmt.Fprintf(w, "    bounds: %s\n", formatFrame(disp.Bounds))
		fmt.Fprintf(w, "    usable: %s\n", formatFrame(disp.Usable))
	}
}

func printBindings(w io.Writer, bindings []ipc.BindingInfo) {
	for _, b := range bindings {
		fmt.Fprintf(w, "  %s %s\n", keyColor.Sprintf("%-22s", b.Chord), b.Action)
	}
	if runtime.GOOS == "linux" {
		fmt.Fprintln(w, infoColor.Sprint("  (Cmd = Super, Opt = Alt)"))
	}
}

func localBindings() []ipc.BindingInfo {
	bindings := hotkeys.DefaultTable().Bindings()
	out := make([]ipc.BindingInfo, len(bindings))
	for i, b := range bindings {
		out[i] = ipc.BindingInfoFrom(b)
	}
	return out
}
