// Package notify shows desktop notifications for events the user cannot
// otherwise see from a background daemon.
package notify

import (
	"log/slog"
	"sync"

	"github.com/gen2brain/beeep"

	"github.com/1broseidon/winsnap/internal/snapping"
)

const (
	appName         = "winsnap"
	maxMessageRunes = 100
)

// Notifier sends desktop notifications.
type Notifier struct {
	mu        sync.Mutex
	enabled   bool
	onFailure bool
	send      func(title, message, icon string) error
	logger    *slog.Logger
	wg        sync.WaitGroup
}

// New creates a Notifier backed by beeep.
func New(enabled, onFailure bool, logger *slog.Logger) *Notifier {
	if logger == nil {
		logger = slog.Default()
	}
	return &Notifier{
		enabled:   enabled,
		onFailure: onFailure,
		send:      beeep.Notify,
		logger:    logger.With("component", "notify"),
	}
}

// SetEnabled toggles notifications.
func (n *Notifier) SetEnabled(enabled, onFailure bool) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.enabled = enabled
	n.onFailure = onFailure
}

// PermissionDenied tells the user the window system refused access. It
// blocks until the notification is handed off since the daemon exits next.
func (n *Notifier) PermissionDenied(detail string) {
	msg := "Window control permission is required. Grant access and restart winsnap."
	if detail != "" {
		msg += "\n" + detail
	}
	n.notify("Permission required", msg)
}

// ActionCompleted implements snapping.Observer. Only failures are reported,
// and only when notify_on_failure is set.
func (n *Notifier) ActionCompleted(o snapping.Outcome) {
	if o.Status != snapping.StatusFailed {
		return
	}
	n.mu.Lock()
	want := n.enabled && n.onFailure
	n.mu.Unlock()
	if !want {
		return
	}

	msg := o.Reason
	if o.Err != nil {
		msg = o.Err.Error()
	}
	msg = truncate(msg, maxMessageRunes)

	// The observer runs under the action lock; never block it on D-Bus.
	n.wg.Add(1)
	go func() {
		defer n.wg.Done()
		n.notify(o.Action.String()+" failed", msg)
	}()
}

// Wait blocks until queued notifications are sent.
func (n *Notifier) Wait() {
	n.wg.Wait()
}

func (n *Notifier) notify(title, message string) {
	n.mu.Lock()
	enabled := n.enabled
	send := n.send
	n.mu.Unlock()
	if !enabled {
		return
	}
	if err := send(appName+": "+title, message, ""); err != nil {
		// Notifications are best-effort.
		n.logger.Debug("notification failed", "error", err)
	}
}

// truncate cuts s to at most n runes, marking the cut with an ellipsis.
func truncate(s string, n int) string {
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n]) + "..."
}
