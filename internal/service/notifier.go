package service

import (
	"sync"
	"time"

	"github.com/shopwise-ai/assistant-core/internal/model"
	"github.com/shopwise-ai/assistant-core/pkg/metrics"
)

// Notifier owns the session's single notification slot. A new notification
// replaces the prior one and restarts the auto-dismiss timer. The timer only
// flips the visibility flag; it never touches other session state, so it is
// safe to run on its own goroutine.
type Notifier struct {
	mu      sync.Mutex
	current model.Notification
	set     bool
	gen     uint64
	ttl     time.Duration
	timer   *time.Timer
}

// NewNotifier creates a notifier with the given auto-dismiss duration.
func NewNotifier(ttl time.Duration) *Notifier {
	if ttl <= 0 {
		ttl = 3 * time.Second
	}
	return &Notifier{ttl: ttl}
}

// Notify sets the active notification, visible, and schedules auto-dismiss.
// A pending timer from an earlier notification is preempted.
func (n *Notifier) Notify(message string, severity model.Severity) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.gen++
	gen := n.gen
	n.current = model.Notification{
		Message:  message,
		Severity: severity,
		Visible:  true,
	}
	n.set = true

	if n.timer != nil {
		n.timer.Stop()
	}
	n.timer = time.AfterFunc(n.ttl, func() {
		n.expire(gen)
	})

	metrics.NotificationsTotal.WithLabelValues(string(severity)).Inc()
}

// Dismiss hides the notification without clearing message or severity.
func (n *Notifier) Dismiss() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.current.Visible = false
}

// Current returns a snapshot of the notification slot, or nil if nothing
// has been notified yet this session.
func (n *Notifier) Current() *model.Notification {
	n.mu.Lock()
	defer n.mu.Unlock()
	if !n.set {
		return nil
	}
	snapshot := n.current
	return &snapshot
}

// expire hides the notification only if no newer one replaced it.
func (n *Notifier) expire(gen uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.gen != gen {
		return
	}
	n.current.Visible = false
}
