// Package toast holds the single notification slot shown to the admin after
// an action.
package toast

import (
	"sync"
	"time"
)

// Kind is the severity of a toast
type Kind string

const (
	KindSuccess Kind = "success"
	KindError   Kind = "error"
	KindInfo    Kind = "info"
)

// DefaultDuration is how long Success and Error toasts stay visible
const DefaultDuration = 3 * time.Second

// Toast is the current content of the slot
type Toast struct {
	Message  string        `json:"message"`
	Kind     Kind          `json:"type"`
	Visible  bool          `json:"show"`
	Duration time.Duration `json:"-"`
}

// Timer is a pending auto-dismiss
type Timer interface {
	Stop() bool
}

// Scheduler runs f once after d
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realScheduler struct{}

func (realScheduler) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Notifier is a single-slot toast. Showing a toast replaces the previous
// one and cancels its auto-dismiss.
type Notifier struct {
	scheduler Scheduler

	mu         sync.Mutex
	current    Toast
	timer      Timer
	generation uint64
}

// NewNotifier returns a hidden Notifier using wall-clock timers
func NewNotifier() *Notifier {
	return NewNotifierWithScheduler(realScheduler{})
}

// NewNotifierWithScheduler returns a hidden Notifier using scheduler
func NewNotifierWithScheduler(scheduler Scheduler) *Notifier {
	return &Notifier{
		scheduler: scheduler,
		current:   Toast{Kind: KindSuccess},
	}
}

// Show replaces the toast. A zero duration keeps it visible until Hide.
func (n *Notifier) Show(message string, kind Kind, duration time.Duration) {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.stopLocked()
	n.generation++
	n.current = Toast{
		Message:  message,
		Kind:     kind,
		Visible:  true,
		Duration: duration,
	}

	if duration <= 0 {
		return
	}
	gen := n.generation
	n.timer = n.scheduler.AfterFunc(duration, func() {
		n.mu.Lock()
		defer n.mu.Unlock()
		// a newer Show may have raced with this timer firing
		if n.generation == gen {
			n.current.Visible = false
			n.timer = nil
		}
	})
}

// Success shows a success toast for DefaultDuration
func (n *Notifier) Success(message string) {
	n.Show(message, KindSuccess, DefaultDuration)
}

// Error shows an error toast for DefaultDuration
func (n *Notifier) Error(message string) {
	n.Show(message, KindError, DefaultDuration)
}

// Hide cancels any pending dismiss and hides the toast now
func (n *Notifier) Hide() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stopLocked()
	n.generation++
	n.current.Visible = false
}

// Current returns a copy of the slot
func (n *Notifier) Current() Toast {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.current
}

func (n *Notifier) stopLocked() {
	if n.timer != nil {
		n.timer.Stop()
		n.timer = nil
	}
}
