package uistate

import (
	"sync"
	"time"

	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var noticesShown = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Name: "notices_shown_total",
		Help: "Notices shown to visitors by severity",
	},
	[]string{"severity"},
)

// Notice event types
const (
	EventNoticeShow = "notice.show"
	EventNoticeHide = "notice.hide"
)

// NoticeEvent is emitted whenever the visible notice changes
type NoticeEvent struct {
	Type   string        `json:"type"`
	Notice domain.Notice `json:"notice"`
}

// Toaster holds at most one visible notice. A new notice replaces the current
// one (no queue) and every notice hides itself after a fixed duration.
type Toaster struct {
	mu       sync.Mutex
	clock    Clock
	duration time.Duration
	current  *domain.Notice
	timer    Timer
	onChange func(NoticeEvent)
	closed   bool
}

// NewToaster creates a Toaster. onChange may be nil.
func NewToaster(clock Clock, duration time.Duration, onChange func(NoticeEvent)) *Toaster {
	if clock == nil {
		clock = RealClock()
	}
	return &Toaster{clock: clock, duration: duration, onChange: onChange}
}

// Show replaces the visible notice and schedules its auto-hide.
// It is a no-op after Close.
func (t *Toaster) Show(message string, severity domain.Severity) domain.Notice {
	t.mu.Lock()
	if t.closed {
		t.mu.Unlock()
		return domain.Notice{}
	}
	if t.timer != nil {
		t.timer.Stop()
	}

	now := t.clock.Now()
	n := domain.Notice{
		ID:        uuid.NewString(),
		Message:   message,
		Severity:  severity,
		ShownAt:   now,
		ExpiresAt: now.Add(t.duration),
	}
	t.current = &n
	id := n.ID
	t.timer = t.clock.AfterFunc(t.duration, func() { t.expire(id) })
	t.mu.Unlock()

	noticesShown.WithLabelValues(string(severity)).Inc()
	t.emit(NoticeEvent{Type: EventNoticeShow, Notice: n})
	return n
}

// expire hides the notice with the given id; a stale timer never hides a newer notice
func (t *Toaster) expire(id string) {
	t.mu.Lock()
	if t.current == nil || t.current.ID != id {
		t.mu.Unlock()
		return
	}
	n := *t.current
	t.current = nil
	t.timer = nil
	t.mu.Unlock()

	t.emit(NoticeEvent{Type: EventNoticeHide, Notice: n})
}

// Dismiss hides the visible notice before its duration elapses
func (t *Toaster) Dismiss() {
	t.mu.Lock()
	if t.current == nil {
		t.mu.Unlock()
		return
	}
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
	n := *t.current
	t.current = nil
	t.mu.Unlock()

	t.emit(NoticeEvent{Type: EventNoticeHide, Notice: n})
}

// Current returns the visible notice, if any
func (t *Toaster) Current() (domain.Notice, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.current == nil {
		return domain.Notice{}, false
	}
	return *t.current, true
}

// Close stops the pending auto-hide; later Show calls are ignored
func (t *Toaster) Close() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.closed = true
	if t.timer != nil {
		t.timer.Stop()
		t.timer = nil
	}
}

func (t *Toaster) emit(ev NoticeEvent) {
	if t.onChange != nil {
		t.onChange(ev)
	}
}
