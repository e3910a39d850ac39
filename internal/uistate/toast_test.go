package uistate

import (
	"sync"
	"testing"
	"time"

	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type eventLog struct {
	mu     sync.Mutex
	events []NoticeEvent
}

func (l *eventLog) add(ev NoticeEvent) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, ev)
}

func (l *eventLog) types() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]string, len(l.events))
	for i, ev := range l.events {
		out[i] = ev.Type
	}
	return out
}

func newTestToaster() (*Toaster, *FakeClock, *eventLog) {
	clock := NewFakeClock(time.Date(2024, 1, 10, 12, 0, 0, 0, time.UTC))
	log := &eventLog{}
	return NewToaster(clock, 3*time.Second, log.add), clock, log
}

func TestToaster_AutoHidesAfterDuration(t *testing.T) {
	toaster, clock, log := newTestToaster()

	n := toaster.Show("Failed to load gallery items", domain.SeverityError)
	assert.Equal(t, clock.Now().Add(3*time.Second), n.ExpiresAt)

	cur, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, domain.SeverityError, cur.Severity)

	clock.Advance(2999 * time.Millisecond)
	_, ok = toaster.Current()
	assert.True(t, ok, "still visible before the duration")

	clock.Advance(time.Millisecond)
	_, ok = toaster.Current()
	assert.False(t, ok, "hidden without user action")
	assert.Equal(t, []string{EventNoticeShow, EventNoticeHide}, log.types())
}

func TestToaster_NewNoticeReplacesAndStaleTimerDoesNotHideIt(t *testing.T) {
	toaster, clock, log := newTestToaster()

	toaster.Show("first", domain.SeveritySuccess)
	clock.Advance(2 * time.Second)
	second := toaster.Show("second", domain.SeverityError)

	cur, ok := toaster.Current()
	require.True(t, ok)
	assert.Equal(t, second.ID, cur.ID)

	// first notice's deadline passes; second must stay
	clock.Advance(1500 * time.Millisecond)
	cur, ok = toaster.Current()
	require.True(t, ok)
	assert.Equal(t, "second", cur.Message)

	clock.Advance(1500 * time.Millisecond)
	_, ok = toaster.Current()
	assert.False(t, ok)
	assert.Equal(t, []string{EventNoticeShow, EventNoticeShow, EventNoticeHide}, log.types())
	assert.Equal(t, 0, clock.Pending())
}

func TestToaster_Dismiss(t *testing.T) {
	toaster, clock, _ := newTestToaster()
	toaster.Show("hello", domain.SeveritySuccess)

	toaster.Dismiss()
	_, ok := toaster.Current()
	assert.False(t, ok)
	assert.Equal(t, 0, clock.Pending())

	toaster.Dismiss() // no-op
}

func TestToaster_CloseStopsTimersAndIgnoresShow(t *testing.T) {
	toaster, clock, log := newTestToaster()
	toaster.Show("hello", domain.SeveritySuccess)

	toaster.Close()
	assert.Equal(t, 0, clock.Pending())

	n := toaster.Show("after close", domain.SeverityError)
	assert.Empty(t, n.ID)
	clock.Advance(10 * time.Second)
	assert.Equal(t, []string{EventNoticeShow}, log.types())
}

func TestToaster_RealClock(t *testing.T) {
	hidden := make(chan struct{})
	toaster := NewToaster(nil, 10*time.Millisecond, func(ev NoticeEvent) {
		if ev.Type == EventNoticeHide {
			close(hidden)
		}
	})
	toaster.Show("quick", domain.SeveritySuccess)

	select {
	case <-hidden:
	case <-time.After(time.Second):
		t.Fatal("notice was not hidden")
	}
}
