// Package loader fetches a page's records when the page mounts and again when
// its single dependency (e.g. the leaderboard period) changes.
package loader

import (
	"context"
	"errors"
	"sync"

	"github.com/drovic/drovic-backend/internal/domain"
	pkglogger "github.com/drovic/drovic-backend/pkg/logger"
)

// ErrClosed is returned by Load after Close
var ErrClosed = errors.New("loader closed")

// FetchFunc reads the records for one dependency value
type FetchFunc[T any] func(ctx context.Context, dep string) ([]T, error)

// Notifier surfaces a failure to the visitor
type Notifier interface {
	Show(message string, severity domain.Severity) domain.Notice
}

// Snapshot is the renderable state of a loader
type Snapshot[T any] struct {
	Loading bool   `json:"loading"`
	Items   []T    `json:"items"`
	Failed  bool   `json:"failed"`
	Empty   bool   `json:"empty"`
	Dep     string `json:"dependency,omitempty"`

	loaded bool
}

// Loaded reports whether a read has completed since the loader was created
func (s Snapshot[T]) Loaded() bool {
	return s.loaded
}

// Loader owns the items of one page. Each load supersedes the previous one;
// a superseded or closed load never writes state.
type Loader[T any] struct {
	mu       sync.Mutex
	name     string
	fetch    FetchFunc[T]
	notifier Notifier
	failText string

	dep     string
	items   []T
	loading bool
	failed  bool
	loaded  bool
	gen     uint64
	cancel  context.CancelFunc
	closed  bool
}

// New creates a Loader. name is used in logs (usually the table name).
func New[T any](name string, fetch FetchFunc[T], notifier Notifier, failText string) *Loader[T] {
	return &Loader[T]{name: name, fetch: fetch, notifier: notifier, failText: failText}
}

// WithDependency sets the initial dependency value before the first load.
func (l *Loader[T]) WithDependency(dep string) *Loader[T] {
	l.mu.Lock()
	l.dep = dep
	l.mu.Unlock()
	return l
}

// Load issues a read for the current dependency and waits for it.
// A superseded load returns context.Canceled and one cut short by Close
// returns ErrClosed; neither leaves a trace.
func (l *Loader[T]) Load(ctx context.Context) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	if l.cancel != nil {
		l.cancel()
	}
	ctx, cancel := context.WithCancel(ctx)
	l.gen++
	gen := l.gen
	dep := l.dep
	l.cancel = cancel
	l.loading = true
	l.mu.Unlock()

	items, err := l.fetch(ctx, dep)

	l.mu.Lock()
	abandoned := ctx.Err()
	cancel()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	if gen != l.gen {
		l.mu.Unlock()
		return context.Canceled
	}
	l.cancel = nil
	l.loading = false
	if abandoned != nil {
		l.mu.Unlock()
		// caller went away; the next mount reads again
		return abandoned
	}
	l.loaded = true

	if err == nil {
		l.items = items
		l.failed = false
		l.mu.Unlock()
		return nil
	}
	l.items = nil
	l.failed = true
	l.mu.Unlock()

	// Show may block on the hub; the lock is released first
	pkglogger.GetLogger().Error().Err(err).Str("table", l.name).Str("dependency", dep).Msg("page load failed")
	if l.notifier != nil {
		l.notifier.Show(l.failText, domain.SeverityError)
	}
	return err
}

// EnsureLoaded loads once; later calls return without reading.
func (l *Loader[T]) EnsureLoaded(ctx context.Context) error {
	l.mu.Lock()
	done := l.loaded && !l.loading
	l.mu.Unlock()
	if done {
		return nil
	}
	return l.Load(ctx)
}

// SetDependency reloads when dep differs from the current value.
// It reports whether a read was issued.
func (l *Loader[T]) SetDependency(ctx context.Context, dep string) (bool, error) {
	l.mu.Lock()
	if l.dep == dep && l.loaded {
		l.mu.Unlock()
		return false, nil
	}
	l.dep = dep
	l.mu.Unlock()
	return true, l.Load(ctx)
}

// Dependency returns the current dependency value
func (l *Loader[T]) Dependency() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.dep
}

// Snapshot returns a copy of the current state
func (l *Loader[T]) Snapshot() Snapshot[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	items := make([]T, len(l.items))
	copy(items, l.items)
	return Snapshot[T]{
		Loading: l.loading,
		Items:   items,
		Failed:  l.failed,
		Empty:   l.loaded && !l.loading && !l.failed && len(l.items) == 0,
		Dep:     l.dep,
		loaded:  l.loaded,
	}
}

// Close cancels any in-flight read. Results arriving later are dropped.
func (l *Loader[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.closed {
		return
	}
	l.closed = true
	if l.cancel != nil {
		l.cancel()
		l.cancel = nil
	}
	l.loading = false
}
