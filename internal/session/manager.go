package session

import (
	"context"
	"sync"
	"time"

	"github.com/drovic/drovic-backend/internal/uistate"
	"github.com/drovic/drovic-backend/pkg/i18n"
	pkglogger "github.com/drovic/drovic-backend/pkg/logger"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var sessionsActive = promauto.NewGauge(prometheus.GaugeOpts{
	Name: "page_sessions_active",
	Help: "Open page sessions",
})

// Options configures timed behavior of every session
type Options struct {
	Clock          uistate.Clock
	NoticeDuration time.Duration
	DownloadDelay  time.Duration
	IdleTTL        time.Duration
}

// Manager owns all open sessions
type Manager struct {
	mu       sync.RWMutex
	sessions map[string]*Session

	src       Sources
	bundle    *i18n.Bundle
	publisher Publisher
	opts      Options
}

// NewManager creates a Manager. bundle and publisher may be nil.
func NewManager(src Sources, bundle *i18n.Bundle, publisher Publisher, opts Options) *Manager {
	if opts.Clock == nil {
		opts.Clock = uistate.RealClock()
	}
	if opts.NoticeDuration <= 0 {
		opts.NoticeDuration = 3 * time.Second
	}
	if opts.DownloadDelay <= 0 {
		opts.DownloadDelay = 2 * time.Second
	}
	if opts.IdleTTL <= 0 {
		opts.IdleTTL = 30 * time.Minute
	}
	return &Manager{
		sessions:  make(map[string]*Session),
		src:       src,
		bundle:    bundle,
		publisher: publisher,
		opts:      opts,
	}
}

// Create opens a new session for a visitor
func (m *Manager) Create(locale i18n.Locale) *Session {
	s := newSession(uuid.NewString(), locale, m.src, textsFor(m.bundle, locale), m.publisher, m.opts)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()
	sessionsActive.Inc()

	log := pkglogger.WithSession(s.ID)
	log.Debug().Str("locale", string(locale)).Msg("session opened")
	return s
}

// Get returns an open session and marks it used
func (m *Manager) Get(id string) (*Session, error) {
	m.mu.RLock()
	s, ok := m.sessions[id]
	m.mu.RUnlock()
	if !ok {
		return nil, ErrSessionNotFound
	}
	s.touch()
	return s, nil
}

// Close closes one session
func (m *Manager) Close(id string) error {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if ok {
		delete(m.sessions, id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	sessionsActive.Dec()
	s.Close()
	return nil
}

// Len returns the number of open sessions
func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.sessions)
}

// Sweep closes sessions idle for longer than the idle TTL and returns how many
func (m *Manager) Sweep() int {
	now := m.opts.Clock.Now()
	var idle []*Session

	m.mu.Lock()
	for id, s := range m.sessions {
		if s.idleSince(now) > m.opts.IdleTTL {
			idle = append(idle, s)
			delete(m.sessions, id)
		}
	}
	m.mu.Unlock()

	for _, s := range idle {
		sessionsActive.Dec()
		s.Close()
	}
	return len(idle)
}

// Run sweeps idle sessions until ctx is done, then closes every session
func (m *Manager) Run(ctx context.Context) {
	interval := m.opts.IdleTTL / 2
	if interval < time.Second {
		interval = time.Second
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if n := m.Sweep(); n > 0 {
				pkglogger.Info("closed %d idle sessions", n)
			}
		case <-ctx.Done():
			m.CloseAll()
			return
		}
	}
}

// CloseAll closes every session
func (m *Manager) CloseAll() {
	m.mu.Lock()
	all := m.sessions
	m.sessions = make(map[string]*Session)
	m.mu.Unlock()

	for _, s := range all {
		sessionsActive.Dec()
		s.Close()
	}
}
