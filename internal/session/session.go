// Package session holds the transient UI state of one visitor's browser tab:
// the visible notice, open overlays, the download flow and the data loaders of
// each page. Closing a session cancels its loads and timers.
package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/loader"
	"github.com/drovic/drovic-backend/internal/render"
	"github.com/drovic/drovic-backend/internal/rowstore"
	"github.com/drovic/drovic-backend/internal/service"
	"github.com/drovic/drovic-backend/internal/uistate"
	"github.com/drovic/drovic-backend/internal/ws"
	"github.com/drovic/drovic-backend/pkg/i18n"
	pkglogger "github.com/drovic/drovic-backend/pkg/logger"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrUnknownPage     = errors.New("unknown page")
)

// Selection kinds
const (
	SelectGallery = "gallery"
	SelectAsset   = "asset"
)

// Publisher pushes session events to connected sockets
type Publisher interface {
	SendToSession(sessionID string, event *ws.Event)
	Disconnect(sessionID string)
}

// Sources are the services the page loaders read through
type Sources struct {
	Assets       service.AssetService
	Gallery      service.GalleryService
	Leaderboards service.LeaderboardService
	Team         service.TeamService
}

// Session is one visitor's page state
type Session struct {
	ID        string
	Locale    i18n.Locale
	CreatedAt time.Time

	mu       sync.Mutex
	lastSeen time.Time
	closed   bool

	clock     uistate.Clock
	texts     texts
	publisher Publisher

	toaster   *uistate.Toaster
	downloads *uistate.DownloadFlow
	lightbox  uistate.Selection[*domain.GalleryItem]
	preview   uistate.Selection[*domain.Asset]
	roster    uistate.Roster

	assets      *loader.Loader[*domain.Asset]
	gallery     *loader.Loader[*domain.GalleryItem]
	leaderboard *loader.Loader[*domain.LeaderboardEntry]
	moderators  *loader.Loader[*domain.Moderator]
	team        *loader.Loader[*domain.TeamMember]
}

// State is the session-wide part of the UI
type State struct {
	ID           string                `json:"id"`
	Locale       i18n.Locale           `json:"locale"`
	Notice       *domain.Notice        `json:"notice"`
	Downloads    uistate.DownloadState `json:"downloads"`
	GalleryItem  *domain.GalleryItem   `json:"selected_gallery_item"`
	PreviewAsset *domain.Asset         `json:"preview_asset"`
	ActiveMember int                   `json:"active_member"`
	Period       domain.Period         `json:"period"`
}

func newSession(id string, locale i18n.Locale, src Sources, tx texts, pub Publisher, opts Options) *Session {
	now := opts.Clock.Now()
	s := &Session{
		ID:        id,
		Locale:    locale,
		CreatedAt: now,
		lastSeen:  now,
		clock:     opts.Clock,
		texts:     tx,
		publisher: pub,
	}

	s.toaster = uistate.NewToaster(opts.Clock, opts.NoticeDuration, s.publishNotice)
	s.downloads = uistate.NewDownloadFlow(opts.Clock, opts.DownloadDelay, s.toaster, tx.notices, s.publishDownload)

	s.assets = loader.New(rowstore.TableAssets, func(ctx context.Context, _ string) ([]*domain.Asset, error) {
		return src.Assets.List(ctx)
	}, s.toaster, tx.loadFailed[render.PageAssets])
	s.gallery = loader.New(rowstore.TableGalleryItems, func(ctx context.Context, _ string) ([]*domain.GalleryItem, error) {
		return src.Gallery.List(ctx)
	}, s.toaster, tx.loadFailed[render.PageGallery])
	s.leaderboard = loader.New(rowstore.TableLeaderboards, func(ctx context.Context, period string) ([]*domain.LeaderboardEntry, error) {
		return src.Leaderboards.Entries(ctx, domain.Period(period))
	}, s.toaster, tx.loadFailed[render.PageLeaderboards]).WithDependency(string(domain.PeriodWeekly))
	// notice raised by loadLeaderboards
	s.moderators = loader.New(rowstore.TableModerators, func(ctx context.Context, _ string) ([]*domain.Moderator, error) {
		return src.Leaderboards.Moderators(ctx)
	}, nil, "")
	s.team = loader.New(rowstore.TableTeamMembers, func(ctx context.Context, _ string) ([]*domain.TeamMember, error) {
		return src.Team.List(ctx)
	}, s.toaster, tx.loadFailed[render.PageTeam])

	return s
}

func (s *Session) publishNotice(ev uistate.NoticeEvent) {
	if s.publisher == nil {
		return
	}
	n := ev.Notice
	s.publisher.SendToSession(s.ID, &ws.Event{Type: ev.Type, Payload: n})
}

func (s *Session) publishDownload(ev uistate.DownloadEvent) {
	if s.publisher == nil {
		return
	}
	s.publisher.SendToSession(s.ID, &ws.Event{Type: ev.Type, Payload: ev})
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = s.clock.Now()
	s.mu.Unlock()
}

// idleSince reports how long the session has not been used
func (s *Session) idleSince(now time.Time) time.Duration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return now.Sub(s.lastSeen)
}

// State returns the session-wide UI state
func (s *Session) State() State {
	st := State{
		ID:        s.ID,
		Locale:    s.Locale,
		Downloads: s.downloads.State(),
		Period:    domain.Period(s.leaderboard.Dependency()),
	}
	if n, ok := s.toaster.Current(); ok {
		st.Notice = &n
	}
	if it, ok := s.lightbox.Current(); ok {
		st.GalleryItem = it
	}
	if a, ok := s.preview.Current(); ok {
		st.PreviewAsset = a
	}
	_, st.ActiveMember = s.roster.Active()
	return st
}

// Select opens the detail overlay of a loaded gallery item or asset.
// A second selection replaces the first.
func (s *Session) Select(ctx context.Context, kind string, id int64) error {
	switch kind {
	case SelectGallery:
		if err := s.gallery.EnsureLoaded(ctx); err != nil {
			return err
		}
		for _, it := range s.gallery.Snapshot().Items {
			if it.ID == id {
				s.lightbox.Select(it)
				return nil
			}
		}
	case SelectAsset:
		if err := s.assets.EnsureLoaded(ctx); err != nil {
			return err
		}
		for _, a := range s.assets.Snapshot().Items {
			if a.ID == id {
				s.preview.Select(a)
				return nil
			}
		}
	default:
		return fmt.Errorf("selection kind %q: %w", kind, common.ErrInvalidInput)
	}
	return common.ErrNotFound
}

// ClearSelection closes the overlay of kind, or every overlay when kind is empty
func (s *Session) ClearSelection(kind string) error {
	switch kind {
	case SelectGallery:
		s.lightbox.Clear()
	case SelectAsset:
		s.preview.Clear()
	case "":
		s.lightbox.Clear()
		s.preview.Clear()
	default:
		return fmt.Errorf("selection kind %q: %w", kind, common.ErrInvalidInput)
	}
	return nil
}

// SelectMember switches the team detail view to the member at index
func (s *Session) SelectMember(ctx context.Context, index int) (*domain.TeamMember, error) {
	if err := s.loadTeam(ctx, s.team.EnsureLoaded); err != nil {
		return nil, err
	}
	return s.roster.Select(index)
}

// InitiateDownload opens the confirmation prompt for a loaded asset
func (s *Session) InitiateDownload(ctx context.Context, assetID int64) (*domain.Asset, error) {
	if err := s.assets.EnsureLoaded(ctx); err != nil {
		return nil, err
	}
	for _, a := range s.assets.Snapshot().Items {
		if a.ID == assetID {
			if err := s.downloads.Initiate(a); err != nil {
				return nil, err
			}
			return a, nil
		}
	}
	return nil, common.ErrNotFound
}

// ConfirmDownload starts the simulated transfer of the pending asset
func (s *Session) ConfirmDownload() (*domain.Asset, error) {
	return s.downloads.Confirm()
}

// CancelDownload closes the confirmation prompt
func (s *Session) CancelDownload() {
	s.downloads.Cancel()
}

// Share records a share attempt of a loaded gallery item
func (s *Session) Share(ctx context.Context, itemID int64, nativeAvailable, failed bool) (uistate.ShareResult, error) {
	if err := s.gallery.EnsureLoaded(ctx); err != nil {
		return uistate.ShareResult{}, err
	}
	for _, it := range s.gallery.Snapshot().Items {
		if it.ID == itemID {
			return uistate.Share(s.toaster, s.texts.notices, it, nativeAvailable, failed), nil
		}
	}
	return uistate.ShareResult{}, common.ErrNotFound
}

// DismissNotice hides the visible notice early
func (s *Session) DismissNotice() {
	s.toaster.Dismiss()
}

// Close cancels in-flight loads and pending timers
func (s *Session) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.assets.Close()
	s.gallery.Close()
	s.leaderboard.Close()
	s.moderators.Close()
	s.team.Close()
	s.downloads.Close()
	s.toaster.Close()
	if s.publisher != nil {
		s.publisher.Disconnect(s.ID)
	}
	log := pkglogger.WithSession(s.ID)
	log.Debug().Msg("session closed")
}
