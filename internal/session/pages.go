package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/loader"
	"github.com/drovic/drovic-backend/internal/render"
)

// PageView is what a list page renders: its load state plus the page data
type PageView struct {
	Page        render.Page `json:"page"`
	Loading     bool        `json:"loading"`
	Failed      bool        `json:"failed"`
	Empty       bool        `json:"empty"`
	Placeholder string      `json:"placeholder,omitempty"`
	Data        interface{} `json:"data"`
	State       State       `json:"state"`
}

// AssetsData is the assets library under the active filter tab
type AssetsData struct {
	Category domain.AssetCategory `json:"category"`
	Cards    []render.AssetCard   `json:"cards"`
}

// GalleryData is the masonry layout
type GalleryData struct {
	Columns [][]*domain.GalleryItem `json:"columns"`
}

// LeaderboardsData is both boards of one period plus the moderators
type LeaderboardsData struct {
	Period     domain.Period       `json:"period"`
	Watchtime  []render.RankedRow  `json:"watchtime"`
	Powerful   []render.RankedRow  `json:"powerful"`
	Moderators []*domain.Moderator `json:"moderators"`
}

// TeamData is the roster and the member shown in detail
type TeamData struct {
	Members []render.TeamCard  `json:"members"`
	Active  *domain.TeamMember `json:"active"`
	Index   int                `json:"active_index"`
}

// PageOptions carries per-request view parameters
type PageOptions struct {
	Category domain.AssetCategory
	Columns  int
}

// LoadPage mounts a page: every mount issues a fresh read, superseding one
// still in flight. A failed read is reported in the view, not as an error.
func (s *Session) LoadPage(ctx context.Context, page render.Page, opts PageOptions) (*PageView, error) {
	s.touch()
	var err error
	switch page {
	case render.PageAssets:
		err = s.assets.Load(ctx)
	case render.PageGallery:
		err = s.gallery.Load(ctx)
	case render.PageLeaderboards:
		err = s.loadLeaderboards(ctx)
	case render.PageTeam:
		err = s.loadTeam(ctx, s.team.Load)
	default:
		return nil, fmt.Errorf("page %q: %w", page, ErrUnknownPage)
	}
	if err := settle(ctx, err); err != nil {
		return nil, err
	}
	return s.View(page, opts)
}

// SetPeriod switches the leaderboard period; the boards and the moderators
// are read again only on change
func (s *Session) SetPeriod(ctx context.Context, period domain.Period) (*PageView, error) {
	if !period.Valid() {
		return nil, fmt.Errorf("period %q: %w", period, common.ErrInvalidInput)
	}
	s.touch()
	issued, err := s.leaderboard.SetDependency(ctx, string(period))
	if err := settle(ctx, err); err != nil {
		return nil, err
	}
	if issued {
		if err := s.loadModerators(ctx, err); err != nil {
			return nil, err
		}
	}
	return s.View(render.PageLeaderboards, PageOptions{})
}

func (s *Session) loadLeaderboards(ctx context.Context) error {
	err := s.leaderboard.Load(ctx)
	if err := settle(ctx, err); err != nil {
		return err
	}
	return s.loadModerators(ctx, err)
}

// loadModerators reads the moderators after the boards. Their failure raises
// the leaderboard notice unless the boards already did.
func (s *Session) loadModerators(ctx context.Context, boardErr error) error {
	modErr := s.moderators.Load(ctx)
	if err := settle(ctx, modErr); err != nil {
		return err
	}
	if modErr != nil && boardErr == nil && !errors.Is(modErr, context.Canceled) {
		s.toaster.Show(s.texts.loadFailed[render.PageLeaderboards], domain.SeverityError)
	}
	return nil
}

// loadTeam keeps the roster in step with the team rows, emptied on failure
func (s *Session) loadTeam(ctx context.Context, load func(context.Context) error) error {
	err := load(ctx)
	s.roster.SetMembers(s.team.Snapshot().Items)
	return err
}

// View renders the current state of a page without reading
func (s *Session) View(page render.Page, opts PageOptions) (*PageView, error) {
	view := &PageView{Page: page}
	switch page {
	case render.PageAssets:
		snap := s.assets.Snapshot()
		category := opts.Category
		if category == "" {
			category = domain.AssetCategoryAll
		}
		visible := render.FilterByCategory(snap.Items, category)
		fill(view, snap.Loading, snap.Failed, snap.Empty || (snap.Loaded() && len(visible) == 0))
		view.Data = AssetsData{Category: category, Cards: render.AssetCards(visible, s.downloads.InProgress)}

	case render.PageGallery:
		snap := s.gallery.Snapshot()
		fill(view, snap.Loading, snap.Failed, snap.Empty)
		view.Data = GalleryData{Columns: render.Columns(snap.Items, opts.Columns)}

	case render.PageLeaderboards:
		snap := s.leaderboard.Snapshot()
		boards := render.SplitLeaderboard(snap.Items)
		mods := s.moderators.Snapshot().Items
		fill(view, snap.Loading, snap.Failed, snap.Empty)
		view.Data = LeaderboardsData{
			Period:     domain.Period(snap.Dep),
			Watchtime:  render.RankedRows(boards.Watchtime),
			Powerful:   render.RankedRows(boards.Powerful),
			Moderators: mods,
		}

	case render.PageTeam:
		snap := s.team.Snapshot()
		fill(view, snap.Loading, snap.Failed, snap.Empty)
		active, idx := s.roster.Active()
		view.Data = TeamData{Members: render.TeamCards(snap.Items), Active: active, Index: idx}

	default:
		return nil, fmt.Errorf("page %q: %w", page, ErrUnknownPage)
	}
	if view.Empty {
		view.Placeholder = s.texts.placeholders[page]
	}
	view.State = s.State()
	return view, nil
}

// settle separates teardown and caller cancellation from read failures,
// which are already reflected in the loader state.
func settle(ctx context.Context, err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, loader.ErrClosed):
		return ErrSessionNotFound
	case ctx.Err() != nil:
		return ctx.Err()
	}
	return nil
}

func fill(view *PageView, loading, failed, empty bool) {
	view.Loading = loading
	view.Failed = failed
	view.Empty = empty && !failed
}
