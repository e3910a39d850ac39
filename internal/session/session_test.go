package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/render"
	"github.com/drovic/drovic-backend/internal/uistate"
	"github.com/drovic/drovic-backend/internal/ws"
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// --- fakes ---

type fakeAssets struct {
	assets []*domain.Asset
	err    error
}

func (f *fakeAssets) List(ctx context.Context) ([]*domain.Asset, error) { return f.assets, f.err }
func (f *fakeAssets) ListByCategory(ctx context.Context, c domain.AssetCategory) ([]*domain.Asset, error) {
	return render.FilterByCategory(f.assets, c), f.err
}
func (f *fakeAssets) Get(ctx context.Context, id int64) (*domain.Asset, error) {
	return nil, common.ErrNotFound
}

type fakeGallery struct {
	list func(ctx context.Context) ([]*domain.GalleryItem, error)
}

func (f *fakeGallery) List(ctx context.Context) ([]*domain.GalleryItem, error) { return f.list(ctx) }
func (f *fakeGallery) Get(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	return nil, common.ErrNotFound
}

type fakeLeaderboards struct {
	mu       sync.Mutex
	periods  []domain.Period
	entries  map[domain.Period][]*domain.LeaderboardEntry
	modErr   error
	modReads int
}

func (f *fakeLeaderboards) Entries(ctx context.Context, p domain.Period) ([]*domain.LeaderboardEntry, error) {
	f.mu.Lock()
	f.periods = append(f.periods, p)
	f.mu.Unlock()
	return f.entries[p], nil
}

func (f *fakeLeaderboards) Moderators(ctx context.Context) ([]*domain.Moderator, error) {
	f.mu.Lock()
	f.modReads++
	err := f.modErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	return []*domain.Moderator{{ID: 1, Username: "mod"}}, nil
}

func (f *fakeLeaderboards) moderatorReads() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.modReads
}

func (f *fakeLeaderboards) reads() []domain.Period {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Period(nil), f.periods...)
}

type fakeTeam struct{ members []*domain.TeamMember }

func (f *fakeTeam) List(ctx context.Context) ([]*domain.TeamMember, error) { return f.members, nil }
func (f *fakeTeam) Get(ctx context.Context, i int) (*domain.TeamMember, error) {
	return f.members[i], nil
}

type recordingPublisher struct {
	mu           sync.Mutex
	events       []*ws.Event
	disconnected []string
}

func (p *recordingPublisher) SendToSession(sid string, ev *ws.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, ev)
}

func (p *recordingPublisher) Disconnect(sid string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.disconnected = append(p.disconnected, sid)
}

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, ev := range p.events {
		out[i] = ev.Type
	}
	return out
}

type fixture struct {
	manager *Manager
	clock   *uistate.FakeClock
	pub     *recordingPublisher
	assets  *fakeAssets
	gallery *fakeGallery
	boards  *fakeLeaderboards
	team    *fakeTeam
}

func newFixture() *fixture {
	f := &fixture{
		clock: uistate.NewFakeClock(time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)),
		pub:   &recordingPublisher{},
		assets: &fakeAssets{assets: []*domain.Asset{
			{ID: 1, Name: "Laugh Pack", Category: "stickers", IconName: "smile"},
			{ID: 7, Name: "Hype Emotes", Category: "emotes", IconName: "unknown"},
		}},
		gallery: &fakeGallery{list: func(ctx context.Context) ([]*domain.GalleryItem, error) {
			return []*domain.GalleryItem{{ID: 3, Title: "c"}, {ID: 2, Title: "b"}, {ID: 1, Title: "a"}}, nil
		}},
		boards: &fakeLeaderboards{entries: map[domain.Period][]*domain.LeaderboardEntry{
			domain.PeriodWeekly: {
				{ID: 1, Username: "w1", Category: domain.CategoryWatchtime, Rank: 1},
				{ID: 2, Username: "p1", Category: domain.CategoryPowerful, Rank: 1},
			},
		}},
		team: &fakeTeam{members: []*domain.TeamMember{{ID: 1, Name: "Uqi"}, {ID: 2, Name: "Gaga"}}},
	}
	bundle := i18n.NewBundle(i18n.LocaleEn)
	for l, msgs := range i18n.DefaultMessages() {
		bundle.LoadMessages(l, msgs)
	}
	f.manager = NewManager(Sources{
		Assets:       f.assets,
		Gallery:      f.gallery,
		Leaderboards: f.boards,
		Team:         f.team,
	}, bundle, f.pub, Options{
		Clock:          f.clock,
		NoticeDuration: 3 * time.Second,
		DownloadDelay:  2 * time.Second,
		IdleTTL:        10 * time.Minute,
	})
	return f
}

// --- tests ---

func TestSession_GalleryFailureShowsOneNoticeThenHides(t *testing.T) {
	f := newFixture()
	f.gallery.list = func(ctx context.Context) ([]*domain.GalleryItem, error) {
		return nil, errors.New("gallery_items: permission denied")
	}
	s := f.manager.Create(i18n.LocaleEn)

	view, err := s.LoadPage(context.Background(), render.PageGallery, PageOptions{Columns: 4})
	require.NoError(t, err)
	assert.True(t, view.Failed)
	assert.False(t, view.Empty)
	assert.Empty(t, view.Placeholder)
	require.NotNil(t, view.State.Notice)
	assert.Equal(t, "Failed to load gallery items", view.State.Notice.Message)
	assert.Equal(t, domain.SeverityError, view.State.Notice.Severity)

	data := view.Data.(GalleryData)
	for _, col := range data.Columns {
		assert.Empty(t, col)
	}

	f.clock.Advance(3 * time.Second)
	assert.Nil(t, s.State().Notice)
	assert.Equal(t, []string{uistate.EventNoticeShow, uistate.EventNoticeHide}, f.pub.types())

	// revisiting reads again and fails again
	_, err = s.LoadPage(context.Background(), render.PageGallery, PageOptions{})
	require.NoError(t, err)
	assert.Equal(t, []string{uistate.EventNoticeShow, uistate.EventNoticeHide, uistate.EventNoticeShow}, f.pub.types())
}

func TestSession_RemountRereadsAfterFailure(t *testing.T) {
	f := newFixture()
	var mu sync.Mutex
	reads := 0
	f.gallery.list = func(ctx context.Context) ([]*domain.GalleryItem, error) {
		mu.Lock()
		defer mu.Unlock()
		reads++
		if reads == 1 {
			return nil, errors.New("gallery_items: connection reset")
		}
		return []*domain.GalleryItem{{ID: 1, Title: "a"}}, nil
	}
	s := f.manager.Create(i18n.LocaleEn)

	view, err := s.LoadPage(context.Background(), render.PageGallery, PageOptions{})
	require.NoError(t, err)
	assert.True(t, view.Failed)

	view, err = s.LoadPage(context.Background(), render.PageGallery, PageOptions{})
	require.NoError(t, err)
	assert.False(t, view.Failed)
	assert.False(t, view.Empty)
	assert.Equal(t, 2, reads)

	require.NoError(t, s.Select(context.Background(), SelectGallery, 1))
	assert.Equal(t, int64(1), s.State().GalleryItem.ID)
}

func TestSession_GalleryColumns(t *testing.T) {
	f := newFixture()
	s := f.manager.Create(i18n.LocaleEn)

	view, err := s.LoadPage(context.Background(), render.PageGallery, PageOptions{Columns: 2})
	require.NoError(t, err)
	data := view.Data.(GalleryData)
	require.Len(t, data.Columns, 2)
	assert.Equal(t, int64(3), data.Columns[0][0].ID)
	assert.Equal(t, int64(1), data.Columns[0][1].ID)
	assert.Equal(t, int64(2), data.Columns[1][0].ID)
}

func TestSession_LocalizedFailureNotice(t *testing.T) {
	f := newFixture()
	f.assets.err = errors.New("timeout")
	s := f.manager.Create(i18n.LocaleID)

	view, err := s.LoadPage(context.Background(), render.PageAssets, PageOptions{})
	require.NoError(t, err)
	require.NotNil(t, view.State.Notice)
	assert.Equal(t, "Gagal memuat assets database", view.State.Notice.Message)
}

func TestSession_AssetsFilterAndPlaceholder(t *testing.T) {
	f := newFixture()
	s := f.manager.Create(i18n.LocaleEn)

	view, err := s.LoadPage(context.Background(), render.PageAssets, PageOptions{Category: "stickers"})
	require.NoError(t, err)
	data := view.Data.(AssetsData)
	require.Len(t, data.Cards, 1)
	assert.Equal(t, "smile", data.Cards[0].Icon)

	view, err = s.LoadPage(context.Background(), render.PageAssets, PageOptions{Category: "wallpapers"})
	require.NoError(t, err)
	assert.True(t, view.Empty)
	assert.Equal(t, "No assets found", view.Placeholder)
	assert.Nil(t, view.State.Notice)
}

func TestSession_DownloadFlow(t *testing.T) {
	f := newFixture()
	s := f.manager.Create(i18n.LocaleEn)

	_, err := s.InitiateDownload(context.Background(), 7)
	require.NoError(t, err)
	assert.True(t, s.State().Downloads.PromptOpen)

	asset, err := s.ConfirmDownload()
	require.NoError(t, err)
	assert.Equal(t, "Hype Emotes", asset.Name)

	view, err := s.View(render.PageAssets, PageOptions{})
	require.NoError(t, err)
	cards := view.Data.(AssetsData).Cards
	assert.True(t, cards[1].Downloading)
	assert.False(t, cards[0].Downloading)
	assert.Equal(t, "Downloading Hype Emotes...", view.State.Notice.Message)

	_, err = s.InitiateDownload(context.Background(), 7)
	assert.ErrorIs(t, err, uistate.ErrDownloadInProgress)

	f.clock.Advance(2 * time.Second)
	view, err = s.View(render.PageAssets, PageOptions{})
	require.NoError(t, err)
	assert.False(t, view.Data.(AssetsData).Cards[1].Downloading)
	require.NotNil(t, view.State.Notice)
	assert.Equal(t, "Download Complete!", view.State.Notice.Message)

	_, err = s.InitiateDownload(context.Background(), 99)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSession_PeriodChangeReadsOnlyOnChange(t *testing.T) {
	f := newFixture()
	s := f.manager.Create(i18n.LocaleEn)

	view, err := s.LoadPage(context.Background(), render.PageLeaderboards, PageOptions{})
	require.NoError(t, err)
	data := view.Data.(LeaderboardsData)
	assert.Equal(t, domain.PeriodWeekly, data.Period)
	require.Len(t, data.Watchtime, 1)
	assert.Equal(t, "crown", data.Watchtime[0].Badge)
	assert.Len(t, data.Moderators, 1)

	_, err = s.SetPeriod(context.Background(), domain.PeriodWeekly)
	require.NoError(t, err)
	assert.Equal(t, []domain.Period{domain.PeriodWeekly}, f.boards.reads())
	assert.Equal(t, 1, f.boards.moderatorReads())

	view, err = s.SetPeriod(context.Background(), domain.PeriodMonthly)
	require.NoError(t, err)
	assert.Equal(t, []domain.Period{domain.PeriodWeekly, domain.PeriodMonthly}, f.boards.reads())
	assert.Equal(t, 2, f.boards.moderatorReads())
	assert.Len(t, view.Data.(LeaderboardsData).Moderators, 1)
	assert.True(t, view.Empty)
	assert.Equal(t, "No data for this period", view.Placeholder)
	assert.Nil(t, view.State.Notice)
	assert.Equal(t, domain.PeriodMonthly, s.State().Period)

	_, err = s.SetPeriod(context.Background(), "yearly")
	assert.ErrorIs(t, err, common.ErrInvalidInput)
}

func TestSession_ModeratorFailureShowsLeaderboardNotice(t *testing.T) {
	f := newFixture()
	f.boards.modErr = errors.New("moderators: down")
	s := f.manager.Create(i18n.LocaleEn)

	view, err := s.LoadPage(context.Background(), render.PageLeaderboards, PageOptions{})
	require.NoError(t, err)
	require.NotNil(t, view.State.Notice)
	assert.Equal(t, "Failed to load leaderboard", view.State.Notice.Message)
	assert.Empty(t, view.Data.(LeaderboardsData).Moderators)
}

func TestSession_PeriodChangeRecoversModerators(t *testing.T) {
	f := newFixture()
	f.boards.modErr = errors.New("moderators: down")
	s := f.manager.Create(i18n.LocaleEn)

	_, err := s.LoadPage(context.Background(), render.PageLeaderboards, PageOptions{})
	require.NoError(t, err)

	f.boards.mu.Lock()
	f.boards.modErr = nil
	f.boards.mu.Unlock()
	view, err := s.SetPeriod(context.Background(), domain.PeriodMonthly)
	require.NoError(t, err)
	assert.Len(t, view.Data.(LeaderboardsData).Moderators, 1)
	assert.Equal(t, 2, f.boards.moderatorReads())
}

func TestSession_SelectionReplaces(t *testing.T) {
	f := newFixture()
	s := f.manager.Create(i18n.LocaleEn)

	require.NoError(t, s.Select(context.Background(), SelectGallery, 1))
	require.NoError(t, s.Select(context.Background(), SelectGallery, 2))
	assert.Equal(t, int64(2), s.State().GalleryItem.ID)

	assert.ErrorIs(t, s.Select(context.Background(), SelectGallery, 42), common.ErrNotFound)
	assert.ErrorIs(t, s.Select(context.Background(), "video", 1), common.ErrInvalidInput)

	require.NoError(t, s.Select(context.Background(), SelectAsset, 1))
	require.NoError(t, s.ClearSelection(SelectGallery))
	assert.Nil(t, s.State().GalleryItem)
	assert.NotNil(t, s.State().PreviewAsset)

	require.NoError(t, s.ClearSelection(""))
	assert.Nil(t, s.State().PreviewAsset)
}

func TestSession_SelectMember(t *testing.T) {
	f := newFixture()
	s := f.manager.Create(i18n.LocaleEn)

	m, err := s.SelectMember(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "Gaga", m.Name)

	view, err := s.View(render.PageTeam, PageOptions{})
	require.NoError(t, err)
	data := view.Data.(TeamData)
	assert.Equal(t, 1, data.Index)
	assert.Equal(t, "Uqi", data.Members[0].Name)

	_, err = s.SelectMember(context.Background(), 5)
	assert.ErrorIs(t, err, uistate.ErrIndexOutOfRange)
	assert.Equal(t, 1, s.State().ActiveMember)
}

func TestSession_Share(t *testing.T) {
	f := newFixture()
	s := f.manager.Create(i18n.LocaleEn)

	res, err := s.Share(context.Background(), 3, false, false)
	require.NoError(t, err)
	assert.Equal(t, uistate.ShareClipboard, res.Method)
	assert.Equal(t, "Link copied to clipboard!", s.State().Notice.Message)

	_, err = s.Share(context.Background(), 404, true, false)
	assert.ErrorIs(t, err, common.ErrNotFound)
}

func TestSession_CloseDropsInFlightLoad(t *testing.T) {
	f := newFixture()
	started := make(chan struct{})
	f.gallery.list = func(ctx context.Context) ([]*domain.GalleryItem, error) {
		close(started)
		<-ctx.Done()
		return nil, ctx.Err()
	}
	s := f.manager.Create(i18n.LocaleEn)

	done := make(chan error, 1)
	go func() {
		_, err := s.LoadPage(context.Background(), render.PageGallery, PageOptions{})
		done <- err
	}()
	<-started
	require.NoError(t, f.manager.Close(s.ID))

	select {
	case err := <-done:
		assert.ErrorIs(t, err, ErrSessionNotFound)
	case <-time.After(2 * time.Second):
		t.Fatal("load not cancelled")
	}
	assert.Empty(t, f.pub.types(), "no notice after teardown")
	assert.Equal(t, []string{s.ID}, f.pub.disconnected)

	_, err := f.manager.Get(s.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
	assert.ErrorIs(t, f.manager.Close(s.ID), ErrSessionNotFound)
}

func TestManager_SweepClosesIdleSessions(t *testing.T) {
	f := newFixture()
	idle := f.manager.Create(i18n.LocaleEn)
	active := f.manager.Create(i18n.LocaleEn)

	f.clock.Advance(6 * time.Minute)
	_, err := f.manager.Get(active.ID)
	require.NoError(t, err)
	f.clock.Advance(6 * time.Minute)

	assert.Equal(t, 1, f.manager.Sweep())
	assert.Equal(t, 1, f.manager.Len())
	_, err = f.manager.Get(idle.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)

	f.manager.CloseAll()
	assert.Equal(t, 0, f.manager.Len())
}

func TestManager_RunClosesAllOnCancel(t *testing.T) {
	f := newFixture()
	f.manager.Create(i18n.LocaleEn)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		f.manager.Run(ctx)
		close(done)
	}()
	cancel()
	<-done
	assert.Equal(t, 0, f.manager.Len())
}
