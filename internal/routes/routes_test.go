package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/config"
	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/handler"
	"github.com/drovic/drovic-backend/internal/middleware"
	"github.com/drovic/drovic-backend/internal/service"
	"github.com/drovic/drovic-backend/internal/session"
	"github.com/drovic/drovic-backend/internal/uistate"
	"github.com/drovic/drovic-backend/internal/ws"
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAssets struct{}

func (stubAssets) List(ctx context.Context) ([]*domain.Asset, error) {
	return []*domain.Asset{{ID: 1, Name: "Laugh Pack", Category: "stickers"}}, nil
}
func (s stubAssets) ListByCategory(ctx context.Context, c domain.AssetCategory) ([]*domain.Asset, error) {
	return s.List(ctx)
}
func (stubAssets) Get(ctx context.Context, id int64) (*domain.Asset, error) {
	return nil, common.ErrNotFound
}

type stubGallery struct{}

func (stubGallery) List(ctx context.Context) ([]*domain.GalleryItem, error) {
	return []*domain.GalleryItem{{ID: 5, Title: "Clip", URL: "/gallery/5"}}, nil
}
func (stubGallery) Get(ctx context.Context, id int64) (*domain.GalleryItem, error) {
	return &domain.GalleryItem{ID: id, Title: "Clip"}, nil
}

type stubBoards struct{}

func (stubBoards) Entries(ctx context.Context, p domain.Period) ([]*domain.LeaderboardEntry, error) {
	return nil, nil
}
func (stubBoards) Moderators(ctx context.Context) ([]*domain.Moderator, error) { return nil, nil }

type stubTeam struct{}

func (stubTeam) List(ctx context.Context) ([]*domain.TeamMember, error) { return nil, nil }
func (stubTeam) Get(ctx context.Context, i int) (*domain.TeamMember, error) {
	return nil, common.ErrNotFound
}

type app struct {
	router *gin.Engine
	hub    *ws.Hub
	clock  *uistate.FakeClock
}

func newApp(t *testing.T) *app {
	t.Helper()
	gin.SetMode(gin.TestMode)

	bundle := i18n.NewBundle(i18n.LocaleEn)
	for locale, msgs := range i18n.DefaultMessages() {
		bundle.LoadMessages(locale, msgs)
	}
	hub := ws.NewHub(nil)
	go hub.Run()
	t.Cleanup(hub.Stop)

	clock := uistate.NewFakeClock(time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	var (
		assets  service.AssetService       = stubAssets{}
		gallery service.GalleryService     = stubGallery{}
		boards  service.LeaderboardService = stubBoards{}
		team    service.TeamService        = stubTeam{}
	)
	manager := session.NewManager(session.Sources{Assets: assets, Gallery: gallery, Leaderboards: boards, Team: team},
		bundle, hub, session.Options{Clock: clock})
	t.Cleanup(manager.CloseAll)

	router := gin.New()
	router.Use(middleware.I18n())
	Setup(router, Handlers{
		Site:        handler.NewSiteHandler(service.NewSiteService(config.DefaultSite(), boards)),
		Asset:       handler.NewAssetHandler(assets, bundle),
		Gallery:     handler.NewGalleryHandler(gallery, 4, bundle),
		Leaderboard: handler.NewLeaderboardHandler(boards, bundle),
		Team:        handler.NewTeamHandler(team, bundle),
		Session:     handler.NewSessionHandler(manager, config.UIConfig{MasonryColumns: 4}, bundle),
		WS:          handler.NewWSHandler(hub, manager, "", bundle),
	}, nil, time.Minute)

	return &app{router: router, hub: hub, clock: clock}
}

func TestSetup_RegistersRoutes(t *testing.T) {
	a := newApp(t)

	registered := map[string]bool{}
	for _, r := range a.router.Routes() {
		registered[r.Method+" "+r.Path] = true
	}
	for _, want := range []string{
		"GET /api/v1/home",
		"GET /api/v1/moments",
		"GET /api/v1/assets",
		"GET /api/v1/gallery",
		"GET /api/v1/leaderboards",
		"GET /api/v1/team/:index",
		"POST /api/v1/sessions",
		"GET /api/v1/sessions/:sid/pages/:page",
		"POST /api/v1/sessions/:sid/downloads/confirm",
		"POST /api/v1/sessions/:sid/downloads/:assetId",
		"DELETE /api/v1/sessions/:sid/notice",
		"GET /ws/sessions/:sid",
	} {
		assert.True(t, registered[want], want)
	}
}

func TestSetup_SitePagesWithoutDatabase(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	Setup(router, Handlers{
		Site: handler.NewSiteHandler(service.NewSiteService(config.DefaultSite(), nil)),
	}, nil, time.Minute)

	for _, path := range []string{"/api/v1/home", "/api/v1/moments", "/api/v1/socials"} {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusOK, w.Code, path)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/api/v1/sessions", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSetup_HomeDegradesWithEmptyBoards(t *testing.T) {
	a := newApp(t)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/home", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Data domain.HomePage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Len(t, body.Data.Stats, 3)
	assert.Empty(t, body.Data.Watchtime)
	require.NotEmpty(t, body.Data.Socials)
	assert.Equal(t, "_blank", body.Data.Socials[0].Target)
}

func TestSessionEventsReachWebSocket(t *testing.T) {
	a := newApp(t)
	srv := httptest.NewServer(a.router)
	t.Cleanup(srv.Close)

	resp, err := http.Post(srv.URL+"/api/v1/sessions", "application/json", nil)
	require.NoError(t, err)
	var created struct {
		Data session.State `json:"data"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	resp.Body.Close()
	sid := created.Data.ID

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/ws/sessions/"+sid, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	require.Eventually(t, func() bool { return a.hub.ClientCount(sid) == 1 }, 2*time.Second, 10*time.Millisecond)

	body, _ := json.Marshal(handler.ShareRequest{Native: true})
	resp, err = http.Post(srv.URL+"/api/v1/sessions/"+sid+"/share/5", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var ev struct {
		Type    string        `json:"type"`
		Payload domain.Notice `json:"payload"`
	}
	require.NoError(t, conn.ReadJSON(&ev))
	assert.Equal(t, uistate.EventNoticeShow, ev.Type)
	assert.Equal(t, "Shared successfully!", ev.Payload.Message)
}

func TestWebSocket_UnknownSession(t *testing.T) {
	a := newApp(t)

	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ws/sessions/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}
