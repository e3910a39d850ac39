package routes

import (
	"time"

	"github.com/drovic/drovic-backend/internal/handler"
	"github.com/drovic/drovic-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// Handlers groups every HTTP handler of the API
type Handlers struct {
	Site        *handler.SiteHandler
	Asset       *handler.AssetHandler
	Gallery     *handler.GalleryHandler
	Leaderboard *handler.LeaderboardHandler
	Team        *handler.TeamHandler
	Session     *handler.SessionHandler
	WS          *handler.WSHandler
}

// Setup configures all API routes. redisClient may be nil; the stateless
// reads are then served without the response cache. Only Site is required;
// routes of nil handlers are not registered.
func Setup(router *gin.Engine, h Handlers, redisClient *redis.Client, responseTTL time.Duration) {
	api := router.Group("/api/v1")

	// Stateless reads (response-cached)
	reads := api.Group("", middleware.CacheWithTTL(redisClient, responseTTL))
	reads.GET("/home", h.Site.Home)
	reads.GET("/moments", h.Site.Moments)
	reads.GET("/socials", h.Site.Socials)
	if h.Asset != nil {
		reads.GET("/assets", h.Asset.List)
	}
	if h.Gallery != nil {
		reads.GET("/gallery", h.Gallery.List)
		reads.GET("/gallery/:id/share", h.Gallery.Share)
	}
	if h.Leaderboard != nil {
		reads.GET("/leaderboards", h.Leaderboard.List)
	}
	if h.Team != nil {
		reads.GET("/team", h.Team.List)
		reads.GET("/team/:index", h.Team.Get)
	}

	if h.Session == nil {
		return
	}

	// Page sessions (never cached)
	sessions := api.Group("/sessions")
	sessions.POST("", h.Session.Create)
	sessions.GET("/:sid", h.Session.Get)
	sessions.DELETE("/:sid", h.Session.Close)
	sessions.GET("/:sid/pages/:page", h.Session.Page)
	sessions.PUT("/:sid/pages/leaderboards/period", h.Session.SetPeriod)
	sessions.PUT("/:sid/selection", h.Session.Select)
	sessions.DELETE("/:sid/selection", h.Session.ClearSelection)
	sessions.PUT("/:sid/team/:index", h.Session.SelectMember)
	sessions.POST("/:sid/downloads/confirm", h.Session.ConfirmDownload)
	sessions.DELETE("/:sid/downloads/confirm", h.Session.CancelDownload)
	sessions.POST("/:sid/downloads/:assetId", h.Session.InitiateDownload)
	sessions.POST("/:sid/share/:id", h.Session.Share)
	sessions.DELETE("/:sid/notice", h.Session.DismissNotice)

	if h.WS != nil {
		router.GET("/ws/sessions/:sid", h.WS.Connect)
	}
}
