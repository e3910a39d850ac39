package handler

import (
	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/render"
	"github.com/drovic/drovic-backend/internal/service"
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
)

// LeaderboardHandler serves both boards and the moderator list
type LeaderboardHandler struct {
	service service.LeaderboardService
	texts   texts
}

// NewLeaderboardHandler creates a new LeaderboardHandler
func NewLeaderboardHandler(service service.LeaderboardService, bundle *i18n.Bundle) *LeaderboardHandler {
	return &LeaderboardHandler{service: service, texts: texts{bundle: bundle}}
}

// LeaderboardResponse is the leaderboards page payload
type LeaderboardResponse struct {
	Watchtime  []render.RankedRow  `json:"watchtime"`
	Powerful   []render.RankedRow  `json:"powerful"`
	Moderators []*domain.Moderator `json:"moderators"`
}

// List handles GET /leaderboards
// @Summary Leaderboards of a period
// @Tags leaderboards
// @Produce json
// @Param period query string false "weekly or monthly" default(weekly)
// @Success 200 {object} common.APIResponse{data=LeaderboardResponse}
// @Failure 400 {object} common.APIResponse
// @Failure 502 {object} common.APIResponse
// @Router /leaderboards [get]
func (h *LeaderboardHandler) List(c *gin.Context) {
	period := domain.Period(c.DefaultQuery("period", string(domain.PeriodWeekly)))
	ctx := c.Request.Context()

	entries, err := h.service.Entries(ctx, period)
	if err != nil {
		h.texts.fail(c, err)
		return
	}
	mods, err := h.service.Moderators(ctx)
	if err != nil {
		h.texts.fail(c, err)
		return
	}
	if mods == nil {
		mods = []*domain.Moderator{}
	}

	boards := render.SplitLeaderboard(entries)
	meta := &common.Meta{Total: len(entries), Period: string(period), Empty: len(entries) == 0}
	if meta.Empty {
		meta.Message = h.texts.placeholder(c, render.PageLeaderboards)
	}
	common.SuccessResponse(c, LeaderboardResponse{
		Watchtime:  render.RankedRows(boards.Watchtime),
		Powerful:   render.RankedRows(boards.Powerful),
		Moderators: mods,
	}, meta)
}
