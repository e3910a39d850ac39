package handler

import (
	"net/http"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/render"
	"github.com/drovic/drovic-backend/internal/service"
	"github.com/drovic/drovic-backend/pkg/ginutil"
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
)

// TeamHandler serves the team roster
type TeamHandler struct {
	service service.TeamService
	texts   texts
}

// NewTeamHandler creates a new TeamHandler
func NewTeamHandler(service service.TeamService, bundle *i18n.Bundle) *TeamHandler {
	return &TeamHandler{service: service, texts: texts{bundle: bundle}}
}

// List handles GET /team
// @Summary Team roster
// @Tags team
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]render.TeamCard}
// @Router /team [get]
func (h *TeamHandler) List(c *gin.Context) {
	members, err := h.service.List(c.Request.Context())
	if err != nil {
		h.texts.fail(c, err)
		return
	}
	meta := &common.Meta{Total: len(members), Empty: len(members) == 0}
	if meta.Empty {
		meta.Message = h.texts.placeholder(c, render.PageTeam)
	}
	common.SuccessResponse(c, render.TeamCards(members), meta)
}

// Get handles GET /team/:index
// @Summary Team member by roster position
// @Tags team
// @Produce json
// @Param index path int true "zero-based position"
// @Success 200 {object} common.APIResponse{data=render.TeamCard}
// @Failure 404 {object} common.APIResponse
// @Router /team/{index} [get]
func (h *TeamHandler) Get(c *gin.Context) {
	index, err := ginutil.ParamIndex(c, "index")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, h.texts.msg(c, "error.bad_request", "Invalid request"), err)
		return
	}
	m, err := h.service.Get(c.Request.Context(), index)
	if err != nil {
		h.texts.fail(c, err)
		return
	}
	common.SuccessResponse(c, render.TeamCard{TeamMember: m, Gradient: render.GradientFor(m.Color)}, nil)
}
