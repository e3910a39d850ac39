package handler

import (
	"net/http"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/config"
	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/middleware"
	"github.com/drovic/drovic-backend/internal/render"
	"github.com/drovic/drovic-backend/internal/session"
	"github.com/drovic/drovic-backend/pkg/ginutil"
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
)

// SessionHandler exposes page sessions: per-visitor notice, overlay and download state
type SessionHandler struct {
	manager *session.Manager
	columns int
	texts   texts
}

// NewSessionHandler creates a new SessionHandler
func NewSessionHandler(manager *session.Manager, ui config.UIConfig, bundle *i18n.Bundle) *SessionHandler {
	return &SessionHandler{manager: manager, columns: ui.MasonryColumns, texts: texts{bundle: bundle}}
}

// PeriodRequest switches the leaderboard period
type PeriodRequest struct {
	Period domain.Period `json:"period" binding:"required,oneof=weekly monthly"`
}

// SelectionRequest opens a detail overlay
type SelectionRequest struct {
	Kind string `json:"kind" binding:"required,oneof=gallery asset"`
	ID   int64  `json:"id" binding:"required"`
}

// ShareRequest reports a share attempt made by the browser
type ShareRequest struct {
	Native bool `json:"native"`
	Failed bool `json:"failed"`
}

func (h *SessionHandler) session(c *gin.Context) (*session.Session, bool) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		h.texts.fail(c, err)
		return nil, false
	}
	return s, true
}

func (h *SessionHandler) badRequest(c *gin.Context, err error) {
	common.ErrorResponse(c, http.StatusBadRequest, h.texts.msg(c, "error.bad_request", "Invalid request"), err)
}

// Create handles POST /sessions
// @Summary Open a page session
// @Tags sessions
// @Produce json
// @Success 201 {object} common.APIResponse{data=session.State}
// @Router /sessions [post]
func (h *SessionHandler) Create(c *gin.Context) {
	s := h.manager.Create(middleware.GetLocale(c))
	c.JSON(http.StatusCreated, common.APIResponse{Data: s.State()})
}

// Get handles GET /sessions/:sid
// @Summary Session state
// @Tags sessions
// @Produce json
// @Param sid path string true "session id"
// @Success 200 {object} common.APIResponse{data=session.State}
// @Failure 404 {object} common.APIResponse
// @Router /sessions/{sid} [get]
func (h *SessionHandler) Get(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	common.SuccessResponse(c, s.State(), nil)
}

// Close handles DELETE /sessions/:sid
// @Summary Close a page session
// @Tags sessions
// @Param sid path string true "session id"
// @Success 204
// @Failure 404 {object} common.APIResponse
// @Router /sessions/{sid} [delete]
func (h *SessionHandler) Close(c *gin.Context) {
	if err := h.manager.Close(c.Param("sid")); err != nil {
		h.texts.fail(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Page handles GET /sessions/:sid/pages/:page
// @Summary Mount a list page and return its view
// @Tags sessions
// @Produce json
// @Param sid path string true "session id"
// @Param page path string true "assets, gallery, leaderboards or team"
// @Param category query string false "asset filter tab"
// @Param columns query int false "gallery column count"
// @Success 200 {object} common.APIResponse{data=session.PageView}
// @Failure 404 {object} common.APIResponse
// @Router /sessions/{sid}/pages/{page} [get]
func (h *SessionHandler) Page(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	opts := session.PageOptions{
		Category: domain.AssetCategory(c.Query("category")),
		Columns:  ginutil.QueryIntRange(c, "columns", h.columns, 1, maxColumns),
	}
	view, err := s.LoadPage(c.Request.Context(), render.Page(c.Param("page")), opts)
	if err != nil {
		h.texts.fail(c, err)
		return
	}
	common.SuccessResponse(c, view, nil)
}

// SetPeriod handles PUT /sessions/:sid/pages/leaderboards/period
// @Summary Switch the leaderboard period
// @Tags sessions
// @Accept json
// @Produce json
// @Param sid path string true "session id"
// @Param body body PeriodRequest true "period"
// @Success 200 {object} common.APIResponse{data=session.PageView}
// @Failure 400 {object} common.APIResponse
// @Router /sessions/{sid}/pages/leaderboards/period [put]
func (h *SessionHandler) SetPeriod(c *gin.Context) {
	var req PeriodRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	view, err := s.SetPeriod(c.Request.Context(), req.Period)
	if err != nil {
		h.texts.fail(c, err)
		return
	}
	common.SuccessResponse(c, view, nil)
}

// Select handles PUT /sessions/:sid/selection
// @Summary Open the detail overlay of a gallery item or asset
// @Tags sessions
// @Accept json
// @Produce json
// @Param sid path string true "session id"
// @Param body body SelectionRequest true "selection"
// @Success 200 {object} common.APIResponse{data=session.State}
// @Failure 404 {object} common.APIResponse
// @Router /sessions/{sid}/selection [put]
func (h *SessionHandler) Select(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badRequest(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.Select(c.Request.Context(), req.Kind, req.ID); err != nil {
		h.texts.fail(c, err)
		return
	}
	common.SuccessResponse(c, s.State(), nil)
}

// ClearSelection handles DELETE /sessions/:sid/selection
// @Summary Close detail overlays
// @Tags sessions
// @Produce json
// @Param sid path string true "session id"
// @Param kind query string false "gallery or asset; empty closes both"
// @Success 200 {object} common.APIResponse{data=session.State}
// @Router /sessions/{sid}/selection [delete]
func (h *SessionHandler) ClearSelection(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if err := s.ClearSelection(c.Query("kind")); err != nil {
		h.texts.fail(c, err)
		return
	}
	common.SuccessResponse(c, s.State(), nil)
}

// SelectMember handles PUT /sessions/:sid/team/:index
// @Summary Show a team member in the detail view
// @Tags sessions
// @Produce json
// @Param sid path string true "session id"
// @Param index path int true "zero-based position"
// @Success 200 {object} common.APIResponse{data=session.PageView}
// @Failure 400 {object} common.APIResponse
// @Router /sessions/{sid}/team/{index} [put]
func (h *SessionHandler) SelectMember(c *gin.Context) {
	index, err := ginutil.ParamIndex(c, "index")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	if _, err := s.SelectMember(c.Request.Context(), index); err != nil {
		h.texts.fail(c, err)
		return
	}
	view, err := s.View(render.PageTeam, session.PageOptions{})
	if err != nil {
		h.texts.fail(c, err)
		return
	}
	common.SuccessResponse(c, view, nil)
}

// InitiateDownload handles POST /sessions/:sid/downloads/:assetId
// @Summary Open the download confirmation prompt
// @Tags sessions
// @Produce json
// @Param sid path string true "session id"
// @Param assetId path int true "asset id"
// @Success 200 {object} common.APIResponse{data=session.State}
// @Failure 409 {object} common.APIResponse
// @Router /sessions/{sid}/downloads/{assetId} [post]
func (h *SessionHandler) InitiateDownload(c *gin.Context) {
	id, err := ginutil.ParamID(c, "assetId")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	if _, err := s.InitiateDownload(c.Request.Context(), id); err != nil {
		h.texts.fail(c, err)
		return
	}
	common.SuccessResponse(c, s.State(), nil)
}

// ConfirmDownload handles POST /sessions/:sid/downloads/confirm
// @Summary Confirm the pending download
// @Tags sessions
// @Produce json
// @Param sid path string true "session id"
// @Success 200 {object} common.APIResponse{data=session.State}
// @Failure 409 {object} common.APIResponse
// @Router /sessions/{sid}/downloads/confirm [post]
func (h *SessionHandler) ConfirmDownload(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	if _, err := s.ConfirmDownload(); err != nil {
		h.texts.fail(c, err)
		return
	}
	common.SuccessResponse(c, s.State(), nil)
}

// CancelDownload handles DELETE /sessions/:sid/downloads/confirm
// @Summary Dismiss the download prompt
// @Tags sessions
// @Produce json
// @Param sid path string true "session id"
// @Success 200 {object} common.APIResponse{data=session.State}
// @Router /sessions/{sid}/downloads/confirm [delete]
func (h *SessionHandler) CancelDownload(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.CancelDownload()
	common.SuccessResponse(c, s.State(), nil)
}

// Share handles POST /sessions/:sid/share/:id
// @Summary Record a share attempt and show its notice
// @Tags sessions
// @Accept json
// @Produce json
// @Param sid path string true "session id"
// @Param id path int true "gallery item id"
// @Param body body ShareRequest false "outcome"
// @Success 200 {object} common.APIResponse{data=uistate.ShareResult}
// @Failure 404 {object} common.APIResponse
// @Router /sessions/{sid}/share/{id} [post]
func (h *SessionHandler) Share(c *gin.Context) {
	id, err := ginutil.ParamID(c, "id")
	if err != nil {
		h.badRequest(c, err)
		return
	}
	var req ShareRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			h.badRequest(c, err)
			return
		}
	}
	s, ok := h.session(c)
	if !ok {
		return
	}
	res, err := s.Share(c.Request.Context(), id, req.Native, req.Failed)
	if err != nil {
		h.texts.fail(c, err)
		return
	}
	common.SuccessResponse(c, res, nil)
}

// DismissNotice handles DELETE /sessions/:sid/notice
// @Summary Hide the visible notice early
// @Tags sessions
// @Produce json
// @Param sid path string true "session id"
// @Success 200 {object} common.APIResponse{data=session.State}
// @Router /sessions/{sid}/notice [delete]
func (h *SessionHandler) DismissNotice(c *gin.Context) {
	s, ok := h.session(c)
	if !ok {
		return
	}
	s.DismissNotice()
	common.SuccessResponse(c, s.State(), nil)
}
