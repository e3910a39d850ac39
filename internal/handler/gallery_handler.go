package handler

import (
	"net/http"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/render"
	"github.com/drovic/drovic-backend/internal/service"
	"github.com/drovic/drovic-backend/internal/uistate"
	"github.com/drovic/drovic-backend/pkg/ginutil"
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
)

// maxColumns bounds the masonry width a client may request
const maxColumns = 6

// GalleryHandler serves the media gallery
type GalleryHandler struct {
	service service.GalleryService
	columns int
	texts   texts
}

// NewGalleryHandler creates a new GalleryHandler. columns is the default masonry width.
func NewGalleryHandler(service service.GalleryService, columns int, bundle *i18n.Bundle) *GalleryHandler {
	return &GalleryHandler{service: service, columns: columns, texts: texts{bundle: bundle}}
}

// List handles GET /gallery
// @Summary Gallery items split into masonry columns
// @Tags gallery
// @Produce json
// @Param columns query int false "column count"
// @Success 200 {object} common.APIResponse{data=[][]domain.GalleryItem}
// @Failure 502 {object} common.APIResponse
// @Router /gallery [get]
func (h *GalleryHandler) List(c *gin.Context) {
	columns := ginutil.QueryIntRange(c, "columns", h.columns, 1, maxColumns)

	items, err := h.service.List(c.Request.Context())
	if err != nil {
		h.texts.fail(c, err)
		return
	}

	meta := &common.Meta{Total: len(items), Columns: columns, Empty: len(items) == 0}
	if meta.Empty {
		meta.Message = h.texts.placeholder(c, render.PageGallery)
	}
	common.SuccessResponse(c, render.Columns(items, columns), meta)
}

// Share handles GET /gallery/:id/share
// @Summary Native share payload of a gallery item
// @Tags gallery
// @Produce json
// @Param id path int true "gallery item id"
// @Success 200 {object} common.APIResponse{data=domain.SharePayload}
// @Failure 404 {object} common.APIResponse
// @Router /gallery/{id}/share [get]
func (h *GalleryHandler) Share(c *gin.Context) {
	id, err := ginutil.ParamID(c, "id")
	if err != nil {
		common.ErrorResponse(c, http.StatusBadRequest, h.texts.msg(c, "error.bad_request", "Invalid request"), err)
		return
	}

	item, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.texts.fail(c, err)
		return
	}
	common.SuccessResponse(c, uistate.SharePayloadFor(item), nil)
}
