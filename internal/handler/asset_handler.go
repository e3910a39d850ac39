package handler

import (
	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/domain"
	"github.com/drovic/drovic-backend/internal/render"
	"github.com/drovic/drovic-backend/internal/service"
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
)

// AssetHandler serves the assets library
type AssetHandler struct {
	service service.AssetService
	texts   texts
}

// NewAssetHandler creates a new AssetHandler
func NewAssetHandler(service service.AssetService, bundle *i18n.Bundle) *AssetHandler {
	return &AssetHandler{service: service, texts: texts{bundle: bundle}}
}

// List handles GET /assets
// @Summary Downloadable assets
// @Tags assets
// @Produce json
// @Param category query string false "all, stickers, emotes, gifs, wallpapers"
// @Success 200 {object} common.APIResponse{data=[]render.AssetCard}
// @Failure 502 {object} common.APIResponse
// @Router /assets [get]
func (h *AssetHandler) List(c *gin.Context) {
	category := domain.AssetCategory(c.DefaultQuery("category", string(domain.AssetCategoryAll)))

	assets, err := h.service.ListByCategory(c.Request.Context(), category)
	if err != nil {
		h.texts.fail(c, err)
		return
	}

	meta := &common.Meta{Total: len(assets), Filter: string(category), Empty: len(assets) == 0}
	if meta.Empty {
		meta.Message = h.texts.placeholder(c, render.PageAssets)
	}
	common.SuccessResponse(c, render.AssetCards(assets, nil), meta)
}
