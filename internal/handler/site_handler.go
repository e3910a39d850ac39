package handler

import (
	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/service"
	"github.com/gin-gonic/gin"
)

// SiteHandler serves the static pages
type SiteHandler struct {
	service service.SiteService
}

// NewSiteHandler creates a new SiteHandler
func NewSiteHandler(service service.SiteService) *SiteHandler {
	return &SiteHandler{service: service}
}

// Home handles GET /home
// @Summary Home page content
// @Tags site
// @Produce json
// @Success 200 {object} common.APIResponse{data=domain.HomePage}
// @Router /home [get]
func (h *SiteHandler) Home(c *gin.Context) {
	common.SuccessResponse(c, h.service.Home(c.Request.Context()), nil)
}

// Moments handles GET /moments
// @Summary Moments wall
// @Tags site
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.Moment}
// @Router /moments [get]
func (h *SiteHandler) Moments(c *gin.Context) {
	moments := h.service.Moments()
	common.SuccessResponse(c, moments, &common.Meta{Total: len(moments), Empty: len(moments) == 0})
}

// Socials handles GET /socials
// @Summary Outbound social links
// @Tags site
// @Produce json
// @Success 200 {object} common.APIResponse{data=[]domain.SocialLink}
// @Router /socials [get]
func (h *SiteHandler) Socials(c *gin.Context) {
	common.SuccessResponse(c, h.service.Socials(), nil)
}
