package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/drovic/drovic-backend/internal/common"
	"github.com/drovic/drovic-backend/internal/loader"
	"github.com/drovic/drovic-backend/internal/middleware"
	"github.com/drovic/drovic-backend/internal/render"
	"github.com/drovic/drovic-backend/internal/session"
	"github.com/drovic/drovic-backend/internal/uistate"
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
)

// texts localizes handler messages; a nil bundle falls back to English defaults
type texts struct {
	bundle *i18n.Bundle
}

func (t texts) msg(c *gin.Context, key, def string) string {
	if t.bundle == nil {
		return def
	}
	if m := t.bundle.T(middleware.GetLocale(c), key); m != key {
		return m
	}
	return def
}

func (t texts) placeholder(c *gin.Context, page render.Page) string {
	return t.msg(c, "placeholder."+string(page), render.Placeholder(page))
}

// fail maps a service or session error to a status and a generic message.
// The cause is attached to the gin context for the request logger only.
func (t texts) fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, loader.ErrClosed):
		common.ErrorResponse(c, http.StatusNotFound, t.msg(c, "session.not_found", "Session not found or expired"), err)
	case errors.Is(err, common.ErrNotFound),
		errors.Is(err, session.ErrUnknownPage):
		common.ErrorResponse(c, http.StatusNotFound, t.msg(c, "error.not_found", "Not found"), err)
	case errors.Is(err, common.ErrInvalidInput),
		errors.Is(err, uistate.ErrIndexOutOfRange):
		common.ErrorResponse(c, http.StatusBadRequest, t.msg(c, "error.bad_request", "Invalid request"), err)
	case errors.Is(err, uistate.ErrDownloadInProgress):
		common.ErrorResponse(c, http.StatusConflict, t.msg(c, "error.download_in_progress", "Another download is already in progress"), err)
	case errors.Is(err, uistate.ErrNothingPending):
		common.ErrorResponse(c, http.StatusConflict, t.msg(c, "error.nothing_pending", "There is no download waiting for confirmation"), err)
	case errors.Is(err, common.ErrLoadFailed):
		common.ErrorResponse(c, http.StatusBadGateway, t.msg(c, "error.load_failed", "Failed to load data"), err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		common.ErrorResponse(c, http.StatusServiceUnavailable, t.msg(c, "error.internal", "Request cancelled"), err)
	default:
		common.ErrorResponse(c, http.StatusInternalServerError, t.msg(c, "error.internal", "Internal server error"), err)
	}
}
