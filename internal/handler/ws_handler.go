package handler

import (
	"net/http"
	"strings"

	"github.com/drovic/drovic-backend/internal/session"
	"github.com/drovic/drovic-backend/internal/ws"
	"github.com/drovic/drovic-backend/pkg/i18n"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// WSHandler attaches WebSockets to page sessions
type WSHandler struct {
	hub            *ws.Hub
	manager        *session.Manager
	allowedOrigins []string
	upgrader       websocket.Upgrader
	texts          texts
}

// NewWSHandler creates a new WSHandler. allowedOrigins is comma-separated;
// empty allows every origin.
func NewWSHandler(hub *ws.Hub, manager *session.Manager, allowedOrigins string, bundle *i18n.Bundle) *WSHandler {
	h := &WSHandler{
		hub:            hub,
		manager:        manager,
		allowedOrigins: parseOrigins(allowedOrigins),
		texts:          texts{bundle: bundle},
	}
	h.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	return h
}

func parseOrigins(origins string) []string {
	if origins == "" {
		return nil
	}
	parts := strings.Split(origins, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" && trimmed != "*" {
			result = append(result, trimmed)
		}
	}
	return result
}

func (h *WSHandler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(h.allowedOrigins) == 0 {
		return true
	}
	for _, allowed := range h.allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// Connect handles GET /ws/sessions/:sid
// @Summary Session event stream (notice.show, notice.hide, download.progress)
// @Tags sessions
// @Param sid path string true "session id"
// @Failure 404 {object} common.APIResponse
// @Router /ws/sessions/{sid} [get]
func (h *WSHandler) Connect(c *gin.Context) {
	s, err := h.manager.Get(c.Param("sid"))
	if err != nil {
		h.texts.fail(c, err)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	client := ws.NewClient(h.hub, conn, s.ID)
	h.hub.Register(client)

	go client.WritePump()
	go client.ReadPump()
}
