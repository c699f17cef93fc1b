// internal/handlers/ws/ws_handler.go
package ws

import (
	"net/http"

	"github.com/kubilayakkiz/wawainteriorsNL/internal/pkg/response"
	ws "github.com/kubilayakkiz/wawainteriorsNL/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is enforced at the HTTP layer; the handshake itself is
		// gated by the admin token check below.
		return true
	},
}

type WSHandler struct {
	hub    *ws.Hub
	logger *zap.Logger
}

func NewWSHandler(hub *ws.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		logger: logger,
	}
}

// Connect upgrades an admin dashboard connection. The token travels in
// the query string because browsers cannot set headers on a websocket
// handshake.
func (h *WSHandler) Connect(c *gin.Context) {
	token := c.Query("token")
	if token == "" {
		response.Unauthorized(c, "missing token")
		return
	}

	sess, err := h.hub.AuthenticateClient(c.Request.Context(), token)
	if err != nil {
		h.logger.Warn("websocket auth failed", zap.Error(err))
		response.Unauthorized(c, "invalid or expired token")
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", zap.Error(err))
		return
	}

	client := ws.NewClient(h.hub, conn, sess)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
