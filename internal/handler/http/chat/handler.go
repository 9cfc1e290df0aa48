// Package chat exposes the chat send/inbox/websocket surface (spec §4.10).
package chat

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vaultchat-backend/internal/handler/ws"
	chatsvc "vaultchat-backend/internal/service/chat"
	apperr "vaultchat-backend/pkg/errors"
	"vaultchat-backend/pkg/response"
)

// Handler wraps the chat service as gin routes.
type Handler struct {
	chat *chatsvc.Service
	hub  *ws.Hub
}

// New returns a chat Handler. hub may be nil to disable the websocket
// route entirely.
func New(chat *chatsvc.Service, hub *ws.Hub) *Handler {
	return &Handler{chat: chat, hub: hub}
}

type sendRequest struct {
	EncryptedMessage string `json:"encrypted_message"`
	EncryptedKey     string `json:"encrypted_key"`
	Receiver         string `json:"receiver"`
}

type sendResponse struct {
	MessageID string `json:"message_id"`
	Expiry    string `json:"expiry"`
}

// Send persists a new chat message for receiver.
func (h *Handler) Send(c *gin.Context) {
	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.BadRequest("malformed request body"))
		return
	}

	result, err := h.chat.Send(req.EncryptedMessage, req.EncryptedKey, req.Receiver)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}

	response.JSON(c, 201, sendResponse{MessageID: result.MessageID, Expiry: result.Expiry})
}

// Inbox returns every chat record addressed to the path's user_id.
func (h *Handler) Inbox(c *gin.Context) {
	userID := c.Param("user_id")
	entries, err := h.chat.Inbox(userID)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, entries)
}

// WebSocket upgrades the connection and streams best-effort inbox push
// notifications for the path's user_id.
func (h *Handler) WebSocket(c *gin.Context) {
	if h.hub == nil {
		c.Status(http.StatusNotImplemented)
		return
	}
	userID := c.Param("user_id")
	if err := h.hub.ServeWS(c.Writer, c.Request, userID); err != nil {
		response.Error(c, apperr.Internal("websocket upgrade failed"))
	}
}
