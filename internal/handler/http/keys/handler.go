// Package keys exposes the public-key registry surface (spec §6).
package keys

import (
	"github.com/gin-gonic/gin"

	keyssvc "vaultchat-backend/internal/service/keys"
	apperr "vaultchat-backend/pkg/errors"
	"vaultchat-backend/pkg/response"
)

// Handler wraps the keys service as gin routes.
type Handler struct {
	keys *keyssvc.Service
}

// New returns a keys Handler.
func New(svc *keyssvc.Service) *Handler {
	return &Handler{keys: svc}
}

type registerRequest struct {
	UserID    string `json:"user_id"`
	PublicKey string `json:"public_key"`
}

// Register upserts a user's public key.
func (h *Handler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.BadRequest("malformed request body"))
		return
	}
	if err := h.keys.Register(req.UserID, req.PublicKey); err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 201, gin.H{"status": "registered", "user_id": req.UserID})
}

// Get returns a user's registered public key PEM.
func (h *Handler) Get(c *gin.Context) {
	userID := c.Param("user_id")
	pem, err := h.keys.Get(userID)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, gin.H{"user_id": userID, "public_key": pem})
}

// ServerPublicKey returns the server's own RSA public key PEM.
func (h *Handler) ServerPublicKey(c *gin.Context) {
	pem, err := h.keys.ServerPublicKeyPEM()
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, gin.H{"public_key": pem})
}
