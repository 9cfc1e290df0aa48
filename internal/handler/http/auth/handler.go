// Package auth exposes the anonymous submission surface: the identity
// diagnostic, admission pipeline, and read-back endpoint (spec §4.7-4.9).
package auth

import (
	"github.com/gin-gonic/gin"

	"vaultchat-backend/internal/cryptoutil/commitment"
	"vaultchat-backend/internal/service/submission"
	apperr "vaultchat-backend/pkg/errors"
	"vaultchat-backend/pkg/response"
)

// Handler wraps the submission service as gin routes.
type Handler struct {
	submissions *submission.Service
}

// New returns an auth Handler.
func New(submissions *submission.Service) *Handler {
	return &Handler{submissions: submissions}
}

type identityResponse struct {
	IdentitySecret string `json:"identity_secret"`
	Nullifier      string `json:"nullifier"`
	Commitment     string `json:"commitment"`
}

// Identity is a server-side convenience for generating a fresh identity
// triple; real clients generate theirs locally and never send the secret.
func (h *Handler) Identity(c *gin.Context) {
	secret, err := commitment.GenerateIdentitySecret()
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	nullifier := commitment.DeriveNullifier(secret)
	response.JSON(c, 200, identityResponse{
		IdentitySecret: secret,
		Nullifier:      nullifier,
		Commitment:     commitment.DeriveCommitment(nullifier),
	})
}

type submitRequest struct {
	Data       string `json:"data"`
	Commitment string `json:"commitment"`
	Nonce      string `json:"nonce"`
}

type submitResponse struct {
	Status string `json:"status"`
	MsgID  string `json:"msg_id"`
	Expiry string `json:"expiry"`
}

// Submit runs the full admission pipeline.
func (h *Handler) Submit(c *gin.Context) {
	var req submitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.BadRequest("malformed request body"))
		return
	}

	result, err := h.submissions.Admit(req.Data, req.Commitment, req.Nonce)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}

	response.JSON(c, 201, submitResponse{Status: "accepted", MsgID: result.MsgID, Expiry: result.Expiry})
}

type readResponse struct {
	MsgID  string `json:"msg_id"`
	Data   string `json:"data"`
	Expiry string `json:"expiry"`
}

// Read returns a submission's decrypted plaintext, or Gone once expired.
func (h *Handler) Read(c *gin.Context) {
	msgID := c.Param("msg_id")
	result, err := h.submissions.Read(msgID)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, readResponse{MsgID: result.MsgID, Data: result.Data, Expiry: result.Expiry})
}
