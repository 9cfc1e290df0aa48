// Package verify exposes the read-only proof-of-existence surface
// (spec §4.11).
package verify

import (
	"github.com/gin-gonic/gin"

	verifysvc "vaultchat-backend/internal/service/verify"
	apperr "vaultchat-backend/pkg/errors"
	"vaultchat-backend/pkg/response"
)

// Handler wraps the verify service as gin routes.
type Handler struct {
	verify *verifysvc.Service
}

// New returns a verify Handler.
func New(svc *verifysvc.Service) *Handler {
	return &Handler{verify: svc}
}

// Root returns the current Merkle root and total leaf count.
func (h *Handler) Root(c *gin.Context) {
	result, err := h.verify.Root()
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, result)
}

type hashCheckRequest struct {
	Data string `json:"data"`
}

// HashCheck reports whether a plaintext's hash has ever been recorded.
func (h *Handler) HashCheck(c *gin.Context) {
	var req hashCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.BadRequest("malformed request body"))
		return
	}
	result, err := h.verify.HashCheck(req.Data)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, result)
}

// InclusionProof returns the Merkle inclusion proof for a msg_id/message_id.
func (h *Handler) InclusionProof(c *gin.Context) {
	id := c.Param("id")
	result, err := h.verify.InclusionProof(id)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, result)
}

type signatureVerifyRequest struct {
	MsgID string `json:"msg_id"`
}

// SignatureVerify checks a proof record's recorded signature against its
// current content.
func (h *Handler) SignatureVerify(c *gin.Context) {
	var req signatureVerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperr.BadRequest("malformed request body"))
		return
	}
	result, err := h.verify.SignatureVerify(req.MsgID)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, result)
}
