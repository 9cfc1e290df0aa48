// Package admin exposes the privileged diagnostics surface (spec §6),
// gated by internal/middleware.RequireAdmin on every route.
package admin

import (
	"github.com/gin-gonic/gin"

	adminsvc "vaultchat-backend/internal/service/admin"
	"vaultchat-backend/pkg/audit"
	"vaultchat-backend/pkg/response"
)

// Handler wraps the admin service as gin routes.
type Handler struct {
	admin *adminsvc.Service
	audit *audit.Logger
}

// New returns an admin Handler.
func New(svc *adminsvc.Service, auditLog *audit.Logger) *Handler {
	return &Handler{admin: svc, audit: auditLog}
}

// Messages dumps every submission record.
func (h *Handler) Messages(c *gin.Context) {
	all, err := h.admin.Messages()
	h.logAction(c, "admin.messages", err)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, all)
}

// Chat dumps every chat record.
func (h *Handler) Chat(c *gin.Context) {
	all, err := h.admin.Chat()
	h.logAction(c, "admin.chat", err)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, all)
}

// Proofs dumps the full proof ledger.
func (h *Handler) Proofs(c *gin.Context) {
	doc, err := h.admin.Proofs()
	h.logAction(c, "admin.proofs", err)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, doc)
}

// Commitments dumps the accepted-commitment set.
func (h *Handler) Commitments(c *gin.Context) {
	all, err := h.admin.Commitments()
	h.logAction(c, "admin.commitments", err)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, all)
}

// Stats returns aggregate counts across every document.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.admin.Stats()
	h.logAction(c, "admin.stats", err)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, stats)
}

// Expire forces one synchronous sweep.
func (h *Handler) Expire(c *gin.Context) {
	result, err := h.admin.ForceExpire(c.Request.Context())
	h.logAction(c, "admin.expire", err)
	if err != nil {
		response.AppErrorFrom(c, err)
		return
	}
	response.JSON(c, 200, result)
}

func (h *Handler) logAction(c *gin.Context, action string, err error) {
	h.audit.Log(c.Request.Context(), action, c.ClientIP(), err == nil, errString(err))
}

func errString(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
