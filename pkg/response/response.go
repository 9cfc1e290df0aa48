// Package response renders the literal JSON shapes the external interface
// demands: a flat per-endpoint success payload (no generic envelope),
// {error, detail} for a 4xx failure, and a generic {error} for a 5xx.
package response

import (
	"github.com/gin-gonic/gin"

	apperr "vaultchat-backend/pkg/errors"
)

// JSON sends data verbatim as the response body with the given status.
func JSON(c *gin.Context, status int, data any) {
	c.JSON(status, data)
}

// errorBody is the literal {error, detail} shape for 4xx responses.
type errorBody struct {
	Error  string `json:"error"`
	Detail string `json:"detail"`
}

// genericInternalBody is the literal shape for 5xx responses: no internal
// detail is leaked to the client.
type genericInternalBody struct {
	Error string `json:"error"`
}

// Error renders appErr as {error, detail} for 4xx classes, or a bare
// generic {error} message for 5xx.
func Error(c *gin.Context, appErr *apperr.AppError) {
	if appErr.StatusCode >= 500 {
		c.JSON(appErr.StatusCode, genericInternalBody{Error: "internal server error"})
		return
	}
	c.JSON(appErr.StatusCode, errorBody{
		Error:  string(appErr.Code),
		Detail: appErr.Message,
	})
}

// AppErrorFrom coerces any error into an AppError (Internal if unrecognized)
// and writes its response.
func AppErrorFrom(c *gin.Context, err error) {
	Error(c, apperr.GetAppError(err))
}
