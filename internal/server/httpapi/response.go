package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/nexel-studio/agency-api/internal/errs"
)

// envelope is the response shape the frontend renders: a type tag, an
// optional human-readable message, and an optional payload.
type envelope struct {
	Type    string `json:"type"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func success(c *gin.Context, status int, message string, data any) {
	c.JSON(status, envelope{Type: "success", Message: message, Data: data})
}

func fail(c *gin.Context, status int, message string) {
	c.JSON(status, envelope{Type: "error", Message: message})
}

// failErr maps sentinel errors onto one consistent status scheme:
// 400 validation, 401 auth, 404 not found, 409 conflict, 429 rate limited.
// Anything else is a 500 with a generic body; the cause goes to the log only.
func (s *Server) failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, errs.ErrValidation):
		fail(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, errs.ErrUnauthorized):
		fail(c, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, errs.ErrRateLimited):
		fail(c, http.StatusTooManyRequests, "too many attempts, try again later")
	case errors.Is(err, errs.ErrNotFound):
		fail(c, http.StatusNotFound, "not found")
	case errors.Is(err, errs.ErrAlreadyReplied):
		fail(c, http.StatusConflict, "message already has a reply")
	case errors.Is(err, errs.ErrAlreadyExists):
		fail(c, http.StatusConflict, "already exists")
	default:
		s.logger.Error("internal error",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
		)
		fail(c, http.StatusInternalServerError, "internal error")
	}
}
