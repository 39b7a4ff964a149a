package api

import (
	"errors"
	"net/http"

	"github.com/QuantumCastro/Vitrum/internal/common"
	"github.com/QuantumCastro/Vitrum/internal/logging"
	"github.com/gin-gonic/gin"
)

const (
	detailEmailTaken         = "email already registered"
	detailInvalidCredentials = "invalid credentials"
	detailInvalidToken       = "invalid or expired token"
	detailNotFound           = "not found"
	detailInternal           = "internal server error"
)

// abortUnauthorized writes a 401 with the bearer challenge.
func abortUnauthorized(c *gin.Context, detail string) {
	c.Header("WWW-Authenticate", common.BearerScheme)
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorResponse{Detail: detail})
}

func abortBadRequest(c *gin.Context, err error) {
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Detail: err.Error()})
}

// writeError maps service errors to HTTP responses. Unknown errors are
// logged and reported without detail.
func writeError(c *gin.Context, logger logging.Logger, err error) {
	_ = c.Error(err)

	switch {
	case errors.Is(err, common.ErrorValidation):
		abortBadRequest(c, err)
	case errors.Is(err, common.ErrorAlreadyExists):
		c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Detail: detailEmailTaken})
	case errors.Is(err, common.ErrorUnauthorized):
		abortUnauthorized(c, detailInvalidCredentials)
	case errors.Is(err, common.ErrInvalidToken):
		abortUnauthorized(c, detailInvalidToken)
	case errors.Is(err, common.ErrorNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, ErrorResponse{Detail: detailNotFound})
	default:
		logger.Error(c.Request.Context(), "request failed", "path", c.FullPath(), "error", err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, ErrorResponse{Detail: detailInternal})
	}
}
