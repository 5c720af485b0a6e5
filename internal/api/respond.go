package api

import (
	"errors"
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Tharunikaraja/ecommerce-backend/internal/service"
	"github.com/Tharunikaraja/ecommerce-backend/internal/util"
)

// httpStatus maps a domain error code to an HTTP status.
func httpStatus(code service.Code) int {
	switch code {
	case service.CodeInvalidArgument, service.CodeConflict, service.CodeInsufficientStock,
		service.CodeInvalidState, service.CodeEmptyCart, service.CodeInvalidOTP,
		service.CodeOTPExpired:
		return http.StatusBadRequest
	case service.CodeUnauthorized, service.CodeInvalidCredentials, service.CodeTokenExpired:
		return http.StatusUnauthorized
	case service.CodeNotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes a `{message}` failure body. Unexpected errors become a
// 500 with a generic message; the stack is exposed only outside production.
func (h *Handler) respondError(c *gin.Context, err error) {
	var domainErr *service.Error
	if errors.As(err, &domainErr) {
		c.JSON(httpStatus(domainErr.Code), gin.H{"message": domainErr.Message})
		return
	}

	util.GetLogger().Error("Request failed",
		zap.String("path", c.FullPath()),
		zap.Error(err))

	body := gin.H{"message": "Server error"}
	if h.env != "production" {
		body["stack"] = string(debug.Stack())
	}
	c.JSON(http.StatusInternalServerError, body)
}
