package handler

import (
	"errors"
	"net/http"

	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Machine-readable error codes surfaced to the admin UI
const (
	CodeNotFound          = "NOT_FOUND"
	CodeValidation        = "VALIDATION_ERROR"
	CodeSubscriptionLimit = "SUBSCRIPTION_LIMIT"
	CodeGSTNotRegistered  = "GST_NOT_REGISTERED"
)

// writeServiceError translates service errors into HTTP responses.
// Expected kinds map to specific statuses and codes; anything else is
// logged and masked as a generic 500.
func writeServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, response.Error(http.StatusUnauthorized, "Unauthorized"))
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, response.ErrorWithCode(http.StatusNotFound, err.Error(), CodeNotFound))
	case errors.Is(err, service.ErrValidation):
		c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, err.Error(), CodeValidation))
	case errors.Is(err, service.ErrSubscriptionLimit):
		c.JSON(http.StatusForbidden, response.ErrorWithCode(http.StatusForbidden, err.Error(), CodeSubscriptionLimit))
	case errors.Is(err, service.ErrGSTNotRegistered):
		c.JSON(http.StatusBadRequest, response.ErrorWithCode(http.StatusBadRequest, "GST Not Registered", CodeGSTNotRegistered))
	default:
		logrus.WithError(err).WithField("path", c.Request.URL.Path).Error("Unhandled service error")
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, "Internal server error"))
	}
}
