package controllers

import (
	"errors"
	"net/http"

	apperrors "github.com/akjilan/digital-ecommerce/common/errors"
	"github.com/akjilan/digital-ecommerce/services"

	"github.com/gin-gonic/gin"
)

// respondError maps a service error onto the HTTP error body.
func respondError(c *gin.Context, err error) {
	var appErr *apperrors.Error
	switch {
	case errors.Is(err, services.ErrEmptyMessage):
		appErr = apperrors.New(http.StatusBadRequest, services.ErrEmptyMessage.Error(), err)
	case errors.Is(err, services.ErrUnauthenticated):
		appErr = apperrors.ErrUnauthorized.Wrap(err)
	case errors.Is(err, services.ErrStoreUnavailable):
		appErr = apperrors.ErrStoreUnavailable.Wrap(err)
	default:
		appErr = apperrors.ErrInternalServer.Wrap(err)
	}
	_ = c.Error(appErr)
	c.AbortWithStatusJSON(appErr.Code, appErr)
}
