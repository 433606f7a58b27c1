package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SyedFrazAli/geoscope/internal/objects"
	"github.com/SyedFrazAli/geoscope/internal/server/biz"
	"github.com/SyedFrazAli/geoscope/internal/server/db"
)

// JSONError returns a JSON error response and adds the error to gin context
// for access logging.
func JSONError(c *gin.Context, status int, err error) {
	_ = c.Error(err)
	c.JSON(status, objects.ErrorResponse{
		Error: objects.Error{
			Type:    http.StatusText(status),
			Message: err.Error(),
		},
	})
}

// ServiceError maps the service error taxonomy to HTTP statuses.
func ServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		JSONError(c, http.StatusNotFound, err)
	case errors.Is(err, biz.ErrForbidden):
		JSONError(c, http.StatusForbidden, err)
	case errors.Is(err, biz.ErrValidation):
		JSONError(c, http.StatusBadRequest, err)
	default:
		_ = c.Error(err)
		JSONError(c, http.StatusInternalServerError, biz.ErrInternal)
	}
}
