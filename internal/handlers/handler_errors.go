package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/MandirMitra/mandir_mitra_app/internal/apperrors"
)

// respondError writes a service error with the HTTP status it maps to.
func respondError(c *gin.Context, err error) {
	c.JSON(apperrors.HTTPStatus(err), ErrorResponse{Error: err.Error()})
}
