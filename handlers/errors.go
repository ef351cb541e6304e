package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"techkwiz/services"
)

// respondError maps service sentinel errors onto HTTP statuses. Anything
// unrecognized is an internal error.
func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, services.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized), errors.Is(err, services.ErrInvalidToken):
		status = http.StatusUnauthorized
	case errors.Is(err, services.ErrConflict), errors.Is(err, services.ErrBadRequest):
		status = http.StatusBadRequest
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
