package controllers

import (
	"errors"

	"github.com/ImpulsoLocal2024/impulso-local-back/src/services"
	"github.com/gin-gonic/gin"
)

// respondError maps the engine's sentinel errors onto HTTP statuses. Anything
// outside the taxonomy is an internal database failure.
func respondError(c *gin.Context, err error) {
	status := 500
	switch {
	case errors.Is(err, services.ErrInvalidName),
		errors.Is(err, services.ErrInvalidFieldType),
		errors.Is(err, services.ErrMissingField),
		errors.Is(err, services.ErrNoValidFields),
		errors.Is(err, services.ErrUnsupportedOperation):
		status = 400
	case errors.Is(err, services.ErrNotFound),
		errors.Is(err, services.ErrRelatedRecordNotFound):
		status = 404
	case errors.Is(err, services.ErrNotEmpty),
		errors.Is(err, services.ErrColumnHasData),
		errors.Is(err, services.ErrColumnHasForeignKey):
		status = 409
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
