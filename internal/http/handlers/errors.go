package handlers

import (
	"errors"
	"net/http"

	"github.com/stevenadel/iti-events-server/internal/domain"
	"github.com/stevenadel/iti-events-server/internal/http/middleware"
	"github.com/stevenadel/iti-events-server/internal/utils"

	"github.com/gin-gonic/gin"
)

// RespondDomainError maps domain errors to HTTP responses. Error bodies are
// {message} with an optional {errors} map for field-level validation.
func RespondDomainError(c *gin.Context, err error) {
	var ve domain.ValidationError
	if errors.As(err, &ve) {
		status := http.StatusBadRequest
		if len(ve.Fields) > 0 {
			status = http.StatusUnprocessableEntity
		}
		payload := gin.H{"message": ve.Msg}
		if len(ve.Fields) > 0 {
			payload["errors"] = ve.Fields
		}
		c.JSON(status, payload)
		return
	}

	switch {
	case domain.IsUnauthorized(err):
		c.JSON(http.StatusUnauthorized, gin.H{"message": err.Error()})
	case domain.IsForbidden(err):
		c.JSON(http.StatusForbidden, gin.H{"message": err.Error()})
	case domain.IsNotFound(err):
		c.JSON(http.StatusNotFound, gin.H{"message": err.Error()})
	case domain.IsConflict(err), domain.IsCapacity(err):
		c.JSON(http.StatusConflict, gin.H{"message": err.Error()})
	default:
		utils.LogEvent(middleware.GetRequestID(c), "http", "internal_error", err.Error())
		message := "Something went wrong. Try again later."
		var ie domain.InternalError
		if errors.As(err, &ie) && ie.Msg != "" {
			message = ie.Msg
		}
		c.JSON(http.StatusInternalServerError, gin.H{"message": message})
	}
}
