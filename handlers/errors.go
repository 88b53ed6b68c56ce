package handlers

import (
	"errors"
	"log"
	"net/http"

	"truthordare/services"
	"truthordare/storage"

	"github.com/gin-gonic/gin"
)

const unsavedWarning = `199 - "progress may not survive a restart"`

func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrInvalidInput),
		errors.Is(err, services.ErrNotEnoughPlayers):
		return http.StatusBadRequest
	case errors.Is(err, services.ErrDuplicateName),
		errors.Is(err, services.ErrMustChooseAction),
		errors.Is(err, services.ErrSessionNotActive):
		return http.StatusConflict
	case errors.Is(err, services.ErrPlayerNotFound),
		errors.Is(err, services.ErrPhotoNotFound),
		errors.Is(err, services.ErrModeNotFound),
		errors.Is(err, services.ErrNoCardsAvailable):
		return http.StatusNotFound
	case errors.Is(err, services.ErrModeLocked):
		return http.StatusForbidden
	case errors.Is(err, services.ErrInvalidUnlockToken):
		return http.StatusUnauthorized
	case services.IsCatalogError(err):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		log.Printf("Error handling %s %s: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// applied reports whether the operation took effect in memory. A failed
// store write still counts; the response then carries a Warning header.
func applied(c *gin.Context, err error) bool {
	if err == nil {
		return true
	}
	if errors.Is(err, storage.ErrWrite) {
		log.Printf("State changed but not persisted: %v", err)
		c.Header("Warning", unsavedWarning)
		return true
	}
	respondError(c, err)
	return false
}
