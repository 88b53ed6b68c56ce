package handlers

import (
	"net/http"

	"truthordare/services"

	"github.com/gin-gonic/gin"
)

type PhotoHandler struct {
	photoService *services.PhotoService
}

func NewPhotoHandler(photoService *services.PhotoService) *PhotoHandler {
	return &PhotoHandler{
		photoService: photoService,
	}
}

func (h *PhotoHandler) ListPhotos(c *gin.Context) {
	c.JSON(http.StatusOK, h.photoService.List())
}

func (h *PhotoHandler) SavePhoto(c *gin.Context) {
	var req services.SavePhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	photo, err := h.photoService.Save(c.Request.Context(), &req)
	if !applied(c, err) {
		return
	}

	c.JSON(http.StatusCreated, photo)
}

func (h *PhotoHandler) DeletePhoto(c *gin.Context) {
	if !applied(c, h.photoService.Delete(c.Request.Context(), c.Param("id"))) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photo deleted successfully"})
}

func (h *PhotoHandler) ClearPhotos(c *gin.Context) {
	if !applied(c, h.photoService.Clear(c.Request.Context())) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Photos cleared successfully"})
}
