package handlers

import (
	"net/http"

	"truthordare/services"

	"github.com/gin-gonic/gin"
)

type PlayerHandler struct {
	rosterService *services.RosterService
}

func NewPlayerHandler(rosterService *services.RosterService) *PlayerHandler {
	return &PlayerHandler{
		rosterService: rosterService,
	}
}

func (h *PlayerHandler) ListPlayers(c *gin.Context) {
	c.JSON(http.StatusOK, h.rosterService.List())
}

func (h *PlayerHandler) AddPlayer(c *gin.Context) {
	var req services.AddPlayerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	player, err := h.rosterService.Add(c.Request.Context(), &req)
	if !applied(c, err) {
		return
	}

	c.JSON(http.StatusCreated, player)
}

func (h *PlayerHandler) RemovePlayer(c *gin.Context) {
	playerID := c.Param("id")
	if playerID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Player ID required"})
		return
	}

	if !applied(c, h.rosterService.Remove(c.Request.Context(), playerID)) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Player removed successfully"})
}

func (h *PlayerHandler) ClearPlayers(c *gin.Context) {
	if !applied(c, h.rosterService.Clear(c.Request.Context())) {
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Players cleared successfully"})
}
