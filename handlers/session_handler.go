package handlers

import (
	"log"
	"net/http"

	"truthordare/services"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	sessionService *services.SessionService
	rosterService  *services.RosterService
}

func NewSessionHandler(sessionService *services.SessionService, rosterService *services.RosterService) *SessionHandler {
	return &SessionHandler{
		sessionService: sessionService,
		rosterService:  rosterService,
	}
}

// StartSession starts a game with the current roster.
func (h *SessionHandler) StartSession(c *gin.Context) {
	var req services.StartSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	session, err := h.sessionService.Start(c.Request.Context(), h.rosterService.List(), req.ModeID)
	if !applied(c, err) {
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (h *SessionHandler) GetSession(c *gin.Context) {
	session := h.sessionService.Current()
	if session == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "No game in progress"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"session":            session,
		"current_player":     session.CurrentPlayer(),
		"must_choose_action": h.sessionService.MustChooseAction(),
	})
}

func (h *SessionHandler) RequestAction(c *gin.Context) {
	result, err := h.sessionService.RequestAction(c.Request.Context())
	if !applied(c, err) {
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SessionHandler) RequestTruth(c *gin.Context) {
	result, err := h.sessionService.RequestTruth(c.Request.Context())
	if !applied(c, err) {
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *SessionHandler) EndSession(c *gin.Context) {
	if !applied(c, h.sessionService.End(c.Request.Context())) {
		return
	}

	log.Printf("Game ended by request from %s", c.ClientIP())
	c.JSON(http.StatusOK, gin.H{"message": "Game ended"})
}
