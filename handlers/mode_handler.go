package handlers

import (
	"log"
	"net/http"
	"time"

	"truthordare/models"
	"truthordare/services"

	"github.com/gin-gonic/gin"
)

type ModeHandler struct {
	catalogService *services.CatalogService
	unlockService  *services.UnlockService
	tokenTTL       time.Duration
}

func NewModeHandler(catalogService *services.CatalogService, unlockService *services.UnlockService, tokenTTL time.Duration) *ModeHandler {
	return &ModeHandler{
		catalogService: catalogService,
		unlockService:  unlockService,
		tokenTTL:       tokenTTL,
	}
}

func (h *ModeHandler) ListModes(c *gin.Context) {
	if !h.catalogService.IsReady() {
		respondError(c, services.ErrCatalogNotLoaded)
		return
	}

	c.JSON(http.StatusOK, h.catalogService.Modes())
}

func (h *ModeHandler) GetMode(c *gin.Context) {
	mode, err := h.catalogService.Mode(c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, mode)
}

// CardCount reports how many cards of a kind exist for a mode and gender.
func (h *ModeHandler) CardCount(c *gin.Context) {
	kind, err := models.ParseCardKind(c.Query("kind"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	gender, err := models.ParseGender(c.Query("gender"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	modeID := c.Param("id")
	count, err := h.catalogService.AvailableCardCount(modeID, kind, gender)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"mode_id": modeID,
		"kind":    kind,
		"gender":  gender,
		"count":   count,
	})
}

func (h *ModeHandler) UnlockMode(c *gin.Context) {
	var req services.RedeemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	payment, err := h.unlockService.Redeem(c.Request.Context(), req.Token)
	if !applied(c, err) {
		return
	}

	c.JSON(http.StatusOK, payment)
}

// IssueUnlockToken mints an unlock token once a purchase has been verified.
func (h *ModeHandler) IssueUnlockToken(c *gin.Context) {
	var req services.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	token, err := h.unlockService.IssueToken(&req, h.tokenTTL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"token": token})
}

func (h *ModeHandler) ReloadCatalog(c *gin.Context) {
	if err := h.catalogService.Reload(c.Request.Context()); err != nil {
		respondError(c, err)
		return
	}

	log.Printf("Card catalog reloaded")
	c.JSON(http.StatusOK, gin.H{"message": "Catalog reloaded", "modes": len(h.catalogService.Modes())})
}
