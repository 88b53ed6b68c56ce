package routes

import (
	"log"
	"net/http"

	"truthordare/handlers"
	"truthordare/middleware"
	"truthordare/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // the API only listens on the device
	},
}

func SetupRoutes(
	router *gin.Engine,
	playerHandler *handlers.PlayerHandler,
	sessionHandler *handlers.SessionHandler,
	modeHandler *handlers.ModeHandler,
	photoHandler *handlers.PhotoHandler,
	hub *services.Hub,
	adminKeyHash string,
) {
	api := router.Group("/api")
	{
		players := api.Group("/players")
		{
			players.GET("", playerHandler.ListPlayers)
			players.POST("", playerHandler.AddPlayer)
			players.DELETE("", playerHandler.ClearPlayers)
			players.DELETE("/:id", playerHandler.RemovePlayer)
		}

		session := api.Group("/session")
		{
			session.GET("", sessionHandler.GetSession)
			session.POST("", sessionHandler.StartSession)
			session.DELETE("", sessionHandler.EndSession)
			session.POST("/action", sessionHandler.RequestAction)
			session.POST("/truth", sessionHandler.RequestTruth)
		}

		modes := api.Group("/modes")
		{
			modes.GET("", modeHandler.ListModes)
			modes.POST("/unlock", modeHandler.UnlockMode)
			modes.GET("/:id", modeHandler.GetMode)
			modes.GET("/:id/count", modeHandler.CardCount)
		}

		photos := api.Group("/photos")
		{
			photos.GET("", photoHandler.ListPhotos)
			photos.POST("", photoHandler.SavePhoto)
			photos.DELETE("", photoHandler.ClearPhotos)
			photos.DELETE("/:id", photoHandler.DeletePhoto)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.AdminKey(adminKeyHash))
		{
			admin.POST("/catalog/reload", modeHandler.ReloadCatalog)
			admin.POST("/unlock-tokens", modeHandler.IssueUnlockToken)
		}
	}

	// WebSocket endpoint pushing state changes to the app
	router.GET("/ws", func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocket upgrade failed: %v", err)
			return
		}

		hub.RegisterClient(conn)
	})

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}
