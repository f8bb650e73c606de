package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/handler"
	"surfceylon.app/server/internal/http/middleware"
	"surfceylon.app/server/internal/service"
)

type RouterConfig struct {
	JWTSecret string
	Version   string
}

func SetupRoutes(router *gin.Engine, services *service.Services, cfg RouterConfig) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Welcome to SurfCeylon API",
			"version": cfg.Version,
		})
	})

	router.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "OK",
			"message":   "Server is running",
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})

	userHandler := handler.NewUserHandler(services.Users())
	// Registration sits outside the auth wall; token issuance is external.
	router.POST("/api/users", userHandler.Register)

	api := router.Group("/api")
	api.Use(middleware.RequireAuth(cfg.JWTSecret))
	{
		UserRouter(api.Group("/users"), userHandler)

		followHandler := handler.NewFollowHandler(services.Follows())
		FollowRouter(api.Group("/follow"), followHandler)

		postHandler := handler.NewPostHandler(services.Posts(), services.Feed())
		PostRouter(api.Group("/posts"), postHandler)

		conversationHandler := handler.NewConversationHandler(services.Conversations())
		messageHandler := handler.NewMessageHandler(services.Messages())
		MessageRouter(api.Group("/messages"), conversationHandler, messageHandler)

		notificationHandler := handler.NewNotificationHandler(services.Notifications())
		NotificationRouter(api.Group("/notifications"), notificationHandler)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{
			"status":  "error",
			"message": "Route not found",
		})
	})
}
