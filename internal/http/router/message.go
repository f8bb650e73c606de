package router

import (
	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/handler"
)

func MessageRouter(rg *gin.RouterGroup, ch *handler.ConversationHandler, mh *handler.MessageHandler) {
	// The static /conversations segment takes precedence over :id.
	rg.POST("/conversations", ch.Open)
	rg.GET("/conversations/:id", ch.Get)
	rg.POST("/:id", mh.Send)
	rg.GET("/:id", mh.List)
	rg.POST("/:id/read", ch.MarkRead)
	rg.GET("/:id/unread", mh.UnreadCount)
}
