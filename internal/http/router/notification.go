package router

import (
	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/handler"
)

func NotificationRouter(rg *gin.RouterGroup, h *handler.NotificationHandler) {
	rg.GET("", h.List)
	rg.POST("/read", h.MarkAllRead)
}
