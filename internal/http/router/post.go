package router

import (
	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/handler"
)

func PostRouter(rg *gin.RouterGroup, h *handler.PostHandler) {
	rg.POST("", h.Create)
	rg.GET("/feed", h.Feed)
	rg.GET("/user/:id", h.ListByUser)
}
