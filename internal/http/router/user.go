package router

import (
	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/handler"
)

func UserRouter(rg *gin.RouterGroup, h *handler.UserHandler) {
	rg.GET("/:id", h.GetByID)
	rg.PUT("/me", h.UpdateMe)
}
