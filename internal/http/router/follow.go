package router

import (
	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/handler"
)

func FollowRouter(rg *gin.RouterGroup, h *handler.FollowHandler) {
	rg.POST("/:id", h.Follow)
	rg.DELETE("/:id", h.Unfollow)
	// Caller-scoped listings; the static segments take precedence over :id.
	rg.GET("/followers", h.MyFollowers)
	rg.GET("/following", h.MyFollowing)
	rg.GET("/:id/status", h.Status)
	rg.GET("/:id/followers", h.Followers)
	rg.GET("/:id/following", h.Following)
}
