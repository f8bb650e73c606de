package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/dto"
	"surfceylon.app/server/internal/http/middleware"
	"surfceylon.app/server/internal/model"
	"surfceylon.app/server/internal/service"
)

type FollowHandler struct {
	followService service.FollowService
}

func NewFollowHandler(followService service.FollowService) *FollowHandler {
	return &FollowHandler{followService: followService}
}

func (h *FollowHandler) Follow(c *gin.Context) {
	ctx := c.Request.Context()

	followeeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.followService.Follow(ctx, middleware.GetCallerID(ctx), followeeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FollowStateResponse{Following: true})
}

func (h *FollowHandler) Unfollow(c *gin.Context) {
	ctx := c.Request.Context()

	followeeID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.followService.Unfollow(ctx, middleware.GetCallerID(ctx), followeeID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FollowStateResponse{Following: false})
}

// Status reports whether the caller follows the given user, and whether the
// relationship is mutual.
func (h *FollowHandler) Status(c *gin.Context) {
	ctx := c.Request.Context()

	otherID, ok := pathID(c, "id")
	if !ok {
		return
	}
	callerID := middleware.GetCallerID(ctx)

	following, err := h.followService.IsFollowing(ctx, callerID, otherID)
	if err != nil {
		respondError(c, err)
		return
	}
	mutual := false
	if following {
		mutual, err = h.followService.IsMutual(ctx, callerID, otherID)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, dto.FollowStatusResponse{Following: following, Mutual: mutual})
}

func (h *FollowHandler) Followers(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.listEdges(c, userID, h.followService.Followers)
}

func (h *FollowHandler) Following(c *gin.Context) {
	userID, ok := pathID(c, "id")
	if !ok {
		return
	}
	h.listEdges(c, userID, h.followService.Following)
}

// MyFollowers lists the users following the authenticated caller.
func (h *FollowHandler) MyFollowers(c *gin.Context) {
	h.listEdges(c, middleware.GetCallerID(c.Request.Context()), h.followService.Followers)
}

func (h *FollowHandler) MyFollowing(c *gin.Context) {
	h.listEdges(c, middleware.GetCallerID(c.Request.Context()), h.followService.Following)
}

func (h *FollowHandler) listEdges(c *gin.Context, of int64, list func(ctx context.Context, of int64, cursorToken string, limit int) (service.Page[model.FollowEdge], error)) {
	ctx := c.Request.Context()
	cursorToken, limit := pageParams(c)

	page, err := list(ctx, of, cursorToken, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToFollowPageResponse(page.Items, page.NextCursor))
}
