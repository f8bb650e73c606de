package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/dto"
	"surfceylon.app/server/internal/http/middleware"
	"surfceylon.app/server/internal/service"
)

type PostHandler struct {
	postService service.PostService
	feedService service.FeedService
}

func NewPostHandler(postService service.PostService, feedService service.FeedService) *PostHandler {
	return &PostHandler{postService: postService, feedService: feedService}
}

func (h *PostHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	post, err := h.postService.Create(ctx, middleware.GetCallerID(ctx), req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToPostResponse(*post))
}

func (h *PostHandler) ListByUser(c *gin.Context) {
	ctx := c.Request.Context()

	authorID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cursorToken, limit := pageParams(c)

	page, err := h.postService.ListByAuthor(ctx, authorID, cursorToken, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostPageResponse(page.Items, page.NextCursor))
}

func (h *PostHandler) Feed(c *gin.Context) {
	ctx := c.Request.Context()

	cursorToken, limit := pageParams(c)

	page, err := h.feedService.Timeline(ctx, middleware.GetCallerID(ctx), cursorToken, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToPostPageResponse(page.Items, page.NextCursor))
}
