package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/dto"
	"surfceylon.app/server/internal/http/middleware"
	"surfceylon.app/server/internal/service"
)

type NotificationHandler struct {
	notificationService service.NotificationService
}

func NewNotificationHandler(notificationService service.NotificationService) *NotificationHandler {
	return &NotificationHandler{notificationService: notificationService}
}

func (h *NotificationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	cursorToken, limit := pageParams(c)

	page, err := h.notificationService.List(ctx, middleware.GetCallerID(ctx), cursorToken, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToNotificationPageResponse(page.Items, page.NextCursor))
}

func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.notificationService.MarkAllRead(ctx, middleware.GetCallerID(ctx)); err != nil {
		respondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
