package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/dto"
	"surfceylon.app/server/internal/http/middleware"
	"surfceylon.app/server/internal/service"
)

type MessageHandler struct {
	messageService service.MessageService
}

func NewMessageHandler(messageService service.MessageService) *MessageHandler {
	return &MessageHandler{messageService: messageService}
}

func (h *MessageHandler) Send(c *gin.Context) {
	ctx := c.Request.Context()

	conversationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	msg, err := h.messageService.Send(ctx, middleware.GetCallerID(ctx), conversationID, req.Body)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToMessageResponse(*msg))
}

func (h *MessageHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	conversationID, ok := pathID(c, "id")
	if !ok {
		return
	}
	cursorToken, limit := pageParams(c)

	page, err := h.messageService.List(ctx, middleware.GetCallerID(ctx), conversationID, cursorToken, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToMessagePageResponse(page.Items, page.NextCursor))
}

func (h *MessageHandler) UnreadCount(c *gin.Context) {
	ctx := c.Request.Context()

	conversationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	unread, err := h.messageService.UnreadCount(ctx, middleware.GetCallerID(ctx), conversationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.UnreadCountResponse{Unread: unread})
}
