package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/http/dto"
	"surfceylon.app/server/internal/http/middleware"
	"surfceylon.app/server/internal/service"
)

type ConversationHandler struct {
	conversationService service.ConversationService
}

func NewConversationHandler(conversationService service.ConversationService) *ConversationHandler {
	return &ConversationHandler{conversationService: conversationService}
}

// Open resolves or creates a conversation. Two parties always yield the same
// direct conversation; larger member sets create a new group each time.
func (h *ConversationHandler) Open(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.OpenConversationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	conv, err := h.conversationService.Open(ctx, middleware.GetCallerID(ctx), req.MemberIDs)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToConversationResponse(conv))
}

func (h *ConversationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	conversationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	conv, err := h.conversationService.Get(ctx, middleware.GetCallerID(ctx), conversationID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToConversationResponse(conv))
}

func (h *ConversationHandler) MarkRead(c *gin.Context) {
	ctx := c.Request.Context()

	conversationID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.MarkReadRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, err)
		return
	}

	seq, err := h.conversationService.MarkRead(ctx, middleware.GetCallerID(ctx), conversationID, req.Seq)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.MarkReadResponse{Seq: seq})
}
