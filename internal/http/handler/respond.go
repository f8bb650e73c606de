package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"surfceylon.app/server/internal/service"
)

// errorEnvelope is the uniform error body: {"status":"error","message":...}.
func errorEnvelope(message string) gin.H {
	return gin.H{"status": "error", "message": message}
}

var errorStatus = map[error]struct {
	code    int
	message string
}{
	service.ErrEmptyBody:            {http.StatusBadRequest, "Body must not be empty"},
	service.ErrInvalidCursor:        {http.StatusBadRequest, "Invalid pagination cursor"},
	service.ErrSeqBeyondMax:         {http.StatusBadRequest, "Sequence number is past the newest message"},
	service.ErrTooFewMembers:        {http.StatusBadRequest, "A conversation needs at least two members"},
	service.ErrTooManyMembers:       {http.StatusBadRequest, "Too many conversation members"},
	service.ErrSelfFollow:           {http.StatusBadRequest, "You cannot follow yourself"},
	service.ErrSelfConversation:     {http.StatusBadRequest, "You cannot start a conversation with only yourself"},
	service.ErrNotAMember:           {http.StatusForbidden, "You are not a member of this conversation"},
	service.ErrUserNotFound:         {http.StatusNotFound, "User not found"},
	service.ErrConversationNotFound: {http.StatusNotFound, "Conversation not found"},
	service.ErrUsernameTaken:        {http.StatusConflict, "Username is already taken"},
	service.ErrStorageUnavailable:   {http.StatusServiceUnavailable, "Storage temporarily unavailable"},
}

// respondError maps service sentinels onto HTTP statuses. Anything unmapped
// becomes a generic 500; the detail stays in the logs.
func respondError(c *gin.Context, err error) {
	for sentinel, mapping := range errorStatus {
		if errors.Is(err, sentinel) {
			c.JSON(mapping.code, errorEnvelope(mapping.message))
			return
		}
	}

	slog.ErrorContext(c.Request.Context(), "unhandled service error",
		"error", err,
		"method", c.Request.Method,
		"path", c.Request.URL.Path,
	)
	c.JSON(http.StatusInternalServerError, errorEnvelope("Something went wrong!"))
}

func respondBadRequest(c *gin.Context, err error) {
	slog.WarnContext(c.Request.Context(), "invalid request", "error", err)
	c.JSON(http.StatusBadRequest, errorEnvelope("Invalid request: "+err.Error()))
}
