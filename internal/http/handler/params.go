package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// pathID parses a path parameter as an int64 ID, responding 400 itself when
// the value is malformed.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, errorEnvelope("Invalid "+name))
		return 0, false
	}
	return id, true
}

// pageParams reads the cursor and limit query parameters. Limit 0 means
// "use the configured default".
func pageParams(c *gin.Context) (string, int) {
	cursorToken := c.Query("cursor")
	limit, _ := strconv.Atoi(c.Query("limit"))
	if limit < 0 {
		limit = 0
	}
	return cursorToken, limit
}
