package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"surfceylon.app/server/common/logger"
)

type contextKey string

const callerIDContextKey contextKey = "caller_id"

type authClaims struct {
	jwt.RegisteredClaims
}

// RequireAuth verifies an HS256 bearer token and places the caller's user ID
// into the request context. Token issuance lives outside this service.
func RequireAuth(secret string) gin.HandlerFunc {
	key := []byte(secret)
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Not authenticated"})
			return
		}

		token, err := jwt.ParseWithClaims(tokenString, &authClaims{}, func(token *jwt.Token) (any, error) {
			return key, nil
		}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
		if err != nil || !token.Valid {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(*authClaims)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid or expired token"})
			return
		}
		callerID, err := strconv.ParseInt(claims.Subject, 10, 64)
		if err != nil || callerID <= 0 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"status": "error", "message": "Invalid or expired token"})
			return
		}

		ctx := context.WithValue(c.Request.Context(), callerIDContextKey, callerID)
		ctx = logger.WithLogFields(ctx, logger.LogFields{CallerID: &callerID})
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetCallerID returns the authenticated caller's user ID, or 0 when the
// request was not authenticated.
func GetCallerID(ctx context.Context) int64 {
	callerID, _ := ctx.Value(callerIDContextKey).(int64)
	return callerID
}

func bearerToken(c *gin.Context) (string, bool) {
	header := c.GetHeader("Authorization")
	token, found := strings.CutPrefix(header, "Bearer ")
	if !found || token == "" {
		return "", false
	}
	return token, true
}
