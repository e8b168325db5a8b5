package middleware

import (
	"net/http"
	"strings"

	"slotify/utils"

	"github.com/gin-gonic/gin"
)

// Context keys set by JWTAuthMiddleware.
const (
	ContextActorID   = "actorID"
	ContextActorRole = "actorRole"
)

// JWTAuthMiddleware validates the bearer token and stores the actor's ID and
// role in the request context for the handlers to consume.
func JWTAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		actorID, role, err := utils.ExtractActorFromToken(tokenString)
		if err != nil || actorID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"error": "Insufficient authorization",
			})
			return
		}

		c.Set(ContextActorID, actorID)
		c.Set(ContextActorRole, role)
		c.Next()
	}
}

// ActorFrom returns the authenticated actor stored by JWTAuthMiddleware.
func ActorFrom(c *gin.Context) (string, string) {
	return c.GetString(ContextActorID), c.GetString(ContextActorRole)
}
