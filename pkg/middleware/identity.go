package middleware

import (
	"github.com/gin-gonic/gin"
)

const (
	// ActorIDHeader is the header carrying the acting user ID
	ActorIDHeader = "X-User-ID"
	// ActorIDKey is the context key for the acting user ID
	ActorIDKey = "actor_id"
)

// ActorIdentity resolves the acting user for each request. The header wins
// when present, otherwise the configured default applies. There is no
// authentication behind this, it is an identifier only.
func ActorIdentity(defaultID string) gin.HandlerFunc {
	return func(c *gin.Context) {
		actorID := c.GetHeader(ActorIDHeader)
		if actorID == "" {
			actorID = defaultID
		}

		c.Set(ActorIDKey, actorID)

		c.Next()
	}
}

// GetActorID returns the acting user ID from context
func GetActorID(c *gin.Context) string {
	if id, exists := c.Get(ActorIDKey); exists {
		if actorID, ok := id.(string); ok {
			return actorID
		}
	}
	return ""
}
