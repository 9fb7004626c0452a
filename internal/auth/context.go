package auth

import "github.com/gin-gonic/gin"

const (
	actorKey  = "actor"
	claimsKey = "claims"
)

// GetActor returns the authenticated actor, or the zero Actor.
func GetActor(c *gin.Context) Actor {
	if v, ok := c.Get(actorKey); ok {
		if a, ok := v.(Actor); ok {
			return a
		}
	}
	return Actor{}
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	return GetActor(c).UserID
}

// GetClaims returns the verified token claims of the request, if any.
func GetClaims(c *gin.Context) *Claims {
	if v, ok := c.Get(claimsKey); ok {
		if cl, ok := v.(*Claims); ok {
			return cl
		}
	}
	return nil
}

// SetActor stores actor on the context. Used by tests and internal callers.
func SetActor(c *gin.Context, actor Actor) {
	c.Set(actorKey, actor)
}
