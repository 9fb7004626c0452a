package auth

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/fisherfans/fisherfans-backend/internal/pkg/apperror"
	"github.com/fisherfans/fisherfans-backend/internal/pkg/response"
)

func abortUnauthenticated(c *gin.Context, message string) {
	c.AbortWithStatusJSON(ErrUnauthenticated.Code, gin.H{
		"error": message,
		"code":  apperror.KindUnauthenticated,
	})
}

func abortInternal(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusInternalServerError, response.ErrorResponse{
		Error: "internal server error",
		Code:  apperror.KindInternal,
	})
}

// AuthRequired is a Gin middleware that validates JWT from Authorization: Bearer <token>
// and resolves the subject to an existing user.
func AuthRequired(jwtManager *JWTManager, revocations RevocationStore, resolver ActorResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortUnauthenticated(c, "missing Authorization header")
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			abortUnauthenticated(c, "invalid Authorization header format")
			return
		}

		claims, err := jwtManager.ParseAndValidate(parts[1])
		if err != nil {
			abortUnauthenticated(c, "invalid or expired token")
			return
		}

		ctx := c.Request.Context()

		revoked, err := revocations.IsRevoked(ctx, claims.ID)
		if err != nil {
			slog.ErrorContext(ctx, "revocation lookup failed", slog.Any("error", err))
			abortInternal(c)
			return
		}
		if revoked {
			abortUnauthenticated(c, "invalid or expired token")
			return
		}

		actor, err := resolver.ResolveActor(ctx, claims)
		if err != nil {
			if errors.Is(err, ErrUnknownSubject) {
				abortUnauthenticated(c, ErrUnknownSubject.Message)
				return
			}
			slog.ErrorContext(ctx, "resolve actor failed", slog.Any("error", err))
			abortInternal(c)
			return
		}

		// Store identity into Gin context for later handlers.
		c.Set(actorKey, *actor)
		c.Set(claimsKey, claims)

		c.Next()
	}
}
