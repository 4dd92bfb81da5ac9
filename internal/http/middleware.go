package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"account-server/internal/auth"
	"account-server/internal/domain"
)

// UserLoader is the narrow lookup capability the auth gate needs to turn a
// verified token subject into a full identity.
type UserLoader interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// authGate is the per-request token filter for protected routes. A request
// without a token passes through unauthenticated and the route decides whether
// anonymous access is allowed; a request with an invalid token is rejected
// before any handler runs. Public routes are registered outside the gated
// group and never reach this middleware.
func authGate(tokens *auth.TokenCodec, users UserLoader, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, ok := auth.ResolveBearer(c.GetHeader("Authorization"))
		if !ok {
			c.Next()
			return
		}

		if !tokens.Verify(token) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		email, err := tokens.ExtractSubject(token)
		if err != nil {
			// Verify passed, so this indicates a defect in the codec rather
			// than bad input
			logger.Errorf("extract subject from verified token: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		user, err := users.GetByEmail(c.Request.Context(), email)
		if err != nil {
			logger.Warnf("token subject %s no longer resolves to a user: %v", email, err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		identity := domain.Identity{
			UserID: user.ID,
			Email:  user.Email,
			Roles:  []string{domain.RoleUser},
		}
		c.Request = c.Request.WithContext(auth.WithIdentity(c.Request.Context(), identity))
		c.Next()
	}
}

// requireIdentity rejects anonymous requests. Attach after authGate on routes
// that do not allow unauthenticated access.
func requireIdentity() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := auth.IdentityFrom(c.Request.Context()); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
			return
		}
		c.Next()
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, PATCH, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func requestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		c.Writer.Header().Set("X-Request-ID", id)
		c.Next()
	}
}
