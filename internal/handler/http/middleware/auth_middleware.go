package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domainErrors "github.com/Manavv007/GlobeTrotter-sub000/internal/domain/errors"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/domain/models"
	"github.com/Manavv007/GlobeTrotter-sub000/internal/service"
)

const (
	authHeaderKey = "Authorization"

	// Context keys set on successful authentication.
	ContextUserKey      = "authUser"
	ContextTokenKey     = "authToken"
	ContextSessionIDKey = "authSessionID"
)

// AuthMiddleware gates a route group behind the request authenticator.
// Rejections are terminal for the request and carry generic messages.
func AuthMiddleware(tokens *service.TokenService, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authReq, err := tokens.Authenticate(c.Request.Context(), c.GetHeader(authHeaderKey))
		if err != nil {
			logger.Warn("Authentication rejected",
				zap.String("path", c.Request.URL.Path), zap.Error(err))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}

		c.Set(ContextUserKey, authReq.User)
		c.Set(ContextTokenKey, authReq.Token)
		c.Set(ContextSessionIDKey, authReq.SessionID)
		c.Next()
	}
}

// CurrentUser pulls the authenticated user out of the gin context.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	return user, ok
}

// CurrentSessionID returns the id of the session the caller authenticated
// with.
func CurrentSessionID(c *gin.Context) string {
	return c.GetString(ContextSessionIDKey)
}

// RoleMiddleware rejects callers whose role is not in the allow list. Must
// run after AuthMiddleware.
func RoleMiddleware(allowed ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": domainErrors.ErrUnauthorized.Error()})
			return
		}
		for _, role := range allowed {
			if user.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": domainErrors.ErrForbidden.Error()})
	}
}
