package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"

	apperrors "carbontrack/internal/errors"
	"carbontrack/internal/models"
)

// RoleResolver looks up the current role of a user.
type RoleResolver interface {
	GetUserRole(userID string) (models.UserRole, error)
}

// RequireRole allows the request through only when the authenticated user
// currently holds role. It must run after AuthMiddleware. The role is read
// on every request so that a revoked admin loses access immediately.
func RequireRole(resolver RoleResolver, role models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := UserID(c)
		if !ok {
			abortWithError(c, apperrors.ErrUnauthorized)
			return
		}

		current, err := resolver.GetUserRole(userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrUserNotFound) {
				abortWithError(c, apperrors.ErrUnauthorized)
				return
			}
			abortWithError(c, err)
			return
		}
		if current != role {
			abortWithError(c, apperrors.ErrForbidden)
			return
		}
		c.Next()
	}
}
