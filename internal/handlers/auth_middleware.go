package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AP-CSE-2025/proctor-service/internal/auth"
	"github.com/AP-CSE-2025/proctor-service/internal/models"
)

const (
	ContextUserIDKey = "user_id"
	ContextRoleKey   = "user_role"
)

// JWTAuthMiddleware validates bearer tokens and injects the caller
// identity into the gin context.
type JWTAuthMiddleware struct {
	BaseHandler
	tokens *auth.TokenManager
}

func NewJWTAuthMiddleware(tokens *auth.TokenManager, base BaseHandler) *JWTAuthMiddleware {
	return &JWTAuthMiddleware{
		BaseHandler: base,
		tokens:      tokens,
	}
}

// AuthMiddleware rejects 401 when no credentials are presented and 403 when
// the presented token is expired or fails verification.
func (m *JWTAuthMiddleware) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			m.Error(c, http.StatusUnauthorized, "Authorization header required", nil)
			c.Abort()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || tokenString == "" {
			m.Error(c, http.StatusUnauthorized, "Authorization header must be a bearer token", nil)
			c.Abort()
			return
		}

		claims, err := m.tokens.Parse(tokenString)
		if err != nil {
			message := "Invalid token"
			if errors.Is(err, auth.ErrTokenExpired) {
				message = "Token expired"
			}
			m.Error(c, http.StatusForbidden, message, nil)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, claims.UserID)
		c.Set(ContextRoleKey, claims.Role)
		c.Next()
	}
}

// RequireRole guards a route group to the given roles. Runs after
// AuthMiddleware.
func (m *JWTAuthMiddleware) RequireRole(roles ...models.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get(ContextRoleKey)
		if !exists {
			m.Error(c, http.StatusUnauthorized, "User not authenticated", nil)
			c.Abort()
			return
		}

		userRole := role.(models.UserRole)
		for _, allowed := range roles {
			if userRole == allowed {
				c.Next()
				return
			}
		}

		m.Error(c, http.StatusForbidden, "Insufficient role", nil)
		c.Abort()
	}
}

// currentUserID reads the authenticated caller's id set by AuthMiddleware.
func currentUserID(c *gin.Context) (uint, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return 0, false
	}
	id, ok := value.(uint)
	return id, ok
}
