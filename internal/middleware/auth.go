package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/nqd2/bluemoon-admin-api/internal/auth"
	"github.com/nqd2/bluemoon-admin-api/internal/models"
	"github.com/nqd2/bluemoon-admin-api/pkg/utils"
)

const (
	// ContextUserID is the gin context key holding the caller's account ID
	ContextUserID = "userID"
	// ContextRole is the gin context key holding the caller's role
	ContextRole = "role"
)

// AuthRequired validates the bearer token and stores the caller identity in
// the request context
func AuthRequired(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			utils.UnauthorizedResponse(c, "Missing or invalid Authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(header, "Bearer ")
		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(jwtSecret), nil
		})
		if err != nil || !token.Valid {
			utils.UnauthorizedResponse(c, "Invalid or expired token")
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.UnauthorizedResponse(c, "Invalid token claims")
			c.Abort()
			return
		}

		if sub, ok := claims["sub"].(float64); ok {
			c.Set(ContextUserID, uint(sub))
		}
		if role, ok := claims["role"].(string); ok {
			c.Set(ContextRole, models.UserRole(role))
		}

		c.Next()
	}
}

// RequireAction checks the caller's capability before a gated operation
func RequireAction(action auth.Action) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get(ContextRole)
		if !exists {
			utils.UnauthorizedResponse(c, "Missing caller identity")
			c.Abort()
			return
		}

		role, ok := roleValue.(models.UserRole)
		if !ok || !auth.CanPerform(role, action) {
			utils.ForbiddenResponse(c, "You do not have permission to perform this action")
			c.Abort()
			return
		}

		c.Next()
	}
}

// CallerID returns the authenticated account's ID, if present
func CallerID(c *gin.Context) *uint {
	value, exists := c.Get(ContextUserID)
	if !exists {
		return nil
	}
	id, ok := value.(uint)
	if !ok {
		return nil
	}
	return &id
}
