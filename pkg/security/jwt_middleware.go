package security

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const (
	RoleUser      = 1
	RoleModerator = 2
	RoleAdmin     = 3
)

var roleHierarchy = map[string]int{
	"user":      RoleUser,
	"moderator": RoleModerator,
	"admin":     RoleAdmin,
}

// JWTMiddleware validates JWT and extracts claims.
func JWTMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header missing"})
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return jwtSecret, nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			c.Abort()
			return
		}

		claims := token.Claims.(jwt.MapClaims)
		c.Set("userID", claims["userID"])
		c.Set("role", claims["role"])
		c.Next()
	}
}

// Authorize ensures the user has the required role.
func Authorize(requiredRole string) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}
		userRole, ok := role.(string)
		if !ok {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Invalid role format"})
			c.Abort()
			return
		}

		requiredRoleLevel, requiredExists := roleHierarchy[requiredRole]
		userRoleLevel, userExists := roleHierarchy[userRole]

		if !requiredExists || !userExists || userRoleLevel < requiredRoleLevel {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentUserID returns the authenticated user's id from the request context,
// or nil when the request carries no identity.
func CurrentUserID(c *gin.Context) *int {
	value, exists := c.Get("userID")
	if !exists {
		return nil
	}

	switch v := value.(type) {
	case string:
		id, err := strconv.Atoi(v)
		if err != nil {
			return nil
		}
		return &id
	case float64:
		id := int(v)
		return &id
	case int:
		id := v
		return &id
	default:
		return nil
	}
}

// IsOwnerOrAllowed permits access to the resource owner or anyone at or above
// the given role.
func IsOwnerOrAllowed(c *gin.Context, ownerID int, requiredRole string) bool {
	if userID := CurrentUserID(c); userID != nil && *userID == ownerID {
		return true
	}

	return IsAllowed(c, requiredRole)
}

// IsAllowed reports whether the request identity sits at or above the given
// role in the hierarchy.
func IsAllowed(c *gin.Context, requiredRole string) bool {
	role, exists := c.Get("role")
	if !exists {
		return false
	}
	userRole, ok := role.(string)
	if !ok {
		return false
	}

	requiredRoleLevel, requiredExists := roleHierarchy[requiredRole]
	userRoleLevel, userExists := roleHierarchy[userRole]

	return requiredExists && userExists && userRoleLevel >= requiredRoleLevel
}
