package security

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/BekaChkhiro/dealer-app-sub000/pkg/roles"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Actor is the authenticated caller resolved from the JWT claims.
type Actor struct {
	ID       int
	Username string
	Role     roles.Role
}

func (a Actor) IsAdmin() bool {
	return a.Role == roles.Admin
}

// ScopeID is the implicit row-visibility filter: nil for admins (no
// restriction), the caller's own id otherwise.
func (a Actor) ScopeID() *int {
	if a.IsAdmin() {
		return nil
	}
	id := a.ID
	return &id
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

		userID, ok := claims["userID"].(float64)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		role, _ := claims["role"].(string)
		username, _ := claims["username"].(string)

		c.Set("userID", int(userID))
		c.Set("role", role)
		c.Set("username", username)
		c.Next()
	}
}

// Authorize ensures the user has the required role.
func Authorize(requiredRole roles.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		role, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}
		userRole, ok := role.(string)
		if !ok || !roles.Role(userRole).IsValid() {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		if !roles.Role(userRole).HasPermission(requiredRole) {
			c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden: insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}

// CurrentActor resolves the authenticated caller set by JWTMiddleware.
func CurrentActor(c *gin.Context) (Actor, bool) {
	id, ok := c.Get("userID")
	if !ok {
		return Actor{}, false
	}
	userID, ok := id.(int)
	if !ok || userID == 0 {
		return Actor{}, false
	}

	role, _ := c.Get("role")
	roleStr, _ := role.(string)
	username, _ := c.Get("username")
	usernameStr, _ := username.(string)

	return Actor{ID: userID, Username: usernameStr, Role: roles.Role(roleStr)}, true
}
