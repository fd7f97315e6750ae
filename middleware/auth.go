package middleware

import (
	"errors"
	"net/http"

	"github.com/akjilan/digital-ecommerce/common/auth"

	"github.com/gin-gonic/gin"
)

const (
	UserContextKey  = "userID"
	RoleContextKey  = "role"
	EmailContextKey = "email"
)

// OptionalAuth attaches the caller identity when a valid bearer token is
// present. Missing or invalid tokens continue as a guest.
func OptionalAuth(validator *auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if claims, ok := authenticate(c, validator); ok {
			setIdentity(c, claims)
		}
		c.Next()
	}
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(validator *auth.TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := authenticate(c, validator)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			c.Abort()
			return
		}
		setIdentity(c, claims)
		c.Next()
	}
}

func authenticate(c *gin.Context, validator *auth.TokenValidator) (*auth.Claims, bool) {
	token, ok := auth.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		return nil, false
	}
	claims, err := validator.ParseAndValidateToken(token)
	if err != nil {
		return nil, false
	}
	return claims, true
}

func setIdentity(c *gin.Context, claims *auth.Claims) {
	c.Set(UserContextKey, claims.UserID())
	c.Set(RoleContextKey, claims.Role)
	c.Set(EmailContextKey, claims.Email)
}

// GetUserID extracts the user ID from the Gin context.
func GetUserID(c *gin.Context) (string, error) {
	if val, ok := c.Get(UserContextKey); ok {
		if id, ok := val.(string); ok && id != "" {
			return id, nil
		}
	}
	return "", errors.New("user ID not found in context")
}
