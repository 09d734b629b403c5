package middleware

import (
	"errors"
	"net/http"
	"strings"

	domainerrors "contract-registry.backend/internal/domain/errors"
	"contract-registry.backend/pkg/jwt"
	"contract-registry.backend/pkg/logger"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// SubjectKey is the context key for the token subject
	SubjectKey = "subject"
	// RoleKey is the context key for the token role
	RoleKey = "role"
)

// TokenValidator validates bearer tokens
type TokenValidator interface {
	ValidateToken(token string) (*jwt.Claims, error)
}

// AuthMiddleware rejects requests without a valid bearer token
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Authorization header is required")
			return
		}
		if !strings.HasPrefix(authHeader, BearerPrefix) {
			abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid authorization format. Use: Bearer <token>")
			return
		}

		claims, err := validator.ValidateToken(strings.TrimPrefix(authHeader, BearerPrefix))
		if err != nil {
			logger.Warn(c.Request.Context(), "Rejected bearer token", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Token has expired")
				return
			}
			abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Invalid token")
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Set(RoleKey, claims.Role)
		c.Next()
	}
}

// GetSubject returns the authenticated subject
func GetSubject(c *gin.Context) (string, bool) {
	subject, exists := c.Get(SubjectKey)
	if !exists {
		return "", false
	}
	s, ok := subject.(string)
	return s, ok
}

// RequireRole creates a middleware that requires one of roles
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole := c.GetString(RoleKey)
		if userRole == "" {
			abort(c, http.StatusUnauthorized, domainerrors.CodeUnauthorized, "Role not found")
			return
		}

		for _, role := range roles {
			if userRole == role {
				c.Next()
				return
			}
		}

		abort(c, http.StatusForbidden, domainerrors.CodeForbidden, "Insufficient permissions")
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(jwt.RoleAdmin)
}

func abort(c *gin.Context, status int, code, message string) {
	c.AbortWithStatusJSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}
