package middleware

import (
	"errors"
	"slices"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sangkips/investify-pos/internal/presentation/http/dto/response"
	"github.com/sangkips/investify-pos/pkg/utils"
)

// AuthMiddleware validates the operator's bearer token and stores the
// operator's id, name and roles on the context.
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		scheme, token, found := strings.Cut(authHeader, " ")
		if !found || !strings.EqualFold(scheme, "bearer") || token == "" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.Verify(token)
		if errors.Is(err, utils.ErrTokenExpired) {
			response.Unauthorized(c, "Session expired, sign in again")
			c.Abort()
			return
		}
		if err != nil {
			response.Unauthorized(c, "Invalid token")
			c.Abort()
			return
		}

		c.Set(utils.ContextOperatorID, claims.OperatorID)
		c.Set(utils.ContextOperatorName, claims.Name)
		c.Set(utils.ContextOperatorRoles, claims.Roles)
		if claims.ExpiresAt != nil {
			c.Set(utils.ContextSessionExpiry, claims.ExpiresAt.Time)
		}

		c.Next()
	}
}

// RequireRole lets the request through when the operator holds any of roles.
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		held := c.GetStringSlice(utils.ContextOperatorRoles)
		if len(held) == 0 {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		if !slices.ContainsFunc(held, func(r string) bool { return slices.Contains(roles, r) }) {
			response.Forbidden(c, "Insufficient role privileges")
			c.Abort()
			return
		}

		c.Next()
	}
}
