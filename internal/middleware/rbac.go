package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/eduvillage-api/internal/models"
	appErrors "github.com/noah-isme/eduvillage-api/pkg/errors"
	"github.com/noah-isme/eduvillage-api/pkg/response"
)

// Self is the RBAC pseudo role requiring the route's identity parameter
// (`:email` or `:teacherId`) to name the caller.
const Self = "SELF"

// RBAC enforces role-based access control for routes. Listed roles are
// alternatives; Self is an extra condition on top of the role.
func RBAC(allowed ...string) gin.HandlerFunc {
	allowSelf := false
	allowedRoles := make(map[models.UserRole]struct{})
	for _, a := range allowed {
		if a == Self {
			allowSelf = true
			continue
		}
		allowedRoles[models.UserRole(a)] = struct{}{}
	}

	return func(c *gin.Context) {
		claims := ClaimsFromContext(c)
		if claims == nil {
			response.Abort(c, appErrors.ErrUnauthorized)
			return
		}

		if len(allowedRoles) > 0 {
			if _, ok := allowedRoles[claims.Role]; !ok {
				response.Abort(c, appErrors.ErrForbidden)
				return
			}
		}

		if allowSelf && !isSelf(c, claims) {
			response.Abort(c, appErrors.Clone(appErrors.ErrForbidden, "resource belongs to another account"))
			return
		}

		c.Next()
	}
}

// WhenAuthenticated runs guard only for callers that presented a valid token.
// Anonymous requests pass through untouched.
func WhenAuthenticated(guard gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if ClaimsFromContext(c) == nil {
			c.Next()
			return
		}
		guard(c)
	}
}

func isSelf(c *gin.Context, claims *models.JWTClaims) bool {
	if email := c.Param("email"); email != "" {
		return strings.EqualFold(strings.TrimSpace(email), claims.Email)
	}
	if raw := c.Param("teacherId"); raw != "" {
		id, err := models.ParseID(raw)
		return err == nil && claims.IsTeacher() && id == claims.UserID
	}
	return false
}
