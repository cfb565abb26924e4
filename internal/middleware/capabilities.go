package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/qubitgyan/qubitgyan-backend/internal/repository"
	"github.com/qubitgyan/qubitgyan-backend/internal/response"
)

const (
	// ContextKeyCapabilities is the Gin context key for the resolved
	// capability set.
	ContextKeyCapabilities = "capabilities"
)

// ResolveCapabilities loads the requester's profile flags into a capability
// set, once per request. Guards downstream read only the set, so all checks
// within one request observe the same flags.
func ResolveCapabilities(users *repository.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		profile, err := users.GetProfile(c.Request.Context(), claims.UserID)
		if err != nil {
			response.AbortFail(c, http.StatusForbidden, response.ErrCapabilityDenied)
			return
		}

		c.Set(ContextKeyCapabilities, profile.Capabilities())
		c.Next()
	}
}

// RequireCapability checks the resolved capability set for one capability.
func RequireCapability(name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		val, exists := c.Get(ContextKeyCapabilities)
		if !exists {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		caps, ok := val.(map[string]bool)
		if !ok || !caps[name] {
			response.AbortFail(c, http.StatusForbidden, response.ErrCapabilityDenied)
			return
		}

		c.Next()
	}
}
