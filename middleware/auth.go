package middleware

import (
	"log"
	"net/http"
	"net/url"
	"strings"

	"pulse/utils"

	"github.com/gin-gonic/gin"
)

// tokenFromRequest pulls the JWT from the session cookie (browser flows) or
// the Authorization header (API clients).
func tokenFromRequest(c *gin.Context) string {
	if cookie, err := c.Cookie("token"); err == nil && cookie != "" {
		return cookie
	}

	authHeader := c.GetHeader("Authorization")
	if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
		return authHeader[7:]
	}
	return ""
}

// AuthRequired rejects unauthenticated requests with 401. Used on API-style
// endpoints.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "No token provided"})
			return
		}

		userID, err := utils.ValidateJWT(token)
		if err != nil {
			log.Printf("Token validation failed: %v", err)
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}

// LoginRequired sends unauthenticated requests to the login page, carrying
// the originally requested path in the next parameter so the client can
// return after signing in.
func LoginRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token != "" {
			if userID, err := utils.ValidateJWT(token); err == nil {
				c.Set("user_id", userID)
				c.Next()
				return
			}
			log.Printf("Token validation failed, redirecting to login")
		}

		next := url.QueryEscape(c.Request.URL.Path)
		c.Redirect(http.StatusFound, "/auth/login?next="+next)
		c.Abort()
	}
}

// CurrentUserID returns the authenticated user's id set by the auth
// middleware, or 0 when the request is anonymous.
func CurrentUserID(c *gin.Context) uint {
	if v, exists := c.Get("user_id"); exists {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}

// OptionalAuth resolves the viewer identity when a valid token is present
// but lets anonymous requests through.
func OptionalAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if userID, err := utils.ValidateJWT(token); err == nil {
				c.Set("user_id", userID)
			}
		}
		c.Next()
	}
}
