package session

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
)

// CookieName is the name of the session cookie.
const CookieName = "songshare_session"

// ContextUserID is the gin context key holding the authenticated user's ID.
const ContextUserID = "userID"

// cookieMaxAge matches the session TTL (7 days).
const cookieMaxAge = 7 * 24 * 60 * 60

// Resolver resolves a session token to the authenticated user's ID.
// Following Go convention: interfaces are defined by the consumer (middleware), not the provider (usecase).
type Resolver interface {
	// ResolveSession returns the user ID for a valid session token.
	ResolveSession(ctx context.Context, token string) (uint, error)
}

// CurrentUser returns a Gin middleware that resolves the session cookie and,
// when a valid session exists, stores the user ID in the request context.
// Requests without a session pass through unauthenticated.
func CurrentUser(resolver Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie(CookieName)
		if err != nil || token == "" {
			c.Next()
			return
		}

		userID, err := resolver.ResolveSession(c.Request.Context(), token)
		if err != nil {
			// 無効・期限切れのセッションは未認証として扱う
			c.Next()
			return
		}

		c.Set(ContextUserID, userID)
		c.Next()
	}
}

// AuthRequired returns a Gin middleware that redirects unauthenticated
// requests to the landing page. It must run after CurrentUser.
func AuthRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := UserID(c); !ok {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user's ID from the request context.
// The second return value is false when the request is not authenticated.
func UserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get(ContextUserID)
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok
}

// SetCookie attaches the session cookie to the response.
func SetCookie(c *gin.Context, token string) {
	c.SetCookie(CookieName, token, cookieMaxAge, "/", "", false, true)
}

// ClearCookie expires the session cookie.
func ClearCookie(c *gin.Context) {
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
}
