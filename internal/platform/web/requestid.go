package web

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ContextRequestID is the gin context key holding the request correlation ID.
const ContextRequestID = "requestID"

// HeaderRequestID is the response header echoing the correlation ID.
const HeaderRequestID = "X-Request-Id"

// RequestID returns a Gin middleware assigning each request a correlation ID.
// An inbound X-Request-Id header is honored so upstream proxies can correlate.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.GetHeader(HeaderRequestID)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(ContextRequestID, id)
		c.Header(HeaderRequestID, id)
		c.Next()
	}
}

// RequestIDFrom returns the correlation ID assigned by RequestID.
func RequestIDFrom(c *gin.Context) string {
	return c.GetString(ContextRequestID)
}

// RenderError renders the generic error view with the request's correlation ID.
// No internal detail beyond the ID is exposed to the client.
func RenderError(c *gin.Context, status int) {
	c.HTML(status, "error.tmpl", gin.H{
		"RequestID": RequestIDFrom(c),
	})
	c.Abort()
}

// Recovery returns a Gin middleware that turns panics into the generic error
// view instead of a bare 500.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, _ any) {
		RenderError(c, http.StatusInternalServerError)
	})
}
