package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"songshare/internal/platform/web"
)

// Error handles the /Error endpoint. It renders the generic error view with
// the request correlation ID and nothing else.
func Error(c *gin.Context) {
	c.HTML(http.StatusOK, "error.tmpl", gin.H{
		"RequestID": web.RequestIDFrom(c),
	})
}
