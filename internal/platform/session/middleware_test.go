package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"songshare/internal/feature/auth/usecase"
)

// mockResolver is a mock implementation of the Resolver interface.
type mockResolver struct {
	ResolveSessionFunc func(ctx context.Context, token string) (uint, error)
}

func (m *mockResolver) ResolveSession(ctx context.Context, token string) (uint, error) {
	if m.ResolveSessionFunc != nil {
		return m.ResolveSessionFunc(ctx, token)
	}
	return 0, usecase.ErrSessionNotFound
}

// newTestRouter wires CurrentUser plus an AuthRequired probe endpoint.
func newTestRouter(resolver Resolver) *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(CurrentUser(resolver))
	r.GET("/public", func(c *gin.Context) {
		id, ok := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id, "authenticated": ok})
	})

	private := r.Group("/")
	private.Use(AuthRequired())
	private.GET("/private", func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"user_id": id})
	})
	return r
}

func TestCurrentUser(t *testing.T) {
	t.Run("valid cookie resolves to a user", func(t *testing.T) {
		resolver := &mockResolver{
			ResolveSessionFunc: func(ctx context.Context, token string) (uint, error) {
				if token != "good-token" {
					t.Errorf("unexpected token %q", token)
				}
				return 7, nil
			},
		}
		router := newTestRouter(resolver)

		req, _ := http.NewRequest(http.MethodGet, "/public", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "good-token"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"user_id":7`)
	})

	t.Run("missing cookie passes through unauthenticated", func(t *testing.T) {
		router := newTestRouter(&mockResolver{})

		req, _ := http.NewRequest(http.MethodGet, "/public", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":false`)
	})

	t.Run("stale cookie passes through unauthenticated", func(t *testing.T) {
		router := newTestRouter(&mockResolver{})

		req, _ := http.NewRequest(http.MethodGet, "/public", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "stale-token"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), `"authenticated":false`)
	})
}

func TestAuthRequired(t *testing.T) {
	t.Run("authenticated request reaches the handler", func(t *testing.T) {
		resolver := &mockResolver{
			ResolveSessionFunc: func(ctx context.Context, token string) (uint, error) {
				return 7, nil
			},
		}
		router := newTestRouter(resolver)

		req, _ := http.NewRequest(http.MethodGet, "/private", nil)
		req.AddCookie(&http.Cookie{Name: CookieName, Value: "good-token"})
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("unauthenticated request is redirected to the landing page", func(t *testing.T) {
		router := newTestRouter(&mockResolver{})

		req, _ := http.NewRequest(http.MethodGet, "/private", nil)
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusFound, w.Code)
		assert.Equal(t, "/", w.Header().Get("Location"))
	})
}
