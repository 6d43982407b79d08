package router

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	authadapters "songshare/internal/feature/auth/adapters"
	authentity "songshare/internal/feature/auth/domain/entity"
	authhandler "songshare/internal/feature/auth/transport/handler"
	authusecase "songshare/internal/feature/auth/usecase"
	songadapters "songshare/internal/feature/songs/adapters"
	songentity "songshare/internal/feature/songs/domain/entity"
	songhandler "songshare/internal/feature/songs/transport/handler"
	songusecase "songshare/internal/feature/songs/usecase"
	"songshare/internal/platform/session"
)

// setupApp wires the full application against an in-memory SQLite database
// and the real HTML templates, with sessions stored in the database.
func setupApp(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&authentity.User{},
		&songentity.Song{},
		&songentity.Like{},
		&authadapters.SessionModel{},
	))

	authUC := authusecase.NewAuthUsecase(authadapters.NewUserMySQL(db), authadapters.NewSessionMySQL(db))
	songUC := songusecase.NewSongUsecase(songadapters.NewSongMySQL(db), songadapters.NewLikeMySQL(db))

	authH := authhandler.NewAuthHandler(authUC)
	songH := songhandler.NewSongHandler(songUC, authUC, authUC)

	return NewRouter(authH, songH, authUC, "../../../web/templates/*.tmpl"), db
}

// register posts the registration form and returns the session cookie.
func register(t *testing.T, router *gin.Engine, name, email, password string) *http.Cookie {
	t.Helper()

	w := postForm(router, "/user/register", url.Values{
		"name":     {name},
		"email":    {email},
		"password": {password},
		"confirm":  {password},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/Dashboard", w.Header().Get("Location"))

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == session.CookieName {
			return cookie
		}
	}
	t.Fatal("registration did not set a session cookie")
	return nil
}

func postForm(router *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getWithCookie(router *gin.Engine, path string, cookie *http.Cookie) *httptest.ResponseRecorder {
	req, _ := http.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// addSong posts the song form as the given user and returns the new song's ID.
func addSong(t *testing.T, router *gin.Engine, cookie *http.Cookie, title string) uint {
	t.Helper()

	w := postForm(router, "/song/add", url.Values{
		"title":   {title},
		"minutes": {"3"},
		"seconds": {"30"},
		"genre":   {"rock"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code)

	var id uint
	_, err := fmt.Sscanf(w.Header().Get("Location"), "/song/%d", &id)
	require.NoError(t, err)
	return id
}

func TestRegistration(t *testing.T) {
	router, db := setupApp(t)

	register(t, router, "Alice", "alice@example.com", "password123")

	t.Run("password is stored hashed", func(t *testing.T) {
		var user authentity.User
		require.NoError(t, db.Where("email = ?", "alice@example.com").First(&user).Error)
		assert.NotEqual(t, "password123", user.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("password123")))
	})

	t.Run("duplicate email is rejected with a single row", func(t *testing.T) {
		w := postForm(router, "/user/register", url.Values{
			"name":     {"Alice Again"},
			"email":    {"alice@example.com"},
			"password": {"password456"},
			"confirm":  {"password456"},
		}, nil)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Email already in use!")

		var count int64
		require.NoError(t, db.Model(&authentity.User{}).Where("email = ?", "alice@example.com").Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestLoginFailuresAreIndistinguishable(t *testing.T) {
	router, _ := setupApp(t)
	register(t, router, "Alice", "alice@example.com", "password123")

	wrongPassword := postForm(router, "/user/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"wrong-password"},
	}, nil)
	unknownEmail := postForm(router, "/user/login", url.Values{
		"email":    {"nobody@example.com"},
		"password": {"password123"},
	}, nil)

	for _, w := range []*httptest.ResponseRecorder{wrongPassword, unknownEmail} {
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Invalid login attempt")
		assert.NotContains(t, w.Header().Get("Set-Cookie"), session.CookieName+"=")
	}
}

func TestLoginValidationErrorsRenderInLoginSection(t *testing.T) {
	router, _ := setupApp(t)

	w := postForm(router, "/user/login", url.Values{
		"email":    {"not-an-email"},
		"password": {"password123"},
	}, nil)
	require.Equal(t, http.StatusBadRequest, w.Code)

	// The landing page shows the register form first, then the login form.
	// A bad login submission must annotate the login section only.
	body := w.Body.String()
	split := strings.Index(body, "<h2>Log in</h2>")
	require.GreaterOrEqual(t, split, 0)
	registerSection, loginSection := body[:split], body[split:]

	assert.Contains(t, loginSection, "Must be a valid email address")
	assert.NotContains(t, registerSection, `class="error"`)
	assert.Contains(t, loginSection, `value="not-an-email"`, "the login input must be repopulated")
}

func TestLoginStartsSession(t *testing.T) {
	router, _ := setupApp(t)
	register(t, router, "Alice", "alice@example.com", "password123")

	w := postForm(router, "/user/login", url.Values{
		"email":    {"alice@example.com"},
		"password": {"password123"},
	}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/Dashboard", w.Header().Get("Location"))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == session.CookieName {
			cookie = c
		}
	}
	require.NotNil(t, cookie)

	dashboard := getWithCookie(router, "/Dashboard", cookie)
	assert.Equal(t, http.StatusOK, dashboard.Code)
	assert.Contains(t, dashboard.Body.String(), "Alice")
}

func TestAuthRequiredRedirectsToLanding(t *testing.T) {
	router, _ := setupApp(t)

	for _, path := range []string{"/Dashboard", "/song/create", "/song/all", "/song/like/1"} {
		w := getWithCookie(router, path, nil)
		assert.Equal(t, http.StatusFound, w.Code, path)
		assert.Equal(t, "/", w.Header().Get("Location"), path)
	}
}

func TestLikesAccumulatePerClick(t *testing.T) {
	router, db := setupApp(t)
	cookie := register(t, router, "Alice", "alice@example.com", "password123")
	songID := addSong(t, router, cookie, "First Song")

	for i := 0; i < 2; i++ {
		w := getWithCookie(router, fmt.Sprintf("/song/like/%d", songID), cookie)
		require.Equal(t, http.StatusFound, w.Code)
		require.Equal(t, fmt.Sprintf("/song/%d", songID), w.Header().Get("Location"))
	}

	var count int64
	require.NoError(t, db.Model(&songentity.Like{}).Where("song_id = ?", songID).Count(&count).Error)
	assert.Equal(t, int64(2), count, "each click records a like")
}

func TestLikeOnMissingSongLeavesNoRow(t *testing.T) {
	router, db := setupApp(t)
	cookie := register(t, router, "Alice", "alice@example.com", "password123")

	w := getWithCookie(router, "/song/like/999", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/song/all", w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&songentity.Like{}).Count(&count).Error)
	assert.Equal(t, int64(0), count, "no orphan like may be recorded")
}

func TestDashboardShowsTopThreeByLikes(t *testing.T) {
	router, _ := setupApp(t)
	cookie := register(t, router, "Alice", "alice@example.com", "password123")

	ids := make([]uint, 4)
	for i := range ids {
		ids[i] = addSong(t, router, cookie, fmt.Sprintf("Song %c", 'A'+i))
	}
	// likes: A=1, B=3, C=0, D=2 → top three is B, D, A
	likes := map[uint]int{ids[0]: 1, ids[1]: 3, ids[2]: 0, ids[3]: 2}
	for id, n := range likes {
		for i := 0; i < n; i++ {
			getWithCookie(router, fmt.Sprintf("/song/like/%d", id), cookie)
		}
	}

	w := getWithCookie(router, "/Dashboard", cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// The ranking lives in the "Most liked" section; the user's own song
	// list above it shows every song in creation order.
	body := w.Body.String()
	start := strings.Index(body, "Most liked")
	require.GreaterOrEqual(t, start, 0)
	top := body[start:]

	posB := strings.Index(top, "Song B")
	posD := strings.Index(top, "Song D")
	posA := strings.Index(top, "Song A")
	require.True(t, posB >= 0 && posD >= 0 && posA >= 0, "top songs must appear in the ranking")
	assert.Less(t, posB, posD)
	assert.Less(t, posD, posA)
	assert.NotContains(t, top, "Song C", "an unliked song must not rank in the top three")
}

func TestForeignDeleteForcesLogout(t *testing.T) {
	router, db := setupApp(t)
	aliceCookie := register(t, router, "Alice", "alice@example.com", "password123")
	songID := addSong(t, router, aliceCookie, "Alice's Song")

	bobCookie := register(t, router, "Bob", "bob@example.com", "password123")

	w := getWithCookie(router, fmt.Sprintf("/song/delete/%d", songID), bobCookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&songentity.Song{}).Where("id = ?", songID).Count(&count).Error)
	assert.Equal(t, int64(1), count, "the song must survive a foreign delete attempt")

	// Bob's session is gone; authenticated routes now bounce him.
	dashboard := getWithCookie(router, "/Dashboard", bobCookie)
	assert.Equal(t, http.StatusFound, dashboard.Code)
	assert.Equal(t, "/", dashboard.Header().Get("Location"))
}

func TestOwnerDeleteRemovesSong(t *testing.T) {
	router, db := setupApp(t)
	cookie := register(t, router, "Alice", "alice@example.com", "password123")
	songID := addSong(t, router, cookie, "Short Lived")

	w := getWithCookie(router, fmt.Sprintf("/song/delete/%d", songID), cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/Dashboard", w.Header().Get("Location"))

	var count int64
	require.NoError(t, db.Model(&songentity.Song{}).Where("id = ?", songID).Count(&count).Error)
	assert.Equal(t, int64(0), count)
}

func TestUnknownSongRedirectsToListing(t *testing.T) {
	router, _ := setupApp(t)

	w := getWithCookie(router, "/song/999", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/song/all", w.Header().Get("Location"))
}

func TestLogout(t *testing.T) {
	router, _ := setupApp(t)
	cookie := register(t, router, "Alice", "alice@example.com", "password123")

	w := getWithCookie(router, "/logout", cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/", w.Header().Get("Location"))

	dashboard := getWithCookie(router, "/Dashboard", cookie)
	assert.Equal(t, http.StatusFound, dashboard.Code)
	assert.Equal(t, "/", dashboard.Header().Get("Location"))
}
