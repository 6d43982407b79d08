// Package handler はsongsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	authentity "songshare/internal/feature/auth/domain/entity"
	"songshare/internal/feature/songs/domain/entity"
	"songshare/internal/feature/songs/transport/http/dto"
	"songshare/internal/feature/songs/usecase"
	"songshare/internal/platform/session"
	"songshare/internal/platform/web"
)

// topSongsLimit はダッシュボードに表示するランキングの件数です。
const topSongsLimit = 3

// SongUsecase は曲といいね操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type SongUsecase interface {
	// CreateSong は指定されたユーザーを投稿者として新しい曲を登録します。
	CreateSong(ctx context.Context, userID uint, title string, minutes, seconds int, genre string) (*entity.Song, error)
	// GetSong は投稿者といいね情報付きで曲を取得します。
	GetSong(ctx context.Context, id uint) (*entity.Song, error)
	// AllSongs は全曲を投稿者といいね情報付きで取得します。
	AllSongs(ctx context.Context) ([]entity.Song, error)
	// TopSongs はいいね数の降順で上位limit件の曲を取得します。
	TopSongs(ctx context.Context, limit int) ([]entity.Song, error)
	// DeleteSong は曲を削除します。投稿者以外からの要求はErrNotSongOwnerで拒否します。
	DeleteSong(ctx context.Context, songID, requesterID uint) error
	// LikeSong はいいねを記録します。曲が存在しない場合はErrSongNotFoundを返します。
	LikeSong(ctx context.Context, userID, songID uint) (*entity.Like, error)
}

// UserLoader はダッシュボード表示用にユーザーをロードします。
type UserLoader interface {
	// UserWithSongs は投稿曲を含むユーザーを取得します。
	UserWithSongs(ctx context.Context, id uint) (*authentity.User, error)
}

// SessionEnder は強制ログアウトで使用するセッション破棄操作を定義します。
type SessionEnder interface {
	// EndSession はセッションを破棄します。
	EndSession(ctx context.Context, token string) error
}

// SongHandler は曲といいね操作のHTTPリクエストを処理します。
type SongHandler struct {
	songs    SongUsecase
	users    UserLoader
	sessions SessionEnder
}

// NewSongHandler はSongHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewSongHandler(songs SongUsecase, users UserLoader, sessions SessionEnder) *SongHandler {
	return &SongHandler{songs: songs, users: users, sessions: sessions}
}

// Dashboard はログインユーザーの投稿曲といいねランキング上位3曲を描画します。
func (h *SongHandler) Dashboard(c *gin.Context) {
	userID, _ := session.UserID(c)

	user, err := h.users.UserWithSongs(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to load dashboard user", "error", err, "user_id", userID)
		web.RenderError(c, http.StatusInternalServerError)
		return
	}

	top, err := h.songs.TopSongs(c.Request.Context(), topSongsLimit)
	if err != nil {
		slog.Error("failed to load top songs", "error", err)
		web.RenderError(c, http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "dashboard.tmpl", gin.H{
		"User": user,
		"Top":  top,
	})
}

// NewSong は曲投稿フォームを描画します。
func (h *SongHandler) NewSong(c *gin.Context) {
	c.HTML(http.StatusOK, "add_song.tmpl", gin.H{})
}

// CreateSong は曲投稿フォームを処理します。
// バリデーションエラー時はフィールドエラー付きでフォームを再描画し、
// 成功時は新しい曲の詳細ページへリダイレクトします。
func (h *SongHandler) CreateSong(c *gin.Context) {
	userID, _ := session.UserID(c)

	var form dto.SongForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("song validation failed", "error", err, "user_id", userID)
		c.HTML(http.StatusBadRequest, "add_song.tmpl", gin.H{
			"Errors": web.FieldErrors(err),
			"Song":   form,
		})
		return
	}

	song, err := h.songs.CreateSong(c.Request.Context(), userID, form.Title, form.Minutes, form.Seconds, form.Genre)
	if err != nil {
		slog.Error("failed to create song", "error", err, "user_id", userID)
		web.RenderError(c, http.StatusInternalServerError)
		return
	}

	slog.Info("song created", "song_id", song.ID, "user_id", userID)
	c.Redirect(http.StatusFound, fmt.Sprintf("/song/%d", song.ID))
}

// AllSongs は全曲の一覧を描画します。
func (h *SongHandler) AllSongs(c *gin.Context) {
	songs, err := h.songs.AllSongs(c.Request.Context())
	if err != nil {
		slog.Error("failed to list songs", "error", err)
		web.RenderError(c, http.StatusInternalServerError)
		return
	}
	c.HTML(http.StatusOK, "all_songs.tmpl", gin.H{
		"Songs": songs,
	})
}

// OneSong は曲の詳細ページを描画します。
// 曲が存在しない場合は一覧ページへリダイレクトします。
func (h *SongHandler) OneSong(c *gin.Context) {
	songID, ok := parseSongID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/song/all")
		return
	}

	song, err := h.songs.GetSong(c.Request.Context(), songID)
	if err != nil {
		if err == usecase.ErrSongNotFound {
			c.Redirect(http.StatusFound, "/song/all")
			return
		}
		slog.Error("failed to load song", "error", err, "song_id", songID)
		web.RenderError(c, http.StatusInternalServerError)
		return
	}

	c.HTML(http.StatusOK, "one_song.tmpl", gin.H{
		"Song": song,
	})
}

// DeleteSong は曲の削除を処理します。
// - 曲が存在しない場合はダッシュボードへリダイレクト
// - 投稿者本人以外からの要求はセキュリティ違反として扱い、セッションを
//   破棄してランディングページへリダイレクト（強制ログアウト）
func (h *SongHandler) DeleteSong(c *gin.Context) {
	userID, _ := session.UserID(c)

	songID, ok := parseSongID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/Dashboard")
		return
	}

	err := h.songs.DeleteSong(c.Request.Context(), songID, userID)
	switch err {
	case nil:
		slog.Info("song deleted", "song_id", songID, "user_id", userID)
		c.Redirect(http.StatusFound, "/Dashboard")
	case usecase.ErrSongNotFound:
		c.Redirect(http.StatusFound, "/Dashboard")
	case usecase.ErrNotSongOwner:
		// 他人の曲の削除要求はセッションごと無効化する
		slog.Warn("foreign song delete attempt", "song_id", songID, "user_id", userID, "remote_addr", c.ClientIP())
		if token, cerr := c.Cookie(session.CookieName); cerr == nil && token != "" {
			_ = h.sessions.EndSession(c.Request.Context(), token)
		}
		session.ClearCookie(c)
		c.Redirect(http.StatusFound, "/")
	default:
		slog.Error("failed to delete song", "error", err, "song_id", songID)
		web.RenderError(c, http.StatusInternalServerError)
	}
}

// LikeSong はいいねを記録し、曲の詳細ページへリダイレクトします。
// 曲が存在しない場合は一覧ページへリダイレクトします。
func (h *SongHandler) LikeSong(c *gin.Context) {
	userID, _ := session.UserID(c)

	songID, ok := parseSongID(c)
	if !ok {
		c.Redirect(http.StatusFound, "/song/all")
		return
	}

	if _, err := h.songs.LikeSong(c.Request.Context(), userID, songID); err != nil {
		if err == usecase.ErrSongNotFound {
			c.Redirect(http.StatusFound, "/song/all")
			return
		}
		slog.Error("failed to like song", "error", err, "song_id", songID, "user_id", userID)
		web.RenderError(c, http.StatusInternalServerError)
		return
	}

	c.Redirect(http.StatusFound, fmt.Sprintf("/song/%d", songID))
}

// parseSongID はパスパラメータから曲IDを取り出します。
func parseSongID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("songId"), 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}
