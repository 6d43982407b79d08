// Package handler はauthフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"songshare/internal/feature/auth/domain/entity"
	"songshare/internal/feature/auth/transport/http/dto"
	"songshare/internal/feature/auth/usecase"
	"songshare/internal/platform/session"
	"songshare/internal/platform/web"
)

// AuthUsecase は認証操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type AuthUsecase interface {
	// Register は指定された名前・メールアドレス・パスワードで新規ユーザーを登録します。
	Register(ctx context.Context, name, email, password string) (*entity.User, error)
	// Login はユーザーを認証し、成功時にユーザーを返します。
	Login(ctx context.Context, email, password string) (*entity.User, error)
	// StartSession は指定されたユーザーの新しいセッションを発行します。
	StartSession(ctx context.Context, userID uint) (*entity.Session, error)
	// EndSession はセッションを破棄します。
	EndSession(ctx context.Context, token string) error
}

// AuthHandler は認証操作のHTTPリクエストを処理します。
// AuthUsecaseインターフェースに依存し、フォームの受付とビューの描画を行います。
type AuthHandler struct {
	auth AuthUsecase
}

// NewAuthHandler はAuthHandlerの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタで、外部からAuthUsecaseを注入します。
func NewAuthHandler(auth AuthUsecase) *AuthHandler {
	return &AuthHandler{auth: auth}
}

// Index はランディングページ（ログイン・登録フォーム）を描画します。
func (h *AuthHandler) Index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.tmpl", gin.H{})
}

// Register はユーザー登録フォームを処理します。
// - バリデーションエラー時はフィールドエラー付きでフォームを再描画
// - メールアドレス重複時はEmailフィールドのエラーとして再描画
// - 成功時はセッションを発行してダッシュボードへリダイレクト
func (h *AuthHandler) Register(c *gin.Context) {
	var form dto.RegisterForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("register validation failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusBadRequest, "index.tmpl", gin.H{
			"Errors":   web.FieldErrors(err),
			"Register": form,
		})
		return
	}

	user, err := h.auth.Register(c.Request.Context(), form.Name, form.Email, form.Password)
	if err != nil {
		if err == usecase.ErrEmailAlreadyExists {
			slog.Warn("register rejected: duplicate email", "email", form.Email, "remote_addr", c.ClientIP())
			c.HTML(http.StatusBadRequest, "index.tmpl", gin.H{
				"Errors":   gin.H{"Email": "Email already in use!"},
				"Register": form,
			})
			return
		}
		slog.Error("register failed", "error", err, "remote_addr", c.ClientIP())
		web.RenderError(c, http.StatusInternalServerError)
		return
	}

	h.startSession(c, user.ID)
}

// Login はログインフォームを処理します。
// ユーザー列挙攻撃を防止するため、メール未登録とパスワード不一致で同一のエラーを返します。
func (h *AuthHandler) Login(c *gin.Context) {
	var form dto.LoginForm
	if err := c.ShouldBind(&form); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		c.HTML(http.StatusBadRequest, "index.tmpl", gin.H{
			"Errors": loginFieldErrors(err),
			"Login":  form,
		})
		return
	}

	user, err := h.auth.Login(c.Request.Context(), form.Email, form.Password)
	if err != nil {
		if err == usecase.ErrInvalidCredentials {
			slog.Warn("login failed", "email", form.Email, "remote_addr", c.ClientIP())
			c.HTML(http.StatusBadRequest, "index.tmpl", gin.H{
				"Errors": gin.H{"LogEmail": "Invalid login attempt"},
				"Login":  form,
			})
			return
		}
		slog.Error("login failed", "error", err, "remote_addr", c.ClientIP())
		web.RenderError(c, http.StatusInternalServerError)
		return
	}

	slog.Info("user login successful", "email", form.Email, "remote_addr", c.ClientIP())
	h.startSession(c, user.ID)
}

// Logout はセッションを破棄してランディングページへリダイレクトします。
func (h *AuthHandler) Logout(c *gin.Context) {
	if token, err := c.Cookie(session.CookieName); err == nil && token != "" {
		if err := h.auth.EndSession(c.Request.Context(), token); err != nil {
			// セッション破棄の失敗はログアウトを妨げない
			slog.Warn("failed to end session", "error", err)
		}
	}
	session.ClearCookie(c)
	c.Redirect(http.StatusFound, "/")
}

// loginFieldErrors はログインフォームのバリデーションエラーをビューのキーに変換します。
// ランディングページは登録フォームとログインフォームを両方表示するため、
// ログイン側のエラーはLogEmail/LogPasswordキーで区別します。
func loginFieldErrors(err error) map[string]string {
	errs := web.FieldErrors(err)
	for from, to := range map[string]string{"Email": "LogEmail", "Password": "LogPassword"} {
		if msg, ok := errs[from]; ok {
			errs[to] = msg
			delete(errs, from)
		}
	}
	return errs
}

// startSession はセッションを発行し、クッキーを設定してダッシュボードへリダイレクトします。
func (h *AuthHandler) startSession(c *gin.Context, userID uint) {
	sess, err := h.auth.StartSession(c.Request.Context(), userID)
	if err != nil {
		slog.Error("failed to start session", "error", err, "user_id", userID)
		web.RenderError(c, http.StatusInternalServerError)
		return
	}
	session.SetCookie(c, sess.ID)
	c.Redirect(http.StatusFound, "/Dashboard")
}
