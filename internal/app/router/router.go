package router

import (
	authhandler "songshare/internal/feature/auth/transport/handler"
	songhandler "songshare/internal/feature/songs/transport/handler"
	phandler "songshare/internal/platform/http/handler"
	"songshare/internal/platform/session"
	"songshare/internal/platform/web"

	"github.com/gin-gonic/gin"
)

// NewRouter builds the gin engine: templates, middleware and every route.
// templatesGlob is the glob for the HTML views (e.g. "web/templates/*.tmpl").
func NewRouter(auth *authhandler.AuthHandler, songs *songhandler.SongHandler,
	resolver session.Resolver, templatesGlob string) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), web.RequestID(), web.Recovery())
	r.LoadHTMLGlob(templatesGlob)

	// 全ルートでセッションクッキーからログインユーザーを解決
	r.Use(session.CurrentUser(resolver))

	// 認証不要
	// 導通確認用
	r.GET("/healthz", phandler.Health)
	// ランディング（ログイン・登録フォーム）
	r.GET("/", auth.Index)
	r.POST("/user/register", auth.Register)
	r.POST("/user/login", auth.Login)
	r.GET("/logout", auth.Logout)
	// 汎用エラーページ
	r.GET("/Error", phandler.Error)
	// 曲詳細は未ログインでも閲覧可能
	r.GET("/song/:songId", songs.OneSong)
	// 削除は所有者チェックのみ。未ログインや他人の要求は強制ログアウト扱い
	r.GET("/song/delete/:songId", songs.DeleteSong)

	// 認証必須のルート
	// r.Group("/") でルートグループを作成
	authRequired := r.Group("/")
	// session.AuthRequired() ミドルウェアを適用
	// → 未ログインのリクエストはランディングページへリダイレクトされる
	authRequired.Use(session.AuthRequired())
	{
		authRequired.GET("/Dashboard", songs.Dashboard)
		authRequired.GET("/song/create", songs.NewSong)
		authRequired.POST("/song/add", songs.CreateSong)
		authRequired.GET("/song/all", songs.AllSongs)
		authRequired.GET("/song/like/:songId", songs.LikeSong)
	}

	return r
}
