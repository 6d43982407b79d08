package main

import (
	"log"
	"os"

	redisv9 "github.com/redis/go-redis/v9"

	"songshare/internal/app/di"
	"songshare/internal/app/router"
	authadapters "songshare/internal/feature/auth/adapters"
	authhandler "songshare/internal/feature/auth/transport/handler"
	authusecase "songshare/internal/feature/auth/usecase"
	songadapters "songshare/internal/feature/songs/adapters"
	songhandler "songshare/internal/feature/songs/transport/handler"
	songusecase "songshare/internal/feature/songs/usecase"
	"songshare/internal/platform/cache"
	infradb "songshare/internal/platform/db"
	infraredis "songshare/internal/platform/redis"
)

func main() {
	// db
	db := infradb.OpenDB()

	// Redis
	var rdb *redisv9.Client
	if tmp, err := infraredis.NewRedisClient(); err != nil {
		log.Println("[WARN] Redis unavailable. Falling back to DB sessions, no leaderboard cache.")
		rdb = nil
	} else {
		rdb = tmp
		defer func() {
			if err := rdb.Close(); err != nil {
				log.Println("[ERROR] Failed to close Redis client:", err)
			}
		}()
	}

	// Repository
	userRepo := authadapters.NewUserMySQL(db)
	sessionRepo := di.NewSessionRepository(rdb, db)
	songRepo := songadapters.NewSongMySQL(db)
	likeRepo := songadapters.NewLikeMySQL(db)

	// Redisキャッシュでラップ（ランキングのみ）
	cachedSongRepo := cache.NewCachingSongRepository(rdb, 0, songRepo, "songs")
	cachedLikeRepo := cache.NewCachingLikeRepository(likeRepo, cachedSongRepo)

	// Usecase
	authUC := authusecase.NewAuthUsecase(userRepo, sessionRepo)
	songUC := songusecase.NewSongUsecase(cachedSongRepo, cachedLikeRepo)

	// Handler
	authH := authhandler.NewAuthHandler(authUC)
	songH := songhandler.NewSongHandler(songUC, authUC, authUC)

	// ルータ生成
	router := router.NewRouter(authH, songH, authUC, "web/templates/*.tmpl")

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	if err := router.Run(":" + port); err != nil {
		log.Fatal(err)
	}
}
