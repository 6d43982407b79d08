// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"songshare/internal/feature/songs/domain/entity"
	"songshare/internal/feature/songs/usecase"
)

// CachingSongRepository decorates a SongRepository with Redis caching of the
// leaderboard query. It implements the decorator pattern, transparently adding
// caching without modifying the underlying repository. Writes that can change
// like counts invalidate the cached leaderboard.
type CachingSongRepository struct {
	inner     usecase.SongRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingSongRepository decorates a SongRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "songs".
func NewCachingSongRepository(rdb *redis.Client, ttl time.Duration, inner usecase.SongRepository, namespace string) *CachingSongRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "songs"
	}
	return &CachingSongRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// topKey returns the cache key for the top-N leaderboard.
func (c *CachingSongRepository) topKey(limit int) string {
	return fmt.Sprintf("%s:top:%d", c.namespace, limit)
}

// invalidateTop drops every cached leaderboard entry. Best effort: cache
// deletion failures never fail the write.
func (c *CachingSongRepository) invalidateTop(ctx context.Context) {
	if c.rdb == nil {
		return
	}
	iter := c.rdb.Scan(ctx, 0, c.namespace+":top:*", 0).Iterator()
	for iter.Next(ctx) {
		_ = c.rdb.Del(ctx, iter.Val()).Err()
	}
}

// Create inserts a song and invalidates the cached leaderboard.
func (c *CachingSongRepository) Create(ctx context.Context, song *entity.Song) error {
	if err := c.inner.Create(ctx, song); err != nil {
		return err
	}
	c.invalidateTop(ctx)
	return nil
}

// FindByID delegates to the underlying repository; detail pages are not cached.
func (c *CachingSongRepository) FindByID(ctx context.Context, id uint, withRelations bool) (*entity.Song, error) {
	return c.inner.FindByID(ctx, id, withRelations)
}

// ListAll delegates to the underlying repository.
func (c *CachingSongRepository) ListAll(ctx context.Context) ([]entity.Song, error) {
	return c.inner.ListAll(ctx)
}

// ListTopByLikes retrieves the leaderboard, checking cache first then falling
// back to the database.
func (c *CachingSongRepository) ListTopByLikes(ctx context.Context, limit int) ([]entity.Song, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return c.inner.ListTopByLikes(ctx, limit)
	}

	key := c.topKey(limit)

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Song
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Corrupt cache entry: fall through to the database
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Cache miss: query the database
	songs, err := c.inner.ListTopByLikes(ctx, limit)
	if err != nil {
		return nil, err
	}

	// 3) Store the result. Best effort: don't fail the read on cache errors.
	if b, err := json.Marshal(songs); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return songs, nil
}

// Delete removes a song and invalidates the cached leaderboard.
func (c *CachingSongRepository) Delete(ctx context.Context, id uint) error {
	if err := c.inner.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidateTop(ctx)
	return nil
}

// CachingLikeRepository decorates a LikeRepository so that new likes
// invalidate the cached leaderboard maintained by CachingSongRepository.
type CachingLikeRepository struct {
	inner usecase.LikeRepository
	songs *CachingSongRepository
}

// NewCachingLikeRepository pairs a LikeRepository with the song cache it must invalidate.
func NewCachingLikeRepository(inner usecase.LikeRepository, songs *CachingSongRepository) *CachingLikeRepository {
	return &CachingLikeRepository{inner: inner, songs: songs}
}

// Create inserts a like and invalidates the cached leaderboard.
func (c *CachingLikeRepository) Create(ctx context.Context, like *entity.Like) error {
	if err := c.inner.Create(ctx, like); err != nil {
		return err
	}
	if c.songs != nil {
		c.songs.invalidateTop(ctx)
	}
	return nil
}
