// Package adapters はsongsフィーチャーのリポジトリ実装を提供します。
package adapters

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"songshare/internal/feature/songs/domain/entity"
	"songshare/internal/feature/songs/usecase"
)

// songMySQL はSongRepositoryインターフェースのMySQL実装です。
// GORMを使用してデータベース操作を行います。
type songMySQL struct {
	db *gorm.DB
}

// songMySQLがSongRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.SongRepository = (*songMySQL)(nil)

// NewSongMySQL は指定されたgorm.DB接続でsongMySQLの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewSongMySQL(db *gorm.DB) *songMySQL {
	return &songMySQL{db: db}
}

// Create は曲をデータベースに追加します。
func (r *songMySQL) Create(ctx context.Context, song *entity.Song) error {
	return r.db.WithContext(ctx).Create(song).Error
}

// FindByID はIDで曲を取得します。
// withRelationsがtrueの場合、投稿者といいねしたユーザーを同時にロードします。
// 曲が存在しない場合、usecase.ErrSongNotFoundを返します。
func (r *songMySQL) FindByID(ctx context.Context, id uint, withRelations bool) (*entity.Song, error) {
	query := r.db.WithContext(ctx)
	if withRelations {
		query = query.Preload("Artist").Preload("Likes").Preload("Likes.User")
	}

	var song entity.Song
	if err := query.Where("id = ?", id).First(&song).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrSongNotFound
		}
		return nil, err
	}
	return &song, nil
}

// ListAll は全曲を投稿者といいね情報付きで取得します。
func (r *songMySQL) ListAll(ctx context.Context) ([]entity.Song, error) {
	var songs []entity.Song
	if err := r.db.WithContext(ctx).
		Preload("Artist").
		Preload("Likes").
		Preload("Likes.User").
		Find(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}

// ListTopByLikes はいいね数の降順で上位limit件の曲を取得します。
// 同数の場合の順序はストレージの自然順に従います。
func (r *songMySQL) ListTopByLikes(ctx context.Context, limit int) ([]entity.Song, error) {
	var songs []entity.Song
	if err := r.db.WithContext(ctx).
		Model(&entity.Song{}).
		Select("songs.*, COUNT(likes.id) AS like_count").
		Joins("LEFT JOIN likes ON likes.song_id = songs.id").
		Group("songs.id").
		Order("like_count DESC").
		Limit(limit).
		Preload("Artist").
		Preload("Likes").
		Preload("Likes.User").
		Find(&songs).Error; err != nil {
		return nil, err
	}
	return songs, nil
}

// Delete はIDで曲を削除します。関連するいいねはストレージ側のカスケードで削除されます。
func (r *songMySQL) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Song{}, "id = ?", id).Error
}
