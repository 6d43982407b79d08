package adapters

import (
	"context"

	"gorm.io/gorm"

	"songshare/internal/feature/songs/domain/entity"
	"songshare/internal/feature/songs/usecase"
)

// likeMySQL はLikeRepositoryインターフェースのMySQL実装です。
type likeMySQL struct {
	db *gorm.DB
}

// likeMySQLがLikeRepositoryを実装していることをコンパイル時に検証します。
var _ usecase.LikeRepository = (*likeMySQL)(nil)

// NewLikeMySQL は指定されたgorm.DB接続でlikeMySQLの新しいインスタンスを生成します。
func NewLikeMySQL(db *gorm.DB) *likeMySQL {
	return &likeMySQL{db: db}
}

// Create はいいねをデータベースに追加します。
// 重複チェックは行いません。同一ユーザーの再クリックも新しい行になります。
func (r *likeMySQL) Create(ctx context.Context, like *entity.Like) error {
	return r.db.WithContext(ctx).Create(like).Error
}
