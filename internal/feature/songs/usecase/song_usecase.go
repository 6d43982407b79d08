// Package usecase はsongsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"fmt"

	"songshare/internal/feature/songs/domain/entity"
)

// SongRepository は曲エンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type SongRepository interface {
	// Create は新しい曲をストレージに永続化します。
	Create(ctx context.Context, song *entity.Song) error

	// FindByID は指定されたIDに一致する曲を取得します。
	// withRelationsがtrueの場合、投稿者といいねしたユーザーも同時にロードします。
	// 曲が存在しない場合、ErrSongNotFoundを返します。
	FindByID(ctx context.Context, id uint, withRelations bool) (*entity.Song, error)

	// ListAll は全曲を投稿者といいね情報付きで取得します。
	ListAll(ctx context.Context) ([]entity.Song, error)

	// ListTopByLikes はいいね数の降順で上位limit件の曲を取得します。
	ListTopByLikes(ctx context.Context, limit int) ([]entity.Song, error)

	// Delete は曲を削除します。
	Delete(ctx context.Context, id uint) error
}

// LikeRepository はいいねエンティティの永続化層を抽象化します。
type LikeRepository interface {
	// Create は新しいいいねをストレージに永続化します。
	Create(ctx context.Context, like *entity.Like) error
}

// songUsecase は曲といいねのビジネスロジックを実装します。
type songUsecase struct {
	songs SongRepository
	likes LikeRepository
}

// NewSongUsecase はsongUsecaseの新しいインスタンスを生成します。
func NewSongUsecase(songs SongRepository, likes LikeRepository) *songUsecase {
	return &songUsecase{
		songs: songs,
		likes: likes,
	}
}

// CreateSong は指定されたユーザーを投稿者として新しい曲を登録します。
// 入力値のバリデーションはトランスポート層で完了している前提です。
func (u *songUsecase) CreateSong(ctx context.Context, userID uint, title string, minutes, seconds int, genre string) (*entity.Song, error) {
	song := &entity.Song{
		Title:      title,
		DurMinutes: minutes,
		DurSeconds: seconds,
		Genre:      genre,
		UserID:     userID,
	}
	if err := u.songs.Create(ctx, song); err != nil {
		return nil, fmt.Errorf("failed to create song: %w", err)
	}
	return song, nil
}

// GetSong は投稿者といいね情報付きで曲を取得します。詳細ページ表示用です。
func (u *songUsecase) GetSong(ctx context.Context, id uint) (*entity.Song, error) {
	return u.songs.FindByID(ctx, id, true)
}

// AllSongs は全曲を投稿者といいね情報付きで取得します。
func (u *songUsecase) AllSongs(ctx context.Context) ([]entity.Song, error) {
	return u.songs.ListAll(ctx)
}

// TopSongs はいいね数の降順で上位limit件の曲を取得します。ダッシュボードのランキング用です。
func (u *songUsecase) TopSongs(ctx context.Context, limit int) ([]entity.Song, error) {
	return u.songs.ListTopByLikes(ctx, limit)
}

// DeleteSong は曲を削除します。投稿者本人以外からの削除要求はErrNotSongOwnerで拒否します。
func (u *songUsecase) DeleteSong(ctx context.Context, songID, requesterID uint) error {
	song, err := u.songs.FindByID(ctx, songID, false)
	if err != nil {
		return err
	}
	if song.UserID != requesterID {
		return ErrNotSongOwner
	}
	return u.songs.Delete(ctx, songID)
}

// LikeSong はいいねを記録します。存在しない曲への要求はErrSongNotFoundを返します。
// 同一ユーザーによる同一曲への重複いいねは許容します（クリックごとに1行）。
func (u *songUsecase) LikeSong(ctx context.Context, userID, songID uint) (*entity.Like, error) {
	if _, err := u.songs.FindByID(ctx, songID, false); err != nil {
		return nil, err
	}
	like := &entity.Like{UserID: userID, SongID: songID}
	if err := u.likes.Create(ctx, like); err != nil {
		return nil, fmt.Errorf("failed to create like: %w", err)
	}
	return like, nil
}
