// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"

	"songshare/internal/feature/auth/domain/entity"

	"golang.org/x/crypto/bcrypt"
)

// sessionTTL はセッションの有効期間を定義します。
const sessionTTL = 7 * 24 * time.Hour

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)

	// FindByID は指定されたIDに一致するユーザーを取得します。
	// withSongsがtrueの場合、ユーザーの投稿曲も同時にロードします。
	FindByID(ctx context.Context, id uint, withSongs bool) (*entity.User, error)
}

// authUsecase は認証ビジネスロジックを実装します。
type authUsecase struct {
	users    UserRepository
	sessions SessionRepository
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository, sessions SessionRepository) *authUsecase {
	return &authUsecase{
		users:    users,
		sessions: sessions,
	}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録します。
// メールアドレスが既に使用されている場合、ErrEmailAlreadyExistsを返します。
// 事前チェックとDBのユニーク制約の二段構えで重複を防ぎます。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	// メールアドレスの重複を事前に確認（フィールドエラーとして返すため）
	if _, err := u.users.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	// check-then-insertの競合はアダプタ側のユニーク制約マッピングが拾う
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login はユーザーを認証し、成功時にユーザーを返します。
// タイミング攻撃を防止するため、ユーザーが存在しない場合でもbcrypt比較を実行します。
func (u *authUsecase) Login(ctx context.Context, email, password string) (*entity.User, error) {
	// メールアドレスでユーザーを検索
	user, err := u.users.FindByEmail(ctx, email)

	// ユーザーが存在しない場合のタイミング攻撃緩和用ダミーハッシュ
	// bcrypt.CompareHashAndPasswordが常に呼ばれることを保証する
	passwordHash := "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy" // ダミーハッシュ
	if err == nil {
		passwordHash = user.Password
	}

	// タイミング攻撃防止のため、常にパスワードを検証
	// 第1引数はハッシュ化パスワード、第2引数は平文パスワード
	compareErr := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(password))

	// ユーザー未検出またはパスワード不一致の場合、汎用エラーを返す
	if err != nil || compareErr != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// StartSession は指定されたユーザーの新しいセッションを発行します。
// セッションIDは暗号学的乱数から生成した64文字の16進文字列です。
func (u *authUsecase) StartSession(ctx context.Context, userID uint) (*entity.Session, error) {
	token, err := newSessionToken()
	if err != nil {
		return nil, fmt.Errorf("failed to generate session token: %w", err)
	}

	now := time.Now()
	session := &entity.Session{
		ID:        token,
		UserID:    userID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := u.sessions.Create(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to persist session: %w", err)
	}
	return session, nil
}

// ResolveSession はセッショントークンから認証済みユーザーIDを解決します。
// セッションが存在しない、または期限切れの場合、ErrSessionNotFoundを返します。
func (u *authUsecase) ResolveSession(ctx context.Context, token string) (uint, error) {
	session, err := u.sessions.FindByID(ctx, token)
	if err != nil {
		return 0, err
	}
	if session.IsExpired() {
		return 0, ErrSessionNotFound
	}
	return session.UserID, nil
}

// EndSession はセッションを破棄します。ログアウトおよび強制ログアウトで使用します。
func (u *authUsecase) EndSession(ctx context.Context, token string) error {
	return u.sessions.Delete(ctx, token)
}

// UserWithSongs は投稿曲を含むユーザーを取得します。ダッシュボード表示用です。
func (u *authUsecase) UserWithSongs(ctx context.Context, id uint) (*entity.User, error) {
	return u.users.FindByID(ctx, id, true)
}

// newSessionToken は暗号学的に安全な32バイトの乱数を16進文字列で返します。
func newSessionToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
