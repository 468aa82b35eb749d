// Package usecase はauthフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"charter_backend/internal/feature/auth/domain/entity"
)

// hashCost はbcryptのコストファクターです。固定値（10ラウンド）。
const hashCost = bcrypt.DefaultCost

// UserRepository はユーザーエンティティの永続化層を抽象化します。
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
type UserRepository interface {
	// Create は新しいユーザーをストレージに永続化します。
	// 同じメールアドレスのユーザーが既に存在する場合、ErrEmailAlreadyExistsを返します。
	Create(ctx context.Context, user *entity.User) error

	// FindByEmail は指定されたメールアドレスに一致するユーザーを取得します。
	// ユーザーが存在しない場合、ErrUserNotFoundを返します。
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}

// authUsecase はユーザー登録のビジネスロジックを実装します。
type authUsecase struct {
	users UserRepository
}

// NewAuthUsecase はauthUsecaseの新しいインスタンスを生成します。
func NewAuthUsecase(users UserRepository) *authUsecase {
	return &authUsecase{users: users}
}

// Register はハッシュ化されたパスワードで新規ユーザーを登録し、作成されたユーザーを返します。
//
// 存在チェックとINSERTはアトミックではありません。同じメールアドレスの同時登録は
// ストアのユニーク制約で決着し、敗者にはErrEmailAlreadyExistsが返ります。
func (u *authUsecase) Register(ctx context.Context, name, email, password string) (*entity.User, error) {
	// 既存ユーザーの確認
	existing, err := u.users.FindByEmail(ctx, email)
	if err != nil && !errors.Is(err, ErrUserNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), hashCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &entity.User{Name: name, Email: email, Password: string(hashed)}
	if err := u.users.Create(ctx, user); err != nil {
		// レースの敗者もここでErrEmailAlreadyExistsを受け取る
		return nil, err
	}
	return user, nil
}
