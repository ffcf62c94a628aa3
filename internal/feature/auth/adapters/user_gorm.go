// Package adapters はauthフィーチャーのユーザーディレクトリ実装を提供します。
package adapters

import (
	"context"
	"errors"
	"fmt"

	"gorm.io/gorm"

	"message_backend/internal/feature/auth/domain/entity"
	"message_backend/internal/feature/auth/usecase"
)

// userGorm はUserDirectoryインターフェースのGORM実装です。
// PostgreSQLとSQLiteのどちらの接続でも動作します。
type userGorm struct {
	db *gorm.DB
}

// userGormがUserDirectoryを実装していることをコンパイル時に検証します。
var _ usecase.UserDirectory = (*userGorm)(nil)

// NewUserGorm は指定されたgorm.DB接続でuserGormの新しいインスタンスを生成します。
// 依存性注入用のコンストラクタです。
func NewUserGorm(db *gorm.DB) *userGorm {
	return &userGorm{db: db}
}

// FindByIdentifier はユーザー名またはメールアドレスでユーザーを取得します。
// ユーザーが存在しない場合、usecase.ErrUserNotFoundを返します。
// それ以外のDBエラーはそのまま返し、呼び出し側でDirectoryUnavailableに変換されます。
func (r *userGorm) FindByIdentifier(ctx context.Context, identifier string) (*entity.User, error) {
	var m UserModel
	err := r.db.WithContext(ctx).
		Where("username = ? OR email = ?", identifier, identifier).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrUserNotFound
		}
		return nil, err
	}
	return m.ToEntity(), nil
}

// Ping はデータベースへの疎通を確認します。
func (r *userGorm) Ping(ctx context.Context) error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return fmt.Errorf("get sql.DB: %w", err)
	}
	return sqlDB.PingContext(ctx)
}
