package repository

import (
	"context"

	"app/internal/domain/model"
)

type ClientRepository interface {
	FindByUserID(ctx context.Context, userID int64) (model.Client, error)
	// ロイヤルティ更新用。クライアント行をロックして二重加算を防ぐ。
	FindByUserIDForUpdate(ctx context.Context, userID int64) (model.Client, error)
	Update(ctx context.Context, c model.Client) error
}
