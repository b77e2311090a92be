package repository

import (
	"context"

	"app/internal/domain/model"
)

// 割引ルール。決済側はFindFirstByBoutiqueIDだけ使う（読み取り専用）。
type RemiseTypeRepository interface {
	// ブティックの有効ルール（先頭1件）。無ければErrNotFound。
	FindFirstByBoutiqueID(ctx context.Context, boutiqueID int64) (model.RemiseType, error)
	FindByID(ctx context.Context, id int64) (model.RemiseType, error)
	ListByBoutiqueID(ctx context.Context, boutiqueID int64) ([]model.RemiseType, error)
	Create(ctx context.Context, rt model.RemiseType) (model.RemiseType, error)
	Update(ctx context.Context, rt model.RemiseType) error
	Delete(ctx context.Context, id int64) error
}

type BoutiqueRepository interface {
	FindByID(ctx context.Context, id int64) (model.Boutique, error)
	FindByMarchandID(ctx context.Context, marchandID int64) (model.Boutique, error)
}
