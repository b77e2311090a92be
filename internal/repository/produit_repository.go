package repository

import (
	"context"

	"app/internal/domain/model"
)

// 商品の取得だけを約束。作成・編集はマルシャン向け管理画面側（本リポジトリ外）。
type ProduitRepository interface {
	FindByID(ctx context.Context, id int64) (model.Produit, error)
}

// 在庫の増減。減算は「足りるときだけ減らす」条件付きUPDATEで行う。
type InventoryRepository interface {
	DecreaseStockIfEnough(ctx context.Context, produitID int64, qty int64) (bool, error)
	IncreaseStock(ctx context.Context, produitID int64, qty int64) error
}
