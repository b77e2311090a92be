package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ProduitGormRepository struct {
	db *gorm.DB
}

func NewProduitGormRepository(db *gorm.DB) *ProduitGormRepository {
	return &ProduitGormRepository{db: db}
}

func (r *ProduitGormRepository) FindByID(ctx context.Context, id int64) (model.Produit, error) {
	var p model.Produit
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Produit{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Produit{}, err
	}
	return p, nil
}

type InventoryGormRepository struct {
	db *gorm.DB
}

func NewInventoryGormRepository(db *gorm.DB) *InventoryGormRepository {
	return &InventoryGormRepository{db: db}
}

// 在庫が足りるときだけ減らす
func (r *InventoryGormRepository) DecreaseStockIfEnough(ctx context.Context, produitID int64, qty int64) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Produit{}).
		Where("id = ? AND stock >= ?", produitID, qty).
		Update("stock", gorm.Expr("stock - ?", qty))

	if res.Error != nil {
		return false, res.Error
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	return true, nil
}

// 在庫戻し（キャンセル）
func (r *InventoryGormRepository) IncreaseStock(ctx context.Context, produitID int64, qty int64) error {
	res := r.db.WithContext(ctx).
		Model(&model.Produit{}).
		Where("id = ?", produitID).
		Update("stock", gorm.Expr("stock + ?", qty))

	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
