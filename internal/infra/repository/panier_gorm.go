package repository

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type PanierGormRepository struct {
	db *gorm.DB
}

func NewPanierGormRepository(db *gorm.DB) *PanierGormRepository {
	return &PanierGormRepository{db: db}
}

func (r *PanierGormRepository) GetOrCreateActiveByClientID(ctx context.Context, clientID int64) (model.Panier, error) {
	var p model.Panier
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND status = ?", clientID, model.PanierStatusActive).
		First(&p).Error
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Panier{}, err
	}

	p = model.Panier{ClientID: clientID, Status: model.PanierStatusActive}
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Panier{}, err
	}
	return p, nil
}

func (r *PanierGormRepository) FindActiveByClientID(ctx context.Context, clientID int64) (model.Panier, error) {
	var p model.Panier
	err := r.db.WithContext(ctx).
		Where("client_id = ? AND status = ?", clientID, model.PanierStatusActive).
		First(&p).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Panier{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Panier{}, err
	}
	return p, nil
}

func (r *PanierGormRepository) UpdateStatus(ctx context.Context, panierID int64, status model.PanierStatus) error {
	res := r.db.WithContext(ctx).Model(&model.Panier{}).
		Where("id = ?", panierID).
		Update("status", status)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *PanierGormRepository) Clear(ctx context.Context, panierID int64) error {
	return r.db.WithContext(ctx).
		Where("panier_id = ?", panierID).
		Delete(&model.LignePanier{}).Error
}

type LignePanierGormRepository struct {
	db *gorm.DB
}

func NewLignePanierGormRepository(db *gorm.DB) *LignePanierGormRepository {
	return &LignePanierGormRepository{db: db}
}

func (r *LignePanierGormRepository) ListByPanierID(ctx context.Context, panierID int64) ([]model.LignePanier, error) {
	var lignes []model.LignePanier
	err := r.db.WithContext(ctx).
		Where("panier_id = ?", panierID).
		Order("id asc").
		Find(&lignes).Error
	if err != nil {
		return nil, err
	}
	return lignes, nil
}

func (r *LignePanierGormRepository) UpsertByPanierAndProduit(ctx context.Context, panierID int64, produitID int64, addQty int64, prixSnapshot decimal.Decimal) error {
	//同一商品は数量加算
	res := r.db.WithContext(ctx).Model(&model.LignePanier{}).
		Where("panier_id = ? AND produit_id = ?", panierID, produitID).
		Update("quantite", gorm.Expr("quantite + ?", addQty))
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected > 0 {
		return nil
	}

	ligne := model.LignePanier{
		PanierID:     panierID,
		ProduitID:    produitID,
		Quantite:     addQty,
		PrixSnapshot: prixSnapshot,
	}
	return r.db.WithContext(ctx).Create(&ligne).Error
}

func (r *LignePanierGormRepository) UpdateQuantite(ctx context.Context, ligneID int64, qty int64) error {
	res := r.db.WithContext(ctx).Model(&model.LignePanier{}).
		Where("id = ?", ligneID).
		Update("quantite", qty)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LignePanierGormRepository) DeleteByID(ctx context.Context, ligneID int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", ligneID).Delete(&model.LignePanier{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *LignePanierGormRepository) FindByID(ctx context.Context, ligneID int64) (model.LignePanier, error) {
	var ligne model.LignePanier
	err := r.db.WithContext(ctx).Where("id = ?", ligneID).First(&ligne).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.LignePanier{}, repo.ErrNotFound
	}
	if err != nil {
		return model.LignePanier{}, err
	}
	return ligne, nil
}

func (r *LignePanierGormRepository) IsOwnedByClient(ctx context.Context, ligneID int64, clientID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.LignePanier{}).
		Joins("JOIN paniers ON paniers.id = lignes_paniers.panier_id").
		Where("lignes_paniers.id = ? AND paniers.client_id = ?", ligneID, clientID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
