package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type RemiseTypeGormRepository struct {
	db *gorm.DB
}

func NewRemiseTypeGormRepository(db *gorm.DB) *RemiseTypeGormRepository {
	return &RemiseTypeGormRepository{db: db}
}

// FindFirstByBoutiqueID はブティックの有効ルール（最初の1件）。
func (r *RemiseTypeGormRepository) FindFirstByBoutiqueID(ctx context.Context, boutiqueID int64) (model.RemiseType, error) {
	var rt model.RemiseType
	err := r.db.WithContext(ctx).
		Where("boutique_id = ?", boutiqueID).
		Order("id asc").
		First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RemiseType{}, repo.ErrNotFound
	}
	if err != nil {
		return model.RemiseType{}, err
	}
	return rt, nil
}

func (r *RemiseTypeGormRepository) FindByID(ctx context.Context, id int64) (model.RemiseType, error) {
	var rt model.RemiseType
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&rt).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.RemiseType{}, repo.ErrNotFound
	}
	if err != nil {
		return model.RemiseType{}, err
	}
	return rt, nil
}

func (r *RemiseTypeGormRepository) ListByBoutiqueID(ctx context.Context, boutiqueID int64) ([]model.RemiseType, error) {
	var rts []model.RemiseType
	err := r.db.WithContext(ctx).
		Where("boutique_id = ?", boutiqueID).
		Order("created_at desc").
		Find(&rts).Error
	if err != nil {
		return nil, err
	}
	return rts, nil
}

func (r *RemiseTypeGormRepository) Create(ctx context.Context, rt model.RemiseType) (model.RemiseType, error) {
	if err := r.db.WithContext(ctx).Create(&rt).Error; err != nil {
		return model.RemiseType{}, err
	}
	return rt, nil
}

func (r *RemiseTypeGormRepository) Update(ctx context.Context, rt model.RemiseType) error {
	res := r.db.WithContext(ctx).Model(&model.RemiseType{}).
		Where("id = ?", rt.ID).
		Updates(map[string]interface{}{
			"type_remise":         rt.TypeRemise,
			"pourcentage_remise":  rt.PourcentageRemise,
			"montant_max_remise":  rt.MontantMaxRemise,
			"nombre_tranches":     rt.NombreTranches,
			"duree_plan_paiement": rt.DureePlanPaiement,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (r *RemiseTypeGormRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(&model.RemiseType{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type BoutiqueGormRepository struct {
	db *gorm.DB
}

func NewBoutiqueGormRepository(db *gorm.DB) *BoutiqueGormRepository {
	return &BoutiqueGormRepository{db: db}
}

func (r *BoutiqueGormRepository) FindByID(ctx context.Context, id int64) (model.Boutique, error) {
	var b model.Boutique
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Boutique{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Boutique{}, err
	}
	return b, nil
}

func (r *BoutiqueGormRepository) FindByMarchandID(ctx context.Context, marchandID int64) (model.Boutique, error) {
	var b model.Boutique
	err := r.db.WithContext(ctx).
		Where("marchand_id = ?", marchandID).
		Order("id asc").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Boutique{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Boutique{}, err
	}
	return b, nil
}
