package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

func (r *ClientGormRepository) FindByUserID(ctx context.Context, userID int64) (model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Client{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Client{}, err
	}
	return c, nil
}

// FindByUserIDForUpdate は行ロック付き。ロイヤルティ更新はこちらを使う。
func (r *ClientGormRepository) FindByUserIDForUpdate(ctx context.Context, userID int64) (model.Client, error) {
	var c model.Client
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("user_id = ?", userID).
		First(&c).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Client{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Client{}, err
	}
	return c, nil
}

func (r *ClientGormRepository) Update(ctx context.Context, c model.Client) error {
	res := r.db.WithContext(ctx).Model(&model.Client{}).
		Where("user_id = ?", c.UserID).
		Updates(map[string]interface{}{
			"orders":                   c.Orders,
			"solde_points":             c.SoldePoints,
			"historique_achats":        c.HistoriqueAchats,
			"nombre_clients_parraines": c.NombreClientsParraines,
			"current_badge_id":         c.CurrentBadgeID,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}
