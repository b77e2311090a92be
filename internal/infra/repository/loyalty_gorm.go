package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type BadgeGormRepository struct {
	db *gorm.DB
}

func NewBadgeGormRepository(db *gorm.DB) *BadgeGormRepository {
	return &BadgeGormRepository{db: db}
}

func (r *BadgeGormRepository) FindBestForOrders(ctx context.Context, orders int64) (model.Badge, bool, error) {
	var b model.Badge
	err := r.db.WithContext(ctx).
		Where("threshold <= ?", orders).
		Order("threshold desc").
		First(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Badge{}, false, nil
	}
	if err != nil {
		return model.Badge{}, false, err
	}
	return b, true, nil
}

type ReferralRuleGormRepository struct {
	db *gorm.DB
}

func NewReferralRuleGormRepository(db *gorm.DB) *ReferralRuleGormRepository {
	return &ReferralRuleGormRepository{db: db}
}

func (r *ReferralRuleGormRepository) List(ctx context.Context) ([]model.ReferralRule, error) {
	var rules []model.ReferralRule
	if err := r.db.WithContext(ctx).Order("referrals_count asc").Find(&rules).Error; err != nil {
		return nil, err
	}
	return rules, nil
}

type DiscountGormRepository struct {
	db *gorm.DB
}

func NewDiscountGormRepository(db *gorm.DB) *DiscountGormRepository {
	return &DiscountGormRepository{db: db}
}

func (r *DiscountGormRepository) ExistsByClientAndName(ctx context.Context, clientID int64, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Discount{}).
		Where("client_id = ? AND name = ?", clientID, name).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *DiscountGormRepository) Create(ctx context.Context, d model.Discount) error {
	return r.db.WithContext(ctx).Create(&d).Error
}

func (r *DiscountGormRepository) ListByClientID(ctx context.Context, clientID int64) ([]model.Discount, error) {
	var ds []model.Discount
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("applied_at desc").
		Find(&ds).Error
	if err != nil {
		return nil, err
	}
	return ds, nil
}

type NotificationGormRepository struct {
	db *gorm.DB
}

func NewNotificationGormRepository(db *gorm.DB) *NotificationGormRepository {
	return &NotificationGormRepository{db: db}
}

func (r *NotificationGormRepository) Create(ctx context.Context, n model.Notification) error {
	return r.db.WithContext(ctx).Create(&n).Error
}

func (r *NotificationGormRepository) ListByClientID(ctx context.Context, clientID int64) ([]model.Notification, error) {
	var ns []model.Notification
	err := r.db.WithContext(ctx).
		Where("client_id = ?", clientID).
		Order("date desc").
		Find(&ns).Error
	if err != nil {
		return nil, err
	}
	return ns, nil
}

func (r *NotificationGormRepository) MarkRead(ctx context.Context, id string, clientID int64) error {
	res := r.db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND client_id = ?", id, clientID).
		Update("is_read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

type AuditLogGormRepository struct {
	db *gorm.DB
}

func NewAuditLogGormRepository(db *gorm.DB) *AuditLogGormRepository {
	return &AuditLogGormRepository{db: db}
}

func (r *AuditLogGormRepository) Create(ctx context.Context, log model.AuditLog) error {
	return r.db.WithContext(ctx).Create(&log).Error
}
