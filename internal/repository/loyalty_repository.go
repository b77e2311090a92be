package repository

import (
	"context"

	"app/internal/domain/model"
)

type BadgeRepository interface {
	// threshold <= orders の中で最大のしきい値のバッジ。該当なしはfalse。
	FindBestForOrders(ctx context.Context, orders int64) (model.Badge, bool, error)
}

type ReferralRuleRepository interface {
	List(ctx context.Context) ([]model.ReferralRule, error)
}

type DiscountRepository interface {
	ExistsByClientAndName(ctx context.Context, clientID int64, name string) (bool, error)
	Create(ctx context.Context, d model.Discount) error
	ListByClientID(ctx context.Context, clientID int64) ([]model.Discount, error)
}

type NotificationRepository interface {
	Create(ctx context.Context, n model.Notification) error
	ListByClientID(ctx context.Context, clientID int64) ([]model.Notification, error)
	MarkRead(ctx context.Context, id string, clientID int64) error
}

type AuditLogRepository interface {
	Create(ctx context.Context, log model.AuditLog) error
}
