package repository

import (
	"context"

	"gorm.io/gorm"

	repo "app/internal/repository"
)

type txReposGorm struct {
	orders        repo.OrderRepository
	orderItems    repo.OrderItemRepository
	paniers       repo.PanierRepository
	lignesPanier  repo.LignePanierRepository
	produits      repo.ProduitRepository
	inventory     repo.InventoryRepository
	remiseTypes   repo.RemiseTypeRepository
	clients       repo.ClientRepository
	badges        repo.BadgeRepository
	referralRules repo.ReferralRuleRepository
	discounts     repo.DiscountRepository
	notifications repo.NotificationRepository
	auditLogs     repo.AuditLogRepository
}

func (r *txReposGorm) Orders() repo.OrderRepository               { return r.orders }
func (r *txReposGorm) OrderItems() repo.OrderItemRepository       { return r.orderItems }
func (r *txReposGorm) Paniers() repo.PanierRepository             { return r.paniers }
func (r *txReposGorm) LignesPanier() repo.LignePanierRepository   { return r.lignesPanier }
func (r *txReposGorm) Produits() repo.ProduitRepository           { return r.produits }
func (r *txReposGorm) Inventory() repo.InventoryRepository        { return r.inventory }
func (r *txReposGorm) RemiseTypes() repo.RemiseTypeRepository     { return r.remiseTypes }
func (r *txReposGorm) Clients() repo.ClientRepository             { return r.clients }
func (r *txReposGorm) Badges() repo.BadgeRepository               { return r.badges }
func (r *txReposGorm) ReferralRules() repo.ReferralRuleRepository { return r.referralRules }
func (r *txReposGorm) Discounts() repo.DiscountRepository         { return r.discounts }
func (r *txReposGorm) Notifications() repo.NotificationRepository { return r.notifications }
func (r *txReposGorm) AuditLogs() repo.AuditLogRepository         { return r.auditLogs }

type TxManagerGorm struct {
	db *gorm.DB
}

func NewTxManagerGorm(db *gorm.DB) *TxManagerGorm {
	return &TxManagerGorm{db: db}
}

func (tm *TxManagerGorm) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	return tm.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		//repoはtxを持ったDBで作り直す
		r := &txReposGorm{
			orders:        NewOrderGormRepository(tx),
			orderItems:    NewOrderItemGormRepository(tx),
			paniers:       NewPanierGormRepository(tx),
			lignesPanier:  NewLignePanierGormRepository(tx),
			produits:      NewProduitGormRepository(tx),
			inventory:     NewInventoryGormRepository(tx),
			remiseTypes:   NewRemiseTypeGormRepository(tx),
			clients:       NewClientGormRepository(tx),
			badges:        NewBadgeGormRepository(tx),
			referralRules: NewReferralRuleGormRepository(tx),
			discounts:     NewDiscountGormRepository(tx),
			notifications: NewNotificationGormRepository(tx),
			auditLogs:     NewAuditLogGormRepository(tx),
		}
		return fn(r)
	})
}
