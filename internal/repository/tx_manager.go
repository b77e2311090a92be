package repository

import "context"

// トランザクション内で使う約束
type TxRepos interface {
	Orders() OrderRepository
	OrderItems() OrderItemRepository
	Paniers() PanierRepository
	LignesPanier() LignePanierRepository
	Produits() ProduitRepository
	Inventory() InventoryRepository
	RemiseTypes() RemiseTypeRepository
	Clients() ClientRepository
	Badges() BadgeRepository
	ReferralRules() ReferralRuleRepository
	Discounts() DiscountRepository
	Notifications() NotificationRepository
	AuditLogs() AuditLogRepository
}

// UsecaseからTxの開始/commit/rollbackを隠す。
type TransactionManager interface {
	WithinTx(ctx context.Context, fn func(r TxRepos) error) error
}
