package usecase_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// =====================
// TxManager / TxRepos mocks
// =====================

// TxManagerMock は WithinTx の中で渡す repos を固定して unit テストを回す
type TxManagerMock struct {
	mock.Mock
	Repos repo.TxRepos
}

func (m *TxManagerMock) WithinTx(ctx context.Context, fn func(r repo.TxRepos) error) error {
	// 呼ばれた事実だけ記録（ctxの具体値は問わない）
	m.Called(ctx)
	return fn(m.Repos)
}

type TxReposMock struct {
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

func (r *TxReposMock) Orders() repo.OrderRepository               { return r.orders }
func (r *TxReposMock) OrderItems() repo.OrderItemRepository       { return r.orderItems }
func (r *TxReposMock) Paniers() repo.PanierRepository             { return r.paniers }
func (r *TxReposMock) LignesPanier() repo.LignePanierRepository   { return r.lignesPanier }
func (r *TxReposMock) Produits() repo.ProduitRepository           { return r.produits }
func (r *TxReposMock) Inventory() repo.InventoryRepository        { return r.inventory }
func (r *TxReposMock) RemiseTypes() repo.RemiseTypeRepository     { return r.remiseTypes }
func (r *TxReposMock) Clients() repo.ClientRepository             { return r.clients }
func (r *TxReposMock) Badges() repo.BadgeRepository               { return r.badges }
func (r *TxReposMock) ReferralRules() repo.ReferralRuleRepository { return r.referralRules }
func (r *TxReposMock) Discounts() repo.DiscountRepository         { return r.discounts }
func (r *TxReposMock) Notifications() repo.NotificationRepository { return r.notifications }
func (r *TxReposMock) AuditLogs() repo.AuditLogRepository         { return r.auditLogs }

// =====================
// Repository mocks
// =====================

type OrderRepoMock struct{ mock.Mock }

func (m *OrderRepoMock) FindByID(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error) {
	args := m.Called(ctx, orderID)
	o, _ := args.Get(0).(model.Order)
	return o, args.Error(1)
}

func (m *OrderRepoMock) ListByClientID(ctx context.Context, clientID int64, page int, limit int) ([]model.Order, int64, error) {
	args := m.Called(ctx, clientID, page, limit)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

func (m *OrderRepoMock) Create(ctx context.Context, order model.Order) (int64, error) {
	args := m.Called(ctx, order)
	return args.Get(0).(int64), args.Error(1)
}

func (m *OrderRepoMock) UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, status)
	return args.Error(0)
}

func (m *OrderRepoMock) UpdateLedger(ctx context.Context, orderID int64, ledger model.TrancheLedger, status model.OrderStatus) error {
	args := m.Called(ctx, orderID, ledger, status)
	return args.Error(0)
}

func (m *OrderRepoMock) ListAdmin(ctx context.Context, f repo.AdminOrderListFilter) ([]model.Order, int64, error) {
	args := m.Called(ctx, f)
	orders, _ := args.Get(0).([]model.Order)
	return orders, args.Get(1).(int64), args.Error(2)
}

type OrderItemRepoMock struct{ mock.Mock }

func (m *OrderItemRepoMock) CreateBulk(ctx context.Context, orderID int64, items []model.OrderItem) error {
	args := m.Called(ctx, orderID, items)
	return args.Error(0)
}

func (m *OrderItemRepoMock) ListByOrderID(ctx context.Context, orderID int64) ([]model.OrderItem, error) {
	args := m.Called(ctx, orderID)
	items, _ := args.Get(0).([]model.OrderItem)
	return items, args.Error(1)
}

type RemiseTypeRepoMock struct{ mock.Mock }

func (m *RemiseTypeRepoMock) FindFirstByBoutiqueID(ctx context.Context, boutiqueID int64) (model.RemiseType, error) {
	args := m.Called(ctx, boutiqueID)
	rt, _ := args.Get(0).(model.RemiseType)
	return rt, args.Error(1)
}

func (m *RemiseTypeRepoMock) FindByID(ctx context.Context, id int64) (model.RemiseType, error) {
	panic("not used in these tests")
}

func (m *RemiseTypeRepoMock) ListByBoutiqueID(ctx context.Context, boutiqueID int64) ([]model.RemiseType, error) {
	panic("not used in these tests")
}

func (m *RemiseTypeRepoMock) Create(ctx context.Context, rt model.RemiseType) (model.RemiseType, error) {
	panic("not used in these tests")
}

func (m *RemiseTypeRepoMock) Update(ctx context.Context, rt model.RemiseType) error {
	panic("not used in these tests")
}

func (m *RemiseTypeRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in these tests")
}

type ClientRepoMock struct{ mock.Mock }

func (m *ClientRepoMock) FindByUserID(ctx context.Context, userID int64) (model.Client, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Client)
	return c, args.Error(1)
}

func (m *ClientRepoMock) FindByUserIDForUpdate(ctx context.Context, userID int64) (model.Client, error) {
	args := m.Called(ctx, userID)
	c, _ := args.Get(0).(model.Client)
	return c, args.Error(1)
}

func (m *ClientRepoMock) Update(ctx context.Context, c model.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

type BadgeRepoMock struct{ mock.Mock }

func (m *BadgeRepoMock) FindBestForOrders(ctx context.Context, orders int64) (model.Badge, bool, error) {
	args := m.Called(ctx, orders)
	b, _ := args.Get(0).(model.Badge)
	return b, args.Bool(1), args.Error(2)
}

type ReferralRuleRepoMock struct{ mock.Mock }

func (m *ReferralRuleRepoMock) List(ctx context.Context) ([]model.ReferralRule, error) {
	args := m.Called(ctx)
	rules, _ := args.Get(0).([]model.ReferralRule)
	return rules, args.Error(1)
}

type DiscountRepoMock struct{ mock.Mock }

func (m *DiscountRepoMock) ExistsByClientAndName(ctx context.Context, clientID int64, name string) (bool, error) {
	args := m.Called(ctx, clientID, name)
	return args.Bool(0), args.Error(1)
}

func (m *DiscountRepoMock) Create(ctx context.Context, d model.Discount) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *DiscountRepoMock) ListByClientID(ctx context.Context, clientID int64) ([]model.Discount, error) {
	panic("not used in these tests")
}

type NotificationRepoMock struct{ mock.Mock }

func (m *NotificationRepoMock) Create(ctx context.Context, n model.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func (m *NotificationRepoMock) ListByClientID(ctx context.Context, clientID int64) ([]model.Notification, error) {
	panic("not used in these tests")
}

func (m *NotificationRepoMock) MarkRead(ctx context.Context, id string, clientID int64) error {
	panic("not used in these tests")
}

type AuditLogRepoMock struct{ mock.Mock }

func (m *AuditLogRepoMock) Create(ctx context.Context, log model.AuditLog) error {
	args := m.Called(ctx, log)
	return args.Error(0)
}

type PanierRepoMock struct{ mock.Mock }

func (m *PanierRepoMock) GetOrCreateActiveByClientID(ctx context.Context, clientID int64) (model.Panier, error) {
	args := m.Called(ctx, clientID)
	p, _ := args.Get(0).(model.Panier)
	return p, args.Error(1)
}

func (m *PanierRepoMock) FindActiveByClientID(ctx context.Context, clientID int64) (model.Panier, error) {
	args := m.Called(ctx, clientID)
	p, _ := args.Get(0).(model.Panier)
	return p, args.Error(1)
}

func (m *PanierRepoMock) UpdateStatus(ctx context.Context, panierID int64, status model.PanierStatus) error {
	args := m.Called(ctx, panierID, status)
	return args.Error(0)
}

func (m *PanierRepoMock) Clear(ctx context.Context, panierID int64) error {
	args := m.Called(ctx, panierID)
	return args.Error(0)
}

type LignePanierRepoMock struct{ mock.Mock }

func (m *LignePanierRepoMock) ListByPanierID(ctx context.Context, panierID int64) ([]model.LignePanier, error) {
	args := m.Called(ctx, panierID)
	lignes, _ := args.Get(0).([]model.LignePanier)
	return lignes, args.Error(1)
}

func (m *LignePanierRepoMock) UpsertByPanierAndProduit(ctx context.Context, panierID int64, produitID int64, addQty int64, prixSnapshot decimal.Decimal) error {
	panic("not used in these tests")
}

func (m *LignePanierRepoMock) UpdateQuantite(ctx context.Context, ligneID int64, qty int64) error {
	panic("not used in these tests")
}

func (m *LignePanierRepoMock) DeleteByID(ctx context.Context, ligneID int64) error {
	panic("not used in these tests")
}

func (m *LignePanierRepoMock) FindByID(ctx context.Context, ligneID int64) (model.LignePanier, error) {
	panic("not used in these tests")
}

func (m *LignePanierRepoMock) IsOwnedByClient(ctx context.Context, ligneID int64, clientID int64) (bool, error) {
	panic("not used in these tests")
}

type ProduitRepoMock struct{ mock.Mock }

func (m *ProduitRepoMock) FindByID(ctx context.Context, id int64) (model.Produit, error) {
	args := m.Called(ctx, id)
	p, _ := args.Get(0).(model.Produit)
	return p, args.Error(1)
}

type InventoryRepoMock struct{ mock.Mock }

func (m *InventoryRepoMock) DecreaseStockIfEnough(ctx context.Context, produitID int64, qty int64) (bool, error) {
	args := m.Called(ctx, produitID, qty)
	return args.Bool(0), args.Error(1)
}

func (m *InventoryRepoMock) IncreaseStock(ctx context.Context, produitID int64, qty int64) error {
	args := m.Called(ctx, produitID, qty)
	return args.Error(0)
}

// =====================
// Clock / IDGenerator（テストは固定値）
// =====================

type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type seqIDGen struct{ n int }

func (g *seqIDGen) NewID() string {
	g.n++
	return fmt.Sprintf("id-%d", g.n)
}
