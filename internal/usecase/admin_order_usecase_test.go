package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	"app/internal/usecase"
)

func newAdminUC(tx *TxManagerMock) *usecase.AdminOrderUsecase {
	return usecase.NewAdminOrderUsecase(tx, &fixedClock{t: testNow}, zerolog.Nop())
}

func TestAdminOrderUsecase_UpdateStatus_InvalidStatus(t *testing.T) {
	uc := newAdminUC(new(TxManagerMock))

	_, err := uc.UpdateStatus(context.Background(), 1, 10, usecase.UpdateOrderStatusInput{Status: "XXX"})
	assertErrContains(t, err, "invalid status")

	//payéeは台帳からの導出のみ。手動設定は不可
	_, err = uc.UpdateStatus(context.Background(), 1, 10, usecase.UpdateOrderStatusInput{Status: "payée"})
	assertErrContains(t, err, "invalid status")
}

func TestAdminOrderUsecase_UpdateStatus_FinalStatusLocked(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(model.Order{ID: 10, Status: model.OrderStatusPayee}, nil)

	uc := newAdminUC(tx)

	_, err := uc.UpdateStatus(ctx, 1, 10, usecase.UpdateOrderStatusInput{Status: "shipped"})
	assertErrContains(t, err, "final")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
}

func TestAdminOrderUsecase_UpdateStatus_CancelRestoresStock(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	invRepo := new(InventoryRepoMock)
	auditRepo := new(AuditLogRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo, inventory: invRepo, auditLogs: auditRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(model.Order{ID: 10, Status: model.OrderStatusPending, Total: dec("300")}, nil)
	ordersRepo.On("UpdateStatus", mock.Anything, int64(10), model.OrderStatusCancelled).Return(nil)

	items := []model.OrderItem{
		{ID: 1, OrderID: 10, ProduitID: 100, Prix: dec("50"), Quantite: 2},
		{ID: 2, OrderID: 10, ProduitID: 101, Prix: dec("200"), Quantite: 1},
	}
	itemsRepo.On("ListByOrderID", mock.Anything, int64(10)).Return(items, nil)

	//キャンセルで在庫を戻す
	invRepo.On("IncreaseStock", mock.Anything, int64(100), int64(2)).Return(nil)
	invRepo.On("IncreaseStock", mock.Anything, int64(101), int64(1)).Return(nil)

	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionUpdateOrderStatus && l.ActorUserID == 1 && l.ResourceID == 10
	})).Return(nil)

	uc := newAdminUC(tx)

	out, err := uc.UpdateStatus(ctx, 1, 10, usecase.UpdateOrderStatusInput{Status: "cancelled"})
	assert.NoError(t, err)
	assert.Equal(t, "cancelled", out.Status)

	invRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}

func TestAdminOrderUsecase_ReinitializeTranches(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	rtRepo := new(RemiseTypeRepoMock)
	auditRepo := new(AuditLogRepoMock)

	tx.Repos = &TxReposMock{orders: ordersRepo, orderItems: itemsRepo, remiseTypes: rtRepo, auditLogs: auditRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	//enum外の値で破損した台帳
	broken := model.TrancheLedger{
		"order-10-1": model.TranchePayee,
		"order-10-2": model.TrancheStatus("refunded"),
	}
	ordersRepo.On("FindByIDForUpdate", mock.Anything, int64(10)).Return(model.Order{
		ID:           10,
		ClientID:     7,
		Status:       model.OrderStatusProcessing,
		Total:        dec("300"),
		PaidTranches: broken,
	}, nil)

	items := []model.OrderItem{
		{ID: 1, OrderID: 10, ProduitID: 100, BoutiqueID: 50, Prix: dec("100"), Quantite: 3},
	}
	itemsRepo.On("ListByOrderID", mock.Anything, int64(10)).Return(items, nil)

	rule := model.RemiseType{ID: 5, BoutiqueID: 50, NombreTranches: 3, PourcentageRemise: dec("10")}
	rtRepo.On("FindFirstByBoutiqueID", mock.Anything, int64(50)).Return(rule, nil)

	wantLedger := model.TrancheLedger{
		"order-10-1": model.TrancheEnAttente,
		"order-10-2": model.TrancheEnAttente,
		"order-10-3": model.TrancheEnAttente,
	}
	ordersRepo.On("UpdateLedger", mock.Anything, int64(10), wantLedger, model.OrderStatusPending).Return(nil)

	//前後の台帳が監査ログに残る
	auditRepo.On("Create", mock.Anything, mock.MatchedBy(func(l model.AuditLog) bool {
		return l.Action == model.AuditActionReinitTranches &&
			l.ActorUserID == 2 &&
			l.ResourceID == 10 &&
			l.BeforeJSON != "" && l.AfterJSON != ""
	})).Return(nil)

	uc := newAdminUC(tx)

	out, err := uc.ReinitializeTranches(ctx, 2, 10)
	assert.NoError(t, err)
	assert.Equal(t, "pending", out.Status)

	ordersRepo.AssertExpectations(t)
	auditRepo.AssertExpectations(t)
}
