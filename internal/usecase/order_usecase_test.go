package usecase_test

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"
)

func newOrderUC(tx *TxManagerMock) *usecase.OrderUsecase {
	return usecase.NewOrderUsecase(tx, &fixedClock{t: testNow}, zerolog.Nop())
}

func validCheckoutInput(total string) usecase.CheckoutInput {
	return usecase.CheckoutInput{
		FirstName: "Marie",
		LastName:  "Dupont",
		Email:     "marie@example.com",
		Telephone: "0601020304",
		Adresse:   "1 rue de la Paix, Paris",
		Total:     total,
	}
}

func TestOrderUsecase_Checkout_Success(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	paniersRepo := new(PanierRepoMock)
	lignesRepo := new(LignePanierRepoMock)
	produitsRepo := new(ProduitRepoMock)
	invRepo := new(InventoryRepoMock)
	rtRepo := new(RemiseTypeRepoMock)

	tx.Repos = &TxReposMock{
		orders:       ordersRepo,
		orderItems:   itemsRepo,
		paniers:      paniersRepo,
		lignesPanier: lignesRepo,
		produits:     produitsRepo,
		inventory:    invRepo,
		remiseTypes:  rtRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	panier := model.Panier{ID: 3, ClientID: 7, Status: model.PanierStatusActive}
	paniersRepo.On("FindActiveByClientID", mock.Anything, int64(7)).Return(panier, nil)

	lignes := []model.LignePanier{
		{ID: 1, PanierID: 3, ProduitID: 100, Quantite: 2, PrixSnapshot: dec("50")},
		{ID: 2, PanierID: 3, ProduitID: 101, Quantite: 1, PrixSnapshot: dec("200")},
	}
	lignesRepo.On("ListByPanierID", mock.Anything, int64(3)).Return(lignes, nil)

	produitsRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Produit{ID: 100, BoutiqueID: 50, Nom: "Clavier", Prix: dec("50"), Stock: 10, IsActive: true}, nil)
	produitsRepo.On("FindByID", mock.Anything, int64(101)).Return(model.Produit{ID: 101, BoutiqueID: 50, Nom: "Écran", Prix: dec("200"), Stock: 5, IsActive: true}, nil)

	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(2)).Return(true, nil)
	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(101), int64(1)).Return(true, nil)

	rule := model.RemiseType{ID: 5, BoutiqueID: 50, NombreTranches: 3, PourcentageRemise: dec("10"), DureePlanPaiement: "3 mois"}
	rtRepo.On("FindFirstByBoutiqueID", mock.Anything, int64(50)).Return(rule, nil)

	ordersRepo.On("Create", mock.Anything, mock.MatchedBy(func(o model.Order) bool {
		return o.ClientID == 7 && o.Total.Equal(dec("300")) && o.Status == model.OrderStatusPending
	})).Return(int64(10), nil)

	itemsRepo.On("CreateBulk", mock.Anything, int64(10), mock.MatchedBy(func(items []model.OrderItem) bool {
		return len(items) == 2 && items[0].NomSnapshot == "Clavier"
	})).Return(nil)

	//台帳はorderIDで初期化
	wantLedger := model.TrancheLedger{
		"order-10-1": model.TrancheEnAttente,
		"order-10-2": model.TrancheEnAttente,
		"order-10-3": model.TrancheEnAttente,
	}
	ordersRepo.On("UpdateLedger", mock.Anything, int64(10), wantLedger, model.OrderStatusPending).Return(nil)

	paniersRepo.On("UpdateStatus", mock.Anything, int64(3), model.PanierStatusCheckedOut).Return(nil)

	uc := newOrderUC(tx)

	out, err := uc.Checkout(ctx, 7, validCheckoutInput("300"))
	assert.NoError(t, err)
	assert.Equal(t, int64(10), out.ID)
	assert.Equal(t, "300.00", out.Total)
	assert.Equal(t, "pending", out.Status)
	assert.Len(t, out.Items, 2)

	ordersRepo.AssertExpectations(t)
	paniersRepo.AssertExpectations(t)
	invRepo.AssertExpectations(t)
}

func TestOrderUsecase_Checkout_TotalMismatch(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	paniersRepo := new(PanierRepoMock)
	lignesRepo := new(LignePanierRepoMock)
	produitsRepo := new(ProduitRepoMock)
	invRepo := new(InventoryRepoMock)

	tx.Repos = &TxReposMock{
		paniers:      paniersRepo,
		lignesPanier: lignesRepo,
		produits:     produitsRepo,
		inventory:    invRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	panier := model.Panier{ID: 3, ClientID: 7, Status: model.PanierStatusActive}
	paniersRepo.On("FindActiveByClientID", mock.Anything, int64(7)).Return(panier, nil)
	lignesRepo.On("ListByPanierID", mock.Anything, int64(3)).Return([]model.LignePanier{
		{ID: 1, PanierID: 3, ProduitID: 100, Quantite: 2, PrixSnapshot: dec("50")},
	}, nil)
	produitsRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Produit{ID: 100, BoutiqueID: 50, Nom: "Clavier", Stock: 10, IsActive: true}, nil)
	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(2)).Return(true, nil)

	uc := newOrderUC(tx)

	//カート合計は100なのに330を申告
	_, err := uc.Checkout(ctx, 7, validCheckoutInput("330"))
	assertErrContains(t, err, "total does not match")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 400, he.Status)
}

func TestOrderUsecase_Checkout_InsufficientStock(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	paniersRepo := new(PanierRepoMock)
	lignesRepo := new(LignePanierRepoMock)
	produitsRepo := new(ProduitRepoMock)
	invRepo := new(InventoryRepoMock)

	tx.Repos = &TxReposMock{
		paniers:      paniersRepo,
		lignesPanier: lignesRepo,
		produits:     produitsRepo,
		inventory:    invRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	panier := model.Panier{ID: 3, ClientID: 7, Status: model.PanierStatusActive}
	paniersRepo.On("FindActiveByClientID", mock.Anything, int64(7)).Return(panier, nil)
	lignesRepo.On("ListByPanierID", mock.Anything, int64(3)).Return([]model.LignePanier{
		{ID: 1, PanierID: 3, ProduitID: 100, Quantite: 5, PrixSnapshot: dec("50")},
	}, nil)
	produitsRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Produit{ID: 100, BoutiqueID: 50, Nom: "Clavier", Stock: 2, IsActive: true}, nil)

	//条件付きUPDATEが失敗（在庫不足）
	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(5)).Return(false, nil)

	uc := newOrderUC(tx)

	_, err := uc.Checkout(ctx, 7, validCheckoutInput("250"))
	assertErrContains(t, err, "insufficient stock")

	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, 409, he.Status)
}

func TestOrderUsecase_Checkout_EmptyCart(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	paniersRepo := new(PanierRepoMock)
	lignesRepo := new(LignePanierRepoMock)

	tx.Repos = &TxReposMock{paniers: paniersRepo, lignesPanier: lignesRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	panier := model.Panier{ID: 3, ClientID: 7, Status: model.PanierStatusActive}
	paniersRepo.On("FindActiveByClientID", mock.Anything, int64(7)).Return(panier, nil)
	lignesRepo.On("ListByPanierID", mock.Anything, int64(3)).Return([]model.LignePanier{}, nil)

	uc := newOrderUC(tx)

	_, err := uc.Checkout(ctx, 7, validCheckoutInput("0"))
	assertErrContains(t, err, "cart is empty")
}

func TestOrderUsecase_Checkout_MissingShippingInfo(t *testing.T) {
	uc := newOrderUC(new(TxManagerMock))

	in := validCheckoutInput("100")
	in.Adresse = ""

	_, err := uc.Checkout(context.Background(), 7, in)
	assertErrContains(t, err, "missing shipping")
}

// ルールが無いブティックでも注文自体は通る（1分割として扱う）
func TestOrderUsecase_Checkout_NoRule_SingleTranche(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	itemsRepo := new(OrderItemRepoMock)
	paniersRepo := new(PanierRepoMock)
	lignesRepo := new(LignePanierRepoMock)
	produitsRepo := new(ProduitRepoMock)
	invRepo := new(InventoryRepoMock)
	rtRepo := new(RemiseTypeRepoMock)

	tx.Repos = &TxReposMock{
		orders:       ordersRepo,
		orderItems:   itemsRepo,
		paniers:      paniersRepo,
		lignesPanier: lignesRepo,
		produits:     produitsRepo,
		inventory:    invRepo,
		remiseTypes:  rtRepo,
	}
	tx.On("WithinTx", mock.Anything).Return(nil)

	panier := model.Panier{ID: 3, ClientID: 7, Status: model.PanierStatusActive}
	paniersRepo.On("FindActiveByClientID", mock.Anything, int64(7)).Return(panier, nil)
	lignesRepo.On("ListByPanierID", mock.Anything, int64(3)).Return([]model.LignePanier{
		{ID: 1, PanierID: 3, ProduitID: 100, Quantite: 1, PrixSnapshot: dec("80")},
	}, nil)
	produitsRepo.On("FindByID", mock.Anything, int64(100)).Return(model.Produit{ID: 100, BoutiqueID: 50, Nom: "Clavier", Stock: 3, IsActive: true}, nil)
	invRepo.On("DecreaseStockIfEnough", mock.Anything, int64(100), int64(1)).Return(true, nil)
	rtRepo.On("FindFirstByBoutiqueID", mock.Anything, int64(50)).Return(model.RemiseType{}, repo.ErrNotFound)

	ordersRepo.On("Create", mock.Anything, mock.Anything).Return(int64(11), nil)
	itemsRepo.On("CreateBulk", mock.Anything, int64(11), mock.Anything).Return(nil)

	wantLedger := model.TrancheLedger{"order-11-1": model.TrancheEnAttente}
	ordersRepo.On("UpdateLedger", mock.Anything, int64(11), wantLedger, model.OrderStatusPending).Return(nil)
	paniersRepo.On("UpdateStatus", mock.Anything, int64(3), model.PanierStatusCheckedOut).Return(nil)

	uc := newOrderUC(tx)

	out, err := uc.Checkout(ctx, 7, validCheckoutInput("80"))
	assert.NoError(t, err)
	assert.Equal(t, int64(11), out.ID)

	ordersRepo.AssertExpectations(t)
}

func TestOrderUsecase_GetMyOrderDetail_OtherClientHidden(t *testing.T) {
	ctx := context.Background()

	tx := new(TxManagerMock)
	ordersRepo := new(OrderRepoMock)
	tx.Repos = &TxReposMock{orders: ordersRepo}
	tx.On("WithinTx", mock.Anything).Return(nil)

	ordersRepo.On("FindByID", mock.Anything, int64(10)).Return(model.Order{ID: 10, ClientID: 7}, nil)

	uc := newOrderUC(tx)

	_, err := uc.GetMyOrderDetail(ctx, 99, 10)
	assertErrContains(t, err, "not found")
}
