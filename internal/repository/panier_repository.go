package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"app/internal/domain/model"
)

type PanierRepository interface {
	GetOrCreateActiveByClientID(ctx context.Context, clientID int64) (model.Panier, error)
	FindActiveByClientID(ctx context.Context, clientID int64) (model.Panier, error)
	UpdateStatus(ctx context.Context, panierID int64, status model.PanierStatus) error
	Clear(ctx context.Context, panierID int64) error
}

type LignePanierRepository interface {
	ListByPanierID(ctx context.Context, panierID int64) ([]model.LignePanier, error)
	// 同一商品は数量加算
	UpsertByPanierAndProduit(ctx context.Context, panierID int64, produitID int64, addQty int64, prixSnapshot decimal.Decimal) error
	UpdateQuantite(ctx context.Context, ligneID int64, qty int64) error
	DeleteByID(ctx context.Context, ligneID int64) error
	FindByID(ctx context.Context, ligneID int64) (model.LignePanier, error)
	IsOwnedByClient(ctx context.Context, ligneID int64, clientID int64) (bool, error)
}
