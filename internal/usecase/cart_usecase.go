package usecase

import (
	"context"
	"net/http"

	"github.com/shopspring/decimal"

	repo "app/internal/repository"
)

type CartUsecase struct {
	tx repo.TransactionManager
}

func NewCartUsecase(tx repo.TransactionManager) *CartUsecase {
	return &CartUsecase{tx: tx}
}

type AddCartItemInput struct {
	ProduitID int64 `json:"produit_id"`
	Quantite  int64 `json:"quantite"`
}

type UpdateCartItemInput struct {
	Quantite int64 `json:"quantite"`
}

type CartLineOutput struct {
	ID        int64  `json:"id"`
	ProduitID int64  `json:"produit_id"`
	Nom       string `json:"nom"`
	Prix      string `json:"prix"`
	Quantite  int64  `json:"quantite"`
	Total     string `json:"total"`
}

type CartOutput struct {
	ID     int64            `json:"id"`
	Status string           `json:"status"`
	Lignes []CartLineOutput `json:"lignes"`
	Total  string           `json:"total"`
}

// GetCart はACTIVEなカートを返す。無ければ作る。
func (u *CartUsecase) GetCart(ctx context.Context, clientID int64) (CartOutput, error) {
	if clientID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		panier, err := r.Paniers().GetOrCreateActiveByClientID(ctx, clientID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out, err = u.buildOutput(ctx, r, panier.ID, string(panier.Status))
		return err
	})
	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

// AddItem は商品をカートに入れる。同一商品は数量加算。
// 価格は追加時点のスナップショットを持たせる。
func (u *CartUsecase) AddItem(ctx context.Context, clientID int64, in AddCartItemInput) (CartOutput, error) {
	if clientID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if in.ProduitID <= 0 || in.Quantite <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid product or quantity")
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		produit, err := r.Produits().FindByID(ctx, in.ProduitID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "product not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !produit.IsActive || !produit.EnStock {
			return NewHTTPError(http.StatusBadRequest, "product not available")
		}
		if produit.Stock < in.Quantite {
			return NewHTTPError(http.StatusConflict, "insufficient stock for "+produit.Nom)
		}

		panier, err := r.Paniers().GetOrCreateActiveByClientID(ctx, clientID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.LignesPanier().UpsertByPanierAndProduit(ctx, panier.ID, in.ProduitID, in.Quantite, produit.Prix); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out, err = u.buildOutput(ctx, r, panier.ID, string(panier.Status))
		return err
	})
	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

func (u *CartUsecase) UpdateItem(ctx context.Context, clientID int64, ligneID int64, in UpdateCartItemInput) (CartOutput, error) {
	if clientID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if ligneID <= 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if in.Quantite < 0 {
		return CartOutput{}, NewHTTPError(http.StatusBadRequest, "invalid quantity")
	}

	var out CartOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		owned, err := r.LignesPanier().IsOwnedByClient(ctx, ligneID, clientID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if !owned {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		//数量0は削除扱い
		if in.Quantite == 0 {
			if err := r.LignesPanier().DeleteByID(ctx, ligneID); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		} else {
			ligne, err := r.LignesPanier().FindByID(ctx, ligneID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			produit, err := r.Produits().FindByID(ctx, ligne.ProduitID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if produit.Stock < in.Quantite {
				return NewHTTPError(http.StatusConflict, "insufficient stock for "+produit.Nom)
			}
			if err := r.LignesPanier().UpdateQuantite(ctx, ligneID, in.Quantite); err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
		}

		panier, err := r.Paniers().FindActiveByClientID(ctx, clientID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out, err = u.buildOutput(ctx, r, panier.ID, string(panier.Status))
		return err
	})
	if err != nil {
		return CartOutput{}, err
	}
	return out, nil
}

func (u *CartUsecase) RemoveItem(ctx context.Context, clientID int64, ligneID int64) (CartOutput, error) {
	return u.UpdateItem(ctx, clientID, ligneID, UpdateCartItemInput{Quantite: 0})
}

func (u *CartUsecase) buildOutput(ctx context.Context, r repo.TxRepos, panierID int64, status string) (CartOutput, error) {
	lignes, err := r.LignesPanier().ListByPanierID(ctx, panierID)
	if err != nil {
		return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	out := CartOutput{
		ID:     panierID,
		Status: status,
		Lignes: make([]CartLineOutput, 0, len(lignes)),
	}
	total := decimal.Zero
	for _, l := range lignes {
		produit, err := r.Produits().FindByID(ctx, l.ProduitID)
		if err != nil && err != repo.ErrNotFound {
			return CartOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
		}
		line := l.PrixSnapshot.Mul(decimal.NewFromInt(l.Quantite))
		out.Lignes = append(out.Lignes, CartLineOutput{
			ID:        l.ID,
			ProduitID: l.ProduitID,
			Nom:       produit.Nom,
			Prix:      l.PrixSnapshot.StringFixed(2),
			Quantite:  l.Quantite,
			Total:     line.StringFixed(2),
		})
		total = total.Add(line)
	}
	out.Total = total.StringFixed(2)
	return out, nil
}
