package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"app/internal/domain/model"
	"app/internal/domain/payment"
	repo "app/internal/repository"
)

type OrderUsecase struct {
	tx     repo.TransactionManager
	clock  Clock
	logger zerolog.Logger
}

func NewOrderUsecase(tx repo.TransactionManager, clock Clock, logger zerolog.Logger) *OrderUsecase {
	return &OrderUsecase{tx: tx, clock: clock, logger: logger}
}

type CheckoutInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
	Adresse   string `json:"adresse"`
	// クライアント側で表示した合計。サーバ側の再計算と±0.01で一致しないと400。
	Total string `json:"total"`
}

type OrderItemOutput struct {
	ID        int64  `json:"id"`
	ProduitID int64  `json:"produit_id"`
	Nom       string `json:"nom"`
	Prix      string `json:"prix"`
	Quantite  int64  `json:"quantite"`
	Total     string `json:"total"`
}

type OrderOutput struct {
	ID        int64             `json:"id"`
	FirstName string            `json:"first_name"`
	LastName  string            `json:"last_name"`
	Email     string            `json:"email"`
	Telephone string            `json:"telephone"`
	Adresse   string            `json:"adresse"`
	Total     string            `json:"total"`
	Status    string            `json:"status"`
	CreatedAt string            `json:"created_at"`
	Items     []OrderItemOutput `json:"items,omitempty"`
}

type OrderListOutput struct {
	Orders []OrderOutput `json:"orders"`
	Total  int64         `json:"total"`
	Page   int           `json:"page"`
	Limit  int           `json:"limit"`
}

// 合計の突き合わせに許す誤差
var totalTolerance = decimal.NewFromFloat(0.01)

// Checkout はACTIVEなカートを注文に変換する。在庫の減算は条件付きUPDATEで、
// 足りない商品が1つでもあればロールバックして409を返す。
func (u *OrderUsecase) Checkout(ctx context.Context, clientID int64, in CheckoutInput) (OrderOutput, error) {
	if clientID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if err := validateCheckoutInput(in); err != nil {
		return OrderOutput{}, err
	}
	declaredTotal, err := decimal.NewFromString(strings.TrimSpace(in.Total))
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid total")
	}

	var out OrderOutput

	txErr := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		panier, err := r.Paniers().FindActiveByClientID(ctx, clientID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "no active cart")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		lignes, err := r.LignesPanier().ListByPanierID(ctx, panier.ID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(lignes) == 0 {
			return NewHTTPError(http.StatusBadRequest, "cart is empty")
		}

		items := make([]model.OrderItem, 0, len(lignes))
		total := decimal.Zero
		for _, l := range lignes {
			produit, err := r.Produits().FindByID(ctx, l.ProduitID)
			if err == repo.ErrNotFound {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !produit.IsActive {
				return NewHTTPError(http.StatusBadRequest, "product no longer available")
			}

			ok, err := r.Inventory().DecreaseStockIfEnough(ctx, l.ProduitID, l.Quantite)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			if !ok {
				return NewHTTPError(http.StatusConflict, "insufficient stock for "+produit.Nom)
			}

			items = append(items, model.OrderItem{
				ProduitID:   produit.ID,
				BoutiqueID:  produit.BoutiqueID,
				NomSnapshot: produit.Nom,
				Prix:        l.PrixSnapshot,
				Quantite:    l.Quantite,
			})
			total = total.Add(l.PrixSnapshot.Mul(decimal.NewFromInt(l.Quantite)))
		}

		if declaredTotal.Sub(total).Abs().GreaterThan(totalTolerance) {
			return NewHTTPError(http.StatusBadRequest, "total does not match cart contents")
		}

		rule, err := r.RemiseTypes().FindFirstByBoutiqueID(ctx, items[0].BoutiqueID)
		if err != nil && err != repo.ErrNotFound {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		n := int64(1)
		if err == nil {
			n = rule.Tranches()
		}

		order := model.Order{
			ClientID:     clientID,
			FirstName:    in.FirstName,
			LastName:     in.LastName,
			Email:        in.Email,
			Telephone:    in.Telephone,
			Adresse:      in.Adresse,
			Total:        total,
			Status:       model.OrderStatusPending,
			PaidTranches: model.TrancheLedger{},
		}
		orderID, err := r.Orders().Create(ctx, order)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.OrderItems().CreateBulk(ctx, orderID, items); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		// 台帳はorderIDでキーを採番するので、Createの後で初期化する
		ledger := payment.NewLedger(orderID, n)
		if err := r.Orders().UpdateLedger(ctx, orderID, ledger, model.OrderStatusPending); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Paniers().UpdateStatus(ctx, panier.ID, model.PanierStatusCheckedOut); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.ID = orderID
		order.PaidTranches = ledger
		order.CreatedAt = u.clock.Now()
		out = toOrderOutput(order, items)

		u.logger.Info().
			Int64("order_id", orderID).
			Int64("client_id", clientID).
			Str("total", total.StringFixed(2)).
			Int("items", len(items)).
			Msg("order created")
		return nil
	})

	if txErr != nil {
		return OrderOutput{}, txErr
	}
	return out, nil
}

func (u *OrderUsecase) ListMyOrders(ctx context.Context, clientID int64, page, limit int) (OrderListOutput, error) {
	if clientID <= 0 {
		return OrderListOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	page, limit = normalizePage(page, limit)

	var out OrderListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListByClientID(ctx, clientID, page, limit)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		out = OrderListOutput{
			Orders: make([]OrderOutput, 0, len(orders)),
			Total:  total,
			Page:   page,
			Limit:  limit,
		}
		for _, o := range orders {
			out.Orders = append(out.Orders, toOrderOutput(o, nil))
		}
		return nil
	})
	if err != nil {
		return OrderListOutput{}, err
	}
	return out, nil
}

func (u *OrderUsecase) GetMyOrderDetail(ctx context.Context, clientID int64, orderID int64) (OrderOutput, error) {
	if clientID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if order.ClientID != clientID {
			return NewHTTPError(http.StatusNotFound, "not found")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(order, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func validateCheckoutInput(in CheckoutInput) error {
	if strings.TrimSpace(in.FirstName) == "" ||
		strings.TrimSpace(in.LastName) == "" ||
		strings.TrimSpace(in.Email) == "" ||
		strings.TrimSpace(in.Telephone) == "" ||
		strings.TrimSpace(in.Adresse) == "" {
		return NewHTTPError(http.StatusBadRequest, "missing shipping information")
	}
	if strings.TrimSpace(in.Total) == "" {
		return NewHTTPError(http.StatusBadRequest, "missing total")
	}
	return nil
}

func normalizePage(page, limit int) (int, int) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit
}

func toOrderOutput(order model.Order, items []model.OrderItem) OrderOutput {
	out := OrderOutput{
		ID:        order.ID,
		FirstName: order.FirstName,
		LastName:  order.LastName,
		Email:     order.Email,
		Telephone: order.Telephone,
		Adresse:   order.Adresse,
		Total:     order.Total.StringFixed(2),
		Status:    string(order.Status),
		CreatedAt: order.CreatedAt.Format(time.RFC3339),
	}
	for _, it := range items {
		out.Items = append(out.Items, OrderItemOutput{
			ID:        it.ID,
			ProduitID: it.ProduitID,
			Nom:       it.NomSnapshot,
			Prix:      it.Prix.StringFixed(2),
			Quantite:  it.Quantite,
			Total:     it.Prix.Mul(decimal.NewFromInt(it.Quantite)).StringFixed(2),
		})
	}
	return out
}
