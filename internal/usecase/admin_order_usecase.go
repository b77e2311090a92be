package usecase

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"app/internal/domain/model"
	"app/internal/domain/payment"
	repo "app/internal/repository"
)

// AdminOrderUsecase は管理者向けの注文操作。
// ステータスの手動変更と、破損した台帳の再初期化を扱う。
type AdminOrderUsecase struct {
	tx     repo.TransactionManager
	clock  Clock
	logger zerolog.Logger
}

func NewAdminOrderUsecase(tx repo.TransactionManager, clock Clock, logger zerolog.Logger) *AdminOrderUsecase {
	return &AdminOrderUsecase{tx: tx, clock: clock, logger: logger}
}

type AdminOrderListInput struct {
	Page     int
	Limit    int
	Status   string
	ClientID *int64
	From     *time.Time
	To       *time.Time
}

type UpdateOrderStatusInput struct {
	Status string `json:"status"`
}

// 管理者が手動で設定できるステータス。payéeは台帳からの導出のみで、手動では設定不可。
var adminSettableStatuses = map[model.OrderStatus]bool{
	model.OrderStatusPending:    true,
	model.OrderStatusProcessing: true,
	model.OrderStatusShipped:    true,
	model.OrderStatusCancelled:  true,
}

func (u *AdminOrderUsecase) List(ctx context.Context, in AdminOrderListInput) (OrderListOutput, error) {
	page, limit := normalizePage(in.Page, in.Limit)

	if in.Status != "" && !adminSettableStatuses[model.OrderStatus(in.Status)] && in.Status != string(model.OrderStatusPayee) {
		return OrderListOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status filter")
	}

	var out OrderListOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, total, err := r.Orders().ListAdmin(ctx, repo.AdminOrderListFilter{
			Page:     page,
			Limit:    limit,
			Status:   in.Status,
			ClientID: in.ClientID,
			From:     in.From,
			To:       in.To,
		})
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

func (u *AdminOrderUsecase) GetDetail(ctx context.Context, orderID int64) (OrderOutput, error) {
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

// UpdateStatus は管理者の手動遷移。payée・cancelledからの遷移は禁止。
// cancelledへの遷移では在庫を戻す。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, adminUserID, orderID int64, in UpdateOrderStatusInput) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	next := model.OrderStatus(in.Status)
	if !adminSettableStatuses[next] {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		//終端ステータスからは動かせない
		if order.Status == model.OrderStatusPayee || order.Status == model.OrderStatusCancelled {
			return NewHTTPError(http.StatusConflict, "order status is final")
		}
		if order.Status == next {
			return NewHTTPError(http.StatusConflict, "order already in requested status")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, next); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if next == model.OrderStatusCancelled {
			for _, it := range items {
				if err := r.Inventory().IncreaseStock(ctx, it.ProduitID, it.Quantite); err != nil {
					return NewHTTPError(http.StatusInternalServerError, "db error")
				}
			}
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionUpdateOrderStatus,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   statusJSON(order.Status),
			AfterJSON:    statusJSON(next),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.Status = next
		out = toOrderOutput(order, items)

		u.logger.Info().
			Int64("order_id", orderID).
			Int64("admin_id", adminUserID).
			Str("status", string(next)).
			Msg("order status updated")
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

// ReinitializeTranches は破損した台帳を全en_attenteに戻す復旧操作。
// 支払履歴を捨てるので、前後の台帳を監査ログに必ず残す。
func (u *AdminOrderUsecase) ReinitializeTranches(ctx context.Context, adminUserID, orderID int64) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		order, err := r.Orders().FindByIDForUpdate(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		if len(items) == 0 {
			return NewHTTPError(http.StatusNotFound, "no order items found")
		}

		rule, err := r.RemiseTypes().FindFirstByBoutiqueID(ctx, items[0].BoutiqueID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusBadRequest, "no discount rule found for the boutique")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		before := ledgerJSON(order.PaidTranches)
		ledger := payment.NewLedger(orderID, rule.Tranches())

		if err := r.Orders().UpdateLedger(ctx, orderID, ledger, model.OrderStatusPending); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.AuditLogs().Create(ctx, model.AuditLog{
			ActorUserID:  adminUserID,
			Action:       model.AuditActionReinitTranches,
			ResourceType: model.AuditResourceOrder,
			ResourceID:   orderID,
			BeforeJSON:   before,
			AfterJSON:    ledgerJSON(ledger),
			CreatedAt:    u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		order.PaidTranches = ledger
		order.Status = model.OrderStatusPending
		out = toOrderOutput(order, items)

		u.logger.Warn().
			Int64("order_id", orderID).
			Int64("admin_id", adminUserID).
			Msg("tranche ledger reinitialized")
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}
	return out, nil
}

func statusJSON(s model.OrderStatus) string {
	b, _ := json.Marshal(map[string]string{"status": string(s)})
	return string(b)
}

func ledgerJSON(l model.TrancheLedger) string {
	b, err := json.Marshal(l)
	if err != nil {
		return "{}"
	}
	return string(b)
}
