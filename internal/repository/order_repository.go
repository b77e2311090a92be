package repository

import (
	"context"
	"errors"
	"time"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

type AdminOrderListFilter struct {
	Page     int
	Limit    int
	Status   string
	ClientID *int64
	From     *time.Time
	To       *time.Time
}

type OrderRepository interface {
	FindByID(ctx context.Context, orderID int64) (model.Order, error)
	// 決済用。SELECT ... FOR UPDATEで行を掴む。
	// 同じトランシェへの同時payが両方「未払いチェック」を通るのを防ぐ。
	FindByIDForUpdate(ctx context.Context, orderID int64) (model.Order, error)
	ListByClientID(ctx context.Context, clientID int64, page int, limit int) ([]model.Order, int64, error)
	Create(ctx context.Context, order model.Order) (int64, error)
	UpdateStatus(ctx context.Context, orderID int64, status model.OrderStatus) error
	// 台帳とstatusは同じUPDATEで保存する（別々に保存しない）。
	UpdateLedger(ctx context.Context, orderID int64, ledger model.TrancheLedger, status model.OrderStatus) error
	ListAdmin(ctx context.Context, f AdminOrderListFilter) ([]model.Order, int64, error)
}
