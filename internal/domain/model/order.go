package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "pending"
	OrderStatusProcessing OrderStatus = "processing"
	OrderStatusShipped    OrderStatus = "shipped"
	OrderStatusPayee      OrderStatus = "payée"
	OrderStatusCancelled  OrderStatus = "cancelled"
)

type TrancheStatus string

const (
	TrancheEnAttente TrancheStatus = "en_attente"
	TranchePayee     TrancheStatus = "payée"
)

// IsKnown は台帳に書いてよい値かどうか。
func (s TrancheStatus) IsKnown() bool {
	return s == TrancheEnAttente || s == TranchePayee
}

// TrancheLedger はトランシェキー -> 支払状態のマップ。
// キーは "order-{orderID}-{index}" で統一する（order_item基準のキーは廃止）。
// jsonbカラムとして保存し、形はScan時に検査する。値の検査はreconcile側。
type TrancheLedger map[string]TrancheStatus

func (l TrancheLedger) Value() (driver.Value, error) {
	if l == nil {
		l = TrancheLedger{}
	}
	b, err := json.Marshal(l)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (l *TrancheLedger) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*l = TrancheLedger{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("tranche ledger: unsupported type %T", src)
	}

	m := map[string]TrancheStatus{}
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("tranche ledger: %w", err)
	}
	*l = m
	return nil
}

// 注文。statusは台帳からの純関数で導出し、台帳と同じトランザクションで保存する。
type Order struct {
	ID       int64 `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID int64 `gorm:"not null;index" json:"client_id"`

	//配送先スナップショット
	FirstName string `gorm:"type:varchar(100);not null" json:"first_name"`
	LastName  string `gorm:"type:varchar(100);not null" json:"last_name"`
	Email     string `gorm:"type:varchar(255);not null" json:"email"`
	Telephone string `gorm:"type:varchar(20);not null" json:"telephone"`
	Adresse   string `gorm:"type:text;not null" json:"adresse"`

	Total        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"total"`
	Status       OrderStatus     `gorm:"type:varchar(20);not null;index" json:"status"`
	PaidTranches TrancheLedger   `gorm:"type:jsonb;not null;default:'{}'" json:"paid_tranches"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Order) TableName() string { return "orders" }
