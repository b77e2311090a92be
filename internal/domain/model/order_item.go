package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// 注文明細。名称と価格は注文時点のスナップショット。
type OrderItem struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	OrderID     int64           `gorm:"not null;index" json:"order_id"`
	ProduitID   int64           `gorm:"not null;index" json:"produit_id"`
	BoutiqueID  int64           `gorm:"not null;index" json:"boutique_id"`
	NomSnapshot string          `gorm:"type:varchar(255);not null" json:"nom_snapshot"`
	Prix        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"prix"`
	Quantite    int64           `gorm:"not null" json:"quantite"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (OrderItem) TableName() string { return "order_items" }
