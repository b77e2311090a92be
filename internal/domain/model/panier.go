package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type PanierStatus string

const (
	PanierStatusActive     PanierStatus = "ACTIVE"
	PanierStatusCheckedOut PanierStatus = "CHECKED_OUT"
)

// 1クライアントにつきACTIVEは1つ
type Panier struct {
	ID        int64        `gorm:"primaryKey;autoIncrement" json:"id"`
	ClientID  int64        `gorm:"not null;index" json:"client_id"`
	Status    PanierStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	CreatedAt time.Time    `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Panier) TableName() string { return "paniers" }

// カート明細。追加時点の価格を必ずスナップショットする。
type LignePanier struct {
	ID           int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	PanierID     int64           `gorm:"not null;index" json:"panier_id"`
	ProduitID    int64           `gorm:"not null;index" json:"produit_id"`
	Quantite     int64           `gorm:"not null" json:"quantite"`
	PrixSnapshot decimal.Decimal `gorm:"type:numeric(10,2);not null;column:prix_snapshot" json:"prix_snapshot"`
	CreatedAt    time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (LignePanier) TableName() string { return "lignes_paniers" }
