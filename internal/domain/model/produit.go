package model

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Produit struct {
	ID          int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	BoutiqueID  int64           `gorm:"not null;index" json:"boutique_id"`
	Nom         string          `gorm:"type:varchar(255);not null" json:"nom"`
	Description string          `gorm:"type:text" json:"description"`
	Prix        decimal.Decimal `gorm:"type:numeric(10,2);not null" json:"prix"`
	Stock       int64           `gorm:"not null" json:"stock"`
	EnStock     bool            `gorm:"not null;default:true" json:"en_stock"`
	IsActive    bool            `gorm:"not null;default:false" json:"is_active"`
	CreatedAt   time.Time       `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null;autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Produit) TableName() string { return "produits" }
