package model

import (
	"time"

	"github.com/shopspring/decimal"
)

type TypeRemise string

const (
	//トランシェ払い（分割ごとの割引）
	RemiseTranches TypeRemise = "tranches"
	//完済時にまとめて割引
	RemiseFinPaiement TypeRemise = "fin_paiement"
)

func (t TypeRemise) Display() string {
	switch t {
	case RemiseTranches:
		return "Remise par tranches"
	case RemiseFinPaiement:
		return "Remise à la fin de paiement"
	default:
		return string(t)
	}
}

// ブティックごとの割引ルール。ブティックにつき有効なのは先頭1件で、
// 決済時は読み取り専用。編集はマルシャンのみ。
type RemiseType struct {
	ID                int64            `gorm:"primaryKey;autoIncrement" json:"id"`
	BoutiqueID        int64            `gorm:"not null;index" json:"boutique_id"`
	TypeRemise        TypeRemise       `gorm:"type:varchar(20);not null" json:"type_remise"`
	PourcentageRemise decimal.Decimal  `gorm:"type:numeric(5,2);not null" json:"pourcentage_remise"`
	MontantMaxRemise  *decimal.Decimal `gorm:"type:numeric(10,2)" json:"montant_max_remise"`
	NombreTranches    int64            `gorm:"not null;default:1" json:"nombre_tranches"`
	DureePlanPaiement string           `gorm:"type:varchar(100)" json:"duree_plan_paiement"`
	CreatedAt         time.Time        `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time        `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (RemiseType) TableName() string { return "remise_types" }

// Tranches は台帳・スケジュール計算に使う分割数（最低1）。
func (r RemiseType) Tranches() int64 {
	if r.NombreTranches < 1 {
		return 1
	}
	return r.NombreTranches
}
