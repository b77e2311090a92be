package model

import "time"

// マルチテナントの売り手アカウント。Boutiqueは必ず1人のMarchandに属する。
type Marchand struct {
	UserID        int64     `gorm:"primaryKey;column:user_id" json:"user_id"`
	AverageRating float64   `gorm:"not null;default:0" json:"average_rating"`
	CreatedAt     time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Marchand) TableName() string { return "marchands" }
