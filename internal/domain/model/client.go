package model

import "time"

// ロイヤルティ状態。注文が「payée」に遷移したときだけ更新される。
// 同時決済での二重加算を避けるため、更新は必ず行ロックの中で行う。
type Client struct {
	UserID                 int64   `gorm:"primaryKey;column:user_id" json:"user_id"`
	Orders                 int64   `gorm:"not null;default:0" json:"orders"`
	SoldePoints            int64   `gorm:"not null;default:0" json:"solde_points"`
	HistoriqueAchats       string  `gorm:"type:text;not null;default:'{\"orders\": []}'" json:"historique_achats"`
	ReferralCode           string  `gorm:"type:varchar(10);uniqueIndex" json:"referral_code"`
	NombreClientsParraines int64   `gorm:"not null;default:0" json:"nombre_clients_parraines"`
	CurrentBadgeID         *string `gorm:"type:uuid" json:"current_badge_id"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Client) TableName() string { return "clients" }
