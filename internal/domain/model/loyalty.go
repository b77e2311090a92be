package model

import "time"

// 注文数しきい値で付与されるバッジ。
type Badge struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Threshold int64     `gorm:"not null" json:"threshold"`
	Discount  float64   `gorm:"not null" json:"discount"`
	Icon      string    `gorm:"type:varchar(200)" json:"icon"`
	Color     string    `gorm:"type:varchar(50)" json:"color"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (Badge) TableName() string { return "config_badges" }

type ReferralRule struct {
	ID             string    `gorm:"type:uuid;primaryKey" json:"id"`
	ReferralsCount int64     `gorm:"not null" json:"referrals_count"`
	Discount       float64   `gorm:"not null" json:"discount"`
	TimeFrame      string    `gorm:"type:varchar(50)" json:"time_frame"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (ReferralRule) TableName() string { return "referral_rules" }

// クライアントに実際に付与された割引。nameで重複付与を防ぐ。
type Discount struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID  int64     `gorm:"not null;index" json:"client_id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	Value     float64   `gorm:"not null" json:"value"`
	AppliedAt time.Time `gorm:"not null;autoCreateTime" json:"applied_at"`
}

func (Discount) TableName() string { return "discounts" }

type NotificationType string

const (
	NotificationBadge    NotificationType = "badge"
	NotificationReferral NotificationType = "referral"
	NotificationSystem   NotificationType = "system"
)

type Notification struct {
	ID       string           `gorm:"type:uuid;primaryKey" json:"id"`
	ClientID int64            `gorm:"not null;index" json:"client_id"`
	Title    string           `gorm:"type:varchar(200);not null" json:"title"`
	Message  string           `gorm:"type:text;not null" json:"message"`
	Type     NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	IsRead   bool             `gorm:"not null;default:false" json:"is_read"`
	Date     time.Time        `gorm:"not null;autoCreateTime" json:"date"`
}

func (Notification) TableName() string { return "notifications" }
