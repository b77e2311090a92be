package model

import "time"

type Boutique struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	MarchandID  int64     `gorm:"not null;index;column:marchand_id" json:"marchand_id"`
	Nom         string    `gorm:"type:varchar(255);not null" json:"nom"`
	Description string    `gorm:"type:text" json:"description"`
	Adresse     string    `gorm:"type:varchar(255)" json:"adresse"`
	Telephone   string    `gorm:"type:varchar(255)" json:"telephone"`
	Email       string    `gorm:"type:varchar(255)" json:"email"`
	IsApproved  bool      `gorm:"not null;default:false" json:"is_approved"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Boutique) TableName() string { return "boutiques" }
