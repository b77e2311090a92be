package model

import "time"

type Role string

const (
	RoleClient   Role = "client"
	RoleMarchand Role = "marchand"
	RoleAdmin    Role = "admin"
)

// 認証は外部IDプロバイダ。ここはトークンのsubと突き合わせるプロフィールだけ持つ。
type User struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Email     string    `gorm:"uniqueIndex;not null" json:"email"`
	Nom       string    `gorm:"type:varchar(255);not null" json:"nom"`
	Prenom    string    `gorm:"type:varchar(255);not null" json:"prenom"`
	Telephone string    `gorm:"type:varchar(20)" json:"telephone"`
	Role      Role      `gorm:"type:varchar(10);not null;default:'client'" json:"role"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
