package entity

import (
	"time"
)

// Client 客户实体
type Client struct {
	ID        string     `json:"id" gorm:"primaryKey;size:32"`
	Name      string     `json:"name" gorm:"size:128;not null"`
	Email     string     `json:"email" gorm:"size:128"`
	Phone     string     `json:"phone" gorm:"size:32"`
	Document  string     `json:"document" gorm:"size:32"`
	Address   JSONB      `json:"address" gorm:"type:jsonb"`
	Notes     string     `json:"notes" gorm:"type:text"`
	IsActive  bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedBy string     `json:"created_by" gorm:"size:32"`
	UpdatedBy string     `json:"updated_by" gorm:"size:32"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	DeletedAt *time.Time `json:"deleted_at" gorm:"index"`
}

func (Client) TableName() string {
	return "clients"
}
