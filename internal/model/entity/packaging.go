package entity

import (
	"time"
)

// Packaging 包装材料实体
type Packaging struct {
	ID           string     `json:"id" gorm:"primaryKey;size:32"`
	Name         string     `json:"name" gorm:"size:128;not null"`
	Brand        string     `json:"brand" gorm:"size:128"`
	Description  string     `json:"description" gorm:"type:text"`
	UnitPrice    float64    `json:"unit_price" gorm:"type:decimal(15,4);not null"`
	CurrentStock float64    `json:"current_stock" gorm:"type:decimal(15,4);not null;default:0"`
	MinStock     float64    `json:"min_stock" gorm:"type:decimal(15,4);not null;default:0"`
	SupplierID   string     `json:"supplier_id" gorm:"size:32"`
	IsActive     bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedBy    string     `json:"created_by" gorm:"size:32"`
	UpdatedBy    string     `json:"updated_by" gorm:"size:32"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	DeletedAt    *time.Time `json:"deleted_at" gorm:"index"`
}

func (Packaging) TableName() string {
	return "packagings"
}
