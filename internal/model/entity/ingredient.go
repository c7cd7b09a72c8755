package entity

import (
	"time"
)

// Ingredient 原料实体
type Ingredient struct {
	ID               string      `json:"id" gorm:"primaryKey;size:32"`
	Name             string      `json:"name" gorm:"size:128;not null"`
	Brand            string      `json:"brand" gorm:"size:128"`
	Description      string      `json:"description" gorm:"type:text"`
	Unit             Unit        `json:"unit" gorm:"size:8;not null"`
	MeasurementValue float64     `json:"measurement_value" gorm:"type:decimal(15,4);not null"`
	CurrentPrice     float64     `json:"current_price" gorm:"type:decimal(15,4);not null"`
	CurrentStock     float64     `json:"current_stock" gorm:"type:decimal(15,4);not null;default:0"`
	MinStock         float64     `json:"min_stock" gorm:"type:decimal(15,4);not null;default:0"`
	SupplierID       string      `json:"supplier_id" gorm:"size:32"`
	AllergenInfo     StringSlice `json:"allergen_info" gorm:"type:jsonb"`
	IsActive         bool        `json:"is_active" gorm:"not null;default:true"`
	CreatedBy        string      `json:"created_by" gorm:"size:32"`
	UpdatedBy        string      `json:"updated_by" gorm:"size:32"`
	CreatedAt        time.Time   `json:"created_at"`
	UpdatedAt        time.Time   `json:"updated_at"`
	DeletedAt        *time.Time  `json:"deleted_at" gorm:"index"`
}

func (Ingredient) TableName() string {
	return "ingredients"
}

// StockStatus 库存状态：low / warning / good
func (i *Ingredient) StockStatus() string {
	if i.CurrentStock <= i.MinStock {
		return StockStatusLow
	}
	if i.CurrentStock <= i.MinStock*1.2 {
		return StockStatusWarning
	}
	return StockStatusGood
}

const (
	StockStatusLow     = "low"
	StockStatusWarning = "warning"
	StockStatusGood    = "good"
)
