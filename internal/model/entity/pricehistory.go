package entity

import (
	"time"
)

// PriceHistory 价格历史记录（原料与包装共用，按 item_type 区分）
type PriceHistory struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	ItemType  string    `json:"item_type" gorm:"size:16;not null;index:idx_price_history_item"`
	ItemID    string    `json:"item_id" gorm:"size:32;not null;index:idx_price_history_item"`
	Price     float64   `json:"price" gorm:"type:decimal(15,4);not null"`
	Quantity  float64   `json:"quantity" gorm:"type:decimal(15,4)"`
	Source    string    `json:"source" gorm:"size:16;not null;default:manual"`
	Notes     string    `json:"notes" gorm:"type:text"`
	CreatedBy string    `json:"created_by" gorm:"size:32"`
	CreatedAt time.Time `json:"created_at"`
}

func (PriceHistory) TableName() string {
	return "price_histories"
}

// PriceHistoryItemType 价格历史条目类型
const (
	PriceItemIngredient = "ingredient"
	PriceItemPackaging  = "packaging"
)

// PriceHistorySource 价格来源
const (
	PriceSourceManual   = "manual"
	PriceSourcePurchase = "purchase"
)
