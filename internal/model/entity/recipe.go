package entity

import (
	"time"
)

// Recipe 配方实体
type Recipe struct {
	ID              string     `json:"id" gorm:"primaryKey;size:32"`
	Name            string     `json:"name" gorm:"size:128;not null"`
	CategoryID      string     `json:"category_id" gorm:"size:32"`
	Description     string     `json:"description" gorm:"type:text"`
	Servings        int        `json:"servings" gorm:"not null;default:1"`
	GeneratedAmount float64    `json:"generated_amount" gorm:"type:decimal(15,4);not null;default:1"`
	GeneratedUnit   Unit       `json:"generated_unit" gorm:"size:8;not null;default:un"`
	PreparationTime int        `json:"preparation_time" gorm:"not null;default:0"`
	Instructions    string     `json:"instructions" gorm:"type:text"`
	Notes           string     `json:"notes" gorm:"type:text"`
	IsActive        bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedBy       string     `json:"created_by" gorm:"size:32"`
	UpdatedBy       string     `json:"updated_by" gorm:"size:32"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	DeletedAt       *time.Time `json:"deleted_at" gorm:"index"`

	// 关联
	Items []RecipeItem `json:"items,omitempty" gorm:"foreignKey:RecipeID"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// RecipeItem 配方行项：原料、包装或子配方
type RecipeItem struct {
	ID       string  `json:"id" gorm:"primaryKey;size:32"`
	RecipeID string  `json:"recipe_id" gorm:"size:32;not null;index"`
	ItemType string  `json:"item_type" gorm:"size:16;not null"`
	ItemID   string  `json:"item_id" gorm:"size:32;not null"`
	Quantity float64 `json:"quantity" gorm:"type:decimal(15,4);not null"`
	Unit     Unit    `json:"unit" gorm:"size:8;not null"`
	Sequence int     `json:"sequence" gorm:"not null;default:0"`
	Notes    string  `json:"notes" gorm:"type:text"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (RecipeItem) TableName() string {
	return "recipe_items"
}

// RecipeItemType 配方行项类型
const (
	RecipeItemIngredient = "ingredient"
	RecipeItemPackaging  = "packaging"
	RecipeItemRecipe     = "recipe"
)

// CostSettings 成本计算全局参数（单行表）
type CostSettings struct {
	ID            string    `json:"id" gorm:"primaryKey;size:32"`
	LaborHourRate float64   `json:"labor_hour_rate" gorm:"type:decimal(15,4);not null"`
	DefaultMargin float64   `json:"default_margin" gorm:"type:decimal(15,4);not null"`
	// category_id -> margin 百分比覆盖
	CategoryMargins JSONB     `json:"category_margins" gorm:"type:jsonb"`
	UpdatedBy       string    `json:"updated_by" gorm:"size:32"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (CostSettings) TableName() string {
	return "cost_settings"
}
