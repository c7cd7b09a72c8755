package entity

import (
	"time"
)

// ProductCategory 产品类别
type ProductCategory struct {
	ID          string     `json:"id" gorm:"primaryKey;size:32"`
	Code        string     `json:"code" gorm:"size:16;not null;uniqueIndex"`
	Name        string     `json:"name" gorm:"size:64;not null"`
	SortOrder   int        `json:"sort_order" gorm:"not null;default:0"`
	Description string     `json:"description" gorm:"type:text"`
	IsActive    bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	DeletedAt   *time.Time `json:"deleted_at" gorm:"index"`

	// 关联
	Subcategories []ProductSubcategory `json:"subcategories,omitempty" gorm:"foreignKey:CategoryID"`
}

func (ProductCategory) TableName() string {
	return "product_categories"
}

// ProductSubcategory 产品子类别
type ProductSubcategory struct {
	ID         string     `json:"id" gorm:"primaryKey;size:32"`
	CategoryID string     `json:"category_id" gorm:"size:32;not null;index"`
	Code       string     `json:"code" gorm:"size:16;not null"`
	Name       string     `json:"name" gorm:"size:64;not null"`
	SortOrder  int        `json:"sort_order" gorm:"not null;default:0"`
	IsActive   bool       `json:"is_active" gorm:"not null;default:true"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	DeletedAt  *time.Time `json:"deleted_at" gorm:"index"`
}

func (ProductSubcategory) TableName() string {
	return "product_subcategories"
}

// Product 产品实体
type Product struct {
	ID             string     `json:"id" gorm:"primaryKey;size:32"`
	SKU            string     `json:"sku" gorm:"size:32;not null;uniqueIndex"`
	Name           string     `json:"name" gorm:"size:128;not null"`
	CategoryID     string     `json:"category_id" gorm:"size:32;not null"`
	SubcategoryID  string     `json:"subcategory_id" gorm:"size:32"`
	Description    string     `json:"description" gorm:"type:text"`
	Status         string     `json:"status" gorm:"size:16;not null;default:draft"`
	CostPrice      float64    `json:"cost_price" gorm:"type:decimal(15,4)"`
	SuggestedPrice float64    `json:"suggested_price" gorm:"type:decimal(15,4)"`
	SellingPrice   float64    `json:"selling_price" gorm:"type:decimal(15,4)"`
	Margin         float64    `json:"margin" gorm:"type:decimal(15,4)"`
	ProfitMargin   float64    `json:"profit_margin" gorm:"type:decimal(15,4)"`
	ThumbnailURL   string     `json:"thumbnail_url" gorm:"size:512"`
	Specs          JSONB      `json:"specs" gorm:"type:jsonb"`
	CreatedBy      string     `json:"created_by" gorm:"size:32"`
	UpdatedBy      string     `json:"updated_by" gorm:"size:32"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
	DeletedAt      *time.Time `json:"deleted_at" gorm:"index"`

	// 关联
	Category    *ProductCategory     `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Subcategory *ProductSubcategory  `json:"subcategory,omitempty" gorm:"foreignKey:SubcategoryID"`
	Recipes     []ProductRecipeItem  `json:"recipes,omitempty" gorm:"foreignKey:ProductID"`
	Packages    []ProductPackageItem `json:"packages,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}

// ProductStatus 产品状态
const (
	ProductStatusDraft        = "draft"
	ProductStatusActive       = "active"
	ProductStatusDiscontinued = "discontinued"
)

// ProductRecipeItem 产品关联配方行项
type ProductRecipeItem struct {
	ID        string    `json:"id" gorm:"primaryKey;size:32"`
	ProductID string    `json:"product_id" gorm:"size:32;not null;index"`
	RecipeID  string    `json:"recipe_id" gorm:"size:32;not null"`
	Quantity  float64   `json:"quantity" gorm:"type:decimal(15,4);not null;default:1"`
	CreatedAt time.Time `json:"created_at"`
}

func (ProductRecipeItem) TableName() string {
	return "product_recipe_items"
}

// ProductPackageItem 产品关联包装行项
type ProductPackageItem struct {
	ID          string    `json:"id" gorm:"primaryKey;size:32"`
	ProductID   string    `json:"product_id" gorm:"size:32;not null;index"`
	PackagingID string    `json:"packaging_id" gorm:"size:32;not null"`
	Quantity    float64   `json:"quantity" gorm:"type:decimal(15,4);not null;default:1"`
	CreatedAt   time.Time `json:"created_at"`
}

func (ProductPackageItem) TableName() string {
	return "product_package_items"
}

// SkuCounter SKU序号计数器，按类别（或类别-子类别）作用域独立递增
type SkuCounter struct {
	ScopeKey    string    `json:"scope_key" gorm:"primaryKey;size:80"`
	Value       int64     `json:"value" gorm:"not null;default:0"`
	Version     int64     `json:"version" gorm:"not null;default:0"`
	AllocatedAt time.Time `json:"allocated_at"`
}

func (SkuCounter) TableName() string {
	return "sku_counters"
}
