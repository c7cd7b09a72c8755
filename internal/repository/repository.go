package repository

import (
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 错误定义
var (
	ErrNotFound        = errors.New("record not found")
	ErrVersionConflict = errors.New("version conflict")
)

// generateID 生成32位ID
func generateID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")[:32]
}

// Repositories 仓库集合
type Repositories struct {
	Ingredient         *IngredientRepository
	Packaging          *PackagingRepository
	PriceHistory       *PriceHistoryRepository
	Recipe             *RecipeRepository
	Product            *ProductRepository
	ProductCategory    *ProductCategoryRepository
	ProductSubcategory *ProductSubcategoryRepository
	SkuCounter         *SkuCounterRepository
	Settings           *SettingsRepository
	Supplier           *SupplierRepository
	Client             *ClientRepository
	Image              *ImageRepository
}

// NewRepositories 创建仓库集合
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Ingredient:         NewIngredientRepository(db),
		Packaging:          NewPackagingRepository(db),
		PriceHistory:       NewPriceHistoryRepository(db),
		Recipe:             NewRecipeRepository(db),
		Product:            NewProductRepository(db),
		ProductCategory:    NewProductCategoryRepository(db),
		ProductSubcategory: NewProductSubcategoryRepository(db),
		SkuCounter:         NewSkuCounterRepository(db),
		Settings:           NewSettingsRepository(db),
		Supplier:           NewSupplierRepository(db),
		Client:             NewClientRepository(db),
		Image:              NewImageRepository(db),
	}
}
