package repository

import (
	"context"
	"errors"
	"time"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"gorm.io/gorm"
)

// ProductRepository 产品仓库
type ProductRepository struct {
	db *gorm.DB
}

// NewProductRepository 创建产品仓库
func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// FindByID 根据ID查找产品（含关联行项）
func (r *ProductRepository) FindByID(ctx context.Context, id string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Subcategory").
		Preload("Recipes").
		Preload("Packages").
		Where("id = ? AND deleted_at IS NULL", id).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// FindBySKU 根据SKU查找产品
func (r *ProductRepository) FindBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var product entity.Product
	err := r.db.WithContext(ctx).
		Where("sku = ? AND deleted_at IS NULL", sku).
		First(&product).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &product, nil
}

// Create 创建产品及关联行项
func (r *ProductRepository) Create(ctx context.Context, product *entity.Product) error {
	if product.ID == "" {
		product.ID = generateID()
	}
	for i := range product.Recipes {
		if product.Recipes[i].ID == "" {
			product.Recipes[i].ID = generateID()
		}
		product.Recipes[i].ProductID = product.ID
	}
	for i := range product.Packages {
		if product.Packages[i].ID == "" {
			product.Packages[i].ID = generateID()
		}
		product.Packages[i].ProductID = product.ID
	}
	return r.db.WithContext(ctx).Create(product).Error
}

// Update 更新产品，关联行项整体替换
func (r *ProductRepository) Update(ctx context.Context, product *entity.Product) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).
			Delete(&entity.ProductRecipeItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).
			Delete(&entity.ProductPackageItem{}).Error; err != nil {
			return err
		}
		for i := range product.Recipes {
			if product.Recipes[i].ID == "" {
				product.Recipes[i].ID = generateID()
			}
			product.Recipes[i].ProductID = product.ID
		}
		for i := range product.Packages {
			if product.Packages[i].ID == "" {
				product.Packages[i].ID = generateID()
			}
			product.Packages[i].ProductID = product.ID
		}
		return tx.Session(&gorm.Session{FullSaveAssociations: true}).Save(product).Error
	})
}

// Delete 软删除产品
func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// List 获取产品列表
func (r *ProductRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Product, int64, error) {
	var products []entity.Product
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Product{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("name ILIKE ? OR sku ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	if categoryID, ok := filters["category_id"].(string); ok && categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if subcategoryID, ok := filters["subcategory_id"].(string); ok && subcategoryID != "" {
		query = query.Where("subcategory_id = ?", subcategoryID)
	}
	if status, ok := filters["status"].(string); ok && status != "" {
		query = query.Where("status = ?", status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Category").
		Preload("Subcategory").
		Order("created_at DESC").
		Offset(offset).
		Limit(pageSize).
		Find(&products).Error

	return products, total, err
}

// CountByCategory 统计类别下未删除的产品数
func (r *ProductRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("category_id = ? AND deleted_at IS NULL", categoryID).
		Count(&count).Error
	return count, err
}

// CountBySubcategory 统计子类别下未删除的产品数
func (r *ProductRepository) CountBySubcategory(ctx context.Context, subcategoryID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Product{}).
		Where("subcategory_id = ? AND deleted_at IS NULL", subcategoryID).
		Count(&count).Error
	return count, err
}

// ProductCategoryRepository 产品类别仓库
type ProductCategoryRepository struct {
	db *gorm.DB
}

// NewProductCategoryRepository 创建产品类别仓库
func NewProductCategoryRepository(db *gorm.DB) *ProductCategoryRepository {
	return &ProductCategoryRepository{db: db}
}

// FindByID 根据ID查找类别
func (r *ProductCategoryRepository) FindByID(ctx context.Context, id string) (*entity.ProductCategory, error) {
	var category entity.ProductCategory
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&category).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &category, nil
}

// List 获取类别列表（含子类别）
func (r *ProductCategoryRepository) List(ctx context.Context) ([]entity.ProductCategory, error) {
	var categories []entity.ProductCategory
	err := r.db.WithContext(ctx).
		Preload("Subcategories", func(db *gorm.DB) *gorm.DB {
			return db.Where("deleted_at IS NULL").Order("sort_order ASC, name ASC")
		}).
		Where("deleted_at IS NULL").
		Order("sort_order ASC, name ASC").
		Find(&categories).Error
	return categories, err
}

// Create 创建类别
func (r *ProductCategoryRepository) Create(ctx context.Context, category *entity.ProductCategory) error {
	if category.ID == "" {
		category.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(category).Error
}

// Update 更新类别
func (r *ProductCategoryRepository) Update(ctx context.Context, category *entity.ProductCategory) error {
	return r.db.WithContext(ctx).Save(category).Error
}

// Delete 软删除类别
func (r *ProductCategoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.ProductCategory{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// ProductSubcategoryRepository 产品子类别仓库
type ProductSubcategoryRepository struct {
	db *gorm.DB
}

// NewProductSubcategoryRepository 创建产品子类别仓库
func NewProductSubcategoryRepository(db *gorm.DB) *ProductSubcategoryRepository {
	return &ProductSubcategoryRepository{db: db}
}

// FindByID 根据ID查找子类别
func (r *ProductSubcategoryRepository) FindByID(ctx context.Context, id string) (*entity.ProductSubcategory, error) {
	var subcategory entity.ProductSubcategory
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&subcategory).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &subcategory, nil
}

// Create 创建子类别
func (r *ProductSubcategoryRepository) Create(ctx context.Context, subcategory *entity.ProductSubcategory) error {
	if subcategory.ID == "" {
		subcategory.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(subcategory).Error
}

// Update 更新子类别
func (r *ProductSubcategoryRepository) Update(ctx context.Context, subcategory *entity.ProductSubcategory) error {
	return r.db.WithContext(ctx).Save(subcategory).Error
}

// Delete 软删除子类别
func (r *ProductSubcategoryRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.ProductSubcategory{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}
