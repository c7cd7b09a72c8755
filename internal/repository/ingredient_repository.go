package repository

import (
	"context"
	"errors"
	"time"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"gorm.io/gorm"
)

// IngredientRepository 原料仓库
type IngredientRepository struct {
	db *gorm.DB
}

// NewIngredientRepository 创建原料仓库
func NewIngredientRepository(db *gorm.DB) *IngredientRepository {
	return &IngredientRepository{db: db}
}

// FindByID 根据ID查找原料
func (r *IngredientRepository) FindByID(ctx context.Context, id string) (*entity.Ingredient, error) {
	var ingredient entity.Ingredient
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&ingredient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &ingredient, nil
}

// FindByIDs 批量查找原料
func (r *IngredientRepository) FindByIDs(ctx context.Context, ids []string) ([]entity.Ingredient, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var ingredients []entity.Ingredient
	err := r.db.WithContext(ctx).
		Where("id IN ? AND deleted_at IS NULL", ids).
		Find(&ingredients).Error
	return ingredients, err
}

// Create 创建原料
func (r *IngredientRepository) Create(ctx context.Context, ingredient *entity.Ingredient) error {
	if ingredient.ID == "" {
		ingredient.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(ingredient).Error
}

// Update 更新原料
func (r *IngredientRepository) Update(ctx context.Context, ingredient *entity.Ingredient) error {
	return r.db.WithContext(ctx).Save(ingredient).Error
}

// Delete 软删除原料
func (r *IngredientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Ingredient{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// CountBySupplier 统计供应商名下未删除的原料数
func (r *IngredientRepository) CountBySupplier(ctx context.Context, supplierID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&entity.Ingredient{}).
		Where("supplier_id = ? AND deleted_at IS NULL", supplierID).
		Count(&count).Error
	return count, err
}

// List 获取原料列表
func (r *IngredientRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Ingredient, int64, error) {
	var ingredients []entity.Ingredient
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Ingredient{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("name ILIKE ? OR brand ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
	}
	if supplierID, ok := filters["supplier_id"].(string); ok && supplierID != "" {
		query = query.Where("supplier_id = ?", supplierID)
	}
	if active, ok := filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&ingredients).Error

	return ingredients, total, err
}

// ListLowStock 获取库存不足的原料
func (r *IngredientRepository) ListLowStock(ctx context.Context) ([]entity.Ingredient, error) {
	var ingredients []entity.Ingredient
	err := r.db.WithContext(ctx).
		Where("deleted_at IS NULL AND is_active = true AND current_stock <= min_stock").
		Order("name ASC").
		Find(&ingredients).Error
	return ingredients, err
}
