package repository

import (
	"context"
	"errors"
	"time"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"gorm.io/gorm"
)

// RecipeRepository 配方仓库
type RecipeRepository struct {
	db *gorm.DB
}

// NewRecipeRepository 创建配方仓库
func NewRecipeRepository(db *gorm.DB) *RecipeRepository {
	return &RecipeRepository{db: db}
}

// FindByID 根据ID查找配方（含行项）
func (r *RecipeRepository) FindByID(ctx context.Context, id string) (*entity.Recipe, error) {
	var recipe entity.Recipe
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&recipe).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &recipe, nil
}

// Create 创建配方及行项
func (r *RecipeRepository) Create(ctx context.Context, recipe *entity.Recipe) error {
	if recipe.ID == "" {
		recipe.ID = generateID()
	}
	for i := range recipe.Items {
		if recipe.Items[i].ID == "" {
			recipe.Items[i].ID = generateID()
		}
		recipe.Items[i].RecipeID = recipe.ID
	}
	return r.db.WithContext(ctx).Create(recipe).Error
}

// Update 更新配方，行项整体替换
func (r *RecipeRepository) Update(ctx context.Context, recipe *entity.Recipe) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("recipe_id = ?", recipe.ID).
			Delete(&entity.RecipeItem{}).Error; err != nil {
			return err
		}
		for i := range recipe.Items {
			if recipe.Items[i].ID == "" {
				recipe.Items[i].ID = generateID()
			}
			recipe.Items[i].RecipeID = recipe.ID
		}
		return tx.Save(recipe).Error
	})
}

// Delete 软删除配方
func (r *RecipeRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Recipe{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// List 获取配方列表
func (r *RecipeRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Recipe, int64, error) {
	var recipes []entity.Recipe
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Recipe{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("name ILIKE ?", "%"+keyword+"%")
	}
	if categoryID, ok := filters["category_id"].(string); ok && categoryID != "" {
		query = query.Where("category_id = ?", categoryID)
	}
	if active, ok := filters["is_active"].(bool); ok {
		query = query.Where("is_active = ?", active)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := query.
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sequence ASC")
		}).
		Order("name ASC").
		Offset(offset).
		Limit(pageSize).
		Find(&recipes).Error

	return recipes, total, err
}

// ListReferencing 查找引用了某个子配方的配方ID
func (r *RecipeRepository) ListReferencing(ctx context.Context, recipeID string) ([]string, error) {
	var ids []string
	err := r.db.WithContext(ctx).
		Model(&entity.RecipeItem{}).
		Where("item_type = ? AND item_id = ?", entity.RecipeItemRecipe, recipeID).
		Distinct("recipe_id").
		Pluck("recipe_id", &ids).Error
	return ids, err
}
