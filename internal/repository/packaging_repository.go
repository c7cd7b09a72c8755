package repository

import (
	"context"
	"errors"
	"time"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"gorm.io/gorm"
)

// PackagingRepository 包装材料仓库
type PackagingRepository struct {
	db *gorm.DB
}

// NewPackagingRepository 创建包装材料仓库
func NewPackagingRepository(db *gorm.DB) *PackagingRepository {
	return &PackagingRepository{db: db}
}

// FindByID 根据ID查找包装材料
func (r *PackagingRepository) FindByID(ctx context.Context, id string) (*entity.Packaging, error) {
	var packaging entity.Packaging
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&packaging).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &packaging, nil
}

// Create 创建包装材料
func (r *PackagingRepository) Create(ctx context.Context, packaging *entity.Packaging) error {
	if packaging.ID == "" {
		packaging.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(packaging).Error
}

// Update 更新包装材料
func (r *PackagingRepository) Update(ctx context.Context, packaging *entity.Packaging) error {
	return r.db.WithContext(ctx).Save(packaging).Error
}

// Delete 软删除包装材料
func (r *PackagingRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Packaging{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// List 获取包装材料列表
func (r *PackagingRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Packaging, int64, error) {
	var packagings []entity.Packaging
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Packaging{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("name ILIKE ? OR brand ILIKE ?", "%"+keyword+"%", "%"+keyword+"%")
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
		Find(&packagings).Error

	return packagings, total, err
}
