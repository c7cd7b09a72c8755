package repository

import (
	"context"
	"errors"
	"time"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"gorm.io/gorm"
)

// ImageRepository 图片元数据仓库
type ImageRepository struct {
	db *gorm.DB
}

// NewImageRepository 创建图片元数据仓库
func NewImageRepository(db *gorm.DB) *ImageRepository {
	return &ImageRepository{db: db}
}

// FindByID 根据ID查找图片
func (r *ImageRepository) FindByID(ctx context.Context, id string) (*entity.Image, error) {
	var image entity.Image
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&image).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &image, nil
}

// Create 创建图片记录
func (r *ImageRepository) Create(ctx context.Context, image *entity.Image) error {
	if image.ID == "" {
		image.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(image).Error
}

// Delete 软删除图片记录
func (r *ImageRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Image{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// ListByOwner 获取某归属对象的图片列表
func (r *ImageRepository) ListByOwner(ctx context.Context, ownerType, ownerID string) ([]entity.Image, error) {
	var images []entity.Image
	query := r.db.WithContext(ctx).Where("deleted_at IS NULL")
	if ownerType != "" {
		query = query.Where("owner_type = ?", ownerType)
	}
	if ownerID != "" {
		query = query.Where("owner_id = ?", ownerID)
	}
	err := query.Order("created_at DESC").Find(&images).Error
	return images, err
}
