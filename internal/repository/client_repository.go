package repository

import (
	"context"
	"errors"
	"time"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"gorm.io/gorm"
)

// ClientRepository 客户仓库
type ClientRepository struct {
	db *gorm.DB
}

// NewClientRepository 创建客户仓库
func NewClientRepository(db *gorm.DB) *ClientRepository {
	return &ClientRepository{db: db}
}

// FindByID 根据ID查找客户
func (r *ClientRepository) FindByID(ctx context.Context, id string) (*entity.Client, error) {
	var client entity.Client
	err := r.db.WithContext(ctx).
		Where("id = ? AND deleted_at IS NULL", id).
		First(&client).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &client, nil
}

// Create 创建客户
func (r *ClientRepository) Create(ctx context.Context, client *entity.Client) error {
	if client.ID == "" {
		client.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(client).Error
}

// Update 更新客户
func (r *ClientRepository) Update(ctx context.Context, client *entity.Client) error {
	return r.db.WithContext(ctx).Save(client).Error
}

// Delete 软删除客户
func (r *ClientRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Model(&entity.Client{}).
		Where("id = ?", id).
		Update("deleted_at", time.Now()).Error
}

// List 获取客户列表
func (r *ClientRepository) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) ([]entity.Client, int64, error) {
	var clients []entity.Client
	var total int64

	query := r.db.WithContext(ctx).Model(&entity.Client{}).Where("deleted_at IS NULL")

	if keyword, ok := filters["keyword"].(string); ok && keyword != "" {
		query = query.Where("name ILIKE ? OR email ILIKE ? OR phone ILIKE ?",
			"%"+keyword+"%", "%"+keyword+"%", "%"+keyword+"%")
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
		Find(&clients).Error

	return clients, total, err
}
