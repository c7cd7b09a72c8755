package repository

import (
	"context"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"gorm.io/gorm"
)

// PriceHistoryRepository 价格历史仓库
type PriceHistoryRepository struct {
	db *gorm.DB
}

// NewPriceHistoryRepository 创建价格历史仓库
func NewPriceHistoryRepository(db *gorm.DB) *PriceHistoryRepository {
	return &PriceHistoryRepository{db: db}
}

// Create 追加价格记录
func (r *PriceHistoryRepository) Create(ctx context.Context, record *entity.PriceHistory) error {
	if record.ID == "" {
		record.ID = generateID()
	}
	return r.db.WithContext(ctx).Create(record).Error
}

// ListByItem 获取某条目的价格历史，按时间倒序
func (r *PriceHistoryRepository) ListByItem(ctx context.Context, itemType, itemID string, limit int) ([]entity.PriceHistory, error) {
	var records []entity.PriceHistory
	query := r.db.WithContext(ctx).
		Where("item_type = ? AND item_id = ?", itemType, itemID).
		Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&records).Error
	return records, err
}
