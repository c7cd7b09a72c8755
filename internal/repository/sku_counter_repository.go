package repository

import (
	"context"
	"errors"
	"time"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SkuCounterRepository SKU计数器仓库
type SkuCounterRepository struct {
	db *gorm.DB
}

// NewSkuCounterRepository 创建SKU计数器仓库
func NewSkuCounterRepository(db *gorm.DB) *SkuCounterRepository {
	return &SkuCounterRepository{db: db}
}

// Get 获取计数器当前状态
func (r *SkuCounterRepository) Get(ctx context.Context, scopeKey string) (*entity.SkuCounter, error) {
	var counter entity.SkuCounter
	err := r.db.WithContext(ctx).
		Where("scope_key = ?", scopeKey).
		First(&counter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &counter, nil
}

// Increment 在单个事务内读取并递增计数器。
// 通过版本号条件更新做乐观并发控制：期间有其他分配发生时
// 返回 ErrVersionConflict，由调用方重试。
func (r *SkuCounterRepository) Increment(ctx context.Context, scopeKey string) (int64, error) {
	var next int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// 首次使用该作用域时惰性创建计数器行
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).
			Create(&entity.SkuCounter{ScopeKey: scopeKey}).Error; err != nil {
			return err
		}

		var counter entity.SkuCounter
		if err := tx.Where("scope_key = ?", scopeKey).
			First(&counter).Error; err != nil {
			return err
		}

		next = counter.Value + 1
		result := tx.Model(&entity.SkuCounter{}).
			Where("scope_key = ? AND version = ?", scopeKey, counter.Version).
			Updates(map[string]interface{}{
				"value":        next,
				"version":      counter.Version + 1,
				"allocated_at": time.Now(),
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrVersionConflict
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return next, nil
}
