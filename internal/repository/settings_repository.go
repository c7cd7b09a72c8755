package repository

import (
	"context"
	"errors"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingsRepository 成本参数仓库
type SettingsRepository struct {
	db *gorm.DB
}

// NewSettingsRepository 创建成本参数仓库
func NewSettingsRepository(db *gorm.DB) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// settingsRowID 单行表固定主键
const settingsRowID = "default"

// Get 获取成本参数
func (r *SettingsRepository) Get(ctx context.Context) (*entity.CostSettings, error) {
	var settings entity.CostSettings
	err := r.db.WithContext(ctx).
		Where("id = ?", settingsRowID).
		First(&settings).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &settings, nil
}

// Save 写入成本参数（upsert）
func (r *SettingsRepository) Save(ctx context.Context, settings *entity.CostSettings) error {
	settings.ID = settingsRowID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).
		Create(settings).Error
}

// SeedIfMissing 首次启动时写入默认参数
func (r *SettingsRepository) SeedIfMissing(ctx context.Context, settings *entity.CostSettings) error {
	settings.ID = settingsRowID
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(settings).Error
}
