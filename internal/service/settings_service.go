package service

import (
	"context"
	"fmt"
	"time"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

// SettingsService 成本参数服务
type SettingsService struct {
	repo *repository.SettingsRepository
}

// NewSettingsService 创建成本参数服务
func NewSettingsService(repo *repository.SettingsRepository) *SettingsService {
	return &SettingsService{repo: repo}
}

// UpdateSettingsRequest 更新成本参数请求
type UpdateSettingsRequest struct {
	LaborHourRate   *float64           `json:"labor_hour_rate"`
	DefaultMargin   *float64           `json:"default_margin"`
	CategoryMargins map[string]float64 `json:"category_margins"`
}

// Get 获取成本参数
func (s *SettingsService) Get(ctx context.Context) (*entity.CostSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get cost settings: %w", err)
	}
	return settings, nil
}

// Update 更新成本参数
func (s *SettingsService) Update(ctx context.Context, userID string, req *UpdateSettingsRequest) (*entity.CostSettings, error) {
	settings, err := s.repo.Get(ctx)
	if err != nil {
		return nil, fmt.Errorf("get cost settings: %w", err)
	}

	if req.LaborHourRate != nil {
		if *req.LaborHourRate < 0 || *req.LaborHourRate > 1000 {
			return nil, fmt.Errorf("labor hour rate out of range: %.2f", *req.LaborHourRate)
		}
		settings.LaborHourRate = *req.LaborHourRate
	}
	if req.DefaultMargin != nil {
		if *req.DefaultMargin < 100 || *req.DefaultMargin > 1000 {
			return nil, fmt.Errorf("default margin out of range: %.2f", *req.DefaultMargin)
		}
		settings.DefaultMargin = *req.DefaultMargin
	}
	if req.CategoryMargins != nil {
		margins := entity.JSONB{}
		for categoryID, margin := range req.CategoryMargins {
			if margin < 100 || margin > 1000 {
				return nil, fmt.Errorf("margin for category %s out of range: %.2f", categoryID, margin)
			}
			margins[categoryID] = margin
		}
		settings.CategoryMargins = margins
	}
	settings.UpdatedBy = userID
	settings.UpdatedAt = time.Now()

	if err := s.repo.Save(ctx, settings); err != nil {
		return nil, fmt.Errorf("save cost settings: %w", err)
	}
	return settings, nil
}
