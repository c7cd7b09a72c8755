package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

// PackagingService 包装材料服务
type PackagingService struct {
	repo      *repository.PackagingRepository
	priceRepo *repository.PriceHistoryRepository
	rdb       *redis.Client
}

// NewPackagingService 创建包装材料服务
func NewPackagingService(repo *repository.PackagingRepository, priceRepo *repository.PriceHistoryRepository, rdb *redis.Client) *PackagingService {
	return &PackagingService{repo: repo, priceRepo: priceRepo, rdb: rdb}
}

// CreatePackagingRequest 创建包装材料请求
type CreatePackagingRequest struct {
	Name         string  `json:"name" binding:"required"`
	Brand        string  `json:"brand"`
	Description  string  `json:"description"`
	UnitPrice    float64 `json:"unit_price" binding:"required,gte=0"`
	CurrentStock float64 `json:"current_stock"`
	MinStock     float64 `json:"min_stock"`
	SupplierID   string  `json:"supplier_id"`
}

// UpdatePackagingRequest 更新包装材料请求
type UpdatePackagingRequest struct {
	Name         string   `json:"name"`
	Brand        string   `json:"brand"`
	Description  string   `json:"description"`
	UnitPrice    *float64 `json:"unit_price"`
	CurrentStock *float64 `json:"current_stock"`
	MinStock     *float64 `json:"min_stock"`
	SupplierID   string   `json:"supplier_id"`
	IsActive     *bool    `json:"is_active"`
	PriceNotes   string   `json:"price_notes"`
}

// PackagingListResult 包装材料列表结果
type PackagingListResult struct {
	Items      []entity.Packaging `json:"items"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	PageSize   int                `json:"page_size"`
	TotalPages int                `json:"total_pages"`
}

// List 获取包装材料列表
func (s *PackagingService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*PackagingListResult, error) {
	packagings, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list packagings: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &PackagingListResult{
		Items:      packagings,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取包装材料详情
func (s *PackagingService) Get(ctx context.Context, id string) (*entity.Packaging, error) {
	packaging, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find packaging: %w", err)
	}
	return packaging, nil
}

// Create 创建包装材料并记录初始价格
func (s *PackagingService) Create(ctx context.Context, userID string, req *CreatePackagingRequest) (*entity.Packaging, error) {
	now := time.Now()
	packaging := &entity.Packaging{
		Name:         req.Name,
		Brand:        req.Brand,
		Description:  req.Description,
		UnitPrice:    req.UnitPrice,
		CurrentStock: req.CurrentStock,
		MinStock:     req.MinStock,
		SupplierID:   req.SupplierID,
		IsActive:     true,
		CreatedBy:    userID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, packaging); err != nil {
		return nil, fmt.Errorf("create packaging: %w", err)
	}

	s.recordPrice(ctx, packaging, userID, "initial price")
	s.clearCache(ctx)
	return packaging, nil
}

// Update 更新包装材料，价格变化时追加历史记录
func (s *PackagingService) Update(ctx context.Context, id string, userID string, req *UpdatePackagingRequest) (*entity.Packaging, error) {
	packaging, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find packaging: %w", err)
	}

	priceChanged := false
	if req.Name != "" {
		packaging.Name = req.Name
	}
	if req.Brand != "" {
		packaging.Brand = req.Brand
	}
	if req.Description != "" {
		packaging.Description = req.Description
	}
	if req.UnitPrice != nil && *req.UnitPrice != packaging.UnitPrice {
		packaging.UnitPrice = *req.UnitPrice
		priceChanged = true
	}
	if req.CurrentStock != nil {
		packaging.CurrentStock = *req.CurrentStock
	}
	if req.MinStock != nil {
		packaging.MinStock = *req.MinStock
	}
	if req.SupplierID != "" {
		packaging.SupplierID = req.SupplierID
	}
	if req.IsActive != nil {
		packaging.IsActive = *req.IsActive
	}
	packaging.UpdatedBy = userID
	packaging.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, packaging); err != nil {
		return nil, fmt.Errorf("update packaging: %w", err)
	}

	if priceChanged {
		s.recordPrice(ctx, packaging, userID, req.PriceNotes)
	}
	s.clearCache(ctx)
	return packaging, nil
}

// Delete 删除包装材料
func (s *PackagingService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find packaging: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete packaging: %w", err)
	}
	s.clearCache(ctx)
	return nil
}

// PriceHistory 获取包装材料价格历史
func (s *PackagingService) PriceHistory(ctx context.Context, id string, limit int) ([]entity.PriceHistory, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("find packaging: %w", err)
	}
	records, err := s.priceRepo.ListByItem(ctx, entity.PriceItemPackaging, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	return records, nil
}

func (s *PackagingService) recordPrice(ctx context.Context, packaging *entity.Packaging, userID, notes string) {
	_ = s.priceRepo.Create(ctx, &entity.PriceHistory{
		ItemType:  entity.PriceItemPackaging,
		ItemID:    packaging.ID,
		Price:     packaging.UnitPrice,
		Quantity:  1,
		Source:    entity.PriceSourceManual,
		Notes:     notes,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	})
}

func (s *PackagingService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "packagings:list")
	}
}
