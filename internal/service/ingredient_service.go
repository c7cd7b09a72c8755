package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

// IngredientService 原料服务
type IngredientService struct {
	repo      *repository.IngredientRepository
	priceRepo *repository.PriceHistoryRepository
	rdb       *redis.Client
}

// NewIngredientService 创建原料服务
func NewIngredientService(repo *repository.IngredientRepository, priceRepo *repository.PriceHistoryRepository, rdb *redis.Client) *IngredientService {
	return &IngredientService{repo: repo, priceRepo: priceRepo, rdb: rdb}
}

// CreateIngredientRequest 创建原料请求
type CreateIngredientRequest struct {
	Name             string   `json:"name" binding:"required"`
	Brand            string   `json:"brand"`
	Description      string   `json:"description"`
	Unit             string   `json:"unit" binding:"required"`
	MeasurementValue float64  `json:"measurement_value" binding:"required,gt=0"`
	CurrentPrice     float64  `json:"current_price" binding:"required,gte=0"`
	CurrentStock     float64  `json:"current_stock"`
	MinStock         float64  `json:"min_stock"`
	SupplierID       string   `json:"supplier_id"`
	AllergenInfo     []string `json:"allergen_info"`
}

// UpdateIngredientRequest 更新原料请求
type UpdateIngredientRequest struct {
	Name             string   `json:"name"`
	Brand            string   `json:"brand"`
	Description      string   `json:"description"`
	Unit             string   `json:"unit"`
	MeasurementValue *float64 `json:"measurement_value"`
	CurrentPrice     *float64 `json:"current_price"`
	CurrentStock     *float64 `json:"current_stock"`
	MinStock         *float64 `json:"min_stock"`
	SupplierID       string   `json:"supplier_id"`
	AllergenInfo     []string `json:"allergen_info"`
	IsActive         *bool    `json:"is_active"`
	PriceNotes       string   `json:"price_notes"`
}

// IngredientListResult 原料列表结果
type IngredientListResult struct {
	Items      []entity.Ingredient `json:"items"`
	Total      int64               `json:"total"`
	Page       int                 `json:"page"`
	PageSize   int                 `json:"page_size"`
	TotalPages int                 `json:"total_pages"`
}

// List 获取原料列表
func (s *IngredientService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*IngredientListResult, error) {
	ingredients, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list ingredients: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &IngredientListResult{
		Items:      ingredients,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取原料详情
func (s *IngredientService) Get(ctx context.Context, id string) (*entity.Ingredient, error) {
	ingredient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ingredient: %w", err)
	}
	return ingredient, nil
}

// Create 创建原料并记录初始价格
func (s *IngredientService) Create(ctx context.Context, userID string, req *CreateIngredientRequest) (*entity.Ingredient, error) {
	unit := entity.Unit(req.Unit)
	if !unit.Valid() {
		return nil, fmt.Errorf("unsupported unit: %s", req.Unit)
	}

	now := time.Now()
	ingredient := &entity.Ingredient{
		Name:             req.Name,
		Brand:            req.Brand,
		Description:      req.Description,
		Unit:             unit,
		MeasurementValue: req.MeasurementValue,
		CurrentPrice:     req.CurrentPrice,
		CurrentStock:     req.CurrentStock,
		MinStock:         req.MinStock,
		SupplierID:       req.SupplierID,
		AllergenInfo:     req.AllergenInfo,
		IsActive:         true,
		CreatedBy:        userID,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("create ingredient: %w", err)
	}

	s.recordPrice(ctx, ingredient, userID, "initial price")
	s.clearCache(ctx)
	return ingredient, nil
}

// Update 更新原料，价格变化时追加历史记录
func (s *IngredientService) Update(ctx context.Context, id string, userID string, req *UpdateIngredientRequest) (*entity.Ingredient, error) {
	ingredient, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find ingredient: %w", err)
	}

	priceChanged := false
	if req.Name != "" {
		ingredient.Name = req.Name
	}
	if req.Brand != "" {
		ingredient.Brand = req.Brand
	}
	if req.Description != "" {
		ingredient.Description = req.Description
	}
	if req.Unit != "" {
		unit := entity.Unit(req.Unit)
		if !unit.Valid() {
			return nil, fmt.Errorf("unsupported unit: %s", req.Unit)
		}
		ingredient.Unit = unit
	}
	if req.MeasurementValue != nil && *req.MeasurementValue > 0 {
		ingredient.MeasurementValue = *req.MeasurementValue
	}
	if req.CurrentPrice != nil && *req.CurrentPrice != ingredient.CurrentPrice {
		ingredient.CurrentPrice = *req.CurrentPrice
		priceChanged = true
	}
	if req.CurrentStock != nil {
		ingredient.CurrentStock = *req.CurrentStock
	}
	if req.MinStock != nil {
		ingredient.MinStock = *req.MinStock
	}
	if req.SupplierID != "" {
		ingredient.SupplierID = req.SupplierID
	}
	if req.AllergenInfo != nil {
		ingredient.AllergenInfo = req.AllergenInfo
	}
	if req.IsActive != nil {
		ingredient.IsActive = *req.IsActive
	}
	ingredient.UpdatedBy = userID
	ingredient.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, ingredient); err != nil {
		return nil, fmt.Errorf("update ingredient: %w", err)
	}

	if priceChanged {
		s.recordPrice(ctx, ingredient, userID, req.PriceNotes)
	}
	s.clearCache(ctx)
	return ingredient, nil
}

// Delete 删除原料
func (s *IngredientService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find ingredient: %w", err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete ingredient: %w", err)
	}
	s.clearCache(ctx)
	return nil
}

// PriceHistory 获取原料价格历史
func (s *IngredientService) PriceHistory(ctx context.Context, id string, limit int) ([]entity.PriceHistory, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, fmt.Errorf("find ingredient: %w", err)
	}
	records, err := s.priceRepo.ListByItem(ctx, entity.PriceItemIngredient, id, limit)
	if err != nil {
		return nil, fmt.Errorf("list price history: %w", err)
	}
	return records, nil
}

// ListLowStock 获取库存不足的原料
func (s *IngredientService) ListLowStock(ctx context.Context) ([]entity.Ingredient, error) {
	ingredients, err := s.repo.ListLowStock(ctx)
	if err != nil {
		return nil, fmt.Errorf("list low stock: %w", err)
	}
	return ingredients, nil
}

func (s *IngredientService) recordPrice(ctx context.Context, ingredient *entity.Ingredient, userID, notes string) {
	// 价格历史写入失败不阻塞主流程
	_ = s.priceRepo.Create(ctx, &entity.PriceHistory{
		ItemType:  entity.PriceItemIngredient,
		ItemID:    ingredient.ID,
		Price:     ingredient.CurrentPrice,
		Quantity:  ingredient.MeasurementValue,
		Source:    entity.PriceSourceManual,
		Notes:     notes,
		CreatedBy: userID,
		CreatedAt: time.Now(),
	})
}

func (s *IngredientService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "ingredients:list")
	}
}
