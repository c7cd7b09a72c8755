package service

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/momento-cake/admin-sub007/internal/model/entity"
	"github.com/momento-cake/admin-sub007/internal/repository"
)

// RecipeService 配方服务
type RecipeService struct {
	repo    *repository.RecipeRepository
	costing *CostingService
	rdb     *redis.Client
}

// NewRecipeService 创建配方服务
func NewRecipeService(repo *repository.RecipeRepository, costing *CostingService, rdb *redis.Client) *RecipeService {
	return &RecipeService{repo: repo, costing: costing, rdb: rdb}
}

// RecipeItemRequest 配方行项请求
type RecipeItemRequest struct {
	ItemType string  `json:"item_type" binding:"required,oneof=ingredient packaging recipe"`
	ItemID   string  `json:"item_id" binding:"required"`
	Quantity float64 `json:"quantity" binding:"required,gt=0"`
	Unit     string  `json:"unit" binding:"required"`
	Notes    string  `json:"notes"`
}

// CreateRecipeRequest 创建配方请求
type CreateRecipeRequest struct {
	Name            string              `json:"name" binding:"required"`
	CategoryID      string              `json:"category_id"`
	Description     string              `json:"description"`
	Servings        int                 `json:"servings" binding:"required,gt=0"`
	GeneratedAmount float64             `json:"generated_amount" binding:"required,gt=0"`
	GeneratedUnit   string              `json:"generated_unit" binding:"required"`
	PreparationTime int                 `json:"preparation_time" binding:"gte=0"`
	Instructions    string              `json:"instructions"`
	Notes           string              `json:"notes"`
	Items           []RecipeItemRequest `json:"items" binding:"required,min=1,dive"`
}

// UpdateRecipeRequest 更新配方请求
type UpdateRecipeRequest struct {
	Name            string              `json:"name"`
	CategoryID      string              `json:"category_id"`
	Description     string              `json:"description"`
	Servings        *int                `json:"servings"`
	GeneratedAmount *float64            `json:"generated_amount"`
	GeneratedUnit   string              `json:"generated_unit"`
	PreparationTime *int                `json:"preparation_time"`
	Instructions    string              `json:"instructions"`
	Notes           string              `json:"notes"`
	IsActive        *bool               `json:"is_active"`
	Items           []RecipeItemRequest `json:"items"`
}

// RecipeListResult 配方列表结果
type RecipeListResult struct {
	Items      []entity.Recipe `json:"items"`
	Total      int64           `json:"total"`
	Page       int             `json:"page"`
	PageSize   int             `json:"page_size"`
	TotalPages int             `json:"total_pages"`
}

// List 获取配方列表
func (s *RecipeService) List(ctx context.Context, page, pageSize int, filters map[string]interface{}) (*RecipeListResult, error) {
	recipes, total, err := s.repo.List(ctx, page, pageSize, filters)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &RecipeListResult{
		Items:      recipes,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// Get 获取配方详情
func (s *RecipeService) Get(ctx context.Context, id string) (*entity.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find recipe: %w", err)
	}
	return recipe, nil
}

// Costs 按当前价格计算配方成本明细
func (s *RecipeService) Costs(ctx context.Context, id string) (*CostBreakdown, error) {
	return s.costing.ComputeBreakdown(ctx, id)
}

// Create 创建配方
func (s *RecipeService) Create(ctx context.Context, userID string, req *CreateRecipeRequest) (*entity.Recipe, error) {
	unit := entity.Unit(req.GeneratedUnit)
	if !unit.Valid() {
		return nil, fmt.Errorf("unsupported unit: %s", req.GeneratedUnit)
	}

	items, err := buildRecipeItems(req.Items)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	recipe := &entity.Recipe{
		Name:            req.Name,
		CategoryID:      req.CategoryID,
		Description:     req.Description,
		Servings:        req.Servings,
		GeneratedAmount: req.GeneratedAmount,
		GeneratedUnit:   unit,
		PreparationTime: req.PreparationTime,
		Instructions:    req.Instructions,
		Notes:           req.Notes,
		IsActive:        true,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
		Items:           items,
	}

	if err := s.repo.Create(ctx, recipe); err != nil {
		return nil, fmt.Errorf("create recipe: %w", err)
	}

	// 创建后立即做一次成本计算，尽早暴露悬空引用和配方环
	if _, err := s.costing.ComputeBreakdown(ctx, recipe.ID); err != nil {
		return nil, fmt.Errorf("validate recipe composition: %w", err)
	}

	s.clearCache(ctx)
	return recipe, nil
}

// Update 更新配方
func (s *RecipeService) Update(ctx context.Context, id string, userID string, req *UpdateRecipeRequest) (*entity.Recipe, error) {
	recipe, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find recipe: %w", err)
	}

	if req.Name != "" {
		recipe.Name = req.Name
	}
	if req.CategoryID != "" {
		recipe.CategoryID = req.CategoryID
	}
	if req.Description != "" {
		recipe.Description = req.Description
	}
	if req.Servings != nil && *req.Servings > 0 {
		recipe.Servings = *req.Servings
	}
	if req.GeneratedAmount != nil && *req.GeneratedAmount > 0 {
		recipe.GeneratedAmount = *req.GeneratedAmount
	}
	if req.GeneratedUnit != "" {
		unit := entity.Unit(req.GeneratedUnit)
		if !unit.Valid() {
			return nil, fmt.Errorf("unsupported unit: %s", req.GeneratedUnit)
		}
		recipe.GeneratedUnit = unit
	}
	if req.PreparationTime != nil && *req.PreparationTime >= 0 {
		recipe.PreparationTime = *req.PreparationTime
	}
	if req.Instructions != "" {
		recipe.Instructions = req.Instructions
	}
	if req.Notes != "" {
		recipe.Notes = req.Notes
	}
	if req.IsActive != nil {
		recipe.IsActive = *req.IsActive
	}
	if req.Items != nil {
		items, err := buildRecipeItems(req.Items)
		if err != nil {
			return nil, err
		}
		recipe.Items = items
	}
	recipe.UpdatedBy = userID
	recipe.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, recipe); err != nil {
		return nil, fmt.Errorf("update recipe: %w", err)
	}

	if _, err := s.costing.ComputeBreakdown(ctx, recipe.ID); err != nil {
		return nil, fmt.Errorf("validate recipe composition: %w", err)
	}

	s.clearCache(ctx)
	return recipe, nil
}

// Delete 删除配方。被其他配方引用时拒绝删除。
func (s *RecipeService) Delete(ctx context.Context, id string) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return fmt.Errorf("find recipe: %w", err)
	}

	refs, err := s.repo.ListReferencing(ctx, id)
	if err != nil {
		return fmt.Errorf("check recipe references: %w", err)
	}
	if len(refs) > 0 {
		return fmt.Errorf("%w: recipe is used by %d other recipes", ErrResourceInUse, len(refs))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	s.clearCache(ctx)
	return nil
}

// Duplicate 复制配方及其行项
func (s *RecipeService) Duplicate(ctx context.Context, id string, userID string) (*entity.Recipe, error) {
	source, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("find recipe: %w", err)
	}

	now := time.Now()
	clone := &entity.Recipe{
		Name:            source.Name + " (copy)",
		CategoryID:      source.CategoryID,
		Description:     source.Description,
		Servings:        source.Servings,
		GeneratedAmount: source.GeneratedAmount,
		GeneratedUnit:   source.GeneratedUnit,
		PreparationTime: source.PreparationTime,
		Instructions:    source.Instructions,
		Notes:           source.Notes,
		IsActive:        true,
		CreatedBy:       userID,
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	for _, item := range source.Items {
		clone.Items = append(clone.Items, entity.RecipeItem{
			ItemType: item.ItemType,
			ItemID:   item.ItemID,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Sequence: item.Sequence,
			Notes:    item.Notes,
		})
	}

	if err := s.repo.Create(ctx, clone); err != nil {
		return nil, fmt.Errorf("duplicate recipe: %w", err)
	}

	s.clearCache(ctx)
	return clone, nil
}

func buildRecipeItems(reqs []RecipeItemRequest) ([]entity.RecipeItem, error) {
	items := make([]entity.RecipeItem, 0, len(reqs))
	for i, req := range reqs {
		unit := entity.Unit(req.Unit)
		if !unit.Valid() {
			return nil, fmt.Errorf("unsupported unit: %s", req.Unit)
		}
		items = append(items, entity.RecipeItem{
			ItemType: req.ItemType,
			ItemID:   req.ItemID,
			Quantity: req.Quantity,
			Unit:     unit,
			Sequence: i,
			Notes:    req.Notes,
		})
	}
	return items, nil
}

func (s *RecipeService) clearCache(ctx context.Context) {
	if s.rdb != nil {
		s.rdb.Del(ctx, "recipes:list")
	}
}
